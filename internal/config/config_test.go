package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanderoffski/acxbatch/internal/config"
)

func validConfig() config.Config {
	cfg := config.Default()
	cfg.InputDir = "raw"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := config.Default()

	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "mono", cfg.Channels)
	assert.Equal(t, "256k", cfg.Bitrate)
	assert.Equal(t, 2.0, cfg.RoomTone)
	assert.Equal(t, 120.0, cfg.MaxMinutes)
	assert.Equal(t, 1.0, cfg.Overlap)
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acxbatch"), 0o750))
	file := []byte("bitrate = \"192k\"\nchannels = \"stereo\"\nroom_tone = 3.5\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acxbatch", "config.toml"), file, 0o600))

	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("ACXBATCH_BITRATE", "320k")   // env beats file
	t.Setenv("ACXBATCH_MAX_MINUTES", "90") // env beats default

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "320k", cfg.Bitrate)
	assert.Equal(t, 90.0, cfg.MaxMinutes)
	assert.Equal(t, "stereo", cfg.Channels)
	assert.Equal(t, 3.5, cfg.RoomTone)
	// Untouched values keep their defaults.
	assert.Equal(t, 1.0, cfg.Overlap)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "acxbatch"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acxbatch", "config.toml"), []byte("bitrate = ["), 0o600))

	t.Setenv("XDG_CONFIG_HOME", dir)

	_, err := config.Load(context.Background())
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(*config.Config) {},
		},
		{
			name:    "missing input dir",
			mutate:  func(c *config.Config) { c.InputDir = "" },
			wantErr: "input directory",
		},
		{
			name:    "bad channels",
			mutate:  func(c *config.Config) { c.Channels = "quad" },
			wantErr: "mono or stereo",
		},
		{
			name:    "bad bitrate",
			mutate:  func(c *config.Config) { c.Bitrate = "256kbps" },
			wantErr: "bitrate",
		},
		{
			name:    "room tone too low",
			mutate:  func(c *config.Config) { c.RoomTone = 0.5 },
			wantErr: "room tone",
		},
		{
			name:    "room tone too high",
			mutate:  func(c *config.Config) { c.RoomTone = 5.5 },
			wantErr: "room tone",
		},
		{
			name:    "non-positive max minutes",
			mutate:  func(c *config.Config) { c.MaxMinutes = 0 },
			wantErr: "max minutes",
		},
		{
			name:    "negative overlap",
			mutate:  func(c *config.Config) { c.Overlap = -1 },
			wantErr: "overlap",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, config.ErrInvalid)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestChannelCount(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, 1, cfg.ChannelCount())

	cfg.Channels = "stereo"
	assert.Equal(t, 2, cfg.ChannelCount())
}

func TestMaxSeconds(t *testing.T) {
	cfg := validConfig()
	cfg.MaxMinutes = 60
	assert.Equal(t, 3600.0, cfg.MaxSeconds())
}
