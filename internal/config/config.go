// Package config assembles the run configuration from defaults, an optional
// TOML config file, and ACXBATCH_* environment variables. Command-line flags
// are applied on top by the CLI layer. Validation happens once, before any
// I/O or engine work.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/sethvargo/go-envconfig"
)

// ErrInvalid indicates configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Defaults.
const (
	DefaultOutputDir  = "output"
	DefaultChannels   = "mono"
	DefaultBitrate    = "256k"
	DefaultRoomTone   = 2.0
	DefaultMaxMinutes = 120.0
	DefaultOverlap    = 1.0
)

// configFileName is looked up under the user config directory
// ($XDG_CONFIG_HOME or ~/.config) in the acxbatch subdirectory.
const configFileName = "config.toml"

// bitrateRe matches CBR MP3 bitrates like "192k", "256k", "320k".
var bitrateRe = regexp.MustCompile(`^[0-9]+k$`)

// Config holds one run's settings. InputDir and the credit overrides are
// flag-only; the rest can come from the config file or environment.
type Config struct {
	InputDir   string  `toml:"-" validate:"required"`
	OutputDir  string  `toml:"output_dir" env:"ACXBATCH_OUTPUT_DIR, overwrite" validate:"required"`
	Channels   string  `toml:"channels" env:"ACXBATCH_CHANNELS, overwrite" validate:"oneof=mono stereo"`
	Bitrate    string  `toml:"bitrate" env:"ACXBATCH_BITRATE, overwrite" validate:"cbr_bitrate"`
	RoomTone   float64 `toml:"room_tone" env:"ACXBATCH_ROOM_TONE, overwrite" validate:"gte=1,lte=5"`
	MaxMinutes float64 `toml:"max_minutes" env:"ACXBATCH_MAX_MINUTES, overwrite" validate:"gt=0"`
	Overlap    float64 `toml:"overlap" env:"ACXBATCH_OVERLAP, overwrite" validate:"gte=0"`
	Opening    string  `toml:"-"`
	Closing    string  `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:  DefaultOutputDir,
		Channels:   DefaultChannels,
		Bitrate:    DefaultBitrate,
		RoomTone:   DefaultRoomTone,
		MaxMinutes: DefaultMaxMinutes,
		Overlap:    DefaultOverlap,
	}
}

// Load builds a Config from defaults, the optional config file, and
// environment variables, in increasing precedence. A missing config file is
// not an error; a malformed one is.
func Load(ctx context.Context) (Config, error) {
	cfg := Default()

	path, err := filePath()
	if err == nil {
		if err := applyFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := envconfig.Process(ctx, &cfg); err != nil {
		return cfg, fmt.Errorf("read environment: %w", err)
	}

	return cfg, nil
}

// filePath returns the config file location, following XDG conventions.
func filePath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "acxbatch", configFileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "acxbatch", configFileName), nil
}

// applyFile overlays values from a TOML file onto cfg, if the file exists.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from the user config dir
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// newValidator builds the validator with the cbr_bitrate rule registered.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tag names.
	_ = v.RegisterValidation("cbr_bitrate", func(fl validator.FieldLevel) bool {
		return bitrateRe.MatchString(fl.Field().String())
	})
	return v
}

// Validate checks the configuration and reports the first violation wrapped
// in ErrInvalid.
func (c Config) Validate() error {
	if err := newValidator().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalid, describe(verrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// describe renders a single validation failure for the user.
func describe(fe validator.FieldError) string {
	switch fe.Field() {
	case "InputDir":
		return "input directory is required"
	case "Channels":
		return fmt.Sprintf("channels must be mono or stereo, got %q", fe.Value())
	case "Bitrate":
		return fmt.Sprintf("bitrate must look like 256k, got %q", fe.Value())
	case "RoomTone":
		return fmt.Sprintf("room tone must be between 1 and 5 seconds, got %v", fe.Value())
	case "MaxMinutes":
		return fmt.Sprintf("max minutes must be positive, got %v", fe.Value())
	case "Overlap":
		return fmt.Sprintf("overlap cannot be negative, got %v", fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
}

// ChannelCount maps the channels setting to a channel count.
func (c Config) ChannelCount() int {
	if c.Channels == "stereo" {
		return 2
	}
	return 1
}

// MaxSeconds returns the split threshold in seconds.
func (c Config) MaxSeconds() float64 {
	return c.MaxMinutes * 60
}
