package cli

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/wanderoffski/acxbatch/internal/config"
	"github.com/wanderoffski/acxbatch/internal/engine"
)

// Env holds injectable dependencies for the CLI. It is the central
// injection point for testing the command in isolation: production code
// uses DefaultEnv(), tests override fields through the With* options.
type Env struct {
	// I/O and environment
	Stdout   io.Writer
	Stderr   io.Writer
	Getenv   func(string) string
	LookPath func(string) (string, error)
	MkdirAll func(path string, perm os.FileMode) error
	FileSize func(path string) (int64, error)

	// Factories for domain objects
	EngineFactory EngineFactory
	ConfigLoader  ConfigLoader
}

// EngineFactory creates the audio engine once tools are resolved.
type EngineFactory interface {
	NewEngine(tools engine.Tools) engine.Engine
}

// ConfigLoader loads the layered run configuration.
type ConfigLoader interface {
	Load(ctx context.Context) (config.Config, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithLookPath sets the PATH lookup function.
func WithLookPath(fn func(string) (string, error)) EnvOption {
	return func(e *Env) {
		e.LookPath = fn
	}
}

// WithMkdirAll sets the directory creation function.
func WithMkdirAll(fn func(string, os.FileMode) error) EnvOption {
	return func(e *Env) {
		e.MkdirAll = fn
	}
}

// WithFileSize sets the file size lookup used by the summary table.
func WithFileSize(fn func(string) (int64, error)) EnvOption {
	return func(e *Env) {
		e.FileSize = fn
	}
}

// WithEngineFactory sets the engine factory.
func WithEngineFactory(f EngineFactory) EnvOption {
	return func(e *Env) {
		e.EngineFactory = f
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		Getenv:        os.Getenv,
		LookPath:      exec.LookPath,
		MkdirAll:      os.MkdirAll,
		FileSize:      osFileSize,
		EngineFactory: &defaultEngineFactory{},
		ConfigLoader:  &defaultConfigLoader{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// osFileSize returns the size of a file on disk.
func osFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultEngineFactory builds the ffmpeg-backed engine.
type defaultEngineFactory struct{}

func (defaultEngineFactory) NewEngine(tools engine.Tools) engine.Engine {
	return engine.New(tools)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load(ctx context.Context) (config.Config, error) {
	return config.Load(ctx)
}

// Compile-time interface verification.
var (
	_ EngineFactory = (*defaultEngineFactory)(nil)
	_ ConfigLoader  = (*defaultConfigLoader)(nil)
)
