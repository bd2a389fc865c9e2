package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"path/filepath"
	"runtime"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
// Generated Go files are written to it; type stubs and docs go to
// subdirectories.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithPackage sets the Go package name of the generated code.
// Defaults to the base name of the target directory.
func WithPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Package", pkg, "package must be a Go identifier")
		}
		c.Package = pkg
		return nil
	}
}

// WithHeader sets the file header comment.
// The header is added at the top of each generated Go file.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
		return nil
	}
}

// WithWorkers sets the number of classes emitted in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithStubPackage sets the host package name of the type stubs.
// Defaults to the Go package name.
func WithStubPackage(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("StubPackage", pkg, "stub package must be an identifier")
		}
		c.StubPackage = pkg
		return nil
	}
}

// WithIdentPrefix sets the reserved prefix of the identifier table.
func WithIdentPrefix(prefix string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(prefix) || !token.IsExported(prefix) {
			return NewConfigError("IdentPrefix", prefix, "prefix must be an exported Go identifier")
		}
		c.IdentPrefix = prefix
		return nil
	}
}

// WithLogger sets the logger used to report generation progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithFeatures enables specific features.
// Features control optional artifacts.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		c.Features = append(c.Features, features...)
		return nil
	}
}

// WithoutFeatures disables features that are enabled by default.
func WithoutFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			c.Disabled = append(c.Disabled, f.Name)
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	if err := c.defaults(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// defaults fills the unset parts of c.
func (c *Config) defaults() error {
	if c.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}
	if c.Package == "" {
		c.Package = filepath.Base(c.Target)
		if !token.IsIdentifier(c.Package) {
			return NewConfigError("Package", c.Package, "target base name is not a Go identifier; use WithPackage")
		}
	}
	if c.Header == "" {
		c.Header = DefaultHeader
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.StubPackage == "" {
		c.StubPackage = c.Package
	}
	if c.IdentPrefix == "" {
		c.IdentPrefix = DefaultIdentPrefix
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return nil
}
