// ggbuild.go
package ggbuild

import (
	"context"
	"os"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/build"
	"github.com/arc-language/ggbuild/pkg/config"
	"github.com/arc-language/ggbuild/pkg/platform"
)

// Re-export types for convenience
type (
	Config        = config.Config
	BackendConfig = backend.Config
	Directive     = backend.Directive
	Target        = platform.Target
	Result        = build.Result
	Deps          = build.Deps
	Coordinator   = build.Coordinator
)

// Re-export backend constants
const (
	BackendCuBLAS     = backend.BackendCuBLAS
	BackendCLBlast    = backend.BackendCLBlast
	BackendOpenBLAS   = backend.BackendOpenBLAS
	BackendMetal      = backend.BackendMetal
	BackendAccelerate = backend.BackendAccelerate
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return config.DefaultConfig()
}

// FromEnv returns the default configuration overlaid with the GGBUILD_*
// environment variables of the current process
func FromEnv() (*Config, error) {
	cfg := config.DefaultConfig()
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, &Error{Op: "configure", Kind: ErrConfiguration, Err: err}
	}
	return cfg, nil
}

// NewCoordinator creates a build coordinator using the command-line
// generator, compiler and external build
func NewCoordinator(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return build.New(cfg, build.Deps{Output: os.Stdout})
}

// Build runs one full build with cfg and prints the link directives to
// standard output
func Build(ctx context.Context, cfg *Config) (*Result, error) {
	c, err := NewCoordinator(cfg)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx)
}
