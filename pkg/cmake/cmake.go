// Package cmake drives the external CMake build of the sources.
package cmake

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arc-language/ggbuild/pkg/core"
	"github.com/arc-language/ggbuild/pkg/toolchain"
)

// DefaultCommand is the CMake executable
const DefaultCommand = "cmake"

// Request describes one external build
type Request struct {
	SourceDir string
	DstDir    string   // Install prefix; the build tree lives in DstDir/build
	Defines   []string // NAME=VALUE entries passed as -D
	Target    string
	Config    string // Multi-config generator configuration, Release if empty
	Generator string // Optional -G value
}

// Builder is the external build system collaborator
type Builder interface {
	// Build configures and builds req, returning the build tree directory
	Build(ctx context.Context, req Request) (string, error)
}

// CMake runs the cmake CLI
type CMake struct {
	Path   string
	Exec   toolchain.Executor
	logger *log.Logger
}

// New creates a CMake builder. An empty path uses DefaultCommand.
func New(path string, logger *log.Logger) *CMake {
	if path == "" {
		path = DefaultCommand
	}
	return &CMake{Path: path, Exec: toolchain.ExecRunner{}, logger: core.NewLogger(logger, false)}
}

// BuildDir returns the build tree of dst
func BuildDir(dst string) string {
	return filepath.Join(dst, "build")
}

// ConfigureArgs returns the arguments of the configure step
func ConfigureArgs(req Request) []string {
	args := []string{"-S", req.SourceDir, "-B", BuildDir(req.DstDir)}
	if req.Generator != "" {
		args = append(args, "-G", req.Generator)
	}
	args = append(args, "-DCMAKE_INSTALL_PREFIX="+req.DstDir, "-DCMAKE_BUILD_TYPE="+buildConfig(req))
	for _, d := range req.Defines {
		args = append(args, "-D"+d)
	}
	return args
}

// BuildArgs returns the arguments of the build step
func BuildArgs(req Request) []string {
	args := []string{"--build", BuildDir(req.DstDir), "--config", buildConfig(req)}
	if req.Target != "" {
		args = append(args, "--target", req.Target)
	}
	return args
}

func buildConfig(req Request) string {
	if req.Config == "" {
		return "Release"
	}
	return req.Config
}

// Build implements Builder
func (c *CMake) Build(ctx context.Context, req Request) (string, error) {
	if err := os.MkdirAll(BuildDir(req.DstDir), 0755); err != nil {
		return "", core.NewError(core.ErrCompile, "cmake", req.DstDir, fmt.Errorf("creating build directory: %w", err))
	}

	c.logger.Printf("Configuring %s with %v", req.SourceDir, req.Defines)
	if out, err := c.Exec.Run(ctx, req.DstDir, c.Path, ConfigureArgs(req)...); err != nil {
		e := core.NewError(core.ErrCompile, "cmake configure", req.SourceDir, err)
		e.Output = out
		return "", e
	}

	c.logger.Printf("Building target %s", req.Target)
	if out, err := c.Exec.Run(ctx, req.DstDir, c.Path, BuildArgs(req)...); err != nil {
		e := core.NewError(core.ErrCompile, "cmake build", req.SourceDir, err)
		e.Output = out
		return "", e
	}

	return BuildDir(req.DstDir), nil
}
