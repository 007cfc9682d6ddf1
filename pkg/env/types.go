// pkg/env/types.go
package env

import (
	"github.com/arc-language/ggbuild/pkg/platform"
)

// Layout lists where files live relative to an install prefix
type Layout struct {
	Libraries []string // Relative paths to library directories
	Includes  []string // Relative paths to include directories
}

// Library represents a found library file
type Library struct {
	Name     string // Library name (e.g., "openblas")
	Path     string // Absolute path to library file
	Dir      string // Directory holding the file
	Type     string // Extension: ".so", ".a", ".dylib", ".lib"
	IsStatic bool   // True for .a and .lib files
}

// Environment is a set of install prefixes searched for one target
type Environment struct {
	Prefixes []string
	OS       platform.OS
	Layout   Layout
}

// New creates an Environment for targetOS over prefixes
func New(targetOS platform.OS, prefixes []string) *Environment {
	return &Environment{
		Prefixes: prefixes,
		OS:       targetOS,
		Layout:   DefaultLayout(targetOS),
	}
}
