// Package bindgen drives the external binding generator for the ggml headers
// and persists what it produces.
package bindgen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arc-language/ggbuild/pkg/backend"
)

// Request is one invocation of the binding generator
type Request struct {
	Headers    []string // Generation roots, in order
	AllowFiles []string // Only symbols declared in these files are emitted
	RawLines   []string // Injected verbatim at the top of the output
	Output     string   // Destination of the generated source
}

// Generator is the external binding generator
type Generator interface {
	Generate(ctx context.Context, req Request) ([]byte, error)
}

// VersionConstant is the name of the version constant injected into the bindings
const VersionConstant = "GGMLSYS_VERSION"

// DefaultPreamble returns the lint suppressions and version constant placed
// at the top of the generated bindings. An empty version yields None.
func DefaultPreamble(version string) []string {
	value := "None"
	if version != "" {
		value = "Some(" + rustString(version) + ")"
	}
	return []string{
		"#![allow(non_upper_case_globals)]",
		"#![allow(non_camel_case_types)]",
		"#![allow(non_snake_case)]",
		"#![allow(unused)]",
		fmt.Sprintf("pub const %s: Option<&str> = %s;", VersionConstant, value),
	}
}

// rustString quotes s as a Rust string literal
func rustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, `\u{%x}`, r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Headers returns the generation roots for a build: the main header, plus
// the backend headers an external build exposes.
func Headers(sourceDir, header string, cfg backend.Config) []string {
	headers := []string{filepath.Join(sourceDir, header)}
	if !cfg.UseCMake {
		return headers
	}
	if cfg.CuBLAS {
		headers = append(headers, filepath.Join(sourceDir, "ggml-cuda.h"))
	}
	if cfg.CLBlast {
		headers = append(headers, filepath.Join(sourceDir, "ggml-opencl.h"))
	}
	if cfg.Metal {
		headers = append(headers, filepath.Join(sourceDir, "ggml-metal.h"))
	}
	return headers
}
