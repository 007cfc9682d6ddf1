package bindgen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arc-language/ggbuild/pkg/core"
)

// DefaultCommand is the binding generator executable
const DefaultCommand = "bindgen"

// deriveArgs mirror the derive and layout options the bindings have always
// been generated with
var deriveArgs = []string{
	"--with-derive-partialeq",
	"--with-derive-partialord",
	"--with-derive-eq",
	"--with-derive-ord",
	"--with-derive-hash",
	"--impl-debug",
	"--merge-extern-blocks",
	"--enable-function-attribute-detection",
	"--sort-semantically",
}

// Command runs the bindgen CLI
type Command struct {
	Path      string   // Executable, DefaultCommand if empty
	ExtraArgs []string // Appended after the generated options
	ClangArgs []string // Passed to clang after "--"
}

// Args returns the command line for generating header with req's rules
func (c *Command) Args(header string, req Request) []string {
	args := []string{header}
	args = append(args, deriveArgs...)
	for _, line := range req.RawLines {
		args = append(args, "--raw-line", line)
	}
	for _, f := range req.AllowFiles {
		args = append(args, "--allowlist-file", f)
	}
	args = append(args, c.ExtraArgs...)
	if len(c.ClangArgs) > 0 {
		args = append(args, "--")
		args = append(args, c.ClangArgs...)
	}
	return args
}

// Generate implements Generator
func (c *Command) Generate(ctx context.Context, req Request) ([]byte, error) {
	path := c.Path
	if path == "" {
		path = DefaultCommand
	}

	header := req.Headers[0]
	if len(req.Headers) > 1 {
		wrapper, cleanup, err := wrapperHeader(req.Headers)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		header = wrapper
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, c.Args(header, req)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e := core.NewError(core.ErrGeneration, path, req.Headers[0], err)
		e.Output = stderr.Bytes()
		return nil, e
	}

	return stdout.Bytes(), nil
}

// wrapperHeader writes a header including every root, for generators that
// accept a single input file
func wrapperHeader(headers []string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "ggbuild-bindgen-*")
	if err != nil {
		return "", nil, fmt.Errorf("creating temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	var b strings.Builder
	for _, h := range headers {
		fmt.Fprintf(&b, "#include %q\n", filepath.ToSlash(h))
	}

	path := filepath.Join(dir, "wrapper.h")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("writing wrapper header: %w", err)
	}
	return path, cleanup, nil
}
