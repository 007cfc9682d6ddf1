package bindgen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/core"
)

type fakeGenerator struct {
	out   []byte
	err   error
	calls int
	last  Request
}

func (f *fakeGenerator) Generate(_ context.Context, req Request) ([]byte, error) {
	f.calls++
	f.last = req
	return f.out, f.err
}

func TestInvokerWritesOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "bindings.rs")
	gen := &fakeGenerator{out: []byte("pub fn ggml_init();\n")}

	err := NewInvoker(gen, nil).Generate(context.Background(), Request{
		Headers:  []string{filepath.Join(dir, "ggml.h")},
		RawLines: DefaultPreamble("0.1.0"),
		Output:   out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "pub fn ggml_init();\n", string(data))

	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, gen.last.Headers, gen.last.AllowFiles)
	assert.True(t, filepath.IsAbs(gen.last.Headers[0]))
}

func TestInvokerOverwrites(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bindings.rs")
	require.NoError(t, os.WriteFile(out, []byte("old contents that are longer"), 0644))

	gen := &fakeGenerator{out: []byte("new")}
	require.NoError(t, NewInvoker(gen, nil).Generate(context.Background(), Request{
		Headers: []string{"ggml.h"},
		Output:  out,
	}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	entries, err := os.ReadDir(filepath.Dir(out))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestInvokerDoesNotMutateRequest(t *testing.T) {
	headers := []string{"ggml.h"}
	gen := &fakeGenerator{out: []byte("x")}
	require.NoError(t, NewInvoker(gen, nil).Generate(context.Background(), Request{
		Headers: headers,
		Output:  filepath.Join(t.TempDir(), "b.rs"),
	}))
	assert.Equal(t, []string{"ggml.h"}, headers)
}

func TestInvokerErrors(t *testing.T) {
	out := filepath.Join(t.TempDir(), "bindings.rs")
	tests := []struct {
		name string
		gen  *fakeGenerator
		req  Request
	}{
		{"no header", &fakeGenerator{out: []byte("x")}, Request{Output: out}},
		{"no output", &fakeGenerator{out: []byte("x")}, Request{Headers: []string{"ggml.h"}}},
		{"generator failure", &fakeGenerator{err: errors.New("parse error")}, Request{Headers: []string{"ggml.h"}, Output: out}},
		{"empty output", &fakeGenerator{}, Request{Headers: []string{"ggml.h"}, Output: out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvoker(tt.gen, nil).Generate(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrGeneration)

			_, statErr := os.Stat(out)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestInvokerKeepsKindedErrors(t *testing.T) {
	kinded := core.NewError(core.ErrGeneration, "bindgen", "ggml.h", errors.New("exit status 1"))
	kinded.Output = []byte("fatal error: 'stdio.h' file not found")

	err := NewInvoker(&fakeGenerator{err: kinded}, nil).Generate(context.Background(), Request{
		Headers: []string{"ggml.h"},
		Output:  filepath.Join(t.TempDir(), "b.rs"),
	})

	var ce *core.Error
	require.ErrorAs(t, err, &ce)
	assert.Same(t, kinded, ce)
	assert.Contains(t, err.Error(), "stdio.h")
}

func TestCommandArgs(t *testing.T) {
	c := &Command{ExtraArgs: []string{"--no-layout-tests"}, ClangArgs: []string{"-Iinclude"}}
	args := c.Args("/src/ggml.h", Request{
		RawLines:   []string{"#![allow(unused)]"},
		AllowFiles: []string{"/src/ggml.h"},
	})

	assert.Equal(t, "/src/ggml.h", args[0])
	assert.Subset(t, args, deriveArgs)
	assert.Contains(t, args, "#![allow(unused)]")
	assert.Equal(t, []string{"--no-layout-tests", "--", "-Iinclude"}, args[len(args)-3:])

	idx := indexOf(args, "--allowlist-file")
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "/src/ggml.h", args[idx+1])
}

func TestCommandArgsWithoutClangArgs(t *testing.T) {
	args := (&Command{}).Args("ggml.h", Request{})
	assert.NotContains(t, args, "--")
	assert.Len(t, args, 1+len(deriveArgs))
}

func TestWrapperHeader(t *testing.T) {
	path, cleanup, err := wrapperHeader([]string{"/src/ggml.h", "/src/ggml-metal.h"})
	require.NoError(t, err)
	defer cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#include \"/src/ggml.h\"\n#include \"/src/ggml-metal.h\"\n", string(data))
}

func TestHeaders(t *testing.T) {
	assert.Equal(t,
		[]string{filepath.Join("src", "ggml.h")},
		Headers("src", "ggml.h", backend.Config{CuBLAS: true}))

	assert.Equal(t,
		[]string{
			filepath.Join("src", "ggml.h"),
			filepath.Join("src", "ggml-cuda.h"),
			filepath.Join("src", "ggml-metal.h"),
		},
		Headers("src", "ggml.h", backend.Config{UseCMake: true, CuBLAS: true, Metal: true}))
}

func TestDefaultPreamble(t *testing.T) {
	lines := DefaultPreamble("1.2.3")
	assert.Equal(t, `pub const GGMLSYS_VERSION: Option<&str> = Some("1.2.3");`, lines[len(lines)-1])
}

func TestDefaultPreambleWithoutVersion(t *testing.T) {
	lines := DefaultPreamble("")
	assert.Equal(t, `pub const GGMLSYS_VERSION: Option<&str> = None;`, lines[len(lines)-1])
}

func TestRustString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"0.1.0", `"0.1.0"`},
		{`a"b`, `"a\"b"`},
		{`c:\x`, `"c:\\x"`},
		{"a\tb\n", `"a\tb\n"`},
		{"\x01", `"\u{1}"`},
		{"é", `"é"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rustString(tt.in), tt.in)
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}
