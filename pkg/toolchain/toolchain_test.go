package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/ggbuild/pkg/core"
	"github.com/arc-language/ggbuild/pkg/flags"
	"github.com/arc-language/ggbuild/pkg/platform"
)

type call struct {
	name string
	args []string
}

type fakeExec struct {
	calls  []call
	failOn string
	output []byte
}

func (f *fakeExec) Run(_ context.Context, _, name string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if name == f.failOn {
		return f.output, errors.New("exit status 1")
	}
	return nil, nil
}

func testFlags() flags.Flags {
	return flags.Flags{
		Flags:   []string{"-pthread", "-mavx"},
		Defines: []flags.Define{{Name: "GGML_USE_K_QUANTS"}, {Name: "NDEBUG"}},
	}
}

func TestCompileArgsGNU(t *testing.T) {
	req := Request{IncludeDirs: []string{"src/include"}, Flags: testFlags()}
	args := CompileArgs(platform.CompilerGNU, "src/ggml.c", "out/ggml.o", req)
	assert.Equal(t, []string{
		"-c", "-w", "-Isrc/include",
		"-DGGML_USE_K_QUANTS", "-DNDEBUG",
		"-pthread", "-mavx",
		"-o", "out/ggml.o", "src/ggml.c",
	}, args)
}

func TestCompileArgsMSVC(t *testing.T) {
	req := Request{
		IncludeDirs: []string{`src\include`},
		Flags:       flags.Flags{Flags: []string{"/arch:AVX2"}, Defines: []flags.Define{{Name: "NDEBUG"}}},
	}
	args := CompileArgs(platform.CompilerMSVC, `src\ggml.c`, `out\ggml.obj`, req)
	assert.Equal(t, []string{
		"/nologo", "/c", "/W0", `/Isrc\include`, "/DNDEBUG", "/arch:AVX2",
		`/Foout\ggml.obj`, `src\ggml.c`,
	}, args)
}

func TestArchiveArgs(t *testing.T) {
	assert.Equal(t, []string{"crs", "libggml.a", "a.o", "b.o"}, ArchiveArgs(platform.CompilerClang, "libggml.a", []string{"a.o", "b.o"}))
	assert.Equal(t, []string{"/nologo", "/OUT:ggml.lib", "a.obj"}, ArchiveArgs(platform.CompilerMSVC, "ggml.lib", []string{"a.obj"}))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "libggml.a", StaticLibName(platform.CompilerGNU, "ggml"))
	assert.Equal(t, "ggml.lib", StaticLibName(platform.CompilerMSVC, "ggml"))
	assert.Equal(t, "k_quants.o", ObjectName(platform.CompilerGNU, "src/k_quants.c"))
	assert.Equal(t, "k_quants.obj", ObjectName(platform.CompilerMSVC, "src/k_quants.c"))
}

func TestNewDefaults(t *testing.T) {
	tc := New(platform.CompilerMSVC, "", "", nil)
	assert.Equal(t, "cl", tc.CC)
	assert.Equal(t, "lib", tc.AR)

	tc = New(platform.CompilerGNU, "gcc-12", "", nil)
	assert.Equal(t, "gcc-12", tc.CC)
	assert.Equal(t, "ar", tc.AR)
}

func TestCompile(t *testing.T) {
	out := t.TempDir()
	fe := &fakeExec{}
	tc := New(platform.CompilerGNU, "cc", "ar", nil)
	tc.Exec = fe

	err := tc.Compile(context.Background(), Request{
		Sources: []string{"src/ggml.c", "src/k_quants.c"},
		Flags:   testFlags(),
		OutDir:  out,
		Library: "ggml",
	})
	require.NoError(t, err)

	require.Len(t, fe.calls, 3)
	assert.Equal(t, "cc", fe.calls[0].name)
	assert.Equal(t, "cc", fe.calls[1].name)
	assert.Equal(t, "ar", fe.calls[2].name)
	assert.Equal(t, []string{
		"crs", filepath.Join(out, "libggml.a"),
		filepath.Join(out, "ggml.o"), filepath.Join(out, "k_quants.o"),
	}, fe.calls[2].args)
}

func TestCompileRemovesStaleArchive(t *testing.T) {
	out := t.TempDir()
	archive := filepath.Join(out, "libggml.a")
	require.NoError(t, os.WriteFile(archive, []byte("!<arch>\n"), 0644))

	tc := New(platform.CompilerGNU, "cc", "ar", nil)
	tc.Exec = &fakeExec{}
	require.NoError(t, tc.Compile(context.Background(), Request{Sources: []string{"ggml.c"}, OutDir: out, Library: "ggml"}))

	_, err := os.Stat(archive)
	assert.True(t, os.IsNotExist(err))
}

func TestCompileFailureCarriesDiagnostics(t *testing.T) {
	fe := &fakeExec{failOn: "cc", output: []byte("ggml.c:1:1: error: unknown type name 'foo'")}
	tc := New(platform.CompilerGNU, "cc", "ar", nil)
	tc.Exec = fe

	err := tc.Compile(context.Background(), Request{
		Sources: []string{"ggml.c", "k_quants.c"},
		OutDir:  t.TempDir(),
		Library: "ggml",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrCompile)

	var ce *core.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, fe.output, ce.Output)
	assert.Len(t, fe.calls, 1, "compilation stops at the first failure")
}

func TestCompileArchiveFailure(t *testing.T) {
	tc := New(platform.CompilerGNU, "cc", "ar", nil)
	tc.Exec = &fakeExec{failOn: "ar", output: []byte("ar: bad archive")}

	err := tc.Compile(context.Background(), Request{Sources: []string{"ggml.c"}, OutDir: t.TempDir(), Library: "ggml"})
	assert.ErrorIs(t, err, core.ErrCompile)
	assert.Contains(t, err.Error(), "ar: bad archive")
}

func TestCompileValidatesRequest(t *testing.T) {
	tc := New(platform.CompilerGNU, "cc", "ar", nil)
	tc.Exec = &fakeExec{}

	assert.ErrorIs(t, tc.Compile(context.Background(), Request{OutDir: t.TempDir(), Library: "ggml"}), core.ErrCompile)
	assert.ErrorIs(t, tc.Compile(context.Background(), Request{Sources: []string{"ggml.c"}, OutDir: t.TempDir()}), core.ErrCompile)
}
