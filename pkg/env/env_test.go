package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/platform"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestFindLibrary(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "usr", "lib", "x86_64-linux-gnu", "libopenblas.so.0"))
	touch(t, filepath.Join(root, "usr", "local", "cuda", "lib64", "libcublas.so"))
	touch(t, filepath.Join(root, "usr", "local", "cuda", "lib64", "libcublas_static.a"))

	e := New(platform.OSLinux, []string{filepath.Join(root, "usr", "local", "cuda"), root})

	blas := e.FindLibrary("openblas")
	require.NotNil(t, blas)
	assert.Equal(t, filepath.Join(root, "usr", "lib", "x86_64-linux-gnu"), blas.Dir)
	assert.Equal(t, ".so", blas.Type)
	assert.False(t, blas.IsStatic)

	cublas := e.FindLibrary("cublas")
	require.NotNil(t, cublas)
	assert.Equal(t, filepath.Join(root, "usr", "local", "cuda", "lib64", "libcublas.so"), cublas.Path)

	assert.False(t, e.HasLibrary("clblast"))
}

func TestFindLibraryWindows(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "lib", "x64", "cublas.lib"))

	lib := New(platform.OSWindows, []string{root}).FindLibrary("cublas")
	require.NotNil(t, lib)
	assert.True(t, lib.IsStatic)
}

func TestLibraryDirs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "lib", "libclblast.dylib"))
	touch(t, filepath.Join(root, "lib", "libOpenCL.a"))

	e := New(platform.OSMacOS, []string{root, filepath.Join(root, "missing")})
	assert.Equal(t, []string{filepath.Join(root, "lib")}, e.LibraryDirs([]string{"clblast", "OpenCL", "nothere"}))
	assert.Equal(t, []string{filepath.Join(root, "lib")}, e.GetLibraryPaths())
	assert.Empty(t, e.GetIncludePaths())
}

func TestLibraries(t *testing.T) {
	assert.Nil(t, Libraries(platform.OSLinux, backend.Config{OpenBLAS: true}))
	assert.Equal(t, []string{"cublas"}, Libraries(platform.OSLinux, backend.Config{UseCMake: true, CuBLAS: true, OpenBLAS: true}))
	assert.Equal(t, []string{"clblast", "OpenCL"}, Libraries(platform.OSLinux, backend.Config{UseCMake: true, CLBlast: true}))
	assert.Equal(t, []string{"clblast"}, Libraries(platform.OSMacOS, backend.Config{UseCMake: true, CLBlast: true}))
	assert.Equal(t, []string{"openblas"}, Libraries(platform.OSMacOS, backend.Config{UseCMake: true, OpenBLAS: true}))
}

func TestDefaultPrefixes(t *testing.T) {
	lookup := func(key string) (string, bool) {
		if key == "CUDA_PATH" {
			return "/opt/cuda", true
		}
		return "", false
	}

	got := DefaultPrefixes(platform.OSLinux, backend.Config{UseCMake: true, CuBLAS: true}, lookup)
	assert.Equal(t, []string{"/opt/cuda", "/usr/local/cuda", "/usr", "/usr/local"}, got)

	got = DefaultPrefixes(platform.OSMacOS, backend.Config{UseCMake: true, OpenBLAS: true}, nil)
	assert.Equal(t, []string{"/opt/homebrew/opt/openblas", "/usr/local/opt/openblas", "/opt/homebrew", "/usr/local"}, got)

	assert.Empty(t, DefaultPrefixes(platform.OSWindows, backend.Config{}, nil))
}
