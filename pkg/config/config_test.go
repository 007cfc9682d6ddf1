package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ggbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_dir: vendor/ggml
profile: release
backends:
  use_cmake: true
  cublas: true
bindgen:
  clang_args: ["-I/usr/lib/clang/17/include"]
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "vendor/ggml", cfg.SourceDir)
	assert.Equal(t, "release", cfg.Profile)
	assert.True(t, cfg.Backends.UseCMake)
	assert.True(t, cfg.Backends.CuBLAS)
	assert.Equal(t, []string{"-I/usr/lib/clang/17/include"}, cfg.Bindgen.ClangArgs)
	assert.Equal(t, "ggml.h", cfg.Header)
	assert.Equal(t, "ggml", cfg.Library)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ggbuild.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backends: [oops"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Target = "aarch64-apple-darwin"
	cfg.Backends.Metal = true

	require.NoError(t, SaveConfig(cfg, path))
	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvTarget:         "x86_64-unknown-linux-gnu",
		EnvTargetFeatures: "avx,avx2",
		EnvProfile:        "release",
		"CC":              "gcc",
		EnvCC:             "clang",
		EnvUseCMake:       "1",
		EnvOpenBLAS:       "",
		EnvNoKQuants:      "false",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	cfg.Backends.NoKQuants = true
	require.NoError(t, cfg.ApplyEnv(lookup))

	assert.Equal(t, "x86_64-unknown-linux-gnu", cfg.Target)
	assert.Equal(t, "avx,avx2", cfg.TargetFeatures)
	assert.Equal(t, "release", cfg.Profile)
	assert.Equal(t, "clang", cfg.Compiler)
	assert.True(t, cfg.Backends.UseCMake)
	assert.True(t, cfg.Backends.OpenBLAS)
	assert.False(t, cfg.Backends.NoKQuants)
	assert.False(t, cfg.Readonly)
}

func TestApplyEnvInvalidBool(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(func(k string) (string, bool) {
		if k == EnvCuBLAS {
			return "maybe", true
		}
		return "", false
	})
	assert.ErrorContains(t, err, EnvCuBLAS)
}

func TestCMakeDst(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join("build", "cmake"), cfg.CMakeDst())
	cfg.CMake.DstDir = "/tmp/dst"
	assert.Equal(t, "/tmp/dst", cfg.CMakeDst())
}
