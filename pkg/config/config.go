// pkg/config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arc-language/ggbuild/pkg/backend"
)

// Config holds ggbuild configuration
type Config struct {
	SourceDir  string   `yaml:"source_dir"`
	Header     string   `yaml:"header"`
	IncludeDir string   `yaml:"include_dir"` // Relative to SourceDir
	Bindings   string   `yaml:"bindings"`
	Inputs     []string `yaml:"inputs,omitempty"` // Extra files the bindings depend on
	OutDir     string   `yaml:"out_dir"`
	Library    string   `yaml:"library"`
	Version    string   `yaml:"version"`

	// Bundle is unpacked into SourceDir when the source tree is missing
	Bundle       string `yaml:"bundle"`
	BundleSHA256 string `yaml:"bundle_sha256"`
	Strip        int    `yaml:"strip"`

	LinkFile    string `yaml:"link_file"` // Optional generated cgo file
	LinkPackage string `yaml:"link_package"`
	Format      string `yaml:"format"`

	Readonly       bool   `yaml:"readonly"`
	Profile        string `yaml:"profile"`
	Target         string `yaml:"target"`
	Host           string `yaml:"host"`
	TargetFeatures string `yaml:"target_features"`
	Compiler       string `yaml:"compiler"`
	Archiver       string `yaml:"archiver"`

	Backends       backend.Config `yaml:"backends"`
	SearchPrefixes []string       `yaml:"search_prefixes,omitempty"`

	Bindgen BindgenConfig `yaml:"bindgen"`
	CMake   CMakeConfig   `yaml:"cmake"`

	Debug  bool        `yaml:"debug"`
	Logger *log.Logger `yaml:"-"`
}

// BindgenConfig configures the binding generator command
type BindgenConfig struct {
	Command   string   `yaml:"command"`
	RawLines  []string `yaml:"raw_lines,omitempty"` // Replace the default preamble when set
	ExtraArgs []string `yaml:"extra_args,omitempty"`
	ClangArgs []string `yaml:"clang_args,omitempty"`
}

// CMakeConfig configures the external build
type CMakeConfig struct {
	Command     string   `yaml:"command"`
	Generator   string   `yaml:"generator"`
	BuildConfig string   `yaml:"build_config"`
	DstDir      string   `yaml:"dst_dir"` // Defaults to OutDir/cmake
	Defines     []string `yaml:"defines,omitempty"` // Appended after the backend defines
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		SourceDir:   "ggml-src",
		Header:      "ggml.h",
		IncludeDir:  "include",
		Bindings:    filepath.Join("src", "lib.rs"),
		OutDir:      "build",
		Library:     "ggml",
		LinkPackage: "ggml",
		Format:      string(backend.FormatLines),
		Profile:     "debug",
	}
}

// DefaultPath returns the configuration file used when none is given:
// ggbuild.yaml in the working directory if present, else the user config.
func DefaultPath() string {
	if _, err := os.Stat("ggbuild.yaml"); err == nil {
		return "ggbuild.yaml"
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ggbuild", "config.yaml")
}

// LoadConfig loads configuration from file. A missing file yields the
// defaults; fields absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return fmt.Errorf("no config path: home directory unknown")
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// CMakeDst returns the external build install prefix
func (c *Config) CMakeDst() string {
	if c.CMake.DstDir != "" {
		return c.CMake.DstDir
	}
	return filepath.Join(c.OutDir, "cmake")
}
