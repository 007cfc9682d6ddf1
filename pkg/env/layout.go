// pkg/env/layout.go
package env

import (
	"path/filepath"

	"github.com/arc-language/ggbuild/pkg/backend"
	"github.com/arc-language/ggbuild/pkg/platform"
)

// DefaultLayout returns the library and include directories searched below
// every prefix on targetOS
func DefaultLayout(targetOS platform.OS) Layout {
	switch targetOS {
	case platform.OSMacOS:
		// Homebrew kegs and frameworks-free installs are flat
		return Layout{
			Libraries: []string{"lib"},
			Includes:  []string{"include"},
		}
	case platform.OSWindows:
		return Layout{
			Libraries: []string{"lib", filepath.Join("lib", "x64"), "bin"},
			Includes:  []string{"include"},
		}
	default:
		return Layout{
			Libraries: []string{
				"lib",
				"lib64",
				filepath.Join("lib", "x86_64-linux-gnu"),
				filepath.Join("lib", "aarch64-linux-gnu"),
				filepath.Join("usr", "lib"),
				filepath.Join("usr", "lib64"),
				filepath.Join("usr", "lib", "x86_64-linux-gnu"),
				filepath.Join("usr", "lib", "aarch64-linux-gnu"),
				filepath.Join("usr", "local", "lib"),
			},
			Includes: []string{
				"include",
				filepath.Join("usr", "include"),
				filepath.Join("usr", "local", "include"),
			},
		}
	}
}

// DefaultPrefixes returns the install prefixes vendor libraries are usually
// found under for the enabled backends. lookup reads environment variables.
func DefaultPrefixes(targetOS platform.OS, cfg backend.Config, lookup func(string) (string, bool)) []string {
	var prefixes []string
	add := func(p string) {
		if p == "" {
			return
		}
		for _, existing := range prefixes {
			if existing == p {
				return
			}
		}
		prefixes = append(prefixes, p)
	}
	fromEnv := func(key string) {
		if lookup == nil {
			return
		}
		if v, ok := lookup(key); ok {
			add(v)
		}
	}

	if cfg.CuBLAS {
		fromEnv("CUDA_PATH")
		if targetOS != platform.OSWindows {
			add("/usr/local/cuda")
		}
	}
	if cfg.CLBlast {
		fromEnv("CLBLAST_PATH")
	}
	if cfg.OpenBLAS {
		fromEnv("OPENBLAS_PATH")
		if targetOS == platform.OSMacOS {
			add("/opt/homebrew/opt/openblas")
			add("/usr/local/opt/openblas")
		}
	}

	switch targetOS {
	case platform.OSLinux, platform.OSOther:
		add("/usr")
		add("/usr/local")
	case platform.OSMacOS:
		add("/opt/homebrew")
		add("/usr/local")
	}
	return prefixes
}

// Libraries returns the vendor libraries the primary backend of cfg links
// dynamically. Frameworks are not searched for.
func Libraries(targetOS platform.OS, cfg backend.Config) []string {
	if !cfg.UseCMake {
		return nil
	}
	switch cfg.Primary() {
	case backend.BackendCuBLAS:
		return []string{"cublas"}
	case backend.BackendCLBlast:
		if targetOS == platform.OSMacOS {
			return []string{"clblast"}
		}
		return []string{"clblast", "OpenCL"}
	case backend.BackendOpenBLAS:
		return []string{"openblas"}
	default:
		return nil
	}
}

// LibraryExtensions returns file extensions to look for on targetOS,
// shared ones first
func LibraryExtensions(targetOS platform.OS) []string {
	switch targetOS {
	case platform.OSMacOS:
		return []string{".dylib", ".a"}
	case platform.OSWindows:
		return []string{".lib", ".dll"}
	default:
		return []string{".so", ".a"}
	}
}
