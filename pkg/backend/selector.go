// pkg/backend/selector.go
package backend

import (
	"github.com/arc-language/ggbuild/pkg/platform"
)

// metalFrameworks are linked whenever Metal is built through the external build
var metalFrameworks = []string{"Foundation", "Metal", "MetalKit", "MetalPerformanceShaders"}

// Select maps the backend configuration and target OS to the ordered link
// directives of the final binary. The configuration is validated first; an
// invalid one yields no directives.
//
// Search paths always come before library directives.
func Select(targetOS platform.OS, cfg Config, out Output) ([]Directive, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	var search, libs []Directive
	for _, dir := range out.VendorDirs {
		search = appendUnique(search, Search(dir))
	}
	if out.Dir != "" {
		search = appendUnique(search, Search(out.Dir))
	}
	if out.Library != "" {
		libs = append(libs, Library(out.Library, LinkStatic))
	}

	if cfg.UseCMake {
		libs = append(libs, primaryLibraries(targetOS, cfg)...)
	}

	if targetOS == platform.OSMacOS {
		for _, fw := range out.Frameworks {
			libs = appendUnique(libs, Library(fw, LinkFramework))
		}
		if !cfg.NoAccelerate {
			libs = appendUnique(libs, Library("Accelerate", LinkFramework))
		}
		if cfg.UseCMake && cfg.Metal {
			for _, fw := range metalFrameworks {
				libs = appendUnique(libs, Library(fw, LinkFramework))
			}
		}
	}

	if cfg.UseCMake {
		if rt := cxxRuntime(targetOS); rt != "" {
			libs = append(libs, Library(rt, LinkDynamic))
		}
	}

	return append(search, libs...), nil
}

// primaryLibraries returns the compute library links of the highest
// precedence backend; lower ones are ignored.
func primaryLibraries(targetOS platform.OS, cfg Config) []Directive {
	switch cfg.Primary() {
	case BackendCuBLAS:
		return []Directive{Library("cublas", LinkDynamic)}
	case BackendCLBlast:
		opencl := Library("OpenCL", LinkDynamic)
		if targetOS == platform.OSMacOS {
			opencl.Link = LinkFramework
		}
		return []Directive{Library("clblast", LinkDynamic), opencl}
	case BackendOpenBLAS:
		return []Directive{Library("openblas", LinkDynamic)}
	default:
		return nil
	}
}

// cxxRuntime is the C++ standard library the external build's objects need
func cxxRuntime(targetOS platform.OS) string {
	switch targetOS {
	case platform.OSWindows:
		return ""
	case platform.OSMacOS:
		return "c++"
	default:
		return "stdc++"
	}
}

func appendUnique(ds []Directive, d Directive) []Directive {
	for _, existing := range ds {
		if existing == d {
			return ds
		}
	}
	return append(ds, d)
}
