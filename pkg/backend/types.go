// pkg/backend/types.go
package backend

import (
	"fmt"
)

// BackendType names an optional acceleration backend
type BackendType string

const (
	// BackendCuBLAS uses CUDA cuBLAS (GPU backend A)
	BackendCuBLAS BackendType = "cublas"
	// BackendCLBlast uses CLBlast over OpenCL (GPU backend B)
	BackendCLBlast BackendType = "clblast"
	// BackendOpenBLAS uses OpenBLAS as the alternate BLAS vendor
	BackendOpenBLAS BackendType = "openblas"
	// BackendMetal uses Apple Metal through the external build
	BackendMetal BackendType = "metal"
	// BackendAccelerate uses the Apple Accelerate framework
	BackendAccelerate BackendType = "accelerate"
	// BackendNone means only the CPU kernels are used
	BackendNone BackendType = "none"
)

// Config holds the backend switches of one build
type Config struct {
	// UseCMake builds through the external build system instead of
	// compiling the sources directly
	UseCMake bool `yaml:"use_cmake"`

	CuBLAS   bool `yaml:"cublas"`
	CLBlast  bool `yaml:"clblast"`
	OpenBLAS bool `yaml:"openblas"`
	Metal    bool `yaml:"metal"`

	// NoAccelerate disables the Apple Accelerate framework
	NoAccelerate bool `yaml:"no_accelerate"`

	// NoKQuants disables the optimized k-quants kernel subset
	NoKQuants bool `yaml:"no_k_quants"`
}

// Primary returns the backend that decides the compute library link.
// Precedence is cuBLAS, then CLBlast, then OpenBLAS.
func (c Config) Primary() BackendType {
	switch {
	case c.CuBLAS:
		return BackendCuBLAS
	case c.CLBlast:
		return BackendCLBlast
	case c.OpenBLAS:
		return BackendOpenBLAS
	default:
		return BackendNone
	}
}

// Enabled lists every switched-on backend in precedence order
func (c Config) Enabled() []BackendType {
	var out []BackendType
	if c.CuBLAS {
		out = append(out, BackendCuBLAS)
	}
	if c.CLBlast {
		out = append(out, BackendCLBlast)
	}
	if c.OpenBLAS {
		out = append(out, BackendOpenBLAS)
	}
	if c.Metal {
		out = append(out, BackendMetal)
	}
	return out
}

// DirectiveKind tags a link directive
type DirectiveKind string

const (
	// DirectiveSearch adds a library search path
	DirectiveSearch DirectiveKind = "search"
	// DirectiveLibrary adds a library dependency
	DirectiveLibrary DirectiveKind = "library"
)

// LinkKind is how a library is linked
type LinkKind string

const (
	LinkStatic    LinkKind = "static"
	LinkDynamic   LinkKind = "dylib"
	LinkFramework LinkKind = "framework"
)

// Directive is one instruction to the final linking step
type Directive struct {
	Kind DirectiveKind `yaml:"kind"`
	Path string        `yaml:"path,omitempty"` // search directives
	Name string        `yaml:"name,omitempty"` // library directives
	Link LinkKind      `yaml:"link,omitempty"` // library directives
}

// Search returns a search-path directive
func Search(path string) Directive {
	return Directive{Kind: DirectiveSearch, Path: path}
}

// Library returns a library directive
func Library(name string, link LinkKind) Directive {
	return Directive{Kind: DirectiveLibrary, Name: name, Link: link}
}

// String renders the directive in key=value form
func (d Directive) String() string {
	if d.Kind == DirectiveSearch {
		return fmt.Sprintf("link-search=native=%s", d.Path)
	}
	if d.Link == LinkDynamic || d.Link == "" {
		return fmt.Sprintf("link-lib=%s", d.Name)
	}
	return fmt.Sprintf("link-lib=%s=%s", d.Link, d.Name)
}

// Output describes what the compile stage produced
type Output struct {
	Dir        string   // Directory holding the built static library
	Library    string   // Static library name, without prefix or extension
	Frameworks []string // Frameworks the compiled sources require
	VendorDirs []string // Extra directories holding vendor libraries
}
