// Package flags plans the compiler flags and preprocessor defines of the
// direct compile path. Planning is pure: it never touches the filesystem or
// the host CPU.
package flags

import (
	"github.com/arc-language/ggbuild/pkg/features"
	"github.com/arc-language/ggbuild/pkg/platform"
)

// Define is a preprocessor definition. An empty Value defines Name alone.
type Define struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value,omitempty"`
}

func (d Define) String() string {
	if d.Value == "" {
		return d.Name
	}
	return d.Name + "=" + d.Value
}

// Flags is the outcome of planning
type Flags struct {
	Flags      []string `yaml:"flags"`
	Defines    []Define `yaml:"defines"`
	Warnings   bool     `yaml:"warnings"`
	Frameworks []string `yaml:"frameworks,omitempty"`
}

// Input carries everything the planner decides on
type Input struct {
	Target       platform.Target
	Features     features.Set
	Profile      platform.Profile
	NoAccelerate bool
	NoKQuants    bool
}

// Plan builds the flag set for one compile
func Plan(in Input) Flags {
	var f Flags

	switch {
	case in.Target.Arch.IsX86():
		f.Flags = x86Flags(in.Target.Compiler, in.Features)
	case in.Target.Arch == platform.ArchAarch64:
		f.Flags = aarch64Flags(in.Target, in.Features)
	}

	if in.Target.OS == platform.OSMacOS && !in.NoAccelerate {
		f.Defines = append(f.Defines, Define{Name: "GGML_USE_ACCELERATE"})
		f.Frameworks = append(f.Frameworks, "Accelerate")
	}
	if !in.NoKQuants {
		f.Defines = append(f.Defines, Define{Name: "GGML_USE_K_QUANTS"})
	}
	if in.Profile == platform.ProfileRelease {
		f.Defines = append(f.Defines, Define{Name: "NDEBUG"})
	}

	return f
}

func x86Flags(cc platform.Compiler, set features.Set) []string {
	switch {
	case cc.IsGNULike():
		flags := []string{"-pthread"}
		for _, name := range set.Names() {
			flags = append(flags, "-m"+name)
		}
		return flags
	case cc == platform.CompilerMSVC:
		// MSVC only has the coarse /arch levels
		switch {
		case set.AVX2:
			return []string{"/arch:AVX2"}
		case set.AVX:
			return []string{"/arch:AVX"}
		}
	}
	return nil
}

func aarch64Flags(t platform.Target, set features.Set) []string {
	if !t.Compiler.IsGNULike() {
		return nil
	}
	var flags []string
	switch {
	case set.NativeTune:
		flags = append(flags, "-mcpu=native")
	case set.AppleTune:
		flags = append(flags, "-mcpu=apple-m1", "-mfpu=neon")
	}
	return append(flags, "-pthread")
}
