// pkg/platform/resolver.go
package platform

import (
	"os/exec"
	"strings"
)

// ResolveCompiler determines the compiler family for a build.
//
// Priority:
//  1. An explicit family name ("gnu", "clang", "msvc")
//  2. The basename of a compiler path or command
//  3. The platform default (cl for windows-msvc, cc elsewhere)
func ResolveCompiler(cc string, target Triple, abi string) Compiler {
	if cc != "" {
		if c, err := ParseCompiler(cc); err == nil {
			return c
		}
		return FamilyFromName(cc, probeVersion)
	}

	if target.OS == OSWindows {
		if abi == "gnu" {
			return CompilerGNU
		}
		return CompilerMSVC
	}
	if target.OS == OSMacOS {
		return CompilerClang
	}
	return FamilyFromName(DefaultCompiler(target), probeVersion)
}

// DefaultCompiler returns the compiler command used when none is configured
func DefaultCompiler(target Triple) string {
	if target.OS == OSWindows && commandExists("cl") {
		return "cl"
	}
	if commandExists("cc") {
		return "cc"
	}
	if commandExists("clang") {
		return "clang"
	}
	return "gcc"
}

// FamilyFromName classifies a compiler by the basename of its command.
// Generic driver names ("cc", "c++") are ambiguous; for those the version
// probe is consulted, and GNU is assumed when it says nothing.
// Both separators are accepted since a windows toolchain may be
// configured from a non-windows host.
func FamilyFromName(cc string, probe func(string) string) Compiler {
	name := strings.ToLower(cc[strings.LastIndexAny(cc, `/\`)+1:])
	name = strings.TrimSuffix(name, ".exe")

	switch {
	case name == "cl" || name == "clang-cl":
		return CompilerMSVC
	case strings.Contains(name, "clang"):
		return CompilerClang
	case strings.Contains(name, "gcc") || strings.Contains(name, "g++"):
		return CompilerGNU
	case name == "cc" || name == "c++":
		if probe != nil && strings.Contains(strings.ToLower(probe(cc)), "clang") {
			return CompilerClang
		}
		return CompilerGNU
	default:
		return CompilerOther
	}
}

// probeVersion returns the output of "cc --version", or "" on failure
func probeVersion(cc string) string {
	if !commandExists(cc) {
		return ""
	}
	out, err := exec.Command(cc, "--version").CombinedOutput()
	if err != nil {
		return ""
	}
	return string(out)
}
