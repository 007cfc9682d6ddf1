// pkg/platform/types.go
package platform

import (
	"fmt"
	"strings"
)

// Arch is the target CPU architecture family
type Arch string

const (
	ArchX86     Arch = "x86"
	ArchX8664   Arch = "x86_64"
	ArchAarch64 Arch = "aarch64"
	ArchOther   Arch = "other"
)

// IsX86 reports whether the architecture belongs to the x86 family
func (a Arch) IsX86() bool {
	return a == ArchX86 || a == ArchX8664
}

// OS is the target operating system
type OS string

const (
	OSMacOS   OS = "macos"
	OSLinux   OS = "linux"
	OSWindows OS = "windows"
	OSOther   OS = "other"
)

// Compiler is the C compiler family
type Compiler string

const (
	CompilerGNU   Compiler = "gnu"
	CompilerClang Compiler = "clang"
	CompilerMSVC  Compiler = "msvc"
	CompilerOther Compiler = "other"
)

// IsGNULike reports whether the compiler accepts GCC-style flags
func (c Compiler) IsGNULike() bool {
	return c == CompilerGNU || c == CompilerClang
}

// Profile is the build profile
type Profile string

const (
	ProfileDebug   Profile = "debug"
	ProfileRelease Profile = "release"
)

// ParseArch maps an architecture identifier to an Arch.
// Unknown identifiers map to ArchOther.
func ParseArch(s string) Arch {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "386", "i386", "i486", "i586", "i686":
		return ArchX86
	case "x86_64", "amd64", "x64":
		return ArchX8664
	case "aarch64", "arm64":
		return ArchAarch64
	default:
		return ArchOther
	}
}

// ParseOS maps an operating system identifier to an OS.
// Unknown identifiers map to OSOther.
func ParseOS(s string) OS {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "macos", "darwin", "apple", "osx":
		return OSMacOS
	case "linux":
		return OSLinux
	case "windows", "win32", "mingw32", "mingw":
		return OSWindows
	default:
		return OSOther
	}
}

// ParseCompiler maps a compiler family name to a Compiler
func ParseCompiler(s string) (Compiler, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gnu", "gcc":
		return CompilerGNU, nil
	case "clang":
		return CompilerClang, nil
	case "msvc", "cl":
		return CompilerMSVC, nil
	case "other":
		return CompilerOther, nil
	default:
		return "", fmt.Errorf("unknown compiler family: %q", s)
	}
}

// ParseProfile maps a profile name to a Profile. An empty name is debug.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "debug", "dev":
		return ProfileDebug, nil
	case "release":
		return ProfileRelease, nil
	default:
		return "", fmt.Errorf("unknown build profile: %q", s)
	}
}
