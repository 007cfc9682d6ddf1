// pkg/platform/triple.go
package platform

import (
	"fmt"
	"runtime"
	"strings"
)

// Triple is an architecture/OS pair, rendered Nix style ("x86_64-linux")
type Triple struct {
	Arch Arch
	OS   OS
}

// String returns the Nix-style representation of the triple
func (t Triple) String() string {
	return fmt.Sprintf("%s-%s", t.Arch, t.OS)
}

// HostTriple returns the triple of the running process
func HostTriple() Triple {
	return Triple{
		Arch: ParseArch(runtime.GOARCH),
		OS:   ParseOS(runtime.GOOS),
	}
}

// ParseTriple parses a target identifier. Accepted shapes:
//
//	x86_64-linux                 (Nix)
//	aarch64-apple-darwin         (LLVM)
//	x86_64-unknown-linux-gnu     (LLVM)
//	x86_64-pc-windows-msvc       (LLVM)
//	linux/amd64                  (Go)
func ParseTriple(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Triple{}, fmt.Errorf("empty target triple")
	}

	if goos, goarch, ok := strings.Cut(s, "/"); ok {
		return Triple{Arch: ParseArch(goarch), OS: ParseOS(goos)}, nil
	}

	parts := strings.Split(s, "-")
	if len(parts) < 2 {
		return Triple{}, fmt.Errorf("invalid target triple: %q", s)
	}

	t := Triple{Arch: ParseArch(parts[0]), OS: OSOther}
	// The OS component is the first one that names a known system; vendor
	// and ABI components ("unknown", "pc", "gnu") are skipped.
	for _, p := range parts[1:] {
		if os := ParseOS(p); os != OSOther {
			t.OS = os
			break
		}
	}
	return t, nil
}

// ABI returns the trailing ABI component of an LLVM-style triple, if any
func ABI(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 4 {
		return ""
	}
	return parts[len(parts)-1]
}
