// pkg/platform/detect.go
package platform

import (
	"fmt"
)

// Target describes the platform one build compiles for.
// It is resolved once at the start of a build and never mutated.
type Target struct {
	Arch     Arch
	OS       OS
	Native   bool     // host and target are the same
	Compiler Compiler // C compiler family
}

// Options are the raw identifiers a Target is resolved from.
// Empty fields fall back to the running host.
type Options struct {
	Target   string // target triple
	Host     string // host triple
	Compiler string // compiler path, name or family
}

// Detect resolves a Target from the given identifiers
func Detect(opts Options) (*Target, error) {
	host := HostTriple()
	if opts.Host != "" {
		h, err := ParseTriple(opts.Host)
		if err != nil {
			return nil, fmt.Errorf("parsing host: %w", err)
		}
		host = h
	}

	target := host
	if opts.Target != "" {
		t, err := ParseTriple(opts.Target)
		if err != nil {
			return nil, fmt.Errorf("parsing target: %w", err)
		}
		target = t
	}

	abi := ABI(opts.Target)
	compiler := ResolveCompiler(opts.Compiler, target, abi)

	// Triples that both name an ABI must agree on it too: a gnu host
	// building for musl is a cross build.
	native := host == target
	if hostABI := ABI(opts.Host); native && abi != "" && hostABI != "" {
		native = abi == hostABI
	}

	return &Target{
		Arch:     target.Arch,
		OS:       target.OS,
		Native:   native,
		Compiler: compiler,
	}, nil
}

// Triple returns the architecture/OS pair of the target
func (t *Target) Triple() Triple {
	return Triple{Arch: t.Arch, OS: t.OS}
}

// String returns a string representation of the target
func (t *Target) String() string {
	return fmt.Sprintf("%s (compiler: %s, native: %t)", t.Triple(), t.Compiler, t.Native)
}
