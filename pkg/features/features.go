// Package features determines which CPU instruction-set extensions a build
// may assume, either by probing the running CPU or from a declared list.
package features

import (
	"strings"
)

// Vocabulary lists the x86 extensions the build knows how to enable, in the
// order their compiler flags are emitted.
var Vocabulary = []string{"fma", "avx", "avx2", "f16c", "sse3"}

// Set is the fixed collection of capabilities usable by one build.
// Only fields relevant to the target architecture are ever populated.
type Set struct {
	// x86 family
	FMA  bool
	AVX  bool
	AVX2 bool
	F16C bool
	SSE3 bool

	// aarch64
	NativeTune bool // tune for the running CPU
	AppleTune  bool // fixed Apple M1 tuning pair
}

// Has reports whether the named x86 extension is enabled
func (s Set) Has(name string) bool {
	switch name {
	case "fma":
		return s.FMA
	case "avx":
		return s.AVX
	case "avx2":
		return s.AVX2
	case "f16c":
		return s.F16C
	case "sse3":
		return s.SSE3
	default:
		return false
	}
}

// Names returns the enabled x86 extensions in vocabulary order
func (s Set) Names() []string {
	var names []string
	for _, name := range Vocabulary {
		if s.Has(name) {
			names = append(names, name)
		}
	}
	return names
}

// IsEmpty reports whether no extension is assumed
func (s Set) IsEmpty() bool {
	return s == Set{}
}

// String returns a string representation of the set
func (s Set) String() string {
	parts := s.Names()
	if s.NativeTune {
		parts = append(parts, "native-tune")
	}
	if s.AppleTune {
		parts = append(parts, "apple-m1-tune")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ",")
}

// ParseList intersects a comma-separated feature list with the vocabulary.
// Unknown and empty entries are ignored.
func ParseList(list string) Set {
	var s Set
	for _, f := range strings.Split(list, ",") {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case "fma":
			s.FMA = true
		case "avx":
			s.AVX = true
		case "avx2":
			s.AVX2 = true
		case "f16c":
			s.F16C = true
		case "sse3":
			s.SSE3 = true
		}
	}
	return s
}
