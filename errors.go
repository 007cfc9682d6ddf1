// errors.go
package ggbuild

import (
	"github.com/arc-language/ggbuild/pkg/core"
)

var (
	// ErrConfiguration indicates conflicting or invalid build settings
	ErrConfiguration = core.ErrConfiguration

	// ErrGeneration indicates the binding generator failed
	ErrGeneration = core.ErrGeneration

	// ErrTimestamp indicates freshness of the bindings could not be proven
	ErrTimestamp = core.ErrTimestamp

	// ErrCompile indicates the native toolchain or external build failed
	ErrCompile = core.ErrCompile

	// ErrLink indicates link directives could not be produced
	ErrLink = core.ErrLink
)

// Error wraps an error with the operation and kind it belongs to
type Error = core.Error

// KindOf returns the kind of err, or nil if it has none
func KindOf(err error) error {
	return core.KindOf(err)
}
