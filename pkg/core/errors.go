// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
	"strings"
)

// Every build failure is fatal and belongs to exactly one of these kinds
var (
	// ErrConfiguration indicates conflicting or invalid build settings
	ErrConfiguration = errors.New("configuration error")

	// ErrGeneration indicates the binding generator failed
	ErrGeneration = errors.New("binding generation failed")

	// ErrTimestamp indicates file metadata could not be read
	ErrTimestamp = errors.New("timestamp unavailable")

	// ErrCompile indicates the native toolchain or external build failed
	ErrCompile = errors.New("compile failed")

	// ErrLink indicates link directives could not be produced
	ErrLink = errors.New("link failed")
)

// Error wraps a failure with the operation and kind it belongs to
type Error struct {
	Op     string // Operation that failed
	Path   string // File or directory if applicable
	Kind   error  // One of the Err* kinds
	Err    error  // Underlying error
	Output []byte // Diagnostics of an external tool, verbatim
}

// NewError builds an *Error of the given kind
func NewError(kind error, op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// Errorf builds an *Error of the given kind from a format string
func Errorf(kind error, op, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Path != "" {
		b.WriteString(" ")
		b.WriteString(e.Path)
	}
	b.WriteString(": ")
	switch {
	case e.Kind != nil && e.Err != nil:
		fmt.Fprintf(&b, "%v: %v", e.Kind, e.Err)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	}
	if len(e.Output) > 0 {
		b.WriteString("\n")
		b.Write(e.Output)
	}
	return b.String()
}

// Unwrap exposes both the kind and the underlying error to errors.Is
func (e *Error) Unwrap() []error {
	var errs []error
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the kind of err, or nil if it has none
func KindOf(err error) error {
	for _, kind := range []error{ErrConfiguration, ErrGeneration, ErrTimestamp, ErrCompile, ErrLink} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
