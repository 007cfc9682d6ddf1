// pkg/core/logger.go
package core

import (
	"io"
	"log"
	"os"
)

// NewLogger returns the logger a component uses when none is supplied
func NewLogger(logger *log.Logger, debug bool) *log.Logger {
	if logger != nil {
		return logger
	}
	if debug {
		return log.New(os.Stderr, "[DEBUG] ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}
