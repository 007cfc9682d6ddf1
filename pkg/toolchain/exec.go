// pkg/toolchain/exec.go
package toolchain

import (
	"bytes"
	"context"
	"os/exec"
)

// Executor runs external tools
type Executor interface {
	// Run executes name with args in dir and returns its combined output
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools as child processes
type ExecRunner struct {
	Env []string // Extra environment, appended to the current one
}

// Run implements Executor
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &out
	cmd.Stderr = &out
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}
	err := cmd.Run()
	return out.Bytes(), err
}
