package bindgen

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/arc-language/ggbuild/pkg/core"
)

// Invoker runs a Generator and writes its output
type Invoker struct {
	gen    Generator
	logger *log.Logger
}

// NewInvoker creates an Invoker around gen. A nil logger discards output.
func NewInvoker(gen Generator, logger *log.Logger) *Invoker {
	return &Invoker{gen: gen, logger: core.NewLogger(logger, false)}
}

// Generate produces the bindings for req and replaces req.Output with them.
// Any failure is a generation error; it is never retried.
func (i *Invoker) Generate(ctx context.Context, req Request) error {
	if len(req.Headers) == 0 {
		return core.NewError(core.ErrGeneration, "generate", "", errors.New("no header given"))
	}
	if req.Output == "" {
		return core.NewError(core.ErrGeneration, "generate", req.Headers[0], errors.New("no output path given"))
	}

	req.Headers = append([]string(nil), req.Headers...)
	for idx, h := range req.Headers {
		abs, err := filepath.Abs(h)
		if err != nil {
			return core.NewError(core.ErrGeneration, "resolve", h, err)
		}
		req.Headers[idx] = abs
	}
	if len(req.AllowFiles) == 0 {
		req.AllowFiles = req.Headers
	}

	i.logger.Printf("Generating bindings for %v -> %s", req.Headers, req.Output)

	out, err := i.gen.Generate(ctx, req)
	if err != nil {
		var ce *core.Error
		if errors.As(err, &ce) && ce.Kind != nil {
			return err
		}
		return core.NewError(core.ErrGeneration, "generate", req.Headers[0], err)
	}
	if len(out) == 0 {
		return core.NewError(core.ErrGeneration, "generate", req.Headers[0], errors.New("generator produced no output"))
	}

	if err := writeFile(req.Output, out); err != nil {
		return core.NewError(core.ErrGeneration, "write", req.Output, err)
	}

	i.logger.Printf("Wrote %d bytes to %s", len(out), req.Output)
	return nil
}

// writeFile replaces path with data through a temporary file in the same
// directory, so a failed write never leaves truncated bindings behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing bindings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}

	return os.Rename(tmp.Name(), path)
}
