package source

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"zombiezen.com/go/nix/nar"
)

func extractNAR(r io.Reader, format Format, dest string) (int, error) {
	dr, err := decompress(r, format)
	if err != nil {
		return 0, err
	}

	nr := nar.NewReader(dr)
	count := 0
	for {
		hdr, err := nr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading NAR entry: %w", err)
		}

		target, err := safeJoin(dest, hdr.Path)
		if err != nil {
			return count, err
		}

		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf("creating directory %s: %w", target, err)
			}
		case os.ModeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return count, fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, target); err != nil {
				return count, fmt.Errorf("creating symlink: %w", err)
			}
		case 0:
			if err := writeEntry(target, hdr.Mode, hdr.Size, nr); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}
