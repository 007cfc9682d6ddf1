package source

import (
	"archive/tar"
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

func decompress(r io.Reader, format Format) (io.Reader, error) {
	br := bufio.NewReader(r)
	switch format {
	case FormatTarXZ, FormatNARXZ:
		xr, err := xz.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("creating xz reader: %w", err)
		}
		return xr, nil
	case FormatTarBZ2:
		return bzip2.NewReader(br), nil
	default:
		return br, nil
	}
}

func extractTar(r io.Reader, format Format, dest string, strip int) (int, error) {
	dr, err := decompress(r, format)
	if err != nil {
		return 0, err
	}

	tr := tar.NewReader(dr)
	count := 0
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("reading tar entry: %w", err)
		}

		name := stripComponents(hdr.Name, strip)
		if name == "" {
			continue
		}
		target, err := safeJoin(dest, name)
		if err != nil {
			return count, err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return count, fmt.Errorf("creating directory %s: %w", target, err)
			}
		case tar.TypeSymlink:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return count, fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return count, fmt.Errorf("creating symlink: %w", err)
			}
		case tar.TypeReg:
			if err := writeEntry(target, hdr.FileInfo().Mode().Perm(), hdr.Size, tr); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func writeEntry(target string, mode os.FileMode, size int64, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("creating parent directory: %w", err)
	}

	perm := os.FileMode(0644)
	if mode&0111 != 0 {
		perm = 0755
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", target, err)
	}
	written, err := io.Copy(out, r)
	out.Close()
	if err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	if written != size {
		return fmt.Errorf("size mismatch for %s: %d != %d", target, written, size)
	}
	return nil
}
