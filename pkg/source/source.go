// Package source makes sure the native sources exist on disk, unpacking a
// vendored bundle when the source tree is absent.
package source

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/arc-language/ggbuild/pkg/core"
)

// Format is the container format of a source bundle
type Format string

const (
	FormatTarXZ  Format = "tar.xz"
	FormatTarBZ2 Format = "tar.bz2"
	FormatTar    Format = "tar"
	FormatNARXZ  Format = "nar.xz"
	FormatNAR    Format = "nar"
)

// DetectFormat infers the bundle format from its file name
func DetectFormat(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".tar.xz"), strings.HasSuffix(name, ".txz"):
		return FormatTarXZ, nil
	case strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tbz2"):
		return FormatTarBZ2, nil
	case strings.HasSuffix(name, ".tar"):
		return FormatTar, nil
	case strings.HasSuffix(name, ".nar.xz"):
		return FormatNARXZ, nil
	case strings.HasSuffix(name, ".nar"):
		return FormatNAR, nil
	default:
		return "", fmt.Errorf("unsupported bundle format: %s", filepath.Base(path))
	}
}

// Options control how a bundle is unpacked
type Options struct {
	// Strip removes this many leading path components from tar entries
	Strip  int
	// SHA256 is the expected digest of the bundle, skipped when empty
	SHA256 string
	Logger *log.Logger
}

// Ensure makes dir available. An existing dir is left untouched; otherwise
// bundle is unpacked into it. It reports whether anything was unpacked.
func Ensure(dir, bundle string, opts Options) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, core.Errorf(core.ErrConfiguration, "ensure sources", "%s is not a directory", dir)
	case !os.IsNotExist(err):
		return false, core.NewError(core.ErrTimestamp, "ensure sources", dir, err)
	}

	if bundle == "" {
		return false, core.Errorf(core.ErrConfiguration, "ensure sources",
			"source directory %s does not exist and no bundle is configured", dir)
	}
	if opts.SHA256 != "" {
		if err := Verify(bundle, opts.SHA256); err != nil {
			return false, core.NewError(core.ErrConfiguration, "verify", bundle, err)
		}
	}
	if err := Unpack(bundle, dir, opts); err != nil {
		return false, core.NewError(core.ErrConfiguration, "unpack", bundle, err)
	}
	return true, nil
}

// Unpack extracts bundle into dest. A partially extracted tree is removed
// on failure.
func Unpack(bundle, dest string, opts Options) error {
	logger := core.NewLogger(opts.Logger, false)

	format, err := DetectFormat(bundle)
	if err != nil {
		return err
	}

	f, err := os.Open(bundle)
	if err != nil {
		return fmt.Errorf("opening bundle: %w", err)
	}
	defer f.Close()

	logger.Printf("Unpacking %s (%s) -> %s", bundle, format, dest)

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	var count int
	switch format {
	case FormatTarXZ, FormatTarBZ2, FormatTar:
		count, err = extractTar(f, format, dest, opts.Strip)
	case FormatNARXZ, FormatNAR:
		count, err = extractNAR(f, format, dest)
	}
	if err != nil {
		os.RemoveAll(dest)
		return err
	}

	logger.Printf("Extraction complete (%d files)", count)
	return nil
}

// safeJoin joins name under dest, rejecting entries that escape it
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, name)
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("entry %q escapes destination", name)
	}
	return target, nil
}

// stripComponents drops n leading components of a slash-separated path.
// It returns "" when nothing is left.
func stripComponents(name string, n int) string {
	name = strings.TrimPrefix(name, "./")
	for i := 0; i < n; i++ {
		idx := strings.Index(name, "/")
		if idx < 0 {
			return ""
		}
		name = name[idx+1:]
	}
	return name
}
