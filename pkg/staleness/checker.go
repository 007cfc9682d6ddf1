// Package staleness decides whether a generated artifact is older than the
// native inputs it was produced from.
package staleness

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/arc-language/ggbuild/pkg/core"
)

// Checker compares artifact and source timestamps
type Checker struct {
	logger *log.Logger
}

// New creates a Checker. A nil logger discards output.
func New(logger *log.Logger) *Checker {
	return &Checker{logger: core.NewLogger(logger, false)}
}

// IsStale reports whether artifact must be regenerated from sources using
// a default Checker.
func IsStale(artifact string, sources []string) (bool, error) {
	return New(nil).IsStale(artifact, sources)
}

// IsStale reports whether artifact must be regenerated.
//
// A missing or empty artifact is stale. Otherwise the artifact is stale iff
// some source is strictly newer; equal timestamps are fresh. Any metadata
// failure is an error, never an assumption of freshness.
func (c *Checker) IsStale(artifact string, sources []string) (bool, error) {
	info, err := os.Stat(artifact)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Printf("%s does not exist", artifact)
		return true, nil
	}
	if err != nil {
		return false, core.NewError(core.ErrTimestamp, "stat", artifact, err)
	}
	if info.Size() == 0 {
		c.logger.Printf("%s is empty", artifact)
		return true, nil
	}

	artifactTime, err := timestamp(artifact, info)
	if err != nil {
		return false, err
	}

	newest, newestPath, err := c.Newest(sources)
	if err != nil {
		return false, err
	}
	if newest.After(artifactTime) {
		c.logger.Printf("%s (%s) is newer than %s (%s)",
			newestPath, newest.Format(time.RFC3339Nano), artifact, artifactTime.Format(time.RFC3339Nano))
		return true, nil
	}

	return false, nil
}

// Newest returns the latest timestamp among paths and the file it belongs to.
// A directory contributes every regular file beneath it.
func (c *Checker) Newest(paths []string) (time.Time, string, error) {
	var newest time.Time
	var newestPath string

	consider := func(path string, info fs.FileInfo) error {
		ts, err := timestamp(path, info)
		if err != nil {
			return err
		}
		if newestPath == "" || ts.After(newest) {
			newest, newestPath = ts, path
		}
		return nil
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return time.Time{}, "", core.NewError(core.ErrTimestamp, "stat", path, err)
		}
		if !info.IsDir() {
			if err := consider(path, info); err != nil {
				return time.Time{}, "", err
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return core.NewError(core.ErrTimestamp, "walk", p, walkErr)
			}
			if !d.Type().IsRegular() {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return core.NewError(core.ErrTimestamp, "stat", p, err)
			}
			return consider(p, fi)
		})
		if err != nil {
			return time.Time{}, "", err
		}
	}

	return newest, newestPath, nil
}
