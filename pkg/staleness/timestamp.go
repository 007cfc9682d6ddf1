package staleness

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/arc-language/ggbuild/pkg/core"
)

var errNoBirthTime = errors.New("creation time not supported on this platform")

// Timestamp returns the modification time of path, falling back to its
// creation time when the modification time is unavailable.
func Timestamp(path string) (time.Time, error) {
	return timestamp(path, nil)
}

func timestamp(path string, info fs.FileInfo) (time.Time, error) {
	if info == nil {
		var err error
		info, err = os.Stat(path)
		if err != nil {
			return time.Time{}, core.NewError(core.ErrTimestamp, "stat", path, err)
		}
	}

	if mt := info.ModTime(); !mt.IsZero() {
		return mt, nil
	}

	bt, err := birthTime(path, info)
	if err != nil {
		return time.Time{}, core.NewError(core.ErrTimestamp, "birth time", path, err)
	}
	if bt.IsZero() {
		return time.Time{}, core.NewError(core.ErrTimestamp, "birth time", path, errNoBirthTime)
	}
	return bt, nil
}
