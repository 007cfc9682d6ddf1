//go:build !linux && !darwin && !windows

package staleness

import (
	"io/fs"
	"time"
)

func birthTime(string, fs.FileInfo) (time.Time, error) {
	return time.Time{}, errNoBirthTime
}
