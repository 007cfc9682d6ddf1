//go:build windows

package staleness

import (
	"io/fs"
	"syscall"
	"time"
)

func birthTime(_ string, info fs.FileInfo) (time.Time, error) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, errNoBirthTime
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), nil
}
