//go:build linux

package posts

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string, info fs.FileInfo) fileTimes {
	ft := fileTimes{Modified: info.ModTime()}

	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		ft.Birth = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
		ft.HasBirth = true
	}
	return ft
}
