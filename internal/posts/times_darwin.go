//go:build darwin

package posts

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string, info fs.FileInfo) fileTimes {
	ft := fileTimes{Modified: info.ModTime()}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err == nil {
		ft.Birth = time.Unix(st.Birthtimespec.Unix())
		ft.HasBirth = true
	}
	return ft
}
