//go:build !linux && !darwin

package posts

import "io/fs"

func statTimes(_ string, info fs.FileInfo) fileTimes {
	return fileTimes{Modified: info.ModTime()}
}
