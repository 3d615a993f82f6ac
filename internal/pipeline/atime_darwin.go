//go:build darwin

package pipeline

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time recorded in fi, or the zero time
// when the platform data is unavailable.
func accessTime(fi os.FileInfo) time.Time {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}
	}
	return time.Unix(st.Atimespec.Sec, st.Atimespec.Nsec)
}
