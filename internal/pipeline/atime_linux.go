//go:build linux

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
	return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec))
}
