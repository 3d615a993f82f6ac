// Package display formats human-readable sizes and counts for console output.
package display

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes returns a human-readable IEC size (B, KiB, MiB, ...).
func FormatBytes(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.IBytes(uint64(-bytes))
	}
	return humanize.IBytes(uint64(bytes))
}

// FormatCount returns n with thousands separators (e.g. "12,345").
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatShare returns part as a percentage of total (e.g. "12.5%").
// A zero total yields "0.0%".
func FormatShare(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
