// Package term decides whether console output is colored and paints text by
// role: log levels, the banner, and the category names and fallbacks shown
// in plan tables.
//
// Color is a process-wide switch set once by [Configure]; files written by the
// logger never go through Paint.
package term

import (
	"os"
	"strings"
	"sync/atomic"

	"github.com/backmassage/iconsort/internal/config"
)

// Style is an ANSI SGR sequence for one role of console text.
type Style string

const reset = "\033[0m"

// Log levels.
const (
	Info    Style = "\033[1;94m"
	Success Style = "\033[1;92m"
	Warn    Style = "\033[1;93m"
	Error   Style = "\033[1;91m"
	Debug   Style = "\033[1;96m"
)

// Output roles.
const (
	Banner   Style = "\033[1;95m"
	Category Style = "\033[36m" // A catalog category name.
	Fallback Style = "\033[33m" // The uncategorized bucket and _dup renames.
	Count    Style = "\033[1m"
)

var enabled atomic.Bool

// Paint wraps s in the style when colors are on. Empty strings stay empty.
func (st Style) Paint(s string) string {
	if s == "" || !enabled.Load() {
		return s
	}
	return string(st) + s + reset
}

// Configure turns color on or off for the rest of the process.
func Configure(mode config.ColorMode) {
	enabled.Store(wantColor(mode, os.Stdout))
}

// Enabled reports whether Paint currently emits escape codes.
func Enabled() bool { return enabled.Load() }

// wantColor resolves auto mode against the terminal, NO_COLOR
// (https://no-color.org), and TERM=dumb.
func wantColor(mode config.ColorMode, out *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" || strings.EqualFold(os.Getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(out)
}

// IsTerminal reports whether f is a character device.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
