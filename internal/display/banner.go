package display

import (
	"fmt"
	"io"

	"github.com/backmassage/iconsort/internal/term"
)

const banner = ` _                                _
(_) ___ ___  _ __  ___  ___  _ __| |_
| |/ __/ _ \| '_ \/ __|/ _ \| '__| __|
| | (_| (_) | | | \__ \ (_) | |  | |_
|_|\___\___/|_| |_|___/\___/|_|   \__|`

// PrintBanner writes the ASCII art banner to w, in the banner color when
// colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprintln(w, term.Banner.Paint(banner))
}
