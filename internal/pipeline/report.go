package pipeline

import (
	"fmt"

	"github.com/backmassage/iconsort/internal/display"
	"github.com/backmassage/iconsort/internal/logging"
	"github.com/backmassage/iconsort/internal/naming"
	"github.com/backmassage/iconsort/internal/planner"
	"github.com/backmassage/iconsort/internal/term"
)

// maxPlanRows caps the per-category table; the remainder is folded into one line.
const maxPlanRows = 25

// logPlan prints the per-category breakdown of a plan, largest first. The
// uncategorized bucket is painted as a fallback so it stands out in the table.
func logPlan(log *logging.Logger, s planner.Summary) {
	log.Info("Plan: %s files into %s categories",
		display.FormatCount(s.Files), display.FormatCount(len(s.Categories)))

	rest, restFiles := 0, 0
	for i, c := range s.Categories {
		if i >= maxPlanRows {
			rest++
			restFiles += c.Files
			continue
		}
		style := term.Category
		if c.Category == naming.DefaultCategory {
			style = term.Fallback
		}
		log.Info("  %s %s  %6s",
			style.Paint(fmt.Sprintf("%-32s", c.Category)),
			term.Count.Paint(fmt.Sprintf("%7s", display.FormatCount(c.Files))),
			display.FormatShare(c.Files, s.Files))
	}
	if rest > 0 {
		log.Info("  ... %d more categories, %s files", rest, display.FormatCount(restFiles))
	}
	if s.Uncategorized > 0 {
		log.Warn("%s files have no catalog entry and go to %s",
			display.FormatCount(s.Uncategorized), term.Fallback.Paint(naming.DefaultCategory))
	}
	if s.Renamed > 0 {
		log.Warn("%s files will be renamed with the %s marker",
			display.FormatCount(s.Renamed), term.Fallback.Paint(naming.DupMarker))
	}
}
