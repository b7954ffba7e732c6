package formatter

import (
	"fmt"

	"github.com/alexanderramin/tomato/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatClock renders seconds as zero-padded MM:SS. 60:59 is the widest
// value a phase can hold.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseTitle is the display name of phase, e.g. "Work".
func PhaseTitle(phase domain.Phase) string {
	return titleCaser.String(string(phase))
}

// EditTitle heads the duration form, e.g. "Edit Break Timer".
func EditTitle(phase domain.Phase) string {
	return fmt.Sprintf("Edit %s Timer", PhaseTitle(phase))
}

// Elapsed returns the finished fraction of a phase in [0, 1].
func Elapsed(remaining, total int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(total-remaining) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
