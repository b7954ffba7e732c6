package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tomato/internal/domain"
	"github.com/dustin/go-humanize"
)

// FormatStats renders the session counters for `tomato stats`.
// updatedAt may be zero when nothing has been recorded yet.
func FormatStats(s domain.SessionStats, updatedAt, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Sessions"))
	b.WriteString("\n")
	for _, p := range domain.Phases {
		fmt.Fprintf(&b, "%-6s %s\n", PhaseTitle(p), Bold(humanize.Comma(int64(s.Count(p)))))
	}
	if updatedAt.IsZero() {
		b.WriteString(Dim("No sessions recorded yet."))
	} else {
		b.WriteString(Dim("Last recorded " + humanize.RelTime(updatedAt, now, "ago", "from now")))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatStatsLine is the compact one-line form used by the TUI footer.
func FormatStatsLine(s domain.SessionStats) string {
	return fmt.Sprintf("%s work · %s break",
		humanize.Comma(int64(s.WorkSessionsCompleted)),
		humanize.Comma(int64(s.BreakSessionsCompleted)))
}
