// Package reporting renders leaderboard summaries for terminals and exports.
// It formats what it is given and performs no aggregation of its own.
package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/mattn/go-runewidth"
)

// Column headers shared by every tabular format.
var headers = []string{"Rank", "Team", "Total Score", "Average Score", "Number of Judges"}

// WriteTable renders rows as an aligned plain-text table.
func WriteTable(w io.Writer, rows []models.TeamSummary) error {
	nameWidth := runewidth.StringWidth(headers[1])
	for _, r := range rows {
		nameWidth = max(nameWidth, runewidth.StringWidth(r.Team))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-4s  %s  %11s  %13s  %16s\n",
		headers[0], padRight(headers[1], nameWidth), headers[2], headers[3], headers[4])
	b.WriteString(strings.Repeat("-", 4+2+nameWidth+2+11+2+13+2+16))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%-4d  %s  %11.2f  %13.2f  %16d\n",
			r.Rank, padRight(r.Team, nameWidth), r.Total, r.Average, r.JudgeCount)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteDiagnostics lists skipped session files. Nothing is written when
// diags is empty.
func WriteDiagnostics(w io.Writer, diags []models.Diagnostic) error {
	if len(diags) == 0 {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n%d session file(s) skipped:\n", len(diags))
	for _, d := range diags {
		fmt.Fprintf(&b, "  - %s: %s\n", d.Path, d.Message())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// padRight pads s with spaces to the given display width, accounting for
// wide and combining characters.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}
