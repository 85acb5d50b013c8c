package reporting

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/judgeboard/judgeboard/internal/models"
	"golang.org/x/term"
)

// DefaultChartWidth is the bar width used when the output is not a terminal.
const DefaultChartWidth = 50

const barRune = "█"

// ChartOptions controls bar chart rendering.
type ChartOptions struct {
	// Width is the number of cells the longest bar occupies.
	Width int
	// Color enables ANSI colors.
	Color bool
}

// ChartOptionsFor picks options suited to f: colored bars sized to the
// terminal when f is a terminal, plain fixed-width bars otherwise.
func ChartOptionsFor(f *os.File) ChartOptions {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return ChartOptions{Width: DefaultChartWidth}
	}
	opts := ChartOptions{Width: DefaultChartWidth, Color: !color.NoColor}
	if cols, _, err := term.GetSize(fd); err == nil {
		// Leave room for the label and the value.
		opts.Width = max(10, min(cols-40, 80))
	}
	return opts
}

// WriteBarChart renders rows as horizontal bars proportional to their total
// score, in the order given. Teams with a non-positive total get no bar.
func WriteBarChart(w io.Writer, rows []models.TeamSummary, opts ChartOptions) error {
	if opts.Width <= 0 {
		opts.Width = DefaultChartWidth
	}

	bar := color.New(color.FgHiBlue)
	label := color.New(color.Bold)
	if opts.Color {
		bar.EnableColor()
		label.EnableColor()
	} else {
		bar.DisableColor()
		label.DisableColor()
	}

	labelWidth := 0
	top := 0.0
	for _, r := range rows {
		labelWidth = max(labelWidth, displayWidth(r.Team))
		top = max(top, r.Total)
	}

	var b strings.Builder
	b.WriteString(label.Sprint("Total Scores by Team"))
	b.WriteString("\n\n")
	for _, r := range rows {
		n := barLength(r.Total, top, opts.Width)
		fmt.Fprintf(&b, "%s │%s %.2f\n",
			padRight(r.Team, labelWidth),
			bar.Sprint(strings.Repeat(barRune, n)),
			r.Total)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func barLength(total, top float64, width int) int {
	if top <= 0 || total <= 0 {
		return 0
	}
	return int(math.Round(total / top * float64(width)))
}
