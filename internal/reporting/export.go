package reporting

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/judgeboard/judgeboard/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// Format is an output format of the show command.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON, FormatCSV, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q: must be table, json, csv or markdown", s)
	}
}

// Report is the JSON export document.
type Report struct {
	Teams   []models.TeamSummary `json:"teams"`
	Skipped []SkippedFile        `json:"skipped,omitempty"`
}

// SkippedFile is the JSON form of a diagnostic.
type SkippedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// NewReport builds the export document for rows and diags.
func NewReport(rows []models.TeamSummary, diags []models.Diagnostic) Report {
	r := Report{Teams: rows}
	if r.Teams == nil {
		r.Teams = []models.TeamSummary{}
	}
	for _, d := range diags {
		r.Skipped = append(r.Skipped, SkippedFile{Path: d.Path, Error: d.Message()})
	}
	return r
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteCSV renders rows as CSV with a header row.
func WriteCSV(w io.Writer, rows []models.TeamSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Team,
			strconv.FormatFloat(r.Total, 'f', 2, 64),
			strconv.FormatFloat(r.Average, 'f', 2, 64),
			strconv.Itoa(r.JudgeCount),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMarkdown renders rows as a GitHub-flavored Markdown table.
func WriteMarkdown(w io.Writer, rows []models.TeamSummary) error {
	var b strings.Builder
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|---:|:---|---:|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %d | %s | %.2f | %.2f | %d |\n",
			r.Rank, escapeMarkdownCell(r.Team), r.Total, r.Average, r.JudgeCount)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// CriterionLabel turns a criterion identifier into a display label:
// "long_term_vision" becomes "Long Term Vision".
func CriterionLabel(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "_", " "))
}
