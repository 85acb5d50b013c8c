package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/judgeboard/judgeboard/internal/reporting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShow_Table(t *testing.T) {
	dir := writeFixture(t)

	out, errOut, err := runCLI(t, "show", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Leaderboard (2 session(s))")
	assert.Contains(t, out, "Number of Judges")
	assert.Contains(t, out, "170.00")
	assert.Contains(t, out, "85.00")
	assert.Contains(t, out, "Total Scores by Team")

	// Ranked by total: MOD (170), Aerial AI (90), Sard (0).
	table := out[:strings.Index(out, "Total Scores by Team")]
	mod := strings.Index(table, "MOD")
	aerial := strings.Index(table, "Aerial AI")
	sard := strings.Index(table, "Sard")
	assert.True(t, mod < aerial && aerial < sard, "unexpected order:\n%s", table)

	assert.Contains(t, errOut, "1 session file(s) skipped")
	assert.Contains(t, errOut, "session_broken.json")
}

func TestShow_NoChart(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "show", "--dir", dir, "--no-chart")
	require.NoError(t, err)
	assert.Contains(t, out, "Rank")
	assert.NotContains(t, out, "Total Scores by Team")
}

func TestShow_JSON(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "show", "--dir", dir, "--format", "json")
	require.NoError(t, err)

	var report reporting.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Teams, 3)

	top := report.Teams[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, 1, top.TeamID)
	assert.Equal(t, 170.0, top.Total)
	assert.Equal(t, 85.0, top.Average)
	assert.Equal(t, 2, top.JudgeCount)

	last := report.Teams[2]
	assert.Equal(t, "Sard", last.Team)
	assert.Equal(t, 0.0, last.Average)
	assert.Equal(t, 0, last.JudgeCount)

	require.Len(t, report.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "session_broken.json"), report.Skipped[0].Path)
}

func TestShow_CSV(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "show", "--dir", dir, "-f", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"Rank", "Team", "Total Score", "Average Score", "Number of Judges"}, records[0])
	assert.Equal(t, []string{"2", "Aerial AI", "90.00", "90.00", "1"}, records[2])
}

func TestShow_Markdown(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "show", "--dir", dir, "-f", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "| 1 | MOD | 170.00 | 85.00 | 2 |")
}

func TestShow_UnknownFormat(t *testing.T) {
	_, _, err := runCLI(t, "show", "--dir", writeFixture(t), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestShow_NoSessionsStillListsCatalog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".judgeboard.yaml"), []byte(fixtureConfig), 0o644))

	out, errOut, err := runCLI(t, "show", "--dir", dir, "-f", "json")
	require.NoError(t, err)
	assert.Empty(t, errOut)

	var report reporting.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Teams, 3)
	// All tied at zero: catalog order is kept.
	assert.Equal(t, "MOD", report.Teams[0].Team)
	assert.Equal(t, "Sard", report.Teams[2].Team)
}

func TestShow_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".judgeboard.yaml"), []byte("teams: [unclosed\n"), 0o644))

	_, _, err := runCLI(t, "show", "--dir", dir)
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))
}
