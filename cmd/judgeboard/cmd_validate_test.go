package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ReportsProblems(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "validate", "--dir", dir)
	require.Error(t, err)

	var vErr *ValidationFailedError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "1 of 3 session file(s) failed validation", vErr.Message)
	assert.Equal(t, ExitValidationFailed, exitCode(err))

	assert.Contains(t, out, "✓ session_amy.json (2 team(s) scored)")
	assert.Contains(t, out, "✓ session_bob.json (1 team(s) scored)")
	assert.Contains(t, out, "team_99 is not in the team catalog")
	assert.Contains(t, out, "✗ session_broken.json")
	assert.Contains(t, out, "/team_1/problem_definition")
	assert.NotContains(t, out, "notes.json")
}

func TestValidate_AllValid(t *testing.T) {
	dir := writeFixture(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "session_broken.json")))

	out, _, err := runCLI(t, "validate", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "All 2 session file(s) are valid")
}

func TestValidate_ExplicitFiles(t *testing.T) {
	dir := writeFixture(t)

	out, _, err := runCLI(t, "validate", "--dir", dir, filepath.Join(dir, "session_amy.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ session_amy.json")
	assert.NotContains(t, out, "session_bob.json")
}

func TestValidate_MalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "session_cut.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"team_1": {`), 0o644))

	out, _, err := runCLI(t, "validate", "--dir", dir, path)
	require.Error(t, err)
	assert.Contains(t, out, "✗ session_cut.json")
	assert.Contains(t, out, "JSON parse error")
}

func TestValidate_MissingFile(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runCLI(t, "validate", "--dir", dir, filepath.Join(dir, "session_gone.json"))
	require.Error(t, err)
	assert.Contains(t, out, "✗ session_gone.json")
}

func TestValidate_NoSessionFiles(t *testing.T) {
	out, _, err := runCLI(t, "validate", "--dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No session files found")
}
