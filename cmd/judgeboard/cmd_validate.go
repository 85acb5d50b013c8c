package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/judgeboard/judgeboard/internal/projectconfig"
	"github.com/judgeboard/judgeboard/internal/session"
	"github.com/judgeboard/judgeboard/internal/validation"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func newValidateCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file...]",
		Short: "Check session files for problems",
		Long: `Check session files for problems.

Validates each session file against the session schema and reports every
problem found. The leaderboard silently skips files that fail these checks;
validate shows why. Team keys that are not in the configured catalog are
reported as warnings.

Without arguments, every session_*.json file in the sessions directory is
checked. Exits with status 1 when any file fails validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateCommandE(cmd, opts, args)
		},
	}
	return cmd
}

func validateCommandE(cmd *cobra.Command, opts *globalOptions, args []string) error {
	cfg, err := projectconfig.Load(opts.dir)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		files, err := session.List(cfg.ResolvedSessionsDir())
		if err != nil {
			return fmt.Errorf("listing sessions: %w", err)
		}
		paths = lo.Map(files, func(f session.File, _ int) string { return f.Path })
	}

	out := cmd.OutOrStdout()
	if len(paths) == 0 {
		fmt.Fprintf(out, "No session files found in %s\n", cfg.ResolvedSessionsDir()) //nolint:errcheck
		return nil
	}

	catalog := lo.Associate(cfg.Teams, func(t models.Team) (string, bool) { return t.Key(), true })

	failed := 0
	for _, p := range paths {
		if !validateFile(out, p, catalog) {
			failed++
		}
	}

	if failed > 0 {
		return &ValidationFailedError{
			Message: fmt.Sprintf("%d of %d session file(s) failed validation", failed, len(paths)),
		}
	}
	fmt.Fprintf(out, "\nAll %d session file(s) are valid\n", len(paths)) //nolint:errcheck
	return nil
}

// validateFile reports problems with one session file and returns whether
// the file would be ingested.
func validateFile(out io.Writer, path string, catalog map[string]bool) bool {
	name := filepath.Base(path)

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(out, "✗ %s\n  - %v\n", name, err) //nolint:errcheck
		return false
	}

	if problems := validation.ValidateSessionBytes(data); len(problems) > 0 {
		fmt.Fprintf(out, "✗ %s\n", name) //nolint:errcheck
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p) //nolint:errcheck
		}
		return false
	}

	rec, err := session.Parse(session.SessionName(name), data)
	if err != nil {
		fmt.Fprintf(out, "✗ %s\n  - %v\n", name, err) //nolint:errcheck
		return false
	}

	keys := lo.Keys(rec.Teams)
	slices.Sort(keys)
	unknown := lo.Reject(keys, func(k string, _ int) bool { return catalog[k] })

	fmt.Fprintf(out, "✓ %s (%d team(s) scored)\n", name, len(keys)-len(unknown)) //nolint:errcheck
	for _, k := range unknown {
		fmt.Fprintf(out, "  ! %s is not in the team catalog and will be ignored\n", k) //nolint:errcheck
	}
	return true
}
