package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/judgeboard/judgeboard/internal/projectconfig"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// confirmOverwrite asks whether an existing file may be replaced.
// Replaced in tests.
var confirmOverwrite = promptOverwrite

func newInitCommand(opts *globalOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a .judgeboard.yaml with the default catalog",
		Long: `Create a .judgeboard.yaml with the default team catalog and rubric.

Edit the generated file to list your teams, adjust criterion weights, point
sessions_dir at the folder judges submit to and set dashboard options.

If no directory is specified, the --dir directory is used. An existing file
is only replaced after confirmation, or with --force.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}
			return initCommandE(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing .judgeboard.yaml without asking")

	return cmd
}

func initCommandE(cmd *cobra.Command, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, projectconfig.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		ok, err := confirmOverwrite(cmd.InOrStdin(), cmd.OutOrStdout(), path)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.OutOrStdout(), "Kept existing %s\n", path) //nolint:errcheck
			return nil
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	data, err := projectconfig.New().Marshal()
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path) //nolint:errcheck
	return nil
}

// promptOverwrite confirms with huh when in is a terminal. Non-interactive
// input never overwrites; the caller has to pass --force.
func promptOverwrite(in io.Reader, out io.Writer, path string) (bool, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return false, fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	overwrite := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s already exists. Overwrite it?", path)).
				Affirmative("Overwrite").
				Negative("Keep").
				Value(&overwrite),
		),
	).
		WithInput(in).
		WithOutput(out)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	return overwrite, nil
}
