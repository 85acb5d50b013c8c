package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

// globalOptions holds flags shared by every subcommand.
type globalOptions struct {
	// dir is where the .judgeboard.yaml lookup starts.
	dir string
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "judgeboard",
		Short: "Judgeboard - live leaderboard for judged competitions",
		Long: `Judgeboard aggregates judge score sheets into a team leaderboard.

Each judge submits a session_<name>.json file holding raw criterion scores per
team. Judgeboard weights the scores with the configured rubric, totals them per
team and ranks the teams, either once in the terminal (show) or continuously on
a live dashboard (serve).`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "Directory to start the .judgeboard.yaml lookup from")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newShowCommand(opts))
	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newValidateCommand(opts))
	cmd.AddCommand(newInitCommand(opts))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
