package main

import (
	"fmt"
	"io"
	"os"

	"github.com/judgeboard/judgeboard/internal/aggregate"
	"github.com/judgeboard/judgeboard/internal/projectconfig"
	"github.com/judgeboard/judgeboard/internal/reporting"
	"github.com/judgeboard/judgeboard/internal/session"
	"github.com/spf13/cobra"
)

func newShowCommand(opts *globalOptions) *cobra.Command {
	var format string
	var noChart bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current leaderboard",
		Long: `Print the current leaderboard.

Reads every session_*.json file in the sessions directory, aggregates the
weighted scores and prints the ranked table followed by a bar chart of the
totals. Files that cannot be read are listed on stderr and otherwise ignored.

Use --format to export json, csv or markdown instead of the table.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := reporting.ParseFormat(format)
			if err != nil {
				return err
			}
			return showCommandE(cmd, opts, f, noChart)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(reporting.FormatTable), "Output format: table, json, csv or markdown")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Omit the bar chart in table output")

	return cmd
}

func showCommandE(cmd *cobra.Command, opts *globalOptions, format reporting.Format, noChart bool) error {
	cfg, err := projectconfig.Load(opts.dir)
	if err != nil {
		return err
	}

	res, err := loadLeaderboard(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case reporting.FormatJSON:
		err = reporting.WriteJSON(out, reporting.NewReport(res.Summaries, res.Diagnostics))
	case reporting.FormatCSV:
		err = reporting.WriteCSV(out, res.Summaries)
	case reporting.FormatMarkdown:
		err = reporting.WriteMarkdown(out, res.Summaries)
	default:
		err = writeTableWithChart(out, res, noChart)
	}
	if err != nil {
		return fmt.Errorf("writing leaderboard: %w", err)
	}

	return reporting.WriteDiagnostics(cmd.ErrOrStderr(), res.Diagnostics)
}

// loadLeaderboard reads the configured sessions directory and aggregates it.
func loadLeaderboard(cfg *projectconfig.ProjectConfig) (*aggregate.Result, error) {
	results, err := session.LoadDir(cfg.ResolvedSessionsDir())
	if err != nil {
		return nil, fmt.Errorf("reading sessions: %w", err)
	}
	return aggregate.Run(cfg.Aggregation(), results)
}

func writeTableWithChart(out io.Writer, res *aggregate.Result, noChart bool) error {
	fmt.Fprintf(out, "Leaderboard (%d session(s))\n\n", res.Sessions) //nolint:errcheck
	if err := reporting.WriteTable(out, res.Summaries); err != nil {
		return err
	}
	if noChart {
		return nil
	}

	chartOpts := reporting.ChartOptions{Width: reporting.DefaultChartWidth}
	if f, ok := out.(*os.File); ok {
		chartOpts = reporting.ChartOptionsFor(f)
	}
	fmt.Fprintln(out) //nolint:errcheck
	return reporting.WriteBarChart(out, res.Summaries, chartOpts)
}
