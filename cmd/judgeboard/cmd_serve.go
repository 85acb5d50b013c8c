package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/judgeboard/judgeboard/internal/metrics"
	"github.com/judgeboard/judgeboard/internal/projectconfig"
	"github.com/judgeboard/judgeboard/internal/webapi"
	"github.com/judgeboard/judgeboard/internal/webserver"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	host        string
	port        int
	noBrowser   bool
	corsOrigins []string
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	var so serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the live leaderboard dashboard",
		Long: `Start the live leaderboard dashboard.

The dashboard recomputes the leaderboard from the sessions directory on every
request, so new or updated session files show up on the next page refresh.

Endpoints:
  /                  HTML dashboard (score table and bar chart)
  /api/leaderboard   ranked teams as JSON (?sort=total|average|judges|name&order=asc|desc)
  /api/teams/{id}    one team with each judge's weighted score
  /api/criteria      the judging rubric
  /api/health        liveness probe
  /metrics           Prometheus metrics

The server binds to 127.0.0.1 unless --host is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommandE(cmd, opts, so)
		},
	}

	cmd.Flags().StringVar(&so.host, "host", "127.0.0.1", "Interface to bind to")
	cmd.Flags().IntVarP(&so.port, "port", "p", 0, "Port to listen on (default from .judgeboard.yaml, 8501)")
	cmd.Flags().BoolVar(&so.noBrowser, "no-browser", false, "Do not open the dashboard in a browser")
	cmd.Flags().StringSliceVar(&so.corsOrigins, "cors-origin", nil, "Origin allowed to call the JSON API (repeatable)")

	return cmd
}

func serveCommandE(cmd *cobra.Command, opts *globalOptions, so serveOptions) error {
	cfg, err := projectconfig.Load(opts.dir)
	if err != nil {
		return err
	}

	srv, err := newDashboardServer(cfg, so, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Reading sessions from %s\n", cfg.ResolvedSessionsDir()) //nolint:errcheck
	return srv.ListenAndServe(ctx)
}

// newDashboardServer wires the file store, metrics and HTTP server for cfg.
// Flag values in so override the configured port.
func newDashboardServer(cfg *projectconfig.ProjectConfig, so serveOptions, reg prometheus.Registerer) (*webserver.Server, error) {
	port := cfg.Server.Port
	if so.port != 0 {
		port = so.port
	}

	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	store := webapi.NewFileStore(cfg.ResolvedSessionsDir(), cfg.Aggregation(), metrics.NewRefresh(reg))
	return webserver.New(webserver.Config{
		Host:           so.host,
		Port:           port,
		NoBrowser:      so.noBrowser,
		Logger:         slog.Default(),
		Store:          store,
		Title:          cfg.Server.Title,
		Notes:          cfg.Server.Notes,
		RefreshSeconds: cfg.Server.RefreshSeconds,
		Gatherer:       gatherer,
		AllowedOrigins: so.corsOrigins,
	})
}
