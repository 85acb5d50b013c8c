package webserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/judgeboard/judgeboard/internal/webapi"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

// registerRoutes sets up API, metrics and dashboard routes on the given mux.
func registerRoutes(mux *http.ServeMux, cfg Config) error {
	webapi.RegisterRoutes(mux, cfg.Store)
	mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	notes, err := renderMarkdown(cfg.Notes)
	if err != nil {
		return fmt.Errorf("failed to render dashboard notes: %w", err)
	}
	d := &dashboard{
		store:          cfg.Store,
		logger:         cfg.Logger,
		title:          cfg.Title,
		notes:          notes,
		refreshSeconds: cfg.RefreshSeconds,
	}
	mux.HandleFunc("GET /{$}", d.serveHTTP)
	return nil
}

// renderMarkdown converts dashboard notes to HTML. Raw HTML in the source is
// not passed through.
func renderMarkdown(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := goldmark.New().Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // goldmark escapes raw HTML by default
}

type dashboard struct {
	store          webapi.Store
	logger         *slog.Logger
	title          string
	notes          template.HTML
	refreshSeconds int
}

type chartBar struct {
	Team    string
	Total   float64
	Percent float64
}

type dashboardData struct {
	Title          string
	Notes          template.HTML
	RefreshSeconds int
	Board          *webapi.LeaderboardResponse
	Bars           []chartBar
	Criteria       []webapi.CriterionResponse
}

func (d *dashboard) serveHTTP(w http.ResponseWriter, r *http.Request) {
	board, err := d.store.Leaderboard(r.Context())
	if err != nil {
		d.logger.Error("dashboard refresh failed", "error", err)
		http.Error(w, "failed to load scores: "+err.Error(), http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Title:          d.title,
		Notes:          d.notes,
		RefreshSeconds: d.refreshSeconds,
		Board:          board,
		Bars:           chartBars(board),
		Criteria:       d.store.Criteria(),
	}

	var buf bytes.Buffer
	if err := dashboardTmpl.Execute(&buf, data); err != nil {
		d.logger.Error("dashboard render failed", "error", err)
		http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w) //nolint:errcheck
}

// chartBars scales each team's total against the highest total.
func chartBars(board *webapi.LeaderboardResponse) []chartBar {
	top := 0.0
	for _, t := range board.Teams {
		top = max(top, t.Total)
	}
	bars := make([]chartBar, 0, len(board.Teams))
	for _, t := range board.Teams {
		pct := 0.0
		if top > 0 && t.Total > 0 {
			pct = t.Total / top * 100
		}
		bars = append(bars, chartBar{Team: t.Team, Total: t.Total, Percent: pct})
	}
	return bars
}
