package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/judgeboard/judgeboard/internal/models"
)

// Version is set at build time or defaults to dev.
var Version = "dev"

// Handlers holds the HTTP handler methods for the web API.
type Handlers struct {
	store Store
}

// NewHandlers creates a new Handlers with the given store.
func NewHandlers(store Store) *Handlers {
	return &Handlers{store: store}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleLeaderboard returns all teams. The optional sort and order query
// params re-order the list; ranks always reflect the total score.
func (h *Handlers) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	sortField := r.URL.Query().Get("sort")
	order := r.URL.Query().Get("order")
	if err := checkSortParams(sortField, order); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	board, err := h.store.Leaderboard(r.Context())
	if err != nil {
		slog.Error("leaderboard refresh failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sortTeams(board.Teams, sortField, order)
	writeJSON(w, http.StatusOK, board)
}

// HandleTeam returns a single team with per-judge scores.
func (h *Handlers) HandleTeam(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid team id %q", raw))
		return
	}

	detail, err := h.store.Team(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrTeamNotFound) {
			writeError(w, http.StatusNotFound, "team not found")
		} else {
			slog.Error("team lookup failed", "team", id, "error", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// HandleCriteria returns the criterion weight table.
func (h *Handlers) HandleCriteria(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Criteria())
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, store Store) {
	h := NewHandlers(store)
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/leaderboard", h.HandleLeaderboard)
	mux.HandleFunc("GET /api/teams/{id}", h.HandleTeam)
	mux.HandleFunc("GET /api/criteria", h.HandleCriteria)
}

// CORSMiddleware wraps a handler with CORS headers.
// If allowedOrigins is empty, no CORS header is set (same-origin only).
// Otherwise, the request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func checkSortParams(field, order string) error {
	switch field {
	case "", "total", "average", "judges", "name":
	default:
		return fmt.Errorf("unsupported sort field %q: must be total, average, judges or name", field)
	}
	switch order {
	case "", "asc", "desc":
	default:
		return fmt.Errorf("unsupported order %q: must be asc or desc", order)
	}
	return nil
}

// sortTeams re-orders rows in place. Sorting is stable, so teams that compare
// equal keep their leaderboard order. Names sort ascending by default, numbers
// descending.
func sortTeams(rows []models.TeamSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "average":
			return rows[i].Average < rows[j].Average
		case "judges":
			return rows[i].JudgeCount < rows[j].JudgeCount
		case "name":
			return strings.ToLower(rows[i].Team) < strings.ToLower(rows[j].Team)
		default: // "total" or empty
			return rows[i].Total < rows[j].Total
		}
	}

	asc := order == "asc" || (order == "" && field == "name")
	if asc {
		sort.SliceStable(rows, less)
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return less(j, i) })
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
