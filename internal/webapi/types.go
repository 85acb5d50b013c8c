package webapi

import (
	"time"

	"github.com/judgeboard/judgeboard/internal/metrics"
	"github.com/judgeboard/judgeboard/internal/models"
)

// LeaderboardResponse is the API response for the full leaderboard.
type LeaderboardResponse struct {
	GeneratedAt time.Time            `json:"generatedAt"`
	Sessions    int                  `json:"sessions"`
	Teams       []models.TeamSummary `json:"teams"`
	Skipped     []SkippedSession     `json:"skipped"`
}

// SkippedSession is a session file left out of the leaderboard.
type SkippedSession struct {
	Path    string `json:"path"`
	Session string `json:"session"`
	Error   string `json:"error"`
}

// TeamDetail is the API response for a single team.
type TeamDetail struct {
	models.TeamSummary
	Scores []models.TeamScore `json:"scores"`
	Spread metrics.Spread     `json:"spread"`
}

// CriterionResponse is one row of the criterion weight table.
type CriterionResponse struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
