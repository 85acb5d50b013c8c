package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/judgeboard/judgeboard/internal/metrics"
	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func sampleBoard() *LeaderboardResponse {
	return &LeaderboardResponse{
		GeneratedAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Sessions:    2,
		Teams: []models.TeamSummary{
			{Rank: 1, TeamID: 2, Team: "Aerial AI", Total: 30, Average: 15, JudgeCount: 2},
			{Rank: 2, TeamID: 3, Team: "Sard", Total: 20, Average: 20, JudgeCount: 1},
			{Rank: 3, TeamID: 1, Team: "MOD", Total: 10, Average: 10, JudgeCount: 1},
		},
		Skipped: []SkippedSession{},
	}
}

func newTestMux(t *testing.T) (*http.ServeMux, *MockStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := NewMockStore(ctrl)
	mux := http.NewServeMux()
	RegisterRoutes(mux, store)
	return mux, store
}

func serve(mux http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := serve(mux, "/api/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
}

func TestHandleLeaderboard_DefaultOrder(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Leaderboard(gomock.Any()).Return(sampleBoard(), nil)

	rec := serve(mux, "/api/leaderboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp LeaderboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Teams, 3)
	assert.Equal(t, []string{"Aerial AI", "Sard", "MOD"},
		[]string{resp.Teams[0].Team, resp.Teams[1].Team, resp.Teams[2].Team})
	assert.Equal(t, 2, resp.Sessions)
	assert.NotNil(t, resp.Skipped)
}

func TestHandleLeaderboard_Sorting(t *testing.T) {
	tests := []struct {
		query string
		want  []int
	}{
		{"?sort=total&order=asc", []int{1, 3, 2}},
		{"?sort=average", []int{3, 2, 1}},
		{"?sort=average&order=asc", []int{1, 2, 3}},
		{"?sort=name", []int{2, 1, 3}},
		{"?sort=name&order=desc", []int{3, 1, 2}},
		{"?sort=judges", []int{2, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			mux, store := newTestMux(t)
			store.EXPECT().Leaderboard(gomock.Any()).Return(sampleBoard(), nil)

			rec := serve(mux, "/api/leaderboard"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)

			var resp LeaderboardResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			got := make([]int, len(resp.Teams))
			for i, team := range resp.Teams {
				got[i] = team.TeamID
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandleLeaderboard_SortKeepsRanks(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Leaderboard(gomock.Any()).Return(sampleBoard(), nil)

	rec := serve(mux, "/api/leaderboard?sort=total&order=asc")
	var resp LeaderboardResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 3, resp.Teams[0].Rank)
	assert.Equal(t, 1, resp.Teams[2].Rank)
}

func TestHandleLeaderboard_BadParams(t *testing.T) {
	for _, q := range []string{"?sort=color", "?order=sideways"} {
		t.Run(q, func(t *testing.T) {
			mux, _ := newTestMux(t)
			rec := serve(mux, "/api/leaderboard"+q)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, http.StatusBadRequest, resp.Code)
		})
	}
}

func TestHandleLeaderboard_StoreError(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Leaderboard(gomock.Any()).Return(nil, errors.New("permission denied"))

	rec := serve(mux, "/api/leaderboard")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "permission denied")
}

func TestHandleTeam(t *testing.T) {
	mux, store := newTestMux(t)
	detail := &TeamDetail{
		TeamSummary: models.TeamSummary{Rank: 1, TeamID: 2, Team: "Aerial AI", Total: 30, Average: 15, JudgeCount: 2},
		Scores:      []models.TeamScore{{Session: "amy", Score: 10}, {Session: "bo", Score: 20}},
		Spread:      metrics.Spread{Min: 10, Max: 20, Mean: 15, StdDev: 5},
	}
	store.EXPECT().Team(gomock.Any(), 2).Return(detail, nil)

	rec := serve(mux, "/api/teams/2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Aerial AI", body["team"])
	assert.Equal(t, 30.0, body["totalScore"])
	assert.Len(t, body["scores"], 2)
	assert.Equal(t, 5.0, body["spread"].(map[string]any)["stdDev"])
}

func TestHandleTeam_NotFound(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Team(gomock.Any(), 42).Return(nil, ErrTeamNotFound)

	rec := serve(mux, "/api/teams/42")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleTeam_InvalidID(t *testing.T) {
	mux, _ := newTestMux(t)
	rec := serve(mux, "/api/teams/team_2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTeam_StoreError(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Team(gomock.Any(), 1).Return(nil, errors.New("disk on fire"))

	rec := serve(mux, "/api/teams/1")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleCriteria(t *testing.T) {
	mux, store := newTestMux(t)
	store.EXPECT().Criteria().Return([]CriterionResponse{
		{ID: "impact", Label: "Impact", Weight: 60},
		{ID: "demo", Label: "Demo", Weight: 40},
	})

	rec := serve(mux, "/api/criteria")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp []CriterionResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "impact", resp[0].ID)
}

func TestCORSMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := CORSMiddleware(inner, "http://allowed.example")

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://allowed.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "http://allowed.example", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusTeapot, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
