package webapi

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"time"

	"github.com/judgeboard/judgeboard/internal/aggregate"
	"github.com/judgeboard/judgeboard/internal/metrics"
	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/judgeboard/judgeboard/internal/reporting"
	"github.com/judgeboard/judgeboard/internal/scoring"
	"github.com/judgeboard/judgeboard/internal/session"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

//go:generate mockgen -source store.go -destination mock_store_test.go -package webapi

// ErrTeamNotFound is returned when a team ID is not in the catalog.
var ErrTeamNotFound = errors.New("team not found")

// Store provides access to the current leaderboard.
type Store interface {
	// Leaderboard returns every catalog team, ranked by total score.
	Leaderboard(ctx context.Context) (*LeaderboardResponse, error)
	// Team returns one team with its per-judge scores.
	Team(ctx context.Context, id int) (*TeamDetail, error)
	// Criteria returns the criterion weight table.
	Criteria() []CriterionResponse
}

// FileStore computes the leaderboard from the session files in a directory.
// Every call re-reads the directory so the board reflects new submissions;
// concurrent calls share a single scan.
type FileStore struct {
	dir     string
	cfg     aggregate.Config
	metrics *metrics.Refresh
	tracer  trace.Tracer
	group   singleflight.Group
	now     func() time.Time
}

// NewFileStore creates a FileStore that reads session files from dir.
// m may be nil to disable metrics.
func NewFileStore(dir string, cfg aggregate.Config, m *metrics.Refresh) *FileStore {
	return &FileStore{
		dir:     dir,
		cfg:     cfg,
		metrics: m,
		tracer:  otel.Tracer("judgeboard-filestore"),
		now:     time.Now,
	}
}

type snapshot struct {
	result      *aggregate.Result
	generatedAt time.Time
}

// refresh reads and aggregates all session files.
func (fs *FileStore) refresh(ctx context.Context) (*snapshot, error) {
	v, err, _ := fs.group.Do("refresh", func() (any, error) {
		return fs.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*snapshot), nil
}

func (fs *FileStore) load(ctx context.Context) (*snapshot, error) {
	_, span := fs.tracer.Start(ctx, "FileStore.refresh",
		trace.WithAttributes(attribute.String("sessions.dir", fs.dir)))
	defer span.End()

	start := fs.now()
	results, err := session.LoadDir(fs.dir)
	if err == nil {
		var res *aggregate.Result
		res, err = aggregate.Run(fs.cfg, results)
		if err == nil {
			if fs.metrics != nil {
				fs.metrics.Observe(res.Sessions, len(res.Diagnostics), fs.now().Sub(start))
			}
			span.SetAttributes(
				attribute.Int("sessions.loaded", res.Sessions),
				attribute.Int("sessions.skipped", len(res.Diagnostics)),
			)
			return &snapshot{result: res, generatedAt: start}, nil
		}
	}

	if fs.metrics != nil {
		fs.metrics.ObserveFailure(fs.now().Sub(start))
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return nil, err
}

// Leaderboard returns every catalog team, ranked by total score.
func (fs *FileStore) Leaderboard(ctx context.Context) (*LeaderboardResponse, error) {
	snap, err := fs.refresh(ctx)
	if err != nil {
		return nil, err
	}
	res := snap.result

	resp := &LeaderboardResponse{
		GeneratedAt: snap.generatedAt,
		Sessions:    res.Sessions,
		Teams:       slices.Clone(res.Summaries),
		Skipped:     make([]SkippedSession, 0, len(res.Diagnostics)),
	}
	for _, d := range res.Diagnostics {
		resp.Skipped = append(resp.Skipped, SkippedSession{
			Path:    d.Path,
			Session: d.Session,
			Error:   d.Message(),
		})
	}
	return resp, nil
}

// Team returns one team with its per-judge scores.
func (fs *FileStore) Team(ctx context.Context, id int) (*TeamDetail, error) {
	snap, err := fs.refresh(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(snap.result.Summaries, func(s models.TeamSummary) bool {
		return s.TeamID == id
	})
	if idx < 0 {
		return nil, ErrTeamNotFound
	}

	scores, _ := snap.result.Scores(id)
	if scores == nil {
		scores = []models.TeamScore{}
	}
	values := make([]float64, len(scores))
	for i, s := range scores {
		values[i] = s.Score
	}
	spread := metrics.Summarize(values)

	return &TeamDetail{
		TeamSummary: snap.result.Summaries[idx],
		Scores:      scores,
		Spread: metrics.Spread{
			Min:    scoring.Round2(spread.Min),
			Max:    scoring.Round2(spread.Max),
			Mean:   scoring.Round2(spread.Mean),
			StdDev: scoring.Round2(spread.StdDev),
		},
	}, nil
}

// Criteria returns the criterion weight table, heaviest first.
func (fs *FileStore) Criteria() []CriterionResponse {
	return criteriaTable(fs.cfg.CriteriaWeights)
}

func criteriaTable(weights models.CriterionWeights) []CriterionResponse {
	out := make([]CriterionResponse, 0, len(weights))
	for id, w := range weights {
		out = append(out, CriterionResponse{ID: id, Label: reporting.CriterionLabel(id), Weight: w})
	}
	slices.SortFunc(out, func(a, b CriterionResponse) int {
		if c := cmp.Compare(b.Weight, a.Weight); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Ensure FileStore satisfies Store.
var _ Store = (*FileStore)(nil)
