// Package aggregate builds per-team leaderboard summaries from judge sessions.
package aggregate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/judgeboard/judgeboard/internal/scoring"
	"github.com/judgeboard/judgeboard/internal/session"
	"github.com/samber/lo"
)

// ErrInvalidConfig is returned by New when the team catalog or the weight
// table is unusable.
var ErrInvalidConfig = errors.New("invalid aggregator configuration")

var validate = validator.New()

// Config is the static input of an aggregation: the team catalog and the
// criterion weight table. Weights are not required to sum to 100.
type Config struct {
	Teams           []models.Team           `validate:"required,min=1,unique=ID,dive"`
	CriteriaWeights models.CriterionWeights `validate:"dive,keys,required,endkeys,gte=0"`
}

// Validate checks the catalog and weights.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

type accumulator struct {
	team   models.Team
	scores []models.TeamScore
}

// Aggregator accumulates weighted scores per catalog team. It is not safe
// for concurrent use; build a fresh one for every run.
type Aggregator struct {
	weights models.CriterionWeights
	teams   []*accumulator
	byID    map[int]*accumulator
}

// New creates an Aggregator with one empty accumulator per catalog team.
func New(cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Aggregator{
		weights: cfg.CriteriaWeights,
		teams:   make([]*accumulator, 0, len(cfg.Teams)),
		byID:    make(map[int]*accumulator, len(cfg.Teams)),
	}
	for _, t := range cfg.Teams {
		acc := &accumulator{team: t}
		a.teams = append(a.teams, acc)
		a.byID[t.ID] = acc
	}
	return a, nil
}

// Ingest records the weighted score of every catalog team the session scored.
// Keys for teams outside the catalog are ignored.
func (a *Aggregator) Ingest(rec models.SessionRecord) {
	for _, acc := range a.teams {
		raw, ok := rec.ScoresFor(acc.team)
		if !ok {
			continue
		}
		acc.scores = append(acc.scores, models.TeamScore{
			Session: rec.Name,
			Score:   scoring.WeightedScore(raw, a.weights),
		})
	}
}

// Scores returns the weighted scores recorded for a team, in ingestion order.
func (a *Aggregator) Scores(teamID int) ([]models.TeamScore, bool) {
	acc, ok := a.byID[teamID]
	if !ok {
		return nil, false
	}
	return append([]models.TeamScore(nil), acc.scores...), true
}

// Summaries returns one summary per catalog team, sorted by total score
// descending. Teams with equal totals keep their catalog order.
func (a *Aggregator) Summaries() []models.TeamSummary {
	rows := lo.Map(a.teams, func(acc *accumulator, _ int) models.TeamSummary {
		total := lo.SumBy(acc.scores, func(s models.TeamScore) float64 { return s.Score })
		count := len(acc.scores)
		avg := 0.0
		if count > 0 {
			avg = total / float64(count)
		}
		return models.TeamSummary{
			TeamID:     acc.team.ID,
			Team:       acc.team.Name,
			Total:      scoring.Round2(total),
			Average:    scoring.Round2(avg),
			JudgeCount: count,
		}
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Result is the outcome of a full aggregation run.
type Result struct {
	Summaries   []models.TeamSummary
	Diagnostics []models.Diagnostic
	// Sessions is the number of session files that were ingested.
	Sessions int

	agg *Aggregator
}

// Scores returns the per-judge weighted scores of a team.
func (r *Result) Scores(teamID int) ([]models.TeamScore, bool) {
	return r.agg.Scores(teamID)
}

// Run aggregates a set of loaded session files from scratch. Failed loads are
// collected as diagnostics instead of aborting the run, so the result depends
// only on cfg and the successfully loaded records.
func Run(cfg Config, results []session.Result) (*Result, error) {
	agg, err := New(cfg)
	if err != nil {
		return nil, err
	}

	res := &Result{agg: agg}
	for _, r := range results {
		if !r.OK() {
			res.Diagnostics = append(res.Diagnostics, models.Diagnostic{
				Path:    r.File.Path,
				Session: r.File.Session,
				Err:     r.Err,
			})
			continue
		}
		agg.Ingest(r.Record)
		res.Sessions++
	}
	res.Summaries = agg.Summaries()
	return res, nil
}
