// Package models defines the team catalog, session and leaderboard types
// shared by the aggregation, storage and presentation layers.
package models

import (
	"fmt"
	"strconv"
	"strings"
)

// TeamKeyPrefix is prepended to a team ID to form its key in a session document.
const TeamKeyPrefix = "team_"

// Team is a single entry of the competition's team catalog.
type Team struct {
	ID   int    `yaml:"id" json:"id" validate:"gt=0"`
	Name string `yaml:"name" json:"name" validate:"required"`
}

// Key returns the key under which judges record scores for this team,
// e.g. "team_7".
func (t Team) Key() string {
	return TeamKeyPrefix + strconv.Itoa(t.ID)
}

// ParseTeamKey extracts the team ID from a "team_<id>" key.
func ParseTeamKey(key string) (int, error) {
	raw, ok := strings.CutPrefix(key, TeamKeyPrefix)
	if !ok {
		return 0, fmt.Errorf("team key %q: missing %q prefix", key, TeamKeyPrefix)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("team key %q: %w", key, err)
	}
	return id, nil
}

// CriterionWeights maps a criterion identifier to its weight in percentage
// points. The weights of a well-formed table add up to 100.
type CriterionWeights map[string]int

// Sum returns the total of all weights.
func (w CriterionWeights) Sum() int {
	total := 0
	for _, v := range w {
		total += v
	}
	return total
}

// CriterionScores holds one judge's raw scores for one team, keyed by
// criterion identifier.
type CriterionScores map[string]float64
