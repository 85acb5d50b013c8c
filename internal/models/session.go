package models

// SessionRecord is one judge's submission: raw criterion scores keyed by team key.
type SessionRecord struct {
	// Name identifies the session, derived from the file name
	// (session_<name>.json).
	Name  string                     `json:"name"`
	Path  string                     `json:"path,omitempty"`
	Teams map[string]CriterionScores `json:"teams"`
}

// ScoresFor returns the raw scores the session recorded for team, if any.
func (r SessionRecord) ScoresFor(team Team) (CriterionScores, bool) {
	s, ok := r.Teams[team.Key()]
	return s, ok
}

// Diagnostic describes a session file that was skipped during ingestion.
type Diagnostic struct {
	Path    string `json:"path"`
	Session string `json:"session"`
	Err     error  `json:"-"`
}

// Message returns the error text of the diagnostic.
func (d Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}
