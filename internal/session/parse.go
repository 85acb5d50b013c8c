package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/judgeboard/judgeboard/internal/models"
	"github.com/judgeboard/judgeboard/internal/validation"
)

// ErrInvalidSession is returned when a session document does not have the
// expected shape.
var ErrInvalidSession = errors.New("invalid session document")

var teamKeyPattern = regexp.MustCompile(`^team_[0-9]+$`)

// Result is the outcome of loading a single session file. Exactly one of
// Record and Err is meaningful.
type Result struct {
	File   File
	Record models.SessionRecord
	Err    error
}

// OK reports whether the file was loaded successfully.
func (r Result) OK() bool {
	return r.Err == nil
}

// Parse decodes a session document. A document that is not valid JSON or does
// not match the session schema is rejected as a whole.
func Parse(name string, data []byte) (models.SessionRecord, error) {
	doc, err := validation.ParseJSON(data)
	if err != nil {
		return models.SessionRecord{}, err
	}
	if problems := validation.ValidateSessionDocument(doc); len(problems) > 0 {
		return models.SessionRecord{}, fmt.Errorf("%w: %s", ErrInvalidSession, strings.Join(problems, "; "))
	}

	// The schema guarantees a JSON object at this point.
	obj, _ := doc.(map[string]any)
	raw := make(map[string]any, len(obj))
	for k, v := range obj {
		if teamKeyPattern.MatchString(k) {
			raw[k] = v
		}
	}

	teams := make(map[string]models.CriterionScores, len(raw))
	if err := mapstructure.Decode(raw, &teams); err != nil {
		return models.SessionRecord{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	return models.SessionRecord{Name: name, Teams: teams}, nil
}

// Load reads and parses one session file.
func Load(f File) Result {
	res := Result{File: f}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		res.Err = fmt.Errorf("reading %s: %w", f.Name, err)
		return res
	}
	rec, err := Parse(f.Session, data)
	if err != nil {
		res.Err = fmt.Errorf("parsing %s: %w", f.Name, err)
		return res
	}
	rec.Path = f.Path
	res.Record = rec
	return res
}

// LoadDir loads every session file in dir, one at a time. A file that cannot
// be read or parsed is reported in its Result and does not stop the scan.
// Only a failure to list the directory itself is returned as an error.
func LoadDir(dir string) ([]Result, error) {
	files, err := List(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(files))
	for _, f := range files {
		res := Load(f)
		if !res.OK() {
			slog.Warn("skipping session file", "path", f.Path, "error", res.Err)
		} else {
			slog.Debug("loaded session file", "path", f.Path, "teams", len(res.Record.Teams))
		}
		results = append(results, res)
	}
	return results, nil
}
