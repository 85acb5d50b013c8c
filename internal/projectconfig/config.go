// Package projectconfig provides the ProjectConfig struct and loader for
// .judgeboard.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/judgeboard/judgeboard/internal/aggregate"
	"github.com/judgeboard/judgeboard/internal/models"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file.
const FileName = ".judgeboard.yaml"

// Default values for project configuration. New() references them and no
// other code should duplicate them.
const (
	DefaultSessionsDir = "."

	DefaultServerPort           = 8501
	DefaultServerRefreshSeconds = 10
	DefaultServerTitle          = "Live Scores Dashboard"
)

// DefaultTeams returns the built-in team catalog.
func DefaultTeams() []models.Team {
	return []models.Team{
		{ID: 1, Name: "MOD"},
		{ID: 2, Name: "Aerial AI"},
		{ID: 3, Name: "Sard"},
		{ID: 4, Name: "Land safer"},
		{ID: 5, Name: "MarEye"},
		{ID: 6, Name: "Rashed's team"},
		{ID: 7, Name: "mahra aldhaheri"},
		{ID: 8, Name: "Pave Patrol"},
		{ID: 9, Name: "GeoPV"},
		{ID: 10, Name: "Asmaa team"},
		{ID: 11, Name: "Ghaf Root"},
		{ID: 12, Name: "GeoResQ"},
		{ID: 13, Name: "Flood Sentinels"},
		{ID: 14, Name: "DoubleA"},
		{ID: 15, Name: "TBD"},
	}
}

// DefaultCriteria returns the built-in judging rubric.
func DefaultCriteria() models.CriterionWeights {
	return models.CriterionWeights{
		"problem_definition":     15,
		"technical_execution":    20,
		"results_interpretation": 20,
		"learning_reflection":    10,
		"presentation_quality":   15,
		"long_term_vision":       15,
		"scientific_evaluation":  10,
		"team_expertise":         10,
	}
}

// ServerConfig holds dashboard server settings.
type ServerConfig struct {
	Port           int    `yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	RefreshSeconds int    `yaml:"refresh_seconds,omitempty" validate:"gte=0"`
	Title          string `yaml:"title,omitempty"`
	// Notes is Markdown shown above the leaderboard.
	Notes string `yaml:"notes,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .judgeboard.yaml.
type ProjectConfig struct {
	SessionsDir string                  `yaml:"sessions_dir,omitempty"`
	Teams       []models.Team           `yaml:"teams,omitempty"`
	Criteria    models.CriterionWeights `yaml:"criteria,omitempty"`
	Server      ServerConfig            `yaml:"server,omitempty"`

	// dir is the directory the config file was found in; relative paths
	// resolve against it.
	dir string
}

var validate = validator.New()

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		SessionsDir: DefaultSessionsDir,
		Teams:       DefaultTeams(),
		Criteria:    DefaultCriteria(),
		Server: ServerConfig{
			Port:           DefaultServerPort,
			RefreshSeconds: DefaultServerRefreshSeconds,
			Title:          DefaultServerTitle,
		},
	}
}

// Load finds .judgeboard.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error and relative
// paths resolve against startDir.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, dir, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.dir, _ = filepath.Abs(startDir)
			return cfg, nil // no file found → return defaults
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Merge file values onto defaults.
	mergeConfig(cfg, &fileCfg)
	cfg.dir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile walks up from dir looking for .judgeboard.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, string, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, "", fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, "", os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst. A file that lists
// teams or criteria replaces the built-in tables rather than extending them.
func mergeConfig(dst, src *ProjectConfig) {
	if src.SessionsDir != "" {
		dst.SessionsDir = src.SessionsDir
	}
	if len(src.Teams) > 0 {
		dst.Teams = src.Teams
	}
	if len(src.Criteria) > 0 {
		dst.Criteria = src.Criteria
	}

	// Server
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.RefreshSeconds != 0 {
		dst.Server.RefreshSeconds = src.Server.RefreshSeconds
	}
	if src.Server.Title != "" {
		dst.Server.Title = src.Server.Title
	}
	if src.Server.Notes != "" {
		dst.Server.Notes = src.Server.Notes
	}
}

// Validate checks the catalog, the weights and the server settings. Weights
// are percentage points but their total is not constrained; the built-in
// rubric adds up to 115.
func (c *ProjectConfig) Validate() error {
	if err := c.Aggregation().Validate(); err != nil {
		return err
	}
	if err := validate.Struct(c.Server); err != nil {
		return fmt.Errorf("server settings: %w", err)
	}
	slog.Debug("criterion weights loaded", "criteria", len(c.Criteria), "total", c.Criteria.Sum())
	return nil
}

// Aggregation returns the aggregator configuration described by this project.
func (c *ProjectConfig) Aggregation() aggregate.Config {
	return aggregate.Config{
		Teams:           c.Teams,
		CriteriaWeights: c.Criteria,
	}
}

// ResolvedSessionsDir returns SessionsDir, resolved against the directory the
// config file was loaded from when it is relative.
func (c *ProjectConfig) ResolvedSessionsDir() string {
	if filepath.IsAbs(c.SessionsDir) || c.dir == "" {
		return c.SessionsDir
	}
	return filepath.Join(c.dir, c.SessionsDir)
}

// Marshal renders the configuration as YAML.
func (c *ProjectConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
