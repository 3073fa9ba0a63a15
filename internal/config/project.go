package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/mocktab/internal/deduplication"
	"github.com/steveyegge/mocktab/internal/ranking"
)

// FileName is the config file looked up inside the .mocktab directory
const FileName = "config.yaml"

// TournamentConfig holds tournament-wide details
type TournamentConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email,omitempty"`
}

// RankingsConfig controls how the ranking export is read
type RankingsConfig struct {
	Columns         ranking.Layout `yaml:"columns"`
	SkipInvalidRows bool           `yaml:"skip_invalid_rows"`
}

// Project is the full per-tournament configuration
type Project struct {
	Tournament TournamentConfig     `yaml:"tournament"`
	Database   string               `yaml:"database,omitempty"`
	Rankings   RankingsConfig       `yaml:"rankings"`
	Typos      deduplication.Config `yaml:"typos"`
	Reports    ReportCleanupConfig  `yaml:"reports"`
}

// DefaultProject returns the configuration used when no file exists
func DefaultProject() *Project {
	return &Project{
		Rankings: RankingsConfig{Columns: ranking.DefaultLayout()},
		Typos:    deduplication.DefaultConfig(),
		Reports:  DefaultReportCleanupConfig(),
	}
}

// Validate checks every section of the configuration
func (p *Project) Validate() error {
	if p.Tournament.Email != "" && !strings.Contains(p.Tournament.Email, "@") {
		return fmt.Errorf("tournament.email is not an email address (got %q)", p.Tournament.Email)
	}
	if err := p.Rankings.Columns.Validate(); err != nil {
		return fmt.Errorf("rankings.columns: %w", err)
	}
	if err := p.Typos.Validate(); err != nil {
		return fmt.Errorf("typos: %w", err)
	}
	if err := p.Reports.Validate(); err != nil {
		return fmt.Errorf("reports: %w", err)
	}
	return nil
}

// String returns a human-readable representation of the config
func (p *Project) String() string {
	return fmt.Sprintf("Project{Tournament: %q, Database: %q, Columns: %+v, Typos: %s, Reports: %s}",
		p.Tournament.Name, p.Database, p.Rankings.Columns, p.Typos, p.Reports)
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error: defaults and
// environment still apply.
func Load(path string) (*Project, error) {
	cfg := DefaultProject()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML: %w", err)
		}
	}

	if err := parseEnvString("MOCKTAB_DB_PATH", &cfg.Database); err != nil {
		return nil, err
	}
	if err := deduplication.ApplyEnv(&cfg.Typos); err != nil {
		return nil, err
	}
	if err := applyReportCleanupEnv(&cfg.Reports); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg *Project) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
