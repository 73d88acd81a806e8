package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.Repair.validate(); err != nil {
		return fmt.Errorf("repair: %w", err)
	}
	if c.Repair.Source == SourcePostgres {
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug|info|warn|error (got %q)", l.Level)
	}
	switch strings.ToLower(l.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
	return nil
}

func (r *RepairConfig) validate() error {
	switch r.Source {
	case SourceFiles:
		if r.InputDir == "" {
			return fmt.Errorf("input_dir is required for source %q", SourceFiles)
		}
		if _, err := filepath.Match(r.Pattern, ""); err != nil {
			return fmt.Errorf("pattern %q: %w", r.Pattern, err)
		}
	case SourcePostgres:
	default:
		return fmt.Errorf("source must be %q or %q (got %q)", SourceFiles, SourcePostgres, r.Source)
	}

	if r.Workers < 1 || r.Workers > 64 {
		return fmt.Errorf("workers must be in [1, 64] (got %d)", r.Workers)
	}

	switch strings.ToLower(r.Voice) {
	case "", "bare", "speaker":
	default:
		return fmt.Errorf("voice must be bare or speaker (got %q)", r.Voice)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.DSN == "" {
		return fmt.Errorf("dsn is required")
	}
	if d.MaxConns < 1 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be in [0, max_conns] (got %d)", d.MinConns)
	}
	return nil
}
