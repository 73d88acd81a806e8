package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func validConfig() *Config {
	return &Config{
		Log:     LogConfig{Level: "info", Format: "json"},
		Lexicon: LexiconConfig{},
		Repair: RepairConfig{
			Source:   SourceFiles,
			InputDir: "./transcripts",
			Pattern:  "*.txt",
			Workers:  4,
			Voice:    "bare",
		},
		Database: DatabaseConfig{MaxConns: 10, MinConns: 1},
	}
}

const validYAML = `
log:
  level: "debug"
  format: "text"

lexicon:
  path: "./lexicon.yaml"

repair:
  source: "postgres"
  workers: 8
  voice: "speaker"
  dry_run: true

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 5
  min_conns: 2
  max_conn_lifetime: "10m"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}

	// Lexicon
	if cfg.Lexicon.Path != "./lexicon.yaml" {
		t.Errorf("lexicon.path = %q", cfg.Lexicon.Path)
	}

	// Repair
	if cfg.Repair.Source != SourcePostgres {
		t.Errorf("repair.source = %q, want %q", cfg.Repair.Source, SourcePostgres)
	}
	if cfg.Repair.Workers != 8 {
		t.Errorf("repair.workers = %d, want 8", cfg.Repair.Workers)
	}
	if !cfg.Repair.DryRun {
		t.Error("repair.dry_run should be true")
	}
	if cfg.Repair.Pattern != "*.txt" {
		t.Errorf("repair.pattern = %q, want default %q", cfg.Repair.Pattern, "*.txt")
	}

	// Database
	if cfg.Database.DSN != "postgres://u:p@localhost:5432/testdb" {
		t.Errorf("database.dsn = %q", cfg.Database.DSN)
	}
	if cfg.Database.MaxConns != 5 {
		t.Errorf("database.max_conns = %d, want 5", cfg.Database.MaxConns)
	}
	if cfg.Database.MaxConnLifetime != 10*time.Minute {
		t.Errorf("database.max_conn_lifetime = %v, want 10m", cfg.Database.MaxConnLifetime)
	}
	if cfg.Database.MaxConnIdleTime != 30*time.Minute {
		t.Errorf("database.max_conn_idle_time = %v, want 30m (default)", cfg.Database.MaxConnIdleTime)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("REPAIR_WORKERS", "2")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Repair.Workers != 2 {
		t.Errorf("repair.workers = %d, want 2 (ENV override)", cfg.Repair.Workers)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("REPAIR_INPUT_DIR", "/srv/lessons")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Repair.Source != SourceFiles {
		t.Errorf("repair.source = %q, want %q (default)", cfg.Repair.Source, SourceFiles)
	}
	if cfg.Repair.InputDir != "/srv/lessons" {
		t.Errorf("repair.input_dir = %q, want %q", cfg.Repair.InputDir, "/srv/lessons")
	}
	if cfg.Repair.Workers != 4 {
		t.Errorf("repair.workers = %d, want 4 (default)", cfg.Repair.Workers)
	}
	if cfg.Database.DSN != "" {
		t.Errorf("database.dsn = %q, want empty", cfg.Database.DSN)
	}
}

func TestLoadFrom_ExplicitPath(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "repair:\n  input_dir: \"/data\"\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Repair.InputDir != "/data" {
		t.Errorf("repair.input_dir = %q, want %q", cfg.Repair.InputDir, "/data")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_PostgresWithoutDSN(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("REPAIR_SOURCE", "postgres")
	t.Chdir(t.TempDir())

	if _, err := Load(); err == nil {
		t.Fatal("expected error for postgres source without dsn")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"bad log level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"upper case log level", func(c *Config) { c.Log.Level = "DEBUG" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, true},
		{"unknown source", func(c *Config) { c.Repair.Source = "s3" }, true},
		{"files without input dir", func(c *Config) { c.Repair.InputDir = "" }, true},
		{"bad pattern", func(c *Config) { c.Repair.Pattern = "[" }, true},
		{"zero workers", func(c *Config) { c.Repair.Workers = 0 }, true},
		{"too many workers", func(c *Config) { c.Repair.Workers = 65 }, true},
		{"max workers", func(c *Config) { c.Repair.Workers = 64 }, false},
		{"bad voice", func(c *Config) { c.Repair.Voice = "narrator" }, true},
		{"speaker voice", func(c *Config) { c.Repair.Voice = "speaker" }, false},
		{"postgres without dsn", func(c *Config) { c.Repair.Source = SourcePostgres }, true},
		{"postgres with dsn", func(c *Config) {
			c.Repair.Source = SourcePostgres
			c.Database.DSN = "postgres://localhost/db"
		}, false},
		{"postgres min above max", func(c *Config) {
			c.Repair.Source = SourcePostgres
			c.Database.DSN = "postgres://localhost/db"
			c.Database.MinConns = 11
		}, true},
		{"files ignores database", func(c *Config) { c.Database.MaxConns = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
