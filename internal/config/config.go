package config

import "time"

// Config is the root application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Lexicon  LexiconConfig  `yaml:"lexicon"`
	Repair   RepairConfig   `yaml:"repair"`
	Database DatabaseConfig `yaml:"database"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// LexiconConfig points at an optional YAML file extending the built-in
// syllable, loanword and cluster tables.
type LexiconConfig struct {
	Path string `yaml:"path" env:"LEXICON_PATH"`
}

// Transcript sources for the batch repair.
const (
	SourceFiles    = "files"
	SourcePostgres = "postgres"
)

// RepairConfig holds batch repair settings.
type RepairConfig struct {
	Source    string `yaml:"source"     env:"REPAIR_SOURCE"     env-default:"files"`
	InputDir  string `yaml:"input_dir"  env:"REPAIR_INPUT_DIR"  env-default:"./transcripts"`
	Pattern   string `yaml:"pattern"    env:"REPAIR_PATTERN"    env-default:"*.txt"`
	OutputDir string `yaml:"output_dir" env:"REPAIR_OUTPUT_DIR"`
	DryRun    bool   `yaml:"dry_run"    env:"REPAIR_DRY_RUN"    env-default:"false"`
	Workers   int    `yaml:"workers"    env:"REPAIR_WORKERS"    env-default:"4"`
	Voice     string `yaml:"voice"      env:"REPAIR_VOICE"      env-default:"bare"`
}

// DatabaseConfig holds PostgreSQL connection settings. Only used when
// repair.source is postgres.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}
