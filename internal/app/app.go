package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/tagalog-breakdown/internal/adapter/filestore"
	"github.com/heartmarshall/tagalog-breakdown/internal/adapter/postgres"
	"github.com/heartmarshall/tagalog-breakdown/internal/adapter/postgres/transcript"
	"github.com/heartmarshall/tagalog-breakdown/internal/app/batch"
	"github.com/heartmarshall/tagalog-breakdown/internal/breakdown"
	"github.com/heartmarshall/tagalog-breakdown/internal/config"
	"github.com/heartmarshall/tagalog-breakdown/internal/lexicon"
	"github.com/heartmarshall/tagalog-breakdown/internal/script"
	"github.com/heartmarshall/tagalog-breakdown/pkg/ctxutil"
)

// LoadLexicon returns the built-in tables, extended by the file at
// cfg.Path when one is configured.
func LoadLexicon(cfg config.LexiconConfig) (*lexicon.Tables, error) {
	if cfg.Path == "" {
		return lexicon.Default(), nil
	}
	return lexicon.LoadFile(cfg.Path)
}

// NewRepairer builds a script.Repairer over the configured lexicon.
func NewRepairer(cfg *config.Config, log *slog.Logger) (*script.Repairer, error) {
	tables, err := LoadLexicon(cfg.Lexicon)
	if err != nil {
		return nil, err
	}
	voice, err := script.ParseVoice(cfg.Repair.Voice)
	if err != nil {
		return nil, err
	}
	return script.NewRepairer(log, breakdown.NewComposer(tables), script.WithVoice(voice)), nil
}

// Run is the batch entry point: it wires the configured transcript store
// to a repairer and repairs every transcript.
func Run(ctx context.Context, cfg *config.Config, log *slog.Logger) (batch.Result, error) {
	ctx = ctxutil.WithRunID(ctx, uuid.New())
	log.InfoContext(ctx, "starting batch repair",
		slog.String("version", BuildVersion()),
		slog.String("source", cfg.Repair.Source),
		slog.Int("workers", cfg.Repair.Workers),
	)

	repairer, err := NewRepairer(cfg, log)
	if err != nil {
		return batch.Result{}, err
	}

	switch cfg.Repair.Source {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return batch.Result{}, err
		}
		defer pool.Close()

		store := transcript.NewStore(transcript.New(pool), postgres.NewTxManager(pool))
		return batch.Run(ctx, cfg.Repair, store, repairer, log)

	case config.SourceFiles:
		store := filestore.New(cfg.Repair.InputDir, cfg.Repair.Pattern, cfg.Repair.OutputDir)
		return batch.Run(ctx, cfg.Repair, store, repairer, log)

	default:
		return batch.Result{}, fmt.Errorf("unknown transcript source %q", cfg.Repair.Source)
	}
}
