// Package batch repairs every transcript in a store.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/tagalog-breakdown/internal/config"
	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
	"github.com/heartmarshall/tagalog-breakdown/internal/script"
	"github.com/heartmarshall/tagalog-breakdown/pkg/ctxutil"
)

// Store supplies transcripts and persists repaired ones.
type Store interface {
	List(ctx context.Context) ([]domain.Transcript, error)
	Save(ctx context.Context, t domain.Transcript) error
}

// transactional is implemented by stores that can commit a batch of saves
// atomically.
type transactional interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Repairer rewrites the breakdowns of one transcript.
type Repairer interface {
	RepairWithReport(text string) (string, script.Report)
}

// Result holds batch statistics.
type Result struct {
	Processed      int
	Repaired       int
	Unchanged      int
	SpansRewritten int
	SpansFailed    int
	Errors         int
}

// Run lists all transcripts, repairs them on cfg.Workers goroutines and
// saves the changed ones unless cfg.DryRun is set. A run ID is put in the
// context unless the caller supplied one.
//
// A failed save is logged and counted, and the batch goes on. With a
// transactional store every save runs in one transaction, so the first
// failure rolls the whole batch back and is returned.
func Run(ctx context.Context, cfg config.RepairConfig, store Store, repairer Repairer, log *slog.Logger) (Result, error) {
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}

	transcripts, err := store.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list transcripts: %w", err)
	}

	reports := make([]script.Report, len(transcripts))
	repaired := make([]string, len(transcripts))

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range transcripts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			repaired[i], reports[i] = repairer.RepairWithReport(transcripts[i].Content)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("repair transcripts: %w", err)
	}

	var (
		result  Result
		changed []domain.Transcript
	)
	now := time.Now().UTC()
	for i, t := range transcripts {
		result.Processed++
		result.SpansRewritten += reports[i].Rewritten
		result.SpansFailed += reports[i].Failed

		if !reports[i].Changed() {
			result.Unchanged++
			continue
		}
		result.Repaired++

		log.DebugContext(ctxutil.WithTranscript(ctx, t.Name), "transcript repaired",
			slog.Int("spans", reports[i].Spans),
			slog.Int("rewritten", reports[i].Rewritten))

		t.Content = repaired[i]
		t.RepairedAt = &now
		changed = append(changed, t)
	}

	if !cfg.DryRun && len(changed) > 0 {
		if err := save(ctx, store, changed, &result, log); err != nil {
			return result, err
		}
	}

	log.InfoContext(ctx, "batch repair complete",
		slog.Int("processed", result.Processed),
		slog.Int("repaired", result.Repaired),
		slog.Int("unchanged", result.Unchanged),
		slog.Int("spans_rewritten", result.SpansRewritten),
		slog.Int("spans_failed", result.SpansFailed),
		slog.Int("errors", result.Errors),
		slog.Bool("dry_run", cfg.DryRun),
	)
	return result, nil
}

func save(ctx context.Context, store Store, changed []domain.Transcript, result *Result, log *slog.Logger) error {
	if tx, ok := store.(transactional); ok {
		err := tx.RunInTx(ctx, func(ctx context.Context) error {
			for _, t := range changed {
				if err := store.Save(ctx, t); err != nil {
					return fmt.Errorf("save %s: %w", t.Name, err)
				}
			}
			return nil
		})
		if err != nil {
			result.Errors++
			return err
		}
		return nil
	}

	for _, t := range changed {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := store.Save(ctx, t); err != nil {
			log.ErrorContext(ctxutil.WithTranscript(ctx, t.Name), "save transcript", slog.String("error", err.Error()))
			result.Errors++
		}
	}
	return nil
}
