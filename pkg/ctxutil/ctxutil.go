// Package ctxutil carries run-scoped identifiers through a context and into
// log records.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	runIDKey      ctxKey = "run_id"
	transcriptKey ctxKey = "transcript"
)

// WithRunID stores the batch run ID in the context.
func WithRunID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromCtx extracts the run ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func RunIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(runIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

// WithTranscript stores the name of the transcript being processed.
func WithTranscript(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, transcriptKey, name)
}

// TranscriptFromCtx extracts the transcript name from the context.
// Returns an empty string if absent.
func TranscriptFromCtx(ctx context.Context) string {
	name, _ := ctx.Value(transcriptKey).(string)
	return name
}

// LogHandler adds run_id and transcript attributes from the record's
// context to every record passed to the wrapped handler.
type LogHandler struct {
	slog.Handler
}

// NewLogHandler wraps h.
func NewLogHandler(h slog.Handler) *LogHandler {
	return &LogHandler{Handler: h}
}

func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	if id, ok := RunIDFromCtx(ctx); ok {
		r.AddAttrs(slog.String("run_id", id.String()))
	}
	if name := TranscriptFromCtx(ctx); name != "" {
		r.AddAttrs(slog.String("transcript", name))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{Handler: h.Handler.WithGroup(name)}
}
