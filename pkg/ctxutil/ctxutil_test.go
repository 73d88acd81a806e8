package ctxutil

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
)

func TestWithRunID_And_RunIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithRunID(context.Background(), id)

	got, ok := RunIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestRunIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := RunIDFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != uuid.Nil {
		t.Fatalf("expected uuid.Nil, got %s", got)
	}
}

func TestRunIDFromCtx_NilUUID(t *testing.T) {
	t.Parallel()

	ctx := WithRunID(context.Background(), uuid.Nil)

	if _, ok := RunIDFromCtx(ctx); ok {
		t.Fatal("expected ok=false for uuid.Nil")
	}
}

func TestTranscriptFromCtx(t *testing.T) {
	t.Parallel()

	if got := TranscriptFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty name, got %q", got)
	}

	ctx := WithTranscript(context.Background(), "day-15.txt")
	if got := TranscriptFromCtx(ctx); got != "day-15.txt" {
		t.Fatalf("expected day-15.txt, got %q", got)
	}
}

func TestLogHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewLogHandler(slog.NewJSONHandler(&buf, nil))).With(slog.String("component", "batch"))

	id := uuid.New()
	ctx := WithTranscript(WithRunID(context.Background(), id), "day-15.txt")
	log.InfoContext(ctx, "transcript repaired")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log record: %v", err)
	}
	if rec["run_id"] != id.String() {
		t.Errorf("run_id = %v, want %s", rec["run_id"], id)
	}
	if rec["transcript"] != "day-15.txt" {
		t.Errorf("transcript = %v, want day-15.txt", rec["transcript"])
	}
	if rec["component"] != "batch" {
		t.Errorf("component = %v, want batch", rec["component"])
	}
}

func TestLogHandler_NoContextValues(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewLogHandler(slog.NewJSONHandler(&buf, nil)))
	log.Info("hello")

	if bytes.Contains(buf.Bytes(), []byte("run_id")) {
		t.Errorf("unexpected run_id in %s", buf.String())
	}
}
