package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedTranscript inserts an unrepaired transcript named prefix plus a
// unique suffix and returns it.
func SeedTranscript(t *testing.T, pool *pgxpool.Pool, prefix, content string) domain.Transcript {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tr := domain.Transcript{
		ID:        uuid.New(),
		Name:      prefix + "-" + uniqueSuffix(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO lesson_transcripts (id, name, content, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		tr.ID, tr.Name, tr.Content, tr.CreatedAt, tr.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: seed transcript: %v", err)
	}

	return tr
}
