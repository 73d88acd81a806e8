// Package transcript implements lesson transcript persistence using PostgreSQL.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/tagalog-breakdown/internal/adapter/postgres"
	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

const table = "lesson_transcripts"

var columns = []string{"id", "name", "content", "repaired_at", "created_at", "updated_at"}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides transcript persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new transcript repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// List returns all transcripts ordered by name.
// Returns an empty slice (not nil) when the table is empty.
func (r *Repo) List(ctx context.Context) ([]domain.Transcript, error) {
	query, args, err := psql.Select(columns...).From(table).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	defer rows.Close()

	result := []domain.Transcript{}
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("list transcripts: %w", err)
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	return result, nil
}

// GetByName returns the transcript with the given unique name.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Transcript, error) {
	query, args, err := psql.Select(columns...).From(table).Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get query: %w", err)
	}

	t, err := scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "transcript", name)
	}
	return &t, nil
}

// Create inserts a new transcript. A zero ID is replaced with a fresh one.
// Returns domain.ErrAlreadyExists when the name is taken and a
// *domain.ValidationError for an invalid transcript.
func (r *Repo) Create(ctx context.Context, t domain.Transcript) (*domain.Transcript, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	query, args, err := psql.Insert(table).
		Columns("id", "name", "content", "repaired_at").
		Values(t.ID, t.Name, t.Content, t.RepairedAt).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert query: %w", err)
	}

	created, err := scan(postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "transcript", t.Name)
	}
	return &created, nil
}

// Save stores the content and repaired_at of an existing transcript.
// Returns domain.ErrNotFound if no row has t.ID.
func (r *Repo) Save(ctx context.Context, t domain.Transcript) error {
	query, args, err := psql.Update(table).
		Set("content", t.Content).
		Set("repaired_at", t.RepairedAt).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "transcript", t.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "transcript", t.ID.String())
	}
	return nil
}

func scan(row pgx.Row) (domain.Transcript, error) {
	var (
		t          domain.Transcript
		repairedAt *time.Time
	)
	if err := row.Scan(&t.ID, &t.Name, &t.Content, &repairedAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t, err
		}
		return t, fmt.Errorf("scan transcript: %w", err)
	}
	t.RepairedAt = repairedAt
	return t, nil
}
