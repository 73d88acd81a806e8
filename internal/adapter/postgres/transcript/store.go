package transcript

import (
	"context"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store adapts Repo to the batch runner. Its RunInTx makes a batch of
// saves commit together.
type Store struct {
	repo *Repo
	tx   txManager
}

// NewStore creates a Store.
func NewStore(repo *Repo, tx txManager) *Store {
	return &Store{repo: repo, tx: tx}
}

// List returns every stored transcript.
func (s *Store) List(ctx context.Context) ([]domain.Transcript, error) {
	return s.repo.List(ctx)
}

// Save updates one transcript.
func (s *Store) Save(ctx context.Context, t domain.Transcript) error {
	return s.repo.Save(ctx, t)
}

// RunInTx runs fn in a single transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.tx.RunInTx(ctx, fn)
}
