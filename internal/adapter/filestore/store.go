// Package filestore keeps lesson transcripts as plain files in a directory.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

// Store lists transcripts matching a glob pattern in a directory and saves
// them back, either in place or into a separate output directory.
type Store struct {
	dir     string
	pattern string
	outDir  string
}

// New creates a Store. An empty outDir saves in place.
func New(dir, pattern, outDir string) *Store {
	if pattern == "" {
		pattern = "*.txt"
	}
	return &Store{dir: dir, pattern: pattern, outDir: outDir}
}

// List reads every matching file, sorted by name. Transcript names are
// paths relative to the directory and IDs are derived from them, so the
// same file always gets the same ID.
func (s *Store) List(ctx context.Context) ([]domain.Transcript, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, s.pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", s.pattern, err)
	}
	sort.Strings(paths)

	result := make([]domain.Transcript, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		name, err := filepath.Rel(s.dir, path)
		if err != nil {
			return nil, fmt.Errorf("relative name of %s: %w", path, err)
		}

		result = append(result, domain.Transcript{
			ID:        IDFor(name),
			Name:      name,
			Content:   string(data),
			CreatedAt: info.ModTime(),
			UpdatedAt: info.ModTime(),
		})
	}
	return result, nil
}

// Save writes t.Content to the file named t.Name under the output
// directory, or over the original when no output directory is set.
func (s *Store) Save(ctx context.Context, t domain.Transcript) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !filepath.IsLocal(t.Name) {
		return domain.NewValidationError("name", "must be a relative path inside the transcript directory")
	}

	base := s.dir
	if s.outDir != "" {
		base = s.outDir
	}
	target := filepath.Join(base, t.Name)

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(filepath.Join(s.dir, t.Name)); err == nil {
		perm = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", t.Name, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return WriteFile(target, []byte(t.Content), perm)
}

// WriteFile writes data to path atomically via a temp file in the same
// directory and a rename.
func WriteFile(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// IDFor returns the stable transcript ID of a file name.
func IDFor(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("file:"+filepath.ToSlash(name)))
}
