package filestore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestStore_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"day-02.txt": "two",
		"day-01.txt": "one",
		"notes.md":   "skip",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.txt"), 0o755))

	got, err := New(dir, "*.txt", "").List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "day-01.txt", got[0].Name)
	assert.Equal(t, "one", got[0].Content)
	assert.Equal(t, IDFor("day-01.txt"), got[0].ID)
	assert.False(t, got[0].IsRepaired())
	assert.Equal(t, "day-02.txt", got[1].Name)
}

func TestStore_List_Empty(t *testing.T) {
	t.Parallel()

	got, err := New(t.TempDir(), "", "").List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestStore_List_BadPattern(t *testing.T) {
	t.Parallel()

	_, err := New(t.TempDir(), "[", "").List(context.Background())
	assert.Error(t, err)
}

func TestStore_List_Canceled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "a"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(dir, "*.txt", "").List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStore_Save_InPlace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"day-01.txt": "old"})

	s := New(dir, "*.txt", "")
	require.NoError(t, s.Save(context.Background(), domain.Transcript{Name: "day-01.txt", Content: "new"}))

	data, err := os.ReadFile(filepath.Join(dir, "day-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	info, err := os.Stat(filepath.Join(dir, "day-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestStore_Save_OutputDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(t.TempDir(), "fixed")
	writeFiles(t, dir, map[string]string{"week1/day-01.txt": "old"})

	s := New(dir, "*/*.txt", out)
	list, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	tr := list[0]
	tr.Content = "new"
	require.NoError(t, s.Save(context.Background(), tr))

	data, err := os.ReadFile(filepath.Join(out, "week1", "day-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	original, err := os.ReadFile(filepath.Join(dir, "week1", "day-01.txt"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(original))
}

func TestStore_Save_RejectsEscapingName(t *testing.T) {
	t.Parallel()

	s := New(t.TempDir(), "*.txt", "")
	err := s.Save(context.Background(), domain.Transcript{Name: "../evil.txt", Content: "x"})

	assert.True(t, errors.Is(err, domain.ErrValidation), "got %v", err)
}
