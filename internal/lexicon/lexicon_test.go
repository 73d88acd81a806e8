package lexicon

import (
	"errors"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

func testdataPath(t *testing.T, name string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine test file path")
	}
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

func TestDefault_BuiltinTablesAreValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, validate(builtin()))

	tables := Default()
	assert.Len(t, tables.Words(), 16)
	assert.True(t, tables.IsKnownLoanword("souvenir"))
	assert.True(t, tables.IsOnsetCluster("p", "r"))
	assert.False(t, tables.IsOnsetCluster("n", "g"))
	assert.Equal(t, []string{"th", "sh", "ch", "ck"}, tables.ForeignDigraphs())
	assert.Equal(t, []string{"tion", "sion", "ment", "ness", "ing", "ed"}, tables.ForeignSuffixes())
}

func TestTables_Syllables(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		word   string
		want   []string
		wantOK bool
	}{
		{"salamat", []string{"sa", "la", "mat"}, true},
		{"SALAMAT", []string{"sa", "la", "mat"}, true},
		{"  Kumusta ", []string{"ku", "mus", "ta"}, true},
		{"pwede", []string{"pwe", "de"}, true},
		{"po", []string{"po"}, true},
		{"sarap", nil, false},
		{"", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			t.Parallel()
			got, ok := tables.Syllables(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTables_SyllablesReturnsCopy(t *testing.T) {
	t.Parallel()

	tables := Default()
	got, ok := tables.Syllables("salamat")
	require.True(t, ok)
	got[0] = "XX"

	again, _ := tables.Syllables("salamat")
	assert.Equal(t, []string{"sa", "la", "mat"}, again)
}

func TestTables_ListAccessorsReturnCopies(t *testing.T) {
	t.Parallel()

	tables := Default()
	d := tables.ForeignDigraphs()
	d[0] = "zz"
	s := tables.ForeignSuffixes()
	s[0] = "zz"

	assert.Equal(t, "th", tables.ForeignDigraphs()[0])
	assert.Equal(t, "tion", tables.ForeignSuffixes()[0])
}

func TestTables_IsKnownLoanword_CaseInsensitive(t *testing.T) {
	t.Parallel()

	tables := Default()
	for _, w := range []string{"SOUVENIR", "Camera", "HoTeL", " wifi "} {
		assert.True(t, tables.IsKnownLoanword(w), w)
	}
	for _, w := range []string{"salamat", "kayo", ""} {
		assert.False(t, tables.IsKnownLoanword(w), w)
	}
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	t.Parallel()

	tables, err := LoadFile(testdataPath(t, "extra.yaml"))
	require.NoError(t, err)

	got, ok := tables.Syllables("nakakamangha")
	require.True(t, ok)
	assert.Equal(t, []string{"na", "ka", "ka", "mang", "ha"}, got)

	// built-ins survive the merge
	got, ok = tables.Syllables("salamat")
	require.True(t, ok)
	assert.Equal(t, []string{"sa", "la", "mat"}, got)

	assert.True(t, tables.IsKnownLoanword("jeepney"))
	assert.True(t, tables.IsKnownLoanword("tricycle"))
	assert.True(t, tables.IsKnownLoanword("hotel"))
	assert.True(t, tables.IsOnsetCluster("t", "s"))
	assert.True(t, tables.IsOnsetCluster("p", "r"))
}

func TestLoadFile_InvalidEntries(t *testing.T) {
	t.Parallel()

	_, err := LoadFile(testdataPath(t, "invalid.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrValidation))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)
	assert.Equal(t, "clusters", ve.Errors[0].Field)
	assert.Equal(t, "syllables.kayo", ve.Errors[1].Field)
	assert.Equal(t, "syllables.salamat", ve.Errors[2].Field)
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(testdataPath(t, "does-not-exist.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		_, err := LoadFile(testdataPath(t, "broken.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})
}

func TestNew_DoesNotLeakIntoDefault(t *testing.T) {
	t.Parallel()

	_, err := New(File{Syllables: map[string][]string{"sarap": {"sa", "rap"}}})
	require.NoError(t, err)

	_, ok := Default().Syllables("sarap")
	assert.False(t, ok)
}

func TestTables_ConcurrentReads(t *testing.T) {
	t.Parallel()

	tables := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, w := range tables.Words() {
				s, ok := tables.Syllables(w)
				if !ok || len(s) == 0 {
					t.Errorf("missing syllables for %q", w)
				}
			}
			_ = tables.IsKnownLoanword("hotel")
			_ = tables.IsOnsetCluster("t", "r")
		}()
	}
	wg.Wait()
}
