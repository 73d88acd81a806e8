package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAudit(t *testing.T) {
	t.Parallel()

	findings := newRepairer().Audit(readTestdata(t, "day15.txt"))
	require.Len(t, findings, 2)

	want := Finding{
		Phrase: "salamat po",
		Line:   5,
		Expected: []string{
			"salamat po", "po", "mat", "la", "lamat", "sa", "salamat",
			"salamat po", "salamat po",
		},
		Actual:  []string{"sa-la-mat po", "sa-la-mat", "sa-la", "sa"},
		Missing: []string{"salamat po", "po", "mat", "la", "lamat", "salamat", "salamat po", "salamat po"},
		Extra:   []string{"sa-la-mat po", "sa-la-mat", "sa-la"},
	}
	if diff := cmp.Diff(want, findings[0]); diff != "" {
		t.Errorf("Audit()[0] mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "kumusta po", findings[1].Phrase)
	assert.Equal(t, 13, findings[1].Line)
}

func TestAudit_RepairedTranscriptsAreClean(t *testing.T) {
	t.Parallel()

	r := newRepairer()
	assert.Empty(t, r.Audit(readTestdata(t, "day15_repaired.txt")))
	assert.Empty(t, r.Audit(readTestdata(t, "day14_speaker_repaired.txt")))
	assert.Empty(t, r.Audit("no sections here"))
}

func TestSubtract(t *testing.T) {
	t.Parallel()

	got := subtract([]string{"a", "b", "a", "c"}, []string{"a", "c", "d"})
	if diff := cmp.Diff([]string{"b", "a"}, got); diff != "" {
		t.Errorf("subtract mismatch (-want +got):\n%s", diff)
	}
}
