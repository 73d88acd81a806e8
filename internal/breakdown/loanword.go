package breakdown

import (
	"strings"

	"github.com/heartmarshall/tagalog-breakdown/internal/lexicon"
)

// LoanwordClassifier decides whether a word is a borrowing that is taught
// whole instead of syllable by syllable.
//
// The orthographic markers are heuristics: a borrowing without them is
// missed, and a native word that happens to contain one is flagged.
type LoanwordClassifier struct {
	tables *lexicon.Tables
}

// NewLoanwordClassifier creates a classifier over tables.
func NewLoanwordClassifier(tables *lexicon.Tables) *LoanwordClassifier {
	return &LoanwordClassifier{tables: tables}
}

// IsLoanword reports whether word is a known borrowing, contains a letter
// pair foreign to native roots, or carries a foreign suffix.
func (c *LoanwordClassifier) IsLoanword(word string) bool {
	w := bareWord(word)
	if w == "" {
		return false
	}
	if c.tables.IsKnownLoanword(w) {
		return true
	}
	for _, d := range c.tables.ForeignDigraphs() {
		if strings.Contains(w, d) {
			return true
		}
	}
	for _, suffix := range c.tables.ForeignSuffixes() {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}
