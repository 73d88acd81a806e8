package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeText prepares text for lookups and comparison:
//   - composes to Unicode NFC
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses any run of whitespace into a single space
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	return strings.ToLower(NormalizePhrase(text))
}

// NormalizePhrase collapses a phrase into its canonical text form: the
// whitespace-separated words rejoined with single spaces, NFC-composed.
// Letter case is kept as written.
func NormalizePhrase(text string) string {
	return strings.Join(strings.Fields(norm.NFC.String(text)), " ")
}
