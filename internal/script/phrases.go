package script

import (
	"strings"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

// TaggedPhrases returns every multi-word phrase spoken by a Tagalog
// speaker in text, in order of first appearance and without duplicates.
// Breakdown lines are skipped, and trailing sentence punctuation is
// dropped.
func TaggedPhrases(text string) []string {
	lines := strings.Split(text, "\n")

	inBreakdown := make(map[int]bool)
	for _, span := range Scan(text) {
		for i := span.Start; i < span.End; i++ {
			inBreakdown[i] = true
		}
	}

	seen := make(map[string]bool)
	var phrases []string
	for i, line := range lines {
		if inBreakdown[i] {
			continue
		}
		m := speakerLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		phrase := domain.NormalizePhrase(strings.TrimRight(m[2], ".,!?;: "))
		if strings.Count(phrase, " ") < 1 {
			continue
		}
		key := strings.ToLower(phrase)
		if seen[key] {
			continue
		}
		seen[key] = true
		phrases = append(phrases, phrase)
	}
	return phrases
}
