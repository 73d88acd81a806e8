package script

import (
	"log/slog"
	"slices"
	"strings"
)

// Finding describes a key phrase whose breakdown differs from the
// canonical sequence.
type Finding struct {
	Phrase   string
	Line     int // one-based line of the phrase introduction
	Expected []string
	Actual   []string
	Missing  []string // expected steps absent from the transcript
	Extra    []string // transcript steps not in the canonical sequence
}

// Audit compares every breakdown in text with the canonical sequence and
// returns one Finding per mismatch. Speaker tags and surrounding blanks are
// ignored, so a transcript repaired with either voice audits clean.
func (r *Repairer) Audit(text string) []Finding {
	lines := strings.Split(text, "\n")

	var findings []Finding
	for _, span := range r.scanner.Scan(lines) {
		expected, err := r.compose(span.Phrase)
		if err != nil {
			r.log.Error("compose breakdown",
				slog.String("phrase", span.Phrase),
				slog.String("error", err.Error()))
			continue
		}

		var actual []string
		for _, l := range lines[span.Start:span.End] {
			if l = strings.TrimSpace(l); l != "" {
				actual = append(actual, stripSpeaker(l))
			}
		}

		if slices.Equal(expected, actual) {
			continue
		}
		findings = append(findings, Finding{
			Phrase:   span.Phrase,
			Line:     span.IntroLine + 1,
			Expected: expected,
			Actual:   actual,
			Missing:  subtract(expected, actual),
			Extra:    subtract(actual, expected),
		})
	}
	return findings
}

// subtract returns the elements of a not matched by an element of b,
// counting duplicates.
func subtract(a, b []string) []string {
	left := make(map[string]int, len(b))
	for _, s := range b {
		left[s]++
	}
	var out []string
	for _, s := range a {
		if left[s] > 0 {
			left[s]--
			continue
		}
		out = append(out, s)
	}
	return out
}
