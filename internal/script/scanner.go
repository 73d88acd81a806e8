// Package script locates the Key Phrases teaching sections of a lesson
// transcript and rewrites their breakdowns.
//
// A transcript is newline-delimited text of tagged lines such as
// "[NARRATOR]: thank you" or "[TAGALOG-FEMALE-1]: salamat po". Inside a
// "Key Phrases:" section each phrase is introduced, translated, repeated
// verbatim and then broken down, until a "... Natural Speed" or
// "... Slow Speed" marker ends the section.
package script

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

const sectionHeader = "Key Phrases:"

var (
	speakerLine  = regexp.MustCompile(`^\[(TAGALOG-(?:FEMALE|MALE)-\d+)\]:\s*(.*)$`)
	narratorLine = regexp.MustCompile(`^\[NARRATOR\]:`)
)

// KeyPhraseSpan is one taught phrase found inside a Key Phrases section.
// Line fields are zero-based indexes into the transcript lines.
type KeyPhraseSpan struct {
	Phrase  string
	Speaker string // tag without brackets, e.g. TAGALOG-FEMALE-1

	IntroLine       int
	TranslationLine int
	RepetitionLine  int

	// Start and End delimit the breakdown as a half-open line range. The
	// range is empty when the transcript has no breakdown at all.
	Start int
	End   int
}

// Scanner finds KeyPhraseSpans in transcript lines.
type Scanner struct {
	log *slog.Logger
}

// NewScanner creates a Scanner. Skipped malformed sections are logged at
// debug level.
func NewScanner(log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Scanner{log: log}
}

// Scan splits text into lines and scans them without logging.
func Scan(text string) []KeyPhraseSpan {
	return NewScanner(nil).Scan(strings.Split(text, "\n"))
}

type scanState int

const (
	outside scanState = iota
	inSection
	awaitingRepetition
	collecting
)

// Scan returns the spans of lines in document order. Spans never overlap.
func (s *Scanner) Scan(lines []string) []KeyPhraseSpan {
	var (
		spans   []KeyPhraseSpan
		state   = outside
		cur     KeyPhraseSpan
		lastEnd int // one past the last non-blank breakdown line
	)

	emit := func() {
		cur.End = lastEnd
		spans = append(spans, cur)
		cur = KeyPhraseSpan{}
	}

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])

		switch state {
		case outside:
			if line == sectionHeader {
				state = inSection
			}
			continue

		case collecting:
			switch {
			case isTerminal(line):
				emit()
				state = outside
				continue
			case line == sectionHeader, narratorLine.MatchString(line):
				emit()
				state = inSection
				continue
			case speakerLine.MatchString(line):
				if continuesBreakdown(lines, i, cur) {
					lastEnd = i + 1
					continue
				}
				emit()
				state = inSection
				// fall through to candidate handling below
			default:
				if line != "" {
					lastEnd = i + 1
				}
				continue
			}

		case awaitingRepetition:
			if line == "" {
				continue
			}
			if isRepetition(line, cur) {
				cur.RepetitionLine = i
				cur.Start = i + 1
				lastEnd = i + 1
				state = collecting
				continue
			}
			s.log.Debug("key phrase without repetition line, skipped",
				slog.String("phrase", cur.Phrase),
				slog.Int("line", cur.IntroLine+1))
			cur = KeyPhraseSpan{}
			state = inSection
		}

		// inSection
		if isTerminal(line) {
			state = outside
			continue
		}
		m := speakerLine.FindStringSubmatch(line)
		if m == nil || strings.TrimSpace(m[2]) == "" {
			continue
		}
		if !opensCandidate(lines, i) {
			s.log.Debug("key phrase without translation line, skipped",
				slog.String("phrase", m[2]),
				slog.Int("line", i+1))
			continue
		}
		cur = KeyPhraseSpan{
			Phrase:          strings.TrimSpace(m[2]),
			Speaker:         m[1],
			IntroLine:       i,
			TranslationLine: i + 1,
		}
		i++ // translation
		state = awaitingRepetition
	}

	switch state {
	case collecting:
		emit()
	case awaitingRepetition:
		s.log.Debug("key phrase without repetition line, skipped",
			slog.String("phrase", cur.Phrase),
			slog.Int("line", cur.IntroLine+1))
	}
	return spans
}

// opensCandidate reports whether lines[i] introduces a key phrase: a
// speaker line directly followed by a narrator translation.
func opensCandidate(lines []string, i int) bool {
	if i+1 >= len(lines) {
		return false
	}
	line := strings.TrimSpace(lines[i])
	next := strings.TrimSpace(lines[i+1])
	return speakerLine.MatchString(line) && narratorLine.MatchString(next) && !isTerminal(next)
}

// introducesPhrase reports whether lines[i] opens a complete key phrase:
// a candidate whose translation is followed by its repetition.
func introducesPhrase(lines []string, i int) bool {
	if !opensCandidate(lines, i) {
		return false
	}
	m := speakerLine.FindStringSubmatch(strings.TrimSpace(lines[i]))
	next := KeyPhraseSpan{Speaker: m[1], Phrase: strings.TrimSpace(m[2])}
	for j := i + 2; j < len(lines); j++ {
		line := strings.TrimSpace(lines[j])
		if line == "" {
			continue
		}
		return isRepetition(line, next)
	}
	return false
}

// continuesBreakdown reports whether the speaker line lines[i] is a voiced
// step of span: same speaker, and its letters occur in the phrase. A line
// that introduces a new key phrase never continues a breakdown.
func continuesBreakdown(lines []string, i int, span KeyPhraseSpan) bool {
	m := speakerLine.FindStringSubmatch(strings.TrimSpace(lines[i]))
	if m == nil || m[1] != span.Speaker {
		return false
	}
	step := letters(m[2])
	if step == "" || !strings.Contains(letters(span.Phrase), step) {
		return false
	}
	return !introducesPhrase(lines, i)
}

// letters returns the lowercased letters of s, dropping hyphens, spaces
// and punctuation.
func letters(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, domain.NormalizeText(s))
}

func isRepetition(line string, span KeyPhraseSpan) bool {
	m := speakerLine.FindStringSubmatch(line)
	return m != nil && m[1] == span.Speaker && strings.TrimSpace(m[2]) == span.Phrase
}

// isTerminal reports whether line closes a Key Phrases section.
func isTerminal(line string) bool {
	return strings.HasSuffix(line, "Natural Speed") || strings.HasSuffix(line, "Slow Speed")
}

// stripSpeaker removes a leading speaker tag from a trimmed line.
func stripSpeaker(line string) string {
	if m := speakerLine.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[2])
	}
	return line
}
