package script

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

type composer interface {
	Compose(phrase string) []string
}

// Voice controls how breakdown steps are written back into a transcript.
type Voice string

const (
	// VoiceBare writes each step on its own untagged line.
	VoiceBare Voice = "bare"
	// VoiceSpeaker tags each step with the speaker who introduced the phrase.
	VoiceSpeaker Voice = "speaker"
)

// ParseVoice parses a voice name. The empty string selects VoiceBare.
func ParseVoice(s string) (Voice, error) {
	switch v := Voice(strings.ToLower(strings.TrimSpace(s))); v {
	case "", VoiceBare:
		return VoiceBare, nil
	case VoiceSpeaker:
		return v, nil
	default:
		return "", fmt.Errorf("unknown voice %q: want %q or %q", s, VoiceBare, VoiceSpeaker)
	}
}

// Report summarises one Repair call.
type Report struct {
	Spans     int
	Rewritten int
	Unchanged int
	Failed    int
}

// Changed reports whether any span was rewritten.
func (r Report) Changed() bool { return r.Rewritten > 0 }

// Repairer replaces the breakdown of every key phrase with the canonical
// sequence.
type Repairer struct {
	log      *slog.Logger
	scanner  *Scanner
	composer composer
	voice    Voice
}

// Option configures a Repairer.
type Option func(*Repairer)

// WithVoice selects how steps are rendered. Default is VoiceBare.
func WithVoice(v Voice) Option {
	return func(r *Repairer) { r.voice = v }
}

// NewRepairer creates a Repairer. A nil logger discards output.
func NewRepairer(log *slog.Logger, c composer, opts ...Option) *Repairer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("component", "repairer")
	r := &Repairer{
		log:      log,
		scanner:  NewScanner(log),
		composer: c,
		voice:    VoiceBare,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Repair returns text with every breakdown replaced. Lines outside the
// breakdowns are preserved byte for byte; text without spans is returned
// as is.
func (r *Repairer) Repair(text string) string {
	out, _ := r.RepairWithReport(text)
	return out
}

// RepairWithReport is Repair that also reports what happened to each span.
// A span whose composition fails keeps its original lines.
func (r *Repairer) RepairWithReport(text string) (string, Report) {
	lines := strings.Split(text, "\n")
	spans := r.scanner.Scan(lines)

	report := Report{Spans: len(spans)}
	if len(spans) == 0 {
		return text, report
	}

	out := make([]string, 0, len(lines))
	prev := 0
	for _, span := range spans {
		out = append(out, lines[prev:span.Start]...)
		prev = span.End

		original := lines[span.Start:span.End]
		replacement, err := r.render(span, lineEnding(lines[span.RepetitionLine]))
		switch {
		case err != nil:
			report.Failed++
			r.log.Error("compose breakdown",
				slog.String("phrase", span.Phrase),
				slog.Int("line", span.IntroLine+1),
				slog.String("error", err.Error()))
			out = append(out, original...)
		case slices.Equal(original, replacement):
			report.Unchanged++
			out = append(out, original...)
		default:
			report.Rewritten++
			r.log.Debug("breakdown rewritten",
				slog.String("phrase", span.Phrase),
				slog.Int("old_lines", len(original)),
				slog.Int("new_lines", len(replacement)))
			out = append(out, replacement...)
		}
	}
	out = append(out, lines[prev:]...)

	if report.Rewritten == 0 {
		return text, report
	}
	return strings.Join(out, "\n"), report
}

// render composes span's breakdown as transcript lines, each terminated
// by eol.
func (r *Repairer) render(span KeyPhraseSpan, eol string) ([]string, error) {
	steps, err := r.compose(span.Phrase)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(steps))
	for i, step := range steps {
		if r.voice == VoiceSpeaker {
			step = "[" + span.Speaker + "]: " + step
		}
		lines[i] = step + eol
	}
	return lines, nil
}

// compose runs the composer, turning a panic into an error.
func (r *Repairer) compose(phrase string) (steps []string, err error) {
	defer func() {
		if p := recover(); p != nil {
			steps, err = nil, fmt.Errorf("compose %q: panic: %v", phrase, p)
		}
	}()

	steps = r.composer.Compose(phrase)
	if len(steps) == 0 {
		return nil, fmt.Errorf("compose %q: empty breakdown", phrase)
	}
	return steps, nil
}

// lineEnding returns "\r" for lines that came from a CRLF transcript.
func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}
