// Package breakdown builds Pimsleur-style graduated-recall sequences for
// Tagalog phrases: the smallest phonetic units are taught first and the
// sequence rebuilds right-to-left until the full phrase is reached.
//
// Everything here is pure and synchronous. A Composer only reads its
// lexicon, so one instance may serve concurrent callers.
package breakdown

import (
	"strings"
	"sync"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
	"github.com/heartmarshall/tagalog-breakdown/internal/lexicon"
)

// Word is one whitespace-delimited token of a phrase with its analysis.
type Word struct {
	Text      string
	Syllables []string
	Loanword  bool
}

// Atomic reports whether the word is taught whole: loanwords and
// single-syllable words are never split.
func (w Word) Atomic() bool {
	return w.Loanword || len(w.Syllables) <= 1
}

// Phrase is an analysed phrase.
type Phrase struct {
	Words []Word
}

// Text returns the canonical form: words joined by single spaces.
func (p Phrase) Text() string {
	return joinWords(p.Words)
}

// AllAtomic reports whether no word of the phrase needs a syllable breakdown.
func (p Phrase) AllAtomic() bool {
	for _, w := range p.Words {
		if !w.Atomic() {
			return false
		}
	}
	return true
}

// Composer produces breakdown sequences.
type Composer struct {
	syllabifier *Syllabifier
	classifier  *LoanwordClassifier
}

// NewComposer creates a Composer over tables.
func NewComposer(tables *lexicon.Tables) *Composer {
	return &Composer{
		syllabifier: NewSyllabifier(tables),
		classifier:  NewLoanwordClassifier(tables),
	}
}

var defaultComposer = sync.OnceValue(func() *Composer {
	return NewComposer(lexicon.Default())
})

// Default returns a shared Composer over the built-in lexicon.
func Default() *Composer {
	return defaultComposer()
}

// Syllabifier returns the composer's syllabifier.
func (c *Composer) Syllabifier() *Syllabifier { return c.syllabifier }

// Classifier returns the composer's loanword classifier.
func (c *Composer) Classifier() *LoanwordClassifier { return c.classifier }

// Analyze splits phrase on whitespace and analyses every word.
func (c *Composer) Analyze(phrase string) Phrase {
	fields := strings.Fields(domain.NormalizePhrase(phrase))
	words := make([]Word, len(fields))
	for i, f := range fields {
		words[i] = Word{
			Text:      f,
			Syllables: c.syllabifier.Syllabify(f),
			Loanword:  c.classifier.IsLoanword(f),
		}
	}
	return Phrase{Words: words}
}

// Compose returns the breakdown sequence for phrase. Empty or
// whitespace-only input yields an empty sequence.
//
// Words are swept right to left while a suffix of already-taught words
// grows. An atomic word is spoken bare; any other word is rebuilt from
// its syllables first. Each word is then joined to the taught suffix as a
// partial phrase, except the left-most word (whose partial phrase is the
// full phrase) and a word with nothing taught after it (whose partial
// phrase is the word itself). The full phrase closes the sequence twice,
// or once when every word was atomic.
func (c *Composer) Compose(phrase string) []string {
	p := c.Analyze(phrase)
	if len(p.Words) == 0 {
		return []string{}
	}

	full := p.Text()
	steps := []string{full}

	if len(p.Words) == 1 && p.Words[0].Atomic() {
		return steps
	}

	for i := len(p.Words) - 1; i >= 0; i-- {
		w := p.Words[i]
		if w.Atomic() {
			steps = append(steps, w.Text)
		} else {
			steps = appendSyllableSteps(steps, w.Syllables)
			steps = append(steps, w.Text)
		}

		taught := p.Words[i+1:]
		if i > 0 && len(taught) > 0 {
			steps = append(steps, joinWords(p.Words[i:]))
		}
	}

	steps = append(steps, full)
	if !p.AllAtomic() {
		steps = append(steps, full)
	}
	return steps
}

// appendSyllableSteps emits syllables right to left, each non-final one
// followed by the right-aligned run it completes, and the first syllable
// last. For [sa la mat]: mat, la, lamat, sa.
func appendSyllableSteps(steps, syl []string) []string {
	n := len(syl)
	for i := n - 1; i >= 1; i-- {
		steps = append(steps, syl[i])
		if i < n-1 {
			steps = append(steps, strings.Join(syl[i:], ""))
		}
	}
	return append(steps, syl[0])
}

func joinWords(words []Word) string {
	texts := make([]string, len(words))
	for i, w := range words {
		texts[i] = w.Text
	}
	return strings.Join(texts, " ")
}
