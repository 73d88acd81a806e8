package breakdown

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
	"github.com/heartmarshall/tagalog-breakdown/internal/lexicon"
)

// Syllabifier splits words into syllables: override table first, then the
// orthographic rule engine.
type Syllabifier struct {
	tables *lexicon.Tables
}

// NewSyllabifier creates a Syllabifier reading overrides from tables.
func NewSyllabifier(tables *lexicon.Tables) *Syllabifier {
	return &Syllabifier{tables: tables}
}

// segment is one orthographic unit: a vowel, a consonant, or the nasal
// digraph "ng" acting as a single consonant.
type segment struct {
	text  string
	vowel bool
}

// Syllabify returns the lower-case syllables of word. It never fails: a
// word the rules cannot split comes back as a single syllable, and an
// empty word yields nil.
//
// Surrounding punctuation is ignored. Hyphens and other inner punctuation
// mark syllable boundaries and are dropped, so "mag-aral" gives
// [mag a ral].
func (s *Syllabifier) Syllabify(word string) []string {
	w := bareWord(word)
	if w == "" {
		return nil
	}
	if syl, ok := s.tables.Syllables(w); ok {
		return syl
	}

	var out []string
	for _, part := range strings.FieldsFunc(w, isSeparator) {
		if syl, ok := s.tables.Syllables(part); ok {
			out = append(out, syl...)
			continue
		}
		out = append(out, s.split(part)...)
	}
	return out
}

// split applies the syllable rules to a word without separators.
func (s *Syllabifier) split(w string) []string {
	segs := segmentize(w)

	var nuclei []int
	for i, seg := range segs {
		if seg.vowel {
			nuclei = append(nuclei, i)
		}
	}
	if len(nuclei) < 2 {
		return []string{w}
	}

	// starts[k] is the index of the first segment of syllable k.
	starts := make([]int, len(nuclei))
	for k := 1; k < len(nuclei); k++ {
		starts[k] = s.onset(segs, nuclei[k-1], nuclei[k])
	}

	syllables := make([]string, len(nuclei))
	for k := range nuclei {
		end := len(segs)
		if k+1 < len(nuclei) {
			end = starts[k+1]
		}
		var b strings.Builder
		for _, seg := range segs[starts[k]:end] {
			b.WriteString(seg.text)
		}
		syllables[k] = b.String()
	}
	return syllables
}

// onset returns the index where the syllable built on the vowel at next
// begins, given the previous vowel at prev.
//
// No consonants: split between the vowels. One consonant: it opens the
// next syllable. Two or more: every consonant but the last two closes the
// previous syllable; the last two open the next syllable together when they
// form a legitimate cluster, otherwise only the last one does.
func (s *Syllabifier) onset(segs []segment, prev, next int) int {
	n := next - prev - 1
	switch {
	case n == 0:
		return next
	case n == 1:
		return prev + 1
	}
	if s.tables.IsOnsetCluster(segs[next-2].text, segs[next-1].text) {
		return next - 2
	}
	return next - 1
}

// bareWord normalizes word and trims the punctuation around it.
func bareWord(word string) string {
	return strings.TrimFunc(domain.NormalizeText(word), isSeparator)
}

func isSeparator(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r)
}

func segmentize(w string) []segment {
	segs := make([]segment, 0, len(w))
	for i := 0; i < len(w); {
		if strings.HasPrefix(w[i:], "ng") {
			segs = append(segs, segment{text: "ng"})
			i += 2
			continue
		}
		r, size := utf8.DecodeRuneInString(w[i:])
		segs = append(segs, segment{text: w[i : i+size], vowel: isVowel(r)})
		i += size
	}
	return segs
}

// isVowel reports whether r is a, e, i, o or u, ignoring accents.
func isVowel(r rune) bool {
	if r >= utf8.RuneSelf {
		base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
		r = base
	}
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
