// Package lexicon holds the read-only linguistic tables consumed by the
// breakdown engine: syllable overrides, known loanwords, legitimate onset
// clusters and the orthographic markers of foreign words.
//
// A Tables value is immutable once built. Lookups never mutate it, so one
// instance may be shared by any number of goroutines without locking.
package lexicon

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/tagalog-breakdown/internal/domain"
)

// File is the YAML shape of a lexicon file. Every section is optional;
// LoadFile merges what is present over the built-in tables.
//
//	syllables:
//	  nakakamangha: [na, ka, ka, mang, ha]
//	loanwords: [jeepney, tricycle]
//	clusters: [ts]
type File struct {
	Syllables       map[string][]string `yaml:"syllables"`
	Loanwords       []string            `yaml:"loanwords"`
	Clusters        []string            `yaml:"clusters"`
	ForeignDigraphs []string            `yaml:"foreign_digraphs"`
	ForeignSuffixes []string            `yaml:"foreign_suffixes"`
}

// Tables is the immutable lexicon.
type Tables struct {
	syllables       map[string][]string
	loanwords       map[string]struct{}
	clusters        map[string]struct{}
	foreignDigraphs []string
	foreignSuffixes []string
}

// Default returns the built-in tables.
func Default() *Tables {
	t, err := build(builtin())
	if err != nil {
		// The built-in data is covered by tests; failing here is a programming error.
		panic(fmt.Sprintf("lexicon: invalid built-in tables: %v", err))
	}
	return t
}

// New builds tables from f merged over the built-in data.
func New(f File) (*Tables, error) {
	return build(merge(builtin(), f))
}

// LoadFile reads a YAML lexicon file and merges it over the built-in data.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}

	t, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return t, nil
}

// Syllables returns the override syllabification for word, if tabled.
// The lookup is case-insensitive and the returned slice is a copy.
func (t *Tables) Syllables(word string) ([]string, bool) {
	s, ok := t.syllables[domain.NormalizeText(word)]
	if !ok {
		return nil, false
	}
	return slices.Clone(s), true
}

// Words returns every word in the syllable override table, sorted.
func (t *Tables) Words() []string {
	words := make([]string, 0, len(t.syllables))
	for w := range t.syllables {
		words = append(words, w)
	}
	slices.Sort(words)
	return words
}

// IsKnownLoanword reports whether word is in the curated loanword set.
func (t *Tables) IsKnownLoanword(word string) bool {
	_, ok := t.loanwords[domain.NormalizeText(word)]
	return ok
}

// IsOnsetCluster reports whether the two consonant units may open a syllable together.
func (t *Tables) IsOnsetCluster(first, second string) bool {
	_, ok := t.clusters[first+second]
	return ok
}

// ForeignDigraphs returns the letter pairs that mark a word as foreign.
func (t *Tables) ForeignDigraphs() []string { return slices.Clone(t.foreignDigraphs) }

// ForeignSuffixes returns the endings that mark a word as foreign.
func (t *Tables) ForeignSuffixes() []string { return slices.Clone(t.foreignSuffixes) }

func merge(base, over File) File {
	for w, s := range over.Syllables {
		base.Syllables[domain.NormalizeText(w)] = s
	}
	base.Loanwords = append(base.Loanwords, over.Loanwords...)
	base.Clusters = append(base.Clusters, over.Clusters...)
	base.ForeignDigraphs = append(base.ForeignDigraphs, over.ForeignDigraphs...)
	base.ForeignSuffixes = append(base.ForeignSuffixes, over.ForeignSuffixes...)
	return base
}

func build(f File) (*Tables, error) {
	if err := validate(f); err != nil {
		return nil, err
	}

	t := &Tables{
		syllables: make(map[string][]string, len(f.Syllables)),
		loanwords: make(map[string]struct{}, len(f.Loanwords)),
		clusters:  make(map[string]struct{}, len(f.Clusters)),
	}
	for w, s := range f.Syllables {
		lowered := make([]string, len(s))
		for i, syl := range s {
			lowered[i] = strings.ToLower(syl)
		}
		t.syllables[domain.NormalizeText(w)] = lowered
	}
	for _, w := range f.Loanwords {
		t.loanwords[domain.NormalizeText(w)] = struct{}{}
	}
	for _, c := range f.Clusters {
		t.clusters[strings.ToLower(c)] = struct{}{}
	}
	t.foreignDigraphs = dedupe(f.ForeignDigraphs)
	t.foreignSuffixes = dedupe(f.ForeignSuffixes)
	return t, nil
}

func validate(f File) error {
	var errs []domain.FieldError

	for w, s := range f.Syllables {
		field := "syllables." + w
		if len(s) == 0 {
			errs = append(errs, domain.FieldError{Field: field, Message: "must not be empty"})
			continue
		}
		if slices.Contains(s, "") {
			errs = append(errs, domain.FieldError{Field: field, Message: "contains an empty syllable"})
			continue
		}
		if joined := strings.ToLower(strings.Join(s, "")); joined != domain.NormalizeText(w) {
			errs = append(errs, domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("syllables spell %q", joined),
			})
		}
	}
	for _, c := range f.Clusters {
		if utf8.RuneCountInString(c) < 2 {
			errs = append(errs, domain.FieldError{Field: "clusters", Message: fmt.Sprintf("%q is not a consonant pair", c)})
		}
	}
	for _, w := range f.Loanwords {
		if strings.TrimSpace(w) == "" {
			errs = append(errs, domain.FieldError{Field: "loanwords", Message: "contains an empty word"})
		}
	}

	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b domain.FieldError) int { return strings.Compare(a.Field, b.Field) })
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "-"))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
