// Package prefilter provides fast candidate filtering for automaton search
// using literals extracted from the pattern's DFA.
//
// A prefilter is used to quickly skip positions in the haystack that cannot
// start a match. Skipping is only ever done up to the first position where
// a match may start, so a prefiltered search reports exactly the matches an
// unfiltered one would.
//
// The package selects a prefilter strategy from the extracted literals:
//   - Single rune literal → runePrefilter
//   - Single multi-rune literal → substringPrefilter
//   - 2+ literals sharing a prefix of minSharedPrefix runes → substringPrefilter on it
//   - 2+ literals → ahoCorasickPrefilter (github.com/coregx/ahocorasick)
//   - Infinite language → first-rune set (runePrefilter or runeSetPrefilter)
//
// Example usage:
//
//	d, _ := dfa.Build(nfa.MustCompile("hello|world"))
//	words, _ := literal.New(literal.DefaultConfig()).Language(d)
//	pf := prefilter.NewBuilder(words, literal.FirstRunes(d)).Build()
//
//	pos := pf.Find([]rune("foo hello bar world baz"), 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"
	"slices"
	"unicode/utf8"

	"github.com/coregx/powerset/literal"
)

// Prefilter is used to quickly find candidate match positions before running
// the full automata.
//
// Key methods:
//   - Find: returns the next candidate position
//   - IsComplete: indicates if prefilter match is sufficient (no verification needed)
//   - HeapBytes: returns memory usage for profiling
type Prefilter interface {
	// Find returns the rune index of the first candidate match starting at
	// or after start, or -1 if no candidate is found.
	//
	// A candidate does NOT guarantee a match; the caller must verify it with
	// the automata unless IsComplete() is true.
	Find(haystack []rune, start int) int

	// IsComplete returns true if a prefilter match guarantees a full match.
	// This is the case only when the language is exactly one literal.
	IsComplete() bool

	// LiteralLen returns the length in runes of the matched literal when
	// IsComplete() is true, and 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int
}

// ByteMatcher is an optional interface for prefilters that can test raw
// UTF-8 input for a candidate without decoding it into runes first.
//
// For valid UTF-8 input, IsMatch returning false proves the haystack holds
// no match.
type ByteMatcher interface {
	IsMatch(haystack []byte) bool
}

// Builder constructs the best prefilter from extracted literals.
//
// Selection strategy (in order of preference):
//  1. Single literal → runePrefilter or substringPrefilter
//  2. Several literals with a long common prefix → substringPrefilter
//  3. Several literals → ahoCorasickPrefilter
//  4. First-rune set → runePrefilter or runeSetPrefilter
//  5. Nothing known → nil (no prefilter)
type Builder struct {
	literals *literal.Seq
	first    []rune
}

// NewBuilder creates a builder from the words of a finite language (nil or
// empty when the language is infinite) and the set of runes every match
// begins with.
func NewBuilder(literals *literal.Seq, first []rune) *Builder {
	return &Builder{
		literals: literals,
		first:    first,
	}
}

// Build returns the selected prefilter, or nil if no prefilter applies.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.literals, b.first)
}

// minSharedPrefix is the shortest common prefix worth searching for instead
// of running Aho-Corasick over all the words.
const minSharedPrefix = 3

func selectPrefilter(literals *literal.Seq, first []rune) Prefilter {
	if !literals.IsEmpty() {
		// Only a language of exactly one word can skip verification.
		complete := literals.Len() == 1 && literals.AllComplete()

		seq := literals.Clone()
		seq.Minimize()
		if seq.Len() == 1 {
			lit := seq.Get(0)
			switch lit.Len() {
			case 0:
				return nil
			case 1:
				return newRunePrefilter(lit.Runes[0], complete)
			default:
				return newSubstringPrefilter(lit.Runes, complete)
			}
		}
		if lcp := seq.LongestCommonPrefix(); len(lcp) >= minSharedPrefix {
			return newSubstringPrefilter(lcp, false)
		}
		if pf, err := newAhoCorasickPrefilter(seq); err == nil {
			return pf
		}
	}

	switch len(first) {
	case 0:
		return nil
	case 1:
		return newRunePrefilter(first[0], false)
	default:
		return newRuneSetPrefilter(first)
	}
}

// runePrefilter searches for a single rune.
type runePrefilter struct {
	needle   rune
	complete bool
}

func newRunePrefilter(needle rune, complete bool) Prefilter {
	return &runePrefilter{
		needle:   needle,
		complete: complete,
	}
}

func (p *runePrefilter) Find(haystack []rune, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := slices.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *runePrefilter) IsComplete() bool {
	return p.complete
}

func (p *runePrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *runePrefilter) HeapBytes() int {
	return 0
}

// substringPrefilter searches for one multi-rune literal.
type substringPrefilter struct {
	needle   []rune
	encoded  []byte
	complete bool
}

func newSubstringPrefilter(needle []rune, complete bool) Prefilter {
	return &substringPrefilter{
		needle:   slices.Clone(needle),
		encoded:  []byte(string(needle)),
		complete: complete,
	}
}

func (p *substringPrefilter) Find(haystack []rune, start int) int {
	if start < 0 {
		return -1
	}
	last := len(haystack) - len(p.needle)
	for i := start; i <= last; i++ {
		idx := slices.Index(haystack[i:last+1], p.needle[0])
		if idx == -1 {
			return -1
		}
		i += idx
		if slices.Equal(haystack[i:i+len(p.needle)], p.needle) {
			return i
		}
	}
	return -1
}

// IsMatch reports whether the literal occurs in haystack.
func (p *substringPrefilter) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, p.encoded)
}

func (p *substringPrefilter) IsComplete() bool {
	return p.complete
}

func (p *substringPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *substringPrefilter) HeapBytes() int {
	return len(p.needle)*4 + len(p.encoded)
}

// runeSetPrefilter searches for any rune of a set.
type runeSetPrefilter struct {
	ascii [utf8.RuneSelf]bool
	other map[rune]struct{}
}

func newRuneSetPrefilter(set []rune) Prefilter {
	p := &runeSetPrefilter{other: make(map[rune]struct{})}
	for _, r := range set {
		if r >= 0 && r < utf8.RuneSelf {
			p.ascii[r] = true
			continue
		}
		p.other[r] = struct{}{}
	}
	return p
}

func (p *runeSetPrefilter) contains(r rune) bool {
	if r >= 0 && r < utf8.RuneSelf {
		return p.ascii[r]
	}
	_, ok := p.other[r]
	return ok
}

func (p *runeSetPrefilter) Find(haystack []rune, start int) int {
	if start < 0 {
		return -1
	}
	for i := start; i < len(haystack); i++ {
		if p.contains(haystack[i]) {
			return i
		}
	}
	return -1
}

func (p *runeSetPrefilter) IsComplete() bool {
	return false
}

func (p *runeSetPrefilter) LiteralLen() int {
	return 0
}

func (p *runeSetPrefilter) HeapBytes() int {
	return len(p.other) * 8
}
