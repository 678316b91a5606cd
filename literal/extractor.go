package literal

import (
	"slices"

	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/nfa"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits keep extraction bounded on large languages:
//   - MaxLiterals: caps the number of words enumerated from (a|b|c|d|...)
//   - MaxLiteralLen: caps the length of each enumerated word
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal, in runes.
	// Default: 64.
	MaxLiteralLen int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
	}
}

// Extractor enumerates literal words from a DFA.
//
// A DFA built by subset construction has no unreachable states, but it may
// have dead ones: states from which no accepting state can be reached. The
// extractor first computes the live states, then walks the live part of the
// automaton depth first. A cycle among live states means the language is
// infinite and nothing is extracted.
//
// Example:
//
//	d, _ := dfa.Build(nfa.MustCompile("ab|cd"))
//	seq, ok := literal.New(literal.DefaultConfig()).Language(d)
//	// seq = ["ab", "cd"], ok = true
type Extractor struct {
	config ExtractorConfig
}

// New creates a new literal extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = DefaultConfig().MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = DefaultConfig().MaxLiteralLen
	}
	return &Extractor{config: config}
}

// Language returns every non-empty word of d's language as a complete
// literal, in lexicographic rune order.
//
// ok is false when the language is infinite or a limit was exceeded; the
// returned Seq is nil then. A finite language with no non-empty words
// yields an empty Seq and ok == true.
func (e *Extractor) Language(d *dfa.DFA) (seq *Seq, ok bool) {
	w := &walker{
		d:      d,
		config: e.config,
		live:   liveStates(d),
		onPath: make(map[dfa.StateID]bool),
	}
	if !w.live[d.Start()] {
		return NewSeq(), true
	}
	if !w.walk(d.Start()) {
		return nil, false
	}
	return NewSeq(w.out...), true
}

// walker enumerates the words spelled by live paths from the start state.
type walker struct {
	d      *dfa.DFA
	config ExtractorConfig
	live   map[dfa.StateID]bool
	onPath map[dfa.StateID]bool
	word   []rune
	out    []Literal
}

// walk reports false as soon as a cycle or a limit is hit.
func (w *walker) walk(id dfa.StateID) bool {
	if w.d.IsAccepting(id) && len(w.word) > 0 {
		if len(w.out) == w.config.MaxLiterals {
			return false
		}
		w.out = append(w.out, Literal{Runes: slices.Clone(w.word), Complete: true})
	}

	w.onPath[id] = true
	defer delete(w.onPath, id)

	for _, sym := range w.d.Symbols(id) {
		r, _ := sym.Rune()
		to, _ := w.d.Next(id, r)
		if !w.live[to] {
			continue
		}
		if w.onPath[to] || len(w.word) == w.config.MaxLiteralLen {
			return false
		}
		w.word = append(w.word, r)
		if !w.walk(to) {
			return false
		}
		w.word = w.word[:len(w.word)-1]
	}
	return true
}

// FirstRunes returns, in ascending order, every rune that begins a non-empty
// word of d's language. Any match of the language starts with one of them.
func FirstRunes(d *dfa.DFA) []rune {
	live := liveStates(d)
	var first []rune
	for _, sym := range d.Symbols(d.Start()) {
		r, _ := sym.Rune()
		if to, ok := d.Next(d.Start(), r); ok && live[to] {
			first = append(first, r)
		}
	}
	return first
}

// liveStates returns the states from which an accepting state is reachable,
// found by a backward search from the accepting states.
func liveStates(d *dfa.DFA) map[dfa.StateID]bool {
	preds := make(map[dfa.StateID][]dfa.StateID)
	for _, t := range d.Transitions() {
		preds[t.To] = append(preds[t.To], t.From)
	}

	live := make(map[dfa.StateID]bool, d.NumStates())
	stack := make([]nfa.StateID, 0, d.NumStates())
	for _, id := range d.Accepting() {
		live[id] = true
		stack = append(stack, id)
	}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, p := range preds[top] {
			if !live[p] {
				live[p] = true
				stack = append(stack, p)
			}
		}
	}
	return live
}
