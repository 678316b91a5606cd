// Package powerset provides a finite-automata regular expression engine.
//
// Patterns use a deliberately small syntax: every rune is a literal except
// the metacharacters ( ) | ? * + which group, alternate and repeat. A
// pattern is compiled into a Thompson NFA, then determinized by subset
// (powerset) construction into DFAs that answer membership and search
// queries in time linear in the input.
//
// Basic usage:
//
//	re, err := powerset.Compile("(a|b)*abb")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	re.Accept("babb")             // true: the whole word is in the language
//	m, ok := re.Find("xxabbyy")    // leftmost-longest match
//	fmt.Println(m, ok)             // (2, 4) true
//
// Positions are rune indices into the input and both ends are inclusive, so
// a one-rune match has Start == End. Empty matches are never reported.
//
// Searching uses two DFAs: a forward DFA built from the NFA in finding mode
// locates every position where some match ends, and a DFA of the reversed
// NFA scans back from each end to its earliest start. The leftmost-longest
// non-overlapping matches are then selected from those candidates.
package powerset

import (
	"unicode/utf8"

	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/literal"
	"github.com/coregx/powerset/nfa"
	"github.com/coregx/powerset/prefilter"
)

// Regex represents a compiled pattern.
//
// A Regex is immutable and safe to use concurrently from multiple goroutines.
//
// Example:
//
//	re := powerset.MustCompile("hello")
//	if re.MatchString("hello world") {
//	    println("matched!")
//	}
type Regex struct {
	pattern  string
	config   Config
	nfa      *nfa.NFA
	dfa      *dfa.DFA
	searcher *dfa.Searcher
	pf       prefilter.Prefilter
}

// Compile compiles a pattern with the default configuration.
//
// Returns a *CompileError if the pattern is malformed.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("powerset: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles a pattern with custom configuration.
//
// Example:
//
//	config := powerset.DefaultConfig().WithMaxDFAStates(1000)
//	re, err := powerset.CompileWithConfig("(a|b)*a(a|b)(a|b)", config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	n, err := nfa.NewCompiler(nfa.NewAllocator(), config.compilerConfig()).Compile(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	d, err := dfa.BuildWithConfig(n, config.dfaConfig())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	searcher, err := dfa.NewSearcherWithConfig(n, config.dfaConfig())
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	re := &Regex{
		pattern:  pattern,
		config:   config,
		nfa:      n,
		dfa:      d,
		searcher: searcher,
	}
	if config.EnablePrefilter {
		re.pf = buildPrefilter(d, config)
	}
	return re, nil
}

// buildPrefilter picks a prefilter from the words of a finite language, or
// from the first runes of its matches when the language is infinite.
func buildPrefilter(d *dfa.DFA, config Config) prefilter.Prefilter {
	words, ok := literal.New(config.extractorConfig()).Language(d)
	if ok && words.IsEmpty() {
		// no non-empty word can ever match; FirstRunes is empty too
		return nil
	}
	if ok {
		for i := 0; i < words.Len(); i++ {
			if words.Get(i).Len() < config.MinLiteralLen {
				words = nil
				break
			}
		}
	} else {
		words = nil
	}
	return prefilter.NewBuilder(words, literal.FirstRunes(d)).Build()
}

// Match is a match location as inclusive rune positions.
type Match struct {
	Start int
	End   int
}

// Len returns the number of runes matched.
func (m Match) Len() int {
	return m.End - m.Start + 1
}

// Text returns the matched text within input, the string that was searched.
func (m Match) Text(input string) string {
	return string([]rune(input)[m.Start : m.End+1])
}

// String renders the match as (start, end).
func (m Match) String() string {
	return dfa.Span{Start: m.Start, End: m.End}.String()
}

// String returns the source pattern.
func (r *Regex) String() string {
	return r.pattern
}

// Config returns the configuration the Regex was compiled with.
func (r *Regex) Config() Config {
	return r.config
}

// NFA returns the Thompson NFA of the pattern. It must not be modified.
func (r *Regex) NFA() *nfa.NFA {
	return r.nfa
}

// DFA returns the DFA deciding membership in the pattern's language.
func (r *Regex) DFA() *dfa.DFA {
	return r.dfa
}

// Searcher returns the forward finding-mode and reversed DFA pair used by
// searches.
func (r *Regex) Searcher() *dfa.Searcher {
	return r.searcher
}

// Prefilter returns the search prefilter, or nil if none applies.
func (r *Regex) Prefilter() prefilter.Prefilter {
	return r.pf
}

// NumStates returns the number of states of the membership DFA.
func (r *Regex) NumStates() int {
	return r.dfa.NumStates()
}

// Accept reports whether word as a whole is in the pattern's language.
//
// Example:
//
//	re := powerset.MustCompile("ab*")
//	re.Accept("abbb") // true
//	re.Accept("xab")  // false
func (r *Regex) Accept(word string) bool {
	return r.dfa.Accept(word)
}

// AcceptNFA is Accept decided by simulating the NFA directly instead of
// walking the DFA. It is much slower and exists to cross-check the DFA.
func (r *Regex) AcceptNFA(word string) bool {
	return r.nfa.Accept(word)
}

// MatchString reports whether s contains a non-empty match.
func (r *Regex) MatchString(s string) bool {
	if bm, ok := r.pf.(prefilter.ByteMatcher); ok && utf8.ValidString(s) && !bm.IsMatch([]byte(s)) {
		return false
	}
	return len(r.find([]rune(s), 1)) > 0
}

// Find returns the leftmost-longest match in s.
//
// Example:
//
//	re := powerset.MustCompile("ab*")
//	m, ok := re.Find("xxabbby")
//	// m == Match{Start: 2, End: 5}, ok == true
func (r *Regex) Find(s string) (Match, bool) {
	spans := r.find([]rune(s), 1)
	if len(spans) == 0 {
		return Match{}, false
	}
	return Match(spans[0]), true
}

// FindAll returns all successive non-overlapping matches in s, ordered by
// start. Returns nil if there is no match.
func (r *Regex) FindAll(s string) []Match {
	return r.FindAllN(s, -1)
}

// FindAllN is FindAll returning at most n matches (all if n < 0).
func (r *Regex) FindAllN(s string, n int) []Match {
	spans := r.find([]rune(s), n)
	if len(spans) == 0 {
		return nil
	}
	out := make([]Match, len(spans))
	for i, sp := range spans {
		out[i] = Match(sp)
	}
	return out
}

// FindRunes is Find over a rune slice.
func (r *Regex) FindRunes(runes []rune) (Match, bool) {
	spans := r.find(runes, 1)
	if len(spans) == 0 {
		return Match{}, false
	}
	return Match(spans[0]), true
}

// FindString returns the text of the leftmost-longest match in s, or "" if
// there is none.
func (r *Regex) FindString(s string) string {
	runes := []rune(s)
	spans := r.find(runes, 1)
	if len(spans) == 0 {
		return ""
	}
	return string(runes[spans[0].Start : spans[0].End+1])
}

// FindAllString returns the texts of at most n successive matches in s
// (all if n < 0). Returns nil if there is no match.
//
// Example:
//
//	re := powerset.MustCompile("a+")
//	re.FindAllString("caaab a", -1) // ["aaa", "a"]
func (r *Regex) FindAllString(s string, n int) []string {
	runes := []rune(s)
	spans := r.find(runes, n)
	if len(spans) == 0 {
		return nil
	}
	out := make([]string, len(spans))
	for i, sp := range spans {
		out[i] = string(runes[sp.Start : sp.End+1])
	}
	return out
}

// FindIndex returns the leftmost-longest match in s as a two-element slice
// of inclusive rune positions, or nil if there is none.
//
// Unlike regexp.Regexp.FindStringIndex, positions count runes and the end
// is inclusive.
func (r *Regex) FindIndex(s string) []int {
	spans := r.find([]rune(s), 1)
	if len(spans) == 0 {
		return nil
	}
	return []int{spans[0].Start, spans[0].End}
}

// FindAllIndex returns at most n matches (all if n < 0) as inclusive rune
// position pairs, or nil if there is none.
func (r *Regex) FindAllIndex(s string, n int) [][]int {
	spans := r.find([]rune(s), n)
	if len(spans) == 0 {
		return nil
	}
	out := make([][]int, len(spans))
	for i, sp := range spans {
		out[i] = []int{sp.Start, sp.End}
	}
	return out
}

// Count returns the number of non-overlapping matches in s.
// If n > 0, counts at most n matches. If n <= 0, counts all matches.
func (r *Regex) Count(s string, n int) int {
	if n <= 0 {
		n = -1
	}
	return len(r.find([]rune(s), n))
}

// Split slices s into substrings separated by the matches.
//
// The count determines the number of substrings to return:
//
//	n > 0: at most n substrings; the last substring will be the unsplit remainder.
//	n == 0: the result is nil (zero substrings)
//	n < 0: all substrings
//
// Example:
//
//	re := powerset.MustCompile(",+")
//	parts := re.Split("a,b,,c", -1)
//	// parts = ["a", "b", "c"]
func (r *Regex) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	runes := []rune(s)
	limit := -1
	if n > 0 {
		limit = n - 1
	}
	spans := r.find(runes, limit)
	if len(spans) == 0 {
		return []string{s}
	}

	result := make([]string, 0, len(spans)+1)
	last := 0
	for _, sp := range spans {
		result = append(result, string(runes[last:sp.Start]))
		last = sp.End + 1
	}
	return append(result, string(runes[last:]))
}

// ReplaceAllLiteralString returns a copy of src with every match replaced
// by repl, which is inserted verbatim.
func (r *Regex) ReplaceAllLiteralString(src, repl string) string {
	runes := []rune(src)
	spans := r.find(runes, -1)
	if len(spans) == 0 {
		return src
	}

	out := make([]rune, 0, len(runes))
	replRunes := []rune(repl)
	last := 0
	for _, sp := range spans {
		out = append(out, runes[last:sp.Start]...)
		out = append(out, replRunes...)
		last = sp.End + 1
	}
	out = append(out, runes[last:]...)
	return string(out)
}

// find returns at most n spans (all if n < 0) of the leftmost-longest
// non-overlapping matches in runes.
func (r *Regex) find(runes []rune, n int) []dfa.Span {
	if n == 0 {
		return nil
	}
	at := 0
	if r.pf != nil {
		if r.pf.IsComplete() {
			return r.findLiteral(runes, n)
		}
		// no match can start before the first candidate
		if at = r.pf.Find(runes, 0); at < 0 {
			return nil
		}
	}
	return r.searcher.FindAllRunes(runes, at, n)
}

// findLiteral finds the successive occurrences of the single word the
// language consists of. Occurrences are taken leftmost first and never
// overlap, which is exactly leftmost-longest selection for one word.
func (r *Regex) findLiteral(runes []rune, n int) []dfa.Span {
	length := r.pf.LiteralLen()
	var out []dfa.Span
	for pos := 0; n < 0 || len(out) < n; {
		p := r.pf.Find(runes, pos)
		if p < 0 {
			break
		}
		out = append(out, dfa.Span{Start: p, End: p + length - 1})
		pos = p + length
	}
	return out
}
