// Package literal provides types and operations for representing and
// manipulating literal rune sequences extracted from automata.
//
// The primary use case is prefilter optimization: when the language of a
// pattern is a small finite set of words (e.g. /foo|bar|baz/), those words
// can be searched for directly before running the automata.
//
// Key concepts:
//   - A Literal is a concrete rune sequence that may appear in matches
//   - A Seq is a set of alternative literals
//   - Operations like Minimize, LCP, LCS help optimize prefilter strategies
package literal

import (
	"slices"
	"strings"
)

// Literal represents a literal rune sequence extracted from an automaton.
// The Complete flag indicates whether this literal is a whole word of the
// language (true) or just a prefix of potential matches (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]rune("hello"), true}
//   - Pattern /ab|abc/ → Literal{[]rune("ab"), true}, Literal{[]rune("abc"), true}
type Literal struct {
	// Runes contains the literal codepoints.
	Runes []rune

	// Complete indicates whether this literal is an entire word of the language.
	Complete bool
}

// NewLiteral creates a new Literal from s and the completeness flag.
//
// Example:
//
//	lit := literal.NewLiteral("hello", true)
//	fmt.Println(lit) // Output: literal{hello, complete=true}
func NewLiteral(s string, complete bool) Literal {
	return Literal{
		Runes:    []rune(s),
		Complete: complete,
	}
}

// Len returns the length of the literal in runes.
func (l Literal) Len() int {
	return len(l.Runes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{text, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Runes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals that can match.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral("foo", true),
//	    literal.NewLiteral("bar", true),
//	)
//	fmt.Printf("Sequence has %d literals\n", seq.Len()) // Output: Sequence has 2 literals
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// AllComplete returns true if every literal is a whole word of the language.
// An empty sequence is not complete.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// Strings returns the literals as strings, in sequence order.
func (s *Seq) Strings() []string {
	if s.IsEmpty() {
		return nil
	}
	out := make([]string, len(s.literals))
	for i, lit := range s.literals {
		out[i] = string(lit.Runes)
	}
	return out
}

// String renders the sequence as [lit1 lit2 ...] for debugging.
func (s *Seq) String() string {
	return "[" + strings.Join(s.Strings(), " ") + "]"
}

// Clone returns a deep copy of the sequence.
//
// Example:
//
//	original := literal.NewSeq(literal.NewLiteral("test", true))
//	clone := original.Clone()
//	clone.Get(0).Runes[0] = 'X' // Modifying clone doesn't affect original
//	fmt.Println(string(original.Get(0).Runes)) // Output: test
func (s *Seq) Clone() *Seq {
	if s == nil {
		return nil
	}

	cloned := make([]Literal, len(s.literals))
	for i, lit := range s.literals {
		cloned[i] = Literal{
			Runes:    slices.Clone(lit.Runes),
			Complete: lit.Complete,
		}
	}

	return &Seq{literals: cloned}
}

// Minimize removes redundant literals from the sequence.
//
// For prefix matching, a literal L is redundant if there exists a shorter literal S
// that is a prefix of L. For example, in ["foo", "foobar"], "foo" makes "foobar"
// redundant because any position where "foobar" starts also starts "foo".
//
// The surviving literals are ordered by length, shortest first; ties keep
// their original order.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral("foo", true),
//	    literal.NewLiteral("foobar", true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "foo" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	slices.SortStableFunc(s.literals, func(a, b Literal) int {
		return len(a.Runes) - len(b.Runes)
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for _, k := range kept {
			if isPrefix(k.Runes, current.Runes) {
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty or has no common prefix, returns an empty slice.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral("hello", true),
//	    literal.NewLiteral("help", true),
//	    literal.NewLiteral("hero", true),
//	)
//	fmt.Println(string(seq.LongestCommonPrefix())) // Output: he
func (s *Seq) LongestCommonPrefix() []rune {
	if s.IsEmpty() {
		return []rune{}
	}

	prefix := s.literals[0].Runes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Runes)
		if len(prefix) == 0 {
			return []rune{}
		}
	}

	return slices.Clone(prefix)
}

// Helper functions

// isPrefix returns true if prefix is a prefix of s.
func isPrefix(prefix, s []rune) bool {
	if len(prefix) > len(s) {
		return false
	}
	return slices.Equal(prefix, s[:len(prefix)])
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []rune) []rune {
	minLen := min(len(a), len(b))
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
