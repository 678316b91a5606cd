// Package casefile parses and verifies golden case files.
//
// A case file lists patterns together with words they must accept or
// reject and the matches they must find, plus patterns that must fail to
// compile:
//
//	# leftmost-longest, inclusive rune positions
//	pattern "ab|c" {
//		accept "ab" "c"
//		reject "" "a"
//		find "xxab" (2, 3)
//		find "zzz" none
//		findall "ab c" [(0, 1) (3, 3)]
//	}
//	invalid "(a" UnbalancedParen
package casefile

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/coregx/powerset/nfa"
)

// File is a parsed case file.
type File struct {
	Entries []*Entry `parser:"@@*"`
}

// Entry is one top-level block.
type Entry struct {
	Pos lexer.Position

	Pattern *PatternBlock `parser:"  @@"`
	Invalid *Invalid      `parser:"| @@"`
}

// PatternBlock groups checks against one compiled pattern.
type PatternBlock struct {
	Pos lexer.Position

	Pattern string   `parser:"'pattern' @String '{'"`
	Checks  []*Check `parser:"@@* '}'"`
}

// Check is a single expectation inside a pattern block.
type Check struct {
	Pos lexer.Position

	Accept  []string      `parser:"  'accept' @String+"`
	Reject  []string      `parser:"| 'reject' @String+"`
	Find    *FindCheck    `parser:"| 'find' @@"`
	FindAll *FindAllCheck `parser:"| 'findall' @@"`
}

// FindCheck expects the first match in Input to be Span, or no match.
type FindCheck struct {
	Input string `parser:"@String"`
	None  bool   `parser:"( @'none'"`
	Span  *Span  `parser:"| @@ )"`
}

// FindAllCheck expects exactly Spans as the matches in Input.
type FindAllCheck struct {
	Input string  `parser:"@String"`
	Spans []*Span `parser:"'[' @@* ']'"`
}

// Span is an inclusive rune range.
type Span struct {
	Start int `parser:"'(' @Int ','"`
	End   int `parser:"@Int ')'"`
}

func (s *Span) String() string {
	return fmt.Sprintf("(%d, %d)", s.Start, s.End)
}

// Invalid expects Pattern to fail compilation with a syntax error of Kind.
type Invalid struct {
	Pos lexer.Position

	Pattern string `parser:"'invalid' @String"`
	Kind    string `parser:"@Ident"`
}

var caseLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z_]+`},
	{Name: "Punct", Pattern: `[{}(),\[\]]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var parser = participle.MustBuild[File](
	participle.Lexer(caseLexer),
	participle.Unquote("String"),
	participle.Elide("Comment", "Whitespace"),
)

// Parse reads a case file from r. filename is used in positions.
func Parse(filename string, r io.Reader) (*File, error) {
	return parser.Parse(filename, r)
}

// ParseString parses a case file held in s.
func ParseString(filename, s string) (*File, error) {
	return parser.ParseString(filename, s)
}

// Matcher is the engine surface a case file is verified against.
// Spans are inclusive rune positions; a nil span means no match.
type Matcher interface {
	Accept(word string) bool
	FindIndex(s string) []int
	FindAllIndex(s string, n int) [][]int
}

// CompileFunc compiles a pattern into a Matcher.
type CompileFunc func(pattern string) (Matcher, error)

// Failure describes one unmet expectation.
type Failure struct {
	Pos     lexer.Position
	Pattern string
	Message string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s: pattern %q: %s", f.Pos, f.Pattern, f.Message)
}

// NumChecks returns the number of individual expectations in f.
func (f *File) NumChecks() int {
	total := 0
	for _, e := range f.Entries {
		switch {
		case e.Invalid != nil:
			total++
		case e.Pattern != nil:
			for _, c := range e.Pattern.Checks {
				switch {
				case c.Accept != nil:
					total += len(c.Accept)
				case c.Reject != nil:
					total += len(c.Reject)
				default:
					total++
				}
			}
		}
	}
	return total
}

// Verify runs every expectation in f against engines built by compile and
// returns the failures, in file order. A nil result means every check held.
func (f *File) Verify(compile CompileFunc) []Failure {
	var failures []Failure
	for _, e := range f.Entries {
		switch {
		case e.Invalid != nil:
			if msg := verifyInvalid(e.Invalid, compile); msg != "" {
				failures = append(failures, Failure{Pos: e.Invalid.Pos, Pattern: e.Invalid.Pattern, Message: msg})
			}
		case e.Pattern != nil:
			failures = append(failures, verifyBlock(e.Pattern, compile)...)
		}
	}
	return failures
}

func verifyInvalid(inv *Invalid, compile CompileFunc) string {
	_, err := compile(inv.Pattern)
	if err == nil {
		return "compiled, want " + inv.Kind
	}
	var se *nfa.SyntaxError
	if !errors.As(err, &se) {
		return fmt.Sprintf("error %v is not a syntax error", err)
	}
	if se.Kind.String() != inv.Kind {
		return fmt.Sprintf("syntax error kind %s, want %s", se.Kind, inv.Kind)
	}
	return ""
}

func verifyBlock(b *PatternBlock, compile CompileFunc) []Failure {
	m, err := compile(b.Pattern)
	if err != nil {
		return []Failure{{Pos: b.Pos, Pattern: b.Pattern, Message: fmt.Sprintf("compile: %v", err)}}
	}

	var failures []Failure
	fail := func(c *Check, format string, args ...any) {
		failures = append(failures, Failure{Pos: c.Pos, Pattern: b.Pattern, Message: fmt.Sprintf(format, args...)})
	}
	for _, c := range b.Checks {
		switch {
		case c.Accept != nil:
			for _, w := range c.Accept {
				if !m.Accept(w) {
					fail(c, "rejects %q, want accept", w)
				}
			}
		case c.Reject != nil:
			for _, w := range c.Reject {
				if m.Accept(w) {
					fail(c, "accepts %q, want reject", w)
				}
			}
		case c.Find != nil:
			got := m.FindIndex(c.Find.Input)
			if want := c.Find.want(); !slices.Equal(got, want) {
				fail(c, "find %q = %s, want %s", c.Find.Input, formatSpan(got), formatSpan(want))
			}
		case c.FindAll != nil:
			got := m.FindAllIndex(c.FindAll.Input, -1)
			want := c.FindAll.want()
			if !slices.EqualFunc(got, want, slices.Equal[[]int]) {
				fail(c, "findall %q = %s, want %s", c.FindAll.Input, formatSpans(got), formatSpans(want))
			}
		}
	}
	return failures
}

func (f *FindCheck) want() []int {
	if f.None || f.Span == nil {
		return nil
	}
	return []int{f.Span.Start, f.Span.End}
}

func (f *FindAllCheck) want() [][]int {
	if len(f.Spans) == 0 {
		return nil
	}
	out := make([][]int, len(f.Spans))
	for i, s := range f.Spans {
		out[i] = []int{s.Start, s.End}
	}
	return out
}

func formatSpan(s []int) string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("(%d, %d)", s[0], s[1])
}

func formatSpans(spans [][]int) string {
	out := "["
	for i, s := range spans {
		if i > 0 {
			out += " "
		}
		out += formatSpan(s)
	}
	return out + "]"
}
