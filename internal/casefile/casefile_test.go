package casefile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gotest.tools/v3/assert"

	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/nfa"
)

// searcher adapts the dfa package to Matcher.
type searcher struct {
	accept *dfa.DFA
	search *dfa.Searcher
}

func (s *searcher) Accept(word string) bool {
	return s.accept.Accept(word)
}

func (s *searcher) FindIndex(in string) []int {
	sp, ok := s.search.Find(in)
	if !ok {
		return nil
	}
	return []int{sp.Start, sp.End}
}

func (s *searcher) FindAllIndex(in string, n int) [][]int {
	var out [][]int
	for _, sp := range s.search.FindAllRunes([]rune(in), 0, n) {
		out = append(out, []int{sp.Start, sp.End})
	}
	return out
}

func compile(pattern string) (Matcher, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	s, err := dfa.NewSearcher(n)
	if err != nil {
		return nil, err
	}
	d, err := dfa.Build(n)
	if err != nil {
		return nil, err
	}
	return &searcher{accept: d, search: s}, nil
}

const sample = `
# leftmost-longest, inclusive rune positions
pattern "ab|c" {
	accept "ab" "c"
	reject "" "a" "abc"
	find "xxab" (2, 3)
	find "zzz" none
	findall "ab c" [(0, 1) (3, 3)]
	findall "" []
}

pattern "a\"b" {
	accept "a\"b"
}

invalid "(a" UnbalancedParen
invalid "a**" StackedQuantifier
`

func TestParse(t *testing.T) {
	f, err := ParseString("sample.cases", sample)
	assert.NilError(t, err)
	assert.Equal(t, len(f.Entries), 4)

	block := f.Entries[0].Pattern
	assert.Assert(t, block != nil)
	assert.Equal(t, block.Pattern, "ab|c")
	assert.Equal(t, len(block.Checks), 6)

	if diff := cmp.Diff([]string{"ab", "c"}, block.Checks[0].Accept); diff != "" {
		t.Errorf("accept mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"", "a", "abc"}, block.Checks[1].Reject); diff != "" {
		t.Errorf("reject mismatch (-want +got):\n%s", diff)
	}
	assert.DeepEqual(t, block.Checks[2].Find.Span, &Span{Start: 2, End: 3})
	assert.Check(t, block.Checks[3].Find.None)
	assert.Equal(t, len(block.Checks[4].FindAll.Spans), 2)
	assert.Equal(t, block.Checks[2].Pos.Line, 6)

	assert.Equal(t, f.Entries[1].Pattern.Pattern, `a"b`)
	assert.Equal(t, f.Entries[2].Invalid.Kind, "UnbalancedParen")
	assert.Equal(t, f.NumChecks(), 12)
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		`pattern "a" {`,
		`pattern "a" { accept }`,
		`pattern "a" { find "x" (1) }`,
		`invalid "("`,
		`bogus "a"`,
	} {
		_, err := ParseString("bad.cases", src)
		assert.Check(t, err != nil, "expected parse error for %q", src)
	}
}

func TestVerifyPasses(t *testing.T) {
	f, err := ParseString("sample.cases", sample)
	assert.NilError(t, err)
	assert.Check(t, cmp.Equal(f.Verify(compile), []Failure(nil)), "%v", f.Verify(compile))
}

func TestVerifyReportsFailures(t *testing.T) {
	src := `
pattern "ab" {
	accept "ba"
	reject "ab"
	find "xab" (0, 1)
	findall "abab" [(0, 1)]
}
pattern "(" {
	accept "x"
}
invalid "ok" UnbalancedParen
invalid ")" StackedQuantifier
`
	f, err := ParseString("failing.cases", src)
	assert.NilError(t, err)

	failures := f.Verify(compile)
	assert.Equal(t, len(failures), 7)

	var msgs []string
	for _, fl := range failures {
		msgs = append(msgs, fl.String())
	}
	all := strings.Join(msgs, "\n")
	for _, want := range []string{
		`rejects "ba", want accept`,
		`accepts "ab", want reject`,
		`find "xab" = (1, 2), want (0, 1)`,
		`findall "abab" = [(0, 1) (2, 3)], want [(0, 1)]`,
		`pattern "(": compile:`,
		`compiled, want UnbalancedParen`,
		`syntax error kind UnbalancedParen, want StackedQuantifier`,
	} {
		assert.Check(t, strings.Contains(all, want), "missing %q in\n%s", want, all)
	}
	assert.Check(t, strings.HasPrefix(msgs[0], "failing.cases:3:"), msgs[0])
}
