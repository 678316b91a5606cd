package nfa

import (
	"testing"

	"gotest.tools/v3/assert"
)

func literal(t *testing.T, alloc *Allocator, r rune) *NFA {
	t.Helper()
	n, err := FromSymbol(alloc, Literal(r))
	assert.NilError(t, err)
	return n
}

type acceptCase struct {
	word string
	want bool
}

func checkAccepts(t *testing.T, n *NFA, cases []acceptCase) {
	t.Helper()
	assert.NilError(t, n.Validate())
	for _, c := range cases {
		assert.Equal(t, n.Accept(c.word), c.want, "Accept(%q)", c.word)
	}
}

func TestConcat(t *testing.T) {
	alloc := NewAllocator()
	left := literal(t, alloc, 'a')
	assert.NilError(t, left.Concat(literal(t, alloc, 'b')))

	checkAccepts(t, left, []acceptCase{
		{"ab", true},
		{"a", false},
		{"b", false},
		{"", false},
		{"abc", false},
	})
}

func TestUnion(t *testing.T) {
	alloc := NewAllocator()
	left := literal(t, alloc, 'a')
	assert.NilError(t, left.Union(literal(t, alloc, 'b')))

	checkAccepts(t, left, []acceptCase{
		{"a", true},
		{"b", true},
		{"ab", false},
		{"", false},
		{"c", false},
		{"abc", false},
	})
}

func TestKleene(t *testing.T) {
	t.Run("star", func(t *testing.T) {
		n := literal(t, NewAllocator(), 'a')
		assert.NilError(t, n.Kleene(true))
		checkAccepts(t, n, []acceptCase{
			{"", true},
			{"a", true},
			{"aa", true},
			{"aaa", true},
			{"b", false},
			{"ab", false},
			{"ba", false},
		})
		assert.DeepEqual(t, n.Accepting(), []StateID{n.Start()})
	})

	t.Run("plus", func(t *testing.T) {
		n := literal(t, NewAllocator(), 'a')
		assert.NilError(t, n.Kleene(false))
		checkAccepts(t, n, []acceptCase{
			{"", false},
			{"a", true},
			{"aaaa", true},
			{"b", false},
		})
	})

	t.Run("empty language", func(t *testing.T) {
		n, err := FromSymbol(NewAllocator(), Empty)
		assert.NilError(t, err)
		assert.NilError(t, n.Kleene(true))
		checkAccepts(t, n, []acceptCase{{"", true}, {"a", false}})
	})
}

func TestOptional(t *testing.T) {
	n := literal(t, NewAllocator(), 'a')
	assert.NilError(t, n.Optional())
	checkAccepts(t, n, []acceptCase{
		{"", true},
		{"a", true},
		{"aa", false},
	})
}

func TestCombinator_Consumed(t *testing.T) {
	alloc := NewAllocator()
	a := literal(t, alloc, 'a')
	b := literal(t, alloc, 'b')
	c := literal(t, alloc, 'c')
	assert.NilError(t, a.Concat(b))
	assert.Assert(t, b.IsConsumed())

	consumed := &ConstructionError{Kind: Consumed}
	assert.ErrorIs(t, b.Concat(c), consumed)
	assert.ErrorIs(t, c.Union(b), consumed)
	assert.ErrorIs(t, a.Concat(b), consumed)
	assert.ErrorIs(t, b.Kleene(true), consumed)
	assert.ErrorIs(t, b.Optional(), consumed)
	assert.ErrorIs(t, b.ToFindingMode(), consumed)
	assert.ErrorIs(t, b.Validate(), consumed)
	_, err := b.Reversed()
	assert.ErrorIs(t, err, consumed)

	// Failed combinators leave both sides usable
	assert.NilError(t, a.Concat(c))
	checkAccepts(t, a, []acceptCase{{"abc", true}, {"ab", false}})
}

func TestCombinator_Misuse(t *testing.T) {
	alloc := NewAllocator()
	a := literal(t, alloc, 'a')

	assert.ErrorIs(t, a.Union(a), &ConstructionError{Kind: DuplicateState})
	assert.ErrorIs(t, a.Concat(nil), &ConstructionError{Kind: Consumed})

	other := literal(t, NewAllocator(), 'b')
	assert.ErrorIs(t, a.Union(other), &ConstructionError{Kind: AllocatorMismatch})
	assert.Assert(t, !other.IsConsumed())

	_, err := FromSymbol(nil, Epsilon)
	assert.ErrorIs(t, err, &ConstructionError{Kind: AllocatorMismatch})
}

func TestReversed(t *testing.T) {
	tests := []struct {
		pattern string
		words   []string
	}{
		{"abc", []string{"abc", "cba", "", "ab"}},
		{"a(b|c)*d", []string{"ad", "abd", "acbcd", "da", "dcba", "dbca"}},
		{"(ab)+", []string{"ab", "ba", "abab", "baba", ""}},
		{"a?b?", []string{"", "a", "b", "ab", "ba"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			n := MustCompile(tt.pattern)
			before := n.NumTransitions()
			r, err := n.Reversed()
			assert.NilError(t, err)
			assert.NilError(t, r.Validate())
			assert.Equal(t, n.NumTransitions(), before, "receiver modified")
			assert.DeepEqual(t, r.Accepting(), []StateID{n.Start()})

			for _, w := range tt.words {
				assert.Equal(t, r.Accept(reverse(w)), n.Accept(w), "word %q", w)
			}
		})
	}
}

func TestToFindingMode(t *testing.T) {
	n := MustCompile("ab")
	assert.NilError(t, n.ToFindingMode())
	for _, id := range n.States() {
		_, ok := n.trans[Transition{From: id, On: Epsilon, To: n.Start()}]
		assert.Assert(t, ok, "state %d has no epsilon edge to the start", id)
	}
	checkAccepts(t, n, []acceptCase{
		{"ab", true},
		{"aab", true},
		{"abab", true},
		{"ba", false},
		// finding mode restarts the pattern; it does not skip foreign symbols
		{"xab", false},
	})
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
