package dfa

import (
	"errors"
	"fmt"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/coregx/powerset/nfa"
)

var equivalencePatterns = []string{
	"a",
	"ab|c",
	"(a|b)?a*b",
	"a?b+(a|c)?|c+",
	"(ab)*",
	"((a|b)*c)+",
	"a*a*a*",
	"(a?)*b",
	"(|a)(b|)",
	"",
	"()*",
}

// words enumerates every word over alphabet up to maxLen runes.
func words(alphabet []rune, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for l := 0; l < maxLen; l++ {
		var next []string
		for _, w := range frontier {
			for _, r := range alphabet {
				next = append(next, w+string(r))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

func TestBuild_Equivalence(t *testing.T) {
	all := words([]rune("abcz"), 5)
	for _, pattern := range equivalencePatterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := nfa.Compile(pattern)
			assert.NilError(t, err)
			d, err := Build(n)
			assert.NilError(t, err)
			assert.NilError(t, d.Validate())
			for _, w := range all {
				assert.Equal(t, d.Accept(w), n.Accept(w), "pattern %q word %q", pattern, w)
			}
		})
	}
}

func TestBuild_Reversal(t *testing.T) {
	all := words([]rune("abc"), 4)
	for _, pattern := range equivalencePatterns {
		t.Run(pattern, func(t *testing.T) {
			n, err := nfa.Compile(pattern)
			assert.NilError(t, err)
			r, err := n.Reversed()
			assert.NilError(t, err)
			d, err := Build(r)
			assert.NilError(t, err)
			for _, w := range all {
				assert.Equal(t, d.Accept(reverse(w)), n.Accept(w), "pattern %q word %q", pattern, w)
			}
		})
	}
}

func TestBuild_DeterministicAndReachable(t *testing.T) {
	for _, pattern := range equivalencePatterns {
		t.Run(pattern, func(t *testing.T) {
			d := mustBuild(t, pattern)

			keys := make(map[string]bool)
			for _, tr := range d.Transitions() {
				key := fmt.Sprintf("%d/%#v", tr.From, tr.On)
				assert.Assert(t, !keys[key], "two transitions for %s", key)
				keys[key] = true
				assert.Assert(t, tr.On.IsLiteral(), "non-literal transition %s", tr)
			}

			seen := map[StateID]bool{d.Start(): true}
			queue := []StateID{d.Start()}
			for len(queue) > 0 {
				s := queue[0]
				queue = queue[1:]
				for _, sym := range d.Symbols(s) {
					r, _ := sym.Rune()
					to, ok := d.Next(s, r)
					assert.Assert(t, ok)
					if !seen[to] {
						seen[to] = true
						queue = append(queue, to)
					}
				}
			}
			assert.Equal(t, len(seen), d.NumStates(), "unreachable states")
		})
	}
}

func TestBuild_IdsAreDense(t *testing.T) {
	d := mustBuild(t, "(a|b)*abb")
	for i, id := range d.States() {
		assert.Equal(t, id, StateID(i))
	}
}

func TestBuild_Pathological(t *testing.T) {
	for n := 2; n <= 8; n++ {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			p, err := nfa.NthFromEnd(nfa.NewAllocator(), n)
			assert.NilError(t, err)
			d, err := Build(p)
			assert.NilError(t, err)
			assert.Equal(t, d.NumStates(), 1<<n)
			for _, w := range words([]rune("ab"), n+1) {
				assert.Equal(t, d.Accept(w), p.Accept(w), "word %q", w)
			}
		})
	}
}

func TestBuild_StateLimit(t *testing.T) {
	p, err := nfa.NthFromEnd(nfa.NewAllocator(), 6)
	assert.NilError(t, err)

	_, err = BuildWithConfig(p, DefaultConfig().WithMaxStates(10))
	assert.ErrorIs(t, err, ErrStateLimitExceeded)

	d, err := BuildWithConfig(p, DefaultConfig().WithMaxStates(64))
	assert.NilError(t, err)
	assert.Equal(t, d.NumStates(), 64)
}

func TestBuild_InvalidInput(t *testing.T) {
	_, err := BuildWithConfig(nfa.MustCompile("a"), Config{MaxStates: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Build(nil)
	assert.ErrorIs(t, err, &DFAError{Kind: InvalidNFA})

	alloc := nfa.NewAllocator()
	x, err := nfa.CompileWith(alloc, "a")
	assert.NilError(t, err)
	y, err := nfa.CompileWith(alloc, "b")
	assert.NilError(t, err)
	assert.NilError(t, x.Concat(y))

	_, err = Build(y)
	assert.ErrorIs(t, err, &DFAError{Kind: InvalidNFA})
	assert.ErrorIs(t, err, nfa.ErrConstruction)
	var ce *nfa.ConstructionError
	assert.Assert(t, errors.As(err, &ce))
	assert.Equal(t, ce.Kind, nfa.Consumed)
}

func TestBuild_DoesNotModifyNFA(t *testing.T) {
	n := nfa.MustCompile("a(b|c)*")
	before := n.String()
	_, err := Build(n)
	assert.NilError(t, err)
	_, err = NewSearcher(n)
	assert.NilError(t, err)
	assert.Equal(t, n.String(), before)
	assert.Assert(t, !n.IsConsumed())
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func BenchmarkBuild_Pathological(b *testing.B) {
	for _, n := range []int{8, 12} {
		b.Run(fmt.Sprint(n), func(b *testing.B) {
			p, err := nfa.NthFromEnd(nfa.NewAllocator(), n)
			if err != nil {
				b.Fatal(err)
			}
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := Build(p); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
