package dfa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/powerset/nfa"
)

func mustSearcher(t testing.TB, pattern string) *Searcher {
	t.Helper()
	s, err := NewSearcher(nfa.MustCompile(pattern))
	if err != nil {
		t.Fatalf("NewSearcher(%q) error = %v", pattern, err)
	}
	return s
}

func TestFind(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    Span
		ok      bool
	}{
		{"aab|ac", "ac", Span{0, 1}, true},
		{"aab|ac", "aac", Span{1, 2}, true},
		{"aab|ac", "abaac", Span{3, 4}, true},
		{"aab|ac", "cadaabf", Span{3, 5}, true},
		{"aab|ac", "ab", Span{}, false},
		{"aab|ac", "abc", Span{}, false},
		{"aab|ac", "cab", Span{}, false},
		{"(a|b)c", "bc", Span{0, 1}, true},
		{"(a|b)c", "ababc", Span{3, 4}, true},
		{"(a|b)c", "cab", Span{}, false},
		{"a*b", "b", Span{0, 0}, true},
		{"a*b", "ab", Span{0, 1}, true},
		{"a*b", "aaaaab", Span{0, 5}, true},
		{"a*b", "a", Span{}, false},
		{"a*b", "", Span{}, false},
		{"ba*", "b", Span{0, 0}, true},
		{"ba*", "ba", Span{0, 1}, true},
		{"ba*", "baaaaa", Span{0, 5}, true},
		{"ba*", "a", Span{}, false},
		{"ba*b", "bb", Span{0, 1}, true},
		{"ba*b", "bab", Span{0, 2}, true},
		{"ba*b", "baaaaab", Span{0, 6}, true},
		{"ba*b", "ba", Span{}, false},
		{"a?b+(a|c)?|c+", "aab", Span{1, 2}, true},
		{"a?b+(a|c)?|c+", "aabbaa", Span{1, 4}, true},
		{"a?b+(a|c)?|c+", "cccba", Span{0, 2}, true},
		{"a?b+(a|c)?|c+", "acba", Span{1, 1}, true},
		{"a?b+(a|c)?|c+", "bbbccc", Span{0, 3}, true},
		{"a?b+(a|c)?|c+", "the bbc is the british broadcasting network", Span{4, 6}, true},
		{"a?b+(a|c)?|c+", "aa", Span{}, false},
		{"a?b+(a|c)?|c+", "dfekjoei", Span{}, false},
		{"a*", "bbb", Span{}, false},
		{"", "abc", Span{}, false},
		{"()*", "abc", Span{}, false},
		{"ö+", "schön, schööön", Span{3, 3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			s := mustSearcher(t, tt.pattern)
			got, ok := s.Find(tt.input)
			if ok != tt.ok {
				t.Fatalf("Find(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Find(%q) = %v, want %v", tt.input, got, tt.want)
			}

			all := s.FindAll(tt.input)
			if ok != (all != nil) {
				t.Fatalf("FindAll(%q) = %v disagrees with Find", tt.input, all)
			}
			if ok && all[0] != got {
				t.Errorf("Find = %v but FindAll[0] = %v", got, all[0])
			}

			// NFA simulation agrees
			start, end, nok := nfa.MustCompile(tt.pattern).Find(tt.input)
			if nok != ok || (ok && (start != got.Start || end != got.End)) {
				t.Errorf("NFA Find = (%d, %d, %v), DFA Find = (%v, %v)", start, end, nok, got, ok)
			}
		})
	}
}

func TestFindAll(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    []Span
	}{
		{"aba", "bababababa", []Span{{1, 3}, {5, 7}}},
		{"a+", "aabaaab", []Span{{0, 1}, {3, 5}}},
		{"aba|bab", "ababab", []Span{{0, 2}, {3, 5}}},
		{"a*b", "abaabxb", []Span{{0, 1}, {2, 4}, {6, 6}}},
		{"c+", "ccxcxxccc", []Span{{0, 1}, {3, 3}, {6, 8}}},
		{"ab|b", "abbab", []Span{{0, 1}, {2, 2}, {3, 4}}},
		{"x", "yyy", nil},
		{"x", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			got := mustSearcher(t, tt.pattern).FindAll(tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAll(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestFindAll_NonOverlappingLongest(t *testing.T) {
	patterns := []string{"a?b+(a|c)?|c+", "(ab)*a", "a|ab|abc", "(a|b)*b"}
	inputs := []string{
		"the bbc is the british broadcasting network",
		"abababa cab abc",
		"aabbccabcabc",
	}
	for _, pattern := range patterns {
		n := nfa.MustCompile(pattern)
		s := mustSearcher(t, pattern)
		for _, input := range inputs {
			runes := []rune(input)
			spans := s.FindAll(input)
			for i, sp := range spans {
				if sp.Start > sp.End {
					t.Fatalf("%q on %q: empty span %v", pattern, input, sp)
				}
				if i > 0 && sp.Start <= spans[i-1].End {
					t.Errorf("%q on %q: %v overlaps %v", pattern, input, sp, spans[i-1])
				}
				if !n.Accept(string(runes[sp.Start : sp.End+1])) {
					t.Errorf("%q on %q: span %v is not a match", pattern, input, sp)
				}
				// no longer match from the same start
				for e := sp.End + 1; e < len(runes); e++ {
					if n.Accept(string(runes[sp.Start : e+1])) {
						t.Errorf("%q on %q: %v could extend to %d", pattern, input, sp, e)
					}
				}
			}
		}
	}
}

func TestFindAllRunes(t *testing.T) {
	s := mustSearcher(t, "abc")
	runes := []rune("abcabcabc")

	tests := []struct {
		name string
		at   int
		n    int
		want []Span
	}{
		{"all", 0, -1, []Span{{0, 2}, {3, 5}, {6, 8}}},
		{"limited", 0, 2, []Span{{0, 2}, {3, 5}}},
		{"zero", 0, 0, nil},
		{"offset", 1, -1, []Span{{3, 5}, {6, 8}}},
		{"offset at start", 3, 1, []Span{{3, 5}}},
		{"past end", 9, -1, nil},
		{"negative", -1, -1, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.FindAllRunes(runes, tt.at, tt.n)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FindAllRunes(at=%d, n=%d) mismatch (-want +got):\n%s", tt.at, tt.n, diff)
			}
		})
	}
}

func TestFindAllRunes_OffsetBlocksEarlierStarts(t *testing.T) {
	// matches never start before the offset, even where the reversed scan
	// could keep going further left
	s := mustSearcher(t, "a*b")
	got := s.FindAllRunes([]rune("aaab"), 2, -1)
	if diff := cmp.Diff([]Span{{2, 3}}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSpan(t *testing.T) {
	sp := Span{Start: 3, End: 5}
	if sp.Len() != 3 {
		t.Errorf("Len() = %d, want 3", sp.Len())
	}
	if sp.String() != "(3, 5)" {
		t.Errorf("String() = %q", sp.String())
	}
}

func TestSearcher_Accessors(t *testing.T) {
	s := mustSearcher(t, "ab")
	// forward DFA accepts anything ending in the pattern, made of its symbols
	if !s.Forward().Accept("aab") {
		t.Error("forward DFA should accept \"aab\"")
	}
	if !s.Reverse().Accept("ba") || s.Reverse().Accept("ab") {
		t.Error("reverse DFA should accept exactly \"ba\"")
	}
}

func TestNewSearcher_Errors(t *testing.T) {
	if _, err := NewSearcher(nil); err == nil {
		t.Error("NewSearcher(nil) should fail")
	}
	p, err := nfa.NthFromEnd(nfa.NewAllocator(), 8)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewSearcherWithConfig(p, Config{MaxStates: 16}); err == nil {
		t.Error("state limit should apply to the searcher DFAs")
	}
}

func BenchmarkFindAll_Kleene(b *testing.B) {
	s := mustSearcher(b, "a*")
	for _, size := range []int{100, 1000} {
		input := strings.Repeat("a", size)
		b.Run(fmt.Sprint(size), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				s.FindAll(input)
			}
		})
	}
}
