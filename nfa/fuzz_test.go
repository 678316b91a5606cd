package nfa

import (
	"errors"
	"testing"
	"unicode/utf8"
)

func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"", "a", "a*", "(a|b)?a*b", "a?b+(a|c)?|c+", "a**", "*a", "(a", "a)",
		"((a|)|b)*", "()", "é+", "(ab)+c?",
	} {
		f.Add(seed, "ab")
	}

	f.Fuzz(func(t *testing.T, pattern, word string) {
		if len(pattern) > 64 || len(word) > 32 || !utf8.ValidString(word) {
			t.Skip()
		}
		n, err := Compile(pattern)
		if err != nil {
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Compile(%q) returned non-syntax error %v", pattern, err)
			}
			return
		}
		if err := n.Validate(); err != nil {
			t.Fatalf("Compile(%q) produced invalid NFA: %v", pattern, err)
		}

		r, err := n.Reversed()
		if err != nil {
			t.Fatalf("Reversed() error = %v", err)
		}
		if got, want := r.Accept(reverse(word)), n.Accept(word); got != want {
			t.Fatalf("pattern %q word %q: reversed accepts %v, original %v", pattern, word, got, want)
		}

		if start, end, ok := n.Find(word); ok {
			runes := []rune(word)
			if start > end || end >= len(runes) {
				t.Fatalf("Find(%q) = (%d, %d) out of range", word, start, end)
			}
			if !n.Accept(string(runes[start : end+1])) {
				t.Fatalf("Find(%q) = (%d, %d) but the span is not accepted", word, start, end)
			}
		}
	})
}
