package nfa

import (
	"fmt"
)

// SymbolKind identifies which variant of the alphabet a Symbol belongs to.
type SymbolKind uint8

const (
	// KindLiteral is a single codepoint that consumes one input character.
	KindLiteral SymbolKind = iota

	// KindEpsilon is the empty-string marker. It consumes no input.
	KindEpsilon

	// KindEmpty is the empty-language marker. It matches nothing, not even
	// the empty string, and is the construction unit for the empty pattern.
	KindEmpty
)

// String returns a human-readable representation of the SymbolKind
func (k SymbolKind) String() string {
	switch k {
	case KindLiteral:
		return "Literal"
	case KindEpsilon:
		return "Epsilon"
	case KindEmpty:
		return "Empty"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Symbol is an element of an automaton's alphabet.
//
// Symbol is a comparable value type: two symbols are equal if and only if
// they have the same kind and, for literals, the same codepoint. This makes
// Symbol usable directly as (part of) a map key.
type Symbol struct {
	kind SymbolKind
	r    rune
}

var (
	// Epsilon is the symbol of transitions that consume no input.
	Epsilon = Symbol{kind: KindEpsilon}

	// Empty is the symbol of the empty language.
	Empty = Symbol{kind: KindEmpty}
)

// Literal returns the symbol matching exactly the codepoint r.
func Literal(r rune) Symbol {
	return Symbol{kind: KindLiteral, r: r}
}

// Kind returns the symbol's variant
func (s Symbol) Kind() SymbolKind {
	return s.kind
}

// Rune returns the codepoint of a literal symbol.
// Returns (0, false) for Epsilon and Empty.
func (s Symbol) Rune() (rune, bool) {
	if s.kind == KindLiteral {
		return s.r, true
	}
	return 0, false
}

// IsLiteral returns true if the symbol consumes one input character
func (s Symbol) IsLiteral() bool {
	return s.kind == KindLiteral
}

// IsEpsilon returns true for the empty-string marker
func (s Symbol) IsEpsilon() bool {
	return s.kind == KindEpsilon
}

// Less orders symbols by kind first and codepoint second.
// Used wherever a deterministic iteration order over symbols is needed.
func (s Symbol) Less(other Symbol) bool {
	if s.kind != other.kind {
		return s.kind < other.kind
	}
	return s.r < other.r
}

// String renders a literal as itself and epsilon/empty as nothing.
func (s Symbol) String() string {
	if s.kind == KindLiteral {
		return string(s.r)
	}
	return ""
}

// GoString returns the debug representation used by NFA and DFA dumps.
func (s Symbol) GoString() string {
	switch s.kind {
	case KindLiteral:
		return fmt.Sprintf("%q", s.r)
	case KindEpsilon:
		return "ε"
	case KindEmpty:
		return "∅"
	default:
		return s.kind.String()
	}
}
