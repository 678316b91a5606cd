package nfa

import (
	"github.com/bits-and-blooms/bitset"
)

// Backtracker simulates an NFA directly by depth-first search over
// (state, position) pairs.
//
// A bit vector marks visited pairs, so every pair is expanded at most once
// and epsilon cycles terminate. The cost is O(states × (len(input)+1)) time
// and bits, which makes the Backtracker suited to testing and diagnostics
// rather than production search; use a DFA for that.
//
// A Backtracker is not safe for concurrent use.
type Backtracker struct {
	nfa *NFA

	// dense maps each state to a row of the visited matrix.
	dense map[StateID]uint

	// visited bit at index row*(inputLen+1)+pos marks (state, pos) as expanded.
	visited  *bitset.BitSet
	inputLen int

	stack []frame
}

type frame struct {
	state StateID
	pos   int
}

// NewBacktracker creates a backtracker for n.
func NewBacktracker(n *NFA) *Backtracker {
	dense := make(map[StateID]uint, len(n.states))
	for i, id := range n.states {
		dense[id] = uint(i)
	}
	return &Backtracker{
		nfa:     n,
		dense:   dense,
		visited: bitset.New(0),
	}
}

func (b *Backtracker) reset(inputLen int) {
	b.inputLen = inputLen
	bits := uint(len(b.dense)) * uint(inputLen+1)
	if b.visited.Len() < bits {
		b.visited = bitset.New(bits)
		return
	}
	b.visited.ClearAll()
}

// visit marks (state, pos) and reports whether it was unvisited.
func (b *Backtracker) visit(state StateID, pos int) bool {
	idx := b.dense[state]*uint(b.inputLen+1) + uint(pos)
	if b.visited.Test(idx) {
		return false
	}
	b.visited.Set(idx)
	return true
}

// longest returns the largest p such that input[at:p] is accepted, or -1.
// Visited marks are kept across calls on the same input: a pair expanded by
// an earlier, failed search from a smaller offset cannot reach an accepting
// position beyond that offset, so skipping it later loses nothing.
func (b *Backtracker) longest(input []rune, at int) int {
	best := -1
	if !b.visit(b.nfa.start, at) {
		return best
	}
	b.stack = append(b.stack[:0], frame{b.nfa.start, at})
	for len(b.stack) > 0 {
		f := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		if f.pos > best && b.nfa.IsAccepting(f.state) {
			best = f.pos
		}
		for _, t := range b.nfa.out[f.state] {
			switch {
			case t.On.IsEpsilon():
				if b.visit(t.To, f.pos) {
					b.stack = append(b.stack, frame{t.To, f.pos})
				}
			case f.pos < len(input) && t.On == Literal(input[f.pos]):
				if b.visit(t.To, f.pos+1) {
					b.stack = append(b.stack, frame{t.To, f.pos + 1})
				}
			}
		}
	}
	return best
}

// Accept reports whether the whole input is a word of the language.
func (b *Backtracker) Accept(input []rune) bool {
	b.reset(len(input))
	return b.longest(input, 0) == len(input)
}

// Find returns the leftmost-longest non-empty match as inclusive rune
// positions.
func (b *Backtracker) Find(input []rune) (start, end int, ok bool) {
	b.reset(len(input))
	for i := range input {
		if p := b.longest(input, i); p > i {
			return i, p - 1, true
		}
	}
	return -1, -1, false
}

// Accept reports whether word is in the language, by direct simulation.
func (n *NFA) Accept(word string) bool {
	return NewBacktracker(n).Accept([]rune(word))
}

// Find returns the leftmost-longest non-empty match in word as inclusive
// rune positions, by direct simulation.
func (n *NFA) Find(word string) (start, end int, ok bool) {
	return NewBacktracker(n).Find([]rune(word))
}
