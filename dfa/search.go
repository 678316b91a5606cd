package dfa

import (
	"container/heap"
	"fmt"

	"github.com/coregx/powerset/nfa"
)

// Span is a match location as rune indices into the input. Both ends are
// inclusive, so a one-rune match has Start == End.
type Span struct {
	Start int
	End   int
}

// Len returns the number of runes covered
func (s Span) Len() int {
	return s.End - s.Start + 1
}

// String renders the span as (start, end)
func (s Span) String() string {
	return fmt.Sprintf("(%d, %d)", s.Start, s.End)
}

// Find returns the leftmost-longest non-empty match of the language in word.
//
// d must be the forward search DFA (built from an NFA in finding mode) and
// reversed the DFA of the reversed NFA; NewSearcher builds both. Find is
// exactly the first element of FindAll.
func (d *DFA) Find(word string, reversed *DFA) (Span, bool) {
	spans := d.FindAllRunes([]rune(word), 0, reversed, 1)
	if len(spans) == 0 {
		return Span{}, false
	}
	return spans[0], true
}

// FindAll returns every successive non-overlapping leftmost-longest match
// in word, ordered by start. Returns nil if there is no match.
// See Find for the roles of d and reversed.
func (d *DFA) FindAll(word string, reversed *DFA) []Span {
	return d.FindAllRunes([]rune(word), 0, reversed, -1)
}

// FindAllRunes is FindAll over runes[at:], returning at most n spans
// (all of them if n < 0). Spans are absolute indices into runes and never
// start before at.
//
// The search runs in two phases:
//
//  1. d scans forward from at, restarting at its start state whenever a
//     transition is undefined. Every position where it lands in an
//     accepting state is a candidate match end.
//  2. For each candidate end, reversed scans backward until a transition is
//     undefined; the lowest position where it accepts is the earliest
//     start of a match with that end.
//
// Candidates are then taken earliest start first, longest first among equal
// starts. A candidate overlapping the previous match is re-anchored by
// rescanning its end backward no further than the previous match's end.
func (d *DFA) FindAllRunes(runes []rune, at int, reversed *DFA, n int) []Span {
	if n == 0 || at < 0 || at >= len(runes) {
		return nil
	}

	cands := make(spanHeap, 0, 8)
	cur := d.start
	for i := at; i < len(runes); i++ {
		next, ok := d.Next(cur, runes[i])
		if !ok {
			// A finding-mode start state is contained in every DFA state,
			// so this retry only matters for a DFA that is not one.
			if next, ok = d.Next(d.start, runes[i]); !ok {
				cur = d.start
				continue
			}
		}
		cur = next
		if !d.IsAccepting(cur) {
			continue
		}
		if start, ok := reversed.earliestStart(runes, i, at); ok {
			cands = append(cands, Span{Start: start, End: i})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	heap.Init(&cands)
	var out []Span
	pos := at
	for cands.Len() > 0 && (n < 0 || len(out) < n) {
		c := heap.Pop(&cands).(Span)
		switch {
		case c.End < pos:
			// entirely inside an earlier match
		case c.Start < pos:
			if start, ok := reversed.earliestStart(runes, c.End, pos); ok {
				heap.Push(&cands, Span{Start: start, End: c.End})
			}
		default:
			out = append(out, c)
			pos = c.End + 1
		}
	}
	return out
}

// earliestStart runs the reversed DFA backward from end to floor and
// returns the lowest position at which it accepts.
func (d *DFA) earliestStart(runes []rune, end, floor int) (int, bool) {
	best := -1
	cur := d.start
	for j := end; j >= floor; j-- {
		next, ok := d.Next(cur, runes[j])
		if !ok {
			break
		}
		cur = next
		if d.IsAccepting(cur) {
			best = j
		}
	}
	return best, best >= 0
}

// spanHeap orders candidates by start ascending, then end descending.
type spanHeap []Span

func (h spanHeap) Len() int { return len(h) }

func (h spanHeap) Less(i, j int) bool {
	if h[i].Start != h[j].Start {
		return h[i].Start < h[j].Start
	}
	return h[i].End > h[j].End
}

func (h spanHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *spanHeap) Push(x any) { *h = append(*h, x.(Span)) }

func (h *spanHeap) Pop() any {
	old := *h
	x := old[len(old)-1]
	*h = old[:len(old)-1]
	return x
}

// Searcher pairs the forward finding-mode DFA and the reversed DFA of one NFA.
type Searcher struct {
	forward *DFA
	reverse *DFA
}

// NewSearcher builds both search DFAs for n without modifying it.
func NewSearcher(n *nfa.NFA) (*Searcher, error) {
	return NewSearcherWithConfig(n, DefaultConfig())
}

// NewSearcherWithConfig is NewSearcher with a construction limit applied to
// each of the two DFAs.
func NewSearcherWithConfig(n *nfa.NFA, cfg Config) (*Searcher, error) {
	if n == nil {
		return nil, invalid(InvalidNFA, "nil NFA")
	}
	rn, err := n.Reversed()
	if err != nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "cannot reverse NFA", Cause: err}
	}
	reverse, err := BuildWithConfig(rn, cfg)
	if err != nil {
		return nil, err
	}

	fn, err := n.Clone()
	if err != nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "cannot copy NFA", Cause: err}
	}
	if err := fn.ToFindingMode(); err != nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "cannot enter finding mode", Cause: err}
	}
	forward, err := BuildWithConfig(fn, cfg)
	if err != nil {
		return nil, err
	}
	return &Searcher{forward: forward, reverse: reverse}, nil
}

// Forward returns the finding-mode DFA
func (s *Searcher) Forward() *DFA {
	return s.forward
}

// Reverse returns the reversed DFA
func (s *Searcher) Reverse() *DFA {
	return s.reverse
}

// Find returns the leftmost-longest non-empty match in word
func (s *Searcher) Find(word string) (Span, bool) {
	return s.forward.Find(word, s.reverse)
}

// FindAll returns all non-overlapping matches in word, or nil
func (s *Searcher) FindAll(word string) []Span {
	return s.forward.FindAll(word, s.reverse)
}

// FindAllRunes returns at most n matches in runes[at:] (all if n < 0)
func (s *Searcher) FindAllRunes(runes []rune, at, n int) []Span {
	return s.forward.FindAllRunes(runes, at, s.reverse, n)
}
