package nfa

// NthFromEnd builds the classic worst case for subset construction over the
// alphabet {a, b}: states q0..qn, where q0 loops on both symbols and guesses
// q1 on 'a', each qi (0 < i < n) advances on both symbols, and qn accepts and
// loops on both symbols.
//
// The language is every word with an 'a' followed by at least n-1 more
// symbols. Its DFA has to remember which of the last n-1 positions held an
// 'a', plus whether qn was ever reached, for 2^n states in total.
//
// Returns a ConstructionError if n < 2.
func NthFromEnd(alloc *Allocator, n int) (*NFA, error) {
	if n < 2 {
		return nil, constructionError(InvalidParameter, InvalidState, "NthFromEnd needs n >= 2, got %d", n)
	}
	if alloc == nil {
		return nil, constructionError(AllocatorMismatch, InvalidState, "nil allocator")
	}

	a, b := Literal('a'), Literal('b')
	q := alloc.NextN(n + 1)
	transitions := []Transition{
		{From: q[0], On: a, To: q[0]},
		{From: q[0], On: b, To: q[0]},
		{From: q[0], On: a, To: q[1]},
		{From: q[n], On: a, To: q[n]},
		{From: q[n], On: b, To: q[n]},
	}
	for i := 1; i < n; i++ {
		transitions = append(transitions,
			Transition{From: q[i], On: a, To: q[i+1]},
			Transition{From: q[i], On: b, To: q[i+1]},
		)
	}
	return New(alloc, q, transitions, q[0], []StateID{q[n]})
}
