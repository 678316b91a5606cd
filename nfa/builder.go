package nfa

// FromSymbol builds the smallest NFA for a single symbol:
//   - Literal(c): two states joined by c, the second accepting
//   - Epsilon: one state that is both start and accepting
//   - Empty: one state and no accepting states
func FromSymbol(alloc *Allocator, sym Symbol) (*NFA, error) {
	if alloc == nil {
		return nil, constructionError(AllocatorMismatch, InvalidState, "nil allocator")
	}

	n := newNFA(alloc)
	switch sym.Kind() {
	case KindLiteral:
		ids := alloc.NextN(2)
		n.addState(ids[0])
		n.addState(ids[1])
		n.addTransition(Transition{From: ids[0], On: sym, To: ids[1]})
		n.start = ids[0]
		n.accepting[ids[1]] = struct{}{}
	case KindEpsilon:
		id := alloc.Next()
		n.addState(id)
		n.start = id
		n.accepting[id] = struct{}{}
	case KindEmpty:
		id := alloc.Next()
		n.addState(id)
		n.start = id
	default:
		return nil, constructionError(UnknownTransitionState, InvalidState, "unknown symbol kind %s", sym.Kind())
	}
	return n, nil
}

// absorb moves other's states and transitions into n and marks other consumed.
// Start and accepting sets are left for the caller to rewire.
func (n *NFA) absorb(other *NFA) error {
	if err := n.checkLive(); err != nil {
		return err
	}
	if other == nil {
		return constructionError(Consumed, InvalidState, "nil operand")
	}
	if other == n {
		return constructionError(DuplicateState, n.start, "an NFA cannot be combined with itself")
	}
	if other.consumed {
		return constructionError(Consumed, other.start, "operand was consumed by an earlier combinator")
	}
	if other.alloc != n.alloc {
		return constructionError(AllocatorMismatch, InvalidState, "operands were built from different allocators")
	}
	for _, id := range other.states {
		if n.hasState(id) {
			return constructionError(DuplicateState, id, "state %d belongs to both operands", id)
		}
	}

	for _, id := range other.states {
		n.addState(id)
		for _, t := range other.out[id] {
			n.addTransition(t)
		}
	}
	other.consumed = true
	return nil
}

// Concat appends other to n: every accepting state of n gets an epsilon edge
// to other's start, and n's accepting set becomes other's.
// other is consumed.
func (n *NFA) Concat(other *NFA) error {
	tails := n.Accepting()
	if err := n.absorb(other); err != nil {
		return err
	}
	for _, id := range tails {
		n.addTransition(Transition{From: id, On: Epsilon, To: other.start})
	}
	n.accepting = make(map[StateID]struct{}, len(other.accepting))
	for id := range other.accepting {
		n.accepting[id] = struct{}{}
	}
	return nil
}

// Union makes n accept L(n) ∪ L(other) through a fresh start state with
// epsilon edges to both old starts. Accepting sets are merged.
// other is consumed.
func (n *NFA) Union(other *NFA) error {
	if err := n.absorb(other); err != nil {
		return err
	}
	start := n.alloc.Next()
	n.addState(start)
	n.addTransition(Transition{From: start, On: Epsilon, To: n.start})
	n.addTransition(Transition{From: start, On: Epsilon, To: other.start})
	n.start = start
	for id := range other.accepting {
		n.accepting[id] = struct{}{}
	}
	return nil
}

// Kleene applies closure. A fresh start state leads to the old start and
// every accepting state loops back to it.
//
// With allowEmpty (the * operator) the fresh start becomes the only
// accepting state, so zero repetitions match. Without it (the + operator)
// the accepting set is unchanged.
func (n *NFA) Kleene(allowEmpty bool) error {
	if err := n.checkLive(); err != nil {
		return err
	}
	start := n.alloc.Next()
	n.addState(start)
	n.addTransition(Transition{From: start, On: Epsilon, To: n.start})
	for _, id := range n.Accepting() {
		n.addTransition(Transition{From: id, On: Epsilon, To: start})
	}
	n.start = start
	if allowEmpty {
		n.accepting = map[StateID]struct{}{start: {}}
	}
	return nil
}

// Optional makes n also accept the empty string. Equivalent to
// n.Union(FromSymbol(alloc, Epsilon)).
func (n *NFA) Optional() error {
	if err := n.checkLive(); err != nil {
		return err
	}
	eps, err := FromSymbol(n.alloc, Epsilon)
	if err != nil {
		return err
	}
	return n.Union(eps)
}

// ToFindingMode adds an epsilon edge from every state back to the start.
//
// Read left to right, the result accepts any input that ends with a word of
// the original language, which is what an unanchored forward search needs.
func (n *NFA) ToFindingMode() error {
	if err := n.checkLive(); err != nil {
		return err
	}
	for _, id := range n.States() {
		n.addTransition(Transition{From: id, On: Epsilon, To: n.start})
	}
	return nil
}

// Reversed returns a new NFA accepting the reverse of every word n accepts.
//
// Each edge (p, a, q) becomes (q, a, p). A fresh start state has epsilon
// edges to n's accepting states and n's start becomes the only accepting
// state. The result shares n's state ids and allocator, so it must not be
// combined with n. n itself is unchanged.
func (n *NFA) Reversed() (*NFA, error) {
	if err := n.checkLive(); err != nil {
		return nil, err
	}
	r := newNFA(n.alloc)
	for _, id := range n.states {
		r.addState(id)
	}
	for _, id := range n.states {
		for _, t := range n.out[id] {
			r.addTransition(Transition{From: t.To, On: t.On, To: t.From})
		}
	}

	start := n.alloc.Next()
	r.addState(start)
	for _, id := range n.Accepting() {
		r.addTransition(Transition{From: start, On: Epsilon, To: id})
	}
	r.start = start
	r.accepting[n.start] = struct{}{}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
