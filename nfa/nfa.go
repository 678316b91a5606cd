package nfa

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// StateID uniquely identifies a state among all automata built from one Allocator.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID.
// It is never issued by an Allocator.
const InvalidState StateID = 0xFFFFFFFF

// MaxStateID is the largest id New accepts. Reserving it still leaves the
// Allocator one fresh id below InvalidState.
const MaxStateID StateID = InvalidState - 2

// Transition is one edge (From, On, To) of the transition relation.
type Transition struct {
	From StateID
	On   Symbol
	To   StateID
}

// String renders the transition as a tuple, e.g. (0, 'a', 1)
func (t Transition) String() string {
	return fmt.Sprintf("(%d, %#v, %d)", t.From, t.On, t.To)
}

func compareTransitions(a, b Transition) int {
	if c := cmp.Compare(a.From, b.From); c != 0 {
		return c
	}
	if a.On != b.On {
		if a.On.Less(b.On) {
			return -1
		}
		return 1
	}
	return cmp.Compare(a.To, b.To)
}

// NFA is a nondeterministic finite automaton (Q, δ, q0, F) over Symbols.
//
// The transition relation is a set: adding an edge twice has no effect.
// The alphabet is derived from the transitions and never stored.
//
// Combinators (Concat, Union, Kleene, Optional, ToFindingMode) mutate the
// receiver in place. Concat and Union take ownership of their operand, which
// is marked consumed and rejected by every later combinator.
type NFA struct {
	alloc *Allocator

	states []StateID // insertion order
	index  map[StateID]struct{}

	trans map[Transition]struct{}
	out   map[StateID][]Transition // outgoing edges per state, insertion order

	start     StateID
	accepting map[StateID]struct{}

	consumed bool
}

func newNFA(alloc *Allocator) *NFA {
	return &NFA{
		alloc:     alloc,
		index:     make(map[StateID]struct{}),
		trans:     make(map[Transition]struct{}),
		out:       make(map[StateID][]Transition),
		start:     InvalidState,
		accepting: make(map[StateID]struct{}),
	}
}

// New builds an NFA from its raw components and validates it.
//
// Every state is reserved in alloc so later combinators never reissue it.
// Duplicate transitions are collapsed; duplicate states are an error.
func New(alloc *Allocator, states []StateID, transitions []Transition, start StateID, accepting []StateID) (*NFA, error) {
	if alloc == nil {
		return nil, constructionError(AllocatorMismatch, InvalidState, "nil allocator")
	}

	n := newNFA(alloc)
	for _, id := range states {
		if id > MaxStateID {
			return nil, constructionError(ReservedState, id, "state id %d is reserved", id)
		}
		if !n.addState(id) {
			return nil, constructionError(DuplicateState, id, "state %d listed twice", id)
		}
	}
	n.start = start
	for _, id := range accepting {
		n.accepting[id] = struct{}{}
	}
	for _, t := range transitions {
		n.addTransition(t)
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}
	for _, id := range states {
		alloc.reserve(id)
	}
	return n, nil
}

// addState adds id to Q. Returns false if it was already present.
func (n *NFA) addState(id StateID) bool {
	if _, ok := n.index[id]; ok {
		return false
	}
	n.index[id] = struct{}{}
	n.states = append(n.states, id)
	return true
}

func (n *NFA) addTransition(t Transition) {
	if _, ok := n.trans[t]; ok {
		return
	}
	n.trans[t] = struct{}{}
	n.out[t.From] = append(n.out[t.From], t)
}

func (n *NFA) checkLive() error {
	if n.consumed {
		return constructionError(Consumed, n.start, "NFA was consumed by an earlier combinator")
	}
	return nil
}

// Validate checks the automaton invariants: no duplicate states, q0 ∈ Q,
// F ⊆ Q, and every transition endpoint in Q. Errors are reported for the
// smallest offending state so the result is deterministic.
func (n *NFA) Validate() error {
	if err := n.checkLive(); err != nil {
		return err
	}
	if len(n.states) != len(n.index) {
		return constructionError(DuplicateState, InvalidState, "state list and index disagree")
	}
	if !n.hasState(n.start) {
		return constructionError(StartNotInStates, n.start, "start state %d is not in the state set", n.start)
	}
	for _, id := range n.Accepting() {
		if !n.hasState(id) {
			return constructionError(AcceptingNotSubset, id, "accepting state %d is not in the state set", id)
		}
	}
	for _, t := range n.Transitions() {
		if !n.hasState(t.From) {
			return constructionError(UnknownTransitionState, t.From, "transition %s leaves unknown state %d", t, t.From)
		}
		if !n.hasState(t.To) {
			return constructionError(UnknownTransitionState, t.To, "transition %s enters unknown state %d", t, t.To)
		}
	}
	return nil
}

func (n *NFA) hasState(id StateID) bool {
	_, ok := n.index[id]
	return ok
}

// HasState returns true if id is a state of the NFA
func (n *NFA) HasState(id StateID) bool {
	return n.hasState(id)
}

// Start returns the starting state ID of the NFA
func (n *NFA) Start() StateID {
	return n.start
}

// States returns the state IDs in ascending order.
func (n *NFA) States() []StateID {
	ids := slices.Clone(n.states)
	slices.Sort(ids)
	return ids
}

// NumStates returns the total number of states in the NFA
func (n *NFA) NumStates() int {
	return len(n.states)
}

// NumTransitions returns the size of the transition relation
func (n *NFA) NumTransitions() int {
	return len(n.trans)
}

// Transitions returns every edge, ordered by source, symbol, then target.
func (n *NFA) Transitions() []Transition {
	ts := slices.Collect(maps.Keys(n.trans))
	slices.SortFunc(ts, compareTransitions)
	return ts
}

// Out returns the edges leaving id in insertion order.
// The returned slice is owned by the NFA and must not be modified.
func (n *NFA) Out(id StateID) []Transition {
	return n.out[id]
}

// Accepting returns the accepting states in ascending order.
func (n *NFA) Accepting() []StateID {
	ids := slices.Collect(maps.Keys(n.accepting))
	slices.Sort(ids)
	return ids
}

// IsAccepting returns true if id is an accepting state
func (n *NFA) IsAccepting(id StateID) bool {
	_, ok := n.accepting[id]
	return ok
}

// Alphabet returns the literal symbols used by any transition, sorted.
// Epsilon is never part of the alphabet.
func (n *NFA) Alphabet() []Symbol {
	seen := make(map[Symbol]struct{})
	for t := range n.trans {
		if t.On.IsLiteral() {
			seen[t.On] = struct{}{}
		}
	}
	syms := slices.Collect(maps.Keys(seen))
	slices.SortFunc(syms, func(a, b Symbol) int {
		if a.Less(b) {
			return -1
		}
		if b.Less(a) {
			return 1
		}
		return 0
	})
	return syms
}

// Allocator returns the allocator the NFA draws fresh states from
func (n *NFA) Allocator() *Allocator {
	return n.alloc
}

// IsConsumed returns true once the NFA has been absorbed by a combinator
func (n *NFA) IsConsumed() bool {
	return n.consumed
}

// Clone returns a deep copy sharing the receiver's allocator and state ids.
//
// The copy and the original overlap on every state, so they can never be
// combined with each other; Concat and Union reject that.
func (n *NFA) Clone() (*NFA, error) {
	if err := n.checkLive(); err != nil {
		return nil, err
	}
	c := newNFA(n.alloc)
	for _, id := range n.states {
		c.addState(id)
		for _, t := range n.out[id] {
			c.addTransition(t)
		}
	}
	c.start = n.start
	maps.Copy(c.accepting, n.accepting)
	return c, nil
}

// String returns a multi-line debug dump:
//
//	NFA {
//		Q: [0 1],
//		D: {
//			(0, 'a', 1),
//		}
//		q_0: 0,
//		F: [1],
//		E: ['a']
//	}
func (n *NFA) String() string {
	var sb strings.Builder
	sb.WriteString("NFA {\n")
	fmt.Fprintf(&sb, "\tQ: %v,\n", n.States())
	sb.WriteString("\tD: {\n")
	for _, t := range n.Transitions() {
		fmt.Fprintf(&sb, "\t\t%s,\n", t)
	}
	sb.WriteString("\t}\n")
	fmt.Fprintf(&sb, "\tq_0: %d,\n", n.start)
	fmt.Fprintf(&sb, "\tF: %v,\n", n.Accepting())
	alphabet := n.Alphabet()
	parts := make([]string, len(alphabet))
	for i, s := range alphabet {
		parts[i] = s.GoString()
	}
	fmt.Fprintf(&sb, "\tE: [%s]\n", strings.Join(parts, " "))
	sb.WriteString("}")
	return sb.String()
}
