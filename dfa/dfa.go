// Package dfa provides deterministic finite automata built from NFAs by
// subset construction, and the two-automaton leftmost-longest search that
// pairs a forward finding-mode DFA with a reversed DFA.
//
// A DFA is immutable once built. All methods are safe for concurrent use.
package dfa

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/coregx/powerset/nfa"
)

// StateID identifies a DFA state. DFA states carry no payload; the NFA state
// set each one stood for during construction is discarded afterwards.
type StateID = nfa.StateID

type transKey struct {
	from StateID
	on   nfa.Symbol
}

// DFA is a deterministic finite automaton (Q, δ, q0, F).
//
// δ is a partial map: a missing (state, symbol) entry rejects. It is never
// keyed by epsilon and holds at most one target per key.
type DFA struct {
	states    []StateID // construction order; states[0] is the start
	index     map[StateID]struct{}
	trans     map[transKey]StateID
	symbols   map[StateID][]nfa.Symbol // outgoing symbols per state, sorted
	start     StateID
	accepting map[StateID]struct{}
}

func newDFA() *DFA {
	return &DFA{
		index:     make(map[StateID]struct{}),
		trans:     make(map[transKey]StateID),
		symbols:   make(map[StateID][]nfa.Symbol),
		start:     nfa.InvalidState,
		accepting: make(map[StateID]struct{}),
	}
}

func (d *DFA) addState(id StateID) bool {
	if _, ok := d.index[id]; ok {
		return false
	}
	d.index[id] = struct{}{}
	d.states = append(d.states, id)
	return true
}

// New builds a DFA from raw components and validates it.
//
// Transitions are given in the nfa.Transition shape. An epsilon transition
// is rejected with EpsilonTransition, and two different targets for one
// (state, symbol) pair with Nondeterministic.
func New(states []StateID, transitions []nfa.Transition, start StateID, accepting []StateID) (*DFA, error) {
	d := newDFA()
	for _, id := range states {
		if !d.addState(id) {
			return nil, invalid(InvalidAutomaton, "state %d listed twice", id)
		}
	}
	d.start = start
	for _, id := range accepting {
		d.accepting[id] = struct{}{}
	}
	for _, t := range transitions {
		if t.On.Kind() != nfa.KindLiteral {
			return nil, invalid(EpsilonTransition, "transition %s is not keyed by a literal", t)
		}
		key := transKey{t.From, t.On}
		if to, ok := d.trans[key]; ok {
			if to != t.To {
				return nil, invalid(Nondeterministic, "state %d has targets %d and %d on %#v", t.From, to, t.To, t.On)
			}
			continue
		}
		d.setTransition(t.From, t.On, t.To)
	}
	d.sortSymbols()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DFA) setTransition(from StateID, on nfa.Symbol, to StateID) {
	d.trans[transKey{from, on}] = to
	d.symbols[from] = append(d.symbols[from], on)
}

func (d *DFA) sortSymbols() {
	for _, syms := range d.symbols {
		slices.SortFunc(syms, compareSymbols)
	}
}

func compareSymbols(a, b nfa.Symbol) int {
	if a.Less(b) {
		return -1
	}
	if b.Less(a) {
		return 1
	}
	return 0
}

// Validate checks q0 ∈ Q, F ⊆ Q, that every transition endpoint is in Q and
// that no transition is keyed by epsilon or the empty-language symbol.
func (d *DFA) Validate() error {
	if !d.HasState(d.start) {
		return invalid(InvalidAutomaton, "start state %d is not in the state set", d.start)
	}
	for _, id := range d.Accepting() {
		if !d.HasState(id) {
			return invalid(InvalidAutomaton, "accepting state %d is not in the state set", id)
		}
	}
	for _, t := range d.Transitions() {
		if !t.On.IsLiteral() {
			return invalid(EpsilonTransition, "transition %s is not keyed by a literal", t)
		}
		if !d.HasState(t.From) || !d.HasState(t.To) {
			return invalid(InvalidAutomaton, "transition %s references an unknown state", t)
		}
	}
	return nil
}

// Start returns the start state
func (d *DFA) Start() StateID {
	return d.start
}

// HasState returns true if id is a state of the DFA
func (d *DFA) HasState(id StateID) bool {
	_, ok := d.index[id]
	return ok
}

// States returns the state IDs in ascending order.
func (d *DFA) States() []StateID {
	ids := slices.Clone(d.states)
	slices.Sort(ids)
	return ids
}

// NumStates returns the number of states
func (d *DFA) NumStates() int {
	return len(d.states)
}

// NumTransitions returns the number of defined (state, symbol) entries
func (d *DFA) NumTransitions() int {
	return len(d.trans)
}

// Accepting returns the accepting states in ascending order.
func (d *DFA) Accepting() []StateID {
	ids := slices.Collect(maps.Keys(d.accepting))
	slices.Sort(ids)
	return ids
}

// IsAccepting returns true if id is an accepting state
func (d *DFA) IsAccepting(id StateID) bool {
	_, ok := d.accepting[id]
	return ok
}

// Next returns δ(from, Literal(r)). ok is false when the transition is undefined.
func (d *DFA) Next(from StateID, r rune) (to StateID, ok bool) {
	to, ok = d.trans[transKey{from, nfa.Literal(r)}]
	return to, ok
}

// Symbols returns the symbols with a defined transition out of id, sorted.
// The returned slice is owned by the DFA and must not be modified.
func (d *DFA) Symbols(id StateID) []nfa.Symbol {
	return d.symbols[id]
}

// Transitions returns every entry of δ ordered by source state then symbol.
func (d *DFA) Transitions() []nfa.Transition {
	ts := make([]nfa.Transition, 0, len(d.trans))
	for k, to := range d.trans {
		ts = append(ts, nfa.Transition{From: k.from, On: k.on, To: to})
	}
	slices.SortFunc(ts, func(a, b nfa.Transition) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		return compareSymbols(a.On, b.On)
	})
	return ts
}

// Alphabet returns every symbol used by δ, sorted.
func (d *DFA) Alphabet() []nfa.Symbol {
	seen := make(map[nfa.Symbol]struct{})
	for k := range d.trans {
		seen[k.on] = struct{}{}
	}
	syms := slices.Collect(maps.Keys(seen))
	slices.SortFunc(syms, compareSymbols)
	return syms
}

// Accept reports whether word is in the language. It walks δ one rune at a
// time and rejects as soon as a transition is undefined.
func (d *DFA) Accept(word string) bool {
	cur := d.start
	for _, r := range word {
		next, ok := d.Next(cur, r)
		if !ok {
			return false
		}
		cur = next
	}
	return d.IsAccepting(cur)
}

// Minimize would merge equivalent states. It is not implemented and always
// returns ErrNotImplemented; the unminimized DFA is correct, only possibly
// larger than necessary.
func (d *DFA) Minimize() (*DFA, error) {
	return nil, ErrNotImplemented
}

// String returns a multi-line debug dump in the same layout as nfa.NFA.String.
func (d *DFA) String() string {
	var sb strings.Builder
	sb.WriteString("DFA {\n")
	fmt.Fprintf(&sb, "\tQ: %v,\n", d.States())
	sb.WriteString("\td: {\n")
	for _, t := range d.Transitions() {
		fmt.Fprintf(&sb, "\t\t%s,\n", t)
	}
	sb.WriteString("\t}\n")
	fmt.Fprintf(&sb, "\tq_0: %d,\n", d.start)
	fmt.Fprintf(&sb, "\tF: %v,\n", d.Accepting())
	sb.WriteString("}")
	return sb.String()
}
