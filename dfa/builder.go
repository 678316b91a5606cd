package dfa

import (
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/powerset/nfa"
)

// Build converts n into an equivalent DFA by subset construction with the
// default (unlimited) configuration. n is not modified.
func Build(n *nfa.NFA) (*DFA, error) {
	return BuildWithConfig(n, DefaultConfig())
}

// BuildWithConfig converts n into an equivalent DFA by subset construction.
//
// Each DFA state stands for an epsilon-closed set of NFA states. States are
// discovered breadth-first from the closure of n's start; a DFA state is
// accepting iff its set meets n's accepting set. DFA state ids are issued
// from 0 in discovery order.
func BuildWithConfig(n *nfa.NFA, cfg Config) (*DFA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, invalid(InvalidNFA, "nil NFA")
	}
	if err := n.Validate(); err != nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "cannot determinize NFA", Cause: err}
	}
	return newBuilder(n, cfg).build()
}

type successor struct {
	on  nfa.Symbol
	set *bitset.BitSet
}

// builder holds the transient state of one subset construction.
type builder struct {
	nfa   *nfa.NFA
	cfg   Config
	space *stateSpace
	alloc *nfa.Allocator

	accepting *bitset.BitSet

	// successors[i] lists, per literal symbol, the closure of every state
	// reachable on that symbol from the NFA state with dense index i.
	successors [][]successor

	// Bidirectional state-set ↔ DFA state index.
	byKey map[string]StateID
	byID  map[StateID]*bitset.BitSet

	queue []StateID
	dfa   *DFA
}

func newBuilder(n *nfa.NFA, cfg Config) *builder {
	b := &builder{
		nfa:   n,
		cfg:   cfg,
		space: newStateSpace(n),
		alloc: nfa.NewAllocator(),
		byKey: make(map[string]StateID),
		byID:  make(map[StateID]*bitset.BitSet),
		dfa:   newDFA(),
	}
	b.accepting = b.space.setOf(n.Accepting())
	return b
}

// precompute fills the single-state successor map.
func (b *builder) precompute() map[nfa.StateID]*bitset.BitSet {
	closures := make(map[nfa.StateID]*bitset.BitSet, len(b.space.ids))
	for id, closure := range b.nfa.EpsilonClosures() {
		closures[id] = b.space.setOf(closure)
	}

	b.successors = make([][]successor, len(b.space.ids))
	for i, id := range b.space.ids {
		bySym := make(map[nfa.Symbol]*bitset.BitSet)
		var order []nfa.Symbol
		for _, t := range b.nfa.Out(id) {
			if !t.On.IsLiteral() {
				continue
			}
			set, ok := bySym[t.On]
			if !ok {
				set = b.space.newSet()
				bySym[t.On] = set
				order = append(order, t.On)
			}
			set.InPlaceUnion(closures[t.To])
		}
		slices.SortFunc(order, compareSymbols)
		succ := make([]successor, len(order))
		for j, sym := range order {
			succ[j] = successor{on: sym, set: bySym[sym]}
		}
		b.successors[i] = succ
	}
	return closures
}

// register returns the DFA state for set, minting and enqueueing a new one
// the first time set is seen.
func (b *builder) register(set *bitset.BitSet) (StateID, error) {
	key := setKey(set)
	if id, ok := b.byKey[key]; ok {
		return id, nil
	}
	if b.cfg.MaxStates > 0 && len(b.byID) >= b.cfg.MaxStates {
		return nfa.InvalidState, &DFAError{
			Kind:    StateLimitExceeded,
			Message: fmt.Sprintf("subset construction needs more than %d states", b.cfg.MaxStates),
		}
	}

	id := b.alloc.Next()
	b.byKey[key] = id
	b.byID[id] = set
	b.dfa.addState(id)
	if set.IntersectionCardinality(b.accepting) > 0 {
		b.dfa.accepting[id] = struct{}{}
	}
	b.queue = append(b.queue, id)
	return id, nil
}

func (b *builder) build() (*DFA, error) {
	closures := b.precompute()

	start, err := b.register(closures[b.nfa.Start()])
	if err != nil {
		return nil, err
	}
	b.dfa.start = start

	for len(b.queue) > 0 {
		from := b.queue[0]
		b.queue = b.queue[1:]
		set := b.byID[from]

		// multi-state successor map for this set
		targets := make(map[nfa.Symbol]*bitset.BitSet)
		var order []nfa.Symbol
		for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
			for _, s := range b.successors[i] {
				t, seen := targets[s.on]
				if !seen {
					t = b.space.newSet()
					targets[s.on] = t
					order = append(order, s.on)
				}
				t.InPlaceUnion(s.set)
			}
		}
		slices.SortFunc(order, compareSymbols)

		for _, sym := range order {
			target := targets[sym]
			if target.None() {
				continue
			}
			to, err := b.register(target)
			if err != nil {
				return nil, err
			}
			b.dfa.setTransition(from, sym, to)
		}
	}

	// symbols were appended in sorted order per state
	return b.dfa, nil
}
