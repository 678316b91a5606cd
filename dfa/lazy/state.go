package lazy

import (
	"encoding/binary"
	"fmt"
	"slices"

	"github.com/coregx/powerset/nfa"
)

// StateID identifies a DFA state within one cache generation.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// DeadState is the empty set of NFA states. Once in it, no suffix of
	// the input can lead to acceptance.
	DeadState StateID = 0xFFFFFFFE

	// StartState is always state ID 0 (the initial state)
	StartState StateID = 0
)

// State is a determinized DFA state: an epsilon-closed set of NFA states
// plus the transitions discovered from it so far.
type State struct {
	id StateID

	// transitions maps input rune to next state ID; filled on demand
	transitions map[rune]StateID

	isMatch bool

	// nfaStates is the sorted NFA state set this state stands for
	nfaStates []nfa.StateID
}

// NewState creates a new DFA state with the given ID and NFA state set
func NewState(id StateID, nfaStates []nfa.StateID, isMatch bool) *State {
	return &State{
		id:          id,
		transitions: make(map[rune]StateID, 4),
		isMatch:     isMatch,
		nfaStates:   slices.Clone(nfaStates),
	}
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if this is an accepting state
func (s *State) IsMatch() bool {
	return s.isMatch
}

// Transition returns the next state for the given input rune.
// Returns (InvalidState, false) if the transition is not yet known.
func (s *State) Transition(r rune) (StateID, bool) {
	next, ok := s.transitions[r]
	if !ok {
		return InvalidState, false
	}
	return next, true
}

// AddTransition records the transition on r. Overwrites any existing one.
func (s *State) AddTransition(r rune, next StateID) {
	s.transitions[r] = next
}

// NFAStates returns the NFA states represented by this DFA state
func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

// TransitionCount returns the number of transitions from this state
func (s *State) TransitionCount() int {
	return len(s.transitions)
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, transitions=%d, nfaStates=%v)",
		s.id, s.isMatch, len(s.transitions), s.nfaStates)
}

// StateKey identifies a DFA state by its NFA state set.
type StateKey string

// ComputeStateKey returns the canonical key of a set of NFA states: the same
// set gives the same key whatever order its members are listed in, and
// distinct sets never share a key.
func ComputeStateKey(nfaStates []nfa.StateID) StateKey {
	sorted := slices.Clone(nfaStates)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	buf := make([]byte, 0, 4*len(sorted))
	for _, sid := range sorted {
		buf = binary.LittleEndian.AppendUint32(buf, uint32(sid))
	}
	return StateKey(buf)
}
