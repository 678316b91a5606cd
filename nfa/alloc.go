package nfa

import (
	"github.com/coregx/powerset/internal/conv"
)

// Allocator issues fresh state identifiers.
//
// Identifiers are handed out in increasing order and never reused, so two
// automata built from the same Allocator never share a state unless one was
// derived from the other (Reversed, Clone). Every constructor and combinator
// in this package draws from the Allocator its operands were built with; there
// is no package-level counter.
//
// An Allocator is not safe for concurrent use.
type Allocator struct {
	next StateID
}

// NewAllocator returns an Allocator whose first identifier is 0.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Next returns a single fresh identifier.
// Panics once every identifier below InvalidState has been issued.
func (a *Allocator) Next() StateID {
	if a.next == InvalidState {
		panic("nfa: state identifiers exhausted")
	}
	id := a.next
	a.next++
	return id
}

// NextN returns n fresh, consecutive identifiers.
func (a *Allocator) NextN(n int) []StateID {
	count := conv.IntToUint32(n)
	if uint64(a.next)+uint64(count) > uint64(InvalidState) {
		panic("nfa: state identifiers exhausted")
	}
	ids := make([]StateID, n)
	for i := range ids {
		ids[i] = a.next + StateID(i)
	}
	a.next += StateID(count)
	return ids
}

// Peek returns the identifier the next call to Next would return.
// Every identifier issued so far is strictly smaller.
func (a *Allocator) Peek() StateID {
	return a.next
}

// Reset rewinds the counter to 0.
//
// Only tests should call Reset, and only once every automaton built from this
// Allocator is dead: identifiers issued after a reset collide with the ones
// issued before it.
func (a *Allocator) Reset() {
	a.next = 0
}

// reserve makes sure id is never issued in the future.
func (a *Allocator) reserve(id StateID) {
	if id >= a.next {
		a.next = id + 1
	}
}
