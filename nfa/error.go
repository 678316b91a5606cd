// Package nfa provides Thompson-construction NFAs over single-codepoint
// symbols, the pattern compiler that builds them, and a guarded
// depth-first simulator for whole-word acceptance and leftmost search.
//
// NFAs are built with an accumulator pattern: a combinator mutates its
// receiver in place and absorbs (consumes) its operand. State identifiers
// come from an explicit Allocator that is threaded through construction.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrSyntax matches every SyntaxError via errors.Is
	ErrSyntax = errors.New("invalid pattern syntax")

	// ErrConstruction matches every ConstructionError via errors.Is
	ErrConstruction = errors.New("invalid NFA construction")
)

// SyntaxKind classifies malformed patterns.
type SyntaxKind uint8

const (
	// UnbalancedParen is an unmatched '(' or ')'.
	UnbalancedParen SyntaxKind = iota

	// StackedQuantifier is a quantifier applied to a quantifier, e.g. "a**".
	StackedQuantifier

	// MissingOperand is a quantifier with nothing to its left, e.g. "*a".
	MissingOperand

	// MalformedAtom is an atom that is neither a literal nor a group.
	MalformedAtom

	// NestingTooDeep is a group nested beyond CompilerConfig.MaxRecursionDepth.
	NestingTooDeep
)

// String returns a human-readable representation of the SyntaxKind
func (k SyntaxKind) String() string {
	switch k {
	case UnbalancedParen:
		return "UnbalancedParen"
	case StackedQuantifier:
		return "StackedQuantifier"
	case MissingOperand:
		return "MissingOperand"
	case MalformedAtom:
		return "MalformedAtom"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// SyntaxError reports a malformed pattern. It is the only error a caller
// can trigger through Compile with user input.
type SyntaxError struct {
	Pattern string
	Pos     int // rune offset into Pattern
	Kind    SyntaxKind
	Message string
}

// Error implements the error interface
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error in pattern %q at position %d: %s", e.Pattern, e.Pos, e.Message)
}

// Is reports whether target is ErrSyntax or a SyntaxError of the same kind
func (e *SyntaxError) Is(target error) bool {
	if target == ErrSyntax {
		return true
	}
	t, ok := target.(*SyntaxError)
	return ok && t.Kind == e.Kind
}

// ConstructionKind names the automaton invariant a construction violated.
type ConstructionKind uint8

const (
	// StartNotInStates means q0 ∉ Q.
	StartNotInStates ConstructionKind = iota

	// AcceptingNotSubset means F ⊄ Q.
	AcceptingNotSubset

	// UnknownTransitionState means a transition endpoint is not in Q.
	UnknownTransitionState

	// DuplicateState means a state identifier occurs twice.
	DuplicateState

	// Consumed means an NFA was used after a combinator absorbed it.
	Consumed

	// AllocatorMismatch means two operands were built from different allocators,
	// or no allocator was given.
	AllocatorMismatch

	// ReservedState means a caller supplied a state id above MaxStateID.
	ReservedState

	// InvalidParameter means a generator was asked for an impossible size.
	InvalidParameter
)

// String returns a human-readable representation of the ConstructionKind
func (k ConstructionKind) String() string {
	switch k {
	case StartNotInStates:
		return "StartNotInStates"
	case AcceptingNotSubset:
		return "AcceptingNotSubset"
	case UnknownTransitionState:
		return "UnknownTransitionState"
	case DuplicateState:
		return "DuplicateState"
	case Consumed:
		return "Consumed"
	case AllocatorMismatch:
		return "AllocatorMismatch"
	case ReservedState:
		return "ReservedState"
	case InvalidParameter:
		return "InvalidParameter"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// ConstructionError reports a violated NFA invariant. It indicates a bug in
// the code composing automata, never a bad pattern.
type ConstructionError struct {
	Kind    ConstructionKind
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *ConstructionError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA construction error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA construction error: %s", e.Message)
}

// Is reports whether target is ErrConstruction or a ConstructionError of the same kind
func (e *ConstructionError) Is(target error) bool {
	if target == ErrConstruction {
		return true
	}
	t, ok := target.(*ConstructionError)
	return ok && t.Kind == e.Kind
}

func constructionError(kind ConstructionKind, id StateID, format string, args ...any) error {
	return &ConstructionError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		StateID: id,
	}
}
