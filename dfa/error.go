package dfa

import "fmt"

// Error types for DFA construction and use

// ErrStateLimitExceeded indicates that subset construction would create more
// DFA states than Config.MaxStates allows.
//
// Without a limit the construction is total, but the state count can be
// exponential in the NFA size (see nfa.NthFromEnd).
var ErrStateLimitExceeded = &DFAError{
	Kind:    StateLimitExceeded,
	Message: "DFA state limit exceeded",
}

// ErrInvalidConfig indicates that the provided configuration is invalid.
var ErrInvalidConfig = &DFAError{
	Kind:    InvalidConfig,
	Message: "invalid DFA configuration",
}

// ErrNotImplemented is returned by operations that are deliberately absent,
// currently only Minimize.
var ErrNotImplemented = &DFAError{
	Kind:    NotImplemented,
	Message: "not implemented",
}

// ErrorKind classifies DFA errors into categories
type ErrorKind uint8

const (
	// InvalidConfig indicates configuration validation failed
	InvalidConfig ErrorKind = iota

	// StateLimitExceeded indicates too many states were created
	StateLimitExceeded

	// InvalidNFA indicates the input NFA failed validation
	InvalidNFA

	// InvalidAutomaton indicates a raw DFA violates q0 ∈ Q, F ⊆ Q, or has a
	// transition endpoint outside Q
	InvalidAutomaton

	// EpsilonTransition indicates a DFA transition keyed by epsilon
	EpsilonTransition

	// Nondeterministic indicates two targets for one (state, symbol) pair
	Nondeterministic

	// NotImplemented indicates a stub operation
	NotImplemented
)

// String returns a human-readable error kind name
func (k ErrorKind) String() string {
	switch k {
	case InvalidConfig:
		return "InvalidConfig"
	case StateLimitExceeded:
		return "StateLimitExceeded"
	case InvalidNFA:
		return "InvalidNFA"
	case InvalidAutomaton:
		return "InvalidAutomaton"
	case EpsilonTransition:
		return "EpsilonTransition"
	case Nondeterministic:
		return "Nondeterministic"
	case NotImplemented:
		return "NotImplemented"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// DFAError represents an error that occurred during DFA operations
type DFAError struct {
	Kind    ErrorKind
	Message string
	Cause   error // Optional underlying error
}

// Error implements the error interface
func (e *DFAError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error (for errors.Is/As)
func (e *DFAError) Unwrap() error {
	return e.Cause
}

// Is implements error comparison for errors.Is
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalid(kind ErrorKind, format string, args ...any) error {
	return &DFAError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
