package powerset

import (
	"fmt"
)

// CompileError wraps a pattern compilation failure with its pattern.
//
// The wrapped error is an *nfa.SyntaxError for malformed patterns and a
// *dfa.DFAError when subset construction fails, so errors.Is and errors.As
// reach both through Unwrap.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface
func (e *CompileError) Error() string {
	return fmt.Sprintf("powerset: compile %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "powerset: invalid config: " + e.Field + ": " + e.Message
}
