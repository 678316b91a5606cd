package powerset

import (
	"github.com/coregx/powerset/dfa"
	"github.com/coregx/powerset/literal"
	"github.com/coregx/powerset/nfa"
)

// Config controls compilation.
//
// Example:
//
//	config := powerset.DefaultConfig()
//	config.MaxDFAStates = 50000
//	re, err := powerset.CompileWithConfig("(a|b)*abb", config)
type Config struct {
	// MaxDFAStates caps the states of each DFA built by subset construction.
	// 0 means unlimited. Exceeding the cap fails compilation with an error
	// matching dfa.ErrStateLimitExceeded.
	// Default: 0
	MaxDFAStates int

	// EnablePrefilter enables literal-based prefiltering of searches.
	// Default: true
	EnablePrefilter bool

	// MinLiteralLen is the shortest word for which the extracted language is
	// searched for literally. Shorter languages fall back to the first-rune
	// prefilter.
	// Default: 1
	MinLiteralLen int

	// MaxLiterals limits how many words of a finite language are extracted.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen limits the length in runes of each extracted word.
	// Default: 64
	MaxLiteralLen int

	// MaxRecursionDepth limits group nesting in patterns.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultConfig returns the default configuration for compilation.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:      dfa.DefaultConfig().MaxStates,
		EnablePrefilter:   true,
		MinLiteralLen:     1,
		MaxLiterals:       literal.DefaultConfig().MaxLiterals,
		MaxLiteralLen:     literal.DefaultConfig().MaxLiteralLen,
		MaxRecursionDepth: nfa.DefaultCompilerConfig().MaxRecursionDepth,
	}
}

// Validate checks if the configuration is valid.
// Returns a *ConfigError naming the first field out of range.
//
// Valid ranges:
//   - MaxDFAStates: 0 (unlimited) to 10,000,000
//   - MinLiteralLen: 1 to 64 (when EnablePrefilter)
//   - MaxLiterals: 1 to 1,000 (when EnablePrefilter)
//   - MaxLiteralLen: 1 to 1,000 (when EnablePrefilter)
//   - MaxRecursionDepth: 1 to 1,000
func (c Config) Validate() error {
	if c.MaxDFAStates < 0 || c.MaxDFAStates > 10_000_000 {
		return &ConfigError{
			Field:   "MaxDFAStates",
			Message: "must be between 0 and 10,000,000",
		}
	}

	if c.EnablePrefilter {
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 1_000 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 1,000",
			}
		}
	}

	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 1_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 1 and 1,000",
		}
	}

	return nil
}

// WithMaxDFAStates returns a copy of c with MaxDFAStates set.
func (c Config) WithMaxDFAStates(n int) Config {
	c.MaxDFAStates = n
	return c
}

// WithPrefilter returns a copy of c with EnablePrefilter set.
func (c Config) WithPrefilter(enabled bool) Config {
	c.EnablePrefilter = enabled
	return c
}

// WithMaxLiterals returns a copy of c with MaxLiterals set.
func (c Config) WithMaxLiterals(n int) Config {
	c.MaxLiterals = n
	return c
}

// WithMinLiteralLen returns a copy of c with MinLiteralLen set.
func (c Config) WithMinLiteralLen(n int) Config {
	c.MinLiteralLen = n
	return c
}

func (c Config) dfaConfig() dfa.Config {
	return dfa.DefaultConfig().WithMaxStates(c.MaxDFAStates)
}

func (c Config) extractorConfig() literal.ExtractorConfig {
	return literal.ExtractorConfig{
		MaxLiterals:   c.MaxLiterals,
		MaxLiteralLen: c.MaxLiteralLen,
	}
}

func (c Config) compilerConfig() nfa.CompilerConfig {
	return nfa.CompilerConfig{MaxRecursionDepth: c.MaxRecursionDepth}
}
