package dfa

// Config configures subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states construction may create.
	// Construction fails with ErrStateLimitExceeded once it would exceed it.
	//
	// Default: 0 (unlimited). Subset construction is then total over every
	// valid NFA, at the price of up to 2^|Q| states for pathological inputs.
	MaxStates int
}

// DefaultConfig returns a configuration with no state limit.
func DefaultConfig() Config {
	return Config{
		MaxStates: 0,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.MaxStates < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 0",
		}
	}
	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}
