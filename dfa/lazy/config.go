package lazy

// Config configures the behavior of the Lazy DFA engine.
//
// The configuration trades memory for speed: a larger cache keeps more
// determinized states alive between steps of a search.
type Config struct {
	// MaxStates is the maximum number of DFA states one cache holds.
	// When it is reached the cache is cleared and determinization continues
	// from the current state.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Simple patterns: 100-1,000 states sufficient
	//   - Pathological patterns (n-th symbol from the end): 2^n states
	//     would be needed for a warm cache
	MaxStates uint32

	// MaxCacheClears is how many times one search may clear a full cache
	// before it gives up on determinization and finishes by simulating the
	// NFA directly.
	//
	// Default: 5
	MaxCacheClears int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates:      10_000,
		MaxCacheClears: 5,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c *Config) Validate() error {
	if c.MaxStates < 2 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxStates must be >= 2",
		}
	}

	if c.MaxCacheClears < 0 {
		return &DFAError{
			Kind:    InvalidConfig,
			Message: "MaxCacheClears must be >= 0",
		}
	}

	return nil
}

// WithMaxStates returns a new config with the specified max states
func (c Config) WithMaxStates(maxStates uint32) Config {
	c.MaxStates = maxStates
	return c
}

// WithMaxCacheClears returns a new config with the specified clear budget
func (c Config) WithMaxCacheClears(n int) Config {
	c.MaxCacheClears = n
	return c
}
