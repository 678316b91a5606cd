package lazy

import (
	"github.com/coregx/powerset/internal/conv"
	"github.com/coregx/powerset/nfa"
)

// Cache stores the DFA states determinized by searches, with bounded memory.
//
// The cache maps StateKey (NFA state set) to State, and StateID to State.
// When the cache reaches maxStates it is cleared entirely and rebuilt on
// demand; after too many clears in one search the search falls back to the
// NFA.
//
// A Cache is not safe for concurrent use. DFA hands one cache to each
// search from a pool.
type Cache struct {
	states map[StateKey]*State
	byID   []*State

	maxStates uint32

	// clearCount is how many times the cache has been cleared during the
	// current search.
	clearCount int

	// Statistics for cache performance tuning
	hits      uint64
	misses    uint64
	fallbacks uint64
}

// NewCache creates a new state cache with the given maximum capacity
func NewCache(maxStates uint32) *Cache {
	return &Cache{
		states:    make(map[StateKey]*State),
		maxStates: maxStates,
	}
}

// Get retrieves a state by its key.
// Returns (state, true) if found, (nil, false) if not in cache.
func (c *Cache) Get(key StateKey) (*State, bool) {
	state, ok := c.states[key]
	if ok {
		c.hits++
	}
	return state, ok
}

// State returns the state with the given ID, or nil if the ID is not live
// in the current cache generation.
func (c *Cache) State(id StateID) *State {
	if int(id) >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// Insert adds a state for the NFA state set nfaStates and returns it.
// Returns (nil, ErrCacheFull) if the cache is at capacity.
func (c *Cache) Insert(key StateKey, nfaStates []nfa.StateID, isMatch bool) (*State, error) {
	if existing, ok := c.states[key]; ok {
		c.hits++
		return existing, nil
	}
	if c.IsFull() {
		return nil, ErrCacheFull
	}

	state := NewState(StateID(len(c.byID)), nfaStates, isMatch)
	c.states[key] = state
	c.byID = append(c.byID, state)
	c.misses++
	return state, nil
}

// Size returns the current number of states in the cache
func (c *Cache) Size() int {
	return len(c.byID)
}

// IsFull returns true if the cache has reached its maximum capacity
func (c *Cache) IsFull() bool {
	return conv.IntToUint32(len(c.byID)) >= c.maxStates
}

// Stats returns cache hit/miss statistics.
// Returns (hits, misses, hitRate).
//
// A hit is a state found already determinized; a miss is a state that had
// to be built.
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return hits, misses, hitRate
}

// Fallbacks returns how many searches finished on the NFA because they
// exhausted their clear budget.
func (c *Cache) Fallbacks() uint64 {
	return c.fallbacks
}

// ResetStats resets hit/miss counters (useful for benchmarking)
func (c *Cache) ResetStats() {
	c.hits = 0
	c.misses = 0
	c.fallbacks = 0
}

// Clear removes all states from the cache and resets statistics.
func (c *Cache) Clear() {
	c.ClearKeepMemory()
	c.clearCount = 0
	c.ResetStats()
}

// ClearKeepMemory clears all states from the cache but keeps the allocated
// memory for reuse and increments the clear counter. Statistics accumulate
// across clears.
//
// After calling this, all previously returned *State pointers and StateIDs
// are stale and must not be used.
func (c *Cache) ClearKeepMemory() {
	clear(c.states)
	clear(c.byID)
	c.byID = c.byID[:0]
	c.clearCount++
}

// ClearCount returns how many times the cache has been cleared.
// Used to check against Config.MaxCacheClears.
func (c *Cache) ClearCount() int {
	return c.clearCount
}

// ResetClearCount resets the clear counter to zero.
// Called at the start of each new search to give it a fresh budget.
func (c *Cache) ResetClearCount() {
	c.clearCount = 0
}
