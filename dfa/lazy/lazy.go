// Package lazy decides membership by subset construction done on demand.
//
// Where dfa.Build determinizes the whole NFA up front, which takes 2^n
// states for some n-state NFAs, a lazy DFA determinizes only the states an
// input actually visits and keeps them in a bounded cache:
//   - Fast matching: linear in the input once states are cached
//   - Bounded memory: at most Config.MaxStates states per cache
//   - Graceful degradation: a search that keeps overflowing its cache
//     finishes by simulating the NFA on state sets
//
// Example usage:
//
//	n := nfa.MustCompile("(a|b)*a(a|b)(a|b)(a|b)")
//	d, err := lazy.New(n, lazy.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	d.Accept("babbb") // true
package lazy

import (
	"slices"
	"sync"

	"github.com/coregx/powerset/nfa"
)

// DFA is a lazily determinized view of an NFA.
//
// The NFA and its precomputed closures are immutable; determinized states
// live in caches taken from a pool, so a DFA is safe for concurrent use.
type DFA struct {
	nfa    *nfa.NFA
	config Config

	// closures[q] is the sorted epsilon closure of NFA state q
	closures  map[nfa.StateID][]nfa.StateID
	accepting map[nfa.StateID]struct{}
	start     []nfa.StateID

	pool sync.Pool
}

// New prepares a lazy DFA for n. n is not modified and must not be
// modified while the DFA is in use.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if n == nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "nil NFA"}
	}
	if err := n.Validate(); err != nil {
		return nil, &DFAError{Kind: InvalidNFA, Message: "cannot determinize NFA", Cause: err}
	}

	d := &DFA{
		nfa:       n,
		config:    config,
		closures:  n.EpsilonClosures(),
		accepting: make(map[nfa.StateID]struct{}),
	}
	for _, q := range n.Accepting() {
		d.accepting[q] = struct{}{}
	}
	d.start = d.closures[n.Start()]
	d.pool.New = func() any {
		return NewCache(d.config.MaxStates)
	}
	return d, nil
}

// Config returns the configuration the DFA was created with.
func (d *DFA) Config() Config {
	return d.config
}

// NewCache returns an empty cache sized for d, for use with AcceptWith.
func (d *DFA) NewCache() *Cache {
	return NewCache(d.config.MaxStates)
}

// Accept reports whether word as a whole is in the NFA's language.
func (d *DFA) Accept(word string) bool {
	c := d.pool.Get().(*Cache)
	defer d.pool.Put(c)
	return d.AcceptWith(c, word)
}

// AcceptWith is Accept using the caller's cache, which keeps the states
// determinized by earlier calls. c must come from d.NewCache.
func (d *DFA) AcceptWith(c *Cache, word string) bool {
	cur, err := d.state(c, d.start)
	if err != nil {
		// full from earlier searches; an empty cache always has room
		c.ClearKeepMemory()
		if cur, err = d.state(c, d.start); err != nil {
			return d.simulate(d.start, word)
		}
	}
	c.ResetClearCount()

	for i, r := range word {
		next, ok := cur.Transition(r)
		if !ok {
			next, err = d.determinize(c, cur, r)
			if err != nil {
				c.fallbacks++
				return d.simulate(cur.NFAStates(), word[i:])
			}
		}
		if next == DeadState {
			return false
		}
		cur = c.State(next)
	}
	return cur.IsMatch()
}

// determinize computes and records the transition of cur on r. If the cache
// is full it is cleared first, invalidating every state but the returned
// target, whose ID stays valid until the next clear; cur is re-inserted.
func (d *DFA) determinize(c *Cache, cur *State, r rune) (StateID, error) {
	target := d.step(cur.NFAStates(), r)
	if len(target) == 0 {
		cur.AddTransition(r, DeadState)
		return DeadState, nil
	}

	key := ComputeStateKey(target)
	if next, ok := c.Get(key); ok {
		cur.AddTransition(r, next.ID())
		return next.ID(), nil
	}

	if c.IsFull() {
		if c.ClearCount() >= d.config.MaxCacheClears {
			return InvalidState, ErrCacheFull
		}
		from := cur.NFAStates()
		c.ClearKeepMemory()
		var err error
		if cur, err = d.state(c, from); err != nil {
			return InvalidState, err
		}
	}

	next, err := c.Insert(key, target, d.isMatch(target))
	if err != nil {
		return InvalidState, err
	}
	cur.AddTransition(r, next.ID())
	return next.ID(), nil
}

// state returns the cached state for the NFA state set, inserting it.
func (d *DFA) state(c *Cache, set []nfa.StateID) (*State, error) {
	key := ComputeStateKey(set)
	if s, ok := c.Get(key); ok {
		return s, nil
	}
	return c.Insert(key, set, d.isMatch(set))
}

// step returns the sorted epsilon-closed set reached from set on r.
func (d *DFA) step(set []nfa.StateID, r rune) []nfa.StateID {
	on := nfa.Literal(r)
	seen := make(map[nfa.StateID]struct{})
	var out []nfa.StateID
	for _, q := range set {
		for _, t := range d.nfa.Out(q) {
			if t.On != on {
				continue
			}
			for _, p := range d.closures[t.To] {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					out = append(out, p)
				}
			}
		}
	}
	slices.Sort(out)
	return out
}

// simulate finishes a search from set over rest without caching.
func (d *DFA) simulate(set []nfa.StateID, rest string) bool {
	for _, r := range rest {
		if set = d.step(set, r); len(set) == 0 {
			return false
		}
	}
	return d.isMatch(set)
}

func (d *DFA) isMatch(set []nfa.StateID) bool {
	for _, q := range set {
		if _, ok := d.accepting[q]; ok {
			return true
		}
	}
	return false
}
