package nfa

import (
	"github.com/coregx/powerset/internal/conv"
	"github.com/coregx/powerset/internal/sparse"
)

// EpsilonClosure returns every state reachable from id using only epsilon
// edges, id included, in ascending order. Returns nil if id is not a state.
//
// The traversal keeps a visited set, so epsilon cycles terminate.
func (n *NFA) EpsilonClosure(id StateID) []StateID {
	if !n.hasState(id) {
		return nil
	}
	c := n.newCloser()
	c.add(id)
	return c.sorted()
}

// EpsilonClosures computes the closure of every state in one pass over a
// shared visited set. The map is keyed by state; values are ascending.
func (n *NFA) EpsilonClosures() map[StateID][]StateID {
	c := n.newCloser()
	all := make(map[StateID][]StateID, len(n.states))
	for _, id := range n.states {
		c.reset()
		c.add(id)
		all[id] = c.sorted()
	}
	return all
}

// closer accumulates epsilon closures into a reusable sparse set. States
// are numbered densely in ascending id order, so the set is sized by the
// number of states rather than by the largest id.
type closer struct {
	n     *NFA
	ids   []StateID // dense index -> state, ascending
	dense map[StateID]uint32
	set   *sparse.SparseSet
	stack []StateID
}

func (n *NFA) newCloser() *closer {
	ids := n.States()
	dense := make(map[StateID]uint32, len(ids))
	for i, id := range ids {
		dense[id] = conv.IntToUint32(i)
	}
	return &closer{
		n:     n,
		ids:   ids,
		dense: dense,
		set:   sparse.NewSparseSet(conv.IntToUint32(len(ids))),
	}
}

func (c *closer) reset() {
	c.set.Clear()
}

// add inserts id and everything epsilon-reachable from it.
func (c *closer) add(id StateID) {
	if !c.set.Insert(c.dense[id]) {
		return
	}
	c.stack = append(c.stack[:0], id)
	for len(c.stack) > 0 {
		top := c.stack[len(c.stack)-1]
		c.stack = c.stack[:len(c.stack)-1]
		for _, t := range c.n.out[top] {
			if t.On.IsEpsilon() && c.set.Insert(c.dense[t.To]) {
				c.stack = append(c.stack, t.To)
			}
		}
	}
}

func (c *closer) sorted() []StateID {
	vals := c.set.Sorted()
	ids := make([]StateID, len(vals))
	for i, v := range vals {
		ids[i] = c.ids[v]
	}
	return ids
}
