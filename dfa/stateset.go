package dfa

import (
	"encoding/binary"

	"github.com/bits-and-blooms/bitset"

	"github.com/coregx/powerset/nfa"
)

// stateSpace numbers the states of one NFA densely so that sets of them can
// be bit vectors. It lives only as long as one subset construction.
type stateSpace struct {
	ids   []nfa.StateID // dense index -> NFA state
	dense map[nfa.StateID]uint
}

func newStateSpace(n *nfa.NFA) *stateSpace {
	ids := n.States()
	dense := make(map[nfa.StateID]uint, len(ids))
	for i, id := range ids {
		dense[id] = uint(i)
	}
	return &stateSpace{ids: ids, dense: dense}
}

func (s *stateSpace) newSet() *bitset.BitSet {
	return bitset.New(uint(len(s.ids)))
}

// setOf returns the set holding exactly ids.
func (s *stateSpace) setOf(ids []nfa.StateID) *bitset.BitSet {
	b := s.newSet()
	for _, id := range ids {
		b.Set(s.dense[id])
	}
	return b
}

// setKey encodes b canonically: equal sets give equal keys regardless of
// the order their members were added in.
func setKey(b *bitset.BitSet) string {
	words := b.Words()
	for len(words) > 0 && words[len(words)-1] == 0 {
		words = words[:len(words)-1]
	}
	buf := make([]byte, 0, 8*len(words))
	for _, w := range words {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	return string(buf)
}
