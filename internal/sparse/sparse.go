// Package sparse provides the visited-set used by epsilon-closure
// traversals.
//
// Callers number an automaton's states densely and store those indices. A
// sparse set gives O(1) insert and membership while iterating only the
// members that were actually inserted, and clears in O(1) between closures.
package sparse

import "slices"

// SparseSet is a set of uint32 values drawn from [0, capacity).
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // members in insertion order
}

// NewSparseSet creates a new sparse set holding values below capacity.
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, min(capacity, 64)),
	}
}

// Capacity returns the exclusive upper bound on storable values
func (s *SparseSet) Capacity() uint32 {
	//nolint:gosec // G115: sparse is allocated from a uint32 capacity
	return uint32(len(s.sparse))
}

// Insert adds value and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: dense never outgrows the uint32 capacity
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *SparseSet) Contains(value uint32) bool {
	if value >= s.Capacity() {
		return false
	}
	idx := s.sparse[value]
	return int(idx) < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// IsEmpty returns true if the set contains no elements
func (s *SparseSet) IsEmpty() bool {
	return len(s.dense) == 0
}

// Values returns the members in insertion order.
// The returned slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}

// Sorted returns a sorted copy of the members.
func (s *SparseSet) Sorted() []uint32 {
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}
