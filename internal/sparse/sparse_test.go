package sparse

import (
	"testing"
)

func TestSparseSet_Basic(t *testing.T) {
	s := NewSparseSet(100)

	// Empty set
	if !s.IsEmpty() {
		t.Error("new set should be empty")
	}
	if s.Contains(0) {
		t.Error("empty set should not contain 0")
	}

	// Insert and contain
	if !s.Insert(5) {
		t.Error("first insert should return true")
	}
	if !s.Contains(5) {
		t.Error("set should contain 5 after insert")
	}
	if s.Insert(5) {
		t.Error("duplicate insert should return false")
	}
	if s.Len() != 1 {
		t.Errorf("len should be 1, got %d", s.Len())
	}

	s.Insert(10)
	s.Insert(3)
	s.Insert(7)
	if s.Len() != 4 {
		t.Errorf("len should be 4, got %d", s.Len())
	}

	s.Clear()
	if !s.IsEmpty() {
		t.Error("set should be empty after clear")
	}
	if s.Contains(5) {
		t.Error("cleared set should not contain 5")
	}
}

func TestSparseSet_InsertionOrder(t *testing.T) {
	s := NewSparseSet(100)
	for _, v := range []uint32{5, 2, 8, 1} {
		s.Insert(v)
	}

	expected := []uint32{5, 2, 8, 1}
	values := s.Values()
	if len(values) != len(expected) {
		t.Fatalf("expected %d values, got %d", len(expected), len(values))
	}
	for i, v := range expected {
		if values[i] != v {
			t.Errorf("values[%d] = %d, want %d", i, values[i], v)
		}
	}

	sorted := s.Sorted()
	want := []uint32{1, 2, 5, 8}
	for i, v := range want {
		if sorted[i] != v {
			t.Errorf("sorted[%d] = %d, want %d", i, sorted[i], v)
		}
	}
	// Sorted must not reorder the set itself
	if s.Values()[0] != 5 {
		t.Error("Sorted modified insertion order")
	}
}

func TestSparseSet_ContainsOutOfBounds(t *testing.T) {
	s := NewSparseSet(4)
	s.Insert(3)
	if s.Contains(4) || s.Contains(1000) {
		t.Error("values beyond capacity must not be members")
	}
}

func TestSparseSet_StaleSparseEntries(t *testing.T) {
	// After Clear the sparse array still holds old indices; membership
	// must be decided by the dense side.
	s := NewSparseSet(10)
	s.Insert(7)
	s.Insert(2)
	s.Clear()
	s.Insert(2)
	if s.Contains(7) {
		t.Error("stale entry for 7 reported as member")
	}
	if !s.Contains(2) {
		t.Error("2 should be a member")
	}
}

func BenchmarkSparseSet_Insert(b *testing.B) {
	s := NewSparseSet(1024)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		//nolint:gosec // G115: i%1024 fits in uint32
		s.Insert(uint32(i % 1024))
		if s.Len() == 1024 {
			s.Clear()
		}
	}
}

func BenchmarkSparseSet_Contains(b *testing.B) {
	s := NewSparseSet(1024)
	for i := uint32(0); i < 1024; i += 2 {
		s.Insert(i)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		//nolint:gosec // G115: i%1024 fits in uint32
		_ = s.Contains(uint32(i % 1024))
	}
}
