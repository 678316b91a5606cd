package lazy

import (
	"errors"
	"testing"

	"github.com/coregx/powerset/nfa"
)

func TestNewCache(t *testing.T) {
	tests := []struct {
		name      string
		maxStates uint32
	}{
		{name: "small cache", maxStates: 10},
		{name: "medium cache", maxStates: 1000},
		{name: "large cache", maxStates: 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCache(tt.maxStates)
			if c.Size() != 0 {
				t.Errorf("NewCache.Size() = %d, want 0", c.Size())
			}
			if c.IsFull() {
				t.Error("NewCache should not be full")
			}
			if c.ClearCount() != 0 {
				t.Errorf("NewCache.ClearCount() = %d, want 0", c.ClearCount())
			}

			hits, misses, hitRate := c.Stats()
			if hits != 0 || misses != 0 || hitRate != 0 {
				t.Errorf("NewCache.Stats() = (%d, %d, %f), want (0, 0, 0)", hits, misses, hitRate)
			}
		})
	}
}

func TestCacheInsertAndGet(t *testing.T) {
	c := NewCache(100)

	nfaStates := []nfa.StateID{3, 1, 2}
	key := ComputeStateKey(nfaStates)

	state, err := c.Insert(key, nfaStates, true)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if state.ID() != StartState {
		t.Errorf("first state ID = %d, want %d", state.ID(), StartState)
	}
	if !state.IsMatch() {
		t.Error("IsMatch() = false, want true")
	}

	got, ok := c.Get(ComputeStateKey([]nfa.StateID{1, 2, 3}))
	if !ok || got != state {
		t.Fatalf("Get() = %v, %v; want inserted state", got, ok)
	}
	if c.State(state.ID()) != state {
		t.Error("State(id) did not return the inserted state")
	}
	if c.State(42) != nil {
		t.Error("State(42) should be nil")
	}

	again, err := c.Insert(key, nfaStates, true)
	if err != nil || again != state {
		t.Errorf("re-Insert = %v, %v; want existing state", again, err)
	}
	if c.Size() != 1 {
		t.Errorf("Size() = %d, want 1", c.Size())
	}

	hits, misses, _ := c.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (2, 1)", hits, misses)
	}
}

func TestCacheFull(t *testing.T) {
	c := NewCache(2)

	for i := 0; i < 2; i++ {
		set := []nfa.StateID{nfa.StateID(i)}
		if _, err := c.Insert(ComputeStateKey(set), set, false); err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
	}
	if !c.IsFull() {
		t.Fatal("cache should be full")
	}

	set := []nfa.StateID{7}
	_, err := c.Insert(ComputeStateKey(set), set, false)
	if !errors.Is(err, ErrCacheFull) {
		t.Fatalf("Insert into full cache: err = %v, want ErrCacheFull", err)
	}

	c.ClearKeepMemory()
	if c.Size() != 0 || c.ClearCount() != 1 {
		t.Errorf("after ClearKeepMemory: Size() = %d, ClearCount() = %d", c.Size(), c.ClearCount())
	}
	if _, misses, _ := c.Stats(); misses != 2 {
		t.Errorf("ClearKeepMemory reset stats: misses = %d, want 2", misses)
	}

	s, err := c.Insert(ComputeStateKey(set), set, false)
	if err != nil {
		t.Fatalf("Insert after clear failed: %v", err)
	}
	if s.ID() != StartState {
		t.Errorf("ID after clear = %d, want %d", s.ID(), StartState)
	}

	c.ResetClearCount()
	if c.ClearCount() != 0 {
		t.Errorf("ResetClearCount: ClearCount() = %d", c.ClearCount())
	}

	c.Clear()
	hits, misses, _ := c.Stats()
	if c.Size() != 0 || c.ClearCount() != 0 || hits != 0 || misses != 0 {
		t.Errorf("Clear() left size=%d clears=%d hits=%d misses=%d", c.Size(), c.ClearCount(), hits, misses)
	}
}

func TestComputeStateKey(t *testing.T) {
	a := ComputeStateKey([]nfa.StateID{5, 1, 3})
	b := ComputeStateKey([]nfa.StateID{1, 3, 5, 3})
	if a != b {
		t.Error("keys of equal sets differ")
	}
	if ComputeStateKey([]nfa.StateID{1, 3}) == a {
		t.Error("keys of distinct sets collide")
	}
	if ComputeStateKey([]nfa.StateID{256}) == ComputeStateKey([]nfa.StateID{1}) {
		t.Error("keys of {256} and {1} collide")
	}
	if ComputeStateKey(nil) != ComputeStateKey([]nfa.StateID{}) {
		t.Error("empty set keys differ")
	}
}

func TestState(t *testing.T) {
	states := []nfa.StateID{1, 2}
	s := NewState(4, states, false)
	states[0] = 9
	if s.NFAStates()[0] != 1 {
		t.Error("NewState aliases its NFA state slice")
	}

	if _, ok := s.Transition('a'); ok {
		t.Error("new state has a transition on 'a'")
	}
	s.AddTransition('a', 7)
	if next, ok := s.Transition('a'); !ok || next != 7 {
		t.Errorf("Transition('a') = %d, %v; want 7, true", next, ok)
	}
	if s.TransitionCount() != 1 {
		t.Errorf("TransitionCount() = %d, want 1", s.TransitionCount())
	}
	if got, want := s.String(), "DFAState(id=4, isMatch=false, transitions=1, nfaStates=[1 2])"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
