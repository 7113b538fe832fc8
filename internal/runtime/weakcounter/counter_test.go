package weakcounter

import (
	"testing"
	"unsafe"
)

// TestCounterLayout pins the layout contract: referent slot first, then
// the exclusion flag at one pointer width. The two fields keep the same
// conceptual roles, in the same order, as the C++ runtime's
// trailing-memory layout.
func TestCounterLayout(t *testing.T) {
	var c Counter[int]

	referredOffset := unsafe.Offsetof(c.referred)
	lockOffset := unsafe.Offsetof(c.lock)
	ptrWidth := unsafe.Sizeof(uintptr(0))

	if referredOffset != 0 {
		t.Errorf("referred offset = %d, want 0", referredOffset)
	}
	if lockOffset != ptrWidth {
		t.Errorf("lock offset = %d, want %d (one pointer width)", lockOffset, ptrWidth)
	}

	t.Logf("layout: referred@%d, lock@%d (pointer width %d)", referredOffset, lockOffset, ptrWidth)
}

// TestCounterNew verifies that a fresh cell is bound to its referent.
func TestCounterNew(t *testing.T) {
	obj := new(int)
	*obj = 42

	c := New(obj)
	if c == nil {
		t.Fatal("New() returned nil")
	}

	got := c.Get()
	if got != obj {
		t.Errorf("Get() = %p, want the referent %p", got, obj)
	}

	t.Logf("fresh counter materializes its referent")
}

// TestCounterClear verifies monotonic invalidation: after Clear, every
// Get returns nil, indefinitely.
func TestCounterClear(t *testing.T) {
	obj := new(string)
	c := New(obj)

	c.Clear()

	for i := 0; i < 100; i++ {
		if got := c.Get(); got != nil {
			t.Fatalf("Get() after Clear() = %p, want nil (iteration %d)", got, i)
		}
	}

	t.Logf("cleared counter stays nil")
}

// TestCounterClearIdempotent verifies that a second Clear is a safe
// no-op: nil written over nil.
func TestCounterClearIdempotent(t *testing.T) {
	c := New(new(int))

	c.Clear()
	c.Clear()
	c.Clear()

	if got := c.Get(); got != nil {
		t.Errorf("Get() after repeated Clear() = %p, want nil", got)
	}

	t.Logf("repeated Clear() is a no-op")
}

// TestCounterIndependentCells verifies that clearing one cell never
// affects another: counters are strictly per-referent.
func TestCounterIndependentCells(t *testing.T) {
	a, b := new(int), new(int)
	ca, cb := New(a), New(b)

	ca.Clear()

	if got := ca.Get(); got != nil {
		t.Errorf("cleared counter Get() = %p, want nil", got)
	}
	if got := cb.Get(); got != b {
		t.Errorf("untouched counter Get() = %p, want %p", got, b)
	}

	t.Logf("cells are independent")
}
