package foreign

import (
	"sync"
	"testing"

	"github.com/molexx/kotlin-native/internal/runtime/heap"
)

// TestRegistryLifecycle verifies the bind → resolve → invalidate cycle
// of the in-process bridge.
func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()
	const handle = Handle(0x1001)
	wrapper := heap.NewForeignObject(uintptr(handle))

	r.Bind(handle, wrapper)

	ref := r.NewWeakReference(handle)
	if ref.Handle() != handle {
		t.Errorf("Handle() = %#x, want %#x", uintptr(ref.Handle()), uintptr(handle))
	}
	if got := ref.Get(); got != wrapper {
		t.Errorf("Get() = %p, want the bound wrapper %p", got, wrapper)
	}

	r.Invalidate(handle)
	if got := ref.Get(); got != nil {
		t.Errorf("Get() after Invalidate() = %p, want nil", got)
	}

	t.Logf("handle %#x: bound, resolved, invalidated", uintptr(handle))
}

// TestRegistryInvalidateIdempotent verifies that the foreign runtime
// may report a death more than once.
func TestRegistryInvalidateIdempotent(t *testing.T) {
	r := NewRegistry()
	const handle = Handle(0x2002)

	r.Bind(handle, heap.NewForeignObject(uintptr(handle)))
	ref := r.NewWeakReference(handle)

	r.Invalidate(handle)
	r.Invalidate(handle)
	r.Invalidate(handle)

	if got := ref.Get(); got != nil {
		t.Errorf("Get() after repeated Invalidate() = %p, want nil", got)
	}

	t.Logf("repeated invalidation is a no-op")
}

// TestRegistryUnknownHandle verifies that a reference to a never-bound
// handle materializes to nil rather than failing.
func TestRegistryUnknownHandle(t *testing.T) {
	r := NewRegistry()

	ref := r.NewWeakReference(Handle(0xDEAD))
	if got := ref.Get(); got != nil {
		t.Errorf("Get() for unknown handle = %p, want nil", got)
	}

	t.Logf("unknown handles materialize to nil")
}

// TestRegistryDoubleBind verifies that rebinding a live handle is a
// fatal protocol violation.
func TestRegistryDoubleBind(t *testing.T) {
	r := NewRegistry()
	const handle = Handle(0x3003)

	r.Bind(handle, heap.NewForeignObject(uintptr(handle)))

	defer func() {
		if recover() == nil {
			t.Fatal("second Bind() of a live handle did not abort")
		}
		t.Logf("double bind correctly aborted")
	}()

	r.Bind(handle, heap.NewForeignObject(uintptr(handle)))
}

// TestRegistryFreshRefsAgree verifies that every acquisition produces a
// fresh reference, and that all references for one handle agree on
// liveness because they resolve through the same bridge.
func TestRegistryFreshRefsAgree(t *testing.T) {
	r := NewRegistry()
	const handle = Handle(0x4004)
	wrapper := heap.NewForeignObject(uintptr(handle))
	r.Bind(handle, wrapper)

	ref1 := r.NewWeakReference(handle)
	ref2 := r.NewWeakReference(handle)

	if ref1 == ref2 {
		t.Error("foreign refs are canonicalized; expected fresh references per acquisition")
	}
	if ref1.Get() != wrapper || ref2.Get() != wrapper {
		t.Error("live refs disagree on the wrapper")
	}

	r.Invalidate(handle)
	if ref1.Get() != nil || ref2.Get() != nil {
		t.Error("refs disagree after invalidation")
	}

	t.Logf("fresh refs agree on liveness throughout")
}

// TestRegistryConcurrentResolve races resolving readers against an
// invalidating foreign runtime: every result must be the wrapper or
// nil.
func TestRegistryConcurrentResolve(t *testing.T) {
	const (
		readers    = 8
		iterations = 1000
	)

	for iter := 0; iter < iterations; iter++ {
		r := NewRegistry()
		handle := Handle(0x5000 + uintptr(iter))
		wrapper := heap.NewForeignObject(uintptr(handle))
		r.Bind(handle, wrapper)
		ref := r.NewWeakReference(handle)

		var wg sync.WaitGroup
		wg.Add(readers + 1)

		go func() {
			defer wg.Done()
			r.Invalidate(handle)
		}()

		for g := 0; g < readers; g++ {
			go func() {
				defer wg.Done()
				if got := ref.Get(); got != nil && got != wrapper {
					t.Errorf("Get() = %p, want %p or nil", got, wrapper)
				}
			}()
		}

		wg.Wait()
	}

	t.Logf("%d iterations: resolution races produced only the wrapper or nil", iterations)
}

// TestDefaultBridge verifies that the process starts with the
// in-process bridge registered and that it can be replaced.
func TestDefaultBridge(t *testing.T) {
	b := CurrentBridge()
	if b == nil {
		t.Fatal("no bridge registered at init")
	}
	if _, ok := b.(*Registry); !ok {
		t.Fatalf("default bridge is %T, want *Registry", b)
	}

	// Replace and restore.
	replacement := NewRegistry()
	SetBridge(replacement)
	if CurrentBridge() != Bridge(replacement) {
		t.Error("SetBridge() did not take effect")
	}
	SetBridge(b)

	t.Logf("default in-process bridge is registered")
}

// TestSetBridgeNil verifies that registering a nil bridge is fatal.
func TestSetBridgeNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("SetBridge(nil) did not abort")
		}
		t.Logf("SetBridge(nil) correctly aborted")
	}()

	SetBridge(nil)
}
