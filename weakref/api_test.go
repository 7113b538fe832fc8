package weakref_test

import (
	"sync"
	"testing"

	"github.com/molexx/kotlin-native/weakref"
)

// TestPublicLifecycle drives the whole public surface: allocate,
// acquire, dereference, clear, dereference again.
func TestPublicLifecycle(t *testing.T) {
	obj := weakref.NewObject("session-42")
	ref := weakref.New(obj)

	got := weakref.Get(ref)
	if got != obj {
		t.Fatalf("Get() = %p, want %p", got, obj)
	}
	if got.Payload() != "session-42" {
		t.Errorf("Payload() = %v, want %q", got.Payload(), "session-42")
	}

	c, ok := ref.(*weakref.Counter)
	if !ok {
		t.Fatalf("New() returned %T, want *weakref.Counter for a native referent", ref)
	}
	weakref.Clear(c)

	if got := weakref.Get(ref); got != nil {
		t.Errorf("Get() after Clear() = %p, want nil", got)
	}

	t.Logf("public lifecycle: acquire, get, clear, nil")
}

// TestPublicCanonical verifies that the public API preserves counter
// identity across callers.
func TestPublicCanonical(t *testing.T) {
	obj := weakref.NewObject(nil)

	var (
		wg   sync.WaitGroup
		refs [2]weakref.Ref
	)
	wg.Add(2)
	for g := 0; g < 2; g++ {
		go func(slot int) {
			defer wg.Done()
			refs[slot] = weakref.New(obj)
		}(g)
	}
	wg.Wait()

	if refs[0] != refs[1] {
		t.Errorf("concurrent New() diverged: %p vs %p", refs[0], refs[1])
	}

	t.Logf("public acquisitions converge on one reference")
}

// TestGetInfo verifies the version surface.
func TestGetInfo(t *testing.T) {
	info := weakref.GetInfo()

	if info.Version != weakref.Version {
		t.Errorf("Info.Version = %q, want %q", info.Version, weakref.Version)
	}
	if info.Protocol == "" {
		t.Error("Info.Protocol is empty")
	}

	t.Logf("weakref %s (%s, threaded=%v)", info.Version, info.Protocol, info.Threaded)
}
