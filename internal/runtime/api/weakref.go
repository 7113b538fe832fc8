// Package api implements the runtime entry points of the weak reference
// subsystem.
//
// Three operations are exposed, matching the three callers:
//
//   - Acquire: application code requesting a weak reference to a live
//     referent. Returns the referent's canonical Counter, or a foreign
//     bridge reference for foreign-wrapped referents.
//   - Materialize: application code dereferencing a weak reference.
//     Returns a rooted strong reference, or nil once invalidated.
//   - Invalidate: the collector, severing a Counter strictly before the
//     referent's storage is repurposed.
//
// None of these has an error path. Every race in the protocol is
// resolved structurally (single-winner install, monotonic
// invalidation) rather than detected and reported.
package api

import (
	"github.com/molexx/kotlin-native/internal/runtime/fatal"
	"github.com/molexx/kotlin-native/internal/runtime/foreign"
	"github.com/molexx/kotlin-native/internal/runtime/heap"
	"github.com/molexx/kotlin-native/internal/runtime/weakcounter"
)

// Ref is a weak reference: a handle that does not keep its referent
// alive and materializes to nil once the referent is gone.
//
// Exactly two implementations exist, the native Counter and the
// foreign HandleRef, and the choice between them is made once, at
// acquisition, from the referent's kind. A referent is never handled by
// both protocols.
type Ref interface {
	// Get materializes the reference: the referent, or nil.
	Get() *heap.Object
}

// The two protocol implementations.
var (
	_ Ref = (*heap.Counter)(nil)
	_ Ref = (*foreign.HandleRef)(nil)
)

// Acquire returns the weak reference for obj, creating it if this is
// the first request.
//
// Foreign-wrapped referents dispatch entirely to the foreign bridge,
// keyed on the wrapped handle; no Counter is created for them.
//
// Native referents hit the metadata cache: if a Counter is already
// installed it is returned directly (one atomic load, no locks).
// Otherwise a candidate cell bound to obj is allocated and offered to
// the cache with a single-winner install. Whoever wins, every
// concurrent caller re-reads the cache and returns the identical
// canonical Counter; losing candidates are discarded as ordinary
// garbage. The install operates on the cache entry alone, never on the
// Counter's own exclusion flag, so acquisition cannot block on a held
// Counter.
//
// The caller must hold obj live across the call; there is no
// caller-visible error path.
func Acquire(obj *heap.Object) Ref {
	fatal.Assertf(obj != nil, "weak reference acquisition on nil referent")

	if obj.IsForeign() {
		return foreign.NewWeakReference(foreign.Handle(obj.ForeignHandle()))
	}

	meta := obj.Meta()
	if c := meta.WeakCounter(); c != nil {
		return c
	}
	candidate := weakcounter.New(obj)
	return meta.InstallWeakCounter(candidate)
}

// Materialize dereferences a weak reference.
//
// The result is rooted for the caller's current execution before it is
// returned: even if the collector severs the reference and reclaims the
// referent immediately after, the reference handed back stays valid.
// Returns nil if the referent is already gone.
func Materialize(r Ref) *heap.Object {
	var h heap.Holder
	defer h.Release()
	return h.Set(r.Get())
}

// Invalidate severs a Counter from its referent. Called by the
// collector strictly before the referent's memory is repurposed.
//
// The operation is idempotent and non-owning; see Counter.Clear for the
// critical section discipline. Foreign references are not invalidated
// here; their lifetime belongs to the foreign runtime.
func Invalidate(c *heap.Counter) {
	c.Clear()
}
