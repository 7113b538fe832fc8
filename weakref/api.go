// Package weakref provides the public API for the weak reference
// runtime.
//
// See doc.go for detailed documentation and examples.
package weakref

import (
	internal "github.com/molexx/kotlin-native/internal/runtime/api"
	"github.com/molexx/kotlin-native/internal/runtime/heap"
)

// Object is a handle to a runtime-managed heap object, the referent a
// weak reference can point to.
type Object = heap.Object

// Counter is the per-referent weak reference cell. The collector, and
// only the collector, passes Counters to Clear.
type Counter = heap.Counter

// Ref is a weak reference to a heap object. It does not keep the
// referent alive; once the collector reclaims the referent, Get
// returns nil forever.
type Ref = internal.Ref

// NewObject allocates a native heap object carrying payload.
//
// Allocation has no error path; failure is fatal under the allocator's
// abort convention.
func NewObject(payload any) *Object {
	return heap.NewObject(payload)
}

// NewForeignObject allocates a wrapper object around a handle owned by
// a foreign runtime. Weak references to it are served by that runtime's
// own weak reference mechanism, never by a native Counter.
func NewForeignObject(handle uintptr) *Object {
	return heap.NewForeignObject(handle)
}

// New returns the weak reference for obj, creating it on first request.
//
// All concurrent callers for the same referent receive the identical
// underlying reference: the per-referent Counter is installed exactly
// once, and later calls return the cached cell.
//
// Example:
//
//	obj := weakref.NewObject(session)
//	ref := weakref.New(obj)
//	// ... drop strong references to obj ...
//	if cur := weakref.Get(ref); cur != nil {
//		// Referent still alive; cur is a rooted strong reference.
//	}
func New(obj *Object) Ref {
	return internal.Acquire(obj)
}

// Get materializes a weak reference into a strong reference, or nil if
// the referent has been reclaimed.
//
// The returned reference is rooted for the caller: it stays valid even
// if the collector clears the reference immediately after Get returns.
// Get never observes a torn or half-written referent, regardless of a
// concurrently running collector.
func Get(r Ref) *Object {
	return internal.Materialize(r)
}

// Clear severs a Counter from its referent.
//
// This is the collector's entry point, called strictly before the
// referent's storage is repurposed. After Clear returns, every Get on
// the Counter, from any goroutine and at any later point, returns nil.
// Clear is idempotent and never touches the referent's ownership state.
func Clear(c *Counter) {
	internal.Invalidate(c)
}
