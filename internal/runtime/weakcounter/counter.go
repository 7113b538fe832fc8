// Package weakcounter implements the weak reference counter cell.
//
// A Counter is the unit of synchronization at the weak reference
// boundary: the single shared cell through which readers materialize a
// weak reference and the collector severs it. It owns exactly two
// fields, a nullable referent slot and a binary exclusion flag, and
// nothing else. The referent does not own its Counter; the Counter is
// held by the referent's metadata cache entry for its whole lifetime
// and is itself collectable once unreachable.
//
// Two invariants carry the whole protocol:
//
//  1. At most one Counter is ever installed per referent. That is not
//     enforced here but by the single-winner install in the metadata
//     cache; this package only promises that a cell, once created,
//     never changes which referent it is bound to.
//  2. The referent slot transitions monotonically from the referent to
//     nil and never back. There is no resurrection.
//
// The slot is the runtime's only non-owning reference type: storing or
// clearing it never touches whatever ownership model the referent
// participates in. Clearing is therefore structurally incapable of
// triggering an ownership decrement.
//
// Counter is generic over the referent type so the object model can
// embed a cache slot for it without an import cycle; the runtime only
// ever instantiates it with the heap object header.
//
// Build modes: the default build assumes arbitrary concurrent readers
// plus a collector and guards the slot with the spin flag. Building
// with the "nothreads" tag compiles the slot accesses down to plain
// loads and stores, a compile-time contract that readers and the
// collector never run concurrently, not a runtime-checked invariant.
package weakcounter

import (
	"github.com/molexx/kotlin-native/internal/runtime/spinlock"
)

// Counter is a weak reference cell bound to a single referent.
//
// Field order is a layout contract with the allocator: the referent
// slot comes first, the exclusion flag directly after it at one pointer
// width. Tests pin this. The C++ runtime's fixed-offset access of its
// trailing-memory layout is replaced by this explicit struct; the two
// fields keep the same conceptual roles in the same order.
//
// A Counter must not be copied: the flag word is its identity.
type Counter[T any] struct {
	referred *T            // Weak slot: the referent, or nil once cleared.
	lock     spinlock.Flag // Guards referred in the concurrent build.
}

// New creates a Counter bound to obj.
//
// The cell starts with the slot pointing at the referent and the flag
// free. Allocation failure is fatal and handled by the allocator's
// abort convention, not here. New has no error path.
func New[T any](obj *T) *Counter[T] {
	return &Counter[T]{referred: obj}
}
