// Package heap provides the slice of the runtime's heap object model
// consumed at the weak reference boundary.
//
// The general object header, the allocator, and the collector live
// outside this subsystem; what this package models is exactly what the
// weak reference protocol needs from them: an opaque heap object with a
// kind fixed at allocation, a lazily installed per-object metadata
// record carrying the weak counter cache entry, and a rooting helper
// that keeps a returned reference alive for the caller's current
// execution.
package heap

import (
	"sync/atomic"
)

// Kind classifies a heap object for weak reference dispatch.
//
// The kind is chosen once at allocation and never changes: a referent
// is handled by exactly one weak reference protocol, native counter or
// foreign bridge, for its entire lifetime. There is no re-dispatch
// after construction.
type Kind uint8

const (
	// KindNative is an ordinary runtime-managed object. Weak references
	// to it go through the native counter protocol.
	KindNative Kind = iota

	// KindForeign is a wrapper around an object owned by a foreign
	// runtime. Weak references to it are delegated wholesale to that
	// runtime's own weak reference mechanism, keyed on the wrapped
	// handle; no native counter is ever created for it.
	KindForeign
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindForeign:
		return "foreign"
	default:
		return "invalid"
	}
}

// Object is a heap object header as seen by the weak reference
// subsystem.
//
// The payload is opaque: this subsystem never inspects it and does not
// own the referent. Metadata is installed lazily on first demand and at
// most once, so objects that never participate in weak references pay
// one nil pointer word and nothing else.
type Object struct {
	kind Kind

	// foreign is the wrapped handle; meaningful only for KindForeign.
	foreign uintptr

	// payload is the application payload, opaque to the runtime.
	payload any

	meta atomic.Pointer[Meta]
}

// NewObject allocates a native heap object carrying payload.
//
// This is the subsystem's view of the allocation primitive. There is no
// error path: allocation failure is fatal under the host allocator's
// abort convention.
func NewObject(payload any) *Object {
	return &Object{kind: KindNative, payload: payload}
}

// NewForeignObject allocates a wrapper object around a foreign-runtime
// handle.
//
// The wrapper's kind is fixed here; every weak reference request for it
// will route through the foreign bridge and never touch the native
// counter protocol.
func NewForeignObject(handle uintptr) *Object {
	return &Object{kind: KindForeign, foreign: handle}
}

// Kind returns the object's dispatch kind.
func (o *Object) Kind() Kind {
	return o.kind
}

// IsForeign reports whether the object wraps a foreign-runtime object.
// This is the classification predicate consumed by weak reference
// acquisition.
func (o *Object) IsForeign() bool {
	return o.kind == KindForeign
}

// ForeignHandle returns the wrapped foreign handle. Zero for native
// objects.
func (o *Object) ForeignHandle() uintptr {
	return o.foreign
}

// Payload returns the application payload stored in the object.
func (o *Object) Payload() any {
	return o.payload
}

// Meta returns the object's metadata record, installing it on first
// demand.
//
// Installation uses the same single-winner discipline as the weak
// counter cache itself: allocate a candidate, CAS it into the nil slot,
// and re-read. Exactly one concurrent caller wins; every caller,
// winner or loser, returns the identical installed record, and losing
// candidates are discarded as ordinary garbage.
func (o *Object) Meta() *Meta {
	if m := o.meta.Load(); m != nil {
		return m
	}
	o.meta.CompareAndSwap(nil, &Meta{})
	return o.meta.Load()
}

// HasMeta reports whether metadata has been installed, without
// installing it. Diagnostic use only.
func (o *Object) HasMeta() bool {
	return o.meta.Load() != nil
}
