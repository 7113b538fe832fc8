// Package foreign routes weak references for foreign-wrapped referents
// to the foreign runtime's own weak reference mechanism.
//
// A referent that wraps an object owned by another runtime (the classic
// case is an Objective-C peer) never gets a native counter. Instead,
// weak reference creation is delegated wholesale to that runtime,
// keyed on the wrapped handle. This keeps the native lock protocol and
// the foreign runtime's protocol fully decoupled: no cross-runtime
// synchronization exists because every referent is handled by exactly
// one protocol for its entire lifetime.
//
// The only thing this subsystem consumes from the foreign runtime is a
// single entry point, Bridge.NewWeakReference. The bridging mechanism
// behind it (how foreign objects are wrapped, retained, and resolved
// back into heap objects) belongs to the interop layer. Registry is the
// in-process implementation of that entry point used by tests,
// examples, and hosts without a real foreign runtime attached.
package foreign

import (
	"sync"
	"sync/atomic"

	"github.com/molexx/kotlin-native/internal/runtime/fatal"
	"github.com/molexx/kotlin-native/internal/runtime/heap"
)

// Handle identifies an object owned by a foreign runtime. Handles are
// opaque to this subsystem; the foreign runtime mints them and decides
// when they die.
type Handle uintptr

// HandleRef is a weak reference managed by the foreign runtime's
// mechanism.
//
// Unlike native counters, foreign refs are not canonicalized: every
// acquisition produces a fresh HandleRef, matching the C++ runtime's
// protocol, and all refs for one handle agree because liveness is
// resolved through the owning bridge on every Get.
type HandleRef struct {
	handle  Handle
	resolve func(Handle) *heap.Object
}

// Handle returns the foreign handle this reference is keyed on.
func (r *HandleRef) Handle() Handle {
	return r.handle
}

// Get materializes the reference: the wrapper object for the handle if
// the foreign runtime still holds it alive, or nil once it dropped it.
func (r *HandleRef) Get() *heap.Object {
	return r.resolve(r.handle)
}

// Bridge is the consumed entry point into a foreign runtime's weak
// reference support.
type Bridge interface {
	// NewWeakReference creates a weak reference to the foreign object
	// identified by handle, using the foreign runtime's own mechanism.
	NewWeakReference(handle Handle) *HandleRef
}

// bridgeBox wraps the interface value so the registered bridge can be
// swapped with an atomic pointer.
type bridgeBox struct {
	b Bridge
}

var registered atomic.Pointer[bridgeBox]

func init() {
	// In-process bridge by default; an embedding host with a real
	// foreign runtime replaces it during startup, before any foreign
	// object exists.
	SetBridge(NewRegistry())
}

// SetBridge installs the foreign runtime bridge for the process.
//
// Must happen before any foreign-wrapped referent is allocated; there
// is no protocol for migrating live weak references between bridges.
func SetBridge(b Bridge) {
	fatal.Assertf(b != nil, "nil foreign bridge")
	registered.Store(&bridgeBox{b: b})
}

// CurrentBridge returns the bridge registered for the process.
func CurrentBridge() Bridge {
	return registered.Load().b
}

// NewWeakReference creates a weak reference for handle through the
// registered bridge. This is the dispatch target of weak reference
// acquisition for foreign-wrapped referents.
func NewWeakReference(handle Handle) *HandleRef {
	return CurrentBridge().NewWeakReference(handle)
}

// Registry is the in-process Bridge implementation.
//
// It plays the part of the foreign runtime's object table: handles are
// bound to their wrapper objects while the foreign side keeps them
// alive and invalidated when it lets go. Lookups are lock-free reads of
// a sync.Map, so acquisition and materialization never contend with
// binding.
type Registry struct {
	objects sync.Map // Handle -> *heap.Object
}

// NewRegistry creates an empty in-process bridge.
func NewRegistry() *Registry {
	return &Registry{}
}

// Bind associates handle with its wrapper object. The foreign runtime
// calls this while the object is alive; rebinding a live handle is a
// protocol violation and fatal.
func (r *Registry) Bind(handle Handle, obj *heap.Object) {
	fatal.Assertf(obj != nil, "binding nil object for foreign handle %#x", uintptr(handle))
	_, loaded := r.objects.LoadOrStore(handle, obj)
	fatal.Assertf(!loaded, "foreign handle %#x already bound", uintptr(handle))
}

// Invalidate severs handle: every weak reference keyed on it
// materializes to nil from now on. Idempotent, like native counter
// clearing, since the foreign runtime may report a death more than once.
func (r *Registry) Invalidate(handle Handle) {
	r.objects.Delete(handle)
}

// NewWeakReference creates a weak reference keyed on handle.
func (r *Registry) NewWeakReference(handle Handle) *HandleRef {
	return &HandleRef{handle: handle, resolve: r.lookup}
}

// lookup resolves a handle to its wrapper, nil once invalidated.
func (r *Registry) lookup(handle Handle) *heap.Object {
	v, ok := r.objects.Load(handle)
	if !ok {
		return nil
	}
	return v.(*heap.Object)
}
