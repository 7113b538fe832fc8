package heap

import (
	"sync/atomic"

	"github.com/molexx/kotlin-native/internal/runtime/weakcounter"
)

// Counter is the weak reference counter cell instantiated for heap
// objects. The cell itself lives in the weakcounter package; this alias
// keeps every layer of the runtime talking about the same concrete
// type.
type Counter = weakcounter.Counter[Object]

// Meta is the per-object metadata record.
//
// The only field the weak reference subsystem owns here is the counter
// cache entry: a nullable back-reference from the referent's metadata
// to its Counter, written at most once for the object's lifetime. The
// full runtime hangs more off this record (type information, foreign
// association state); those fields belong to other subsystems and are
// out of scope.
type Meta struct {
	// weak caches the object's Counter. Installed at most once by a
	// single-winner CAS; read on every acquisition. The read is an
	// atomic load that tolerates staleness: a stale nil just sends the
	// caller through the idempotent install path.
	weak atomic.Pointer[Counter]
}

// WeakCounter returns the cached Counter for this object, or nil if no
// weak reference has been requested yet.
//
// This is acquisition's fast path: one atomic load, no locks. The cache
// entry is independent of the Counter's own exclusion flag, so reading
// or installing it never blocks on a held Counter; there is no lock
// ordering between "install" and "lock" to get wrong.
func (m *Meta) WeakCounter() *Counter {
	return m.weak.Load()
}

// InstallWeakCounter installs candidate as the object's Counter if none
// is installed yet, and returns the canonical installed cell.
//
// Exactly one concurrent attempt succeeds; the rest lose the CAS and
// their candidates become ordinary garbage. Regardless of who won, the
// slot is re-read after the attempt and its content returned, so every
// concurrent caller observes the same canonical Counter. Installation
// is idempotent from the caller's point of view: calling this with a
// fresh candidate against an already-populated slot simply returns the
// existing cell.
func (m *Meta) InstallWeakCounter(candidate *Counter) *Counter {
	m.weak.CompareAndSwap(nil, candidate)
	// Re-read unconditionally: the winner and every loser must return
	// whatever is actually installed, not what they tried to install.
	return m.weak.Load()
}
