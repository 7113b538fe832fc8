package heap

import "runtime"

// Holder roots an object reference for the caller's current execution.
//
// Materialization hands its result to the caller through a Holder: the
// reference placed in it is guaranteed reachable until Release, even if
// the collector severs every weak path to the object in the meantime.
// Under a tracing host collector the local copy already does the
// rooting; Holder makes that contract explicit at the API boundary and
// pins it with runtime.KeepAlive so the guarantee survives compiler
// liveness analysis.
//
// The zero Holder is empty and ready to use. Holders are frame-local:
// they must not be shared between goroutines.
type Holder struct {
	obj *Object
}

// Set roots obj in the holder and returns it unchanged.
func (h *Holder) Set(obj *Object) *Object {
	h.obj = obj
	return obj
}

// Obj returns the currently rooted reference, or nil.
func (h *Holder) Obj() *Object {
	return h.obj
}

// Release drops the root. The rooted object remains reachable up to
// this point; afterwards its lifetime is the caller's problem.
func (h *Holder) Release() {
	runtime.KeepAlive(h.obj)
	h.obj = nil
}
