//go:build !nothreads

package weakcounter

// Get materializes the weak reference: the current referent, or nil if
// the collector already cleared the cell.
//
// The slot is copied into a caller-rooted local inside the critical
// section, before the flag is released. That ordering is the entire
// safety argument: the lock says nothing about the referent's lifetime
// after release, but the copy taken under the lock is already rooted
// for the caller, so even if the referent is reclaimed immediately
// after the flag drops, the returned reference stays valid. The result
// reflects the slot at a single consistent instant; a torn or
// half-written pointer is never observable.
//
// Locking is per-Counter: contention on unrelated weak references never
// interferes with this one.
func (c *Counter[T]) Get() *T {
	c.lock.Lock()
	obj := c.referred // Rooted copy, taken before release.
	c.lock.Unlock()
	return obj
}

// Clear severs the cell from its referent. The collector calls this
// strictly before the referent's storage is repurposed.
//
// The write happens under the same per-Counter exclusion discipline as
// Get, a symmetric critical section of exactly one store. The write is
// non-owning: the weak slot never contributed to the referent's
// ownership count, so clearing it must not and does not decrement
// anything.
//
// Clear is idempotent. The collector invokes it logically once, but a
// second call just writes nil over nil; no invariant requires
// exactly-once firing, only that Get never observes a partial state.
func (c *Counter[T]) Clear() {
	c.lock.Lock()
	c.referred = nil
	c.lock.Unlock()
}
