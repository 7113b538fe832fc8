//go:build nothreads

package weakcounter

// Get materializes the weak reference as a plain field read.
//
// The nothreads build is a compile-time contract that readers and the
// collector never run concurrently, so the slot needs no exclusion.
// Results are identical to the concurrent build: the current referent,
// or nil once cleared.
func (c *Counter[T]) Get() *T {
	return c.referred
}

// Clear severs the cell from its referent with a plain field write.
//
// Idempotent and non-owning, exactly as in the concurrent build.
func (c *Counter[T]) Clear() {
	c.referred = nil
}
