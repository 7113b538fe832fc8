// Package spinlock implements the binary spin flag guarding a weak
// reference counter.
//
// The flag is the runtime's lowest-level mutual exclusion primitive: a
// single int32 word with two states, 0 (free) and 1 (held), acquired by
// a busy-wait compare-and-swap loop. There is no backoff policy, no
// fairness, and no timeout: acquisition is unconditional. Correctness
// of the protocol does not depend on any of those: every critical
// section guarded by a Flag is a single field read or write, so every
// spin ends after a bounded number of rounds.
//
// Callers must not allocate or perform blocking system calls while
// holding a Flag.
package spinlock

import (
	"runtime"
	"sync/atomic"

	"github.com/molexx/kotlin-native/internal/runtime/fatal"
)

// Flag states. Any other value in the word is a runtime bug.
const (
	free = 0
	held = 1
)

// Flag is a binary spin flag.
//
// The zero value is an unlocked flag, ready to use. A Flag must not be
// copied after first use.
//
// Layout: exactly one int32 word. The counter layout contract depends on
// this: the flag sits directly after the referent slot in a counter
// cell, and must never grow.
type Flag struct {
	word atomic.Int32
}

// Lock acquires the flag, spinning until the CAS from free to held
// succeeds.
//
// Any number of goroutines may spin on the same Flag concurrently;
// exactly one wins each round. Between failed rounds the spinner yields
// the processor instead of burning it, since with cooperative
// scheduling a raw spin could starve the very goroutine that has to
// release the flag. The acquisition itself remains unconditional: no
// bound, no timeout, no fairness ordering among spinners.
//
//go:nosplit
func (f *Flag) Lock() {
	for !f.word.CompareAndSwap(free, held) {
		runtime.Gosched()
	}
}

// Unlock releases the flag.
//
// The flag must currently be held by the caller. Finding it in any
// other state means the locking discipline itself is broken, which is a
// fatal runtime assertion, not a recoverable condition.
//
//go:nosplit
func (f *Flag) Unlock() {
	old := f.word.Swap(free)
	fatal.Assertf(old == held, "incorrect lock state: %d", old)
}

// TryLock attempts a single acquisition round without spinning.
//
// It reports whether the flag was acquired. This is a diagnostic
// convenience (stress tooling probes contention with it); the runtime's
// own critical sections always use Lock.
func (f *Flag) TryLock() bool {
	return f.word.CompareAndSwap(free, held)
}

// Held reports whether the flag is currently held by someone.
//
// The answer is immediately stale and useful only for diagnostics and
// tests; it must never gate a critical section.
func (f *Flag) Held() bool {
	return f.word.Load() == held
}
