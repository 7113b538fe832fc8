// Package fatal implements the runtime's fatal assertion facility.
//
// The weak reference subsystem has no recoverable error paths: every
// operation is success-shaped and returns a reference or nil. The only
// failure modes are bugs in the runtime itself (for example a lock word
// observed in an impossible state) and allocator-level out-of-memory.
// Both are unrecoverable and terminate via this package.
//
// Assertions here signal a defect in the runtime's own discipline, never
// user error. They must not be caught and handled by callers.
package fatal

import (
	"fmt"
	"os"
)

// Assertf checks a runtime invariant.
//
// If cond holds, Assertf is a no-op. Otherwise the formatted message is
// written to stderr and the runtime aborts via panic. The panic value is
// the formatted message, so a stack trace pinpoints the broken invariant.
//
// This is the hot-path assertion: the condition check is a single branch
// and the formatting cost is only paid on failure.
//
//go:nosplit
func Assertf(cond bool, format string, args ...any) {
	if cond {
		return
	}
	abortf(format, args...)
}

// Abortf unconditionally terminates the runtime with the formatted message.
//
// This is the allocator-style abort convention: callers that cannot make
// progress (for example an allocation primitive that failed) report the
// condition and die. There is no return.
func Abortf(format string, args ...any) {
	abortf(format, args...)
}

// abortf writes the failure report to stderr and panics.
//
// The report goes to stderr first so the message survives even if the
// panic is swallowed by a recover higher up the stack (which would itself
// be a bug: runtime assertions are not user-facing errors).
func abortf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "runtime assertion failed: %s\n", msg)
	panic("runtime assertion failed: " + msg)
}
