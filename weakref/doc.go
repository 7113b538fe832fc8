// Package weakref provides weak references for a runtime with
// automatically managed memory, without CGO dependency.
//
// A weak reference points at a heap object without keeping it alive,
// and safely observes the object becoming unavailable once the
// collector reclaims it. This package is the Go rendition of the weak
// reference counter protocol from the original C++ runtime: the same
// per-referent counter cell, the same spin-flag critical sections, the
// same single-winner installation race.
//
// # Quick Start
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/molexx/kotlin-native/weakref"
//	)
//
//	func main() {
//		obj := weakref.NewObject("payload")
//		ref := weakref.New(obj)
//
//		fmt.Println(weakref.Get(ref).Payload()) // "payload"
//
//		// The collector, on reclaiming obj:
//		weakref.Clear(ref.(*weakref.Counter))
//
//		fmt.Println(weakref.Get(ref)) // <nil>
//	}
//
// # API Overview
//
// The package provides functions for:
//   - Referent allocation: [NewObject], [NewForeignObject]
//   - Weak reference creation: [New]
//   - Dereferencing: [Get]
//   - Collector-side invalidation: [Clear]
//   - Version information: [GetInfo], [Version]
//
// # How It Works
//
// Each referent lazily caches at most one Counter, a two-field cell
// holding the referent slot and a binary spin flag, in its object
// metadata. Creation races are resolved by a single-winner atomic
// install: every concurrent caller of [New] for the same referent
// receives the identical Counter.
//
// Dereferencing copies the slot inside the Counter's critical section,
// so a reader racing the collector sees either the original referent or
// nil, never a torn value, and the copy it receives is rooted and
// remains valid even if reclamation happens immediately afterwards.
// Invalidation writes nil under the same flag, is idempotent, and is
// monotonic: once nil, the slot never goes back.
//
// Referents that wrap a foreign-runtime object are different: [New]
// delegates them wholesale to the foreign runtime's own weak reference
// mechanism, keyed on the wrapped handle. The two protocols never mix
// and share no locks.
//
// # Build Modes
//
// The default build tolerates arbitrary concurrent readers plus a
// collector goroutine on the same Counter. Building with the
// "nothreads" tag compiles the critical sections down to plain field
// accesses, a compile-time contract for single-threaded embeddings,
// with results identical to the concurrent build.
//
// # Concurrency Guarantees
//
//   - Locking is per-Counter; unrelated weak references never contend.
//   - Critical sections are a single field access; no allocation or
//     blocking call ever happens under a flag.
//   - There are no timeouts and no cancellation anywhere: correctness
//     rests on critical sections being O(1), which makes indefinite
//     blocking structurally impossible.
package weakref
