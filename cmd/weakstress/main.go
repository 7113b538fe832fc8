// Package main implements the weakstress CLI tool.
//
// The weakstress tool exercises the weak reference runtime's
// synchronization protocol from outside the test suite. It provides:
//
//  1. Stress runs racing materializing readers against a clearing
//     collector on a single counter
//  2. Acquisition races verifying the single-winner counter install
//  3. A doctor command checking that a consumer module links the
//     runtime
//
// Usage:
//
//	weakstress stress -readers 8 -iters 10000   # read/clear race
//	weakstress acquire -goroutines 64           # install race
//	weakstress doctor ./path/to/project         # go.mod linkage check
//
// This is the CLI entry point for the standalone stress tool.
package main

import (
	"fmt"
	"os"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "stress":
		stressCommand(os.Args[2:])
	case "acquire":
		acquireCommand(os.Args[2:])
	case "doctor":
		doctorCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("weakstress version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`weakstress - Weak Reference Runtime Stress Tool

USAGE:
    weakstress <command> [arguments]

COMMANDS:
    stress     Race materializing readers against a clearing collector
    acquire    Race concurrent counter acquisitions (single-winner check)
    doctor     Check that a module links the weak reference runtime
    version    Show version information
    help       Show this help message

EXAMPLES:
    # One clearer vs eight readers, ten thousand rounds
    weakstress stress -readers 8 -iters 10000

    # Sixty-four goroutines racing to install one counter
    weakstress acquire -goroutines 64

    # Inspect the go.mod of the current project
    weakstress doctor .

ABOUT:
    weakstress drives the weak reference counter protocol (the
    per-counter spin flag, the single-winner cache install, and
    monotonic invalidation) under configurable contention, and fails
    loudly if any reader ever observes a value that is neither the
    original referent nor nil.

    The runtime under test is pure Go and CGO-free; the same protocol
    runs in the default concurrent build and, as plain field accesses,
    under the nothreads build tag.

FOR MORE INFORMATION:
    Repository: https://github.com/molexx/kotlin-native
`)
}
