//go:build !nothreads

package weakref

// Build mode reported by GetInfo.
const (
	protocolName = "per-counter spin flag"
	threaded     = true
)
