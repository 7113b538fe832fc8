//go:build nothreads

package weakref

// Build mode reported by GetInfo.
const (
	protocolName = "plain field access (nothreads)"
	threaded     = false
)
