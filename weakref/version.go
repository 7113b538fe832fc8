package weakref

// Version information for the weak reference runtime.
const (
	// Version is the current version of the runtime.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info provides runtime information about the weak reference subsystem.
type Info struct {
	// Version is the runtime version string.
	Version string

	// Protocol is the synchronization protocol in use.
	Protocol string

	// Threaded indicates whether the build tolerates concurrent
	// readers and collector (false under the nothreads build tag).
	Threaded bool
}

// GetInfo returns information about the weak reference runtime.
//
// Example:
//
//	info := weakref.GetInfo()
//	fmt.Printf("weakref %s (%s)\n", info.Version, info.Protocol)
func GetInfo() Info {
	return Info{
		Version:  Version,
		Protocol: protocolName,
		Threaded: threaded,
	}
}
