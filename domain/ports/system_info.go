package ports

// SystemInfoProvider reports the build and runtime configuration of the
// inference library (compiled acceleration flags and the like).
// Implementations must be safe to call from any goroutine.
type SystemInfoProvider interface {
	SystemInfo() string
}

// SystemInfoFunc adapts a plain function to SystemInfoProvider.
type SystemInfoFunc func() string

// SystemInfo implements SystemInfoProvider.
func (f SystemInfoFunc) SystemInfo() string {
	return f()
}
