package backend

import (
	"slices"

	"github.com/gogpu/gpucontext"
)

// Factory creates a new backend instance.
type Factory func() Backend

// registry holds registered backends. Priority order for Default: the
// software backend draws pixels, the recording backend only logs calls.
var registry = gpucontext.NewRegistry[Backend](
	gpucontext.WithPriority(BackendSoftware, BackendRecording),
)

// Register registers a backend factory under name, replacing any previous
// one. Typically called from init functions.
func Register(name string, factory Factory) {
	registry.Register(name, factory)
}

// Unregister removes a backend from the registry.
func Unregister(name string) {
	registry.Unregister(name)
}

// Available returns the sorted names of all registered backends.
func Available() []string {
	names := registry.Available()
	slices.Sort(names)
	return names
}

// IsRegistered reports whether a backend with the given name is registered.
func IsRegistered(name string) bool {
	return registry.Has(name)
}

// Get returns a new instance of the named backend, or nil.
func Get(name string) Backend {
	return registry.Get(name)
}

// Default returns a new instance of the highest priority backend, or nil
// if none is registered.
func Default() Backend {
	return registry.Best()
}

// DefaultName returns the name Default would pick, or "".
func DefaultName() string {
	return registry.BestName()
}

// Open returns the named backend, or the default one for an empty name.
func Open(name string) (Backend, error) {
	var b Backend
	if name == "" {
		b = Default()
	} else {
		b = Get(name)
	}
	if b == nil {
		return nil, ErrBackendNotAvailable
	}
	return b, nil
}
