package backend

import (
	"errors"

	"github.com/gogpu/renderpass/render"
)

// Backend name constants.
const (
	// BackendSoftware is the name of the CPU backend.
	BackendSoftware = "software"

	// BackendRecording is the name of the backend that records every call
	// instead of drawing.
	BackendRecording = "recording"
)

// ErrBackendNotAvailable is returned when a requested backend is not
// registered.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Backend provides both the renderer and the allocator capabilities.
type Backend interface {
	render.Renderer
	render.Allocator

	// Name returns the backend identifier, e.g. "software".
	Name() string

	// Close releases all backend resources.
	Close()
}
