package renderpass

import (
	"github.com/gogpu/renderpass/config"
	"github.com/gogpu/renderpass/render"
)

// Option configures a Core during creation.
//
// Example:
//
//	// Default backend, default configuration
//	core, err := renderpass.New()
//
//	// Named backend with a live configuration store
//	store := config.NewStore()
//	core, err := renderpass.New(renderpass.WithBackend("software"), renderpass.WithConfig(store))
type Option func(*options)

type options struct {
	backend   string
	store     *config.Store
	renderer  render.Renderer
	allocator render.Allocator
}

// WithBackend selects a registered backend by name. The default is the
// highest priority registered backend.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithConfig uses store for the live options instead of a private store
// holding the defaults.
func WithConfig(store *config.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithRenderer overrides the backend's renderer.
func WithRenderer(r render.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithAllocator overrides the backend's buffer allocator.
func WithAllocator(a render.Allocator) Option {
	return func(o *options) {
		o.allocator = a
	}
}
