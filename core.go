package renderpass

import (
	"context"
	"fmt"
	"slices"

	"github.com/gogpu/renderpass/backend"
	"github.com/gogpu/renderpass/config"
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/input"
	"github.com/gogpu/renderpass/render"
	"github.com/gogpu/renderpass/scene"
)

// Core holds the state shared by all outputs: the rendering environment,
// the configuration store, the scene tree and the seat.
type Core struct {
	backend backend.Backend
	env     *render.Env
	store   *config.Store
	input   *input.Context
	outputs []*Output
	closed  bool
}

// New creates a Core. A backend is opened unless both the renderer and the
// allocator are overridden.
func New(opts ...Option) (*Core, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.store == nil {
		o.store = config.NewStore()
	}

	c := &Core{store: o.store, input: input.NewContext()}
	renderer, allocator := o.renderer, o.allocator
	if renderer == nil || allocator == nil {
		b, err := backend.Open(o.backend)
		if err != nil {
			return nil, fmt.Errorf("renderpass: backend %q: %w", o.backend, err)
		}
		c.backend = b
		if renderer == nil {
			renderer = b
		}
		if allocator == nil {
			allocator = b
		}
		Logger().Info("renderpass: backend selected", "backend", b.Name())
	}

	c.env = &render.Env{
		Renderer:      renderer,
		Allocator:     allocator,
		MaxBufferSize: o.store.MaxBufferSize,
	}
	return c, nil
}

// Env returns the rendering environment.
func (c *Core) Env() *render.Env { return c.env }

// Config returns the live configuration store.
func (c *Core) Config() *config.Store { return c.store }

// Backend returns the backend opened by New, or nil when both the renderer
// and the allocator were overridden.
func (c *Core) Backend() backend.Backend { return c.backend }

// Scene returns the scene root.
func (c *Core) Scene() *scene.Root { return c.input.Scene }

// Seat returns the input seat.
func (c *Core) Seat() *input.Seat { return c.input.Seat }

// InputContext returns the context input grabs operate on.
func (c *Core) InputContext() *input.Context { return c.input }

// NewOutput adds an output showing geometry of the global layout. The first
// output becomes the seat's active output.
func (c *Core) NewOutput(name string, geometry geom.Box, scale float64, transform geom.Transform) *Output {
	o := newOutput(c, name, geometry, scale, transform)
	c.outputs = append(c.outputs, o)
	if c.Seat().ActiveOutput() == nil {
		c.Seat().SetActiveOutput(o)
	}
	Logger().Debug("renderpass: output added", "output", name, "geometry", geometry, "scale", scale,
		"transform", transform)
	return o
}

// RemoveOutput frees the output's buffers and forgets it.
func (c *Core) RemoveOutput(o *Output) {
	i := slices.Index(c.outputs, o)
	if i < 0 {
		return
	}
	c.outputs = slices.Delete(c.outputs, i, i+1)
	o.free()
	if c.Seat().ActiveOutput() == scene.Output(o) {
		var next scene.Output
		if len(c.outputs) > 0 {
			next = c.outputs[0]
		}
		c.Seat().SetActiveOutput(next)
	}
}

// Outputs returns the outputs in creation order.
func (c *Core) Outputs() []*Output {
	return slices.Clone(c.outputs)
}

// WatchConfig reloads the configuration file at path into the core's store
// whenever it changes. It blocks until ctx is cancelled and is meant to run
// on its own goroutine.
func (c *Core) WatchConfig(ctx context.Context, path string) error {
	return config.Watch(ctx, path, c.store)
}

// Close frees all output buffers and closes the backend. Calling Close more
// than once is a no-op.
func (c *Core) Close() {
	if c.closed {
		return
	}
	c.closed = true
	for _, o := range c.outputs {
		o.free()
	}
	c.outputs = nil
	if c.backend != nil {
		c.backend.Close()
	}
}
