package renderpass

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/input"
	"github.com/gogpu/renderpass/internal/debug"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
	"github.com/gogpu/renderpass/scene"
)

// Output is a display fed by the core. Every frame is rendered into the
// output's own auxiliary buffer and then passed through the post hooks into
// the presentation buffer.
type Output struct {
	core      *Core
	name      string
	geometry  geom.Box
	scale     float64
	transform geom.Transform

	main render.AuxiliaryBuffer
	post [2]render.AuxiliaryBuffer

	hooks      []postEntry
	nextHandle PostHandle

	// fullDamage forces the next frame to redraw everything.
	fullDamage bool

	// postStale means the post buffers may not hold the previous frame.
	postStale bool
}

var _ scene.Output = (*Output)(nil)

func newOutput(c *Core, name string, geometry geom.Box, scale float64, transform geom.Transform) *Output {
	return &Output{
		core:       c,
		name:       name,
		geometry:   geometry,
		scale:      scale,
		transform:  transform,
		fullDamage: true,
		postStale:  true,
	}
}

// Name implements scene.Output.
func (o *Output) Name() string { return o.name }

// LayoutGeometry implements scene.Output.
func (o *Output) LayoutGeometry() geom.Box { return o.geometry }

// LocalGeometry returns the output's area relative to its own origin.
// Frame damage and instance geometry use this space.
func (o *Output) LocalGeometry() geom.Box {
	return geom.Box{Width: o.geometry.Width, Height: o.geometry.Height}
}

// Scale returns the number of pixels per logical unit.
func (o *Output) Scale() float64 { return o.scale }

// Transform returns the output transform.
func (o *Output) Transform() geom.Transform { return o.transform }

// SetMode changes the output's placement, scale and transform. The next
// frame is redrawn in full.
func (o *Output) SetMode(geometry geom.Box, scale float64, transform geom.Transform) {
	o.geometry = geometry
	o.scale = scale
	o.transform = transform
	o.fullDamage = true
}

func (o *Output) String() string { return o.name }

// bufferSize returns the logical size of the buffer contents, which are
// stored untransformed.
func (o *Output) bufferSize() geom.Dimensions {
	d := o.geometry.Size()
	if o.transform.SwapsAxes() {
		d.Width, d.Height = d.Height, d.Width
	}
	return d
}

// Buffer returns the auxiliary buffer holding the last rendered frame.
func (o *Output) Buffer() *render.AuxiliaryBuffer { return &o.main }

// Target returns a render target mapping LocalGeometry onto the output's
// buffer. When the buffer had to be shrunk below the configured size, the
// whole output is mapped into it at a lower scale.
func (o *Output) Target() render.RenderTarget {
	t := render.TargetFromAuxiliary(&o.main)
	t.Geometry = o.LocalGeometry()
	t.Scale = o.scale
	t.Transform = o.transform

	logical := o.bufferSize()
	got := t.Size()
	if logical.Width <= 0 || logical.Height <= 0 || got.Width <= 0 || got.Height <= 0 {
		return t
	}
	wantW := int(math.Ceil(float64(logical.Width) * o.scale))
	wantH := int(math.Ceil(float64(logical.Height) * o.scale))
	if got.Width != wantW || got.Height != wantH {
		// Each axis is rounded up separately, so the smaller ratio is the
		// scale at which the whole output fits.
		t.Scale = min(float64(got.Width)/float64(logical.Width), float64(got.Height)/float64(logical.Height))
	}
	return t
}

// NewInputGrab returns an input grab covering this output.
func (o *Output) NewInputGrab(name string, keyboard input.KeyboardInteraction, pointer input.PointerInteraction) *input.InputGrab {
	return input.NewInputGrab(o.core.input, name, o, keyboard, pointer)
}

// RenderFrame draws instances into the output buffer, runs the post hooks
// and leaves the result in dst.
//
// damage is given in local geometry and is widened to the full output after
// a mode change or buffer reallocation. The returned region is the damage in
// buffer pixels that the caller must present. If the backend pass cannot be
// opened the damage is returned together with the error so the frame can be
// retried.
func (o *Output) RenderFrame(instances []render.Instance, damage region.Region, dst render.RenderBuffer) (region.Region, error) {
	if o.core.closed {
		return region.Region{}, ErrClosed
	}
	if err := debug.Check(dst.Buffer() != nil, "renderpass: %s: no destination buffer", o.name); err != nil {
		return region.Region{}, err
	}

	env := o.core.env
	switch o.main.Allocate(env, o.bufferSize(), o.scale, render.AllocationHints{}) {
	case render.BufferFailed:
		return region.Region{}, fmt.Errorf("%w: %s", ErrAllocate, o.name)
	case render.BufferReallocated:
		o.fullDamage = true
	}
	if o.fullDamage {
		damage = region.FromBox(o.LocalGeometry())
	}

	target := o.Target()
	swap, err := render.Run(env, render.PassParams{
		Target:          target,
		Damage:          damage,
		Instances:       instances,
		Options:         &render.PassOptions{Label: o.name},
		Flags:           render.PassClearBackground,
		BackgroundColor: o.core.store.BackgroundColor.Get().Premultiplied(),
	})
	fbDamage := target.FramebufferRegionFromGeometry(swap)
	if err != nil {
		return fbDamage, err
	}
	o.fullDamage = false

	o.runPost(env, fbDamage, dst)
	return fbDamage, nil
}

func (o *Output) runPost(env *render.Env, damage region.Region, dst render.RenderBuffer) {
	if len(o.hooks) == 0 {
		o.blitMain(env, &o.main, dst)
		return
	}

	// Hooks may remove themselves while running.
	hooks := slices.Clone(o.hooks)

	needed := min(len(hooks)-1, len(o.post))
	for i := range o.post {
		if i >= needed {
			o.post[i].Free()
			continue
		}
		switch o.post[i].Allocate(env, o.bufferSize(), o.scale, render.AllocationHints{}) {
		case render.BufferFailed:
			Logger().Warn("renderpass: post buffer allocation failed, skipping hooks", "output", o.name)
			o.postStale = true
			o.blitMain(env, &o.main, dst)
			return
		case render.BufferReallocated:
			o.postStale = true
		}
	}

	// With more than two hooks a post buffer is written twice per frame, so
	// its old contents never match the previous frame.
	if o.postStale || len(hooks) > 2 {
		damage = region.FromBox(geom.BoxOf(o.main.Size()))
	}
	o.postStale = false

	src := &o.main
	for i, e := range hooks {
		last := i == len(hooks)-1
		out := dst
		var next *render.AuxiliaryBuffer
		if !last {
			next = &o.post[i%2]
			if next == src {
				next = &o.post[(i+1)%2]
			}
			out = next.RenderBuffer()
		}
		if err := e.hook.Post(env, src, out, damage); err != nil {
			Logger().Warn("renderpass: post hook failed, skipping", "output", o.name, "hook", e.handle, "err", err)
			o.postStale = true
			if last {
				o.blitMain(env, src, dst)
			}
			continue
		}
		if next != nil {
			src = next
		}
	}
}

// blitMain copies all of src into dst, scaling when the sizes differ.
func (o *Output) blitMain(env *render.Env, src *render.AuxiliaryBuffer, dst render.RenderBuffer) {
	filter := gputypes.FilterModeNearest
	if src.Size() != dst.Size() {
		filter = gputypes.FilterModeLinear
	}
	dst.Blit(env, src, geom.BoxOf(src.Size()).FBox(), geom.BoxOf(dst.Size()), filter)
}

func (o *Output) free() {
	o.main.Free()
	for i := range o.post {
		o.post[i].Free()
	}
}
