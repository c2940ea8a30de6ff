// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/debug"
	"github.com/gogpu/renderpass/internal/logging"
	"github.com/gogpu/renderpass/region"
)

// PassFlags modify how a RenderPass runs.
type PassFlags uint32

const (
	// PassClearBackground clears the damage to PassParams.BackgroundColor
	// before any instruction is executed.
	PassClearBackground PassFlags = 1 << iota
)

// Instance is the part of a scene node that knows how to draw it.
type Instance interface {
	// ScheduleInstructions appends the instructions needed to redraw the
	// damaged part of the node. Instances are visited front to back and
	// may shrink damage, for example by subtracting opaque areas, so that
	// instances further back skip pixels that are hidden anyway.
	ScheduleInstructions(instructions *[]Instruction, target RenderTarget, damage *region.Region)

	// Render executes an instruction previously scheduled by the instance.
	Render(instr *Instruction)
}

// Instruction is one scheduled draw operation.
type Instruction struct {
	Instance Instance

	// Pass is set right before Render is called.
	Pass *RenderPass

	Target RenderTarget
	Damage region.Region

	// Data is private to the instance.
	Data any
}

// PassParams configure a RenderPass.
type PassParams struct {
	// Target is the buffer drawn into. It must have a buffer.
	Target RenderTarget

	// Renderer overrides Env.Renderer when set.
	Renderer Renderer

	// Damage is the region to redraw, in the target's geometry space.
	Damage region.Region

	Instances []Instance
	Options   *PassOptions
	Flags     PassFlags

	// BackgroundColor is used by PassClearBackground. Premultiplied.
	BackgroundColor gputypes.Color
}

// passHandle holds the open backend pass. It is a separate allocation so the
// leak cleanup attached to a RenderPass can inspect it.
type passHandle struct {
	pass Pass
}

// RenderPass draws one frame of instances into a target.
//
// The life cycle is NewRenderPass, RunPartial, any number of additional draw
// calls, then Submit. A pass that is not going to be submitted must be
// released with Release.
type RenderPass struct {
	params PassParams
	handle *passHandle
}

func warnUnsubmitted(h *passHandle) {
	if h.pass != nil {
		logging.Logger().Warn("render: dropping unsubmitted render pass")
	}
}

func newRenderPass(p PassParams, h *passHandle) *RenderPass {
	rp := &RenderPass{params: p, handle: h}
	runtime.AddCleanup(rp, warnUnsubmitted, h)
	return rp
}

// NewRenderPass creates a pass drawing into p.Target. When p.Renderer is nil
// the renderer of env is used.
func NewRenderPass(env *Env, p PassParams) (*RenderPass, error) {
	if p.Renderer == nil && env != nil {
		p.Renderer = env.Renderer
	}
	if p.Renderer == nil {
		return nil, ErrNoRenderer
	}
	if err := debug.Check(p.Target.Buffer() != nil, "render: cannot run a render pass without a valid target"); err != nil {
		return nil, err
	}
	return newRenderPass(p, &passHandle{}), nil
}

// Run creates a pass, runs it and submits it. It returns the damage that
// was requested, which callers use to decide which parts of the buffer
// must be presented.
func Run(env *Env, p PassParams) (region.Region, error) {
	rp, err := NewRenderPass(env, p)
	if err != nil {
		return p.Damage, err
	}
	damage, err := rp.RunPartial()
	if err != nil {
		return damage, err
	}
	return damage, rp.Submit()
}

// RunPartial schedules the instances, opens the backend pass, clears the
// background if requested and executes the instructions back to front. The
// pass stays open for additional draw calls until Submit.
//
// The returned region is the damage as it was before the instances
// scheduled their work. If the pass cannot be opened nothing is drawn, the
// damage is still returned together with an error wrapping ErrBeginPass,
// and the frame may simply be retried. Running a pass that is still open
// is a precondition failure.
func (rp *RenderPass) RunPartial() (region.Region, error) {
	p := &rp.params
	if err := debug.Check(rp.handle.pass == nil, "render: render pass is already running"); err != nil {
		return p.Damage, err
	}
	damage := p.Damage
	swapDamage := damage
	buf := p.Target.Buffer()

	if b, ok := p.Renderer.(Binder); ok {
		if err := b.BindBuffer(buf); err != nil {
			logging.Logger().Warn("render: failed to bind target", "err", err)
		}
	}

	var instructions []Instruction
	for _, inst := range p.Instances {
		inst.ScheduleInstructions(&instructions, p.Target, &damage)
	}

	pass, err := p.Renderer.BeginBufferPass(buf, p.Options)
	if err != nil {
		return swapDamage, fmt.Errorf("%w: %w", ErrBeginPass, err)
	}
	rp.handle.pass = pass

	if p.Flags&PassClearBackground != 0 {
		// Cannot fail: the pass was just opened.
		_ = rp.Clear(damage, p.BackgroundColor)
	}

	// Instructions are scheduled front to back but must be drawn back to
	// front for blending to work.
	for i := len(instructions) - 1; i >= 0; i-- {
		instr := &instructions[i]
		instr.Pass = rp
		instr.Instance.Render(instr)
	}
	return swapDamage, nil
}

// Submit finishes the pass. Calling it on a pass that is not open returns
// ErrPassNotOpen.
func (rp *RenderPass) Submit() error {
	pass := rp.handle.pass
	if pass == nil {
		return ErrPassNotOpen
	}
	rp.handle.pass = nil
	if err := pass.Submit(); err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return nil
}

// Release abandons the pass without submitting it. Releasing an open pass
// logs a warning since it usually means a missing Submit.
func (rp *RenderPass) Release() {
	warnUnsubmitted(rp.handle)
	rp.handle.pass = nil
}

// Move transfers the open backend pass and the parameters to a new
// RenderPass. rp is left without a pass and must not be submitted.
func (rp *RenderPass) Move() *RenderPass {
	moved := newRenderPass(rp.params, &passHandle{pass: rp.handle.pass})
	rp.handle.pass = nil
	return moved
}

// Target returns the target of the pass.
func (rp *RenderPass) Target() RenderTarget { return rp.params.Target }

// Renderer returns the renderer the pass draws with.
func (rp *RenderPass) Renderer() Renderer { return rp.params.Renderer }

// Pass returns the open backend pass, or nil.
func (rp *RenderPass) Pass() Pass { return rp.handle.pass }

// IsOpen reports whether the backend pass is open.
func (rp *RenderPass) IsOpen() bool { return rp.handle.pass != nil }

// Clear fills the damaged part of the target, given in geometry space, with
// color. Existing pixels are replaced, not blended.
func (rp *RenderPass) Clear(damage region.Region, color gputypes.Color) error {
	if rp.handle.pass == nil {
		return ErrPassNotOpen
	}
	target := rp.params.Target
	rp.handle.pass.AddRect(RectOptions{
		Box:   geom.BoxOf(target.Size()),
		Color: color,
		Blend: BlendNone,
		Clip:  target.FramebufferRegionFromGeometry(damage),
	})
	return nil
}

// TextureSource is a texture together with how it should be sampled.
type TextureSource struct {
	Texture Texture

	// Filter overrides the automatic choice when not undefined.
	Filter gputypes.FilterMode

	// Transform is the transform of the texture contents.
	Transform geom.Transform

	// SourceBox selects the sampled part of the texture. Nil samples the
	// whole texture.
	SourceBox *geom.FBox
}

// AddTexture draws src so that it covers geometry, clipped to damage. Both
// are given in the geometry space of target, which may differ from the pass
// target, for example when rendering into a translated copy.
//
// Unless src overrides it, nearest filtering is used when the target scale
// is integral and bilinear filtering otherwise.
func (rp *RenderPass) AddTexture(src TextureSource, target RenderTarget, geometry geom.FBox, damage region.Region, alpha float32) error {
	if rp.handle.pass == nil {
		return ErrPassNotOpen
	}

	filter := src.Filter
	if filter == gputypes.FilterModeUndefined {
		filter = preferredFilter(target.Scale)
	}

	opts := TextureOptions{
		Texture:   src.Texture,
		DstBox:    target.FramebufferFBoxFromGeometry(geometry).Box(),
		Alpha:     alpha,
		Blend:     BlendPremultiplied,
		Filter:    filter,
		Transform: src.Transform.Invert().Compose(target.Transform),
		Clip:      target.FramebufferRegionFromGeometry(damage),
	}
	if src.SourceBox != nil {
		opts.SrcBox = *src.SourceBox
	}
	rp.handle.pass.AddTexture(opts)
	return nil
}

// AddTextureBox is AddTexture with an integer geometry box.
func (rp *RenderPass) AddTextureBox(src TextureSource, target RenderTarget, geometry geom.Box, damage region.Region, alpha float32) error {
	return rp.AddTexture(src, target, geometry.FBox(), damage, alpha)
}

func preferredFilter(scale float64) gputypes.FilterMode {
	if scale == math.Trunc(scale) {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// AddRect fills geometry with a premultiplied color, clipped to damage. Both
// are given in the geometry space of target.
func (rp *RenderPass) AddRect(color gputypes.Color, target RenderTarget, geometry geom.FBox, damage region.Region) error {
	if rp.handle.pass == nil {
		return ErrPassNotOpen
	}
	box := target.FramebufferFBoxFromGeometry(geometry).Box()
	if err := debug.Check(box.Width >= 0 && box.Height >= 0,
		"render: rectangle %v maps to negative framebuffer box %v", geometry, box); err != nil {
		return err
	}
	rp.handle.pass.AddRect(RectOptions{
		Box:   box,
		Color: color,
		Blend: BlendPremultiplied,
		Clip:  target.FramebufferRegionFromGeometry(damage),
	})
	return nil
}

// AddRectBox is AddRect with an integer geometry box.
func (rp *RenderPass) AddRectBox(color gputypes.Color, target RenderTarget, geometry geom.Box, damage region.Region) error {
	return rp.AddRect(color, target, geometry.FBox(), damage)
}
