package renderpass

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
)

// PostHook post-processes a rendered frame.
//
// Post reads src and writes dst. damage is the part of the frame, in buffer
// pixels, that changed; everything outside it still holds the result of the
// previous frame. An error skips the hook for this frame.
type PostHook interface {
	Post(env *render.Env, src *render.AuxiliaryBuffer, dst render.RenderBuffer, damage region.Region) error
}

// PostHookFunc adapts a function to PostHook.
type PostHookFunc func(env *render.Env, src *render.AuxiliaryBuffer, dst render.RenderBuffer, damage region.Region) error

// Post implements PostHook.
func (f PostHookFunc) Post(env *render.Env, src *render.AuxiliaryBuffer, dst render.RenderBuffer, damage region.Region) error {
	return f(env, src, dst, damage)
}

// PostHandle identifies a hook added with AddPost.
type PostHandle uint64

type postEntry struct {
	handle PostHandle
	hook   PostHook
}

// AddPost appends hook to the output's post-processing chain. Hooks run in
// the order they were added. The next frame is redrawn in full.
func (o *Output) AddPost(hook PostHook) PostHandle {
	o.nextHandle++
	o.hooks = append(o.hooks, postEntry{handle: o.nextHandle, hook: hook})
	o.fullDamage = true
	return o.nextHandle
}

// RemovePost removes a hook. Unknown handles are ignored.
func (o *Output) RemovePost(h PostHandle) {
	i := slices.IndexFunc(o.hooks, func(e postEntry) bool { return e.handle == h })
	if i < 0 {
		return
	}
	o.hooks = slices.Delete(o.hooks, i, i+1)
	o.fullDamage = true
}

// passthroughHook copies the frame unchanged with its own renderer.
type passthroughHook struct {
	renderer render.Renderer
}

// NewPassthroughHook returns a hook copying the damaged part of the frame
// with renderer. A nil renderer uses the output's renderer.
func NewPassthroughHook(renderer render.Renderer) PostHook {
	return passthroughHook{renderer: renderer}
}

func (h passthroughHook) Post(env *render.Env, src *render.AuxiliaryBuffer, dst render.RenderBuffer, damage region.Region) error {
	r := h.renderer
	if r == nil {
		r = env.Renderer
	}
	tex, err := r.TextureFromBuffer(src.Buffer())
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrTexture, err)
	}
	defer tex.Destroy()

	pass, err := r.BeginBufferPass(dst.Buffer(), &render.PassOptions{Label: "passthrough"})
	if err != nil {
		return fmt.Errorf("%w: %w", render.ErrBeginPass, err)
	}
	pass.AddTexture(render.TextureOptions{
		Texture: tex,
		DstBox:  geom.BoxOf(dst.Size()),
		Alpha:   1,
		Blend:   render.BlendNone,
		Filter:  gputypes.FilterModeNearest,
		Clip:    damage,
	})
	if err := pass.Submit(); err != nil {
		return fmt.Errorf("%w: %w", render.ErrSubmit, err)
	}
	return nil
}
