// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/debug"
	"github.com/gogpu/renderpass/internal/logging"
	"github.com/gogpu/renderpass/region"
)

// FallbackMaxBufferSize is the dimension limit used when no limit is
// configured, and the limit of the second allocation attempt after the
// configured one failed.
const FallbackMaxBufferSize = 4096

// ReallocationResult reports what AuxiliaryBuffer.Allocate did.
type ReallocationResult uint8

const (
	// BufferSame means the existing buffer already had the requested size.
	BufferSame ReallocationResult = iota

	// BufferReallocated means a new buffer was allocated. Its contents are
	// undefined.
	BufferReallocated

	// BufferFailed means no buffer could be allocated. The AuxiliaryBuffer
	// is left empty.
	BufferFailed
)

// String returns the result name.
func (r ReallocationResult) String() string {
	switch r {
	case BufferSame:
		return "Same"
	case BufferReallocated:
		return "Reallocated"
	case BufferFailed:
		return "Failed"
	default:
		return fmt.Sprintf("ReallocationResult(%d)", uint8(r))
	}
}

// AllocationHints describe the intended use of an auxiliary buffer.
type AllocationHints struct {
	// NeedsAlpha selects an alpha capable format.
	NeedsAlpha bool
}

// RenderBuffer is a non-owning reference to a buffer and its size.
type RenderBuffer struct {
	buffer Buffer
	size   geom.Dimensions
}

// NewRenderBuffer references buf. A nil buffer yields the empty RenderBuffer.
func NewRenderBuffer(buf Buffer) RenderBuffer {
	if buf == nil {
		return RenderBuffer{}
	}
	return RenderBuffer{buffer: buf, size: geom.Dimensions{Width: buf.Width(), Height: buf.Height()}}
}

// Buffer returns the referenced buffer, or nil.
func (b RenderBuffer) Buffer() Buffer { return b.buffer }

// Size returns the buffer size in pixels.
func (b RenderBuffer) Size() geom.Dimensions { return b.size }

// Blit copies srcBox of the auxiliary buffer's texture into dstBox of b,
// replacing the destination pixels. Failures are logged and the copy skipped.
func (b RenderBuffer) Blit(env *Env, src *AuxiliaryBuffer, srcBox geom.FBox, dstBox geom.Box, filter gputypes.FilterMode) {
	tex, err := src.Texture(env)
	if err != nil {
		logging.Logger().Warn("render: blit skipped", "err", err)
		return
	}
	b.blitTexture(env, tex, srcBox, dstBox, filter)
}

// BlitBuffer is like Blit with a plain buffer as the source. A temporary
// texture is derived from src and destroyed afterwards.
func (b RenderBuffer) BlitBuffer(env *Env, src RenderBuffer, srcBox geom.FBox, dstBox geom.Box, filter gputypes.FilterMode) {
	if src.buffer == nil {
		return
	}
	tex, err := env.Renderer.TextureFromBuffer(src.buffer)
	if err != nil {
		logging.Logger().Warn("render: blit skipped", "err", fmt.Errorf("%w: %w", ErrTexture, err))
		return
	}
	defer tex.Destroy()
	b.blitTexture(env, tex, srcBox, dstBox, filter)
}

func (b RenderBuffer) blitTexture(env *Env, tex Texture, srcBox geom.FBox, dstBox geom.Box, filter gputypes.FilterMode) {
	if b.buffer == nil {
		return
	}
	pass, err := env.Renderer.BeginBufferPass(b.buffer, nil)
	if err != nil {
		logging.Logger().Warn("render: blit skipped", "err", fmt.Errorf("%w: %w", ErrBeginPass, err))
		return
	}
	pass.AddTexture(TextureOptions{
		Texture: tex,
		SrcBox:  srcBox,
		DstBox:  dstBox,
		Alpha:   1,
		Blend:   BlendNone,
		Filter:  filter,
		Clip:    region.FromBox(dstBox),
	})
	if err := pass.Submit(); err != nil {
		logging.Logger().Warn("render: blit submit failed", "err", err)
	}
}

// noCopy may be embedded into structs which must not be copied after first
// use. See https://golang.org/issues/8005#issuecomment-190753527.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// AuxiliaryBuffer owns an off-screen buffer and the texture derived from it.
//
// The zero value is an empty buffer ready for Allocate. An AuxiliaryBuffer
// must not be copied; use Move to transfer ownership.
type AuxiliaryBuffer struct {
	_       noCopy
	buffer  RenderBuffer
	texture Texture
}

// Allocate makes sure the buffer can hold size logical units at the given
// scale. The pixel size is ceil(size*scale) per axis, at least 1, shrunk
// uniformly if it exceeds the configured maximum dimension.
//
// If the buffer already has that pixel size nothing happens and BufferSame
// is returned; the cached texture stays valid. Otherwise the old buffer is
// freed and a new one allocated. Should the allocation fail, it is retried
// once clamped to FallbackMaxBufferSize, which recovers from a configured
// limit larger than the allocator supports.
func (a *AuxiliaryBuffer) Allocate(env *Env, size geom.Dimensions, scale float64, hints AllocationHints) ReallocationResult {
	log := logging.Logger()
	px := geom.Dimensions{
		Width:  max(1, int(math.Ceil(float64(size.Width)*scale))),
		Height: max(1, int(math.Ceil(float64(size.Height)*scale))),
	}
	px = sanitizeBufferSize(px, env.maxBufferSize())

	if a.buffer.buffer != nil && a.buffer.size == px {
		return BufferSame
	}

	a.Free()

	format, ok := chooseFormat(env.Renderer, hints)
	if !ok {
		log.Warn("render: no supported format for auxiliary buffer", "alpha", hints.NeedsAlpha)
		return BufferFailed
	}

	buf, err := env.Allocator.CreateBuffer(px.Width, px.Height, format)
	if err != nil {
		fallback := sanitizeBufferSize(px, FallbackMaxBufferSize)
		log.Warn("render: buffer allocation failed, retrying with fallback size",
			"size", px, "fallback", fallback, "err", err)
		px = fallback
		buf, err = env.Allocator.CreateBuffer(px.Width, px.Height, format)
	}
	if err != nil {
		log.Warn("render: buffer allocation failed", "size", px, "err", err)
		return BufferFailed
	}

	log.Debug("render: auxiliary buffer allocated", "size", px, "format", format)
	a.buffer = RenderBuffer{buffer: buf, size: px}
	return BufferReallocated
}

func chooseFormat(r Renderer, hints AllocationHints) (PixelFormat, bool) {
	want := FormatXRGB8888
	if hints.NeedsAlpha {
		want = FormatARGB8888
	}
	return want, slices.Contains(r.TextureFormats(), want)
}

// sanitizeBufferSize scales size down uniformly so that neither dimension
// exceeds limit.
func sanitizeBufferSize(size geom.Dimensions, limit int) geom.Dimensions {
	if size.Width <= limit && size.Height <= limit {
		return size
	}
	s := math.Min(float64(limit)/float64(size.Width), float64(limit)/float64(size.Height))
	return geom.Dimensions{
		Width:  clampDim(math.Ceil(float64(size.Width)*s), limit),
		Height: clampDim(math.Ceil(float64(size.Height)*s), limit),
	}
}

// clampDim keeps floating point error in the ceiled product from pushing a
// dimension past the limit.
func clampDim(v float64, limit int) int {
	return max(1, min(limit, int(v)))
}

// Texture returns a texture sampling the buffer, deriving it on first use.
// The texture is cached until the next Free or reallocation.
// The buffer must be allocated.
func (a *AuxiliaryBuffer) Texture(env *Env) (Texture, error) {
	if err := debug.Check(a.buffer.buffer != nil, "render: texture requested from unallocated auxiliary buffer"); err != nil {
		return nil, err
	}
	if a.texture == nil {
		tex, err := env.Renderer.TextureFromBuffer(a.buffer.buffer)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTexture, err)
		}
		a.texture = tex
	}
	return a.texture, nil
}

// Free destroys the texture and drops the buffer. Safe to call repeatedly.
func (a *AuxiliaryBuffer) Free() {
	if a.texture != nil {
		a.texture.Destroy()
		a.texture = nil
	}
	if a.buffer.buffer != nil {
		a.buffer.buffer.Drop()
	}
	a.buffer = RenderBuffer{}
}

// Move transfers the buffer and texture to a new AuxiliaryBuffer, leaving a
// empty.
func (a *AuxiliaryBuffer) Move() *AuxiliaryBuffer {
	moved := &AuxiliaryBuffer{buffer: a.buffer, texture: a.texture}
	a.buffer = RenderBuffer{}
	a.texture = nil
	return moved
}

// Buffer returns the owned buffer, or nil when empty.
func (a *AuxiliaryBuffer) Buffer() Buffer { return a.buffer.buffer }

// Size returns the buffer size in pixels, 0x0 when empty.
func (a *AuxiliaryBuffer) Size() geom.Dimensions { return a.buffer.size }

// RenderBuffer returns a non-owning reference to the buffer.
func (a *AuxiliaryBuffer) RenderBuffer() RenderBuffer { return a.buffer }
