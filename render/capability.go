// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/config"
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/region"
)

// Buffer is a block of pixel memory that can be rendered into.
// Buffers are created by an Allocator and dropped exactly once by their owner.
type Buffer interface {
	// Width returns the buffer width in pixels.
	Width() int

	// Height returns the buffer height in pixels.
	Height() int

	// Drop releases the buffer. It must not be used afterwards.
	Drop()
}

// Texture is a sampleable view of pixel data.
type Texture interface {
	gpucontext.Texture

	// Destroy releases the texture. It must not be used afterwards.
	Destroy()
}

// PixelFormat is a DRM fourcc pixel format code.
type PixelFormat uint32

// Supported pixel formats. Both are 32 bits per pixel, stored B, G, R, A
// in memory.
const (
	FormatARGB8888 PixelFormat = 'A' | 'R'<<8 | '2'<<16 | '4'<<24
	FormatXRGB8888 PixelFormat = 'X' | 'R'<<8 | '2'<<16 | '4'<<24
)

// HasAlpha reports whether the format carries an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	return f == FormatARGB8888
}

// TextureFormat returns the equivalent GPU texture format.
func (f PixelFormat) TextureFormat() gputypes.TextureFormat {
	switch f {
	case FormatARGB8888, FormatXRGB8888:
		return gputypes.TextureFormatBGRA8Unorm
	default:
		return gputypes.TextureFormatUndefined
	}
}

// String returns the four character code, e.g. "AR24".
func (f PixelFormat) String() string {
	b := [4]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)}
	for _, c := range b {
		if c < ' ' || c > '~' {
			return fmt.Sprintf("PixelFormat(%#08x)", uint32(f))
		}
	}
	return string(b[:])
}

// Allocator creates buffers.
type Allocator interface {
	// CreateBuffer allocates a width x height buffer in the given format.
	CreateBuffer(width, height int, format PixelFormat) (Buffer, error)
}

// Renderer opens passes on buffers and derives textures from them.
type Renderer interface {
	// BeginBufferPass opens a pass drawing into buf.
	BeginBufferPass(buf Buffer, opts *PassOptions) (Pass, error)

	// TextureFromBuffer creates a texture sampling the contents of buf.
	TextureFromBuffer(buf Buffer) (Texture, error)

	// TextureFormats lists the formats the renderer can render into and
	// sample from.
	TextureFormats() []PixelFormat
}

// Binder is implemented by renderers that require the target buffer to be
// bound explicitly before instances schedule their work.
type Binder interface {
	BindBuffer(buf Buffer) error
}

// Pass records draw calls into one buffer until submitted.
type Pass interface {
	AddTexture(opts TextureOptions)
	AddRect(opts RectOptions)
	Submit() error
}

// PassOptions carries backend specific pass options.
type PassOptions struct {
	// Label identifies the pass in backend diagnostics.
	Label string
}

// BlendMode selects how draw calls combine with existing pixels.
type BlendMode uint8

const (
	// BlendPremultiplied composites premultiplied source over destination.
	BlendPremultiplied BlendMode = iota

	// BlendNone replaces destination pixels.
	BlendNone
)

// String returns the blend mode name.
func (m BlendMode) String() string {
	switch m {
	case BlendPremultiplied:
		return "premultiplied"
	case BlendNone:
		return "none"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(m))
	}
}

// State returns the GPU blend state implementing the mode.
func (m BlendMode) State() gputypes.BlendState {
	if m == BlendNone {
		return gputypes.BlendStateReplace()
	}
	return gputypes.BlendStatePremultiplied()
}

// TextureOptions describes a textured quad drawn by a Pass.
// Boxes are in framebuffer coordinates.
type TextureOptions struct {
	Texture Texture

	// SrcBox selects the sampled part of the texture. An empty box samples
	// the whole texture.
	SrcBox geom.FBox

	// DstBox is where the texture lands in the buffer.
	DstBox geom.Box

	// Alpha multiplies the sampled color, in [0, 1].
	Alpha float32

	Blend  BlendMode
	Filter gputypes.FilterMode

	// Transform is the output-style transform of the destination. The
	// texture contents are drawn with its inverse.
	Transform geom.Transform

	// Clip limits drawing to these pixels.
	Clip region.Region
}

// RectOptions describes a flat color fill drawn by a Pass.
type RectOptions struct {
	Box geom.Box

	// Color is premultiplied.
	Color gputypes.Color
	Blend BlendMode

	// Clip limits drawing to these pixels.
	Clip region.Region
}

// Env bundles the capabilities used by buffer and pass operations.
// It replaces any process-wide renderer or allocator.
type Env struct {
	Renderer  Renderer
	Allocator Allocator

	// MaxBufferSize caps auxiliary buffer dimensions. Nil or non-positive
	// values mean FallbackMaxBufferSize.
	MaxBufferSize *config.IntOption
}

func (e *Env) maxBufferSize() int {
	if v := e.MaxBufferSize.Get(); v > 0 {
		return v
	}
	return FallbackMaxBufferSize
}
