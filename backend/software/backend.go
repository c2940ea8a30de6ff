// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/renderpass/backend"
	"github.com/gogpu/renderpass/render"
)

// Software backend errors.
var (
	// ErrTooLarge is returned for buffers exceeding the texture dimension
	// limit.
	ErrTooLarge = errors.New("software: buffer exceeds maximum texture dimension")

	// ErrInvalidSize is returned for buffers or textures without area.
	ErrInvalidSize = errors.New("software: invalid size")

	// ErrForeign is returned for buffers or textures created elsewhere.
	ErrForeign = errors.New("software: resource not created by this backend")

	// ErrDataSize is returned by NewTextureFromRGBA for mismatched data.
	ErrDataSize = errors.New("software: pixel data size mismatch")

	// ErrPassSubmitted is returned when submitting a pass twice.
	ErrPassSubmitted = errors.New("software: pass already submitted")
)

func init() {
	backend.Register(backend.BackendSoftware, func() backend.Backend {
		return New()
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithLimits sets the device limits. Only MaxTextureDimension2D is used.
func WithLimits(l gputypes.Limits) Option {
	return func(b *Backend) {
		b.limits = l
	}
}

// WithMaxDimension sets the largest buffer width or height.
func WithMaxDimension(n int) Option {
	return func(b *Backend) {
		b.limits.MaxTextureDimension2D = uint32(max(0, n)) //nolint:gosec // clamped to non-negative
	}
}

// Backend renders on the CPU. It implements backend.Backend and
// gpucontext.TextureCreator.
type Backend struct {
	limits gputypes.Limits
}

var (
	_ backend.Backend           = (*Backend)(nil)
	_ gpucontext.TextureCreator = (*Backend)(nil)
)

// New creates a software backend with gputypes.DefaultLimits unless
// overridden.
func New(opts ...Option) *Backend {
	b := &Backend{limits: gputypes.DefaultLimits()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Name returns "software".
func (b *Backend) Name() string { return backend.BackendSoftware }

// Close is a no-op; all memory is garbage collected.
func (b *Backend) Close() {}

// MaxDimension returns the largest allowed buffer width or height.
func (b *Backend) MaxDimension() int {
	return int(b.limits.MaxTextureDimension2D)
}

// CreateBuffer implements render.Allocator.
func (b *Backend) CreateBuffer(width, height int, format render.PixelFormat) (render.Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if limit := b.MaxDimension(); width > limit || height > limit {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrTooLarge, width, height, limit)
	}
	return &Buffer{img: image.NewRGBA(image.Rect(0, 0, width, height)), format: format}, nil
}

// TextureFormats implements render.Renderer.
func (b *Backend) TextureFormats() []render.PixelFormat {
	return []render.PixelFormat{render.FormatARGB8888, render.FormatXRGB8888}
}

// TextureFromBuffer implements render.Renderer. The texture shares the
// buffer's pixels.
func (b *Backend) TextureFromBuffer(buf render.Buffer) (render.Texture, error) {
	sb, ok := buf.(*Buffer)
	if !ok || sb.img == nil {
		return nil, ErrForeign
	}
	return &Texture{img: sb.img}, nil
}

// NewTextureFromRGBA implements gpucontext.TextureCreator. The data must
// hold width*height premultiplied RGBA pixels and is copied.
func (b *Backend) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), width*height*4)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, data)
	return &Texture{img: img}, nil
}

// BeginBufferPass implements render.Renderer.
func (b *Backend) BeginBufferPass(buf render.Buffer, _ *render.PassOptions) (render.Pass, error) {
	sb, ok := buf.(*Buffer)
	if !ok || sb.img == nil {
		return nil, ErrForeign
	}
	return &Pass{dst: sb.img}, nil
}

// Buffer is a CPU buffer.
type Buffer struct {
	img    *image.RGBA
	format render.PixelFormat
}

// NewBuffer wraps an existing image as a buffer. The image is used without
// copying.
func NewBuffer(img *image.RGBA, format render.PixelFormat) *Buffer {
	return &Buffer{img: img, format: format}
}

// Width implements render.Buffer.
func (buf *Buffer) Width() int { return buf.img.Bounds().Dx() }

// Height implements render.Buffer.
func (buf *Buffer) Height() int { return buf.img.Bounds().Dy() }

// Format returns the nominal pixel format.
func (buf *Buffer) Format() render.PixelFormat { return buf.format }

// Image returns the pixels. The image is shared, not copied.
func (buf *Buffer) Image() *image.RGBA { return buf.img }

// Drop implements render.Buffer. The pixels remain valid for textures
// sharing them until those are destroyed.
func (buf *Buffer) Drop() {}

// Texture is a CPU texture.
type Texture struct {
	img *image.RGBA
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.img.Bounds().Dx() }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.img.Bounds().Dy() }

// Image returns the sampled pixels.
func (t *Texture) Image() *image.RGBA { return t.img }

// Destroy implements render.Texture.
func (t *Texture) Destroy() {}

// ImageOf returns the pixels of a software buffer.
func ImageOf(buf render.Buffer) (*image.RGBA, bool) {
	sb, ok := buf.(*Buffer)
	if !ok {
		return nil, false
	}
	return sb.img, true
}
