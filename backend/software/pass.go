// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package software

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/region"
	"github.com/gogpu/renderpass/render"
)

// Pass draws directly into the destination image; Submit only reports the
// first error met while drawing.
type Pass struct {
	dst       *image.RGBA
	err       error
	submitted bool
}

// AddTexture implements render.Pass.
func (p *Pass) AddTexture(opts render.TextureOptions) {
	tex, ok := opts.Texture.(*Texture)
	if !ok || tex == nil {
		p.fail(fmt.Errorf("%w: texture %T", ErrForeign, opts.Texture))
		return
	}
	if opts.DstBox.Empty() || opts.Alpha <= 0 {
		return
	}
	mask, clip := clipMask(p.dst.Bounds(), opts.Clip)
	if clip.Empty() {
		return
	}

	srcBox := opts.SrcBox
	if srcBox.Empty() {
		srcBox = geom.BoxFromRectangle(tex.img.Bounds()).FBox()
	}
	sr := srcBox.ContainingBox().Rectangle().Intersect(tex.img.Bounds())
	if sr.Empty() {
		return
	}

	// Contents are drawn with the inverse of the option transform, the same
	// mapping RenderTarget uses from geometry to framebuffer.
	m := geom.BoxToBox(srcBox, opts.DstBox.FBox(), opts.Transform.Invert())
	xopts := &xdraw.Options{DstMask: mask}
	if opts.Alpha < 1 {
		xopts.SrcMask = image.NewUniform(color.Alpha16{A: uint16(opts.Alpha * 0xffff)})
	}
	interpolator(opts.Filter).Transform(p.dst, f64.Aff3(m.Matrix()), tex.img, sr, op(opts.Blend), xopts)
}

// AddRect implements render.Pass.
func (p *Pass) AddRect(opts render.RectOptions) {
	r := opts.Box.Rectangle().Intersect(p.dst.Bounds())
	if r.Empty() {
		return
	}
	mask, clip := clipMask(r, opts.Clip)
	if clip.Empty() {
		return
	}
	src := image.NewUniform(rgba64(opts.Color))
	xdraw.DrawMask(p.dst, clip, src, image.Point{}, mask, clip.Min, op(opts.Blend))
}

// Submit implements render.Pass.
func (p *Pass) Submit() error {
	if p.submitted {
		return ErrPassSubmitted
	}
	p.submitted = true
	return p.err
}

func (p *Pass) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

// clipMask rasterizes the part of clip inside bounds. It also returns the
// bounding rectangle of the covered pixels.
func clipMask(bounds image.Rectangle, clip region.Region) (*image.Alpha, image.Rectangle) {
	clip = clip.IntersectBox(geom.BoxFromRectangle(bounds))
	if clip.Empty() {
		return nil, image.Rectangle{}
	}
	extents := clip.Extents().Rectangle()
	mask := image.NewAlpha(bounds)
	for _, b := range clip.Rects() {
		xdraw.Draw(mask, b.Rectangle(), image.Opaque, image.Point{}, xdraw.Src)
	}
	return mask, extents
}

func interpolator(f gputypes.FilterMode) xdraw.Interpolator {
	if f == gputypes.FilterModeLinear {
		return xdraw.ApproxBiLinear
	}
	return xdraw.NearestNeighbor
}

func op(m render.BlendMode) xdraw.Op {
	if m == render.BlendNone {
		return xdraw.Src
	}
	return xdraw.Over
}

func rgba64(c gputypes.Color) color.RGBA64 {
	return color.RGBA64{R: unit16(c.R), G: unit16(c.G), B: unit16(c.B), A: unit16(c.A)}
}

func unit16(v float64) uint16 {
	return uint16(min(1, max(0, v))*0xffff + 0.5)
}
