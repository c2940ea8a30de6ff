// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/renderpass/geom"
	"github.com/gogpu/renderpass/internal/debug"
	"github.com/gogpu/renderpass/region"
)

// RenderTarget is a buffer together with the placement of logical geometry
// inside it.
//
// Geometry is the logical rectangle the buffer shows. Scale is the number of
// pixels per logical unit. Transform describes how the buffer contents are
// displayed, so mapping geometry into the buffer applies its inverse.
// Optionally a sub-buffer restricts the target to a crop of the buffer, into
// which the full geometry is mapped proportionally.
//
// RenderTarget is a value type; copies are independent.
type RenderTarget struct {
	RenderBuffer

	Geometry  geom.Box
	Scale     float64
	Transform geom.Transform

	subbuffer    geom.Box
	hasSubbuffer bool
}

// NewRenderTarget returns a target covering buf at scale 1 with the normal
// transform. The geometry spans the buffer starting at the origin.
func NewRenderTarget(buf RenderBuffer) RenderTarget {
	return RenderTarget{
		RenderBuffer: buf,
		Geometry:     geom.BoxOf(buf.Size()),
		Scale:        1,
		Transform:    geom.TransformNormal,
	}
}

// TargetFromAuxiliary returns NewRenderTarget for the auxiliary buffer's
// current buffer. The target does not own the buffer.
func TargetFromAuxiliary(a *AuxiliaryBuffer) RenderTarget {
	return NewRenderTarget(a.RenderBuffer())
}

// WithSubbuffer returns a copy of t restricted to box, which must lie inside
// the buffer.
func (t RenderTarget) WithSubbuffer(box geom.Box) (RenderTarget, error) {
	if err := debug.Check(!box.Empty() && geom.BoxOf(t.Size()).ContainsBox(box),
		"render: sub-buffer %v outside buffer %v", box, t.Size()); err != nil {
		return t, err
	}
	t.subbuffer = box
	t.hasSubbuffer = true
	return t, nil
}

// WithoutSubbuffer returns a copy of t covering the whole buffer.
func (t RenderTarget) WithoutSubbuffer() RenderTarget {
	t.subbuffer = geom.Box{}
	t.hasSubbuffer = false
	return t
}

// Subbuffer returns the crop rectangle, if any.
func (t RenderTarget) Subbuffer() (geom.Box, bool) {
	return t.subbuffer, t.hasSubbuffer
}

// Translated returns a copy of t with the geometry moved by offset.
func (t RenderTarget) Translated(offset geom.Point) RenderTarget {
	t.Geometry = t.Geometry.Translate(offset)
	return t
}

func (t RenderTarget) fullBuffer() geom.FBox {
	return geom.BoxOf(t.Size()).FBox()
}

// FramebufferFBoxFromGeometry maps a box from geometry space into buffer
// pixels.
func (t RenderTarget) FramebufferFBoxFromGeometry(box geom.FBox) geom.FBox {
	box.X -= float64(t.Geometry.X)
	box.Y -= float64(t.Geometry.Y)
	box = box.Scale(t.Scale)

	// The box now lives in the displayed (transformed) space, whose extent
	// is the buffer size with axes exchanged for 90 degree rotations.
	w, h := float64(t.Size().Width), float64(t.Size().Height)
	if t.Transform.SwapsAxes() {
		w, h = h, w
	}
	result := t.Transform.Invert().ApplyFBox(box, w, h)

	if t.hasSubbuffer {
		result = geom.ScaleFBox(t.fullBuffer(), t.subbuffer.FBox(), result)
	}
	return result
}

// FramebufferBoxFromGeometry maps an integer box into buffer pixels. The
// result is the smallest integer box containing the exact mapping.
func (t RenderTarget) FramebufferBoxFromGeometry(box geom.Box) geom.Box {
	return t.FramebufferFBoxFromGeometry(box.FBox()).ContainingBox()
}

// GeometryFBoxFromFramebuffer maps a box from buffer pixels back into
// geometry space. A target with zero scale maps everything to the empty box.
func (t RenderTarget) GeometryFBoxFromFramebuffer(box geom.FBox) geom.FBox {
	if t.hasSubbuffer {
		box = geom.ScaleFBox(t.subbuffer.FBox(), t.fullBuffer(), box)
	}

	size := t.Size()
	result := t.Transform.ApplyFBox(box, float64(size.Width), float64(size.Height))

	if t.Scale == 0 {
		return geom.FBox{}
	}
	result = result.Scale(1 / t.Scale)
	result.X += float64(t.Geometry.X)
	result.Y += float64(t.Geometry.Y)
	return result
}

// GeometryBoxFromFramebuffer maps an integer pixel box back into geometry
// space, rounding outward.
func (t RenderTarget) GeometryBoxFromFramebuffer(box geom.Box) geom.Box {
	return t.GeometryFBoxFromFramebuffer(box.FBox()).ContainingBox()
}

// FramebufferRegionFromGeometry maps every rectangle of r into buffer
// pixels and returns the union.
func (t RenderTarget) FramebufferRegionFromGeometry(r region.Region) region.Region {
	boxes := r.Rects()
	for i, b := range boxes {
		boxes[i] = t.FramebufferBoxFromGeometry(b)
	}
	return region.New(boxes...)
}

// GeometryRegionFromFramebuffer maps every rectangle of r back into
// geometry space and returns the union.
func (t RenderTarget) GeometryRegionFromFramebuffer(r region.Region) region.Region {
	boxes := r.Rects()
	for i, b := range boxes {
		boxes[i] = t.GeometryBoxFromFramebuffer(b)
	}
	return region.New(boxes...)
}
