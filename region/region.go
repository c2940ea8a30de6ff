// Package region implements damage regions: sets of pixels stored as
// non-overlapping rectangles.
//
// A Region is kept in a canonical y-x banded form. The plane is cut into
// horizontal bands; every band holds sorted, disjoint, non-touching
// horizontal spans, and vertically adjacent bands with identical spans are
// merged. Two regions covering the same pixels therefore always have the same
// representation, which makes union commutative, associative and idempotent
// on the representation itself, not only on the covered pixel set.
//
// Region is a value type. Operations return new regions and never modify the
// backing storage of their operands.
package region

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/renderpass/geom"
)

// Region is a set of pixels. The zero value is the empty region.
type Region struct {
	rects []geom.Box
}

// New returns the union of the given boxes.
func New(boxes ...geom.Box) Region {
	return Region{rects: combine(boxes, nil, opUnion)}
}

// FromBox returns the region covering a single box.
func FromBox(b geom.Box) Region {
	if b.Empty() {
		return Region{}
	}
	return Region{rects: []geom.Box{b}}
}

// Empty reports whether the region covers no pixels.
func (r Region) Empty() bool {
	return len(r.rects) == 0
}

// Len returns the number of rectangles in the canonical representation.
func (r Region) Len() int {
	return len(r.rects)
}

// Rects returns a copy of the rectangles making up the region, sorted by
// band and then by x.
func (r Region) Rects() []geom.Box {
	return slices.Clone(r.rects)
}

// Extents returns the bounding box of the region.
func (r Region) Extents() geom.Box {
	if r.Empty() {
		return geom.Box{}
	}
	x0, y0 := r.rects[0].X, r.rects[0].Y
	x1, y1 := r.rects[0].Right(), r.rects[0].Bottom()
	for _, b := range r.rects[1:] {
		x0 = min(x0, b.X)
		y0 = min(y0, b.Y)
		x1 = max(x1, b.Right())
		y1 = max(y1, b.Bottom())
	}
	return geom.Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns the number of pixels covered.
func (r Region) Area() int {
	n := 0
	for _, b := range r.rects {
		n += b.Width * b.Height
	}
	return n
}

// Equal reports whether two regions cover the same pixels.
func (r Region) Equal(o Region) bool {
	return slices.Equal(r.rects, o.rects)
}

// Union returns the pixels covered by r or o.
func (r Region) Union(o Region) Region {
	switch {
	case o.Empty():
		return r
	case r.Empty():
		return o
	}
	return Region{rects: combine(r.rects, o.rects, opUnion)}
}

// UnionBox returns the pixels covered by r or b.
func (r Region) UnionBox(b geom.Box) Region {
	return r.Union(FromBox(b))
}

// Intersect returns the pixels covered by both r and o.
func (r Region) Intersect(o Region) Region {
	if r.Empty() || o.Empty() {
		return Region{}
	}
	return Region{rects: combine(r.rects, o.rects, opIntersect)}
}

// IntersectBox returns the pixels of r inside b.
func (r Region) IntersectBox(b geom.Box) Region {
	return r.Intersect(FromBox(b))
}

// Subtract returns the pixels of r not covered by o.
func (r Region) Subtract(o Region) Region {
	if r.Empty() || o.Empty() {
		return r
	}
	return Region{rects: combine(r.rects, o.rects, opSubtract)}
}

// SubtractBox returns the pixels of r outside b.
func (r Region) SubtractBox(b geom.Box) Region {
	return r.Subtract(FromBox(b))
}

// Translate returns the region shifted by p.
func (r Region) Translate(p geom.Point) Region {
	if r.Empty() {
		return r
	}
	out := make([]geom.Box, len(r.rects))
	for i, b := range r.rects {
		out[i] = b.Translate(p)
	}
	return Region{rects: out}
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(p geom.PointF) bool {
	for _, b := range r.rects {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// ContainsBox reports whether every pixel of b is inside the region.
func (r Region) ContainsBox(b geom.Box) bool {
	if b.Empty() {
		return true
	}
	return FromBox(b).Subtract(r).Empty()
}

// Add adds the box to the region in place.
func (r *Region) Add(b geom.Box) {
	*r = r.UnionBox(b)
}

// AddRegion adds every pixel of o to the region in place.
func (r *Region) AddRegion(o Region) {
	*r = r.Union(o)
}

// Clear empties the region.
func (r *Region) Clear() {
	r.rects = nil
}

func (r Region) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, b := range r.rects {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(b.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// GoString helps test failure output.
func (r Region) GoString() string {
	return fmt.Sprintf("region.New(%v)", r.rects)
}
