package geom

import (
	"fmt"
	"image"
	"math"
)

// Box is an axis-aligned rectangle with integer coordinates.
type Box struct {
	X, Y          int // Top-left corner
	Width, Height int
}

// NewBox creates a Box from position and size.
func NewBox(x, y, w, h int) Box {
	return Box{X: x, Y: y, Width: w, Height: h}
}

// BoxOf returns the box at the origin with the given size.
func BoxOf(d Dimensions) Box {
	return Box{Width: d.Width, Height: d.Height}
}

// Right returns the exclusive right edge.
func (b Box) Right() int { return b.X + b.Width }

// Bottom returns the exclusive bottom edge.
func (b Box) Bottom() int { return b.Y + b.Height }

// Size returns the box dimensions.
func (b Box) Size() Dimensions {
	return Dimensions{Width: b.Width, Height: b.Height}
}

// Empty reports whether the box covers no pixels.
func (b Box) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Translate returns the box shifted by p.
func (b Box) Translate(p Point) Box {
	b.X += p.X
	b.Y += p.Y
	return b
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(p PointF) bool {
	return p.X >= float64(b.X) && p.X < float64(b.Right()) &&
		p.Y >= float64(b.Y) && p.Y < float64(b.Bottom())
}

// ContainsBox reports whether o lies entirely inside b.
func (b Box) ContainsBox(o Box) bool {
	return o.X >= b.X && o.Y >= b.Y && o.Right() <= b.Right() && o.Bottom() <= b.Bottom()
}

// Intersect returns the overlap of two boxes, or the zero Box if they do not overlap.
func (b Box) Intersect(o Box) Box {
	x0 := max(b.X, o.X)
	y0 := max(b.Y, o.Y)
	x1 := min(b.Right(), o.Right())
	y1 := min(b.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Box{}
	}
	return Box{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// FBox converts the box to floating point.
func (b Box) FBox() FBox {
	return FBox{X: float64(b.X), Y: float64(b.Y), Width: float64(b.Width), Height: float64(b.Height)}
}

// Rectangle converts the box to an image.Rectangle.
func (b Box) Rectangle() image.Rectangle {
	return image.Rect(b.X, b.Y, b.Right(), b.Bottom())
}

// BoxFromRectangle converts an image.Rectangle to a Box.
func BoxFromRectangle(r image.Rectangle) Box {
	return Box{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func (b Box) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", b.X, b.Y, b.Width, b.Height)
}

// FBox is an axis-aligned rectangle with floating point coordinates.
type FBox struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether the box has no area.
func (b FBox) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Scale multiplies position and size by s.
func (b FBox) Scale(s float64) FBox {
	return FBox{X: b.X * s, Y: b.Y * s, Width: b.Width * s, Height: b.Height * s}
}

// ContainingBox returns the smallest integer box containing b: the minimum
// corner is floored and the maximum corner is ceiled.
func (b FBox) ContainingBox() Box {
	x0 := int(math.Floor(b.X))
	y0 := int(math.Floor(b.Y))
	return Box{
		X:      x0,
		Y:      y0,
		Width:  int(math.Ceil(b.X+b.Width)) - x0,
		Height: int(math.Ceil(b.Y+b.Height)) - y0,
	}
}

// Box truncates the coordinates to integers without any rounding policy.
// It is meant for boxes already known to be integral.
func (b FBox) Box() Box {
	return Box{X: int(b.X), Y: int(b.Y), Width: int(b.Width), Height: int(b.Height)}
}

func (b FBox) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", b.X, b.Y, b.Width, b.Height)
}

// ScaleFBox maps box from the coordinate space spanned by from into the
// space spanned by to. Both axes are interpolated independently.
func ScaleFBox(from, to, box FBox) FBox {
	sx := to.Width / from.Width
	sy := to.Height / from.Height
	return FBox{
		X:      to.X + (box.X-from.X)*sx,
		Y:      to.Y + (box.Y-from.Y)*sy,
		Width:  box.Width * sx,
		Height: box.Height * sy,
	}
}
