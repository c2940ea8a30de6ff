package geom

import "strconv"

// Point is an integer 2D point.
type Point struct {
	X, Y int
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Neg returns the point mirrored through the origin.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// PointF is a floating point 2D point.
type PointF struct {
	X, Y float64
}

// Sub returns the difference of two points.
func (p PointF) Sub(q PointF) PointF {
	return PointF{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dimensions is a width/height pair in pixels.
type Dimensions struct {
	Width, Height int
}

// Empty reports whether either dimension is not positive.
func (d Dimensions) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

func (d Dimensions) String() string {
	return strconv.Itoa(d.Width) + "x" + strconv.Itoa(d.Height)
}
