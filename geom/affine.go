package geom

import "math"

// Affine is a 2D affine transformation:
//
//	| a  b  c |
//	| d  e  f |
//	| 0  0  1 |
type Affine struct {
	a, b, c float64 // x' = ax + by + c
	d, e, f float64 // y' = dx + ey + f
}

// Identity returns the identity transformation.
func Identity() Affine {
	return Affine{a: 1, e: 1}
}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Affine {
	return Affine{a: 1, c: tx, e: 1, f: ty}
}

// Scale returns a scaling by (sx, sy) around the origin.
func Scale(sx, sy float64) Affine {
	return Affine{a: sx, e: sy}
}

// Multiply returns m * o: the result applies o first, then m.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		a: m.a*o.a + m.b*o.d,
		b: m.a*o.b + m.b*o.e,
		c: m.a*o.c + m.b*o.f + m.c,
		d: m.d*o.a + m.e*o.d,
		e: m.d*o.b + m.e*o.e,
		f: m.d*o.c + m.e*o.f + m.f,
	}
}

// Invert returns the inverse transformation.
// Returns false if the matrix is singular.
func (m Affine) Invert() (Affine, bool) {
	det := m.a*m.e - m.b*m.d
	if math.Abs(det) < 1e-12 {
		return Affine{}, false
	}
	inv := 1.0 / det
	return Affine{
		a: m.e * inv,
		b: -m.b * inv,
		c: (m.b*m.f - m.c*m.e) * inv,
		d: -m.d * inv,
		e: m.a * inv,
		f: (m.c*m.d - m.a*m.f) * inv,
	}, true
}

// Apply transforms the point p.
func (m Affine) Apply(p PointF) PointF {
	return PointF{X: m.a*p.X + m.b*p.Y + m.c, Y: m.d*p.X + m.e*p.Y + m.f}
}

// Matrix returns the six coefficients in row-major order (a, b, c, d, e, f),
// the layout used by golang.org/x/image/math/f64.Aff3.
func (m Affine) Matrix() [6]float64 {
	return [6]float64{m.a, m.b, m.c, m.d, m.e, m.f}
}

// BoxToBox returns the affine map taking the source box src onto dst, with
// the content transformed by t on the way.
func BoxToBox(src, dst FBox, t Transform) Affine {
	toUnit := Scale(1/src.Width, 1/src.Height).Multiply(Translate(-src.X, -src.Y))
	fromUnit := Translate(dst.X, dst.Y).Multiply(Scale(dst.Width, dst.Height))
	return fromUnit.Multiply(t.UnitAffine()).Multiply(toUnit)
}
