package geom

import (
	"fmt"
	"strings"
)

// Transform describes how a buffer is displayed on an output: a rotation by
// a multiple of 90 degrees, optionally preceded by a horizontal flip.
//
// The numeric values follow the Wayland wl_output.transform enumeration:
// bit 0 marks the 90-degree-class rotations, bit 2 marks flipped variants.
type Transform uint8

const (
	TransformNormal Transform = iota
	Transform90
	Transform180
	Transform270
	TransformFlipped
	TransformFlipped90
	TransformFlipped180
	TransformFlipped270
)

const (
	transformRotation90 Transform = 1
	transformRotation   Transform = 3
	transformFlip       Transform = 4
)

var transformNames = [...]string{
	TransformNormal:     "normal",
	Transform90:         "90",
	Transform180:        "180",
	Transform270:        "270",
	TransformFlipped:    "flipped",
	TransformFlipped90:  "flipped-90",
	TransformFlipped180: "flipped-180",
	TransformFlipped270: "flipped-270",
}

// String returns the transform name as accepted by ParseTransform.
func (t Transform) String() string {
	if int(t) < len(transformNames) {
		return transformNames[t]
	}
	return fmt.Sprintf("Transform(%d)", uint8(t))
}

// ParseTransform parses a transform name such as "90" or "flipped-270".
func ParseTransform(s string) (Transform, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range transformNames {
		if s == name {
			return Transform(i), nil
		}
	}
	return TransformNormal, fmt.Errorf("geom: unknown transform %q", s)
}

// Valid reports whether t is one of the eight defined transforms.
func (t Transform) Valid() bool {
	return t <= TransformFlipped270
}

// SwapsAxes reports whether the transform exchanges width and height.
func (t Transform) SwapsAxes() bool {
	return t&transformRotation90 != 0
}

// Invert returns the transform that undoes t.
// Flipped transforms and the 180 degree rotation are their own inverse.
func (t Transform) Invert() Transform {
	if t&transformRotation90 != 0 && t&transformFlip == 0 {
		t ^= Transform180
	}
	return t
}

// Compose combines two transforms following the Wayland convention for
// content transforms. In terms of box mapping, t.Compose(o).ApplyFBox equals
// applying o.ApplyFBox first and t.ApplyFBox second.
func (t Transform) Compose(o Transform) Transform {
	flipped := (t ^ o) & transformFlip
	var rotated Transform
	if o&transformFlip != 0 {
		// A rotation by k followed by a flip equals a flip followed by a
		// rotation by -k.
		rotated = (o - t) & transformRotation
	} else {
		rotated = (t + o) & transformRotation
	}
	return flipped | rotated
}

// ApplyFBox transforms box, which lives in a space of the given width and
// height, into the transformed space. For 90-degree-class transforms the
// resulting space has width and height exchanged.
func (t Transform) ApplyFBox(box FBox, width, height float64) FBox {
	var out FBox
	if t.SwapsAxes() {
		out.Width, out.Height = box.Height, box.Width
	} else {
		out.Width, out.Height = box.Width, box.Height
	}

	switch t {
	case Transform90:
		out.X = height - box.Y - box.Height
		out.Y = box.X
	case Transform180:
		out.X = width - box.X - box.Width
		out.Y = height - box.Y - box.Height
	case Transform270:
		out.X = box.Y
		out.Y = width - box.X - box.Width
	case TransformFlipped:
		out.X = width - box.X - box.Width
		out.Y = box.Y
	case TransformFlipped90:
		out.X = box.Y
		out.Y = box.X
	case TransformFlipped180:
		out.X = box.X
		out.Y = height - box.Y - box.Height
	case TransformFlipped270:
		out.X = height - box.Y - box.Height
		out.Y = width - box.X - box.Width
	default:
		out.X = box.X
		out.Y = box.Y
	}
	return out
}

// UnitAffine returns the transform as an affine map of the unit square onto
// itself, consistent with ApplyFBox for width = height = 1.
func (t Transform) UnitAffine() Affine {
	switch t {
	case Transform90:
		return Affine{a: 0, b: -1, c: 1, d: 1, e: 0, f: 0}
	case Transform180:
		return Affine{a: -1, b: 0, c: 1, d: 0, e: -1, f: 1}
	case Transform270:
		return Affine{a: 0, b: 1, c: 0, d: -1, e: 0, f: 1}
	case TransformFlipped:
		return Affine{a: -1, b: 0, c: 1, d: 0, e: 1, f: 0}
	case TransformFlipped90:
		return Affine{a: 0, b: 1, c: 0, d: 1, e: 0, f: 0}
	case TransformFlipped180:
		return Affine{a: 1, b: 0, c: 0, d: 0, e: -1, f: 1}
	case TransformFlipped270:
		return Affine{a: 0, b: -1, c: 1, d: -1, e: 0, f: 1}
	default:
		return Identity()
	}
}
