// Package geom provides the integer and floating point geometry used to map
// logical scene coordinates onto buffer pixels.
//
// Boxes come in two flavours: Box holds integer pixel coordinates and FBox
// holds float coordinates. Conversions from FBox to Box always round outwards
// (ContainingBox), so that a damaged area is never under-covered.
//
// Transform models the eight output transforms (rotations by multiples of
// 90 degrees, optionally flipped) a display can apply to a buffer.
package geom
