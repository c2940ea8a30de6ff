// Package instances provides ready-made render.Instance implementations:
// flat rectangles, textured quads and translated groups.
//
// Opaque instances remove the area they cover from the damage while
// scheduling, so instances behind them are not asked to redraw hidden
// pixels.
package instances
