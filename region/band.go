package region

import (
	"slices"

	"github.com/gogpu/renderpass/geom"
)

type op uint8

const (
	opUnion op = iota
	opIntersect
	opSubtract
)

func (o op) keep(inA, inB bool) bool {
	switch o {
	case opIntersect:
		return inA && inB
	case opSubtract:
		return inA && !inB
	default:
		return inA || inB
	}
}

// span is a half-open horizontal interval [x0, x1).
type span struct {
	x0, x1 int
}

// band is a horizontal strip [y0, y1) with its covered spans.
type band struct {
	y0, y1 int
	spans  []span
}

// combine applies the boolean operation to two arbitrary rectangle lists and
// returns the canonical banded form of the result. The inputs do not need to
// be canonical.
func combine(a, b []geom.Box, o op) []geom.Box {
	ys := make([]int, 0, 2*(len(a)+len(b)))
	for _, list := range [][]geom.Box{a, b} {
		for _, r := range list {
			if !r.Empty() {
				ys = append(ys, r.Y, r.Bottom())
			}
		}
	}
	if len(ys) == 0 {
		return nil
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var bands []band
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		spans := combineSpans(spansIn(a, y0, y1), spansIn(b, y0, y1), o)
		if len(spans) == 0 {
			continue
		}
		if n := len(bands); n > 0 && bands[n-1].y1 == y0 && slices.Equal(bands[n-1].spans, spans) {
			bands[n-1].y1 = y1
			continue
		}
		bands = append(bands, band{y0: y0, y1: y1, spans: spans})
	}

	var out []geom.Box
	for _, bd := range bands {
		for _, s := range bd.spans {
			out = append(out, geom.Box{X: s.x0, Y: bd.y0, Width: s.x1 - s.x0, Height: bd.y1 - bd.y0})
		}
	}
	return out
}

// spansIn returns the merged spans of all rectangles covering the band.
// Band edges come from every rectangle edge, so a rectangle either covers
// the whole band or misses it.
func spansIn(rects []geom.Box, y0, y1 int) []span {
	var spans []span
	for _, r := range rects {
		if r.Empty() || r.Y > y0 || r.Bottom() < y1 {
			continue
		}
		spans = append(spans, span{x0: r.X, x1: r.Right()})
	}
	return mergeSpans(spans)
}

// mergeSpans sorts the spans and joins overlapping or touching ones.
func mergeSpans(spans []span) []span {
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(p, q span) int { return p.x0 - q.x0 })
	out := spans[:1]
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.x0 <= last.x1 {
			last.x1 = max(last.x1, s.x1)
			continue
		}
		out = append(out, s)
	}
	return out
}

func covered(spans []span, x int) bool {
	for _, s := range spans {
		if x >= s.x0 && x < s.x1 {
			return true
		}
	}
	return false
}

// combineSpans applies the operation to two merged span lists.
func combineSpans(a, b []span, o op) []span {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	xs := make([]int, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		xs = append(xs, s.x0, s.x1)
	}
	for _, s := range b {
		xs = append(xs, s.x0, s.x1)
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var out []span
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		if !o.keep(covered(a, x0), covered(b, x0)) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].x1 == x0 {
			out[n-1].x1 = x1
			continue
		}
		out = append(out, span{x0: x0, x1: x1})
	}
	return out
}
