package tiler

import "github.com/vtilecore/vtile/geom"

// ActiveEdge is a currently-open edge of the sweep, always stored with
// From.Y <= To.Y (oriented from its upper endpoint downward,
// regardless of the original contour winding direction). Winding
// records the *original* direction's contribution: +1 if the
// un-reoriented segment advanced downward, -1 if it had to be
// reversed to satisfy the above/below convention
type ActiveEdge struct {
	Seg     geom.Segment
	Winding int32

	// contour/vertex identify which prepared-contour vertex this edge
	// will terminate at, so the sweep can resume neighbor-walking from
	// that vertex once the edge is fully consumed.
	contour, toVertex int
}

// orientFromUpper returns seg re-oriented so From is its (y,x)-upper
// endpoint, along with the winding sign the original direction
// contributes.
func orientFromUpper(seg geom.Segment) (oriented geom.Segment, winding int32) {
	if seg.From.Y == seg.To.Y {
		return seg, 0
	}
	if seg.From.Less(seg.To) {
		return seg, 1
	}
	return seg.Reversed(), -1
}

// xAtY returns the edge's x-intercept at height y, assuming
// e.Seg.From.Y <= y <= e.Seg.To.Y.
func xAtY(seg geom.Segment, y float32) float32 {
	switch seg.Kind {
	case geom.SegmentLine, geom.SegmentNone:
		return seg.AsLine().SolveXForY(y)
	default:
		return seg.Eval(bisectForY(seg, y)).X
	}
}

// bisectForY finds t in [0,1] such that seg.Eval(t).Y == y, assuming
// seg is monotonic non-decreasing in Y (From.Y <= To.Y).
func bisectForY(seg geom.Segment, y float32) float32 {
	lo, hi := float32(0), float32(1)
	for i := 0; i < 40; i++ {
		mid := (lo + hi) / 2
		if seg.Eval(mid).Y < y {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

// splitAtY splits seg (From.Y <= To.Y) at height y. If seg.To.Y <= y,
// the whole segment lies at or above y and is returned as top with no
// bottom remainder. Endpoints touching the split line are clamped
// exactly to y numerical guard against cross-strip
// leakage.
func splitAtY(seg geom.Segment, y float32) (top, bottom geom.Segment, hasBottom bool) {
	if seg.To.Y <= y {
		return seg, geom.Segment{}, false
	}
	if seg.From.Y >= y {
		return geom.Segment{}, seg, true
	}

	var t float32
	if seg.Kind == geom.SegmentLine || seg.Kind == geom.SegmentNone {
		t, _ = seg.AsLine().SolveTForY(y)
	} else {
		t = bisectForY(seg, y)
	}
	left, right := seg.Split(t)
	left.To.Y = y
	right.From.Y = y
	return left, right, true
}
