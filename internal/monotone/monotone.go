// Package monotone implements the monotonic preparer: it splits an
// arbitrary Segment into pieces each monotonic in Y, so the tiler's
// sweep-line can assume dy/dt never changes sign within a piece.
//
// Finds the Y-derivative roots the same way a quadratic/cubic bezier
// extrema computation would, specialized to the Y axis only and to
// splitting rather than bounding-box computation.
package monotone

import "github.com/vtilecore/vtile/geom"

// EPS is the tolerance near t=0/t=1 within which a root is treated as
// an endpoint rather than a true interior extremum
const EPS = 1e-3

// TINY is the minimum bounding-box extent (device pixels) below which
// a segment is treated as already monotonic rather than split further.
const TINY = 0.1

// Split returns seg split into one or more pieces, each monotonic in
// Y. Lines are always already monotonic (or exactly horizontal, which
// is trivially monotonic) and are returned unchanged as a
// single-element slice.
func Split(seg geom.Segment) []geom.Segment {
	if seg.Kind == geom.SegmentLine || seg.Kind == geom.SegmentNone {
		return []geom.Segment{seg}
	}

	box := seg.BoundingBox()
	if box.Height() < TINY {
		return []geom.Segment{seg}
	}

	roots := filterRoots(seg.YExtrema())
	if len(roots) == 0 {
		return []geom.Segment{seg}
	}

	pieces := make([]geom.Segment, 0, len(roots)+1)
	remaining := seg
	prevT := float32(0)
	for _, t := range roots {
		// t was computed against the original [0,1] parametrization;
		// translate it into the remaining piece's local parameter space.
		localT := (t - prevT) / (1 - prevT)
		left, right := remaining.Split(localT)
		pieces = append(pieces, left)
		remaining = right
		prevT = t
	}
	pieces = append(pieces, remaining)
	return pieces
}

// filterRoots drops roots within EPS of 0 or 1, and
// returns the rest in ascending order (YExtrema already sorts).
func filterRoots(roots []float32) []float32 {
	var out []float32
	for _, t := range roots {
		if t < EPS || t > 1-EPS {
			continue
		}
		out = append(out, t)
	}
	return out
}

// IsMonotonicY reports whether seg's y-coordinate is non-decreasing or
// non-increasing over its whole parameter interval — used by tests
// checking that Prepare's output segments are all y-monotone.
func IsMonotonicY(seg geom.Segment) bool {
	switch seg.Kind {
	case geom.SegmentLine, geom.SegmentNone:
		return true
	default:
		for _, t := range seg.YExtrema() {
			if t > EPS && t < 1-EPS {
				return false
			}
		}
		return true
	}
}
