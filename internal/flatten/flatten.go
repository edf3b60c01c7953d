// Package flatten converts a single monotonic curve Segment into a
// polyline whose Hausdorff distance from the curve is bounded by a
// caller-supplied tolerance. It is invoked from inside the tiler for
// each tile-crossing piece, not as a whole-path preprocessing pass.
//
// Uses recursive de Casteljau subdivision with a distance-to-chord
// flatness test, parameterized on tolerance rather than a fixed
// constant. Quadratics are degree-elevated to cubics first via
// geom.Segment.Raise, so the subdivision itself only has one code path.
package flatten

import "github.com/vtilecore/vtile/geom"

// DefaultTolerance is the suggested flattening tolerance of ,
// in device pixels.
const DefaultTolerance = 0.333

// maxDepth bounds recursion for degenerate/near-cusp curves so a
// pathological input cannot spin forever; at depth 24 the chord length
// is already far below any meaningful device-pixel tolerance.
const maxDepth = 24

// Points flattens seg into baseline points (including both endpoints)
// such that consecutive points form line segments within tolerance of
// the original curve. Lines are returned as their two endpoints
// unchanged.
func Points(seg geom.Segment, tolerance float32) []geom.Vec2 {
	switch seg.Kind {
	case geom.SegmentLine, geom.SegmentNone:
		return []geom.Vec2{seg.From, seg.To}
	case geom.SegmentQuadratic:
		seg = seg.Raise()
	}

	pts := []geom.Vec2{seg.From}
	flattenRec(seg, tolerance, 0, &pts)
	return pts
}

func flattenRec(seg geom.Segment, tolerance float32, depth int, out *[]geom.Vec2) {
	if depth >= maxDepth || seg.FlatnessError() <= tolerance {
		*out = append(*out, seg.To)
		return
	}
	left, right := seg.Split(0.5)
	flattenRec(left, tolerance, depth+1, out)
	flattenRec(right, tolerance, depth+1, out)
}

// Segments flattens seg into a sequence of geom.LineSegment pieces,
// the shape the tiler consumes directly when clipping a flattened
// piece to tile columns.
func Segments(seg geom.Segment, tolerance float32) []geom.LineSegment {
	pts := Points(seg, tolerance)
	if len(pts) < 2 {
		return nil
	}
	out := make([]geom.LineSegment, 0, len(pts)-1)
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, geom.NewLineSegment(pts[i], pts[i+1]))
	}
	return out
}
