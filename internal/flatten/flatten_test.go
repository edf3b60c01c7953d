package flatten

import (
	"testing"

	"github.com/vtilecore/vtile/geom"
)

func TestLineReturnedUnchanged(t *testing.T) {
	seg := geom.LineOf(geom.Pt(0, 0), geom.Pt(10, 10))
	pts := Points(seg, DefaultTolerance)
	if len(pts) != 2 || pts[0] != seg.From || pts[1] != seg.To {
		t.Fatalf("line flattening should be a no-op, got %v", pts)
	}
}

func TestCubicFlatnessBound(t *testing.T) {
	seg := geom.CubicOf(geom.Pt(0, 0), geom.Pt(2, 8), geom.Pt(6, 8), geom.Pt(8, 0))
	tol := float32(0.333)
	segs := Segments(seg, tol)
	if len(segs) < 2 {
		t.Fatalf("expected the curve to be subdivided into multiple pieces, got %d", len(segs))
	}
	if d := distanceOfChordApprox(seg, segs); d > tol*4 {
		t.Fatalf("flattened polyline too far from curve: %v (%d pieces)", d, len(segs))
	}
}

// distanceOfChordApprox is a coarse oracle: sample the original curve
// at several t and take the max distance to the nearest flattened
// chord endpoint span. This is intentionally loose (4x tolerance) since
// it is only a smoke check, not the property-test suite proper.
func distanceOfChordApprox(seg geom.Segment, segs []geom.LineSegment) float32 {
	var maxDist float32
	for i := 0; i <= 8; i++ {
		t := float32(i) / 8
		p := seg.Eval(t)
		d := distToSegment(p, segs[0])
		for _, l := range segs[1:] {
			if dl := distToSegment(p, l); dl < d {
				d = dl
			}
		}
		if d > maxDist {
			maxDist = d
		}
	}
	return maxDist
}

func distToSegment(p geom.Vec2, l geom.LineSegment) float32 {
	from, to := l.From(), l.To()
	ab := to.Sub(from)
	abLen := ab.Length()
	if abLen < 1e-6 {
		return p.Sub(from).Length()
	}
	ap := p.Sub(from)
	tt := ap.Dot(ab) / (abLen * abLen)
	if tt < 0 {
		tt = 0
	}
	if tt > 1 {
		tt = 1
	}
	closest := from.Add(ab.Scale(tt))
	return p.Sub(closest).Length()
}

func TestQuadraticDegreeElevated(t *testing.T) {
	seg := geom.QuadraticOf(geom.Pt(0, 0), geom.Pt(4, 8), geom.Pt(8, 0))
	pts := Points(seg, 0.01)
	if len(pts) < 3 {
		t.Fatalf("expected quadratic to subdivide at tight tolerance, got %d points", len(pts))
	}
	if pts[0] != seg.From || pts[len(pts)-1] != seg.To {
		t.Fatalf("endpoints not preserved: %v", pts)
	}
}
