package geom

import "testing"

func TestLineSegmentSplit(t *testing.T) {
	l := NewLineSegment(Pt(0, 0), Pt(10, 10))
	left, right := l.Split(0.5)
	if left.To() != right.From() {
		t.Fatalf("split endpoints disagree: %v != %v", left.To(), right.From())
	}
	if left.To() != (Vec2{5, 5}) {
		t.Fatalf("unexpected split midpoint: %v", left.To())
	}
}

func TestLineSegmentSplitBoundaries(t *testing.T) {
	l := NewLineSegment(Pt(0, 0), Pt(4, 4))
	left, right := l.Split(0)
	if left.From() != left.To() {
		t.Fatalf("t=0 left half should be degenerate, got %v", left)
	}
	if right != l {
		t.Fatalf("t=0 right half should equal original, got %v", right)
	}

	left, right = l.Split(1)
	if right.From() != right.To() {
		t.Fatalf("t=1 right half should be degenerate, got %v", right)
	}
	if left != l {
		t.Fatalf("t=1 left half should equal original, got %v", left)
	}
}

func TestSegmentFlagsMatchKind(t *testing.T) {
	cases := []Segment{
		LineOf(Pt(0, 0), Pt(1, 1)),
		QuadraticOf(Pt(0, 0), Pt(1, 0), Pt(1, 1)),
		CubicOf(Pt(0, 0), Pt(1, 0), Pt(1, 1), Pt(2, 1)),
	}
	for _, s := range cases {
		if s.Flags != s.flagsForKind() {
			t.Fatalf("kind %v: flags %b do not match expected %b", s.Kind, s.Flags, s.flagsForKind())
		}
	}
}

func TestCubicSplitPreservesEndpoints(t *testing.T) {
	s := CubicOf(Pt(0, 0), Pt(1, 2), Pt(3, 2), Pt(4, 0))
	left, right := s.Split(0.5)
	if left.From != s.From {
		t.Fatalf("left.From changed: %v != %v", left.From, s.From)
	}
	if right.To != s.To {
		t.Fatalf("right.To changed: %v != %v", right.To, s.To)
	}
	if left.To != right.From {
		t.Fatalf("split point mismatch: %v != %v", left.To, right.From)
	}
}

func TestYExtremaWithinUnitInterval(t *testing.T) {
	// A cubic whose y goes up, down, then up again has two interior
	// y-extrema.
	s := CubicOf(Pt(0, 0), Pt(1, 10), Pt(2, -10), Pt(3, 0))
	roots := s.YExtrema()
	for _, r := range roots {
		if r <= 0 || r >= 1 {
			t.Fatalf("root %v not in (0,1)", r)
		}
	}
}

func TestAffineOffsetInvert(t *testing.T) {
	p := Pt(1, 2)
	o := Pt(2, -3)
	r := Affine2D{}.Offset(o).Transform(p)
	if want := (Vec2{3, -1}); r != want {
		t.Fatalf("offset mismatch: have %v want %v", r, want)
	}
	back := Affine2D{}.Offset(o).Invert().Transform(r)
	if absf32(back.X-p.X) > 1e-4 || absf32(back.Y-p.Y) > 1e-4 {
		t.Fatalf("offset inverse mismatch: have %v want %v", back, p)
	}
}

func TestAffineScaleAround(t *testing.T) {
	got := Affine2D{}.Scale(Pt(4, 5), Pt(2, 3)).Transform(Pt(-1, -1))
	want := Pt(-6, -13)
	if absf32(got.X-want.X) > 1e-4 || absf32(got.Y-want.Y) > 1e-4 {
		t.Fatalf("scale-around mismatch: have %v want %v", got, want)
	}
}

func TestRectUnion(t *testing.T) {
	a := RectFromPoints(Pt(0, 0), Pt(2, 2))
	b := RectFromPoints(Pt(1, 1), Pt(5, 3))
	u := a.Union(b)
	if u.Min != (Vec2{0, 0}) || u.Max != (Vec2{5, 3}) {
		t.Fatalf("union mismatch: %+v", u)
	}
}
