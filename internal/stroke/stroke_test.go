package stroke

import (
	"testing"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

func diagonalLine(t *testing.T) *outline.Outline {
	t.Helper()
	o := outline.New()
	if err := o.MoveTo(geom.Pt(0, 0)); err != nil {
		t.Fatal(err)
	}
	if err := o.LineTo(geom.Pt(64, 64)); err != nil {
		t.Fatal(err)
	}
	o.RecomputeBounds()
	return o
}

// S2 — stroking a 64-unit diagonal at width 1 should produce exactly one
// closed contour (the offset ribbon), none degenerate, with bounds that
// extend roughly half a pixel beyond the original line on either side.
func TestExpandDiagonalLineProducesRibbonContour(t *testing.T) {
	o := diagonalLine(t)
	style := DefaultStyle()
	style.Width = 1

	filled := Expand(o, style, 0.25)
	if len(filled.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(filled.Contours))
	}
	c := filled.Contours[0]
	if c.IsDegenerate() {
		t.Fatalf("expanded ribbon must not be degenerate")
	}
	if c.Bounds.Width() <= 64 || c.Bounds.Height() <= 64 {
		t.Fatalf("expected ribbon bounds to exceed the bare line's bounds, got %+v", c.Bounds)
	}
}

func TestStyleClampsMinimumWidth(t *testing.T) {
	o := diagonalLine(t)
	style := Style{Width: 0.01, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}

	filled := Expand(o, style, 0.25)
	if len(filled.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(filled.Contours))
	}
	// A hairline clamped to MinWidth still produces a non-degenerate ribbon.
	if filled.Contours[0].IsDegenerate() {
		t.Fatalf("clamped hairline stroke must still produce a non-degenerate ribbon")
	}
}

func TestExpandRoundCapAndJoin(t *testing.T) {
	o := outline.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(o.MoveTo(geom.Pt(0, 0)))
	must(o.LineTo(geom.Pt(10, 0)))
	must(o.LineTo(geom.Pt(10, 10)))
	o.RecomputeBounds()

	style := Style{Width: 2, Cap: CapRound, Join: JoinRound, MiterLimit: 4}
	filled := Expand(o, style, 0.1)

	if len(filled.Contours) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(filled.Contours))
	}
	// Round join/cap approximation should add more than the 4 corners a
	// bevel/miter join would produce.
	if filled.Contours[0].Len() < 6 {
		t.Fatalf("expected round join/cap to add extra points, got %d", filled.Contours[0].Len())
	}
}

func TestExpandClosedContourProducesTwoSubpaths(t *testing.T) {
	o := outline.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(o.MoveTo(geom.Pt(0, 0)))
	must(o.LineTo(geom.Pt(16, 0)))
	must(o.LineTo(geom.Pt(16, 16)))
	must(o.LineTo(geom.Pt(0, 16)))
	must(o.Close())
	o.RecomputeBounds()

	style := DefaultStyle()
	filled := Expand(o, style, 0.25)

	// A closed stroked contour yields an outer and inner ring (two
	// separate subpaths wound oppositely so even-odd/nonzero fill
	// produces a hollow ribbon).
	if len(filled.Contours) != 2 {
		t.Fatalf("expected 2 contours (outer + inner ring), got %d", len(filled.Contours))
	}
}
