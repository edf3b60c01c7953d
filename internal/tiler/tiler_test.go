package tiler

import (
	"testing"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/monotone"
	"github.com/vtilecore/vtile/internal/outline"
	"github.com/vtilecore/vtile/internal/zbuffer"
)

func unitSquareOutline(t *testing.T) *outline.Outline {
	t.Helper()
	o := outline.New()
	must(t, o.MoveTo(geom.Pt(0, 0)))
	must(t, o.LineTo(geom.Pt(16, 0)))
	must(t, o.LineTo(geom.Pt(16, 16)))
	must(t, o.LineTo(geom.Pt(0, 16)))
	must(t, o.Close())
	o.RecomputeBounds()
	return o
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// S1 — unit square, view-box (0,0,16,16), tile size 16: expect exactly
// one solid tile, zero fills.
func TestS1UnitSquareSingleSolidTile(t *testing.T) {
	o := unitSquareOutline(t)
	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(16, 16))

	zb := zbuffer.New(0, 0, 1, 1)
	tl := New(0.333)
	bo := tl.Run(prepared, viewBox, 0, 0, WindingNonZero, zb)

	if bo.TileRect != (TileRect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}) {
		t.Fatalf("unexpected tile rect: %+v", bo.TileRect)
	}
	if len(bo.Fills) != 0 {
		t.Fatalf("expected 0 fills, got %d: %+v", len(bo.Fills), bo.Fills)
	}
	if !bo.IsSolid(0) {
		t.Fatalf("expected tile (0,0) to remain solid")
	}
	if bo.Tiles[0].Backdrop == 0 {
		t.Fatalf("expected non-zero backdrop on the interior solid tile")
	}
	if zb.Get(0, 0) != 1 {
		t.Fatalf("expected z-buffer to record object 0 at cell (0,0), got %d", zb.Get(0, 0))
	}
}

// Boundary: a single horizontal line has no interior, so it produces
// no fills and no solid tiles.
func TestSingleHorizontalLineNoFillsNoSolid(t *testing.T) {
	o := outline.New()
	must(t, o.MoveTo(geom.Pt(0, 8)))
	must(t, o.LineTo(geom.Pt(16, 8)))
	must(t, o.Close())
	o.RecomputeBounds()

	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(16, 16))
	tl := New(0.333)
	bo := tl.Run(prepared, viewBox, 0, 0, WindingNonZero, nil)

	if len(bo.Fills) != 0 {
		t.Fatalf("expected no fills for a degenerate horizontal contour, got %d", len(bo.Fills))
	}
	for i := range bo.Tiles {
		if bo.IsSolid(i) {
			t.Fatalf("expected no solid tiles for a degenerate horizontal contour, tile %d is solid", i)
		}
	}
}

// Zero-size view-box produces an empty tile rect.
func TestZeroSizeViewBoxEmptyTileRect(t *testing.T) {
	o := unitSquareOutline(t)
	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(0, 0))
	tl := New(0.333)
	bo := tl.Run(prepared, viewBox, 0, 0, WindingNonZero, nil)
	if !bo.TileRect.IsEmpty() {
		t.Fatalf("expected empty tile rect, got %+v", bo.TileRect)
	}
}

func TestFillsStayWithinTileRect(t *testing.T) {
	// A diagonal crossing four 16px tiles in a 64x64 view-box (S2-like).
	o := outline.New()
	must(t, o.MoveTo(geom.Pt(0, 0)))
	must(t, o.LineTo(geom.Pt(63, 0)))
	must(t, o.LineTo(geom.Pt(63, 1)))
	must(t, o.LineTo(geom.Pt(0, 64)))
	must(t, o.Close())
	o.RecomputeBounds()

	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(64, 64))
	tl := New(0.333)
	bo := tl.Run(prepared, viewBox, 0, 1, WindingNonZero, nil)

	for _, f := range bo.Fills {
		if !bo.TileRect.Contains(f.TileX, f.TileY) {
			t.Fatalf("fill outside tile rect: %+v not in %+v", f, bo.TileRect)
		}
	}
}

// Two same-direction overlapping squares accumulate a winding of 2 in
// their shared region: nonzero treats that as solidly inside, even-odd
// treats it as outside (an even crossing count).
func overlappingSquaresOutline(t *testing.T) *outline.Outline {
	t.Helper()
	o := outline.New()
	must(t, o.MoveTo(geom.Pt(0, 0)))
	must(t, o.LineTo(geom.Pt(48, 0)))
	must(t, o.LineTo(geom.Pt(48, 48)))
	must(t, o.LineTo(geom.Pt(0, 48)))
	must(t, o.Close())
	must(t, o.MoveTo(geom.Pt(16, 16)))
	must(t, o.LineTo(geom.Pt(64, 16)))
	must(t, o.LineTo(geom.Pt(64, 64)))
	must(t, o.LineTo(geom.Pt(16, 64)))
	must(t, o.Close())
	o.RecomputeBounds()
	return o
}

func TestEvenOddExcludesOverlapNonZeroIncludesIt(t *testing.T) {
	o := overlappingSquaresOutline(t)
	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(64, 64))

	// Tile (2,2) (x,y in [32,48)) lies entirely within both squares'
	// overlap and away from any edge, so it stays solid either way;
	// only its backdrop's sign of "inside" differs by rule.
	nonzero := New(0.333).Run(prepared, viewBox, 0, 0, WindingNonZero, nil)
	evenodd := New(0.333).Run(prepared, viewBox, 0, 0, WindingEvenOdd, nil)

	idx := nonzero.TileRect.Index(2, 2)
	if !nonzero.IsSolid(idx) || nonzero.Tiles[idx].Backdrop == 0 {
		t.Fatalf("nonzero: expected overlap tile solid and inside, got solid=%v backdrop=%d",
			nonzero.IsSolid(idx), nonzero.Tiles[idx].Backdrop)
	}
	idx = evenodd.TileRect.Index(2, 2)
	if !evenodd.IsSolid(idx) || evenodd.Tiles[idx].Backdrop != 0 {
		t.Fatalf("evenodd: expected overlap tile solid and outside, got solid=%v backdrop=%d",
			evenodd.IsSolid(idx), evenodd.Tiles[idx].Backdrop)
	}
}

func TestSolidFillExclusivity(t *testing.T) {
	o := unitSquareOutline(t)
	prepared := monotone.Prepare(o)
	viewBox := geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(16, 16))
	tl := New(0.333)
	bo := tl.Run(prepared, viewBox, 0, 0, WindingNonZero, nil)

	touched := map[[2]int32]bool{}
	for _, f := range bo.Fills {
		touched[[2]int32{f.TileX, f.TileY}] = true
	}
	for i, tile := range bo.Tiles {
		if bo.IsSolid(i) && touched[[2]int32{tile.TileX, tile.TileY}] {
			t.Fatalf("tile %+v marked solid but has a fill", tile)
		}
	}
}
