package scene

import (
	"testing"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

func square(t *testing.T, x0, y0, x1, y1 float32) *outline.Outline {
	t.Helper()
	o := outline.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(o.MoveTo(geom.Pt(x0, y0)))
	must(o.LineTo(geom.Pt(x1, y0)))
	must(o.LineTo(geom.Pt(x1, y1)))
	must(o.LineTo(geom.Pt(x0, y1)))
	must(o.Close())
	o.RecomputeBounds()
	return o
}

// S1 — a single unit square over a matching view-box produces exactly
// one solid tile and zero batches' worth of fills.
func TestBuildUnitSquareProducesOneSolidTile(t *testing.T) {
	sc := New(geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(16, 16)))
	red := sc.Paints.Intern(Paint{R: 255, A: 255})
	sc.AddFill(square(t, 0, 0, 16, 16), red, FillNonZero, "square")

	built := Build(sc, BuildConfig{Threads: 2})

	if len(built.SolidTiles) != 1 {
		t.Fatalf("expected 1 solid tile, got %d: %+v", len(built.SolidTiles), built.SolidTiles)
	}
	if built.SolidTiles[0].TileX != 0 || built.SolidTiles[0].TileY != 0 {
		t.Fatalf("unexpected solid tile location: %+v", built.SolidTiles[0])
	}
	total := 0
	for _, b := range built.Batches {
		total += len(b.Fills)
	}
	if total != 0 {
		t.Fatalf("expected 0 fills, got %d", total)
	}
}

// S3 — two overlapping opaque squares, B drawn after A and covering A
// entirely: the solid-tile section should record only B's shader over
// the shared region, and B's occlusion of A must drop A's tiles.
func TestBuildOcclusionKeepsOnlyTopmostObject(t *testing.T) {
	sc := New(geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(16, 16)))
	a := sc.Paints.Intern(Paint{R: 255, A: 255})
	b := sc.Paints.Intern(Paint{B: 255, A: 255})

	sc.AddFill(square(t, 0, 0, 16, 16), a, FillNonZero, "a")
	sc.AddFill(square(t, 0, 0, 16, 16), b, FillNonZero, "b")

	built := Build(sc, BuildConfig{Threads: 2})

	if len(built.SolidTiles) != 1 {
		t.Fatalf("expected 1 solid tile (B only), got %d: %+v", len(built.SolidTiles), built.SolidTiles)
	}
	if built.SolidTiles[0].Shader != uint16(b) {
		t.Fatalf("expected solid tile to carry B's shader %d, got %d", b, built.SolidTiles[0].Shader)
	}
}

func TestBuildEmptySceneProducesNoBatches(t *testing.T) {
	sc := New(geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(0, 0)))
	built := Build(sc, BuildConfig{Threads: 1})
	if len(built.SolidTiles) != 0 {
		t.Fatalf("expected no solid tiles for a zero-size view-box, got %d", len(built.SolidTiles))
	}
	if len(built.Batches) != 0 {
		t.Fatalf("expected no batches for a zero-size view-box, got %d", len(built.Batches))
	}
}

func TestAssembleFillsReferenceSameBatchMaskTile(t *testing.T) {
	sc := New(geom.RectFromPoints(geom.Pt(0, 0), geom.Pt(64, 64)))
	red := sc.Paints.Intern(Paint{R: 255, A: 255})
	// A diagonal square rotated via an irregular quad forces fill edges
	// rather than a clean solid tile.
	o := outline.New()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(o.MoveTo(geom.Pt(0, 32)))
	must(o.LineTo(geom.Pt(32, 0)))
	must(o.LineTo(geom.Pt(64, 32)))
	must(o.LineTo(geom.Pt(32, 64)))
	must(o.Close())
	o.RecomputeBounds()
	sc.AddFill(o, red, FillNonZero, "diamond")

	built := Build(sc, BuildConfig{Threads: 2})

	for bi, b := range built.Batches {
		for _, f := range b.Fills {
			if int(f.MaskTileIndex) >= len(b.MaskTiles) {
				t.Fatalf("batch %d: fill references mask tile %d but batch only has %d", bi, f.MaskTileIndex, len(b.MaskTiles))
			}
		}
	}
}
