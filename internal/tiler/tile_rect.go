// Package tiler implements a per-path active-edge sweep: it consumes a
// monotone.PreparedOutline and produces one BuiltObject of tile-sized
// fill/backdrop/solid-tile primitives, updating a shared Z-buffer for
// occlusion culling as it goes.
//
// The sweep structure — point priority queue, sorted active-edge list,
// a per-strip cursor walking tiles left to right accumulating backdrop
// — reshapes tile binning from an analytic-coverage rasterizer into a
// primitive emitter, with point/active-edge tie-break ordering matched
// to a reference partitioner's exact semantics.
package tiler

import "github.com/vtilecore/vtile/geom"

// Rect and Vec2 are re-exported from geom for brevity within this
// package's sweep code.
type Rect = geom.Rect
type Vec2 = geom.Vec2

// TileSize is the fixed tile edge length in device pixels.
const TileSize = 16

// TileRect is an axis-aligned rectangle in integer tile coordinates,
// [MinX, MaxX) x [MinY, MaxY).
type TileRect struct {
	MinX, MinY, MaxX, MaxY int32
}

func (r TileRect) Width() int32  { return r.MaxX - r.MinX }
func (r TileRect) Height() int32 { return r.MaxY - r.MinY }
func (r TileRect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

func (r TileRect) Contains(tx, ty int32) bool {
	return tx >= r.MinX && tx < r.MaxX && ty >= r.MinY && ty < r.MaxY
}

// Index returns the row-major index of tile (tx,ty) within r.
func (r TileRect) Index(tx, ty int32) int {
	return int((ty-r.MinY)*r.Width() + (tx - r.MinX))
}

func floorDiv(v, d float32) int32 {
	q := v / d
	fq := int32(q)
	if q < 0 && float32(fq) != q {
		fq--
	}
	return fq
}

func ceilDiv(v, d float32) int32 {
	q := v / d
	cq := int32(q)
	if q > 0 && float32(cq) != q {
		cq++
	}
	return cq
}

// NewTileRect computes the outward-rounded tile rectangle covering the
// intersection of bounds (outline bounds) and viewBox
func NewTileRect(bounds, viewBox Rect, tileW, tileH float32) TileRect {
	clip := bounds.Intersect(viewBox)
	if clip.IsEmpty() {
		return TileRect{}
	}
	return TileRect{
		MinX: floorDiv(clip.Min.X, tileW),
		MinY: floorDiv(clip.Min.Y, tileH),
		MaxX: ceilDiv(clip.Max.X, tileW),
		MaxY: ceilDiv(clip.Max.Y, tileH),
	}
}
