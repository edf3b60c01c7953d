package scene

import "github.com/vtilecore/vtile/internal/tiler"

// maxMaskTilesPerBatch bounds a batch's mask-tile count so indices fit
// in u16.
const maxMaskTilesPerBatch = 65535

// SolidTilePrimitive is a fully-opaque scene tile painted with a single
// shader, no mask required.
type SolidTilePrimitive struct {
	TileX, TileY int32
	Shader       uint16
}

// MaskTilePrimitive is one mask-atlas slot a batch's fills write into.
type MaskTilePrimitive struct {
	TileX, TileY int32
	Backdrop     int16
	Shader       uint16
}

// FillBatchPrimitive is a quantized, tile-clipped fill edge referencing
// a mask tile within its own batch.
type FillBatchPrimitive struct {
	Px            uint16
	Subpx         uint32
	MaskTileIndex uint16
}

// Batch bundles fills and mask tiles sized so MaskTileIndex fits in u16.
type Batch struct {
	Fills     []FillBatchPrimitive
	MaskTiles []MaskTilePrimitive
}

// BuiltScene is the fully assembled, ready-to-serialize output of
// Build: every solid tile plus every batch of mask tiles and fills
//.
type BuiltScene struct {
	ViewBoxTileRect tiler.TileRect
	Shaders         []Paint
	SolidTiles      []SolidTilePrimitive
	Batches         []Batch
}
