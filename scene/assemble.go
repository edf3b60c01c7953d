package scene

import (
	"github.com/vtilecore/vtile/internal/tiler"
	"github.com/vtilecore/vtile/internal/zbuffer"
)

// maskSlot records where one object-local tile landed: which batch, and
// its mask-tile index within that batch.
type maskSlot struct {
	batch int
	index uint16
	ok    bool
}

// assemble implements serial batching pass: walk the
// Z-buffer for solid tiles, then for each object allocate mask-tile
// slots for its non-solid, non-occluded tiles, then walk its fills
// routing each into its tile's slot (dropping fills for occluded
// tiles).
func assemble(sc *Scene, built []*tiler.BuiltObject, zb *zbuffer.Buffer, sceneTileRect tiler.TileRect) *BuiltScene {
	out := &BuiltScene{
		ViewBoxTileRect: sceneTileRect,
		Shaders:         sc.Paints.Paints(),
		Batches:         []Batch{{}},
	}

	for ty := sceneTileRect.MinY; ty < sceneTileRect.MaxY; ty++ {
		for tx := sceneTileRect.MinX; tx < sceneTileRect.MaxX; tx++ {
			k := zb.Get(tx, ty)
			if k == 0 {
				continue
			}
			objIndex := int(k) - 1
			if objIndex < 0 || objIndex >= len(sc.Objects) {
				continue
			}
			out.SolidTiles = append(out.SolidTiles, SolidTilePrimitive{
				TileX: tx, TileY: ty, Shader: uint16(sc.Objects[objIndex].Paint),
			})
		}
	}

	for objIndex, bo := range built {
		if bo == nil {
			continue
		}
		slots := make([]maskSlot, len(bo.Tiles))

		for i, tile := range bo.Tiles {
			if bo.IsSolid(i) {
				continue
			}
			if int(zb.Get(tile.TileX, tile.TileY)) > objIndex+1 {
				continue // fully occluded by a later opaque object
			}
			batchIdx := len(out.Batches) - 1
			if len(out.Batches[batchIdx].MaskTiles) >= maxMaskTilesPerBatch {
				out.Batches = append(out.Batches, Batch{})
				batchIdx++
			}
			b := &out.Batches[batchIdx]
			maskIdx := uint16(len(b.MaskTiles))
			b.MaskTiles = append(b.MaskTiles, MaskTilePrimitive{
				TileX: tile.TileX, TileY: tile.TileY,
				Backdrop: tile.Backdrop, Shader: bo.Shader,
			})
			slots[i] = maskSlot{batch: batchIdx, index: maskIdx, ok: true}
		}

		for _, f := range bo.Fills {
			i := bo.TileRect.Index(f.TileX, f.TileY)
			if i < 0 || i >= len(slots) || !slots[i].ok {
				continue
			}
			slot := slots[i]
			b := &out.Batches[slot.batch]
			b.Fills = append(b.Fills, FillBatchPrimitive{
				Px: f.Px, Subpx: f.Subpx, MaskTileIndex: slot.index,
			})
		}
	}

	// Drop the initial batch when nothing was placed in it, so a scene
	// without mask tiles has no batches.
	if n := len(out.Batches); n > 0 && len(out.Batches[n-1].MaskTiles) == 0 && len(out.Batches[n-1].Fills) == 0 {
		out.Batches = out.Batches[:n-1]
	}
	return out
}
