// Package zbuffer implements a scene-level atomic Z-buffer: one atomic
// unsigned integer per scene tile, holding the largest (objectIndex+1)
// that wrote a fully-opaque-covering tile there. Updates are
// monotonic-increasing compare-and-swap, safe for concurrent use by
// every parallel tiling task.
//
// Uses a flat atomic array sized once for the whole scene, rather than
// a pool of per-tile scratch objects, since every cell is touched by
// exactly one logical counter for the run's lifetime.
package zbuffer

import "sync/atomic"

// Buffer is the Z-buffer for one scene render. MinX/MinY/Width/Height
// describe the scene's tile rectangle; cell (tx,ty) maps to index
// (ty-MinY)*Width + (tx-MinX).
type Buffer struct {
	MinX, MinY int32
	Width      int32
	Height     int32

	cells []atomic.Uint32
}

// New allocates a Z-buffer covering the given scene tile rectangle.
// All cells start at 0 (no opaque coverage).
func New(minX, minY, width, height int32) *Buffer {
	n := int(width) * int(height)
	if n < 0 {
		n = 0
	}
	return &Buffer{
		MinX: minX, MinY: minY, Width: width, Height: height,
		cells: make([]atomic.Uint32, n),
	}
}

func (b *Buffer) index(tx, ty int32) (int, bool) {
	if tx < b.MinX || ty < b.MinY || tx >= b.MinX+b.Width || ty >= b.MinY+b.Height {
		return 0, false
	}
	return int((ty-b.MinY)*b.Width + (tx - b.MinX)), true
}

// Update performs the per-cell atomic monotonic-max: it stores
// candidate at (tx,ty) only if candidate is strictly greater than the
// value already there, retrying on CAS failure. Out-of-bounds cells
// are silently ignored (a path's tile rect may legitimately extend to
// the view-box edge where no further cell exists).
func (b *Buffer) Update(tx, ty int32, candidate uint32) {
	idx, ok := b.index(tx, ty)
	if !ok {
		return
	}
	cell := &b.cells[idx]
	for {
		old := cell.Load()
		if candidate <= old {
			return
		}
		if cell.CompareAndSwap(old, candidate) {
			return
		}
	}
}

// Get returns the current value at (tx,ty): 0 if no opaque coverage,
// or k>0 meaning object index k-1 is topmost.
func (b *Buffer) Get(tx, ty int32) uint32 {
	idx, ok := b.index(tx, ty)
	if !ok {
		return 0
	}
	return b.cells[idx].Load()
}
