package tiler

import (
	"sort"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/flatten"
	"github.com/vtilecore/vtile/internal/monotone"
	"github.com/vtilecore/vtile/internal/outline"
)

// TileObjectPrimitive is one tile of a BuiltObject's tile grid,
// row-major within TileRect.
type TileObjectPrimitive struct {
	TileX, TileY int32
	Backdrop     int16
}

// FillObjectPrimitive is a quantized line segment confined to one
// tile, in object-local tile-grid coordinates.
type FillObjectPrimitive struct {
	Px      uint16
	Subpx   uint32
	TileX   int32
	TileY   int32
}

// WindingRule selects how a sweep's signed crossing count is turned
// into an inside/outside decision.
type WindingRule int

const (
	// WindingNonZero treats any nonzero signed crossing count as
	// inside, with the fill's magnitude equal to that count.
	WindingNonZero WindingRule = iota
	// WindingEvenOdd treats only an odd crossing count as inside,
	// regardless of magnitude or sign.
	WindingEvenOdd
)

// effectiveWinding maps a raw signed crossing count to the signed fill
// multiplicity rule puts in effect: w itself under WindingNonZero, or
// the sign-preserving 0/±1 parity value under WindingEvenOdd (an odd
// number of crossings is inside, an even number is outside, no matter
// how many crossings piled up to get there).
func effectiveWinding(w int32, rule WindingRule) int32 {
	if rule != WindingEvenOdd {
		return w
	}
	mag := w
	if mag < 0 {
		mag = -mag
	}
	if mag%2 == 0 {
		return 0
	}
	if w < 0 {
		return -1
	}
	return 1
}

// BuiltObject is the output of tiling a single path object.
type BuiltObject struct {
	TileRect   TileRect
	Tiles      []TileObjectPrimitive
	SolidTiles []uint64
	Fills      []FillObjectPrimitive
	Shader     uint16
}

func newBuiltObject(tr TileRect, shader uint16) *BuiltObject {
	n := int(tr.Width()) * int(tr.Height())
	if n < 0 {
		n = 0
	}
	bo := &BuiltObject{
		TileRect:   tr,
		Tiles:      make([]TileObjectPrimitive, n),
		SolidTiles: make([]uint64, (n+63)/64),
		Shader:     shader,
	}
	for i := 0; i < n; i++ {
		ty := tr.MinY + int32(i)/tr.Width()
		tx := tr.MinX + int32(i)%tr.Width()
		bo.Tiles[i] = TileObjectPrimitive{TileX: tx, TileY: ty}
		bo.setSolid(i, true)
	}
	return bo
}

func (bo *BuiltObject) setSolid(i int, v bool) {
	word, bit := i/64, uint(i%64)
	if v {
		bo.SolidTiles[word] |= 1 << bit
	} else {
		bo.SolidTiles[word] &^= 1 << bit
	}
}

// IsSolid reports whether tile i (row-major index within TileRect) is
// still solid (no fill has touched it).
func (bo *BuiltObject) IsSolid(i int) bool {
	word, bit := i/64, uint(i%64)
	return bo.SolidTiles[word]&(1<<bit) != 0
}

// ZBuffer is the subset of internal/zbuffer.Buffer the tiler needs:
// an atomic monotonic-max update of the topmost covering object per
// scene tile, keyed by absolute tile coordinates.
type ZBuffer interface {
	Update(tx, ty int32, candidate uint32)
}

// Tiler runs the active-edge sweep over one prepared outline,
// producing a BuiltObject. A Tiler instance is not safe for
// concurrent reuse; each parallel tiling task constructs its own (or
// draws one from a pool, see internal/tiler.Pool).
type Tiler struct {
	tolerance float32
	rule      WindingRule

	queue   *pointQueue
	active  []ActiveEdge
	walked  [][]bool // per contour, per edge index
	contour []monotone.PreparedContour
}

// New creates a Tiler with the given flattening tolerance.
func New(tolerance float32) *Tiler {
	if tolerance <= 0 {
		tolerance = flatten.DefaultTolerance
	}
	return &Tiler{tolerance: tolerance}
}

// Run tiles prepared against viewBox under rule, recording results for
// objectIndex (its painter's-order position in the scene) with the
// given shader id, updating zbuf for occlusion culling as solid tiles
// are discovered.
func (t *Tiler) Run(prepared monotone.PreparedOutline, viewBox geom.Rect, objectIndex int, shader uint16, rule WindingRule, zbuf ZBuffer) *BuiltObject {
	tileRect := NewTileRect(prepared.Bounds, viewBox, TileSize, TileSize)
	bo := newBuiltObject(tileRect, shader)
	if tileRect.IsEmpty() {
		return bo
	}

	t.rule = rule
	t.contour = prepared.Contours
	t.queue = newPointQueue()
	t.active = t.active[:0]
	t.walked = make([][]bool, len(prepared.Contours))
	for ci, c := range prepared.Contours {
		t.walked[ci] = make([]bool, len(c.Edges))
	}

	t.seedLocalMinima()

	for yTile := tileRect.MinY; yTile < tileRect.MaxY; yTile++ {
		stripTop := float32(yTile) * TileSize
		stripBottom := float32(yTile+1) * TileSize
		t.sweepStrip(bo, tileRect, yTile, stripTop, stripBottom, objectIndex, shader, zbuf)
	}

	return bo
}

// seedLocalMinima pushes every vertex whose two contour neighbors are
// both "below" it (in (y,x) order) into the point queue, seeding the
// active-edge sweep.
func (t *Tiler) seedLocalMinima() {
	for ci, c := range t.contour {
		n := len(c.Edges)
		for vi := 0; vi < n; vi++ {
			v := c.Edges[vi].From
			prevOther := c.Edges[(vi-1+n)%n].From
			nextOther := c.Edges[vi].To
			if v.Less(prevOther) && v.Less(nextOther) {
				t.queue.push(pointItem{
					Y: v.Y, Index: outline.MakePointIndex(ci, vi),
					contour: ci, vertex: vi,
				})
			}
		}
	}
}

// walkNewEdges adds, for vertex (ci,vi), whichever of its two incident
// edges have not yet been walked and have this vertex as their upper
// endpoint step 2.
func (t *Tiler) walkNewEdges(ci, vi int) {
	c := t.contour[ci]
	n := len(c.Edges)
	prevIdx := (vi - 1 + n) % n

	t.tryWalk(ci, vi, c.Edges[vi], vi)
	t.tryWalk(ci, prevIdx, c.Edges[prevIdx], vi)
}

// tryWalk attempts to activate edges[edgeIdx] if vertex (ci,atVertex)
// is its upper endpoint and it has not been walked.
func (t *Tiler) tryWalk(ci, edgeIdx int, seg geom.Segment, atVertex int) {
	if t.walked[ci][edgeIdx] {
		return
	}
	oriented, winding := orientFromUpper(seg)
	if winding == 0 {
		t.walked[ci][edgeIdx] = true // horizontal: discard, never active
		return
	}
	// This vertex must equal the edge's upper endpoint (From) for it
	// to be addable from here.
	v := t.contour[ci].Edges[atVertex].From
	if oriented.From != v {
		return
	}
	t.walked[ci][edgeIdx] = true

	n := len(t.contour[ci].Edges)
	toVertex := edgeIdx
	if seg.From == oriented.From {
		toVertex = (edgeIdx + 1) % n
	} else {
		toVertex = edgeIdx
	}

	t.active = append(t.active, ActiveEdge{Seg: oriented, Winding: winding, contour: ci, toVertex: toVertex})
	t.queue.push(pointItem{
		Y: oriented.To.Y, Index: outline.MakePointIndex(ci, toVertex),
		contour: ci, vertex: toVertex,
	})
}

// sweepStrip performs one row of the active-edge sweep's main loop.
func (t *Tiler) sweepStrip(bo *BuiltObject, tileRect TileRect, yTile int32, stripTop, stripBottom float32, objectIndex int, shader uint16, zbuf ZBuffer) {
	old := t.active
	t.active = make([]ActiveEdge, 0, len(old))

	sort.SliceStable(old, func(i, j int) bool {
		return xAtY(old[i].Seg, stripTop) < xAtY(old[j].Seg, stripTop)
	})

	cursorTileX := tileRect.MinX
	cursorSubX := float32(0)
	winding := int32(0)

	advanceToTile := func(targetTileX int32) {
		for cursorTileX < targetTileX {
			idx := tileRect.Index(cursorTileX, yTile)
			fillWinding := effectiveWinding(winding, t.rule)
			if cursorSubX > 0 {
				t.addActiveFill(bo, cursorSubX, TileSize, fillWinding, cursorTileX, yTile)
				cursorSubX = 0
			}
			bo.Tiles[idx].Backdrop = int16(fillWinding)
			cursorTileX++
		}
	}

	for _, e := range old {
		xTop := xAtY(e.Seg, stripTop)
		edgeTileX := int32(xTop / TileSize)
		if edgeTileX < cursorTileX {
			edgeTileX = cursorTileX
		}
		if edgeTileX >= tileRect.MaxX {
			edgeTileX = tileRect.MaxX - 1
		}
		advanceToTile(edgeTileX)

		localX := xTop - float32(edgeTileX)*TileSize
		if localX > cursorSubX {
			t.addActiveFill(bo, cursorSubX, localX, effectiveWinding(winding, t.rule), edgeTileX, yTile)
		}
		cursorSubX = localX
		winding += e.Winding

		top, bottom, hasBottom := splitAtY(e.Seg, stripBottom)
		t.emitFlattenedFills(bo, top, tileRect, yTile)

		if hasBottom {
			t.active = append(t.active, ActiveEdge{Seg: bottom, Winding: e.Winding, contour: e.contour, toVertex: e.toVertex})
		}
	}

	advanceToTile(tileRect.MaxX)
	if cursorSubX > 0 && cursorTileX < tileRect.MaxX {
		t.addActiveFill(bo, cursorSubX, TileSize, effectiveWinding(winding, t.rule), cursorTileX, yTile)
	}

	// Drain the point queue for vertices discovered within this strip
	// and activate their not-yet-walked descending neighbor edges.
	for {
		y, ok := t.queue.peekY()
		if !ok || y >= stripBottom {
			break
		}
		item := t.queue.pop()
		t.walkNewEdges(item.contour, item.vertex)
	}
	// Newly walked edges this strip still need their top portion swept
	// and clipped the same way carry-over edges were above; since
	// walkNewEdges only registers them into t.active without emitting
	// their top-of-strip fill, do that pass now.
	t.sweepNewlyAdded(bo, tileRect, yTile, stripTop, stripBottom)

	t.cullSolidRow(bo, tileRect, yTile, objectIndex, zbuf)
}

// sweepNewlyAdded processes edges added to t.active during this
// strip's point-queue drain (their From is somewhere inside the strip,
// not at stripTop) exactly like process_active_edge: split at
// stripBottom, flatten+emit the top portion, keep any remainder.
func (t *Tiler) sweepNewlyAdded(bo *BuiltObject, tileRect TileRect, yTile int32, stripTop, stripBottom float32) {
	// Edges appended during sweepStrip's own loop already had their top
	// portion emitted (see the main loop above); only edges appended by
	// walkNewEdges (after that loop ran) still need processing. We
	// detect those because their Seg.From.Y > stripTop.
	pending := t.active
	t.active = t.active[:0]
	for _, e := range pending {
		if e.Seg.From.Y <= stripTop {
			t.active = append(t.active, e)
			continue
		}
		top, bottom, hasBottom := splitAtY(e.Seg, stripBottom)
		t.emitFlattenedFills(bo, top, tileRect, yTile)
		if hasBottom {
			t.active = append(t.active, ActiveEdge{Seg: bottom, Winding: e.Winding, contour: e.contour, toVertex: e.toVertex})
		}
	}
}

// emitFlattenedFills flattens seg (already confined to [stripTop,
// stripBottom]) and emits one fill per tile column it crosses.
func (t *Tiler) emitFlattenedFills(bo *BuiltObject, seg geom.Segment, tileRect TileRect, yTile int32) {
	if seg.IsNone() || seg.From == seg.To {
		return
	}
	for _, chord := range flatten.Segments(seg, t.tolerance) {
		minTx := int32(chord.MinX() / TileSize)
		maxTx := int32(chord.MaxX() / TileSize)
		if minTx < tileRect.MinX {
			minTx = tileRect.MinX
		}
		if maxTx >= tileRect.MaxX {
			maxTx = tileRect.MaxX - 1
		}
		for tx := minTx; tx <= maxTx; tx++ {
			clipped, ok := clipChordToColumn(chord, tx)
			if !ok {
				continue
			}
			t.addFill(bo, clipped, tx, yTile)
		}
	}
}

// clipChordToColumn clips a straight chord to the x-range of tile
// column tx, returning false if the chord does not intersect it.
func clipChordToColumn(l geom.LineSegment, tx int32) (geom.LineSegment, bool) {
	loX := float32(tx) * TileSize
	hiX := loX + TileSize
	from, to := l.From(), l.To()
	if from.X == to.X {
		if from.X < loX || from.X > hiX {
			return geom.LineSegment{}, false
		}
		return l, true
	}
	t0, _ := l.SolveTForX(loX)
	t1, _ := l.SolveTForX(hiX)
	tMin, tMax := t0, t1
	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	if tMin < 0 {
		tMin = 0
	}
	if tMax > 1 {
		tMax = 1
	}
	if tMin >= tMax {
		if from.X >= loX && from.X <= hiX && to.X >= loX && to.X <= hiX {
			return l, true
		}
		return geom.LineSegment{}, false
	}
	return geom.NewLineSegment(l.Sample(tMin), l.Sample(tMax)), true
}

// addFill implements add_fill: translate to tile-local
// coordinates, quantize, append, clear the tile's solid bit, and cull
// zero-length fills.
func (t *Tiler) addFill(bo *BuiltObject, l geom.LineSegment, tx, ty int32) {
	origin := geom.Pt(float32(tx)*TileSize, float32(ty)*TileSize)
	from := l.From().Sub(origin)
	to := l.To().Sub(origin)

	px, subpx, zero := packFill(from, to)
	if zero {
		return
	}
	bo.Fills = append(bo.Fills, FillObjectPrimitive{Px: px, Subpx: subpx, TileX: tx, TileY: ty})
	if bo.TileRect.Contains(tx, ty) {
		bo.setSolid(bo.TileRect.Index(tx, ty), false)
	}
}

// addActiveFill implements add_active_fill: |winding|
// horizontal fills across the top of tile (tx,ty) from leftX to
// rightX (both tile-local subpixel coordinates), oriented so their
// signed contribution matches winding's sign.
func (t *Tiler) addActiveFill(bo *BuiltObject, leftX, rightX float32, winding int32, tx, ty int32) {
	if winding == 0 || leftX >= rightX {
		return
	}
	n := winding
	if n < 0 {
		n = -n
	}
	y := float32(0)
	for i := int32(0); i < n; i++ {
		var from, to geom.Vec2
		if winding > 0 {
			from, to = geom.Pt(leftX, y), geom.Pt(rightX, y)
		} else {
			from, to = geom.Pt(rightX, y), geom.Pt(leftX, y)
		}
		px, subpx, zero := packFill(from, to)
		if zero {
			continue
		}
		bo.Fills = append(bo.Fills, FillObjectPrimitive{Px: px, Subpx: subpx, TileX: tx, TileY: ty})
		if bo.TileRect.Contains(tx, ty) {
			bo.setSolid(bo.TileRect.Index(tx, ty), false)
		}
	}
}

// cullSolidRow implements post-strip culling step: any
// tile in this row that is still solid and has non-zero backdrop gets
// its coverage recorded in the scene Z-buffer.
func (t *Tiler) cullSolidRow(bo *BuiltObject, tileRect TileRect, yTile int32, objectIndex int, zbuf ZBuffer) {
	if zbuf == nil {
		return
	}
	for tx := tileRect.MinX; tx < tileRect.MaxX; tx++ {
		idx := tileRect.Index(tx, yTile)
		if bo.IsSolid(idx) && bo.Tiles[idx].Backdrop != 0 {
			zbuf.Update(tx, yTile, uint32(objectIndex+1))
		}
	}
}
