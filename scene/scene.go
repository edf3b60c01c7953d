// Package scene is the top-level Scene/PathObject/Paint model and the
// parallel build pipeline: Build tiles every object concurrently, then
// a serial assembly pass culls occluded tiles via the Z-buffer and
// packs survivors into u16-indexed batches.
package scene

import (
	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

// Paint is an opaque 8-bit-per-channel RGBA color, the only paint kind
// this core requires.
type Paint struct {
	R, G, B, A uint8
}

// PaintId is a 16-bit index into a Scene's interned paint table.
type PaintId uint16

// PaintTable interns Paint values by equality, so repeated colors across
// many objects share one shader slot.
type PaintTable struct {
	paints []Paint
	index  map[Paint]PaintId
}

// NewPaintTable returns an empty paint table.
func NewPaintTable() *PaintTable {
	return &PaintTable{index: make(map[Paint]PaintId)}
}

// Intern returns p's PaintId, adding it to the table if not already
// present.
func (t *PaintTable) Intern(p Paint) PaintId {
	if id, ok := t.index[p]; ok {
		return id
	}
	id := PaintId(len(t.paints))
	t.paints = append(t.paints, p)
	t.index[p] = id
	return id
}

// Paints returns the interned paints in assigned-id order.
func (t *PaintTable) Paints() []Paint {
	return t.paints
}

// FillRule selects how a PathObject's winding numbers are interpreted.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// Kind distinguishes a fill path from a path that started as a stroke
// and was already expanded to its equivalent fill outline.
type Kind int

const (
	KindFill Kind = iota
	KindStroke
)

// PathObject is one entry of a Scene's painter-ordered object list: a
// prepared fill outline, its paint, fill rule, and an optional debug
// name. Stroke objects are expanded to a fill outline by
// internal/stroke before construction, so the tiler only ever sees
// fills with stroke width already baked in.
type PathObject struct {
	Outline  *outline.Outline
	Paint    PaintId
	Kind     Kind
	FillRule FillRule
	Name     string
}

// Scene owns an ordered list of path objects, an interned paint table,
// and the view-box rectangle that defines the clipping rectangle and
// tile-grid origin.
type Scene struct {
	Objects []PathObject
	Paints  *PaintTable
	ViewBox geom.Rect
}

// New creates an empty scene over the given view-box.
func New(viewBox geom.Rect) *Scene {
	return &Scene{Paints: NewPaintTable(), ViewBox: viewBox}
}

// AddFill appends a filled path object in painter order and returns its
// index.
func (s *Scene) AddFill(o *outline.Outline, paint PaintId, rule FillRule, name string) int {
	s.Objects = append(s.Objects, PathObject{
		Outline: o, Paint: paint, Kind: KindFill, FillRule: rule, Name: name,
	})
	return len(s.Objects) - 1
}

// Bounds returns the union of every object's outline bounds, intersected
// with nothing — callers clip against ViewBox separately. Keeping
// "outline bounds" and "view-box" distinct lets a caller detect content
// that extends past the view-box without losing either number.
func (s *Scene) Bounds() geom.Rect {
	b := geom.EmptyRect()
	for _, obj := range s.Objects {
		b = b.Union(obj.Outline.Bounds)
	}
	return b
}
