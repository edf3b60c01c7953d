package stroke

import (
	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

type elemKind int

const (
	elemMove elemKind = iota
	elemLine
	elemQuad
	elemCubic
	elemClose
)

type pathElem struct {
	kind         elemKind
	ctrl0, ctrl1 geom.Vec2
	point        geom.Vec2
}

func (e pathElem) endPoint() geom.Vec2 { return e.point }

// pathBuilder accumulates the intermediate forward/backward/output
// offset paths as a flat element list, so the backward path can be
// replayed in reverse order (appendReversed in stroke.go) before the
// final contour is committed to an outline.Outline.
type pathBuilder struct {
	elements []pathElem
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{elements: make([]pathElem, 0, 64)}
}

func (b *pathBuilder) isEmpty() bool { return len(b.elements) == 0 }

func (b *pathBuilder) moveTo(p geom.Vec2) {
	b.elements = append(b.elements, pathElem{kind: elemMove, point: p})
}

func (b *pathBuilder) lineTo(p geom.Vec2) {
	b.elements = append(b.elements, pathElem{kind: elemLine, point: p})
}

func (b *pathBuilder) quadTo(c, p geom.Vec2) {
	b.elements = append(b.elements, pathElem{kind: elemQuad, ctrl0: c, point: p})
}

func (b *pathBuilder) cubicTo(c1, c2, p geom.Vec2) {
	b.elements = append(b.elements, pathElem{kind: elemCubic, ctrl0: c1, ctrl1: c2, point: p})
}

func (b *pathBuilder) close() {
	b.elements = append(b.elements, pathElem{kind: elemClose})
}

func (b *pathBuilder) lastPoint() (geom.Vec2, bool) {
	if len(b.elements) == 0 {
		return geom.Vec2{}, false
	}
	return b.elements[len(b.elements)-1].point, true
}

func (b *pathBuilder) appendPath(other *pathBuilder) {
	for i, el := range other.elements {
		if i == 0 && el.kind == elemMove {
			b.elements = append(b.elements, el)
			continue
		}
		b.elements = append(b.elements, el)
	}
}

// replayInto replays the accumulated elements as outline builder calls on
// out, in order. Expansion is expected to only ever produce finite,
// well-formed geometry, so builder errors (which can only arise from
// NaN/capacity issues) are swallowed rather than surfaced — a stroke
// expansion step is never allowed to abort tiler/assembler
// "never abort" propagation policy.
func (b *pathBuilder) replayInto(out *outline.Outline) {
	for _, el := range b.elements {
		switch el.kind {
		case elemMove:
			_ = out.MoveTo(el.point)
		case elemLine:
			_ = out.LineTo(el.point)
		case elemQuad:
			_ = out.QuadTo(el.ctrl0, el.point)
		case elemCubic:
			_ = out.CubicTo(el.ctrl0, el.ctrl1, el.point)
		case elemClose:
			_ = out.Close()
		}
	}
}
