package stroke

import (
	"math"

	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/outline"
)

// MinWidth is the minimum stroke width the expander will honor; narrower
// styles are clamped up to it.
const MinWidth = 0.5

// LineCap is the shape drawn at an open subpath's endpoints.
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape drawn where two segments of a subpath meet.
type LineJoin int

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Style is the stroke parameterization consumed by Expand.
type Style struct {
	Width      float32
	Cap        LineCap
	Join       LineJoin
	MiterLimit float32
}

// DefaultStyle returns a 1px butt-capped miter stroke, miter limit 4.
func DefaultStyle() Style {
	return Style{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4}
}

func (s Style) clampedWidth() float32 {
	if s.Width < MinWidth {
		return MinWidth
	}
	return s.Width
}

func neg(v geom.Vec2) geom.Vec2        { return geom.Vec2{X: -v.X, Y: -v.Y} }
func angleOf(v geom.Vec2) float32      { return float32(math.Atan2(float64(v.Y), float64(v.X))) }
func lengthSq(v geom.Vec2) float32     { return v.X*v.X + v.Y*v.Y }

// Expand converts every contour of o (treated as a stroke of the given
// style, flattened to tolerance) into its filled equivalent and returns
// a new Outline ready for the tiler.
func Expand(o *outline.Outline, style Style, tolerance float32) *outline.Outline {
	style.Width = style.clampedWidth()
	if tolerance <= 0 {
		tolerance = 0.25
	}
	e := &expander{style: style, tolerance: tolerance}

	out := outline.New()
	for _, c := range o.Contours {
		if len(c.Points) == 0 {
			continue
		}
		e.reset()
		e.startPt = c.Points[0]
		e.lastPt = e.startPt

		c.Segments(func(seg geom.Segment) bool {
			switch seg.Kind {
			case geom.SegmentLine, geom.SegmentNone:
				if seg.To != e.lastPt {
					e.lineSegment(seg.To)
				}
			case geom.SegmentQuadratic:
				e.curveSegment(flattenQuad(e.lastPt, seg.Ctrl0, seg.To, tolerance))
			case geom.SegmentCubic:
				e.curveSegment(flattenCubic(e.lastPt, seg.Ctrl0, seg.Ctrl1, seg.To, tolerance))
			}
			return true
		})

		if c.Closed {
			e.finishClosed()
		} else {
			e.finish()
		}
		e.output.replayInto(out)
	}
	out.RecomputeBounds()
	return out
}

// expander holds the running state of one subpath's offset-path
// construction. Grounded on the tiny-skia/kurbo stroker pattern, reshaped
// to consume an outline.Contour's reconstructed segments instead of a
// free-standing path-event slice.
type expander struct {
	style     Style
	tolerance float32

	forward  *pathBuilder
	backward *pathBuilder
	output   *pathBuilder

	startPt, lastPt     geom.Vec2
	startNorm, startTan geom.Vec2
	lastTan, lastNorm   geom.Vec2

	joinThresh float32
}

func (e *expander) reset() {
	e.forward = newPathBuilder()
	e.backward = newPathBuilder()
	e.output = newPathBuilder()
	e.joinThresh = 2 * e.tolerance / e.style.Width
}

func (e *expander) lineSegment(p1 geom.Vec2) {
	tangent := p1.Sub(e.lastPt)
	e.doJoin(tangent)
	e.lastTan = tangent
	e.doLine(tangent, p1)
}

func (e *expander) curveSegment(points []geom.Vec2) {
	for i := 1; i < len(points); i++ {
		tangent := points[i].Sub(points[i-1])
		if lengthSq(tangent) > 1e-10 {
			e.doJoin(tangent)
			e.lastTan = tangent
			e.doLine(tangent, points[i])
		}
	}
}

func (e *expander) doJoin(tan0 geom.Vec2) {
	scale := 0.5 * e.style.Width / tan0.Length()
	norm := tan0.Perp().Scale(scale)
	p0 := e.lastPt

	if e.forward.isEmpty() {
		e.forward.moveTo(p0.Add(neg(norm)))
		e.backward.moveTo(p0.Add(norm))
		e.startTan = tan0
		e.startNorm = norm
		return
	}
	e.joinWithPrevious(p0, norm, tan0)
}

func (e *expander) joinWithPrevious(p0, norm, tan0 geom.Vec2) {
	ab := e.lastTan
	cd := tan0
	cross := ab.Cross(cd)
	dot := ab.Dot(cd)
	hypot := float32(math.Hypot(float64(cross), float64(dot)))

	if dot > 0 && absf32(cross) < hypot*e.joinThresh {
		e.forward.lineTo(p0.Add(neg(norm)))
		e.backward.lineTo(p0.Add(norm))
		return
	}

	switch e.style.Join {
	case JoinBevel:
		e.forward.lineTo(p0.Add(neg(norm)))
		e.backward.lineTo(p0.Add(norm))
	case JoinMiter:
		e.applyMiterJoin(p0, norm, ab, cd, cross, dot, hypot)
	case JoinRound:
		e.applyRoundJoin(p0, norm, cross, dot)
	}
}

func (e *expander) applyMiterJoin(p0, norm, ab, cd geom.Vec2, cross, dot, hypot float32) {
	miterLimitSq := e.style.MiterLimit * e.style.MiterLimit
	if 2*hypot < (hypot+dot)*miterLimitSq {
		e.computeMiterPoint(p0, norm, ab, cd, cross)
	}
	e.forward.lineTo(p0.Add(neg(norm)))
	e.backward.lineTo(p0.Add(norm))
}

func (e *expander) computeMiterPoint(p0, norm, ab, cd geom.Vec2, cross float32) {
	lastScale := 0.5 * e.style.Width / ab.Length()
	lastNorm := ab.Perp().Scale(lastScale)

	if cross > 0 {
		fpLast := p0.Add(neg(lastNorm))
		fpThis := p0.Add(neg(norm))
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		miterPt := fpThis.Add(cd.Scale(-h))
		e.forward.lineTo(miterPt)
		e.backward.lineTo(p0)
	} else if cross < 0 {
		fpLast := p0.Add(lastNorm)
		fpThis := p0.Add(norm)
		h := ab.Cross(fpThis.Sub(fpLast)) / cross
		miterPt := fpThis.Add(cd.Scale(-h))
		e.backward.lineTo(miterPt)
		e.forward.lineTo(p0)
	}
}

func (e *expander) applyRoundJoin(p0, norm geom.Vec2, cross, dot float32) {
	lastScale := 0.5 * e.style.Width / e.lastTan.Length()
	lastNorm := e.lastTan.Perp().Scale(lastScale)

	angle := float32(math.Atan2(float64(cross), float64(dot)))
	if angle > 0 {
		e.backward.lineTo(p0.Add(norm))
		e.arcJoin(e.forward, p0, neg(lastNorm), angle)
	} else {
		e.forward.lineTo(p0.Add(neg(norm)))
		e.arcJoin(e.backward, p0, neg(lastNorm), -angle)
	}
}

func (e *expander) doLine(tangent, p1 geom.Vec2) {
	scale := 0.5 * e.style.Width / tangent.Length()
	norm := tangent.Perp().Scale(scale)

	e.forward.lineTo(p1.Add(neg(norm)))
	e.backward.lineTo(p1.Add(norm))
	e.lastPt = p1
	e.lastNorm = norm
}

func (e *expander) finish() {
	if e.forward.isEmpty() {
		return
	}
	e.output.appendPath(e.forward)
	if !e.backward.isEmpty() {
		e.applyCap(e.style.Cap, e.lastPt, neg(e.lastNorm), false)
	}
	e.appendReversed(e.backward)
	e.applyCap(e.style.Cap, e.startPt, e.startNorm, true)
}

func (e *expander) finishClosed() {
	if e.forward.isEmpty() {
		return
	}
	e.doJoin(e.startTan)
	e.output.appendPath(e.forward)
	e.output.close()

	if last, ok := e.backward.lastPoint(); ok {
		e.output.moveTo(last)
	}
	e.appendReversed(e.backward)
	e.output.close()
}

func (e *expander) applyCap(cap LineCap, center, norm geom.Vec2, closePath bool) {
	switch cap {
	case CapButt:
		if closePath {
			e.output.close()
		} else {
			e.output.lineTo(center.Add(neg(norm)))
		}
	case CapRound:
		e.arcJoin(e.output, center, norm, math.Pi)
		if closePath {
			e.output.close()
		}
	case CapSquare:
		e.squareCap(e.output, center, norm, closePath)
	}
}

// arcJoin appends a circular arc of angle radians around center, starting
// at center+norm, approximated by cubic Bézier segments of at most 90°
// each.
func (e *expander) arcJoin(out *pathBuilder, center, norm geom.Vec2, angle float32) {
	numSegments := int(math.Ceil(float64(absf32(angle)) / (math.Pi / 2)))
	if numSegments < 1 {
		numSegments = 1
	}
	angleStep := angle / float32(numSegments)
	currentAngle := angleOf(norm)
	radius := norm.Length()

	for i := 0; i < numSegments; i++ {
		a0 := currentAngle
		a1 := currentAngle + angleStep
		arcSegment(out, center, radius, a0, a1)
		currentAngle = a1
	}
}

func arcSegment(out *pathBuilder, center geom.Vec2, radius, a0, a1 float32) {
	da := float64(a1 - a0)
	alpha := float32(math.Sin(da) * (math.Sqrt(4+3*math.Tan(da/2)*math.Tan(da/2)) - 1) / 3)

	cos0, sin0 := float32(math.Cos(float64(a0))), float32(math.Sin(float64(a0)))
	cos1, sin1 := float32(math.Cos(float64(a1))), float32(math.Sin(float64(a1)))

	p1 := geom.Pt(center.X+radius*cos0, center.Y+radius*sin0)
	p2 := geom.Pt(center.X+radius*cos1, center.Y+radius*sin1)

	c1 := geom.Pt(p1.X-alpha*radius*sin0, p1.Y+alpha*radius*cos0)
	c2 := geom.Pt(p2.X+alpha*radius*sin1, p2.Y-alpha*radius*cos1)

	out.cubicTo(c1, c2, p2)
}

func (e *expander) squareCap(out *pathBuilder, center, norm geom.Vec2, closePath bool) {
	p1 := transformCorner(center, norm, geom.Pt(1, 1))
	p2 := transformCorner(center, norm, geom.Pt(-1, 1))

	out.lineTo(p1)
	out.lineTo(p2)

	if closePath {
		out.close()
	} else {
		out.lineTo(transformCorner(center, norm, geom.Pt(-1, 0)))
	}
}

// transformCorner maps a unit-square corner through the basis
// [norm, norm.Perp()] centered at `center`.
func transformCorner(center, norm, p geom.Vec2) geom.Vec2 {
	return geom.Pt(
		norm.X*p.X-norm.Y*p.Y+center.X,
		norm.Y*p.X+norm.X*p.Y+center.Y,
	)
}

func (e *expander) appendReversed(pb *pathBuilder) {
	elems := pb.elements
	for i := len(elems) - 1; i >= 1; i-- {
		endPt := elems[i-1].endPoint()
		switch elems[i].kind {
		case elemLine:
			e.output.lineTo(endPt)
		case elemQuad:
			e.output.quadTo(elems[i].ctrl0, endPt)
		case elemCubic:
			e.output.cubicTo(elems[i].ctrl1, elems[i].ctrl0, endPt)
		}
	}
}

func absf32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

// flattenQuad/flattenCubic recursively subdivide via de Casteljau until
// flat within tolerance, returning the polyline baseline (including p0).
func flattenQuad(p0, p1, p2 geom.Vec2, tolerance float32) []geom.Vec2 {
	points := []geom.Vec2{p0}
	flattenQuadRec(p0, p1, p2, tolerance, &points)
	return points
}

func flattenQuadRec(p0, p1, p2 geom.Vec2, tolerance float32, points *[]geom.Vec2) {
	if distanceToLine(p1, p0, p2) < tolerance {
		*points = append(*points, p2)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	flattenQuadRec(p0, q0, q2, tolerance, points)
	flattenQuadRec(q2, q1, p2, tolerance, points)
}

func flattenCubic(p0, p1, p2, p3 geom.Vec2, tolerance float32) []geom.Vec2 {
	points := []geom.Vec2{p0}
	flattenCubicRec(p0, p1, p2, p3, tolerance, &points)
	return points
}

func flattenCubicRec(p0, p1, p2, p3 geom.Vec2, tolerance float32, points *[]geom.Vec2) {
	d1 := distanceToLine(p1, p0, p3)
	d2 := distanceToLine(p2, p0, p3)
	dist := d1
	if d2 > dist {
		dist = d2
	}
	if dist < tolerance {
		*points = append(*points, p3)
		return
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	flattenCubicRec(p0, q0, r0, s, tolerance, points)
	flattenCubicRec(s, r1, q2, p3, tolerance, points)
}

func distanceToLine(p, a, b geom.Vec2) float32 {
	ab := b.Sub(a)
	abLen := ab.Length()
	if abLen < 1e-10 {
		return p.Sub(a).Length()
	}
	ap := p.Sub(a)
	t := ap.Dot(ab) / (abLen * abLen)
	if t < 0 {
		return p.Sub(a).Length()
	}
	if t > 1 {
		return p.Sub(b).Length()
	}
	closest := a.Add(ab.Scale(t))
	return p.Sub(closest).Length()
}
