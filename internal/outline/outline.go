// Package outline implements a path data model: an Outline is an
// ordered list of Contours, each a parallel Points/Flags pair built
// incrementally from MoveTo/LineTo/QuadTo/CubicTo/Close events, with
// bounds maintained as points are pushed.
//
// Subpath-boundary handling generalizes from a flat line-segment
// iterator to the tagged Segment model geom provides.
package outline

import (
	"github.com/vtilecore/vtile/geom"
	"github.com/vtilecore/vtile/internal/vtilerr"
)

// PointFlags marks whether a stored point is an on-curve endpoint
// (zero value) or a Bézier control point.
type PointFlags uint8

const (
	FlagControl0 PointFlags = 1 << iota
	FlagControl1
)

// maxPointsPerContour enforces the 20-bit point-index capacity of
// PointIndex.
const maxPointsPerContour = 1 << 20

// maxContoursPerOutline enforces the 12-bit contour-index capacity.
const maxContoursPerOutline = 1 << 12

// Contour is a subpath: parallel Points/Flags arrays, a cached bounds
// rectangle, and whether an implicit closing edge should be emitted.
type Contour struct {
	Points []geom.Vec2
	Flags  []PointFlags
	Bounds geom.Rect
	Closed bool
}

func newContour() Contour {
	return Contour{Bounds: geom.EmptyRect()}
}

// Len returns the number of stored points (endpoints + controls).
func (c *Contour) Len() int { return len(c.Points) }

func (c *Contour) push(p geom.Vec2, f PointFlags) error {
	if len(c.Points) >= maxPointsPerContour {
		return vtilerr.New(vtilerr.CapacityExceeded, "contour exceeds 2^20 points")
	}
	if !p.IsFinite() {
		return vtilerr.New(vtilerr.NumericDegenerate, "non-finite point pushed to contour")
	}
	c.Points = append(c.Points, p)
	c.Flags = append(c.Flags, f)
	c.Bounds = c.Bounds.UnionPoint(p)
	return nil
}

// PushEndpoint appends an on-curve point, implicitly drawing a line
// from the previous point (or starting the contour if it is the
// first point pushed).
func (c *Contour) PushEndpoint(p geom.Vec2) error {
	return c.push(p, 0)
}

// PushQuadratic appends a control point and its following endpoint.
func (c *Contour) PushQuadratic(ctrl, to geom.Vec2) error {
	if err := c.push(ctrl, FlagControl0); err != nil {
		return err
	}
	return c.push(to, 0)
}

// PushCubic appends two control points and their following endpoint.
func (c *Contour) PushCubic(ctrl0, ctrl1, to geom.Vec2) error {
	if err := c.push(ctrl0, FlagControl0); err != nil {
		return err
	}
	if err := c.push(ctrl1, FlagControl1); err != nil {
		return err
	}
	return c.push(to, 0)
}

// Close marks the contour closed: an implicit Line from the last
// on-curve endpoint to the first point is emitted by Segments unless
// the endpoints already coincide.
func (c *Contour) Close() {
	c.Closed = true
}

// IsDegenerate reports whether the contour is empty or zero-length (all
// of its points coincide); such
// contours are silently ignored on final export.
func (c *Contour) IsDegenerate() bool {
	if len(c.Points) == 0 {
		return true
	}
	return c.Bounds.Width() == 0 && c.Bounds.Height() == 0
}

// Segments reconstructs one geom.Segment per parametric piece, in
// contour order, by scanning runs of control-flagged points between
// on-curve points. If Closed and the last point differs from the
// first, an implicit closing Line is yielded last. Stops early if
// yield returns false.
func (c *Contour) Segments(yield func(geom.Segment) bool) {
	if len(c.Points) == 0 {
		return
	}
	cur := c.Points[0]
	i := 1
	for i < len(c.Points) {
		switch c.Flags[i] {
		case 0:
			to := c.Points[i]
			if !yield(geom.LineOf(cur, to)) {
				return
			}
			cur = to
			i++

		case FlagControl0:
			if i+1 < len(c.Points) && c.Flags[i+1] == FlagControl1 {
				ctrl0, ctrl1, to := c.Points[i], c.Points[i+1], c.Points[i+2]
				if !yield(geom.CubicOf(cur, ctrl0, ctrl1, to)) {
					return
				}
				cur = to
				i += 3
			} else {
				ctrl, to := c.Points[i], c.Points[i+1]
				if !yield(geom.QuadraticOf(cur, ctrl, to)) {
					return
				}
				cur = to
				i += 2
			}

		default:
			// FlagControl1 alone without a preceding FlagControl0 cannot
			// occur from the push* methods; skip defensively.
			i++
		}
	}
	if c.Closed && cur != c.Points[0] {
		yield(geom.LineOf(cur, c.Points[0]))
	}
}

// Transform applies an affine transform to every stored point.
func (c *Contour) Transform(a geom.Affine2D) {
	bounds := geom.EmptyRect()
	for i, p := range c.Points {
		tp := a.Transform(p)
		c.Points[i] = tp
		bounds = bounds.UnionPoint(tp)
	}
	c.Bounds = bounds
}

// Outline is an ordered sequence of Contours sharing a union bounds,
// built incrementally by MoveTo/LineTo/QuadTo/CubicTo/Close calls
// mirroring a typical external path-event stream.
type Outline struct {
	Contours []Contour
	Bounds   geom.Rect
}

func New() *Outline {
	return &Outline{Bounds: geom.EmptyRect()}
}

func (o *Outline) current() (*Contour, error) {
	if len(o.Contours) == 0 {
		return nil, vtilerr.New(vtilerr.InputInvalid, "path event before any MoveTo")
	}
	return &o.Contours[len(o.Contours)-1], nil
}

// MoveTo starts a new contour at p.
func (o *Outline) MoveTo(p geom.Vec2) error {
	if len(o.Contours) >= maxContoursPerOutline {
		return vtilerr.New(vtilerr.CapacityExceeded, "outline exceeds 2^12 contours")
	}
	if !p.IsFinite() {
		return vtilerr.New(vtilerr.NumericDegenerate, "non-finite MoveTo point")
	}
	c := newContour()
	o.Contours = append(o.Contours, c)
	cur, _ := o.current()
	return cur.PushEndpoint(p)
}

// LineTo appends a line to the current contour.
func (o *Outline) LineTo(p geom.Vec2) error {
	c, err := o.current()
	if err != nil {
		return err
	}
	return c.PushEndpoint(p)
}

// QuadTo appends a quadratic Bézier to the current contour.
func (o *Outline) QuadTo(ctrl, p geom.Vec2) error {
	c, err := o.current()
	if err != nil {
		return err
	}
	return c.PushQuadratic(ctrl, p)
}

// CubicTo appends a cubic Bézier to the current contour.
func (o *Outline) CubicTo(ctrl0, ctrl1, p geom.Vec2) error {
	c, err := o.current()
	if err != nil {
		return err
	}
	return c.PushCubic(ctrl0, ctrl1, p)
}

// Close closes the current contour.
func (o *Outline) Close() error {
	c, err := o.current()
	if err != nil {
		return err
	}
	c.Close()
	return nil
}

// RecomputeBounds refreshes the union bounds from all contours; call
// after the outline is fully built or after transforming it in place.
func (o *Outline) RecomputeBounds() {
	b := geom.EmptyRect()
	for i := range o.Contours {
		if o.Contours[i].IsDegenerate() {
			continue
		}
		b = b.Union(o.Contours[i].Bounds)
	}
	o.Bounds = b
}

// Transform applies an affine transform to every contour in place.
func (o *Outline) Transform(a geom.Affine2D) {
	for i := range o.Contours {
		o.Contours[i].Transform(a)
	}
	o.RecomputeBounds()
}

// Segments iterates every segment of every non-degenerate contour, in
// contour order.
func (o *Outline) Segments(yield func(contourIndex int, seg geom.Segment) bool) {
	for ci := range o.Contours {
		c := &o.Contours[ci]
		if c.IsDegenerate() {
			continue
		}
		stop := false
		c.Segments(func(s geom.Segment) bool {
			if !yield(ci, s) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}
