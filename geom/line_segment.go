package geom

// LineSegment is a line from From to To, packed so a SIMD-capable
// implementation could lay it out as one 4-lane float32 vector
// (FromX, FromY, ToX, ToY). All methods here treat it as two Vec2 for
// clarity; the field layout is what preserves the SIMD-friendly shape.
type LineSegment struct {
	FromX, FromY float32
	ToX, ToY     float32
}

func NewLineSegment(from, to Vec2) LineSegment {
	return LineSegment{FromX: from.X, FromY: from.Y, ToX: to.X, ToY: to.Y}
}

func (l LineSegment) From() Vec2 { return Vec2{l.FromX, l.FromY} }
func (l LineSegment) To() Vec2   { return Vec2{l.ToX, l.ToY} }

func (l LineSegment) SetFrom(p Vec2) LineSegment {
	l.FromX, l.FromY = p.X, p.Y
	return l
}

func (l LineSegment) SetTo(p Vec2) LineSegment {
	l.ToX, l.ToY = p.X, p.Y
	return l
}

func (l LineSegment) Vector() Vec2 { return l.To().Sub(l.From()) }

// Reversed returns the segment with endpoints swapped.
func (l LineSegment) Reversed() LineSegment {
	return LineSegment{FromX: l.ToX, FromY: l.ToY, ToX: l.FromX, ToY: l.FromY}
}

func (l LineSegment) MinX() float32 { return minf32(l.FromX, l.ToX) }
func (l LineSegment) MaxX() float32 { return maxf32(l.FromX, l.ToX) }
func (l LineSegment) MinY() float32 { return minf32(l.FromY, l.ToY) }
func (l LineSegment) MaxY() float32 { return maxf32(l.FromY, l.ToY) }

// UpperPoint returns whichever endpoint has the smaller y (ties broken
// by smaller x), matching the (y, x) ascending ordering Vec2.Less uses
// for point-queue priority.
func (l LineSegment) UpperPoint() Vec2 {
	from, to := l.From(), l.To()
	if from.Less(to) {
		return from
	}
	return to
}

// YWinding returns the signed winding contribution of this edge: +1 if
// it descends (from.y < to.y), -1 if it ascends, 0 if horizontal.
func (l LineSegment) YWinding() int {
	switch {
	case l.FromY < l.ToY:
		return 1
	case l.FromY > l.ToY:
		return -1
	default:
		return 0
	}
}

// Length returns the Euclidean length of the segment.
func (l LineSegment) Length() float32 {
	return l.Vector().Length()
}

// Sample evaluates the segment at parameter t (0 at From, 1 at To).
func (l LineSegment) Sample(t float32) Vec2 {
	return l.From().Lerp(l.To(), t)
}

// Split divides the segment at parameter t into (left, right) such that
// left.To() == right.From() == Sample(t). t=0 gives a degenerate left
// half; t=1 gives a degenerate right half, matching .
func (l LineSegment) Split(t float32) (left, right LineSegment) {
	mid := l.Sample(t)
	return NewLineSegment(l.From(), mid), NewLineSegment(mid, l.To())
}

// SolveTForY returns the parameter t at which the segment's y equals y,
// or false if the segment is horizontal (y is constant, infinitely many
// or zero solutions).
func (l LineSegment) SolveTForY(y float32) (t float32, ok bool) {
	dy := l.ToY - l.FromY
	if dy == 0 {
		return 0, false
	}
	return (y - l.FromY) / dy, true
}

// SolveTForX is the x-axis analogue of SolveTForY.
func (l LineSegment) SolveTForX(x float32) (t float32, ok bool) {
	dx := l.ToX - l.FromX
	if dx == 0 {
		return 0, false
	}
	return (x - l.FromX) / dx, true
}

// SolveXForY returns the x coordinate on the segment's supporting line
// at the given y, assuming the segment is not horizontal.
func (l LineSegment) SolveXForY(y float32) float32 {
	t, ok := l.SolveTForY(y)
	if !ok {
		return l.FromX
	}
	return l.FromX + (l.ToX-l.FromX)*t
}

// SolveYForX is the y-axis analogue of SolveXForY.
func (l LineSegment) SolveYForX(x float32) float32 {
	t, ok := l.SolveTForX(x)
	if !ok {
		return l.FromY
	}
	return l.FromY + (l.ToY-l.FromY)*t
}

// SplitAtX splits the segment at the point where it crosses x, returning
// (left, right) ordered the same way as From()->To() regardless of
// direction.
func (l LineSegment) SplitAtX(x float32) (left, right LineSegment) {
	t, ok := l.SolveTForX(x)
	if !ok {
		return l, l
	}
	return l.Split(t)
}

// SplitAtY is the y-axis analogue of SplitAtX.
func (l LineSegment) SplitAtY(y float32) (left, right LineSegment) {
	t, ok := l.SolveTForY(y)
	if !ok {
		return l, l
	}
	return l.Split(t)
}

func (l LineSegment) Transform(a Affine2D) LineSegment {
	return NewLineSegment(a.Transform(l.From()), a.Transform(l.To()))
}

func (l LineSegment) BoundingBox() Rect {
	return RectFromPoints(l.From(), l.To())
}

func (l LineSegment) IsFinite() bool {
	return l.From().IsFinite() && l.To().IsFinite()
}
