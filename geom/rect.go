package geom

// Rect is an axis-aligned rectangle with Min <= Max on both axes.
type Rect struct {
	Min, Max Vec2
}

// RectFromPoints builds a normalized rectangle from two corner points.
func RectFromPoints(a, b Vec2) Rect {
	return Rect{Min: a.Min(b), Max: a.Max(b)}
}

func (r Rect) Width() float32  { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

func (r Rect) IsEmpty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

func (r Rect) Union(o Rect) Rect {
	return Rect{Min: r.Min.Min(o.Min), Max: r.Max.Max(o.Max)}
}

// UnionPoint grows r to include p, used while incrementally building a
// contour's bounds as points are pushed.
func (r Rect) UnionPoint(p Vec2) Rect {
	return Rect{Min: r.Min.Min(p), Max: r.Max.Max(p)}
}

func (r Rect) Intersect(o Rect) Rect {
	return Rect{Min: r.Min.Max(o.Min), Max: r.Max.Min(o.Max)}
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// EmptyRect returns a rectangle with inverted bounds suitable as the
// starting accumulator for a union-building loop.
func EmptyRect() Rect {
	inf := float32(3.4e38)
	return Rect{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
}
