// Package geom provides the core 2D geometry primitives shared by every
// other package in vtile: points, packed line segments, rectangles,
// affine transforms, and the tagged-union curve Segment type.
//
// All types here are plain value types with deterministic IEEE-754
// semantics. Layouts are chosen so an implementation may later vectorize
// them (four float32 lanes for a line segment, four for a cubic split)
// without changing any observable result.
package geom

import "math"

// Vec2 is a 2D point or vector in device space.
type Vec2 struct {
	X, Y float32
}

// Pt builds a Vec2 from components.
func Pt(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (p Vec2) Add(q Vec2) Vec2 { return Vec2{p.X + q.X, p.Y + q.Y} }
func (p Vec2) Sub(q Vec2) Vec2 { return Vec2{p.X - q.X, p.Y - q.Y} }
func (p Vec2) Scale(s float32) Vec2 { return Vec2{p.X * s, p.Y * s} }

func (p Vec2) Dot(q Vec2) float32   { return p.X*q.X + p.Y*q.Y }
func (p Vec2) Cross(q Vec2) float32 { return p.X*q.Y - p.Y*q.X }

// Determinant is an alias for Cross kept for readability at call sites
// that compute an orientation test rather than a 2D "cross product".
func (p Vec2) Determinant(q Vec2) float32 { return p.Cross(q) }

func (p Vec2) Min(q Vec2) Vec2 {
	return Vec2{minf32(p.X, q.X), minf32(p.Y, q.Y)}
}

func (p Vec2) Max(q Vec2) Vec2 {
	return Vec2{maxf32(p.X, q.X), maxf32(p.Y, q.Y)}
}

func (p Vec2) Floor() Vec2 {
	return Vec2{float32(math.Floor(float64(p.X))), float32(math.Floor(float64(p.Y)))}
}

func (p Vec2) Fract() Vec2 {
	f := p.Floor()
	return Vec2{p.X - f.X, p.Y - f.Y}
}

func (p Vec2) Lerp(q Vec2, t float32) Vec2 {
	return Vec2{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Vec2) Length() float32 {
	return float32(math.Sqrt(float64(p.X*p.X + p.Y*p.Y)))
}

func (p Vec2) Normalize() Vec2 {
	l := p.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{p.X / l, p.Y / l}
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (p Vec2) Perp() Vec2 { return Vec2{-p.Y, p.X} }

// Less implements the lexicographic (y, x) ordering the sweep-line
// tiler requires for its point priority-queue comparisons.
func (p Vec2) Less(q Vec2) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

func (p Vec2) IsFinite() bool {
	return !math.IsNaN(float64(p.X)) && !math.IsNaN(float64(p.Y)) &&
		!math.IsInf(float64(p.X), 0) && !math.IsInf(float64(p.Y), 0)
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
