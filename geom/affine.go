package geom

import "math"

// Affine2D is a 2D affine transform in row-major form:
//
//	| A  B  C |
//	| D  E  F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. The zero value is
// the identity transform.
type Affine2D struct {
	A, B, C float32
	D, E, F float32
}

// Identity returns the identity transform explicitly (equal to the zero
// value, provided for readability at call sites).
func Identity() Affine2D {
	return Affine2D{A: 1, E: 1}
}

func (a Affine2D) isZero() bool {
	return a == Affine2D{}
}

// normalized treats the zero value as identity so that a chain starting
// from Affine2D{} composes the way gio's f32.Affine2D{} chains do.
func (a Affine2D) normalized() Affine2D {
	if a.isZero() {
		return Identity()
	}
	return a
}

// Offset returns a transform translating by v, composed after a.
func (a Affine2D) Offset(v Vec2) Affine2D {
	return a.Mul(Affine2D{A: 1, B: 0, C: v.X, D: 0, E: 1, F: v.Y})
}

// Scale returns a transform scaling by factor around origin, composed
// after a.
func (a Affine2D) Scale(origin, factor Vec2) Affine2D {
	s := Affine2D{A: factor.X, B: 0, C: origin.X - factor.X*origin.X,
		D: 0, E: factor.Y, F: origin.Y - factor.Y*origin.Y}
	return a.Mul(s)
}

// Rotate returns a transform rotating by angle radians around origin,
// composed after a.
func (a Affine2D) Rotate(origin Vec2, angle float32) Affine2D {
	sin, cos := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	r := Affine2D{
		A: cos, B: -sin, C: origin.X - cos*origin.X + sin*origin.Y,
		D: sin, E: cos, F: origin.Y - sin*origin.X - cos*origin.Y,
	}
	return a.Mul(r)
}

// Shear returns a transform shearing around origin by ax, ay radians,
// composed after a.
func (a Affine2D) Shear(origin Vec2, ax, ay float32) Affine2D {
	tx, ty := float32(math.Tan(float64(ax))), float32(math.Tan(float64(ay)))
	s := Affine2D{
		A: 1, B: tx, C: -tx * origin.Y,
		D: ty, E: 1, F: -ty * origin.X,
	}
	return a.Mul(s)
}

// Mul returns the transform equivalent to applying a first, then b.
func (a Affine2D) Mul(b Affine2D) Affine2D {
	a = a.normalized()
	b = b.normalized()
	return Affine2D{
		A: b.A*a.A + b.B*a.D,
		B: b.A*a.B + b.B*a.E,
		C: b.A*a.C + b.B*a.F + b.C,
		D: b.D*a.A + b.E*a.D,
		E: b.D*a.B + b.E*a.E,
		F: b.D*a.C + b.E*a.F + b.F,
	}
}

// Transform applies the affine transform to a point.
func (a Affine2D) Transform(p Vec2) Vec2 {
	a = a.normalized()
	return Vec2{
		X: a.A*p.X + a.B*p.Y + a.C,
		Y: a.D*p.X + a.E*p.Y + a.F,
	}
}

// TransformVec applies the linear part only (no translation), for
// direction vectors such as stroke normals.
func (a Affine2D) TransformVec(p Vec2) Vec2 {
	a = a.normalized()
	return Vec2{X: a.A*p.X + a.B*p.Y, Y: a.D*p.X + a.E*p.Y}
}

// Invert returns the inverse transform. Returns identity if a is
// singular (determinant within 1e-10 of zero).
func (a Affine2D) Invert() Affine2D {
	a = a.normalized()
	det := a.A*a.E - a.B*a.D
	if float32(math.Abs(float64(det))) < 1e-10 {
		return Identity()
	}
	invDet := 1 / det
	return Affine2D{
		A: a.E * invDet,
		B: -a.B * invDet,
		C: (a.B*a.F - a.C*a.E) * invDet,
		D: -a.D * invDet,
		E: a.A * invDet,
		F: (a.C*a.D - a.A*a.F) * invDet,
	}
}

// Elems returns the six matrix components in row-major order.
func (a Affine2D) Elems() (sxx, shx, tx, shy, syy, ty float32) {
	a = a.normalized()
	return a.A, a.B, a.C, a.D, a.E, a.F
}

func (a Affine2D) IsIdentity() bool {
	return a.normalized() == Identity()
}
