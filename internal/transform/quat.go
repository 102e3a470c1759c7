package transform

import (
	"github.com/chewxy/math32"
)

// slerpParallelEps: below this angle cosine distance, Slerp falls back to
// normalized linear interpolation because sin(theta) loses precision.
const slerpParallelEps = 1e-4

// Quat is a rotation quaternion (W + Xi + Yj + Zk). All rotation math in
// this package expects unit quaternions; Normalize restores unit norm after
// integration drift.
type Quat struct {
	W, X, Y, Z float32
}

// QuatIdent returns the identity rotation.
func QuatIdent() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a rotation of angle radians around the given axis.
// The axis need not be normalized.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Normalize()
	s := math32.Sin(angle / 2)
	return Quat{
		W: math32.Cos(angle / 2),
		X: a.X * s,
		Y: a.Y * s,
		Z: a.Z * s,
	}
}

// Mul returns the composition q·o (apply o first, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Dot returns the 4D dot product of q and o.
func (q Quat) Dot(o Quat) float32 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

// Norm returns the 4D Euclidean norm of q.
func (q Quat) Norm() float32 {
	return math32.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit norm. A zero quaternion becomes identity.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 {
		return QuatIdent()
	}
	return Quat{q.W / n, q.X / n, q.Y / n, q.Z / n}
}

// Rotate applies the rotation q to vector v. q must be unit-norm.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2w(u×v) + 2(u×(u×v)) with u = (X,Y,Z)
	u := Vec3{q.X, q.Y, q.Z}
	uv := u.Cross(v)
	uuv := u.Cross(uv)
	return v.Add(uv.Scale(2 * q.W)).Add(uuv.Scale(2))
}

// Slerp spherically interpolates from q to o along the shortest arc.
// alpha 0 returns q, alpha 1 returns o (up to sign, which is the same
// rotation). The result is renormalized, so unit norm is preserved for
// every alpha in [0,1]. Nearly parallel inputs use a normalized linear
// blend to avoid dividing by a vanishing sine.
func (q Quat) Slerp(o Quat, alpha float32) Quat {
	d := q.Dot(o)

	// Take the shortest arc: q and -q are the same rotation.
	if d < 0 {
		o = Quat{-o.W, -o.X, -o.Y, -o.Z}
		d = -d
	}
	if d > 1 {
		d = 1
	}

	if 1-d < slerpParallelEps {
		return Quat{
			W: q.W + (o.W-q.W)*alpha,
			X: q.X + (o.X-q.X)*alpha,
			Y: q.Y + (o.Y-q.Y)*alpha,
			Z: q.Z + (o.Z-q.Z)*alpha,
		}.Normalize()
	}

	theta := math32.Acos(d)
	sinTheta := math32.Sin(theta)
	wa := math32.Sin((1-alpha)*theta) / sinTheta
	wb := math32.Sin(alpha*theta) / sinTheta
	return Quat{
		W: wa*q.W + wb*o.W,
		X: wa*q.X + wb*o.X,
		Y: wa*q.Y + wb*o.Y,
		Z: wa*q.Z + wb*o.Z,
	}.Normalize()
}

// IsFinite reports whether all components are finite (not NaN or ±Inf).
func (q Quat) IsFinite() bool {
	return finite(q.W) && finite(q.X) && finite(q.Y) && finite(q.Z)
}
