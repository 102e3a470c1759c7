package transform

import (
	"github.com/chewxy/math32"
)

// Transform is the render-facing pose of an entity: position, orientation
// (unit quaternion), and per-axis scale. Orientation is renormalized after
// every physics step so it stays unit-norm within floating tolerance.
type Transform struct {
	Position    Vec3
	Orientation Quat
	Scale       Vec3
}

// Identity returns a transform at the origin with no rotation and unit scale.
func Identity() Transform {
	return Transform{
		Orientation: QuatIdent(),
		Scale:       Vec3{1, 1, 1},
	}
}

// IsFinite reports whether every component of the transform is a finite number.
// Used to detect numerical divergence after a physics step.
func (t Transform) IsFinite() bool {
	return t.Position.IsFinite() && t.Orientation.IsFinite() && t.Scale.IsFinite()
}

// Lerp interpolates between two transforms: linear on position and scale,
// spherical on orientation. alpha 0 returns t, alpha 1 returns other.
func (t Transform) Lerp(other Transform, alpha float32) Transform {
	return Transform{
		Position:    t.Position.Lerp(other.Position, alpha),
		Orientation: t.Orientation.Slerp(other.Orientation, alpha),
		Scale:       t.Scale.Lerp(other.Scale, alpha),
	}
}

// Vec3 is a 3-component float32 vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates between v and o. alpha 0 returns v, alpha 1 returns o.
func (v Vec3) Lerp(o Vec3, alpha float32) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*alpha,
		v.Y + (o.Y-v.Y)*alpha,
		v.Z + (o.Z-v.Z)*alpha,
	}
}

// IsFinite reports whether all components are finite (not NaN or ±Inf).
func (v Vec3) IsFinite() bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}
