package physics

import (
	"github.com/colon-crab-colon/game/internal/transform"
)

// Body is a 3D rigid body with position, orientation, velocity, and an AABB
// derived from scale. Static bodies do not move and are not affected by
// gravity. Bodies are owned exclusively by the World; nothing outside this
// package ever holds a pointer to one.
type Body struct {
	Position        transform.Vec3
	Orientation     transform.Quat
	Velocity        transform.Vec3
	AngularVelocity transform.Vec3
	Scale           transform.Vec3
	Mass            float32
	Static          bool
	Color           [4]uint8

	// lastValid is the last pose that integrated to finite values. A
	// diverging step is clamped back to it instead of propagating NaNs
	// into a published snapshot.
	lastValid transform.Transform
}

// BodyDef describes a body to spawn. Zero Orientation means identity; zero
// Scale means a unit cube; Mass <= 0 on a dynamic body defaults to 1.
type BodyDef struct {
	Position        transform.Vec3
	Orientation     transform.Quat
	Velocity        transform.Vec3
	AngularVelocity transform.Vec3
	Scale           transform.Vec3
	Mass            float32
	Static          bool
	Color           [4]uint8
}

// normalized fills in the definition's defaults.
func (d BodyDef) normalized() BodyDef {
	if (d.Orientation == transform.Quat{}) {
		d.Orientation = transform.QuatIdent()
	}
	if (d.Scale == transform.Vec3{}) {
		d.Scale = transform.Vec3{X: 1, Y: 1, Z: 1}
	}
	if d.Mass <= 0 {
		d.Mass = 1
	}
	return d
}

// valid reports whether the definition describes a body the solver can
// simulate: every component finite, no negative collider extent.
func (d BodyDef) valid() bool {
	if !d.Position.IsFinite() || !d.Velocity.IsFinite() || !d.AngularVelocity.IsFinite() {
		return false
	}
	if !d.Orientation.IsFinite() || !d.Scale.IsFinite() {
		return false
	}
	if !finite(d.Mass) {
		return false
	}
	if d.Scale.X < 0 || d.Scale.Y < 0 || d.Scale.Z < 0 {
		return false
	}
	return true
}

func finite(f float32) bool {
	v := transform.Vec3{X: f}
	return v.IsFinite()
}

// Transform returns the body's current pose.
func (b *Body) Transform() transform.Transform {
	return transform.Transform{
		Position:    b.Position,
		Orientation: b.Orientation,
		Scale:       b.Scale,
	}
}

// aabb returns the body's axis-aligned bounds: center position, half extents
// from scale. Orientation is ignored; the broad cube approximation matches
// how these bodies are drawn.
func (b *Body) aabb() (bmin, bmax transform.Vec3) {
	s := b.Scale
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	if s.Z == 0 {
		s.Z = 1
	}
	half := s.Scale(0.5)
	return b.Position.Sub(half), b.Position.Add(half)
}
