package renderer

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/colon-crab-colon/game/internal/input"
	"github.com/colon-crab-colon/game/internal/transform"
)

const (
	moveSpeed       = 28.0 // world units per second
	boostMultiplier = 4.0
	lookSensitivity = 0.0028 // radians per pixel of pointer motion
	cameraFovY      = 45

	// pitchLimit keeps the camera off the poles so the up vector never flips.
	pitchLimit = math32.Pi/2 - 0.01
)

// Camera is a free-fly first-person camera: a position plus yaw/pitch angles.
// It is render-side state only; physics never sees it.
type Camera struct {
	Eye   transform.Vec3
	yaw   float32
	pitch float32
}

// NewCamera returns a camera placed above and outside the terrain, looking
// toward the world origin.
func NewCamera() *Camera {
	c := &Camera{Eye: transform.Vec3{X: -25, Y: 64, Z: -25}}
	c.LookAt(transform.Vec3{X: 0.5, Y: 40, Z: -0.5})
	return c
}

// LookAt orients the camera toward the given point.
func (c *Camera) LookAt(target transform.Vec3) {
	d := target.Sub(c.Eye).Normalize()
	c.yaw = math32.Atan2(d.X, d.Z)
	c.pitch = math32.Asin(d.Y)
	c.clampPitch()
}

// Position returns the camera eye position.
func (c *Camera) Position() transform.Vec3 {
	return c.Eye
}

// Forward returns the unit view direction.
func (c *Camera) Forward() transform.Vec3 {
	cp := math32.Cos(c.pitch)
	return transform.Vec3{
		X: math32.Sin(c.yaw) * cp,
		Y: math32.Sin(c.pitch),
		Z: math32.Cos(c.yaw) * cp,
	}
}

// Right returns the unit vector to the camera's right on the ground plane.
func (c *Camera) Right() transform.Vec3 {
	return c.Forward().Cross(transform.Vec3{Y: 1}).Normalize()
}

// Update applies one frame of look and movement input. dt is the real frame
// delta in seconds. Movement is camera-relative: Move.Z along the view
// direction, Move.X strafing, Move.Y straight up/down in world space.
func (c *Camera) Update(in input.FrameInput, dt float32) {
	c.yaw -= in.LookDelta[0] * lookSensitivity
	c.pitch -= in.LookDelta[1] * lookSensitivity
	c.clampPitch()

	speed := float32(moveSpeed)
	if in.Boost {
		speed *= boostMultiplier
	}

	offset := c.Forward().Scale(in.Move.Z).
		Add(c.Right().Scale(in.Move.X)).
		Add(transform.Vec3{Y: in.Move.Y})
	if l := offset.Length(); l > 1 {
		offset = offset.Scale(1 / l)
	}
	c.Eye = c.Eye.Add(offset.Scale(speed * dt))
}

func (c *Camera) clampPitch() {
	if c.pitch > pitchLimit {
		c.pitch = pitchLimit
	}
	if c.pitch < -pitchLimit {
		c.pitch = -pitchLimit
	}
}

// raylib converts the camera to raylib's representation for BeginMode3D.
func (c *Camera) raylib() rl.Camera3D {
	target := c.Eye.Add(c.Forward())
	return rl.Camera3D{
		Position:   rl.NewVector3(c.Eye.X, c.Eye.Y, c.Eye.Z),
		Target:     rl.NewVector3(target.X, target.Y, target.Z),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       cameraFovY,
		Projection: rl.CameraPerspective,
	}
}
