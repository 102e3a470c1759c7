// Package input turns raylib's polled keyboard/mouse/window state into an
// immutable per-frame record. Sampling happens exactly once per rendered
// frame so every consumer of a FrameInput sees the same instant.
package input

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/colon-crab-colon/game/internal/transform"
)

// FrameInput is a frame-scoped input snapshot. Move is in camera-local axes:
// X strafe right, Y vertical, Z forward, each in [-1, 1]. LookDelta is the
// raw pointer motion for this frame in pixels.
type FrameInput struct {
	Move      transform.Vec3
	Boost     bool
	LookDelta [2]float32

	SpawnCube     bool
	ClearDynamic  bool
	ToggleOverlay bool

	Resized        bool
	Width, Height  int32
	CloseRequested bool
}

// Sampler polls the windowing layer. It holds no state of its own; one
// exists per engine so input access stays in one place.
type Sampler struct{}

// NewSampler returns a Sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample reads the current device state into a FrameInput. Must be called on
// the thread that owns the window, once per frame.
func (s *Sampler) Sample() FrameInput {
	var in FrameInput

	if rl.IsKeyDown(rl.KeyW) {
		in.Move.Z += 1
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Move.Z -= 1
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Move.X += 1
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Move.X -= 1
	}
	if rl.IsKeyDown(rl.KeySpace) {
		in.Move.Y += 1
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		in.Move.Y -= 1
	}
	in.Boost = rl.IsKeyDown(rl.KeyLeftControl)

	delta := rl.GetMouseDelta()
	in.LookDelta = [2]float32{delta.X, delta.Y}

	in.SpawnCube = rl.IsKeyPressed(rl.KeyG)
	in.ClearDynamic = rl.IsKeyPressed(rl.KeyC)
	in.ToggleOverlay = rl.IsKeyPressed(rl.KeyF3)

	in.Resized = rl.IsWindowResized()
	in.Width = int32(rl.GetScreenWidth())
	in.Height = int32(rl.GetScreenHeight())
	in.CloseRequested = rl.WindowShouldClose()

	return in
}
