package physics

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colon-crab-colon/game/internal/transform"
	"github.com/colon-crab-colon/game/internal/worldstate"
)

func newTestWorld() *World {
	return NewWorld(DefaultConfig(), nil)
}

func TestSpawnVisibleAfterNextStep(t *testing.T) {
	w := newTestWorld()

	e, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 10}, Mass: 1})
	require.NoError(t, err)
	require.False(t, e.IsZero())

	// Creation is queued, not applied mid-frame.
	assert.Equal(t, 0, w.Len())
	_, ok := w.Pose(e)
	assert.False(t, ok)

	w.Step(nil)
	assert.Equal(t, 1, w.Len())
	_, ok = w.Pose(e)
	assert.True(t, ok)
}

func TestSpawnInvalidBodyRejected(t *testing.T) {
	w := newTestWorld()

	tests := []struct {
		name string
		def  BodyDef
	}{
		{"NaN mass", BodyDef{Mass: math32.NaN()}},
		{"infinite mass", BodyDef{Mass: math32.Inf(1)}},
		{"NaN position", BodyDef{Mass: 1, Position: transform.Vec3{X: math32.NaN()}}},
		{"negative scale", BodyDef{Mass: 1, Scale: transform.Vec3{X: -1, Y: 1, Z: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := w.Spawn(tt.def)
			assert.ErrorIs(t, err, ErrInvalidBody)
			assert.True(t, e.IsZero())

			w.Step(nil)
			assert.Equal(t, 0, w.Len())
		})
	}
}

func TestStepGravityIntegration(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 100}, Mass: 1})
	require.NoError(t, err)

	w.Step(nil)
	first, _ := w.Pose(e)
	for i := 0; i < 59; i++ {
		w.Step(nil)
	}
	last, ok := w.Pose(e)
	require.True(t, ok)

	// After a second of free fall the body is well below its spawn height.
	assert.Less(t, last.Position.Y, first.Position.Y-3)
	assert.True(t, last.IsFinite())
}

func TestStaticBodyNeverMoves(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 1}, Static: true, Scale: transform.Vec3{X: 10, Y: 1, Z: 10}})
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		w.Step(nil)
	}
	pose, _ := w.Pose(e)
	assert.Equal(t, float32(1), pose.Position.Y)
}

func TestDynamicBodyRestsOnStatic(t *testing.T) {
	w := newTestWorld()
	_, err := w.Spawn(BodyDef{Position: transform.Vec3{}, Static: true, Scale: transform.Vec3{X: 20, Y: 1, Z: 20}})
	require.NoError(t, err)
	box, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 3}, Mass: 1})
	require.NoError(t, err)

	for i := 0; i < 240; i++ {
		w.Step(nil)
	}

	pose, ok := w.Pose(box)
	require.True(t, ok)
	// The cube has fallen onto the slab (slab top at 0.5, cube half height 0.5).
	assert.InDelta(t, 1.0, float64(pose.Position.Y), 0.2)
}

func TestOrientationStaysUnitNorm(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{
		Position:        transform.Vec3{Y: 500},
		Mass:            1,
		AngularVelocity: transform.Vec3{X: 3, Y: 5, Z: 1},
	})
	require.NoError(t, err)

	for i := 0; i < 120; i++ {
		w.Step(nil)
	}
	pose, _ := w.Pose(e)
	assert.InDelta(t, 1.0, float64(pose.Orientation.Norm()), 1e-4)
}

func TestDespawnAppliedAtStepBoundary(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Mass: 1})
	require.NoError(t, err)
	w.Step(nil)
	require.Equal(t, 1, w.Len())

	w.Despawn(e)
	assert.Equal(t, 1, w.Len()) // still present until the next step

	w.Step(nil)
	assert.Equal(t, 0, w.Len())
	_, ok := w.Pose(e)
	assert.False(t, ok)
}

func TestIntentImpulse(t *testing.T) {
	w := NewWorld(Config{Gravity: transform.Vec3{}, FixedDt: 1.0 / 60.0}, nil)
	e, err := w.Spawn(BodyDef{Mass: 2})
	require.NoError(t, err)
	w.Step(nil)

	w.Step([]Intent{{Kind: IntentImpulse, Target: e, Vector: transform.Vec3{X: 12}}})

	pose, _ := w.Pose(e)
	// impulse 12 on mass 2 -> 6 m/s -> 0.1 m in one 60 Hz step
	assert.InDelta(t, 0.1, float64(pose.Position.X), 1e-4)
}

func TestIntentSpawnAndClear(t *testing.T) {
	w := newTestWorld()
	_, err := w.Spawn(BodyDef{Static: true, Scale: transform.Vec3{X: 10, Y: 1, Z: 10}})
	require.NoError(t, err)
	w.Step(nil)

	// The spawn enqueues; the cube appears at the next step boundary.
	w.Step([]Intent{{Kind: IntentSpawnCube, Vector: transform.Vec3{Y: 20}}})
	assert.Equal(t, 1, w.Len())
	w.Step(nil)
	assert.Equal(t, 2, w.Len())

	// Clearing likewise removes at the next boundary; the slab survives.
	w.Step([]Intent{{Kind: IntentClearDynamic}})
	assert.Equal(t, 2, w.Len())
	w.Step(nil)
	assert.Equal(t, 1, w.Len())
}

func TestDivergenceClampedToLastValidPose(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 5}, Mass: 1})
	require.NoError(t, err)
	w.Step(nil)
	before, _ := w.Pose(e)

	// Inject a non-finite velocity through an impulse intent.
	w.Step([]Intent{{Kind: IntentImpulse, Target: e, Vector: transform.Vec3{X: math32.Inf(1)}}})

	pose, ok := w.Pose(e)
	require.True(t, ok)
	assert.True(t, pose.IsFinite())
	assert.InDelta(t, float64(before.Position.Y), float64(pose.Position.Y), 0.1)

	// The world keeps simulating normally afterwards.
	w.Step(nil)
	pose, _ = w.Pose(e)
	assert.True(t, pose.IsFinite())
}

func TestPublishSnapshotMatchesWorld(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Position: transform.Vec3{X: 2, Y: 3, Z: 4}, Mass: 1, Color: [4]uint8{255, 0, 0, 255}})
	require.NoError(t, err)
	w.Step(nil)

	st := worldstate.NewState()
	w.Publish(st)

	snap := st.Current()
	assert.Equal(t, w.Tick(), snap.Tick)
	require.Contains(t, snap.Entities, e)
	got := snap.Entities[e]
	pose, _ := w.Pose(e)
	assert.Equal(t, pose.Position, got.Transform.Position)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, got.Color)
}

func TestPublishedSnapshotNotAliasedByLaterPublish(t *testing.T) {
	w := newTestWorld()
	e, err := w.Spawn(BodyDef{Position: transform.Vec3{Y: 50}, Mass: 1})
	require.NoError(t, err)
	w.Step(nil)

	st := worldstate.NewState()
	w.Publish(st)
	snap := st.Current()
	before := snap.Entities[e].Transform.Position

	for i := 0; i < 20; i++ {
		w.Step(nil)
	}
	w.Publish(st)

	// The body has fallen, but the earlier snapshot is frozen: republishing
	// must never write through a snapshot already handed out.
	pose, ok := w.Pose(e)
	require.True(t, ok)
	assert.Less(t, pose.Position.Y, before.Y)
	assert.Equal(t, before, snap.Entities[e].Transform.Position)
}

func TestPublishTwiceSameTick(t *testing.T) {
	w := newTestWorld()
	_, err := w.Spawn(BodyDef{Mass: 1})
	require.NoError(t, err)

	st := worldstate.NewState()
	w.Step(nil)
	w.Publish(st)
	prev := st.Previous()

	w.Publish(st) // no step in between
	assert.Same(t, prev, st.Previous())
}
