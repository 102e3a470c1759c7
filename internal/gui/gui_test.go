package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colon-crab-colon/game/internal/input"
	"github.com/colon-crab-colon/game/internal/physics"
	"github.com/colon-crab-colon/game/internal/transform"
)

func TestUpdateDoesNotMutatePreviousState(t *testing.T) {
	prev := DefaultState()
	in := input.FrameInput{ToggleOverlay: true}

	next, _, _ := Update(prev, in, Readouts{})

	assert.True(t, prev.ShowOverlay)
	assert.False(t, next.ShowOverlay)
}

func TestOverlayToggle(t *testing.T) {
	st := DefaultState()

	st, cmds, _ := Update(st, input.FrameInput{ToggleOverlay: true}, Readouts{})
	assert.Empty(t, cmds.Panels)

	st, cmds, _ = Update(st, input.FrameInput{ToggleOverlay: true}, Readouts{})
	assert.True(t, st.ShowOverlay)
	assert.NotEmpty(t, cmds.Panels)
}

func TestSpawnIntentInFrontOfCamera(t *testing.T) {
	r := Readouts{
		CameraPos:     transform.Vec3{X: 10, Y: 5, Z: 0},
		CameraForward: transform.Vec3{X: 2, Y: 0, Z: 0}, // not normalized on purpose
	}

	_, _, intents := Update(DefaultState(), input.FrameInput{SpawnCube: true}, r)

	require.Len(t, intents, 1)
	assert.Equal(t, physics.IntentSpawnCube, intents[0].Kind)
	assert.InDelta(t, 16.0, float64(intents[0].Vector.X), 1e-4)
	assert.InDelta(t, 5.0, float64(intents[0].Vector.Y), 1e-4)
}

func TestClearIntent(t *testing.T) {
	_, _, intents := Update(DefaultState(), input.FrameInput{ClearDynamic: true}, Readouts{})
	require.Len(t, intents, 1)
	assert.Equal(t, physics.IntentClearDynamic, intents[0].Kind)
}

func TestNoInputNoIntents(t *testing.T) {
	_, _, intents := Update(DefaultState(), input.FrameInput{}, Readouts{})
	assert.Empty(t, intents)
}

func TestPanelsContent(t *testing.T) {
	r := Readouts{
		CameraPos:  transform.Vec3{X: 1, Y: 2, Z: 3},
		BodyCount:  42,
		Tick:       1000,
		StatsLines: []string{"FPS: 60.00"},
		LogLines:   []string{"a", "b"},
	}

	_, cmds, _ := Update(DefaultState(), input.FrameInput{}, r)

	require.Len(t, cmds.Panels, 3)
	stats := cmds.Panels[0]
	assert.Equal(t, AnchorTopLeft, stats.Anchor)
	assert.Contains(t, stats.Lines, "FPS: 60.00")
	assert.Contains(t, stats.Lines, "bodies: 42")
	assert.Contains(t, stats.Lines, "tick: 1000")

	coords := cmds.Panels[1]
	assert.Equal(t, AnchorTopRight, coords.Anchor)
	require.Len(t, coords.Lines, 3)
	assert.Contains(t, coords.Lines[0], "X:")

	logs := cmds.Panels[2]
	assert.Equal(t, AnchorBottomLeft, logs.Anchor)
	assert.Equal(t, []string{"a", "b"}, logs.Lines)
}

func TestLogPanelCapped(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	_, cmds, _ := Update(DefaultState(), input.FrameInput{}, Readouts{LogLines: lines})

	logs := cmds.Panels[len(cmds.Panels)-1]
	assert.Len(t, logs.Lines, maxLogLines)
}
