// Package gui is the immediate-mode overlay: each frame it maps the sampled
// input and read-only world readouts to a fresh set of paint commands. It
// never touches the physics world directly; simulation-affecting actions come
// out as control intents for the next physics step.
package gui

import (
	"fmt"

	"github.com/colon-crab-colon/game/internal/input"
	"github.com/colon-crab-colon/game/internal/physics"
	"github.com/colon-crab-colon/game/internal/transform"
)

// spawnDistance is how far in front of the camera an intent-spawned cube
// appears.
const spawnDistance = 6

// maxLogLines caps the log readout panel.
const maxLogLines = 6

// Anchor positions a panel relative to the screen.
type Anchor uint8

const (
	AnchorTopLeft Anchor = iota
	AnchorTopRight
	AnchorBottomLeft
)

// Panel is one overlay block: monospace lines on a dark background.
type Panel struct {
	Anchor Anchor
	Lines  []string
}

// Commands is the overlay paint output for one frame. It is rebuilt from
// scratch every frame and never retained past the submit.
type Commands struct {
	Panels []Panel
}

// Readouts is the read-only world data the overlay displays.
type Readouts struct {
	CameraPos     transform.Vec3
	CameraForward transform.Vec3
	BodyCount     int
	Tick          uint64
	StatsLines    []string
	LogLines      []string
}

// State is the overlay's persistent state between frames. Treated as
// immutable: Update copies it rather than mutating in place.
type State struct {
	ShowOverlay bool
}

// DefaultState returns the initial overlay state (overlay visible).
func DefaultState() State {
	return State{ShowOverlay: true}
}

// Update maps (previous state, frame input, readouts) to the next state, the
// paint commands for this frame, and any control intents for the next physics
// step. Pure: prev is taken by value and never mutated.
func Update(prev State, in input.FrameInput, r Readouts) (State, Commands, []physics.Intent) {
	next := prev

	if in.ToggleOverlay {
		next.ShowOverlay = !next.ShowOverlay
	}

	var intents []physics.Intent
	if in.SpawnCube {
		pos := r.CameraPos.Add(r.CameraForward.Normalize().Scale(spawnDistance))
		intents = append(intents, physics.Intent{Kind: physics.IntentSpawnCube, Vector: pos})
	}
	if in.ClearDynamic {
		intents = append(intents, physics.Intent{Kind: physics.IntentClearDynamic})
	}

	if !next.ShowOverlay {
		return next, Commands{}, intents
	}

	return next, Commands{Panels: buildPanels(r)}, intents
}

func buildPanels(r Readouts) []Panel {
	statsLines := make([]string, 0, len(r.StatsLines)+2)
	statsLines = append(statsLines, r.StatsLines...)
	statsLines = append(statsLines,
		fmt.Sprintf("bodies: %d", r.BodyCount),
		fmt.Sprintf("tick: %d", r.Tick),
	)

	coords := []string{
		fmt.Sprintf("X: %9.2f", r.CameraPos.X),
		fmt.Sprintf("Y: %9.2f", r.CameraPos.Y),
		fmt.Sprintf("Z: %9.2f", r.CameraPos.Z),
	}

	panels := []Panel{
		{Anchor: AnchorTopLeft, Lines: statsLines},
		{Anchor: AnchorTopRight, Lines: coords},
	}

	if len(r.LogLines) > 0 {
		logs := r.LogLines
		if len(logs) > maxLogLines {
			logs = logs[len(logs)-maxLogLines:]
		}
		panels = append(panels, Panel{Anchor: AnchorBottomLeft, Lines: logs})
	}
	return panels
}
