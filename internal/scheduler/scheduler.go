// Package scheduler drives one engine iteration per rendered frame:
// sample input once, run zero or more fixed physics steps, publish the
// snapshot, then render an interpolated view with the overlay. Physics never
// waits on the renderer; the renderer never observes a half-stepped world.
package scheduler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/colon-crab-colon/game/internal/clock"
	"github.com/colon-crab-colon/game/internal/gui"
	"github.com/colon-crab-colon/game/internal/input"
	"github.com/colon-crab-colon/game/internal/logger"
	"github.com/colon-crab-colon/game/internal/physics"
	"github.com/colon-crab-colon/game/internal/renderer"
	"github.com/colon-crab-colon/game/internal/stats"
	"github.com/colon-crab-colon/game/internal/transform"
	"github.com/colon-crab-colon/game/internal/worldstate"
)

// Phase is the scheduler's position in its per-frame state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseSampling
	PhaseStepping
	PhasePublishing
	PhaseRendering
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSampling:
		return "sampling"
	case PhaseStepping:
		return "stepping"
	case PhasePublishing:
		return "publishing"
	case PhaseRendering:
		return "rendering"
	default:
		return "unknown"
	}
}

// Renderer is the capability the scheduler needs from the render backend.
type Renderer interface {
	Render(snap *worldstate.Snapshot, cmds gui.Commands) error
	QueueResize(width, height int32)
}

// Sampler produces the per-frame input snapshot.
type Sampler interface {
	Sample() input.FrameInput
}

// Camera is the render-side viewpoint the scheduler moves and reads.
type Camera interface {
	Update(in input.FrameInput, dt float32)
	Position() transform.Vec3
	Forward() transform.Vec3
}

// Scheduler owns the frame loop state. Construct with New, then call
// RunFrame once per display frame until Done reports true. Not safe for
// concurrent use; one goroutine drives it.
type Scheduler struct {
	log      *slog.Logger
	clk      *clock.Clock
	world    *physics.World
	state    *worldstate.State
	rend     Renderer
	sampler  Sampler
	camera   Camera
	stats    *stats.Stats
	ring     *logger.Ring
	guiState gui.State

	phase Phase
	// intents produced by the GUI pass, consumed by the first physics step
	// of a later frame.
	pendingIntents []physics.Intent
	shutdown       bool
}

// Options assembles a scheduler. World, State, Renderer, Sampler, and Camera
// are required; Clock defaults to 60 Hz, Stats to an empty registry.
type Options struct {
	Log      *slog.Logger
	Clock    *clock.Clock
	World    *physics.World
	State    *worldstate.State
	Renderer Renderer
	Sampler  Sampler
	Camera   Camera
	Stats    *stats.Stats
	Ring     *logger.Ring
	Gui      gui.State
}

// New returns a scheduler in the Idle phase.
func New(opts Options) *Scheduler {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = clock.New(0, 0)
	}
	if opts.Stats == nil {
		opts.Stats = stats.New()
	}
	s := &Scheduler{
		log:      opts.Log,
		clk:      opts.Clock,
		world:    opts.World,
		state:    opts.State,
		rend:     opts.Renderer,
		sampler:  opts.Sampler,
		camera:   opts.Camera,
		stats:    opts.Stats,
		ring:     opts.Ring,
		guiState: opts.Gui,
	}
	s.stats.Add("fps", "FPS", "FPS", stats.RankLow)
	s.stats.Add("frame", "Frame time", "ms", stats.RankHigh)
	s.stats.Add("physics", "Physics", "ms", stats.RankHigh)
	return s
}

// Phase returns the scheduler's current state-machine phase. Between frames
// this is always PhaseIdle.
func (s *Scheduler) Phase() Phase {
	return s.phase
}

// Done reports whether shutdown has been requested. It becomes true only at
// the Idle boundary: an in-flight frame always runs to completion first.
func (s *Scheduler) Done() bool {
	return s.shutdown
}

// RunFrame executes one full iteration of the state machine with the given
// real frame delta in seconds. Recoverable component errors are logged and
// degrade the frame (a skipped render, a dropped step); only device loss is
// returned, and it is fatal. After RunFrame the scheduler is back in Idle.
func (s *Scheduler) RunFrame(realDelta float64) error {
	frameStart := time.Now()
	defer func() { s.phase = PhaseIdle }()

	// A NaN or negative wall-clock reading counts as zero time for the whole
	// frame, the camera included.
	if math.IsNaN(realDelta) || realDelta < 0 {
		s.log.Warn("frame delta rejected", "delta", realDelta)
		realDelta = 0
	}

	// Sampling: exactly one input snapshot per frame.
	s.phase = PhaseSampling
	in := s.sampler.Sample()
	if in.CloseRequested {
		s.shutdown = true
	}
	if in.Resized {
		s.rend.QueueResize(in.Width, in.Height)
	}
	s.camera.Update(in, float32(realDelta))

	// Stepping: fixed-rate physics catch-up.
	s.phase = PhaseStepping
	steps, alpha, err := s.clk.Advance(realDelta)
	if err != nil {
		s.log.Warn("frame delta rejected", "err", err)
	}
	physStart := time.Now()
	for i := 0; i < steps; i++ {
		s.world.Step(s.pendingIntents)
		s.pendingIntents = nil
	}
	if steps > 0 {
		s.stats.Push("physics", float64(time.Since(physStart).Microseconds())/1000)
	}

	// Publishing: atomically hand the stepped world to the render side.
	s.phase = PhasePublishing
	s.world.Publish(s.state)

	// Rendering: interpolated snapshot plus overlay output.
	s.phase = PhaseRendering
	snap := s.state.Interpolate(float32(alpha))

	readouts := gui.Readouts{
		CameraPos:     s.camera.Position(),
		CameraForward: s.camera.Forward(),
		BodyCount:     s.world.Len(),
		Tick:          s.world.Tick(),
		StatsLines:    s.stats.Lines(),
	}
	if s.ring != nil {
		readouts.LogLines = s.ring.Lines()
	}
	var cmds gui.Commands
	var intents []physics.Intent
	s.guiState, cmds, intents = gui.Update(s.guiState, in, readouts)
	s.pendingIntents = append(s.pendingIntents, intents...)

	if err := s.rend.Render(snap, cmds); err != nil {
		if errors.Is(err, renderer.ErrDeviceLost) {
			return fmt.Errorf("scheduler: unrecoverable render failure: %w", err)
		}
		s.log.Warn("frame skipped", "err", err, "tick", s.world.Tick())
	}

	frameSecs := time.Since(frameStart).Seconds()
	s.stats.Push("frame", frameSecs*1000)
	if frameSecs > 0 {
		s.stats.Push("fps", 1/frameSecs)
	}
	return nil
}
