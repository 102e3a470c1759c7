// Package physics owns every rigid body in the simulation and advances them
// by a fixed timestep: gravity, integration, AABB collision resolution.
// Spawns and despawns are queued and applied only at a step boundary, never
// mid-step, and transforms leave the package only as published snapshots.
package physics

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jinzhu/copier"

	"github.com/colon-crab-colon/game/internal/entity"
	"github.com/colon-crab-colon/game/internal/transform"
	"github.com/colon-crab-colon/game/internal/worldstate"
)

// ErrInvalidBody is returned by Spawn for a definition the solver cannot
// simulate (non-finite mass, degenerate collider). The request is dropped.
var ErrInvalidBody = errors.New("physics: invalid body definition")

// Config holds the world's immutable simulation parameters.
type Config struct {
	Gravity transform.Vec3
	FixedDt float32
}

// DefaultConfig returns standard gravity and a 60 Hz timestep.
func DefaultConfig() Config {
	return Config{
		Gravity: transform.Vec3{Y: -9.81},
		FixedDt: 1.0 / 60.0,
	}
}

// IntentKind discriminates control intents.
type IntentKind uint8

const (
	// IntentImpulse applies Vector as an impulse to Target.
	IntentImpulse IntentKind = iota
	// IntentSpawnCube spawns a unit dynamic cube at Vector.
	IntentSpawnCube
	// IntentClearDynamic despawns every dynamic body.
	IntentClearDynamic
)

// Intent is a queued control record from the GUI or input layer. Intents are
// the only way anything outside this package influences the simulation.
// Impulses take effect within the step that consumes them; spawn and clear
// intents enqueue creation or removal for the next step boundary.
type Intent struct {
	Kind   IntentKind
	Target entity.Entity
	Vector transform.Vec3
}

// World holds the set of bodies and runs fixed-timestep simulation over them.
// It is the sole mutator of body state. Not safe for concurrent use; the
// frame scheduler serializes Spawn/Despawn/Step/Publish.
type World struct {
	cfg   Config
	log   *slog.Logger
	alloc *entity.Allocator

	bodies map[entity.Entity]*Body
	order  []entity.Entity // insertion order, for deterministic stepping

	pendingSpawn   []pendingSpawn
	pendingDespawn []entity.Entity

	// scratch is the reusable publish staging map; published snapshots are
	// deep-copied out of it and never alias it.
	scratch map[entity.Entity]worldstate.EntityState

	tick uint64
}

type pendingSpawn struct {
	ent entity.Entity
	def BodyDef
}

// NewWorld returns an empty world with the given configuration.
func NewWorld(cfg Config, log *slog.Logger) *World {
	if cfg.FixedDt <= 0 {
		cfg.FixedDt = DefaultConfig().FixedDt
	}
	if log == nil {
		log = slog.Default()
	}
	return &World{
		cfg:    cfg,
		log:    log,
		alloc:  entity.NewAllocator(),
		bodies: make(map[entity.Entity]*Body),
	}
}

// Spawn validates def and queues a body for creation at the next step
// boundary. The returned entity becomes visible in snapshots only after that
// step. An invalid definition is dropped with ErrInvalidBody and allocates
// nothing.
func (w *World) Spawn(def BodyDef) (entity.Entity, error) {
	if !def.valid() {
		w.log.Warn("spawn rejected", "err", ErrInvalidBody,
			"mass", def.Mass, "static", def.Static)
		return entity.Entity{}, fmt.Errorf("%w: mass=%v scale=%v", ErrInvalidBody, def.Mass, def.Scale)
	}
	e := w.alloc.Allocate()
	w.pendingSpawn = append(w.pendingSpawn, pendingSpawn{ent: e, def: def.normalized()})
	return e, nil
}

// Despawn queues the entity for removal at the next step boundary.
// Unknown or stale entities are ignored.
func (w *World) Despawn(e entity.Entity) {
	if !w.alloc.Alive(e) {
		return
	}
	w.pendingDespawn = append(w.pendingDespawn, e)
}

// Pose returns the entity's current transform, if it has a live body.
func (w *World) Pose(e entity.Entity) (transform.Transform, bool) {
	b, ok := w.bodies[e]
	if !ok {
		return transform.Transform{}, false
	}
	return b.Transform(), true
}

// Len returns the number of live bodies.
func (w *World) Len() int {
	return len(w.order)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Step advances the simulation by exactly one fixed timestep, consuming the
// given control intents. Queued despawns and spawns are applied first, then
// intents, then integration and collision resolution. Bodies whose new pose
// is non-finite are clamped back to their last valid pose and logged.
func (w *World) Step(intents []Intent) {
	w.applyPending()
	w.applyIntents(intents)
	w.integrate()
	w.resolveCollisions()
	w.clampDiverged()
	w.tick++
}

// Publish copies current transforms into a fresh snapshot and installs it as
// the double buffer's current. The snapshot is deep-copied out of the world's
// staging map, so later publishes never write through an already published
// snapshot. Publishing twice without an intervening Step produces the same
// tick and does not shift the interpolation window.
func (w *World) Publish(dst *worldstate.State) {
	if w.scratch == nil {
		w.scratch = make(map[entity.Entity]worldstate.EntityState, len(w.order))
	}
	clear(w.scratch)
	for _, e := range w.order {
		b := w.bodies[e]
		w.scratch[e] = worldstate.EntityState{
			Transform: b.Transform(),
			Color:     b.Color,
		}
	}
	snap := &worldstate.Snapshot{
		Tick:     w.tick,
		Entities: make(map[entity.Entity]worldstate.EntityState, len(w.scratch)),
	}
	if err := copier.CopyWithOption(&snap.Entities, &w.scratch, copier.Option{DeepCopy: true}); err != nil {
		w.log.Error("snapshot copy failed", "err", err, "tick", w.tick)
		return
	}
	dst.Publish(snap)
}

func (w *World) applyPending() {
	for _, e := range w.pendingDespawn {
		if _, ok := w.bodies[e]; !ok {
			continue
		}
		delete(w.bodies, e)
		for i, o := range w.order {
			if o == e {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
		w.alloc.Release(e)
	}
	w.pendingDespawn = w.pendingDespawn[:0]

	for _, p := range w.pendingSpawn {
		b := &Body{
			Position:        p.def.Position,
			Orientation:     p.def.Orientation,
			Velocity:        p.def.Velocity,
			AngularVelocity: p.def.AngularVelocity,
			Scale:           p.def.Scale,
			Mass:            p.def.Mass,
			Static:          p.def.Static,
			Color:           p.def.Color,
		}
		b.lastValid = b.Transform()
		w.bodies[p.ent] = b
		w.order = append(w.order, p.ent)
	}
	w.pendingSpawn = w.pendingSpawn[:0]
}

func (w *World) applyIntents(intents []Intent) {
	for _, in := range intents {
		switch in.Kind {
		case IntentImpulse:
			b, ok := w.bodies[in.Target]
			if !ok || b.Static {
				continue
			}
			b.Velocity = b.Velocity.Add(in.Vector.Scale(1 / b.Mass))
		case IntentSpawnCube:
			_, _ = w.Spawn(BodyDef{
				Position: in.Vector,
				Mass:     1,
				Color:    cubeColor(w.tick),
			})
		case IntentClearDynamic:
			for _, e := range w.order {
				if !w.bodies[e].Static {
					w.Despawn(e)
				}
			}
		}
	}
}

// cubeColor derives a stable color from the spawn tick so intent-spawned
// cubes are distinguishable without an RNG.
func cubeColor(tick uint64) [4]uint8 {
	h := tick*2654435761 + 12345
	return [4]uint8{uint8(h), uint8(h >> 8), uint8(h >> 16), 255}
}

// integrate applies gravity and advances linear and angular state for all
// dynamic bodies. Orientations are renormalized every step to stay unit-norm.
func (w *World) integrate() {
	dt := w.cfg.FixedDt
	for _, e := range w.order {
		b := w.bodies[e]
		if b.Static {
			continue
		}
		b.Velocity = b.Velocity.Add(w.cfg.Gravity.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))

		// dq/dt = 0.5 * (0, omega) * q
		omega := transform.Quat{
			X: b.AngularVelocity.X,
			Y: b.AngularVelocity.Y,
			Z: b.AngularVelocity.Z,
		}
		dq := omega.Mul(b.Orientation)
		b.Orientation = transform.Quat{
			W: b.Orientation.W + 0.5*dt*dq.W,
			X: b.Orientation.X + 0.5*dt*dq.X,
			Y: b.Orientation.Y + 0.5*dt*dq.Y,
			Z: b.Orientation.Z + 0.5*dt*dq.Z,
		}.Normalize()
	}
}

// resolveCollisions finds overlapping AABB pairs and pushes them apart along
// the minimum penetration axis, splitting the correction by mass. Static
// bodies never move. Velocity along the resolved axis is zeroed, which gives
// inelastic stacking.
func (w *World) resolveCollisions() {
	for i := 0; i < len(w.order); i++ {
		bi := w.bodies[w.order[i]]
		for j := i + 1; j < len(w.order); j++ {
			bj := w.bodies[w.order[j]]
			if bi.Static && bj.Static {
				continue
			}
			depth, axis := penetrationAxis(bi, bj)
			if axis < 0 {
				continue
			}
			moveI, moveJ := split(bi, bj, depth)
			if flipped(bi, bj, axis) {
				moveI, moveJ = -moveI, -moveJ
			}
			switch axis {
			case 0:
				bi.Position.X += moveI
				bj.Position.X += moveJ
				if !bi.Static {
					bi.Velocity.X = 0
				}
				if !bj.Static {
					bj.Velocity.X = 0
				}
			case 1:
				bi.Position.Y += moveI
				bj.Position.Y += moveJ
				if !bi.Static {
					bi.Velocity.Y = 0
				}
				if !bj.Static {
					bj.Velocity.Y = 0
				}
			case 2:
				bi.Position.Z += moveI
				bj.Position.Z += moveJ
				if !bi.Static {
					bi.Velocity.Z = 0
				}
				if !bj.Static {
					bj.Velocity.Z = 0
				}
			}
		}
	}
}

// penetrationAxis returns the overlap depth and axis index (0=X, 1=Y, 2=Z)
// of minimum penetration between two bodies, or (0, -1) if they don't overlap.
func penetrationAxis(a, b *Body) (depth float32, axis int) {
	aMin, aMax := a.aabb()
	bMin, bMax := b.aabb()

	overlapX := min(aMax.X, bMax.X) - max(aMin.X, bMin.X)
	overlapY := min(aMax.Y, bMax.Y) - max(aMin.Y, bMin.Y)
	overlapZ := min(aMax.Z, bMax.Z) - max(aMin.Z, bMin.Z)
	if overlapX <= 0 || overlapY <= 0 || overlapZ <= 0 {
		return 0, -1
	}
	depth = overlapX
	axis = 0
	if overlapY < depth {
		depth = overlapY
		axis = 1
	}
	if overlapZ < depth {
		depth = overlapZ
		axis = 2
	}
	return depth, axis
}

// split divides the separation distance between two bodies by mass. A static
// body takes none of the correction. Sign convention: bi moves toward -axis,
// bj toward +axis; the caller flips both when bi is the higher body.
func split(bi, bj *Body, depth float32) (moveI, moveJ float32) {
	switch {
	case bi.Static:
		return 0, depth
	case bj.Static:
		return -depth, 0
	default:
		total := bi.Mass + bj.Mass
		return -depth * (bj.Mass / total), depth * (bi.Mass / total)
	}
}

// flipped reports whether bi's center is past bj's on the given axis, so the
// separation direction must be reversed.
func flipped(bi, bj *Body, axis int) bool {
	switch axis {
	case 0:
		return bi.Position.X > bj.Position.X
	case 1:
		return bi.Position.Y > bj.Position.Y
	default:
		return bi.Position.Z > bj.Position.Z
	}
}

// clampDiverged resets any body whose pose went non-finite back to its last
// valid pose with zeroed velocity, and records the new pose otherwise.
func (w *World) clampDiverged() {
	for _, e := range w.order {
		b := w.bodies[e]
		pose := b.Transform()
		if pose.IsFinite() && b.Velocity.IsFinite() && b.AngularVelocity.IsFinite() {
			b.lastValid = pose
			continue
		}
		w.log.Warn("physics divergence clamped", "entity", e.ID, "tick", w.tick)
		b.Position = b.lastValid.Position
		b.Orientation = b.lastValid.Orientation
		b.Scale = b.lastValid.Scale
		b.Velocity = transform.Vec3{}
		b.AngularVelocity = transform.Vec3{}
	}
}
