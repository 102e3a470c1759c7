// Package worldstate holds the double-buffered hand-off between the physics
// step and the renderer: the last two published world snapshots, plus
// interpolation between them so a frame can be drawn at any fraction of a
// physics step without ever observing a half-stepped world.
package worldstate

import (
	"sync/atomic"

	"github.com/colon-crab-colon/game/internal/entity"
	"github.com/colon-crab-colon/game/internal/transform"
)

// EntityState is one entity's render-facing data inside a snapshot.
type EntityState struct {
	Transform transform.Transform
	Color     [4]uint8
}

// Snapshot is an immutable copy of all entity states taken at the end of one
// physics step. Tick identifies the step that produced it; two snapshots with
// the same tick are the same world state.
type Snapshot struct {
	Tick     uint64
	Entities map[entity.Entity]EntityState
}

// EmptySnapshot returns a snapshot with no entities at tick 0.
func EmptySnapshot() *Snapshot {
	return &Snapshot{Entities: map[entity.Entity]EntityState{}}
}

// buffers pairs the two retained snapshots so both can be swapped in one
// atomic store.
type buffers struct {
	previous *Snapshot
	current  *Snapshot
}

// State is the double buffer. Exactly one goroutine publishes (the physics
// side); any number may read or interpolate concurrently. Published snapshots
// must never be mutated afterwards.
type State struct {
	ptr atomic.Pointer[buffers]
}

// NewState returns a State holding two empty snapshots.
func NewState() *State {
	s := &State{}
	empty := EmptySnapshot()
	s.ptr.Store(&buffers{previous: empty, current: empty})
	return s
}

// Publish installs snap as the current snapshot and moves the old current to
// previous, as a single pointer swap. Publishing a snapshot with the same
// tick as the current one replaces current but leaves previous untouched, so
// a redundant publish (no step in between) cannot shift the interpolation
// window.
func (s *State) Publish(snap *Snapshot) {
	old := s.ptr.Load()
	if snap.Tick == old.current.Tick {
		s.ptr.Store(&buffers{previous: old.previous, current: snap})
		return
	}
	s.ptr.Store(&buffers{previous: old.current, current: snap})
}

// Current returns the most recently published snapshot.
func (s *State) Current() *Snapshot {
	return s.ptr.Load().current
}

// Previous returns the snapshot published before the current one.
func (s *State) Previous() *Snapshot {
	return s.ptr.Load().previous
}

// Interpolate builds a render snapshot at fraction alpha between the previous
// and current snapshots. Entities present in both are blended (linear on
// position and scale, spherical on orientation). Entities present only in
// current — spawned since the previous step — are returned at their current
// pose verbatim, so a new entity appears where it was created instead of
// being averaged against a pose that never existed. Entities present only in
// previous are omitted: they are already despawned. Colors are not blended;
// the current value wins.
func (s *State) Interpolate(alpha float32) *Snapshot {
	b := s.ptr.Load()
	out := &Snapshot{
		Tick:     b.current.Tick,
		Entities: make(map[entity.Entity]EntityState, len(b.current.Entities)),
	}
	for e, cur := range b.current.Entities {
		prev, ok := b.previous.Entities[e]
		if !ok {
			out.Entities[e] = cur
			continue
		}
		out.Entities[e] = EntityState{
			Transform: prev.Transform.Lerp(cur.Transform, alpha),
			Color:     cur.Color,
		}
	}
	return out
}
