// Package entity provides stable generational identifiers for simulated objects.
// An ID slot is recycled only after its version is bumped, so a stale handle to
// a despawned entity can never alias a newly spawned one.
package entity

// Entity is a unique ID + version tag. The zero Entity is never allocated
// and can be used as "no entity".
type Entity struct {
	ID      uint32
	Version uint32
}

// IsZero reports whether e is the reserved "no entity" value.
func (e Entity) IsZero() bool {
	return e == Entity{}
}

// Allocator hands out entities and recycles despawned IDs with a version bump.
// Not safe for concurrent use; the physics world owns one and touches it only
// at step boundaries.
type Allocator struct {
	versions []uint32 // version per ID; index 0 is the reserved zero entity
	free     []uint32 // despawned IDs available for reuse
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	// Slot 0 is burned so the zero Entity stays invalid.
	return &Allocator{versions: make([]uint32, 1)}
}

// Allocate returns a fresh entity, reusing a freed ID slot if one exists.
func (a *Allocator) Allocate() Entity {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		return Entity{ID: id, Version: a.versions[id]}
	}
	id := uint32(len(a.versions))
	a.versions = append(a.versions, 1)
	return Entity{ID: id, Version: 1}
}

// Release frees the entity's ID for reuse and invalidates all outstanding
// handles to it. Releasing a stale or zero entity is a no-op.
func (a *Allocator) Release(e Entity) {
	if !a.Alive(e) {
		return
	}
	a.versions[e.ID]++
	a.free = append(a.free, e.ID)
}

// Alive reports whether e is a currently allocated entity (right ID, right version).
func (a *Allocator) Alive(e Entity) bool {
	if e.ID == 0 || e.ID >= uint32(len(a.versions)) {
		return false
	}
	return a.versions[e.ID] == e.Version
}
