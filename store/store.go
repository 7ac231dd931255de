// Package store holds the generational-id entity table and the typed
// component columns the contact-manifold core reads and writes. It is the
// concrete stand-in for the keyed entity store the orchestrator is defined
// against: a real implementation would more likely be an ECS someone else
// owns, but tests and the orchestrator need something to point at.
package store

import "github.com/solidbody/manifold/math/lin"

const (
	idBits    = 20
	edBits    = 12
	maxID     = 1<<idBits - 1
	maxEdition = 1<<edBits - 1
)

// ID is a generational handle: the low idBits bits are a slot index, the
// high edBits bits are the edition of that slot. A stale ID (wrong edition)
// does not resolve to live data, even after the slot is reused, until the
// slot's edition reaches maxEdition (see Destroy).
type ID uint32

func newID(slot uint32, edition uint16) ID {
	return ID(uint32(edition)<<idBits | slot)
}

func (id ID) slot() uint32 {
	return uint32(id) & maxID
}

func (id ID) edition() uint16 {
	return uint16(uint32(id) >> idBits & maxEdition)
}

// Store is the entity table plus every component column the core touches.
// Components are addressed by slot index; liveness is checked through the
// edition table so a destroyed-and-recreated slot never aliases an old ID.
type Store struct {
	editions []uint16
	free     []uint32

	Position    []lin.V3
	Orientation []lin.Q
	AABB        []AABB
	Shape       []Shape
	Material    []Material
	Awake       []bool

	dirty []change
}

// AABB is an axis-aligned bound in world space.
type AABB struct {
	Min, Max lin.V3
}

// Shape is whatever the collision backend needs to test two bodies against
// each other; the store only carries it opaquely.
type Shape interface {
	Volume() float64
}

// Material carries the per-body constants §4.4.5 combines when a new
// contact point is created.
type Material struct {
	Friction    float64
	Restitution float64
	Stiffness   float64
	Damping     float64
}

// ComponentKind names which column a dirty entry refers to.
type ComponentKind uint8

const (
	KindAABB ComponentKind = iota
	KindManifold
	KindContactPoint
)

// ChangeKind names what happened to a component.
type ChangeKind uint8

const (
	Created ChangeKind = iota
	Updated
	Destroyed
)

type change struct {
	ID   ID
	Kind ComponentKind
	What ChangeKind
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// Create allocates an ID, reusing a freed slot's edition+1 when available.
func (s *Store) Create() ID {
	if len(s.free) > 0 {
		slot := s.free[len(s.free)-1]
		s.free = s.free[:len(s.free)-1]
		return newID(slot, s.editions[slot])
	}
	slot := uint32(len(s.editions))
	s.editions = append(s.editions, 0)
	s.grow(int(slot) + 1)
	return newID(slot, 0)
}

func (s *Store) grow(n int) {
	for len(s.Position) < n {
		s.Position = append(s.Position, lin.V3{})
		s.Orientation = append(s.Orientation, lin.Q{W: 1})
		s.AABB = append(s.AABB, AABB{})
		s.Shape = append(s.Shape, nil)
		s.Material = append(s.Material, Material{})
		s.Awake = append(s.Awake, true)
	}
}

// Destroy retires id's slot for reuse and bumps its edition so any ID still
// referencing it becomes invalid. The edition stops increasing at
// maxEdition; from then on a reused slot's new IDs equal its old ones.
func (s *Store) Destroy(id ID) {
	if !s.Valid(id) {
		return
	}
	slot := id.slot()
	if s.editions[slot] < maxEdition {
		s.editions[slot]++
	}
	s.free = append(s.free, slot)
}

// Valid reports whether id still names a live entity (matching edition).
func (s *Store) Valid(id ID) bool {
	slot := id.slot()
	return int(slot) < len(s.editions) && s.editions[slot] == id.edition()
}

// Mark records a component change for later draining by Dirty.
func (s *Store) Mark(id ID, kind ComponentKind, what ChangeKind) {
	s.dirty = append(s.dirty, change{id, kind, what})
}

// Dirty returns every change recorded since the last Clear.
func (s *Store) Dirty() []change {
	return s.dirty
}

// Clear drops the accumulated dirty set; called once per step.
func (s *Store) Clear() {
	s.dirty = s.dirty[:0]
}
