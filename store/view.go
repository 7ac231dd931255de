package store

import "github.com/solidbody/manifold/math/lin"

// Pose returns a transform view onto id's position/orientation columns.
// The returned *lin.T aliases the store's backing arrays: it is only valid
// until the next Create() call may reallocate them, so callers must not
// retain it across entity creation.
func (s *Store) Pose(id ID) *lin.T {
	slot := id.slot()
	return &lin.T{Loc: &s.Position[slot], Rot: &s.Orientation[slot]}
}

func (s *Store) SetShape(id ID, shape Shape) {
	s.Shape[id.slot()] = shape
}

func (s *Store) SetMaterial(id ID, m Material) {
	s.Material[id.slot()] = m
}

func (s *Store) SetAABB(id ID, box AABB) {
	s.AABB[id.slot()] = box
	s.Mark(id, KindAABB, Updated)
}

func (s *Store) GetAABB(id ID) AABB {
	return s.AABB[id.slot()]
}

func (s *Store) GetShape(id ID) Shape {
	return s.Shape[id.slot()]
}

func (s *Store) GetMaterial(id ID) Material {
	return s.Material[id.slot()]
}

func (s *Store) IsAwake(id ID) bool {
	return s.Awake[id.slot()]
}

func (s *Store) SetAwake(id ID, awake bool) {
	s.Awake[id.slot()] = awake
}
