// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

// Broadphase tracks which body pairs are close enough to need narrowphase
// attention. A pair is created once its AABBs come within breakOffset of
// touching and destroyed once they drift more than separationOffset
// apart — the asymmetric margins give the pair table hysteresis so
// resting contacts right at the boundary don't flicker in and out of
// existence every step.
//
// Both passes inflate each box by half the margin rather than shrinking
// one box by the full margin: growing both boxes by margin/2 and testing
// raw overlap is algebraically the same gap test as a single combined
// margin (gap <= margin), which is what reproduces the destroy law's
// worked example exactly (pair destroyed once the true AABB gap exceeds
// separationOffset). Reading §4.2's inflate(aabb(b0),-OFFSET) formula
// literally and applying it independently to both boxes would instead
// require the gap to exceed 2×OFFSET, which the destroy example
// contradicts; the create pass uses the same convention for symmetry,
// which does mean it opens the pair on approach (gap < breakOffset)
// rather than waiting for true penetration past breakOffset — acceptable
// since broadphase only gates whether a pair is tracked, not whether
// collide() reports a contact (narrowphase's own breakOffset-margin
// check in broadOverlap still gates that).
//
// Grounded on the teacher's physics/shape.go Abox.Overlaps (extended here
// with an inflate-by-margin step) for the overlap test itself; the pair
// table shape follows physics/broad.go's bid-keyed, O(N²)-enumeration
// style even though broad.go's own test is a proximity-sphere check for
// simulation islands, not an AABB pair table — that part comes from
// spec.md §4.2 instead.
type Broadphase struct {
	cfg   Config
	pairs map[PairKey]*Manifold
}

// NewBroadphase returns an empty pair table.
func NewBroadphase(cfg Config) *Broadphase {
	return &Broadphase{cfg: cfg, pairs: map[PairKey]*Manifold{}}
}

// Manifold returns the tracked manifold for (a, b), if any.
func (bp *Broadphase) Manifold(a, b store.ID) (*Manifold, bool) {
	m, ok := bp.pairs[MakePairKey(a, b)]
	return m, ok
}

// Manifolds returns every manifold currently tracked. Order is
// unspecified; callers that need determinism should sort.
func (bp *Broadphase) Manifolds() []*Manifold {
	out := make([]*Manifold, 0, len(bp.pairs))
	for _, m := range bp.pairs {
		out = append(out, m)
	}
	return out
}

// Step runs one destroy-pass-then-create-pass update of the pair table
// against the current AABBs of bodies. New manifolds start empty; their
// first points are added by the narrowphase's collide/merge step.
func (bp *Broadphase) Step(s *store.Store, bodies []store.ID) {
	bp.destroyStalePairs(s)
	bp.createNewPairs(s, bodies)
}

func (bp *Broadphase) destroyStalePairs(s *store.Store) {
	margin := bp.cfg.separationOffset()
	for key, m := range bp.pairs {
		a, b := s.GetAABB(m.BodyA), s.GetAABB(m.BodyB)
		boxA := shapes.Abox{Min: a.Min, Max: a.Max}
		boxB := shapes.Abox{Min: b.Min, Max: b.Max}
		if !boxA.Inflate(margin / 2).Overlaps(boxB.Inflate(margin / 2)) {
			delete(bp.pairs, key)
			s.Mark(m.BodyA, store.KindManifold, store.Destroyed)
			s.Mark(m.BodyB, store.KindManifold, store.Destroyed)
		}
	}
}

func (bp *Broadphase) createNewPairs(s *store.Store, bodies []store.ID) {
	margin := bp.cfg.breakOffset()
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			a, b := bodies[i], bodies[j]
			key := MakePairKey(a, b)
			if _, tracked := bp.pairs[key]; tracked {
				continue
			}
			boxA, boxB := s.GetAABB(a), s.GetAABB(b)
			av := shapes.Abox{Min: boxA.Min, Max: boxA.Max}
			bv := shapes.Abox{Min: boxB.Min, Max: boxB.Max}
			if av.Inflate(margin / 2).Overlaps(bv.Inflate(margin / 2)) {
				m := NewManifold(key.Lo, key.Hi)
				bp.pairs[key] = m
				s.Mark(key.Lo, store.KindManifold, store.Created)
				s.Mark(key.Hi, store.KindManifold, store.Created)
			}
		}
	}
}
