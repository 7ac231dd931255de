// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

// Narrowphase runs the per-manifold refresh/collide/merge/prune pipeline
// over every pair broadphase is tracking.
type Narrowphase struct {
	cfg Config
}

// NewNarrowphase returns a narrowphase orchestrator using cfg's tunables.
func NewNarrowphase(cfg Config) *Narrowphase {
	return &Narrowphase{cfg: cfg}
}

// Step processes every manifold broadphase currently tracks. Manifolds are
// independent of one another (each owns disjoint Points/NumPoints state
// and only reads, never writes, shared store columns), so with more than
// one manifold the work is split across ParallelFor; dirty-store marks are
// buffered per manifold during the parallel region and committed in a
// single serial pass afterwards, since Store's dirty log is not safe for
// concurrent writers.
//
// Grounded on the snapshot/parallel-compute/serial-apply three-phase shape
// used for per-entity intents in the retrieval pack's parallel update
// example, generalized here to per-manifold point-count deltas.
func (np *Narrowphase) Step(s *store.Store, bp *Broadphase) {
	manifolds := bp.Manifolds()
	if len(manifolds) <= 1 {
		for _, m := range manifolds {
			before := m.NumPoints
			np.process(s, m)
			commitDirty(s, m, before)
		}
		return
	}

	deltas := make([]int, len(manifolds))
	ParallelFor(len(manifolds), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			m := manifolds[i]
			deltas[i] = m.NumPoints
			np.process(s, m)
		}
	})
	for i, m := range manifolds {
		commitDirty(s, m, deltas[i])
	}
}

// process runs the refresh/broad-check/collide/merge/prune pipeline for a
// single manifold. It only ever touches m's own fields and reads shared
// store columns, so it is safe to call concurrently across manifolds.
func (np *Narrowphase) process(s *store.Store, m *Manifold) {
	poseA, poseB := s.Pose(m.BodyA), s.Pose(m.BodyB)

	// §4.3: bring existing points' distances up to date before deciding
	// anything else about them.
	RefreshDistances(m, poseA, poseB)

	// §4.4.1: a coarse AABB check gates the (much more expensive) collide
	// call; broadphase's own wider hysteresis margin is what decides
	// whether the pair is tracked at all, not this check.
	if np.broadOverlap(s, m) {
		shapeA, okA := s.GetShape(m.BodyA).(shapes.Shape)
		shapeB, okB := s.GetShape(m.BodyB).(shapes.Shape)
		if !okA || !okB {
			panic("narrowphase precondition violated: manifold body missing a shape")
		}
		matA, matB := s.GetMaterial(m.BodyA), s.GetMaterial(m.BodyB)

		raw := shapes.Collide(shapeA, poseA, shapeB, poseB, np.cfg.ContactBreakingThreshold)
		if len(raw) > 0 {
			fresh := make([]ContactPoint, len(raw))
			for i, c := range raw {
				fresh[i] = newContactPoint(c, poseA, poseB, matA, matB, np.cfg)
			}
			Merge(m, fresh, np.cfg)
		}
	}

	// §4.4.4: always prune, even when broadphase says the pair is stale —
	// a stale broadphase pair is just a pair whose points, lacking fresh
	// matches, age past the breaking threshold on their own.
	Prune(m, np.cfg)
}

// broadOverlap is the per-step collide gate, §4.4.1: it shrinks body A's
// AABB by BreakOffset and tests that against body B's raw AABB, the same
// tight margin collide() itself uses to decide whether to emit new points.
// This is deliberately tighter than broadphase's own pair-tracking margin
// (see Broadphase.destroyStalePairs/createNewPairs), so a pair can stay
// tracked across a frame where this gate closes without narrowphase ever
// running collide.
func (np *Narrowphase) broadOverlap(s *store.Store, m *Manifold) bool {
	a, b := s.GetAABB(m.BodyA), s.GetAABB(m.BodyB)
	boxA := shapes.Abox{Min: a.Min, Max: a.Max}
	boxB := shapes.Abox{Min: b.Min, Max: b.Max}
	return boxA.Inflate(-np.cfg.breakOffset()).Overlaps(boxB)
}

// commitDirty reports the net effect of a narrowphase pass on a manifold's
// contact points. It is the serial half of the buffered-commit split: the
// only place allowed to write to Store.dirty.
func commitDirty(s *store.Store, m *Manifold, before int) {
	if m.NumPoints == before {
		return
	}
	kind := store.Updated
	if before == 0 {
		kind = store.Created
	} else if m.NumPoints == 0 {
		kind = store.Destroyed
	}
	s.Mark(m.BodyA, store.KindContactPoint, kind)
	s.Mark(m.BodyB, store.KindContactPoint, kind)
}
