// SPDX-FileCopyrightText : © 2013-2015, 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"github.com/solidbody/manifold/math/lin"
	"github.com/solidbody/manifold/store"
)

// ContactPoint is one persistent point in a manifold: a body-local anchor
// on each body (PivotA/PivotB), the normal on B's contact face expressed
// in B's local frame (NormalB), the current separation along that normal,
// the combined material constants computed when the point was created,
// and the warm-start impulse the solver accumulated last time it ran —
// kept across merges so resting contacts don't start every step from
// zero.
//
// NormalB stays in B's local frame (rather than caching a world-space
// direction) so that a point persisting across frames where B rotates but
// no fresh collide result refreshes it — the normal hysteresis-window
// case, §4.4.1 — still measures distance against B's *current* orientation
// instead of a stale one.
//
// worldA/worldB/worldNormal cache the last distance-refresh's world-space
// values; prune uses them for the tangential-drift check without
// recomputing App/AppR twice.
type ContactPoint struct {
	PivotA   lin.V3
	PivotB   lin.V3
	NormalB  lin.V3
	Distance float64

	Friction    float64
	Restitution float64
	Stiffness   float64
	Damping     float64

	NormalImpulse  float64
	TangentImpulse [2]float64

	Age int

	worldA, worldB, worldNormal lin.V3
}

// Manifold is the persistent contact state for one overlapping body pair.
// BodyA/BodyB are ordered so a pair's manifold can always be found by the
// same key regardless of which body is queried first (see PairKey).
type Manifold struct {
	BodyA, BodyB store.ID
	Points       [MaxContacts]ContactPoint
	NumPoints    int
}

// NewManifold returns an empty manifold for the ordered pair (a, b).
func NewManifold(a, b store.ID) *Manifold {
	return &Manifold{BodyA: a, BodyB: b}
}

// removeAt drops point i by swapping in the last live point, the same
// dense-array compaction the teacher's solver body list uses elsewhere.
func (m *Manifold) removeAt(i int) {
	last := m.NumPoints - 1
	m.Points[i] = m.Points[last]
	m.Points[last] = ContactPoint{}
	m.NumPoints--
}

// PairKey is the ordered-pair identity of a manifold: both orderings of
// the same two bodies resolve to the same key.
type PairKey struct{ Lo, Hi store.ID }

// MakePairKey orders a and b so the pair has one canonical key regardless
// of call order, grounded on the teacher's body.pairID (smaller id first).
func MakePairKey(a, b store.ID) PairKey {
	if a <= b {
		return PairKey{a, b}
	}
	return PairKey{b, a}
}
