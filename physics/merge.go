// SPDX-FileCopyrightText : © 2013-2015, 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"math"

	"github.com/solidbody/manifold/math/lin"
)

// Merge folds newly-collided points into a manifold: a point close to an
// existing one replaces it in place (preserving the warm-start impulse so
// a resting contact doesn't restart the solver from zero every step); a
// point with no close match is appended if there's room; otherwise it
// bumps whichever existing point contributes least to the contact patch's
// area, discarding that point's warm-start impulse since it no longer
// represents the same physical contact — unless no replacement actually
// grows the patch, in which case the incoming point is dropped instead.
//
// Grounded on the teacher's contactPair.mergeContacts/closestPoint. The
// nearest-match search stays in PivotA space (matching the teacher); the
// area-maximizing replacement search uses PivotB exclusively rather than
// the mixed-space calculation the reference algorithm is documented to
// get wrong — see the duplicate-space decision in DESIGN.md.
func Merge(m *Manifold, fresh []ContactPoint, cfg Config) {
	for _, np := range fresh {
		switch idx := nearestPoint(m, &np, cfg); {
		case idx >= 0:
			np.NormalImpulse = m.Points[idx].NormalImpulse
			np.TangentImpulse = m.Points[idx].TangentImpulse
			np.Age = m.Points[idx].Age + 1
			m.Points[idx] = np
		case m.NumPoints < MaxContacts:
			m.Points[m.NumPoints] = np
			m.NumPoints++
		default:
			if idx := insertionIndex(m, &np); idx < MaxContacts {
				m.Points[idx] = np
			}
		}
	}
}

// nearestPoint returns the index of the existing point within
// CachingThreshold of np in PivotA space, or -1 if none qualifies.
//
// Based on bullet btPersistentManifold::getCacheEntry.
func nearestPoint(m *Manifold, np *ContactPoint, cfg Config) int {
	shortest := cfg.CachingThreshold * cfg.CachingThreshold
	nearest := -1
	for i := 0; i < m.NumPoints; i++ {
		diff := lin.NewV3().Sub(&m.Points[i].PivotA, &np.PivotA)
		if d := diff.Dot(diff); d < shortest {
			shortest = d
			nearest = i
		}
	}
	return nearest
}

// insertionIndex picks which of the 4 full manifold slots to replace with
// np, or MaxContacts to signal np should be dropped instead. A slot is
// only ever replaced when doing so strictly grows the contact patch's
// area beyond what the 4 existing points already span, and the deepest
// existing point is protected from replacement whenever substituting it
// would shallow the manifold's deepest penetration.
//
// Based on bullet btPersistentManifold::sortCachedPoints.
func insertionIndex(m *Manifold, np *ContactPoint) int {
	p := &m.Points
	current := quadArea(p[0].PivotB, p[1].PivotB, p[2].PivotB, p[3].PivotB)
	areas := [MaxContacts]float64{
		quadArea(np.PivotB, p[1].PivotB, p[2].PivotB, p[3].PivotB),
		quadArea(p[0].PivotB, np.PivotB, p[2].PivotB, p[3].PivotB),
		quadArea(p[0].PivotB, p[1].PivotB, np.PivotB, p[3].PivotB),
		quadArea(p[0].PivotB, p[1].PivotB, p[2].PivotB, np.PivotB),
	}

	deepest := 0
	for i := 1; i < MaxContacts; i++ {
		if p[i].Distance < p[deepest].Distance {
			deepest = i
		}
	}

	best, bestArea := MaxContacts, current
	for k := 0; k < MaxContacts; k++ {
		if k == deepest && p[deepest].Distance < np.Distance {
			continue // replacing the deepest point would shallow the manifold
		}
		if areas[k] > bestArea {
			best, bestArea = k, areas[k]
		}
	}
	return best
}

// quadArea returns the largest of the 3 areas obtainable by pairing the 4
// points into two edges and taking the cross product.
//
// Based on bullet btPersistentManifold::calcArea4Points.
func quadArea(p0, p1, p2, p3 lin.V3) float64 {
	e0a, e0b := lin.NewV3().Sub(&p0, &p1), lin.NewV3().Sub(&p2, &p3)
	e1a, e1b := lin.NewV3().Sub(&p0, &p2), lin.NewV3().Sub(&p1, &p3)
	e2a, e2b := lin.NewV3().Sub(&p0, &p3), lin.NewV3().Sub(&p1, &p2)
	l0 := lin.NewV3().Cross(e0a, e0b).LenSqr()
	l1 := lin.NewV3().Cross(e1a, e1b).LenSqr()
	l2 := lin.NewV3().Cross(e2a, e2b).LenSqr()
	return math.Max(math.Max(l0, l1), l2)
}
