// SPDX-FileCopyrightText : © 2013-2015, 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import "github.com/solidbody/manifold/math/lin"

// Prune drops every point whose separation has grown past the breaking
// threshold, either along the normal or tangentially (the point slid off
// the contact patch even though it never separated along the normal).
// Must run after RefreshDistances. Iterates in reverse so removeAt's
// swap-with-last never skips the point that just got swapped into the
// current slot.
//
// Based on bullet btPersistentManifold::refreshContactPoints's removal half.
func Prune(m *Manifold, cfg Config) {
	limit := cfg.ContactBreakingThreshold
	limitSqr := limit * limit
	for i := m.NumPoints - 1; i >= 0; i-- {
		p := &m.Points[i]
		if p.Distance > limit {
			m.removeAt(i)
			continue
		}
		projected := lin.NewV3().Scale(&p.worldNormal, p.Distance)
		projected.Add(projected, &p.worldB)
		tangential := lin.NewV3().Sub(projected, &p.worldA)
		if tangential.LenSqr() > limitSqr {
			m.removeAt(i)
		}
	}
}
