// SPDX-FileCopyrightText : © 2013-2015, 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import "github.com/solidbody/manifold/math/lin"

// RefreshDistances recomputes every existing point's world position and
// separation distance from the bodies' current poses, without discarding
// anything — Prune decides what to drop. This must run before Prune and
// before collide() is asked for new points, the same ordering the
// teacher's refreshContacts enforced by doing both in one pass.
//
// NormalB is stored in B's local frame, so it is rotated back to world
// space here against poseB's *current* orientation every call — this is
// what keeps distance correct for a point that persists through a frame
// where B rotates but no fresh collide result touches it (the §4.4.1
// hysteresis window).
//
// Based on bullet btPersistentManifold::refreshContactPoints.
func RefreshDistances(m *Manifold, poseA, poseB *lin.T) {
	for i := 0; i < m.NumPoints; i++ {
		p := &m.Points[i]
		p.worldA = p.PivotA
		poseA.App(&p.worldA)
		p.worldB = p.PivotB
		poseB.App(&p.worldB)

		nx, ny, nz := poseB.AppR(p.NormalB.X, p.NormalB.Y, p.NormalB.Z)
		p.worldNormal = lin.V3{X: nx, Y: ny, Z: nz}

		diff := lin.NewV3().Sub(&p.worldA, &p.worldB)
		p.Distance = diff.Dot(&p.worldNormal)
	}
}
