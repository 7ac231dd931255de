// SPDX-FileCopyrightText : © 2013-2015, 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"github.com/solidbody/manifold/math/lin"
	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

// newContactPoint builds a fresh ContactPoint from a raw collision result,
// converting the world-space touch points into each body's local frame
// (the anchors that stay valid as the bodies move) and combining the two
// bodies' materials.
//
// Friction and restitution combine multiplicatively, grounded on the
// teacher's body.combinedFriction/combinedRestitution. Stiffness and
// damping combine in series (as springs in series do) unless one side
// carries the LargeScalar "rigid" sentinel, in which case the other side's
// value passes through unchanged — there is no teacher precedent for this
// half (the teacher's Bullet-derived solver has no stiffness/damping
// concept), so it follows the formula directly.
func newContactPoint(c shapes.Contact, poseA, poseB *lin.T, matA, matB store.Material, cfg Config) ContactPoint {
	var p ContactPoint
	// Collide's normal points from A towards B; the stored normal is the one
	// on B's contact face, pointing back towards A, so that penetration
	// gives a negative Distance.
	var normal lin.V3
	normal.Neg(&c.Normal)
	p.worldA, p.worldB, p.worldNormal = c.PointA, c.PointB, normal

	diff := lin.NewV3().Sub(&c.PointA, &c.PointB)
	p.Distance = diff.Dot(&normal)

	p.PivotA = c.PointA
	poseA.Inv(&p.PivotA)
	p.PivotB = c.PointB
	poseB.Inv(&p.PivotB)

	invB := lin.NewQ().Inv(poseB.Rot)
	nx, ny, nz := lin.MultSQ(normal.X, normal.Y, normal.Z, invB)
	p.NormalB = lin.V3{X: nx, Y: ny, Z: nz}

	p.Friction = matA.Friction * matB.Friction
	p.Restitution = matA.Restitution * matB.Restitution
	p.Stiffness = combineSeries(matA.Stiffness, matB.Stiffness, cfg.LargeScalar)
	p.Damping = combineSeries(matA.Damping, matB.Damping, cfg.LargeScalar)
	return p
}

func combineSeries(a, b, largeScalar float64) float64 {
	switch {
	case a >= largeScalar:
		return b
	case b >= largeScalar:
		return a
	case a+b == 0:
		return 0
	default:
		return (a * b) / (a + b)
	}
}
