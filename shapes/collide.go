// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import (
	"math"

	"github.com/solidbody/manifold/math/lin"
)

// Collide is the shape-collision backend: given two posed shapes and a
// closeness threshold, it returns the contact points found between them.
// Sphere-sphere is solved analytically; a plane paired with anything else
// tests the other shape's vertices (or a sphere's lowest point) against
// the half-space. For these two paths, points within threshold of actually
// touching count (threshold <= 0 means "must overlap"). Everything else
// goes through GJK for overlap, EPA for the separating normal/depth, and
// Sutherland-Hodgman clipping for the resulting manifold; that path
// returns contacts only for overlapping shapes.
func Collide(shapeA Shape, poseA *lin.T, shapeB Shape, poseB *lin.T, threshold float64) []Contact {
	pa := shapeA.Place(poseA)
	pb := shapeB.Place(poseB)
	return collidePlaced(&pa, &pb, threshold)
}

func collidePlaced(pa, pb *Placed, threshold float64) []Contact {
	switch {
	case pa.kind == kindSphere && pb.kind == kindSphere:
		return sphereSphere(&pa.sphere, &pb.sphere, threshold)
	case pa.kind == kindPlane:
		return planeHull(&pa.plane, pb, false, threshold)
	case pb.kind == kindPlane:
		return planeHull(&pb.plane, pa, true, threshold)
	}

	var s simplex
	if !collides(pa, pb, &s) {
		return nil
	}
	normal, penetration, ok := epa(pa, pb, &s)
	if !ok {
		return nil
	}
	if -penetration > threshold {
		return nil
	}
	return manifoldFromNormal(pa, pb, normal, penetration, nil)
}

func sphereSphere(a, b *placedSphere, threshold float64) []Contact {
	diff := lin.NewV3().Sub(&a.center, &b.center)
	distSqr := diff.Dot(diff)
	reach := a.radius + b.radius + threshold
	if distSqr >= reach*reach {
		return nil
	}
	dist := math.Sqrt(distSqr)
	normal := lin.NewV3()
	if dist > 1e-9 {
		normal.Scale(diff, -1.0/dist) // points from a towards b
	} else {
		normal.SetS(0, 1, 0)
	}
	var c Contact
	c.PointA.Add(&a.center, lin.NewV3().Scale(normal, a.radius))
	c.PointB.Sub(&b.center, lin.NewV3().Scale(normal, b.radius))
	c.Normal = *normal
	return []Contact{c}
}

// planeHull clips every hull/sphere point lying within threshold of the
// plane's solid side, producing up to one contact per incident vertex
// (four, for a box face resting flat on the plane). swapped indicates the
// plane was shapeB so Contact.PointA/PointB must be exchanged to keep the
// normal pointing from shape A to shape B.
func planeHull(plane *placedPlane, other *Placed, swapped bool, threshold float64) []Contact {
	var contacts []Contact
	normal := plane.normal
	add := func(p lin.V3, depth float64) {
		onPlane := lin.NewV3().Sub(&p, lin.NewV3().Scale(&normal, depth))
		c := Contact{Normal: normal}
		if swapped {
			c.Normal.Scale(&c.Normal, -1)
			c.PointA, c.PointB = p, *onPlane
		} else {
			c.PointA, c.PointB = *onPlane, p
		}
		contacts = append(contacts, c)
	}

	switch other.kind {
	case kindSphere:
		depth := other.sphere.center.Dot(&normal) - plane.point.Dot(&normal) - other.sphere.radius
		if depth <= threshold {
			var surface lin.V3
			surface.Sub(&other.sphere.center, lin.NewV3().Scale(&normal, other.sphere.radius))
			add(surface, depth)
		}
	case kindHull:
		for _, v := range other.hull.vertices {
			depth := v.Dot(&normal) - plane.point.Dot(&normal)
			if depth <= threshold {
				add(v, depth)
			}
		}
	}
	return contacts
}
