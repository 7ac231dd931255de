// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import (
	"log/slog"
	"math"

	"github.com/solidbody/manifold/math/lin"
)

// Contact is one point of a generated manifold: a point on each shape's
// surface (generally coincident once resolved) plus the shared normal,
// pointing from shape one towards shape two.
type Contact struct {
	PointA lin.V3
	PointB lin.V3
	Normal lin.V3
}

type clipPlane struct {
	normal lin.V3
	point  lin.V3
}

func insidePlane(p *clipPlane, pos lin.V3) bool {
	d := -p.normal.Dot(&p.point)
	return pos.Dot(&p.normal)+d >= 0.0
}

func planeEdgeIntersection(p *clipPlane, start, end lin.V3, out *lin.V3) bool {
	const epsilon = 0.000001
	ab := lin.NewV3().Sub(&end, &start)
	abP := p.normal.Dot(ab)
	if math.Abs(abP) <= epsilon {
		return false
	}
	d := -p.normal.Dot(&p.point)
	pointOnPlane := lin.NewV3().Scale(&p.normal, -d)
	fac := -p.normal.Dot(lin.NewV3().Sub(&start, pointOnPlane)) / abP
	fac = math.Min(math.Max(fac, 0.0), 1.0)
	out.Add(&start, ab.Scale(ab, fac))
	return true
}

// sutherlandHodgman clips (or, with removeOnly, simply discards-outside)
// input against every plane in clipPlanes in turn.
// Based on https://research.ncl.ac.uk/game/mastersdegree/gametechnologies/previousinformation/physics5collisionmanifolds/
func sutherlandHodgman(input []lin.V3, clipPlanes []clipPlane, removeOnly bool) []lin.V3 {
	if len(clipPlanes) == 0 {
		slog.Error("sutherlandHodgman: no clip planes")
		return nil
	}
	in := append([]lin.V3{}, input...)
	out := []lin.V3{}
	for i := range clipPlanes {
		if len(in) == 0 {
			break
		}
		plane := &clipPlanes[i]
		tmp, start := lin.NewV3(), in[len(in)-1]
		for _, end := range in {
			startIn, endIn := insidePlane(plane, start), insidePlane(plane, end)
			switch {
			case removeOnly:
				if endIn {
					out = append(out, end)
				}
			case startIn && endIn:
				out = append(out, end)
			case startIn && !endIn:
				if planeEdgeIntersection(plane, start, end, tmp) {
					out = append(out, *tmp)
				}
			case !startIn && endIn:
				if planeEdgeIntersection(plane, start, end, tmp) {
					out = append(out, *tmp)
				}
				out = append(out, end)
			}
			start = end
		}
		in, out = out, in[:0]
	}
	return in
}

func closestPointOnPlane(pos lin.V3, ref *clipPlane) lin.V3 {
	d := lin.NewV3().Scale(&ref.normal, -1.0).Dot(&ref.point)
	var t lin.V3
	t.Sub(&pos, lin.NewV3().Scale(&ref.normal, ref.normal.Dot(&pos)+d))
	return t
}

func boundaryPlanes(hull *placedHull, faceIdx int) []clipPlane {
	var out []clipPlane
	for _, neighborIdx := range hull.faceNeighbors[faceIdx] {
		neighbor := hull.faces[neighborIdx]
		p := clipPlane{point: hull.vertices[neighbor.elements[0]]}
		p.normal.Neg(&neighbor.normal)
		out = append(out, p)
	}
	return out
}

func faceWithMostFittingNormal(vertexIdx int, hull *placedHull, normal lin.V3) int {
	max := -math.MaxFloat64
	selected := hull.vertexFaces[vertexIdx][0]
	for _, faceIdx := range hull.vertexFaces[vertexIdx] {
		if proj := hull.faces[faceIdx].normal.Dot(&normal); proj > max {
			max, selected = proj, faceIdx
		}
	}
	return selected
}

type edgePair struct{ aIdx, aNeighbor, bIdx, bNeighbor int }

func edgeWithMostFittingNormal(aIdx, bIdx int, hullA, hullB *placedHull, normal lin.V3) (edgePair, lin.V3) {
	supportA := &hullA.vertices[aIdx]
	supportB := &hullB.vertices[bIdx]
	maxDot := -math.MaxFloat64
	var selected edgePair
	var edgeNormal lin.V3
	for _, na := range hullA.vertexNeighbors[aIdx] {
		edge1 := lin.NewV3().Sub(supportA, &hullA.vertices[na])
		for _, nb := range hullB.vertexNeighbors[bIdx] {
			edge2 := lin.NewV3().Sub(supportB, &hullB.vertices[nb])
			cand := lin.NewV3().Cross(edge1, edge2).Unit()
			inv := lin.NewV3().Neg(cand)
			if dot := cand.Dot(&normal); dot > maxDot {
				maxDot = dot
				selected = edgePair{aIdx, na, bIdx, nb}
				edgeNormal = *cand
			}
			if dot := inv.Dot(&normal); dot > maxDot {
				maxDot = dot
				selected = edgePair{aIdx, na, bIdx, nb}
				edgeNormal = *inv
			}
		}
	}
	return selected, edgeNormal
}

// skewLineClosestPoints finds, for two skew lines p1+t*d1 and p2+t*d2, the
// point on each line closest to the other.
func skewLineClosestPoints(p1, d1, p2, d2 lin.V3) (l1, l2 lin.V3, ok bool) {
	n1 := d1.Dot(&d2)
	n2 := d2.Dot(&d2)
	m1 := -d1.Dot(&d1)
	m2 := -d2.Dot(&d1)
	diff := lin.NewV3().Sub(&p1, &p2)
	r1 := d1.Dot(diff)
	r2 := d2.Dot(diff)

	det := n1*m2 - n2*m1
	if det == 0 {
		return l1, l2, false
	}
	n := (r1*m2 - r2*m1) / det
	m := (n1*r2 - n2*r1) / det
	l1.Add(&p1, l1.Scale(&d1, m))
	l2.Add(&p2, l2.Scale(&d2, n))
	return l1, l2, true
}

func faceVertices(hull *placedHull, face hullFace) []lin.V3 {
	out := make([]lin.V3, len(face.elements))
	for i, idx := range face.elements {
		out[i] = hull.vertices[idx]
	}
	return out
}

// hullHullManifold resolves a convex-convex overlap (both hulls, normal
// and penetration already known from EPA) into an edge contact or a
// clipped face-face manifold, following the reference/incident-face
// Sutherland-Hodgman approach standard to SAT-style manifold generation.
func hullHullManifold(p1, p2 *Placed, normal lin.V3, contacts []Contact) []Contact {
	hull1, hull2 := &p1.hull, &p2.hull
	const epsilon = 0.0001
	invNormal := lin.NewV3().Neg(&normal)

	support1 := supportIndex(hull1, normal)
	support2 := supportIndex(hull2, *invNormal)
	face1Idx := faceWithMostFittingNormal(support1, hull1, normal)
	face2Idx := faceWithMostFittingNormal(support2, hull2, *invNormal)
	face1 := hull1.faces[face1Idx]
	face2 := hull2.faces[face2Idx]
	edges, edgeNormal := edgeWithMostFittingNormal(support1, support2, hull1, hull2, normal)

	dot1 := face1.normal.Dot(&normal)
	dot2 := face2.normal.Dot(invNormal)
	edgeDot := edgeNormal.Dot(&normal)

	if edgeDot > dot1+epsilon && edgeDot > dot2+epsilon {
		p1v := hull1.vertices[edges.aIdx]
		d1 := lin.NewV3().Sub(&hull1.vertices[edges.aNeighbor], &p1v)
		p2v := hull2.vertices[edges.bIdx]
		d2 := lin.NewV3().Sub(&hull2.vertices[edges.bNeighbor], &p2v)
		l1, l2, ok := skewLineClosestPoints(p1v, *d1, p2v, *d2)
		if ok {
			contacts = append(contacts, Contact{PointA: l1, PointB: l2, Normal: normal})
		}
		return contacts
	}

	var referencePoints, incidentPoints []lin.V3
	var planes []clipPlane
	face1IsReference := dot1 > dot2
	if face1IsReference {
		referencePoints = faceVertices(hull1, face1)
		incidentPoints = faceVertices(hull2, face2)
		planes = boundaryPlanes(hull1, face1Idx)
	} else {
		referencePoints = faceVertices(hull2, face2)
		incidentPoints = faceVertices(hull1, face1)
		planes = boundaryPlanes(hull2, face2Idx)
	}

	clipped := sutherlandHodgman(incidentPoints, planes, false)

	var refPlane clipPlane
	if face1IsReference {
		refPlane.normal.Neg(&face1.normal)
	} else {
		refPlane.normal.Neg(&face2.normal)
	}
	refPlane.point = referencePoints[0]

	final := sutherlandHodgman(clipped, []clipPlane{refPlane}, true)
	for _, point := range final {
		closest := closestPointOnPlane(point, &refPlane)
		diff := lin.NewV3().Sub(&point, &closest)

		var c Contact
		var depth float64
		if face1IsReference {
			depth = diff.Dot(&normal)
			c.PointA.Sub(&point, lin.NewV3().Scale(&normal, depth))
			c.PointB = point
		} else {
			depth = -diff.Dot(&normal)
			c.PointA = point
			c.PointB.Add(&point, lin.NewV3().Scale(&normal, depth))
		}
		c.Normal = normal
		if depth < 0.0 {
			contacts = append(contacts, c)
		}
	}
	return contacts
}

// manifoldFromNormal dispatches to the sphere or hull-hull contact
// generation once a separating normal and penetration depth are known.
func manifoldFromNormal(p1, p2 *Placed, normal lin.V3, penetration float64, contacts []Contact) []Contact {
	switch {
	case p1.kind == kindSphere:
		point := supportPoint(p1, normal)
		var c Contact
		c.PointA = point
		c.PointB.Sub(&point, lin.NewV3().Scale(&normal, penetration))
		c.Normal = normal
		return append(contacts, c)
	case p2.kind == kindSphere:
		inv := lin.NewV3().Neg(&normal)
		point := supportPoint(p2, *inv)
		var c Contact
		c.PointA.Add(&point, lin.NewV3().Scale(&normal, penetration))
		c.PointB = point
		c.Normal = normal
		return append(contacts, c)
	case p1.kind == kindHull && p2.kind == kindHull:
		return hullHullManifold(p1, p2, normal, contacts)
	}
	slog.Error("manifoldFromNormal: unsupported shape pairing")
	return contacts
}
