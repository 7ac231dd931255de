// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import (
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/solidbody/manifold/math/lin"
)

type triIdx struct{ x, y, z int }
type edgeIdx struct{ x, y int }

func polytopeFromSimplex(s *simplex) (polytope []lin.V3, faces []triIdx) {
	polytope = []lin.V3{s.a, s.b, s.c, s.d}
	faces = []triIdx{{0, 1, 2}, {0, 2, 3}, {0, 3, 1}, {1, 2, 3}}
	return polytope, faces
}

// faceNormalAndDistance returns face's outward normal and the distance
// from the origin to the (infinite) plane containing it, orienting the
// normal outward by checking it against the rest of the (convex) polytope
// when the origin lies exactly on the face's plane.
func faceNormalAndDistance(face triIdx, polytope []lin.V3) (normal lin.V3, distance float64) {
	a, b, c := &polytope[face.x], &polytope[face.y], &polytope[face.z]
	ab := lin.NewV3().Sub(b, a)
	ac := lin.NewV3().Sub(c, a)
	n := lin.NewV3().Cross(ab, ac).Unit()
	if n.X == 0 && n.Y == 0 && n.Z == 0 {
		slog.Error("epa: degenerate face normal")
		return normal, distance
	}

	const tolerance = 0.0
	distance = n.Dot(a)
	switch {
	case distance < -tolerance:
		n.Neg(n)
		distance = -distance
	case distance >= -tolerance && distance <= tolerance:
		resolved := false
		for _, v := range polytope {
			aux := n.Dot(&v)
			if aux < -tolerance || aux > tolerance {
				if aux >= -tolerance {
					n.Neg(n)
				}
				resolved = true
				break
			}
		}
		if !resolved {
			panic(fmt.Errorf("epa: degenerate polytope, all points coplanar"))
		}
	}
	return *n, distance
}

func addEdge(edges []edgeIdx, edge edgeIdx, polytope []lin.V3) []edgeIdx {
	for i, e := range edges {
		if (e.x == edge.x && e.y == edge.y) || (e.x == edge.y && e.y == edge.x) {
			return slices.Delete(edges, i, i+1)
		}
	}
	return append(edges, edge)
}

func centroid(p1, p2, p3 lin.V3) (c lin.V3) {
	c.Add(&p2, &p3).Add(&c, &p1)
	c.Scale(&c, 1.0/3.0)
	return c
}

// epa expands the terminal GJK simplex into a polytope hugging the
// Minkowski difference's surface until the closest face to the origin
// stops changing, returning the separating normal and penetration depth.
func epa(p1, p2 *Placed, s *simplex) (normal lin.V3, penetration float64, ok bool) {
	const epsilon = 0.0001

	polytope, faces := polytopeFromSimplex(s)
	var normals []lin.V3
	var distances []float64
	minNormal := lin.NewV3()
	minDistance := math.MaxFloat64
	for _, face := range faces {
		n, d := faceNormalAndDistance(face, polytope)
		normals = append(normals, n)
		distances = append(distances, d)
		if d < minDistance {
			minDistance = d
			*minNormal = n
		}
	}

	var edges []edgeIdx
	for it := 0; it < 100; it++ {
		support := minkowskiSupport(p1, p2, *minNormal)
		d := minNormal.Dot(&support)
		if math.Abs(d-minDistance) < epsilon {
			return *minNormal, minDistance, true
		}

		newIdx := len(polytope)
		polytope = append(polytope, support)

		loops := 0
		for i := 0; i < len(normals); i++ {
			n, face := normals[i], faces[i]
			c := centroid(polytope[face.x], polytope[face.y], polytope[face.z])
			if n.Dot(lin.NewV3().Sub(&support, &c)) > 0.0 {
				edges = addEdge(edges, edgeIdx{face.x, face.y}, polytope)
				edges = addEdge(edges, edgeIdx{face.y, face.z}, polytope)
				edges = addEdge(edges, edgeIdx{face.z, face.x}, polytope)
				faces = slices.Delete(faces, i, i+1)
				distances = slices.Delete(distances, i, i+1)
				normals = slices.Delete(normals, i, i+1)
				i--
				loops++
				if loops > 1000 {
					panic(fmt.Errorf("epa: infinite loop expanding polytope"))
				}
			}
		}

		for _, e := range edges {
			face := triIdx{e.x, e.y, newIdx}
			faces = append(faces, face)
			n, d := faceNormalAndDistance(face, polytope)
			normals = append(normals, n)
			distances = append(distances, d)
		}

		minDistance = math.MaxFloat64
		for i, d := range distances {
			if d < minDistance {
				minDistance = d
				minNormal = &normals[i]
			}
		}
		edges = edges[:0]
	}
	slog.Warn("epa: did not converge")
	return normal, penetration, false
}
