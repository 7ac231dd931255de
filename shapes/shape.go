// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package shapes supplies the concrete collide() backend the narrowphase
// calls: pose two convex shapes, get back a contact manifold. Sphere and
// box are analytic/GJK-EPA convex; plane is a half-space special case
// needed for a body resting flat on the ground.
package shapes

import (
	"math"

	"github.com/solidbody/manifold/math/lin"
)

// Shape is an immutable piece of geometry in body-local space. Place
// transforms it into world space against a pose so it can be tested for
// collision.
type Shape interface {
	Volume() float64
	Place(pose *lin.T) Placed
	aabb(pose *lin.T, margin float64) Abox
}

// Sphere is a ball of the given radius centered at the body origin.
type Sphere struct {
	Radius float64
}

func (s Sphere) Volume() float64 {
	return (4.0 / 3.0) * math.Pi * s.Radius * s.Radius * s.Radius
}

func (s Sphere) Place(pose *lin.T) Placed {
	return Placed{kind: kindSphere, sphere: placedSphere{center: *pose.Loc, radius: s.Radius}}
}

func (s Sphere) aabb(pose *lin.T, margin float64) Abox {
	c := *pose.Loc
	r := s.Radius + margin
	return Abox{
		Min: lin.V3{X: c.X - r, Y: c.Y - r, Z: c.Z - r},
		Max: lin.V3{X: c.X + r, Y: c.Y + r, Z: c.Z + r},
	}
}

// Box is an OBB described by its half-extents along the local x/y/z axes.
type Box struct {
	Half lin.V3
}

func (b Box) Volume() float64 {
	return 8.0 * b.Half.X * b.Half.Y * b.Half.Z
}

// localBoxVertices returns the 8 corners of a box with half extents h in a
// fixed order that the hull face and adjacency tables below index into.
func localBoxVertices(h lin.V3) [8]lin.V3 {
	return [8]lin.V3{
		{X: -h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: h.Y, Z: h.Z},
		{X: -h.X, Y: h.Y, Z: h.Z},
	}
}

// boxFaces lists each of the 6 faces as a CCW vertex loop (indices into
// localBoxVertices) and the face's outward local normal. The topology is
// static so, unlike a general convex hull, it needs no runtime construction.
var boxFaces = []hullFace{
	{elements: []int{0, 1, 2, 3}, normal: lin.V3{Z: -1}},
	{elements: []int{5, 4, 7, 6}, normal: lin.V3{Z: 1}},
	{elements: []int{1, 5, 6, 2}, normal: lin.V3{X: 1}},
	{elements: []int{4, 0, 3, 7}, normal: lin.V3{X: -1}},
	{elements: []int{3, 2, 6, 7}, normal: lin.V3{Y: 1}},
	{elements: []int{4, 5, 1, 0}, normal: lin.V3{Y: -1}},
}

// boxVertexNeighbors[i] lists the vertex indices adjacent to vertex i along
// a box edge; boxVertexFaces[i] lists the faces touching vertex i.
var boxVertexNeighbors = [8][]int{
	{1, 3, 4}, {0, 2, 5}, {1, 3, 6}, {0, 2, 7},
	{0, 5, 7}, {1, 4, 6}, {2, 5, 7}, {3, 4, 6},
}
var boxVertexFaces = [8][]int{
	{0, 3, 5}, {0, 2, 5}, {0, 2, 4}, {0, 3, 4},
	{1, 3, 5}, {1, 2, 5}, {1, 2, 4}, {1, 3, 4},
}
var boxFaceNeighbors = [6][]int{
	{2, 3, 4, 5}, {2, 3, 4, 5}, {0, 1, 4, 5}, {0, 1, 4, 5}, {0, 1, 2, 3}, {0, 1, 2, 3},
}

func (b Box) Place(pose *lin.T) Placed {
	local := localBoxVertices(b.Half)
	world := make([]lin.V3, 8)
	for i, v := range local {
		world[i] = v
		pose.App(&world[i])
	}
	faces := make([]hullFace, len(boxFaces))
	for i, f := range boxFaces {
		n := f.normal
		rx, ry, rz := pose.AppR(n.X, n.Y, n.Z)
		faces[i] = hullFace{elements: f.elements, normal: lin.V3{X: rx, Y: ry, Z: rz}}
	}
	return Placed{
		kind: kindHull,
		hull: placedHull{
			vertices:        world,
			faces:           faces,
			vertexFaces:     boxVertexFaces[:],
			vertexNeighbors: boxVertexNeighbors[:],
			faceNeighbors:   boxFaceNeighbors[:],
		},
	}
}

func (b Box) aabb(pose *lin.T, margin float64) Abox {
	local := localBoxVertices(b.Half)
	min, max := lin.V3{}, lin.V3{}
	for i, v := range local {
		w := v
		pose.App(&w)
		if i == 0 {
			min, max = w, w
			continue
		}
		min.Min(&min, &w)
		max.Max(&max, &w)
	}
	return Abox{
		Min: lin.V3{X: min.X - margin, Y: min.Y - margin, Z: min.Z - margin},
		Max: lin.V3{X: max.X + margin, Y: max.Y + margin, Z: max.Z + margin},
	}
}

// Plane is an infinite half-space: every point p with (p-Point)·Normal < 0
// is inside the plane's solid side. Planes never move under a pose other
// than translation/rotation of Normal/Point themselves, so Place folds the
// pose into Normal/Point directly rather than building a hull.
type Plane struct {
	Normal lin.V3
	Point  lin.V3
}

func (p Plane) Volume() float64 { return 0 }

func (p Plane) Place(pose *lin.T) Placed {
	n := p.Normal
	rx, ry, rz := pose.AppR(n.X, n.Y, n.Z)
	pt := p.Point
	pose.App(&pt)
	return Placed{kind: kindPlane, plane: placedPlane{normal: lin.V3{X: rx, Y: ry, Z: rz}, point: pt}}
}

func (p Plane) aabb(pose *lin.T, margin float64) Abox {
	const big = 1e9
	return Abox{Min: lin.V3{X: -big, Y: -big, Z: -big}, Max: lin.V3{X: big, Y: big, Z: big}}
}

// AABB computes a shape's world-space axis-aligned bound, inflated by
// margin on every side.
func AABB(s Shape, pose *lin.T, margin float64) Abox {
	return s.aabb(pose, margin)
}

// Abox is an axis-aligned box used by broadphase overlap tests.
type Abox struct {
	Min, Max lin.V3
}

// Overlaps reports whether a and b intersect (touching edges count as
// overlapping, matching a closed-interval test).
func (a Abox) Overlaps(b Abox) bool {
	return a.Max.X >= b.Min.X && a.Min.X <= b.Max.X &&
		a.Max.Y >= b.Min.Y && a.Min.Y <= b.Max.Y &&
		a.Max.Z >= b.Min.Z && a.Min.Z <= b.Max.Z
}

// Inflate returns a copy of a expanded by margin on every face.
func (a Abox) Inflate(margin float64) Abox {
	return Abox{
		Min: lin.V3{X: a.Min.X - margin, Y: a.Min.Y - margin, Z: a.Min.Z - margin},
		Max: lin.V3{X: a.Max.X + margin, Y: a.Max.Y + margin, Z: a.Max.Z + margin},
	}
}

type hullFace struct {
	elements []int
	normal   lin.V3
}

type placedHull struct {
	vertices        []lin.V3
	faces           []hullFace
	vertexFaces     [][]int
	vertexNeighbors [][]int
	faceNeighbors   [][]int
}

type placedSphere struct {
	center lin.V3
	radius float64
}

type placedPlane struct {
	normal lin.V3
	point  lin.V3
}

type placedKind uint8

const (
	kindSphere placedKind = iota
	kindHull
	kindPlane
)

// Placed is a shape transformed into world space, ready for collide().
type Placed struct {
	kind   placedKind
	sphere placedSphere
	hull   placedHull
	plane  placedPlane
}
