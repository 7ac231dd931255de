// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import (
	"testing"

	"github.com/solidbody/manifold/math/lin"
)

func identity() *lin.T {
	return &lin.T{Loc: lin.NewV3(), Rot: lin.NewQI()}
}

func TestSphereAABB(t *testing.T) {
	s := Sphere{Radius: 2}
	pose := identity()
	pose.Loc.SetS(1, 2, 3)
	box := AABB(s, pose, 0.1)
	want := Abox{Min: lin.V3{X: -1.1, Y: -0.1, Z: 0.9}, Max: lin.V3{X: 3.1, Y: 4.1, Z: 5.1}}
	if !box.Min.Aeq(&want.Min) || !box.Max.Aeq(&want.Max) {
		t.Errorf("got %+v want %+v", box, want)
	}
}

func TestBoxAABBAxisAligned(t *testing.T) {
	b := Box{Half: lin.V3{X: 1, Y: 2, Z: 3}}
	pose := identity()
	box := AABB(b, pose, 0)
	want := Abox{Min: lin.V3{X: -1, Y: -2, Z: -3}, Max: lin.V3{X: 1, Y: 2, Z: 3}}
	if !box.Min.Aeq(&want.Min) || !box.Max.Aeq(&want.Max) {
		t.Errorf("got %+v want %+v", box, want)
	}
}

func TestAboxOverlapsTouchingIsOverlapping(t *testing.T) {
	a := Abox{Min: lin.V3{}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	b := Abox{Min: lin.V3{X: 1}, Max: lin.V3{X: 2, Y: 1, Z: 1}}
	if !a.Overlaps(b) {
		t.Errorf("expecting boxes that share a boundary to overlap")
	}
}

func TestAboxOverlapsSeparated(t *testing.T) {
	a := Abox{Min: lin.V3{}, Max: lin.V3{X: 1, Y: 1, Z: 1}}
	b := Abox{Min: lin.V3{X: 2}, Max: lin.V3{X: 3, Y: 1, Z: 1}}
	if a.Overlaps(b) {
		t.Errorf("expecting separated boxes not to overlap")
	}
}

func TestAboxInflateGrowsEverySide(t *testing.T) {
	a := Abox{Min: lin.V3{X: 1, Y: 1, Z: 1}, Max: lin.V3{X: 2, Y: 2, Z: 2}}
	got := a.Inflate(0.5)
	want := Abox{Min: lin.V3{X: 0.5, Y: 0.5, Z: 0.5}, Max: lin.V3{X: 2.5, Y: 2.5, Z: 2.5}}
	if !got.Min.Aeq(&want.Min) || !got.Max.Aeq(&want.Max) {
		t.Errorf("got %+v want %+v", got, want)
	}
}
