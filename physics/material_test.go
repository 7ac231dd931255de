// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"math"
	"testing"

	"github.com/solidbody/manifold/math/lin"
	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

func TestCombineSeriesOrdinaryValues(t *testing.T) {
	got := combineSeries(4, 4, DefaultConfig().LargeScalar)
	if got != 2 {
		t.Errorf("expecting springs-in-series of two 4s to be 2, got %v", got)
	}
}

func TestCombineSeriesRigidSidePassesOtherThrough(t *testing.T) {
	large := DefaultConfig().LargeScalar
	if got := combineSeries(large, 7, large); got != 7 {
		t.Errorf("expecting a rigid left side to pass the right side through unchanged, got %v", got)
	}
	if got := combineSeries(7, large, large); got != 7 {
		t.Errorf("expecting a rigid right side to pass the left side through unchanged, got %v", got)
	}
}

func TestCombineSeriesBothZeroIsZero(t *testing.T) {
	if got := combineSeries(0, 0, DefaultConfig().LargeScalar); got != 0 {
		t.Errorf("expecting combining two zeros not to divide by zero, got %v", got)
	}
}

func TestNewContactPointCombinesMaterials(t *testing.T) {
	cfg := DefaultConfig()
	poseA := identityT()
	poseB := identityT()
	poseB.Loc.SetS(2, 0, 0)

	c := shapes.Contact{
		PointA: lin.V3{X: 1},
		PointB: lin.V3{X: 1.5},
		Normal: lin.V3{X: 1},
	}
	matA := store.Material{Friction: 0.5, Restitution: 0.8, Stiffness: cfg.LargeScalar, Damping: 4}
	matB := store.Material{Friction: 0.4, Restitution: 0.5, Stiffness: 10, Damping: 4}

	p := newContactPoint(c, poseA, poseB, matA, matB, cfg)
	if got, want := p.Friction, 0.2; math.Abs(got-want) > 1e-9 {
		t.Errorf("expecting friction 0.5*0.4=0.2, got %v", got)
	}
	if got, want := p.Restitution, 0.4; math.Abs(got-want) > 1e-9 {
		t.Errorf("expecting restitution 0.8*0.5=0.4, got %v", got)
	}
	if p.Stiffness != 10 {
		t.Errorf("expecting a rigid A-side stiffness to pass B's value through, got %v", p.Stiffness)
	}
	if p.Damping != 2 {
		t.Errorf("expecting damping to combine in series (4,4 -> 2), got %v", p.Damping)
	}
}

func identityT() *lin.T {
	return &lin.T{Loc: lin.NewV3(), Rot: lin.NewQI()}
}
