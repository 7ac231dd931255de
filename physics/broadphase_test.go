// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"testing"

	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

func twoSpheres(s *store.Store, gap float64) (store.ID, store.ID) {
	a := s.Create()
	s.SetShape(a, shapes.Sphere{Radius: 1})
	b := s.Create()
	s.SetShape(b, shapes.Sphere{Radius: 1})
	s.Pose(b).Loc.SetS(2+gap, 0, 0)
	RefreshAABBs(s, []store.ID{a, b})
	return a, b
}

func TestBroadphaseCreatesPairWithinBreakingThreshold(t *testing.T) {
	s := store.New()
	cfg := DefaultConfig()
	a, b := twoSpheres(s, cfg.ContactBreakingThreshold/2)

	bp := NewBroadphase(cfg)
	bp.Step(s, []store.ID{a, b})

	if _, ok := bp.Manifold(a, b); !ok {
		t.Fatalf("expecting a pair to be created once AABBs are within the breaking threshold")
	}
}

func TestBroadphaseDoesNotCreateFarApartPair(t *testing.T) {
	s := store.New()
	cfg := DefaultConfig()
	a, b := twoSpheres(s, 10)

	bp := NewBroadphase(cfg)
	bp.Step(s, []store.ID{a, b})

	if _, ok := bp.Manifold(a, b); ok {
		t.Fatalf("expecting no pair for far-apart bodies")
	}
}

func TestBroadphaseHysteresisKeepsPairPastBreakingThreshold(t *testing.T) {
	s := store.New()
	cfg := DefaultConfig()
	a, b := twoSpheres(s, cfg.ContactBreakingThreshold/2)

	bp := NewBroadphase(cfg)
	bp.Step(s, []store.ID{a, b})
	if _, ok := bp.Manifold(a, b); !ok {
		t.Fatalf("expecting the pair to exist after the first step")
	}

	// Drift past the (smaller) breaking threshold but not the (larger)
	// separation threshold: the pair should survive thanks to hysteresis.
	s.Pose(b).Loc.SetS(2+cfg.ContactBreakingThreshold*1.5, 0, 0)
	RefreshAABBs(s, []store.ID{a, b})
	bp.Step(s, []store.ID{a, b})

	if _, ok := bp.Manifold(a, b); !ok {
		t.Errorf("expecting hysteresis to keep the pair tracked just past the breaking threshold")
	}
}

func TestBroadphaseDestroysPairPastSeparationThreshold(t *testing.T) {
	s := store.New()
	cfg := DefaultConfig()
	a, b := twoSpheres(s, cfg.ContactBreakingThreshold/2)

	bp := NewBroadphase(cfg)
	bp.Step(s, []store.ID{a, b})

	s.Pose(b).Loc.SetS(2+cfg.ContactBreakingThreshold*10, 0, 0)
	RefreshAABBs(s, []store.ID{a, b})
	bp.Step(s, []store.ID{a, b})

	if _, ok := bp.Manifold(a, b); ok {
		t.Errorf("expecting the pair to be destroyed once well past the separation threshold")
	}
}
