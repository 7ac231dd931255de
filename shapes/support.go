// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import (
	"math"

	"github.com/solidbody/manifold/math/lin"
)

// supportIndex returns the hull vertex furthest along direction.
func supportIndex(hull *placedHull, direction lin.V3) int {
	selected := 0
	max := -math.MaxFloat64
	for i, v := range hull.vertices {
		if dot := v.Dot(&direction); dot > max {
			selected, max = i, dot
		}
	}
	return selected
}

// supportPoint returns the point on p furthest along direction, the
// function GJK/EPA need to walk the Minkowski difference.
func supportPoint(p *Placed, direction lin.V3) lin.V3 {
	switch p.kind {
	case kindHull:
		return p.hull.vertices[supportIndex(&p.hull, direction)]
	case kindSphere:
		unit := lin.NewV3().Set(&direction).Unit()
		var out lin.V3
		out.Add(&p.sphere.center, out.Scale(unit, p.sphere.radius))
		return out
	}
	return lin.V3{}
}

func minkowskiSupport(p1, p2 *Placed, direction lin.V3) lin.V3 {
	s1 := supportPoint(p1, direction)
	s2 := supportPoint(p2, *(lin.NewV3().Scale(&direction, -1)))
	var out lin.V3
	out.Sub(&s1, &s2)
	return out
}
