// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package shapes

import "github.com/solidbody/manifold/math/lin"

// simplex accumulates up to 4 support points while GJK walks the Minkowski
// difference looking for the origin.
type simplex struct {
	a, b, c, d lin.V3
	num        uint32
}

func (s *simplex) push(point lin.V3) {
	switch s.num {
	case 1:
		s.b = s.a
		s.a = point
	case 2:
		s.c = s.b
		s.b = s.a
		s.a = point
	case 3:
		s.d = s.c
		s.c = s.b
		s.b = s.a
		s.a = point
	}
	s.num++
}

func tripleCross(a, b, c lin.V3) (tc lin.V3) {
	tc.Cross(&a, &b)
	tc.Cross(&tc, &c)
	return tc
}

// reduce narrows the simplex to the feature closest to the origin and
// updates direction to point from that feature towards the origin. It
// returns true once the simplex encloses the origin (a collision).
func reduce(s *simplex, direction *lin.V3) bool {
	switch s.num {
	case 2:
		return reduce2(s, direction)
	case 3:
		return reduce3(s, direction)
	case 4:
		return reduce4(s, direction)
	}
	return false
}

func reduce2(s *simplex, direction *lin.V3) bool {
	a, b := s.a, s.b
	ao := lin.NewV3().Neg(&a)
	ab := lin.NewV3().Sub(&b, &a)
	if ab.Dot(ao) >= 0.0 {
		s.a, s.b, s.num = a, b, 2
		*direction = tripleCross(*ab, *ao, *ab)
	} else {
		s.a, s.num = a, 1
		*direction = *ao
	}
	return false
}

func reduce3(s *simplex, direction *lin.V3) bool {
	a, b, c := s.a, s.b, s.c
	ao := lin.NewV3().Neg(&a)
	ab := lin.NewV3().Sub(&b, &a)
	ac := lin.NewV3().Sub(&c, &a)
	abc := lin.NewV3().Cross(ab, ac)

	if lin.NewV3().Cross(abc, ac).Dot(ao) >= 0.0 {
		if ac.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, c, 2
			*direction = tripleCross(*ac, *ao, *ac)
		} else if ab.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, b, 2
			*direction = tripleCross(*ab, *ao, *ab)
		} else {
			s.a = a
			*direction = *ao
		}
	} else if lin.NewV3().Cross(ab, abc).Dot(ao) >= 0.0 {
		if ab.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, b, 2
			*direction = tripleCross(*ab, *ao, *ab)
		} else {
			s.a = a
			*direction = *ao
		}
	} else if abc.Dot(ao) >= 0.0 {
		s.a, s.b, s.c, s.num = a, b, c, 3
		*direction = *abc
	} else {
		s.a, s.b, s.c, s.num = a, c, b, 3
		*direction = *(abc.Neg(abc))
	}
	return false
}

func reduce4(s *simplex, direction *lin.V3) bool {
	a, b, c, d := s.a, s.b, s.c, s.d
	ao := lin.NewV3().Neg(&a)
	ab := lin.NewV3().Sub(&b, &a)
	ac := lin.NewV3().Sub(&c, &a)
	ad := lin.NewV3().Sub(&d, &a)
	abc := lin.NewV3().Cross(ab, ac)
	acd := lin.NewV3().Cross(ac, ad)
	adb := lin.NewV3().Cross(ad, ab)

	above := uint8(0)
	if abc.Dot(ao) >= 0.0 {
		above |= 0x1
	}
	if acd.Dot(ao) >= 0.0 {
		above |= 0x2
	}
	if adb.Dot(ao) >= 0.0 {
		above |= 0x4
	}
	switch above {
	case 0x0:
		return true // origin is enclosed: collision
	case 0x1:
		return reduceTriangle(s, a, b, c, ab, ac, abc, ao, direction)
	case 0x2:
		return reduceTriangle(s, a, c, d, ac, ad, acd, ao, direction)
	case 0x4:
		return reduceTriangle(s, a, d, b, ad, ab, adb, ao, direction)
	case 0x3:
		if ac.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, c, 2
			*direction = tripleCross(*ac, *ao, *ac)
		} else {
			s.a, s.num = a, 1
			*direction = *ao
		}
	case 0x5:
		if ab.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, b, 2
			*direction = tripleCross(*ab, *ao, *ab)
		} else {
			s.a, s.num = a, 1
			*direction = *ao
		}
	case 0x6:
		if ad.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, d, 2
			*direction = tripleCross(*ad, *ao, *ad)
		} else {
			s.a, s.num = a, 1
			*direction = *ao
		}
	case 0x7:
		s.a, s.num = a, 1
		*direction = *ao
	}
	return false
}

// reduceTriangle handles the single-face-above case shared by reduce4's
// 0x1/0x2/0x4 branches: face ABC (given as a,b,c with edges ab,ac and
// normal abc) is the only one facing the origin, so narrow to it or one
// of its edges/vertex.
func reduceTriangle(s *simplex, a, b, c lin.V3, ab, ac, abc *lin.V3, ao *lin.V3, direction *lin.V3) bool {
	if lin.NewV3().Cross(abc, ac).Dot(ao) >= 0.0 {
		if ac.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, c, 2
			*direction = tripleCross(*ac, *ao, *ac)
		} else if ab.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, b, 2
			*direction = tripleCross(*ab, *ao, *ab)
		} else {
			s.a = a
			*direction = *ao
		}
	} else if lin.NewV3().Cross(ab, abc).Dot(ao) >= 0.0 {
		if ab.Dot(ao) >= 0.0 {
			s.a, s.b, s.num = a, b, 2
			*direction = tripleCross(*ab, *ao, *ab)
		} else {
			s.a = a
			*direction = *ao
		}
	} else {
		s.a, s.b, s.c, s.num = a, b, c, 3
		*direction = *abc
	}
	return false
}

// collides runs GJK over the Minkowski difference of p1 and p2. On a hit it
// fills out with the terminal 4-point simplex for EPA to expand.
func collides(p1, p2 *Placed, out *simplex) bool {
	var s simplex
	s.a = minkowskiSupport(p1, p2, lin.V3{Z: 1})
	s.num = 1
	direction := lin.NewV3().Scale(&s.a, -1.0)
	for i := 0; i < 100; i++ {
		next := minkowskiSupport(p1, p2, *direction)
		if next.Dot(direction) < 0.0 {
			return false
		}
		s.push(next)
		if reduce(&s, direction) {
			if out != nil {
				*out = s
			}
			return true
		}
	}
	return false
}
