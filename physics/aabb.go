// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"log/slog"

	"github.com/solidbody/manifold/shapes"
	"github.com/solidbody/manifold/store"
)

// RefreshAABBs recomputes the world-space bound of every awake body with a
// shape attached and writes it back to the store. Sleeping bodies keep
// whatever bound they had when they last went to sleep, the same "skip
// what isn't moving" shortcut the teacher's worldAabb callers rely on.
func RefreshAABBs(s *store.Store, bodies []store.ID) {
	for _, id := range bodies {
		if !s.IsAwake(id) {
			continue
		}
		shape, ok := s.GetShape(id).(shapes.Shape)
		if !ok {
			slog.Error("refreshAABBs: body precondition violated: no shape", "body", id)
			continue
		}
		box := shapes.AABB(shape, s.Pose(id), 0)
		s.SetAABB(id, store.AABB{Min: box.Min, Max: box.Max})
	}
}
