// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package physics

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelFor splits [0, n) into contiguous, disjoint chunks and runs work
// over each chunk concurrently, blocking until every chunk completes. The
// disjoint-chunk split is what lets the orchestrator's parallel narrowphase
// pass give each goroutine exclusive ownership of a range of manifold
// indices without any locking.
//
// Grounded on the teacher's eg/rt.go worker pool (runtime.NumCPU() workers,
// joined by a WaitGroup before the caller proceeds), generalized from
// row-chunked raytracing to index-chunked manifold work and backed by
// errgroup rather than a hand-rolled channel+WaitGroup, matching the rest
// of the retrieval pack's use of errgroup for the same bounded-fan-out-
// then-join shape.
func ParallelFor(n int, work func(lo, hi int)) {
	if n <= 0 {
		return
	}
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		work(0, n)
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	chunk := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += chunk {
		lo := lo
		hi := lo + chunk
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			work(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
