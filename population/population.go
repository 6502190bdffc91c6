// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package population evaluates batches of candidates against a
// stablematch.Problem the way a population-based search does each
// generation.
package population

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"sort"

	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"

	"github.com/someonegg/stablematch"
)

// Evaluate scores every solution in place using up to workers goroutines;
// workers <= 0 means one per CPU. The first error cancels the remaining
// evaluations and is returned.
func Evaluate(ctx context.Context, p *stablematch.Problem, sols []*stablematch.Solution, workers int) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	wp := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, sol := range sols {
		wp.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.Evaluate(sol); err != nil {
				return fmt.Errorf("solution %d: %w", i, err)
			}
			return nil
		})
	}
	return wp.Wait()
}

// Random returns n candidates drawn from rng: shuffled orders, or uniform
// priorities for a problem that uses them.
func Random(p *stablematch.Problem, n int, rng *rand.Rand) []*stablematch.Solution {
	sols := make([]*stablematch.Solution, n)
	for k := range sols {
		sol := p.NewSolution()
		if p.UsesPriorities() {
			lower, upper := p.Bounds()
			for i := range sol.Priorities {
				sol.Priorities[i] = lower + rng.Float64()*(upper-lower)
			}
		} else {
			rng.Shuffle(len(sol.Order), func(i, j int) {
				sol.Order[i], sol.Order[j] = sol.Order[j], sol.Order[i]
			})
		}
		sols[k] = sol
	}
	return sols
}

// Best returns the evaluated solution with the lowest objective, the first
// one on ties, or nil if sols is empty. It reports on a batch; it is not a
// selection operator of the search.
func Best(sols []*stablematch.Solution) *stablematch.Solution {
	if len(sols) == 0 {
		return nil
	}
	return lo.MinBy(sols, func(a, b *stablematch.Solution) bool {
		return a.Objective() < b.Objective()
	})
}

// Rank sorts sols by ascending objective, stable on ties, for reporting the
// best candidates of a batch. Search-side ranking (fronts, crowding) is the
// search engine's business.
func Rank(sols []*stablematch.Solution) {
	sort.SliceStable(sols, func(i, j int) bool {
		return sols[i].Objective() < sols[j].Objective()
	})
}
