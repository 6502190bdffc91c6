// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package population

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/requirement"
)

func makeProblem(t *testing.T, variant stablematch.Variant, opts ...stablematch.Option) *stablematch.Problem {
	t.Helper()

	props := []float64{3, 8, 6, 2, 9, 5, 7, 1}
	reqs := []string{"8", "2:4", "5++", "9", "6", "3--", "7", "10"}
	inds := make([]stablematch.Individual, len(props))
	for i := range inds {
		inds[i] = stablematch.Individual{
			Set:          i % 2,
			Capacity:     1 + i%3,
			Properties:   []float64{props[i]},
			Weights:      []float64{1},
			Requirements: []requirement.Requirement{requirement.Decode(reqs[i])},
		}
	}
	d, err := stablematch.NewMatchingData(2, inds, [][2]int{{0, 7}})
	require.NoError(t, err)

	p, err := stablematch.NewProblem("population", variant, d, opts...)
	require.NoError(t, err)
	return p
}

func objectives(sols []*stablematch.Solution) []float64 {
	obj := make([]float64, len(sols))
	for i, s := range sols {
		obj[i] = s.Objective()
	}
	return obj
}

func TestEvaluate(t *testing.T) {
	for _, v := range []stablematch.Variant{stablematch.ManyToMany, stablematch.OneToOne, stablematch.ManyToManyPriority} {
		t.Run(string(v), func(t *testing.T) {
			p := makeProblem(t, v, stablematch.WithFitness("AVERAGE"))
			sols := Random(p, 64, rand.New(rand.NewSource(7)))

			seq := make([]*stablematch.Solution, len(sols))
			for i, s := range sols {
				seq[i] = s.Clone()
				require.NoError(t, p.Evaluate(seq[i]))
			}

			require.NoError(t, Evaluate(context.Background(), p, sols, 4))
			if diff := cmp.Diff(objectives(seq), objectives(sols)); diff != "" {
				t.Errorf("concurrent objectives differ (-sequential +concurrent):\n%s", diff)
			}
			for i := range sols {
				assert.Equal(t, seq[i].Matches().Pairs(), sols[i].Matches().Pairs())
			}
		})
	}
}

func TestEvaluateDefaultWorkers(t *testing.T) {
	p := makeProblem(t, stablematch.ManyToMany)
	sols := Random(p, 8, rand.New(rand.NewSource(1)))

	require.NoError(t, Evaluate(context.Background(), p, sols, 0))
	for _, s := range sols {
		assert.Len(t, s.Objectives, 1)
	}
}

func TestEvaluateError(t *testing.T) {
	p := makeProblem(t, stablematch.ManyToMany)
	sols := Random(p, 4, rand.New(rand.NewSource(1)))
	sols[2].Order = []int{0}

	err := Evaluate(context.Background(), p, sols, 2)
	assert.ErrorIs(t, err, stablematch.ErrSolution)
	assert.ErrorContains(t, err, "solution 2")
}

func TestEvaluateCanceled(t *testing.T) {
	p := makeProblem(t, stablematch.ManyToMany)
	sols := Random(p, 4, rand.New(rand.NewSource(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Evaluate(ctx, p, sols, 1), context.Canceled)
}

func TestRandom(t *testing.T) {
	p := makeProblem(t, stablematch.OneToOne)

	a := Random(p, 5, rand.New(rand.NewSource(3)))
	b := Random(p, 5, rand.New(rand.NewSource(3)))
	require.Len(t, a, 5)
	for i := range a {
		assert.Equal(t, a[i].Order, b[i].Order, "same seed, same orders")
		assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, a[i].Order)
	}

	pp := makeProblem(t, stablematch.ManyToManyPriority)
	for _, s := range Random(pp, 5, rand.New(rand.NewSource(3))) {
		require.Len(t, s.Priorities, 8)
		for _, v := range s.Priorities {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestBestRank(t *testing.T) {
	mk := func(obj ...float64) []*stablematch.Solution {
		sols := make([]*stablematch.Solution, len(obj))
		for i, o := range obj {
			sols[i] = &stablematch.Solution{Order: []int{i}, Objectives: []float64{o}}
		}
		return sols
	}

	assert.Nil(t, Best(nil))

	sols := mk(3, -1, 2, -1)
	assert.Equal(t, []int{1}, Best(sols).Order)

	sols = append(sols, &stablematch.Solution{Order: []int{4}})
	Rank(sols)
	got := make([]int, len(sols))
	for i, s := range sols {
		got[i] = s.Order[0]
	}
	assert.Equal(t, []int{1, 3, 2, 0, 4}, got)
}
