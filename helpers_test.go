// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/stablematch/requirement"
)

func makeIndividual(set, capacity int, props, weights []float64, reqs ...string) Individual {
	ind := Individual{
		Set:        set,
		Capacity:   capacity,
		Properties: props,
		Weights:    weights,
	}
	for _, r := range reqs {
		ind.Requirements = append(ind.Requirements, requirement.Decode(r))
	}
	return ind
}

// makeUniform builds individuals with one property and the same requirement.
func makeUniform(req string, sets, caps []int, props []float64) []Individual {
	inds := make([]Individual, len(sets))
	for i := range sets {
		inds[i] = makeIndividual(sets[i], caps[i], []float64{props[i]}, []float64{1}, req)
	}
	return inds
}

func makeData(t *testing.T, numSets int, inds []Individual, excluded ...[2]int) *MatchingData {
	t.Helper()
	d, err := NewMatchingData(numSets, inds, excluded)
	require.NoError(t, err)
	return d
}

// referenceData is 3 individuals split 1/2 over 2 sets with capacities
// 1, 2, 1 and default requirements, weights and properties.
func referenceData(t *testing.T) *MatchingData {
	return makeData(t, 2, makeUniform("5", []int{0, 1, 1}, []int{1, 2, 1}, []float64{5, 5, 5}))
}

// mixedData is 6 individuals over 2 sets with varied requirements.
func mixedData(t *testing.T) *MatchingData {
	w := []float64{1, 2}
	return makeData(t, 2, []Individual{
		makeIndividual(0, 2, []float64{3, 8}, w, "5", "3:7"),
		makeIndividual(0, 1, []float64{6, 2}, w, "4++", "6--"),
		makeIndividual(0, 1, []float64{9, 5}, []float64{0.5, 0.5}, "2.5", "9"),
		makeIndividual(1, 1, []float64{4, 4}, w, "8", "1:3"),
		makeIndividual(1, 2, []float64{7, 9}, w, "3--", "5"),
		makeIndividual(1, 3, []float64{1, 6}, []float64{3, 1}, "12", "0"),
	})
}

// tripletData is 7 individuals over 3 sets with varied requirements.
func tripletData(t *testing.T) *MatchingData {
	return makeData(t, 3, []Individual{
		makeIndividual(0, 1, []float64{9}, []float64{1}, "9"),
		makeIndividual(0, 1, []float64{2}, []float64{1}, "2:4"),
		makeIndividual(0, 1, []float64{5}, []float64{2}, "5--"),
		makeIndividual(1, 1, []float64{7}, []float64{1}, "1"),
		makeIndividual(1, 1, []float64{3}, []float64{1}, "6++"),
		makeIndividual(2, 1, []float64{4}, []float64{1}, "4"),
		makeIndividual(2, 1, []float64{8}, []float64{3}, "7"),
	})
}

// permutations calls f with every permutation of 0..n-1.
func permutations(n int, f func([]int)) {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	var gen func(k int)
	gen = func(k int) {
		if k == n {
			f(append([]int(nil), p...))
			return
		}
		for i := k; i < n; i++ {
			p[k], p[i] = p[i], p[k]
			gen(k + 1)
			p[k], p[i] = p[i], p[k]
		}
	}
	gen(0)
}

// checkInvariants asserts capacity, symmetry, no self or same-set match and
// that left-overs are exactly the unmatched individuals with capacity.
func checkInvariants(t *testing.T, d *MatchingData, m *Matches) {
	t.Helper()

	full := make(map[int]bool)
	for a := 0; a < m.Len(); a++ {
		partners := m.SetOf(a)
		assert.LessOrEqual(t, len(partners), m.Capacity(a), "capacity of %d", a)
		assert.LessOrEqual(t, m.Capacity(a), max(d.Capacity(a), d.NumSets()-1))
		for _, b := range partners {
			assert.NotEqual(t, a, b, "self match")
			assert.True(t, m.AreMatched(b, a), "asymmetric %d-%d", a, b)
			assert.NotEqual(t, d.SetOf(a), d.SetOf(b), "same set %d-%d", a, b)
		}
		if m.IsFull(a) {
			full[a] = true
		}
	}

	for _, l := range m.Leftovers() {
		assert.False(t, full[l], "left-over %d is full", l)
		assert.False(t, m.IsMatched(l), "left-over %d is matched to %v", l, m.SetOf(l))
		assert.Less(t, len(m.SetOf(l)), m.Capacity(l))
	}
	for a := 0; a < m.Len(); a++ {
		if m.Capacity(a) > 0 && !m.IsMatched(a) {
			assert.Contains(t, m.Leftovers(), a, "unmatched %d is not a left-over", a)
		}
	}
}

// checkGroups asserts every group holds exactly one member of each set and
// is fully linked.
func checkGroups(t *testing.T, d *MatchingData, m *Matches) {
	t.Helper()
	for _, g := range m.Groups() {
		require.Len(t, g, d.NumSets(), "group %v", g)
		seen := make(map[int]bool)
		for _, a := range g {
			assert.False(t, seen[d.SetOf(a)], "group %v repeats set", g)
			seen[d.SetOf(a)] = true
			assert.Len(t, m.SetOf(a), d.NumSets()-1)
		}
	}
}
