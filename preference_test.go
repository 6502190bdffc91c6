// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// squareData is 2x2 where the high property individuals are everyone's first
// choice.
func squareData(t *testing.T) *MatchingData {
	return makeData(t, 2, makeUniform("8", []int{0, 0, 1, 1}, []int{1, 1, 1, 1}, []float64{2, 8, 2, 8}))
}

// layeredData is 3 sets of 2 where the even individuals are everyone's first
// choice.
func layeredData(t *testing.T) *MatchingData {
	return makeData(t, 3, makeUniform("9", []int{0, 0, 1, 1, 2, 2}, []int{1, 1, 1, 1, 1, 1}, []float64{9, 1, 9, 1, 9, 1}))
}

func TestPreferenceList(t *testing.T) {
	p := NewPreferences(squareData(t))
	require.Equal(t, 4, p.Len())

	l := p.Get(0)
	assert.Equal(t, 0, l.Owner())
	assert.Equal(t, 2, l.Len())
	assert.Equal(t, Entry{Index: 3, Score: 1}, l.At(0))
	assert.Equal(t, Entry{Index: 2, Score: 0.4}, l.At(1))
	assert.Equal(t, 3, p.PositionByRank(0, 0))

	s, ok := l.Score(2)
	assert.True(t, ok)
	assert.Equal(t, 0.4, s)
	_, ok = l.Score(1)
	assert.False(t, ok, "same set is not a counterpart")
	assert.Equal(t, -1, l.Rank(1))
	assert.Equal(t, 1, l.Rank(2))
}

func TestPreferenceListTies(t *testing.T) {
	p := NewPreferences(referenceData(t))

	l := p.Get(0)
	require.Equal(t, 2, l.Len())
	assert.Equal(t, 1, l.At(0).Index)
	assert.Equal(t, 2, l.At(1).Index)
	assert.Equal(t, l.At(0).Score, l.At(1).Score)
	assert.True(t, p.IsPreferredOver(1, 2, 0), "ties go to the lower index")
	assert.False(t, p.IsPreferredOver(2, 1, 0))
}

func TestPreferenceListGroups(t *testing.T) {
	p := NewPreferences(layeredData(t))
	l := p.Get(0)

	assert.Empty(t, l.In(0))
	assert.Equal(t, []Entry{{2, 1}, {3, 0.2}}, l.In(1))
	assert.Equal(t, []Entry{{4, 1}, {5, 0.2}}, l.In(2))
	assert.Equal(t, 0, l.Offset(1))
	assert.Equal(t, 2, l.Offset(2))
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, 4, l.At(2).Index)
}

func TestPreferencesCompare(t *testing.T) {
	p := NewPreferences(squareData(t))

	t.Run("IsPreferredOver", func(t *testing.T) {
		assert.True(t, p.IsPreferredOver(3, 2, 0))
		assert.False(t, p.IsPreferredOver(2, 3, 0))
		assert.False(t, p.IsPreferredOver(3, 3, 0))
		assert.False(t, p.IsPreferredOver(1, 2, 0), "non-counterpart is never preferred")
		assert.True(t, p.IsPreferredOver(2, 1, 0))
	})

	t.Run("LeastPreferred", func(t *testing.T) {
		assert.Equal(t, 2, p.LeastPreferred(0, []int{3}, 2))
		assert.Equal(t, 2, p.LeastPreferred(0, []int{2}, 3))
		assert.Equal(t, 3, p.LeastPreferred(0, nil, 3))
	})

	t.Run("LastChoiceOf", func(t *testing.T) {
		assert.Equal(t, 2, p.LastChoiceOf(0))
		assert.Equal(t, 0, p.LastChoiceOf(3))

		alone := NewPreferences(makeData(t, 2, makeUniform("5", []int{0}, []int{1}, []float64{5})))
		assert.Equal(t, -1, alone.LastChoiceOf(0))
	})
}

func TestPreferencesSatisfactions(t *testing.T) {
	d := squareData(t)
	p := NewPreferences(d)

	m := NewMatches(d.Capacities())
	assert.Equal(t, []float64{0, 0, 0, 0}, p.Satisfactions(m))

	require.NoError(t, m.Add(0, 2))
	require.NoError(t, m.Add(1, 3))
	assert.Equal(t, []float64{0.4, 1, 0.4, 1}, p.Satisfactions(m))

	mm := makeData(t, 2, makeUniform("9", []int{0, 1, 1}, []int{2, 1, 1}, []float64{5, 2, 9}))
	pm := NewPreferences(mm)
	m = NewMatches(mm.Capacities())
	require.NoError(t, m.Add(0, 1))
	require.NoError(t, m.Add(0, 2))
	// 0.3 + 1.0 for individual 0; 0.6 toward it from each partner.
	assert.Equal(t, []float64{1.3, 0.6, 0.6}, pm.Satisfactions(m))
}
