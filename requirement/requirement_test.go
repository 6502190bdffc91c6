// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	cases := []struct {
		in   string
		want Requirement
	}{
		{"5", ScaleTarget{Target: 5}},
		{"0", ScaleTarget{Target: 0}},
		{"10", ScaleTarget{Target: 10}},
		{"11", OneBound{Threshold: 11, Direction: Increasing}},
		{"-2", OneBound{Threshold: -2, Direction: Increasing}},
		{"3.5", OneBound{Threshold: 3.5, Direction: Increasing}},
		{"3:7", TwoBound{Low: 3, High: 7}},
		{"1.5:2.5", TwoBound{Low: 1.5, High: 2.5}},
		{"3++", OneBound{Threshold: 3, Direction: Increasing}},
		{"3--", OneBound{Threshold: 3, Direction: Decreasing}},
		{"4.25--", OneBound{Threshold: 4.25, Direction: Decreasing}},
		{" 7 ", ScaleTarget{Target: 7}},
	}

	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			assert.Equal(t, c.want, Decode(c.in))
		})
	}
}

func TestDecode_FallsBackToNeutral(t *testing.T) {
	for _, in := range []string{"", "abc", "3:x", ":", "x++", "++", "NaN", "Inf--", "1:2:3"} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, Neutral, Decode(in))
		})
	}
}

func TestDecodeMatrix(t *testing.T) {
	reqs := DecodeMatrix([][]string{
		{"5", "3:7"},
		{"2--", "?"},
	})
	require.Len(t, reqs, 2)
	require.Len(t, reqs[0], 2)
	require.Len(t, reqs[1], 2)
	assert.Equal(t, ScaleTarget{Target: 5}, reqs[0][0])
	assert.Equal(t, TwoBound{Low: 3, High: 7}, reqs[0][1])
	assert.Equal(t, OneBound{Threshold: 2, Direction: Decreasing}, reqs[1][0])
	assert.Equal(t, Neutral, reqs[1][1])
}

func TestString_DecodesBack(t *testing.T) {
	for _, r := range []Requirement{
		ScaleTarget{Target: 4},
		OneBound{Threshold: 12.5, Direction: Increasing},
		OneBound{Threshold: 3, Direction: Decreasing},
		TwoBound{Low: 1, High: 9.5},
	} {
		assert.Equal(t, r, Decode(r.String()))
	}
}

func TestScale(t *testing.T) {
	t.Run("ScaleTarget", func(t *testing.T) {
		r := ScaleTarget{Target: 5}
		assert.Equal(t, 1.0, r.Scale(5))
		assert.InDelta(t, 0.8, r.Scale(7), 1e-12)
		assert.InDelta(t, 0.8, r.Scale(3), 1e-12)
		assert.Equal(t, 0.0, r.Scale(100))
	})

	t.Run("OneBoundIncreasing", func(t *testing.T) {
		r := OneBound{Threshold: 4, Direction: Increasing}
		assert.Equal(t, 0.0, r.Scale(3))
		assert.Equal(t, 0.5, r.Scale(4))
		assert.Greater(t, r.Scale(8), r.Scale(5))
		assert.Less(t, r.Scale(1e9), 1.0)
	})

	t.Run("OneBoundDecreasing", func(t *testing.T) {
		r := OneBound{Threshold: 4, Direction: Decreasing}
		assert.Equal(t, 0.0, r.Scale(5))
		assert.Equal(t, 0.5, r.Scale(4))
		assert.Greater(t, r.Scale(0), r.Scale(3))
	})

	t.Run("TwoBound", func(t *testing.T) {
		r := TwoBound{Low: 3, High: 7}
		assert.Equal(t, 1.0, r.Scale(3))
		assert.Equal(t, 1.0, r.Scale(5))
		assert.Equal(t, 1.0, r.Scale(7))
		assert.InDelta(t, 0.75, r.Scale(8), 1e-12)
		assert.InDelta(t, 0.5, r.Scale(1), 1e-12)
		assert.Equal(t, 0.0, r.Scale(20))
	})

	t.Run("Range", func(t *testing.T) {
		rs := []Requirement{
			ScaleTarget{Target: 0},
			OneBound{Threshold: -3, Direction: Increasing},
			OneBound{Threshold: 100, Direction: Decreasing},
			TwoBound{Low: 0, High: 0},
		}
		for _, r := range rs {
			for v := -50.0; v <= 150; v += 2.5 {
				s := r.Scale(v)
				assert.GreaterOrEqual(t, s, 0.0, "%v.Scale(%v)", r, v)
				assert.LessOrEqual(t, s, 1.0, "%v.Scale(%v)", r, v)
			}
		}
	})
}

func TestValue(t *testing.T) {
	assert.Equal(t, 5.0, ScaleTarget{Target: 5}.Value())
	assert.Equal(t, 5.0, TwoBound{Low: 3, High: 7}.Value())
	assert.Equal(t, 2.0, OneBound{Threshold: 2, Direction: Decreasing}.Value())
}
