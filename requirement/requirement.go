// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package requirement

import (
	"math"
	"strconv"
)

// OneBound favors values beyond Threshold in Direction. Values on the wrong
// side score 0, the threshold itself scores 0.5 and the score approaches 1
// the further the value goes.
type OneBound struct {
	Threshold float64
	Direction Direction
}

func (r OneBound) Scale(v float64) float64 {
	d := v - r.Threshold
	if r.Direction == Decreasing {
		d = -d
	}
	if d < 0 {
		return 0
	}
	rel := d / math.Max(math.Abs(r.Threshold), 1)
	return 0.5 + 0.5*rel/(1+rel)
}

func (r OneBound) Value() float64 { return r.Threshold }

func (r OneBound) String() string {
	if r.Direction == Decreasing {
		return formatFloat(r.Threshold) + "--"
	}
	return formatFloat(r.Threshold) + "++"
}

// TwoBound favors values inside [Low, High]. Outside, the score decays
// linearly and reaches 0 one span away from the nearest bound.
type TwoBound struct {
	Low  float64
	High float64
}

func (r TwoBound) Scale(v float64) float64 {
	var dist float64
	switch {
	case v < r.Low:
		dist = r.Low - v
	case v > r.High:
		dist = v - r.High
	default:
		return 1
	}
	span := math.Max(r.High-r.Low, 1)
	return math.Max(0, 1-dist/span)
}

func (r TwoBound) Value() float64 { return (r.Low + r.High) / 2 }

func (r TwoBound) String() string {
	return formatFloat(r.Low) + ":" + formatFloat(r.High)
}

// ScaleTarget favors values equal to Target on the 0..ScaleMax scale.
type ScaleTarget struct {
	Target float64
}

func (r ScaleTarget) Scale(v float64) float64 {
	s := 1 - math.Abs(v-r.Target)/ScaleMax
	return math.Min(1, math.Max(0, s))
}

func (r ScaleTarget) Value() float64 { return r.Target }

func (r ScaleTarget) String() string { return formatFloat(r.Target) }

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
