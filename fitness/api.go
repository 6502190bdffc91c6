// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fitness turns a vector of satisfaction or payoff values into one
// scalar, either through a default aggregation keyword (SUM, AVERAGE, MIN,
// MAX, PRODUCT, MEDIAN, RANGE) or through a user-written arithmetic
// expression over domain tokens:
//
//	M#         satisfaction of individual #
//	S#         satisfaction sum of set #, or the current member inside SIGMA
//	SIGMA{e}   e summed over every member of the set named by its S# token
//	P# W# R#   property, weight, requirement value of the current SIGMA member
//	p#         own property #
//	P#p#       property # of player #
//	u#         payoff #
//
// Indices are 1-based. Numbers are kept at Precision fractional digits so
// that repeated evaluations of the same candidate agree exactly.
package fitness

import (
	"math"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits results are rounded to.
const Precision = 10

// Fixed rounds f to Precision fractional digits. NaN and infinities are
// returned unchanged.
func Fixed(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	v, _ := decimal.NewFromFloat(f).Round(Precision).Float64()
	return v
}

// SumFixed adds values in fixed point and rounds the total.
func SumFixed(values []float64) float64 {
	sum := decimal.Zero
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.NaN()
		}
		sum = sum.Add(decimal.NewFromFloat(v))
	}
	f, _ := sum.Round(Precision).Float64()
	return f
}

func format(f float64) string {
	return decimal.NewFromFloat(f).Round(Precision).String()
}
