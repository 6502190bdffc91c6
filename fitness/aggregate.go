// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Aggregation is a default fitness keyword applied to the whole vector.
type Aggregation string

const (
	Sum     Aggregation = "SUM"
	Average Aggregation = "AVERAGE"
	Min     Aggregation = "MIN"
	Max     Aggregation = "MAX"
	Product Aggregation = "PRODUCT"
	Median  Aggregation = "MEDIAN"
	Range   Aggregation = "RANGE"
)

var aggregations = []Aggregation{Sum, Average, Min, Max, Product, Median, Range}

// ParseAggregation recognizes a keyword case-insensitively. A blank string
// is Sum.
func ParseAggregation(s string) (Aggregation, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Sum, true
	}
	for _, a := range aggregations {
		if strings.EqualFold(s, string(a)) {
			return a, true
		}
	}
	return "", false
}

// Apply aggregates values. An empty vector yields 0, except Product which
// yields 1.
func (a Aggregation) Apply(values []float64) float64 {
	if len(values) == 0 {
		if a == Product {
			return 1
		}
		return 0
	}

	var r float64
	switch a {
	case Average:
		r = SumFixed(values) / float64(len(values))
	case Min:
		r = floats.Min(values)
	case Max:
		r = floats.Max(values)
	case Product:
		r = floats.Prod(values)
	case Median:
		r = median(values)
	case Range:
		r = floats.Max(values) - floats.Min(values)
	default:
		return SumFixed(values)
	}
	return Fixed(r)
}

func median(values []float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}
