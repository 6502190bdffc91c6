// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package requirement

import (
	"math"
	"strconv"
	"strings"
)

// Neutral is what unparseable cells decode to.
var Neutral Requirement = OneBound{Threshold: 0, Direction: Increasing}

// Decode parses one requirement cell. The grammar, in priority order:
//
//	n        integer; 0..ScaleMax is a ScaleTarget, anything else n++
//	n.n      decimal, same as n.n++
//	lo:hi    TwoBound
//	n++ n--  OneBound increasing / decreasing
//
// Anything else decodes to Neutral.
func Decode(s string) Requirement {
	s = strings.TrimSpace(s)

	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n <= ScaleMax {
			return ScaleTarget{Target: float64(n)}
		}
		return OneBound{Threshold: float64(n), Direction: Increasing}
	}

	if f, ok := parseNumber(s); ok {
		return OneBound{Threshold: f, Direction: Increasing}
	}

	if lo, hi, found := strings.Cut(s, ":"); found {
		l, ok1 := parseNumber(lo)
		h, ok2 := parseNumber(hi)
		if ok1 && ok2 {
			return TwoBound{Low: l, High: h}
		}
		return Neutral
	}

	if v, ok := strings.CutSuffix(s, "++"); ok {
		if f, ok := parseNumber(v); ok {
			return OneBound{Threshold: f, Direction: Increasing}
		}
		return Neutral
	}
	if v, ok := strings.CutSuffix(s, "--"); ok {
		if f, ok := parseNumber(v); ok {
			return OneBound{Threshold: f, Direction: Decreasing}
		}
	}

	return Neutral
}

// DecodeMatrix decodes a row per individual, a cell per property.
func DecodeMatrix(cells [][]string) [][]Requirement {
	reqs := make([][]Requirement, len(cells))
	for i, row := range cells {
		reqs[i] = make([]Requirement, len(row))
		for j, cell := range row {
			reqs[i][j] = Decode(cell)
		}
	}
	return reqs
}

func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
