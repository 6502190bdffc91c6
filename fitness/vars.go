// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

// Vars binds expression tokens to numbers.
type Vars interface {
	// Values is the vector default aggregations are applied to.
	Values() []float64

	check(t token, set int) error
	value(t token, member int) float64
	members(set int) []int
}

// SatisfactionVars binds the stable matching tokens. Rows of Properties,
// Weights and Requirements are indexed by individual.
type SatisfactionVars struct {
	Satisfactions []float64
	Sets          [][]int

	Properties   [][]float64
	Weights      [][]float64
	Requirements [][]float64
}

func (v SatisfactionVars) Values() []float64 { return v.Satisfactions }

func (v SatisfactionVars) check(t token, set int) error {
	switch t.kind {
	case kindSatisfaction:
		return inRange(t, t.idx[0], len(v.Satisfactions))
	case kindSet:
		return inRange(t, t.idx[0], len(v.Sets))
	case kindProperty, kindWeight, kindRequirement:
		if set < 1 || set > len(v.Sets) {
			return newError(ErrContext, t.text, t.pos)
		}
		rows := v.table(t.kind)
		for _, m := range v.Sets[set-1] {
			if m < 0 || m >= len(rows) {
				return newError(ErrIndexOutOfRange, t.text, t.pos)
			}
			if err := inRange(t, t.idx[0], len(rows[m])); err != nil {
				return err
			}
		}
		return nil
	}
	return newError(ErrContext, t.text, t.pos)
}

func (v SatisfactionVars) value(t token, member int) float64 {
	switch t.kind {
	case kindSatisfaction:
		return v.Satisfactions[t.idx[0]-1]
	case kindSet:
		if member >= 0 {
			return v.Satisfactions[member]
		}
		set := v.Sets[t.idx[0]-1]
		vals := make([]float64, len(set))
		for i, m := range set {
			vals[i] = v.Satisfactions[m]
		}
		return SumFixed(vals)
	}
	return v.table(t.kind)[member][t.idx[0]-1]
}

func (v SatisfactionVars) members(set int) []int { return v.Sets[set-1] }

func (v SatisfactionVars) table(k kind) [][]float64 {
	switch k {
	case kindWeight:
		return v.Weights
	case kindRequirement:
		return v.Requirements
	}
	return v.Properties
}

// PayoffVars binds the payoff tokens: p# to Own, P#p# to Players and u# to
// Payoffs. Default aggregations apply to Payoffs.
type PayoffVars struct {
	Own     []float64
	Players [][]float64
	Payoffs []float64
}

func (v PayoffVars) Values() []float64 { return v.Payoffs }

func (v PayoffVars) check(t token, _ int) error {
	switch t.kind {
	case kindOwnProperty:
		return inRange(t, t.idx[0], len(v.Own))
	case kindPayoff:
		return inRange(t, t.idx[0], len(v.Payoffs))
	case kindPlayerProperty:
		if err := inRange(t, t.idx[0], len(v.Players)); err != nil {
			return err
		}
		return inRange(t, t.idx[1], len(v.Players[t.idx[0]-1]))
	}
	return newError(ErrContext, t.text, t.pos)
}

func (v PayoffVars) value(t token, _ int) float64 {
	switch t.kind {
	case kindOwnProperty:
		return v.Own[t.idx[0]-1]
	case kindPayoff:
		return v.Payoffs[t.idx[0]-1]
	}
	return v.Players[t.idx[0]-1][t.idx[1]-1]
}

func (v PayoffVars) members(int) []int { return nil }

func inRange(t token, idx, n int) error {
	if idx < 1 || idx > n {
		return newError(ErrIndexOutOfRange, t.text, t.pos)
	}
	return nil
}
