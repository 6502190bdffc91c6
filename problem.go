// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"
	"github.com/samber/lo"

	"github.com/someonegg/stablematch/fitness"
)

// MatchesAttribute is the Solution attribute Evaluate stores the matches under.
const MatchesAttribute = "matches"

// Solution is one candidate proposed by the search. Permutation variants
// read Order, ManyToManyPriority reads Priorities. Objectives are minimized.
type Solution struct {
	Order      []int
	Priorities []float64

	Objectives []float64
	Attributes map[string]interface{}
}

// Objective returns the single objective, +Inf before evaluation.
func (s *Solution) Objective() float64 {
	if len(s.Objectives) == 0 {
		return math.Inf(1)
	}
	return s.Objectives[0]
}

// Matches returns the matches attached by the last Evaluate.
func (s *Solution) Matches() *Matches {
	m, _ := s.Attributes[MatchesAttribute].(*Matches)
	return m
}

func (s *Solution) Clone() *Solution {
	c := &Solution{
		Order:      append([]int(nil), s.Order...),
		Priorities: append([]float64(nil), s.Priorities...),
		Objectives: append([]float64(nil), s.Objectives...),
		Attributes: make(map[string]interface{}, len(s.Attributes)),
	}
	for k, v := range s.Attributes {
		c.Attributes[k] = v
	}
	return c
}

// Problem is what the search engine evaluates candidates against. It is
// read-only once built and safe for concurrent Evaluate calls.
type Problem struct {
	name    string
	variant Variant
	data    *MatchingData
	prefs   *Preferences
	matcher Matcher

	fitness *fitness.Expression
	vars    fitness.SatisfactionVars

	worst float64
	log   logr.Logger
}

// NewProblem builds the preferences and matcher of variant and checks the
// fitness expression against data. A bad expression is a configuration error.
func NewProblem(name string, variant Variant, data *MatchingData, opts ...Option) (*Problem, error) {
	o := buildOptions(opts)

	prefs := NewPreferences(data)
	matcher, err := NewMatcher(variant, data, prefs, opts...)
	if err != nil {
		return nil, err
	}

	expr, err := fitness.Compile(o.fitness)
	if err != nil {
		return nil, fmt.Errorf("fitness %q: %w", o.fitness, err)
	}

	p := &Problem{
		name:    name,
		variant: variant,
		data:    data,
		prefs:   prefs,
		matcher: matcher,
		fitness: expr,
		vars:    satisfactionVars(data),
		worst:   o.worst,
		log:     o.log.WithValues("problem", name),
	}

	vars := p.vars
	vars.Satisfactions = make([]float64, data.Len())
	if err := expr.Validate(vars); err != nil {
		return nil, fmt.Errorf("fitness %q: %w", o.fitness, err)
	}
	return p, nil
}

func satisfactionVars(data *MatchingData) fitness.SatisfactionVars {
	v := fitness.SatisfactionVars{
		Sets:         make([][]int, data.NumSets()),
		Properties:   make([][]float64, data.Len()),
		Weights:      make([][]float64, data.Len()),
		Requirements: make([][]float64, data.Len()),
	}
	for s := range v.Sets {
		v.Sets[s] = data.Members(s)
	}
	for i := 0; i < data.Len(); i++ {
		ind := data.Individual(i)
		v.Properties[i] = ind.Properties
		v.Weights[i] = ind.Weights
		v.Requirements[i] = make([]float64, len(ind.Requirements))
		for k, r := range ind.Requirements {
			v.Requirements[i][k] = r.Value()
		}
	}
	return v
}

func (p *Problem) Name() string              { return p.name }
func (p *Problem) Variant() Variant          { return p.variant }
func (p *Problem) Data() *MatchingData       { return p.data }
func (p *Problem) Preferences() *Preferences { return p.prefs }
func (p *Problem) Fitness() string           { return p.fitness.String() }
func (p *Problem) WorstObjective() float64   { return p.worst }

func (p *Problem) NumberOfVariables() int   { return p.data.Len() }
func (p *Problem) NumberOfObjectives() int  { return 1 }
func (p *Problem) NumberOfConstraints() int { return 0 }

// UsesPriorities reports whether candidates are encoded as Priorities.
func (p *Problem) UsesPriorities() bool { return p.variant == ManyToManyPriority }

// Bounds of every priority variable.
func (p *Problem) Bounds() (lower, upper float64) { return 0, 1 }

// NewSolution returns the unevaluated identity candidate.
func (p *Problem) NewSolution() *Solution {
	s := &Solution{Attributes: make(map[string]interface{})}
	if p.UsesPriorities() {
		s.Priorities = make([]float64, p.data.Len())
	} else {
		s.Order = lo.Range(p.data.Len())
	}
	return s
}

// StableMatching runs the matcher for the order sol encodes.
func (p *Problem) StableMatching(sol *Solution) (*Matches, error) {
	order := sol.Order
	if p.UsesPriorities() {
		if len(sol.Priorities) != p.data.Len() {
			return nil, fmt.Errorf("%w: %d priorities, want %d", ErrSolution, len(sol.Priorities), p.data.Len())
		}
		order = OrderFromPriorities(sol.Priorities)
	}
	return p.matcher.Match(order)
}

// Evaluate matches sol, attaches the matches under MatchesAttribute and sets
// its objective to the negated fitness. A candidate that matches an excluded
// pair, or whose fitness is undefined, gets the worst objective instead.
// Errors are configuration or encoding errors, never search-time conditions.
func (p *Problem) Evaluate(sol *Solution) error {
	m, err := p.StableMatching(sol)
	if err != nil {
		return err
	}
	if sol.Attributes == nil {
		sol.Attributes = make(map[string]interface{})
	}
	sol.Attributes[MatchesAttribute] = m

	obj, err := p.objective(m)
	if err != nil {
		return err
	}
	if len(sol.Objectives) != 1 {
		sol.Objectives = make([]float64, 1)
	}
	sol.Objectives[0] = obj
	return nil
}

func (p *Problem) objective(m *Matches) (float64, error) {
	if pair, bad := p.data.ViolatesExclusion(m); bad {
		p.log.V(1).Info("excluded pair matched", "pair", pair)
		return p.worst, nil
	}

	vars := p.vars
	vars.Satisfactions = p.prefs.Satisfactions(m)
	f, err := p.fitness.Evaluate(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		p.log.V(1).Info("undefined fitness", "fitness", p.fitness.String())
		return p.worst, nil
	}

	p.log.V(1).Info("evaluated", "fitness", f, "pairs", len(m.Pairs()))
	return -f, nil
}
