// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"

	"github.com/someonegg/stablematch/requirement"
)

// Individual is one participant. Properties, Weights and Requirements are
// aligned: one entry per property.
type Individual struct {
	Name         string
	Set          int
	Capacity     int
	Properties   []float64
	Weights      []float64
	Requirements []requirement.Requirement
}

// MatchingData is the immutable problem definition, shared read-only by all
// evaluations.
type MatchingData struct {
	individuals []Individual
	numSets     int
	numProps    int
	members     [][]int

	excluded   [][2]int
	excludedOf map[[2]int]bool
}

// NewMatchingData validates and freezes a problem. Individuals are addressed
// by their position in the slice.
func NewMatchingData(numSets int, individuals []Individual, excluded [][2]int) (*MatchingData, error) {
	if numSets < 2 {
		return nil, fmt.Errorf("%w: need at least 2 sets, got %d", ErrShape, numSets)
	}

	d := &MatchingData{
		individuals: make([]Individual, len(individuals)),
		numSets:     numSets,
		members:     make([][]int, numSets),
		excludedOf:  make(map[[2]int]bool, len(excluded)),
	}
	if len(individuals) > 0 {
		d.numProps = len(individuals[0].Properties)
	}

	for i, ind := range individuals {
		if ind.Set < 0 || ind.Set >= numSets {
			return nil, fmt.Errorf("%w: individual %d in set %d of %d", ErrIndexRange, i, ind.Set, numSets)
		}
		if ind.Capacity < 0 {
			return nil, fmt.Errorf("%w: individual %d has negative capacity", ErrShape, i)
		}
		if len(ind.Properties) != d.numProps || len(ind.Weights) != d.numProps || len(ind.Requirements) != d.numProps {
			return nil, fmt.Errorf("%w: individual %d has %d properties, %d weights, %d requirements, want %d",
				ErrShape, i, len(ind.Properties), len(ind.Weights), len(ind.Requirements), d.numProps)
		}

		ind.Properties = append([]float64(nil), ind.Properties...)
		ind.Weights = append([]float64(nil), ind.Weights...)
		ind.Requirements = append([]requirement.Requirement(nil), ind.Requirements...)
		d.individuals[i] = ind
		d.members[ind.Set] = append(d.members[ind.Set], i)
	}

	for _, p := range excluded {
		a, b := p[0], p[1]
		if a < 0 || a >= len(individuals) || b < 0 || b >= len(individuals) || a == b {
			return nil, fmt.Errorf("%w: excluded pair %v", ErrIndexRange, p)
		}
		d.excluded = append(d.excluded, p)
		d.excludedOf[[2]int{a, b}] = true
		d.excludedOf[[2]int{b, a}] = true
	}

	return d, nil
}

func (d *MatchingData) Len() int           { return len(d.individuals) }
func (d *MatchingData) NumSets() int       { return d.numSets }
func (d *MatchingData) NumProperties() int { return d.numProps }

// Individual returns a read-only view of i; callers must not modify its slices.
func (d *MatchingData) Individual(i int) Individual { return d.individuals[i] }

func (d *MatchingData) SetOf(i int) int     { return d.individuals[i].Set }
func (d *MatchingData) Capacity(i int) int  { return d.individuals[i].Capacity }
func (d *MatchingData) SetSize(set int) int { return len(d.members[set]) }

// Members returns the individuals of set in ascending order.
func (d *MatchingData) Members(set int) []int { return d.members[set] }

// Capacities returns a fresh copy of every individual's capacity.
func (d *MatchingData) Capacities() []int {
	caps := make([]int, len(d.individuals))
	for i, ind := range d.individuals {
		caps[i] = ind.Capacity
	}
	return caps
}

func (d *MatchingData) Excluded() [][2]int { return d.excluded }

func (d *MatchingData) IsExcluded(a, b int) bool { return d.excludedOf[[2]int{a, b}] }

// ViolatesExclusion reports the first excluded pair matched in m.
func (d *MatchingData) ViolatesExclusion(m *Matches) ([2]int, bool) {
	for _, p := range d.excluded {
		if m.AreMatched(p[0], p[1]) {
			return p, true
		}
	}
	return [2]int{}, false
}

// Score is how much a favors b: the weighted sum of a's requirements scaled
// over b's properties.
func (d *MatchingData) Score(a, b int) float64 {
	ia, ib := &d.individuals[a], &d.individuals[b]
	var s float64
	for k, req := range ia.Requirements {
		s += req.Scale(ib.Properties[k]) * ia.Weights[k]
	}
	return s
}
