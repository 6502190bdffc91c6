// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/samber/lo"
)

// tripletMatcher forms groups holding exactly one member of every set. A
// group is committed or dissolved as a whole, so a partial group is never
// observable.
type tripletMatcher struct {
	data       *MatchingData
	prefs      *Preferences
	capacities []int // links: NumSets-1 for anyone who may join a group
	log        logr.Logger
}

// NewTriplet matches one-to-one-to-one across every set of data. An
// individual with a positive capacity joins at most one group.
func NewTriplet(data *MatchingData, prefs *Preferences, opts ...Option) Matcher {
	o := buildOptions(opts)
	caps := data.Capacities()
	for i := range caps {
		if caps[i] > 0 {
			caps[i] = data.NumSets() - 1
		}
	}
	return &tripletMatcher{
		data:       data,
		prefs:      prefs,
		capacities: caps,
		log:        o.log.WithName(string(Triplet)),
	}
}

func (m *tripletMatcher) Match(order []int) (*Matches, error) {
	if err := checkOrder(order, m.data.Len()); err != nil {
		return nil, err
	}

	k := m.data.NumSets()
	p := &groupProposal{
		data:    m.data,
		prefs:   m.prefs,
		matches: NewMatches(m.capacities),
		sets:    k,
		next:    make([]int, m.data.Len()*k),
		log:     m.log,
	}

	queue := append(make([]int, 0, 2*len(order)), order...)
	for head := 0; head < len(queue); head++ {
		a := queue[head]
		if p.matches.IsMatched(a) || p.matches.Capacity(a) == 0 {
			continue
		}

		picks := p.pick(a)
		if picks == nil {
			p.log.V(2).Info("no group", "proposer", a)
			continue
		}

		for _, b := range picks {
			if !p.matches.IsMatched(b) {
				continue
			}
			former := p.matches.Dissolve(b)
			for _, x := range former[1:] {
				if !lo.Contains(picks, x) {
					queue = append(queue, x)
				}
			}
			p.log.V(2).Info("dissolved", "proposer", a, "group", former)
		}

		group := append([]int{a}, picks...)
		if err := p.matches.AddGroup(group); err != nil {
			return nil, fmt.Errorf("triplet: %w", err)
		}
		p.log.V(2).Info("grouped", "group", group)
	}

	m.log.V(1).Info("converged", "groups", len(p.matches.Groups()))
	return p.matches, nil
}

type groupProposal struct {
	data    *MatchingData
	prefs   *Preferences
	matches *Matches
	sets    int
	next    []int // cursor of proposer a within set s at a*sets+s
	log     logr.Logger
}

// pick finds, in every set but a's own, the first counterpart from a's
// cursor that would accept a. It returns nil if any set has none left.
func (p *groupProposal) pick(a int) []int {
	list := p.prefs.Get(a)
	own := p.data.SetOf(a)

	picks := make([]int, 0, p.sets-1)
	for s := 0; s < p.sets; s++ {
		if s == own {
			continue
		}
		ranked := list.In(s)
		cur := &p.next[a*p.sets+s]
		for *cur < len(ranked) && !p.accepts(ranked[*cur].Index, a) {
			*cur++
		}
		if *cur == len(ranked) {
			return nil
		}
		picks = append(picks, ranked[*cur].Index)
	}

	for s := 0; s < p.sets; s++ {
		if s != own {
			p.next[a*p.sets+s]++
		}
	}
	return picks
}

// accepts reports whether b would take a in place of its current mate from
// a's set.
func (p *groupProposal) accepts(b, a int) bool {
	if p.matches.Capacity(b) == 0 {
		return false
	}
	set := p.data.SetOf(a)
	for _, mate := range p.matches.adj[b] {
		if p.data.SetOf(mate) == set {
			return p.prefs.LeastPreferred(b, []int{mate}, a) != a
		}
	}
	return true
}
