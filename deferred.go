// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"github.com/go-logr/logr"
)

// pairwiseMatcher runs deferred acceptance between two sets. The variants
// only differ in the capacities they enforce.
type pairwiseMatcher struct {
	data       *MatchingData
	prefs      *Preferences
	capacities []int
	log        logr.Logger
}

func (m *pairwiseMatcher) Match(order []int) (*Matches, error) {
	if err := checkOrder(order, m.data.Len()); err != nil {
		return nil, err
	}

	p := &proposal{
		prefs:   m.prefs,
		matches: NewMatches(m.capacities),
		next:    make([]int, m.data.Len()),
		queue:   append(make([]int, 0, 2*len(order)), order...),
		log:     m.log,
	}
	p.run()

	m.log.V(1).Info("converged", "pairs", len(p.matches.Pairs()), "proposals", p.proposals)
	return p.matches, nil
}

// proposal is the per-call state of one run; it never escapes Match.
type proposal struct {
	prefs   *Preferences
	matches *Matches
	next    []int // cursor into each proposer's ranking
	queue   []int
	head    int
	log     logr.Logger

	proposals int
}

func (p *proposal) run() {
	for p.head < len(p.queue) {
		a := p.queue[p.head]
		p.head++
		p.propose(a)
	}
}

// propose walks a's ranking from its cursor until a is full or has asked
// everyone. A cursor never moves back, so nobody is asked twice.
func (p *proposal) propose(a int) {
	list := p.prefs.Get(a)
	for !p.matches.IsFull(a) && p.next[a] < list.Len() {
		b := list.At(p.next[a]).Index
		p.next[a]++
		p.proposals++

		if p.matches.Capacity(b) == 0 || p.matches.AreMatched(a, b) {
			continue
		}
		if !p.matches.IsFull(b) {
			p.matches.link(a, b)
			p.log.V(2).Info("accepted", "proposer", a, "target", b)
			continue
		}

		c := p.prefs.LeastPreferred(b, p.matches.adj[b], a)
		if c == a {
			p.log.V(2).Info("rejected", "proposer", a, "target", b)
			continue
		}
		p.matches.unlink(b, c)
		p.matches.link(a, b)
		p.queue = append(p.queue, c)
		p.log.V(2).Info("evicted", "proposer", a, "target", b, "evicted", c)
	}
}
