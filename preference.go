// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"math"
	"sort"

	"github.com/someonegg/stablematch/fitness"
)

// Entry is one ranked counterpart.
type Entry struct {
	Index int
	Score float64
}

// PreferenceList ranks every counterpart of its owner. Entries are grouped
// by the counterpart's set (ascending), each group sorted by descending
// score with ties broken by ascending index. For the pairwise variants there
// is a single group, so the flattened list is the ranking.
type PreferenceList struct {
	owner   int
	entries []Entry
	offsets []int // group of set s is entries[offsets[s]:offsets[s+1]]

	scores []float64 // by individual, NaN for non-counterparts
	ranks  []int     // position in entries, -1 for non-counterparts
}

// NewPreferenceList scores owner against every individual outside its set.
func NewPreferenceList(owner int, data *MatchingData) *PreferenceList {
	n := data.Len()
	l := &PreferenceList{
		owner:   owner,
		entries: make([]Entry, 0, n-data.SetSize(data.SetOf(owner))),
		offsets: make([]int, data.NumSets()+1),
		scores:  make([]float64, n),
		ranks:   make([]int, n),
	}
	for i := range l.scores {
		l.scores[i] = math.NaN()
		l.ranks[i] = -1
	}

	own := data.SetOf(owner)
	for s := 0; s < data.NumSets(); s++ {
		l.offsets[s] = len(l.entries)
		if s == own {
			continue
		}
		start := len(l.entries)
		for _, b := range data.Members(s) {
			score := fitness.Fixed(data.Score(owner, b))
			l.entries = append(l.entries, Entry{Index: b, Score: score})
			l.scores[b] = score
		}
		group := l.entries[start:]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Score > group[j].Score ||
				group[i].Score == group[j].Score && group[i].Index < group[j].Index
		})
	}
	l.offsets[data.NumSets()] = len(l.entries)

	for r, e := range l.entries {
		l.ranks[e.Index] = r
	}
	return l
}

func (l *PreferenceList) Owner() int { return l.owner }
func (l *PreferenceList) Len() int   { return len(l.entries) }

// At returns the counterpart at rank r of the flattened ranking.
func (l *PreferenceList) At(r int) Entry { return l.entries[r] }

// In returns the ranking restricted to set. It is empty for the owner's set.
func (l *PreferenceList) In(set int) []Entry {
	return l.entries[l.offsets[set]:l.offsets[set+1]]
}

// Offset is where set's group starts in the flattened ranking.
func (l *PreferenceList) Offset(set int) int { return l.offsets[set] }

// Score returns how much the owner favors b; ok is false if b is not a
// counterpart.
func (l *PreferenceList) Score(b int) (score float64, ok bool) {
	if l.ranks[b] < 0 {
		return 0, false
	}
	return l.scores[b], true
}

// Rank returns b's position in the flattened ranking, or -1.
func (l *PreferenceList) Rank(b int) int { return l.ranks[b] }

// Preferences holds every individual's PreferenceList. It is built once per
// problem and is read-only afterwards.
type Preferences struct {
	lists []*PreferenceList
}

func NewPreferences(data *MatchingData) *Preferences {
	p := &Preferences{lists: make([]*PreferenceList, data.Len())}
	for i := range p.lists {
		p.lists[i] = NewPreferenceList(i, data)
	}
	return p
}

func (p *Preferences) Len() int { return len(p.lists) }

func (p *Preferences) Get(i int) *PreferenceList { return p.lists[i] }

// PositionByRank returns i's counterpart at rank r.
func (p *Preferences) PositionByRank(i, r int) int { return p.lists[i].entries[r].Index }

// IsPreferredOver reports whether from ranks a strictly ahead of b.
// Non-counterparts are never preferred.
func (p *Preferences) IsPreferredOver(a, b, from int) bool {
	l := p.lists[from]
	ra, rb := l.ranks[a], l.ranks[b]
	if ra < 0 {
		return false
	}
	if rb < 0 {
		return true
	}
	if l.scores[a] != l.scores[b] {
		return l.scores[a] > l.scores[b]
	}
	return ra < rb
}

// LeastPreferred returns whoever i ranks lowest among current and candidate.
func (p *Preferences) LeastPreferred(i int, current []int, candidate int) int {
	least := candidate
	for _, c := range current {
		if p.IsPreferredOver(least, c, i) {
			least = c
		}
	}
	return least
}

// LastChoiceOf returns i's lowest ranked counterpart, or -1 if it has none.
func (p *Preferences) LastChoiceOf(i int) int {
	l := p.lists[i]
	if len(l.entries) == 0 {
		return -1
	}
	return l.entries[len(l.entries)-1].Index
}

// Satisfactions returns, per individual, the fixed point sum of its scores
// toward its current matches.
func (p *Preferences) Satisfactions(m *Matches) []float64 {
	sats := make([]float64, len(p.lists))
	for i, l := range p.lists {
		partners := m.adj[i]
		scores := make([]float64, len(partners))
		for k, b := range partners {
			scores[k] = l.scores[b]
		}
		sats[i] = fitness.SumFixed(scores)
	}
	return sats
}
