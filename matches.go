// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// Matches is the mutable result of one evaluation. Links are symmetric, never
// reflexive, and never exceed an individual's capacity; every mutation keeps
// those invariants or fails without effect.
type Matches struct {
	capacities []int
	adj        [][]int // sorted partner indices
}

func NewMatches(capacities []int) *Matches {
	return &Matches{
		capacities: append([]int(nil), capacities...),
		adj:        make([][]int, len(capacities)),
	}
}

func (m *Matches) Len() int { return len(m.adj) }

func (m *Matches) Capacity(i int) int { return m.capacities[i] }

// Add links a and b. Linking an already matched pair is a no-op.
func (m *Matches) Add(a, b int) error {
	if err := m.checkPair(a, b); err != nil {
		return err
	}
	if m.AreMatched(a, b) {
		return nil
	}
	if m.IsFull(a) || m.IsFull(b) {
		return fmt.Errorf("%w: %d-%d", ErrCapacity, a, b)
	}
	m.link(a, b)
	return nil
}

// Remove unlinks a and b and reports whether they were linked.
func (m *Matches) Remove(a, b int) bool {
	if m.checkPair(a, b) != nil || !m.AreMatched(a, b) {
		return false
	}
	m.unlink(a, b)
	return true
}

// AddGroup links every pair of members, all or nothing.
func (m *Matches) AddGroup(members []int) error {
	for x, a := range members {
		if a < 0 || a >= len(m.adj) {
			return fmt.Errorf("%w: %d", ErrIndexRange, a)
		}
		need := 0
		for y, b := range members {
			if x == y {
				continue
			}
			if a == b {
				return fmt.Errorf("%w: %d", ErrSelfMatch, a)
			}
			if !m.AreMatched(a, b) {
				need++
			}
		}
		if len(m.adj[a])+need > m.capacities[a] {
			return fmt.Errorf("%w: %d joining group %v", ErrCapacity, a, members)
		}
	}

	for x, a := range members {
		for _, b := range members[x+1:] {
			if !m.AreMatched(a, b) {
				m.link(a, b)
			}
		}
	}
	return nil
}

// Dismatch unlinks node from every member of group.
func (m *Matches) Dismatch(node int, group []int) {
	for _, g := range group {
		m.Remove(node, g)
	}
}

// Dissolve unlinks every pair among member and its partners and returns the
// former group, member first.
func (m *Matches) Dissolve(member int) []int {
	group := append([]int{member}, m.adj[member]...)
	for x, a := range group {
		m.Dismatch(a, group[x+1:])
	}
	return group
}

func (m *Matches) IsMatched(a int) bool { return len(m.adj[a]) > 0 }

func (m *Matches) AreMatched(a, b int) bool {
	s := m.adj[a]
	k := sort.SearchInts(s, b)
	return k < len(s) && s[k] == b
}

func (m *Matches) IsFull(a int) bool { return len(m.adj[a]) >= m.capacities[a] }

// SetOf returns a copy of a's partners in ascending order.
func (m *Matches) SetOf(a int) []int { return append([]int(nil), m.adj[a]...) }

// Leftovers returns the individuals that could have matched but did not.
// They are disjoint from the matched individuals.
func (m *Matches) Leftovers() []int {
	return lo.Filter(lo.Range(len(m.adj)), func(i int, _ int) bool {
		return m.capacities[i] > 0 && len(m.adj[i]) == 0
	})
}

// Pairs returns every link once, as (low, high), sorted.
func (m *Matches) Pairs() [][2]int {
	var pairs [][2]int
	for a, partners := range m.adj {
		for _, b := range partners {
			if a < b {
				pairs = append(pairs, [2]int{a, b})
			}
		}
	}
	return pairs
}

// Groups returns the connected components with at least two members, each
// sorted, ordered by their smallest member.
func (m *Matches) Groups() [][]int {
	seen := make([]bool, len(m.adj))
	var groups [][]int
	for i := range m.adj {
		if seen[i] || len(m.adj[i]) == 0 {
			continue
		}
		var group []int
		stack := []int{i}
		seen[i] = true
		for len(stack) > 0 {
			a := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, a)
			for _, b := range m.adj[a] {
				if !seen[b] {
					seen[b] = true
					stack = append(stack, b)
				}
			}
		}
		sort.Ints(group)
		groups = append(groups, group)
	}
	return groups
}

func (m *Matches) Clone() *Matches {
	c := &Matches{
		capacities: append([]int(nil), m.capacities...),
		adj:        make([][]int, len(m.adj)),
	}
	for i, s := range m.adj {
		c.adj[i] = append([]int(nil), s...)
	}
	return c
}

// Reset drops every link, keeping capacities.
func (m *Matches) Reset() {
	for i := range m.adj {
		m.adj[i] = m.adj[i][:0]
	}
}

func (m *Matches) String() string {
	return fmt.Sprint(m.Pairs())
}

func (m *Matches) checkPair(a, b int) error {
	if a < 0 || a >= len(m.adj) || b < 0 || b >= len(m.adj) {
		return fmt.Errorf("%w: %d-%d", ErrIndexRange, a, b)
	}
	if a == b {
		return fmt.Errorf("%w: %d", ErrSelfMatch, a)
	}
	return nil
}

func insertSorted(s []int, v int) []int {
	k := sort.SearchInts(s, v)
	s = append(s, 0)
	copy(s[k+1:], s[k:])
	s[k] = v
	return s
}

func removeSorted(s []int, v int) []int {
	k := sort.SearchInts(s, v)
	return append(s[:k], s[k+1:]...)
}

// link and unlink skip the checks; callers have established them.
func (m *Matches) link(a, b int) {
	m.adj[a] = insertSorted(m.adj[a], b)
	m.adj[b] = insertSorted(m.adj[b], a)
}

func (m *Matches) unlink(a, b int) {
	m.adj[a] = removeSorted(m.adj[a], b)
	m.adj[b] = removeSorted(m.adj[b], a)
}
