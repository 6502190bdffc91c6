// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// NewMatcher builds the matcher of variant over data. The pairwise variants
// need exactly two sets, Triplet at least three.
func NewMatcher(variant Variant, data *MatchingData, prefs *Preferences, opts ...Option) (Matcher, error) {
	switch variant {
	case ManyToMany, ManyToManyPriority, OneToMany, OneToOne:
		if data.NumSets() != 2 {
			return nil, fmt.Errorf("%w: %s needs 2 sets, got %d", ErrShape, variant, data.NumSets())
		}
	case Triplet:
		if data.NumSets() < 3 {
			return nil, fmt.Errorf("%w: %s needs at least 3 sets, got %d", ErrShape, variant, data.NumSets())
		}
	}

	switch variant {
	case ManyToMany, ManyToManyPriority:
		return NewManyToMany(data, prefs, opts...), nil
	case OneToMany:
		o := buildOptions(opts)
		if o.oneSide < 0 || o.oneSide >= data.NumSets() {
			return nil, fmt.Errorf("%w: one side set %d", ErrIndexRange, o.oneSide)
		}
		return NewOneToMany(data, prefs, opts...), nil
	case OneToOne:
		return NewOneToOne(data, prefs, opts...), nil
	case Triplet:
		return NewTriplet(data, prefs, opts...), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
}

// ParseVariant accepts any of Variants.
func ParseVariant(s string) (Variant, error) {
	v := Variant(s)
	if !lo.Contains(Variants, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
	}
	return v, nil
}

// OrderFromPriorities turns a priority vector into a proposal order: highest
// priority first, ties by ascending index.
func OrderFromPriorities(priorities []float64) []int {
	order := lo.Range(len(priorities))
	sort.SliceStable(order, func(i, j int) bool {
		return priorities[order[i]] > priorities[order[j]]
	})
	return order
}

// checkOrder requires a permutation of 0..n-1.
func checkOrder(order []int, n int) error {
	if len(order) != n {
		return fmt.Errorf("%w: order has %d entries, want %d", ErrSolution, len(order), n)
	}
	seen := make([]bool, n)
	for _, i := range order {
		if i < 0 || i >= n || seen[i] {
			return fmt.Errorf("%w: order %v is not a permutation", ErrSolution, order)
		}
		seen[i] = true
	}
	return nil
}
