// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stablematch provides deferred acceptance matching algorithms for
// individuals partitioned into sets, driven by weighted requirement-based
// preferences, and the evaluation step a population-based search calls to
// score a proposal order.
package stablematch

import "errors"

// Matcher runs deferred acceptance for one proposal order. The result
// depends on the order and is not free of blocking pairs in general.
// Implementations share read-only problem data and allocate all mutable
// state per call, so Match may be called concurrently.
type Matcher interface {
	Match(order []int) (*Matches, error)
}

// Variant names a matching cardinality.
type Variant string

const (
	ManyToMany Variant = "many-to-many"
	OneToMany  Variant = "one-to-many"
	OneToOne   Variant = "one-to-one"
	Triplet    Variant = "triplet"

	// ManyToManyPriority is ManyToMany encoded as a real-valued priority
	// vector, for particle swarm style searches.
	ManyToManyPriority Variant = "many-to-many-priority"
)

var Variants = []Variant{ManyToMany, OneToMany, OneToOne, Triplet, ManyToManyPriority}

var (
	ErrShape          = errors.New("stablematch: inconsistent problem shape")
	ErrIndexRange     = errors.New("stablematch: index out of range")
	ErrSelfMatch      = errors.New("stablematch: self match")
	ErrCapacity       = errors.New("stablematch: capacity exceeded")
	ErrUnknownVariant = errors.New("stablematch: unknown variant")
	ErrSolution       = errors.New("stablematch: solution does not fit problem")
)
