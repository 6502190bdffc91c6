// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package requirement describes what property values an individual favors in
// a counterpart, and decodes the compact string form those rules are written in.
package requirement

// Requirement scores a counterpart's property value against one rule.
type Requirement interface {
	// Scale maps a property value into [0, 1], 1 being the most favored.
	Scale(propertyValue float64) float64

	// Value is the representative number of the rule (threshold, midpoint
	// or target), exposed to fitness expressions.
	Value() float64

	String() string
}

type Direction int

const (
	Increasing Direction = iota
	Decreasing
)

func (d Direction) String() string {
	if d == Decreasing {
		return "decreasing"
	}
	return "increasing"
}

// Properties scored by a ScaleTarget rule live on this 0..ScaleMax scale.
const ScaleMax = 10
