// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stablematch

import (
	"math"

	"github.com/go-logr/logr"
)

// DefaultWorstObjective is the objective of a candidate that matches an
// excluded pair. Objectives are minimized.
const DefaultWorstObjective = math.MaxFloat64

type Option func(*options)

type options struct {
	log     logr.Logger
	worst   float64
	fitness string
	oneSide int
}

func defaultOptions() options {
	return options{
		log:   logr.Discard(),
		worst: DefaultWorstObjective,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger traces proposals at V(2) and evaluations at V(1).
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithWorstObjective overrides DefaultWorstObjective.
func WithWorstObjective(v float64) Option {
	return func(o *options) { o.worst = v }
}

// WithFitness sets the expression scoring the satisfaction vector. Blank
// means SUM.
func WithFitness(expr string) Option {
	return func(o *options) { o.fitness = expr }
}

// WithOneSideSet picks which set is the "one" side of OneToMany. Default 0.
func WithOneSideSet(set int) Option {
	return func(o *options) { o.oneSide = set }
}
