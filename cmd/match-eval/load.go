// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/requirement"
)

// ProblemFile is the on-disk problem. JSON documents decode too.
type ProblemFile struct {
	Name           string           `yaml:"name" validate:"required"`
	Variant        string           `yaml:"variant" validate:"required,oneof=many-to-many one-to-many one-to-one triplet many-to-many-priority"`
	OneSideSet     int              `yaml:"oneSideSet" validate:"min=0"`
	Properties     []string         `yaml:"properties"`
	Individuals    []IndividualFile `yaml:"individuals" validate:"required,min=2,dive"`
	Excluded       [][]int          `yaml:"excluded" validate:"dive,len=2"`
	Fitness        string           `yaml:"fitness"`
	WorstObjective *float64         `yaml:"worstObjective"`
}

type IndividualFile struct {
	Name         string    `yaml:"name"`
	Set          int       `yaml:"set" validate:"min=0"`
	Capacity     int       `yaml:"capacity" validate:"min=0"`
	Properties   []float64 `yaml:"properties"`
	Weights      []float64 `yaml:"weights"`
	Requirements []string  `yaml:"requirements"`
}

var validate = validator.New()

func loadProblemFile(file string) (*ProblemFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	var pf ProblemFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}
	if err := validate.Struct(&pf); err != nil {
		return nil, err
	}
	return &pf, nil
}

// Build turns the file into a problem; the number of sets is one past the
// highest set index used.
func (pf *ProblemFile) Build(log logr.Logger) (*stablematch.Problem, error) {
	numSets := 1 + lo.Max(lo.Map(pf.Individuals, func(ind IndividualFile, _ int) int {
		return ind.Set
	}))

	reqs := requirement.DecodeMatrix(lo.Map(pf.Individuals, func(ind IndividualFile, _ int) []string {
		return ind.Requirements
	}))

	inds := make([]stablematch.Individual, len(pf.Individuals))
	for i, ind := range pf.Individuals {
		if len(pf.Properties) > 0 && len(ind.Properties) != len(pf.Properties) {
			return nil, fmt.Errorf("individual %d has %d properties, want %d (%v)",
				i, len(ind.Properties), len(pf.Properties), pf.Properties)
		}
		inds[i] = stablematch.Individual{
			Name:         ind.Name,
			Set:          ind.Set,
			Capacity:     ind.Capacity,
			Properties:   ind.Properties,
			Weights:      ind.Weights,
			Requirements: reqs[i],
		}
	}

	excluded := lo.Map(pf.Excluded, func(p []int, _ int) [2]int {
		return [2]int{p[0], p[1]}
	})

	data, err := stablematch.NewMatchingData(numSets, inds, excluded)
	if err != nil {
		return nil, err
	}

	variant, err := stablematch.ParseVariant(pf.Variant)
	if err != nil {
		return nil, err
	}

	opts := []stablematch.Option{
		stablematch.WithLogger(log),
		stablematch.WithFitness(pf.Fitness),
		stablematch.WithOneSideSet(pf.OneSideSet),
	}
	if pf.WorstObjective != nil {
		opts = append(opts, stablematch.WithWorstObjective(*pf.WorstObjective))
	}
	return stablematch.NewProblem(pf.Name, variant, data, opts...)
}

func loadProblem(file string, log logr.Logger) (*stablematch.Problem, error) {
	pf, err := loadProblemFile(file)
	if err != nil {
		return nil, fmt.Errorf("load problem file failed: %w", err)
	}
	p, err := pf.Build(log)
	if err != nil {
		return nil, fmt.Errorf("build problem failed: %w", err)
	}
	return p, nil
}
