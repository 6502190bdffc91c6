// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/someonegg/stablematch"
	"github.com/someonegg/stablematch/population"
)

type Result struct {
	Order         []int     `json:"order,omitempty"`
	Priorities    []float64 `json:"priorities,omitempty"`
	Objective     float64   `json:"objective"`
	Pairs         [][2]int  `json:"pairs"`
	Groups        [][]int   `json:"groups,omitempty"`
	Leftovers     []int     `json:"leftovers"`
	Satisfactions []float64 `json:"satisfactions"`
}

type Report struct {
	Name      string    `json:"name"`
	Variant   string    `json:"variant"`
	Fitness   string    `json:"fitness"`
	Evaluated int       `json:"evaluated"`
	Results   []*Result `json:"results"`
}

func doEvaluate(problemFile, outFile, order, priorities string) error {
	p, err := loadProblem(problemFile, logger)
	if err != nil {
		return err
	}

	sol := p.NewSolution()
	if order != "" {
		if sol.Order, err = parseInts(order); err != nil {
			return fmt.Errorf("invalid order: %w", err)
		}
	}
	if priorities != "" {
		if sol.Priorities, err = parseFloats(priorities); err != nil {
			return fmt.Errorf("invalid priorities: %w", err)
		}
	}

	if err := p.Evaluate(sol); err != nil {
		return fmt.Errorf("evaluate failed: %w", err)
	}

	return writeReport(outFile, newReport(p, 1, []*stablematch.Solution{sol}))
}

func doSample(ctx context.Context, problemFile, outFile string, n int, seed int64, workers, top int) error {
	p, err := loadProblem(problemFile, logger)
	if err != nil {
		return err
	}

	sols := population.Random(p, n, rand.New(rand.NewSource(seed)))
	if err := population.Evaluate(ctx, p, sols, workers); err != nil {
		return fmt.Errorf("evaluate failed: %w", err)
	}
	population.Rank(sols)

	logger.V(1).Info("sampled", "problem", p.Name(), "candidates", n, "best", sols[0].Objective())

	return writeReport(outFile, newReport(p, n, sols[:min(top, len(sols))]))
}

func newReport(p *stablematch.Problem, evaluated int, sols []*stablematch.Solution) *Report {
	r := &Report{
		Name:      p.Name(),
		Variant:   string(p.Variant()),
		Fitness:   p.Fitness(),
		Evaluated: evaluated,
	}
	for _, sol := range sols {
		m := sol.Matches()
		res := &Result{
			Order:         sol.Order,
			Priorities:    sol.Priorities,
			Objective:     sol.Objective(),
			Pairs:         m.Pairs(),
			Leftovers:     m.Leftovers(),
			Satisfactions: p.Preferences().Satisfactions(m),
		}
		if p.Variant() == stablematch.Triplet {
			res.Groups = m.Groups()
		}
		r.Results = append(r.Results, res)
	}
	return r
}

func writeReport(file string, r *Report) error {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "   ")
	if err := encoder.Encode(r); err != nil {
		return err
	}

	if file == "" {
		_, err := os.Stdout.Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(file, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write result file failed: %w", err)
	}
	return nil
}

func parseInts(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	vs := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		vs[i] = v
	}
	return vs, nil
}

func parseFloats(s string) ([]float64, error) {
	var err error
	vs := lo.Map(strings.Split(s, ","), func(f string, _ int) float64 {
		v, e := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if e != nil && err == nil {
			err = e
		}
		return v
	})
	if err != nil {
		return nil, err
	}
	return vs, nil
}
