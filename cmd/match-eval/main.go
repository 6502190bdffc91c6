// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/go-logr/logr"
	"github.com/urfave/cli/v2"
	"k8s.io/klog/v2"
)

// logger is set up by the app's Before hook from --v.
var logger = logr.Discard()

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "match-eval",
		Usage: "Utility for evaluating stable matching problems",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "v",
				Value: 0,
				Usage: "specify the log verbosity (1 summaries, 2 proposal traces)",
			},
		},
		Before: func(ctx *cli.Context) error {
			fs := flag.NewFlagSet("klog", flag.ContinueOnError)
			klog.InitFlags(fs)
			if err := fs.Set("v", strconv.Itoa(ctx.Int("v"))); err != nil {
				return err
			}
			logger = klog.NewKlogr()
			return nil
		},
		After: func(ctx *cli.Context) error {
			klog.Flush()
			return nil
		},
		Commands: []*cli.Command{
			evaluateCmd,
			sampleCmd,
		},
	}
}

var problemFlag = &cli.StringFlag{
	Name:     "problem",
	Aliases:  []string{"p"},
	Required: true,
	Usage:    "specify the input problem file (yaml or json)",
}

var outFlag = &cli.StringFlag{
	Name:     "out",
	Aliases:  []string{"o"},
	Required: false,
	Usage:    "specify the output result.json, stdout if empty",
}

var evaluateCmd = &cli.Command{
	Name:    "evaluate",
	Usage:   "Match one proposal order and report its objective",
	Aliases: []string{"e"},
	Flags: []cli.Flag{
		problemFlag,
		outFlag,
		&cli.StringFlag{
			Name:  "order",
			Usage: "specify the proposal order, e.g. 2,0,1 (identity if empty)",
		},
		&cli.StringFlag{
			Name:  "priorities",
			Usage: "specify the priority vector of a priority variant, e.g. 0.3,0.9,0.1",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			problemFile = ctx.String("problem")
			outFile     = ctx.String("out")
			order       = ctx.String("order")
			priorities  = ctx.String("priorities")
		)
		return doEvaluate(problemFile, outFile, order, priorities)
	},
}

var sampleCmd = &cli.Command{
	Name:    "sample",
	Usage:   "Evaluate seeded random candidates in parallel and report the best",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		problemFlag,
		outFlag,
		&cli.IntFlag{
			Name:  "n",
			Value: 100,
			Usage: "specify the number of candidates",
		},
		&cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "specify the random seed",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "specify the number of parallel evaluations (0 means all cores)",
		},
		&cli.IntFlag{
			Name:  "top",
			Value: 1,
			Usage: "specify how many of the best candidates to report",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			problemFile = ctx.String("problem")
			outFile     = ctx.String("out")
			n           = ctx.Int("n")
			seed        = ctx.Int64("seed")
			workers     = ctx.Int("workers")
			top         = ctx.Int("top")
		)
		if n <= 0 {
			return fmt.Errorf("invalid n %d", n)
		}
		if top <= 0 {
			return fmt.Errorf("invalid top %d", top)
		}
		return doSample(ctx.Context, problemFile, outFile, n, seed, workers, top)
	},
}
