// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"fmt"
	"math"
	"strings"

	"github.com/PaesslerAG/gval"
)

var language = gval.NewLanguage(
	gval.Arithmetic(),
	unary("sqrt", math.Sqrt),
	unary("log", math.Log),
	unary("log2", math.Log2),
	unary("log10", math.Log10),
	unary("cbrt", math.Cbrt),
	unary("sin", math.Sin),
	unary("cos", math.Cos),
	unary("tan", math.Tan),
	unary("ceil", math.Ceil),
	unary("floor", math.Floor),
	unary("abs", math.Abs),
)

func unary(name string, f func(float64) float64) gval.Language {
	return gval.Function(name, func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(args))
		}
		x, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s expects a number, got %T", name, args[0])
		}
		return f(x), nil
	})
}

// Expression is a compiled fitness or payoff expression. It is immutable and
// safe for concurrent use.
type Expression struct {
	src string

	agg   Aggregation
	isAgg bool

	toks []token
}

// Compile parses expr and checks everything that does not depend on the
// bound vectors: balanced parentheses, operator placement, literal division
// by zero, known tokens and SIGMA structure.
func Compile(expr string) (*Expression, error) {
	if a, ok := ParseAggregation(expr); ok {
		return &Expression{src: expr, agg: a, isAgg: true}, nil
	}

	toks, err := scan(expr, 0, len(expr))
	if err != nil {
		return nil, err
	}
	if err := checkSyntax(toks, false); err != nil {
		return nil, err
	}
	return &Expression{src: expr, toks: toks}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Expression {
	e, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Evaluate compiles and evaluates expr once.
func Evaluate(expr string, vars Vars) (float64, error) {
	e, err := Compile(expr)
	if err != nil {
		return 0, err
	}
	return e.Evaluate(vars)
}

func (e *Expression) String() string { return e.src }

// Aggregation reports the default keyword e reduces to, if any.
func (e *Expression) Aggregation() (Aggregation, bool) { return e.agg, e.isAgg }

// Validate checks every token against the families and lengths of vars.
func (e *Expression) Validate(vars Vars) error {
	if e.isAgg {
		return nil
	}
	return checkVars(e.toks, vars, 0)
}

// Evaluate computes the expression over vars, rounded to Precision. An
// expression that is mathematically undefined for these values (a negative
// square root, a division by a zero-valued subexpression) yields NaN or an
// infinity rather than an error.
func (e *Expression) Evaluate(vars Vars) (float64, error) {
	if e.isAgg {
		return e.agg.Apply(vars.Values()), nil
	}
	if err := e.Validate(vars); err != nil {
		return 0, err
	}

	s, undefined, err := e.substitute(e.toks, vars, -1)
	if err != nil {
		return 0, err
	}
	if undefined {
		return math.NaN(), nil
	}
	return e.run(s)
}

// substitute renders toks as a purely numeric expression.
func (e *Expression) substitute(toks []token, vars Vars, member int) (string, bool, error) {
	pieces := make([]token, 0, len(toks))
	for _, t := range toks {
		switch {
		case t.kind == kindSigma:
			members := vars.members(sigmaSet(t.body))
			parts := make([]float64, 0, len(members))
			for _, m := range members {
				s, undefined, err := e.substitute(t.body, vars, m)
				if err != nil || undefined {
					return "", undefined, err
				}
				f, err := e.run(s)
				if err != nil {
					return "", false, err
				}
				parts = append(parts, f)
			}
			sum := SumFixed(parts)
			if math.IsNaN(sum) || math.IsInf(sum, 0) {
				return "", true, nil
			}
			pieces = append(pieces, token{kind: kindNumber, text: "(" + format(sum) + ")"})

		case t.kind.isVariable():
			v := vars.value(t, member)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return "", true, nil
			}
			pieces = append(pieces, token{kind: kindNumber, text: "(" + format(v) + ")"})

		default:
			pieces = append(pieces, t)
		}
	}

	r := &renderer{toks: pieces}
	return r.expr(), false, nil
}

// renderer rewrites checked tokens for gval, parenthesizing every power so
// that ^ groups right to left and binds tighter than a leading minus:
// 2^3^2 is 2^(3^2) and -2^2 is -(2^2).
type renderer struct {
	toks []token
	i    int
}

func (r *renderer) peek() (token, bool) {
	if r.i >= len(r.toks) {
		return token{}, false
	}
	return r.toks[r.i], true
}

func (r *renderer) expr() string {
	var b strings.Builder
	b.WriteString(r.unary())
	for {
		t, ok := r.peek()
		if !ok || t.kind != kindOperator {
			return b.String()
		}
		r.i++
		b.WriteString(" " + t.text + " ")
		b.WriteString(r.unary())
	}
}

func (r *renderer) unary() string {
	if t, ok := r.peek(); ok && t.kind == kindOperator && t.text == "-" {
		r.i++
		return "(-" + r.unary() + ")"
	}
	return r.power()
}

func (r *renderer) power() string {
	base := r.primary()
	if t, ok := r.peek(); ok && t.kind == kindOperator && t.text == "^" {
		r.i++
		return "(" + base + " ** " + r.unary() + ")"
	}
	return base
}

func (r *renderer) primary() string {
	t, ok := r.peek()
	if !ok {
		return ""
	}
	r.i++
	switch t.kind {
	case kindLParen:
		inner := r.expr()
		r.i++ // )
		return "(" + inner + ")"
	case kindFunc:
		r.i++ // (
		inner := r.expr()
		r.i++ // )
		return t.text + "(" + inner + ")"
	}
	return t.text
}

func (e *Expression) run(s string) (float64, error) {
	v, err := language.Evaluate(s, nil)
	if err != nil {
		return 0, &Error{Token: e.src, Pos: -1, Err: fmt.Errorf("%w: %v", ErrEvaluate, err)}
	}
	f, ok := v.(float64)
	if !ok {
		return 0, &Error{Token: e.src, Pos: -1, Err: fmt.Errorf("%w: non-numeric result %T", ErrEvaluate, v)}
	}
	return Fixed(f), nil
}

func checkSyntax(toks []token, inSigma bool) error {
	if len(toks) == 0 {
		return newError(ErrEmptyExpression, "", -1)
	}

	var prev *token
	for i := range toks {
		t := &toks[i]
		switch t.kind {
		case kindOperator:
			switch {
			case prev == nil || prev.kind == kindLParen:
				if t.text != "-" {
					return newError(ErrSyntax, t.text, t.pos)
				}
			case prev.kind == kindOperator:
				return newError(ErrAdjacentOperators, prev.text+t.text, prev.pos)
			case prev.kind == kindFunc:
				return newError(ErrSyntax, t.text, t.pos)
			}
			if t.text == "/" {
				if zero, ok := zeroDivisor(toks[i+1:]); ok {
					return newError(ErrDivisionByZero, zero.text, zero.pos)
				}
			}

		case kindRParen:
			if prev == nil || !prev.kind.isOperand() {
				return newError(ErrSyntax, t.text, t.pos)
			}

		default:
			if prev != nil && prev.kind.isOperand() {
				return newError(ErrSyntax, t.text, t.pos)
			}
			if prev != nil && prev.kind == kindFunc && t.kind != kindLParen {
				return newError(ErrSyntax, prev.text, prev.pos)
			}
			if t.kind.member() && !inSigma {
				return newError(ErrContext, t.text, t.pos)
			}
			if t.kind == kindSigma {
				if inSigma {
					return newError(ErrContext, t.text, t.pos)
				}
				if err := checkSyntax(t.body, true); err != nil {
					return err
				}
				if err := checkSigmaSet(t); err != nil {
					return err
				}
			}
		}
		prev = t
	}

	switch prev.kind {
	case kindOperator, kindFunc, kindLParen:
		return newError(ErrSyntax, prev.text, prev.pos)
	}
	return nil
}

// zeroDivisor finds a literal zero divisor, also when it is wrapped in
// parentheses as in (0) or ((0.0)).
func zeroDivisor(toks []token) (token, bool) {
	depth := 0
	for depth < len(toks) && toks[depth].kind == kindLParen {
		depth++
	}
	if depth >= len(toks) || toks[depth].kind != kindNumber || toks[depth].num != 0 {
		return token{}, false
	}
	zero := toks[depth]
	if len(toks) < 2*depth+1 {
		return token{}, false
	}
	for _, t := range toks[depth+1 : 2*depth+1] {
		if t.kind != kindRParen {
			return token{}, false
		}
	}
	return zero, true
}

// checkSigmaSet requires exactly one set to be named inside a SIGMA body.
func checkSigmaSet(sigma *token) error {
	set := sigmaSet(sigma.body)
	if set == 0 {
		return newError(ErrContext, sigma.text, sigma.pos)
	}
	for _, t := range sigma.body {
		if t.kind == kindSet && t.idx[0] != set {
			return newError(ErrContext, t.text, t.pos)
		}
	}
	return nil
}

func sigmaSet(body []token) int {
	for _, t := range body {
		if t.kind == kindSet {
			return t.idx[0]
		}
	}
	return 0
}

func checkVars(toks []token, vars Vars, set int) error {
	for _, t := range toks {
		switch {
		case t.kind == kindSigma:
			s := sigmaSet(t.body)
			if err := vars.check(token{kind: kindSet, text: t.text, pos: t.pos, idx: [2]int{s}}, 0); err != nil {
				return err
			}
			if err := checkVars(t.body, vars, s); err != nil {
				return err
			}
		case t.kind.isVariable():
			if err := vars.check(t, set); err != nil {
				return err
			}
		}
	}
	return nil
}
