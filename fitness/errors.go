// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyExpression   = errors.New("fitness: empty expression")
	ErrUnbalanced        = errors.New("fitness: unbalanced parentheses")
	ErrAdjacentOperators = errors.New("fitness: adjacent operators")
	ErrDivisionByZero    = errors.New("fitness: division by zero")
	ErrIndexOutOfRange   = errors.New("fitness: token index out of range")
	ErrUnknownToken      = errors.New("fitness: unknown token")
	ErrContext           = errors.New("fitness: token not allowed here")
	ErrSyntax            = errors.New("fitness: syntax error")
	ErrEvaluate          = errors.New("fitness: evaluation failed")
)

// Error locates a problem in an expression.
type Error struct {
	Token string
	Pos   int // byte offset into the expression, -1 if unknown
	Err   error
}

func (e *Error) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%v: %q", e.Err, e.Token)
	}
	return fmt.Sprintf("%v: %q at position %d", e.Err, e.Token, e.Pos)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(err error, tok string, pos int) *Error {
	return &Error{Token: tok, Pos: pos, Err: err}
}
