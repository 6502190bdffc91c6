// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fitness

import (
	"regexp"
	"strconv"
	"unicode"
)

type kind int

const (
	kindNumber kind = iota
	kindOperator
	kindLParen
	kindRParen
	kindFunc

	kindSatisfaction   // M#
	kindSet            // S#
	kindProperty       // P#
	kindWeight         // W#
	kindRequirement    // R#
	kindOwnProperty    // p#
	kindPlayerProperty // P#p#
	kindPayoff         // u#

	kindSigma
)

func (k kind) isVariable() bool {
	return k >= kindSatisfaction && k <= kindPayoff
}

func (k kind) isOperand() bool {
	return k == kindNumber || k == kindRParen || k == kindSigma || k.isVariable()
}

// member reports whether the token needs a current SIGMA member.
func (k kind) member() bool {
	return k == kindProperty || k == kindWeight || k == kindRequirement
}

type token struct {
	kind kind
	text string
	pos  int

	num float64
	idx [2]int // 1-based

	body []token // kindSigma
}

var functions = map[string]bool{
	"sqrt": true, "log": true, "log2": true, "log10": true, "cbrt": true,
	"sin": true, "cos": true, "tan": true,
	"ceil": true, "floor": true, "abs": true,
}

var variablePatterns = []struct {
	re   *regexp.Regexp
	kind kind
}{
	{regexp.MustCompile(`^M(\d+)$`), kindSatisfaction},
	{regexp.MustCompile(`^S(\d+)$`), kindSet},
	{regexp.MustCompile(`^P(\d+)p(\d+)$`), kindPlayerProperty},
	{regexp.MustCompile(`^P(\d+)$`), kindProperty},
	{regexp.MustCompile(`^W(\d+)$`), kindWeight},
	{regexp.MustCompile(`^R(\d+)$`), kindRequirement},
	{regexp.MustCompile(`^p(\d+)$`), kindOwnProperty},
	{regexp.MustCompile(`^u(\d+)$`), kindPayoff},
}

const sigmaKeyword = "SIGMA"

// scan splits src[start:end] into tokens. Positions are offsets into src.
func scan(src string, start, end int) ([]token, error) {
	var (
		toks   []token
		parens []int
	)

	for i := start; i < end; {
		c := rune(src[i])
		switch {
		case unicode.IsSpace(c):
			i++

		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < end && (src[j] >= '0' && src[j] <= '9' || src[j] == '.') {
				j++
			}
			text := src[i:j]
			f, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, newError(ErrSyntax, text, i)
			}
			toks = append(toks, token{kind: kindNumber, text: text, pos: i, num: f})
			i = j

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			toks = append(toks, token{kind: kindOperator, text: string(c), pos: i})
			i++

		case c == '(':
			parens = append(parens, i)
			toks = append(toks, token{kind: kindLParen, text: "(", pos: i})
			i++

		case c == ')':
			if len(parens) == 0 {
				return nil, newError(ErrUnbalanced, ")", i)
			}
			parens = parens[:len(parens)-1]
			toks = append(toks, token{kind: kindRParen, text: ")", pos: i})
			i++

		case unicode.IsLetter(c):
			j := i
			for j < end && (unicode.IsLetter(rune(src[j])) || unicode.IsDigit(rune(src[j]))) {
				j++
			}
			word := src[i:j]

			if word == sigmaKeyword {
				tok, next, err := scanSigma(src, i, j, end)
				if err != nil {
					return nil, err
				}
				toks = append(toks, tok)
				i = next
				continue
			}

			tok, err := classify(word, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = j

		case c == '{' || c == '}':
			return nil, newError(ErrUnbalanced, string(c), i)

		default:
			return nil, newError(ErrUnknownToken, string(c), i)
		}
	}

	if len(parens) > 0 {
		return nil, newError(ErrUnbalanced, "(", parens[0])
	}
	return toks, nil
}

// scanSigma reads the braced body following the SIGMA keyword at src[at:kwEnd].
func scanSigma(src string, at, kwEnd, end int) (token, int, error) {
	open := kwEnd
	for open < end && unicode.IsSpace(rune(src[open])) {
		open++
	}
	if open >= end || src[open] != '{' {
		return token{}, 0, newError(ErrSyntax, sigmaKeyword, at)
	}

	depth := 0
	for k := open; k < end; k++ {
		switch src[k] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				body, err := scan(src, open+1, k)
				if err != nil {
					return token{}, 0, err
				}
				tok := token{kind: kindSigma, text: src[at : k+1], pos: at, body: body}
				return tok, k + 1, nil
			}
		}
	}
	return token{}, 0, newError(ErrUnbalanced, "{", open)
}

func classify(word string, pos int) (token, error) {
	if functions[word] {
		return token{kind: kindFunc, text: word, pos: pos}, nil
	}

	for _, p := range variablePatterns {
		m := p.re.FindStringSubmatch(word)
		if m == nil {
			continue
		}
		tok := token{kind: p.kind, text: word, pos: pos}
		for n, s := range m[1:] {
			v, err := strconv.Atoi(s)
			if err != nil {
				return token{}, newError(ErrIndexOutOfRange, word, pos)
			}
			tok.idx[n] = v
		}
		return tok, nil
	}

	return token{}, newError(ErrUnknownToken, word, pos)
}
