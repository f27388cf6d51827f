/*
 * asmvalue - Expression evaluator: turns source text into a value.Obj.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package eval is a small recursive-descent expression evaluator for
// the dynamic value language value/... implements. It sits outside
// the core value model on purpose - §6 of the governing design keeps
// the core free of any parser or CLI surface - and exists only to
// give the driver binaries in cmd/ something to feed user input
// through: it builds value.Obj literals (bignum.Int, bitvec.Bits) and
// threads every operator through value/oper.Dispatch exactly the way
// a full assembler's expression grammar would.
package eval

import (
	"fmt"
	"strings"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
	"github.com/rcornwell/asmvalue/value/bitvec"
	"github.com/rcornwell/asmvalue/value/namespace"
	"github.com/rcornwell/asmvalue/value/oper"
)

// Env is the evaluation context an expression resolves identifiers
// against.
type Env struct {
	Names *namespace.Namespace
	Pass  namespace.PassState
	None  value.Obj
}

// Eval parses and evaluates src, returning the resulting value.Obj.
func Eval(src string, env *Env) (value.Obj, error) {
	p := &parser{src: src, env: env}
	p.next()
	v, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok != tokEOF {
		return nil, fmt.Errorf("unexpected token %q", p.text)
	}
	return v, nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type parser struct {
	src  string
	pos  int
	env  *Env
	tok  tokKind
	text string
}

func (p *parser) next() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
	if p.pos >= len(p.src) {
		p.tok, p.text = tokEOF, ""
		return
	}
	c := p.src[p.pos]
	switch {
	case c == '(':
		p.tok, p.text = tokLParen, "("
		p.pos++
	case c == ')':
		p.tok, p.text = tokRParen, ")"
		p.pos++
	case c == '$' || c == '%' || isDigit(c):
		p.scanNumber()
	case isIdentStart(c):
		p.scanIdent()
	default:
		p.scanOp()
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

func (p *parser) scanNumber() {
	start := p.pos
	p.pos++
	for p.pos < len(p.src) && (isIdentCont(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	p.tok, p.text = tokNumber, p.src[start:p.pos]
}

func (p *parser) scanIdent() {
	start := p.pos
	for p.pos < len(p.src) && isIdentCont(p.src[p.pos]) {
		p.pos++
	}
	p.tok, p.text = tokIdent, p.src[start:p.pos]
}

var twoCharOps = []string{"<<", ">>", "==", "!=", "<=", ">=", "&&", "||"}

func (p *parser) scanOp() {
	rest := p.src[p.pos:]
	for _, op := range twoCharOps {
		if strings.HasPrefix(rest, op) {
			p.tok, p.text = tokOp, op
			p.pos += len(op)
			return
		}
	}
	p.tok, p.text = tokOp, string(p.src[p.pos])
	p.pos++
}

func (p *parser) expectOp(s string) bool {
	return p.tok == tokOp && p.text == s
}

// parseOr .. parseUnary implement the classic precedence chain:
// || , && , bitwise or/xor/and, comparisons, shift, add/sub,
// mul/div/mod, unary, primary.
func (p *parser) parseOr() (value.Obj, error) {
	return p.binary([]string{"||"}, []oper.Op{oper.OLor}, p.parseAnd)
}

func (p *parser) parseAnd() (value.Obj, error) {
	return p.binary([]string{"&&"}, []oper.Op{oper.OLand}, p.parseBitOr)
}

func (p *parser) parseBitOr() (value.Obj, error) {
	return p.binary([]string{"|", "^"}, []oper.Op{oper.OOr, oper.OXor}, p.parseBitAnd)
}

func (p *parser) parseBitAnd() (value.Obj, error) {
	return p.binary([]string{"&"}, []oper.Op{oper.OAnd}, p.parseCompare)
}

func (p *parser) parseCompare() (value.Obj, error) {
	return p.binary(
		[]string{"==", "!=", "<=", ">=", "<", ">"},
		[]oper.Op{oper.OEq, oper.ONe, oper.OLe, oper.OGe, oper.OLt, oper.OGt},
		p.parseShift)
}

func (p *parser) parseShift() (value.Obj, error) {
	return p.binary([]string{"<<", ">>"}, []oper.Op{oper.OLshift, oper.ORshift}, p.parseAdd)
}

func (p *parser) parseAdd() (value.Obj, error) {
	return p.binary([]string{"+", "-"}, []oper.Op{oper.OAdd, oper.OSub}, p.parseMul)
}

func (p *parser) parseMul() (value.Obj, error) {
	return p.binary([]string{"*", "/", "%"}, []oper.Op{oper.OMul, oper.ODiv, oper.OMod}, p.parseUnary)
}

func (p *parser) binary(ops []string, codes []oper.Op, next func() (value.Obj, error)) (value.Obj, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		matched := -1
		if p.tok == tokOp {
			for i, op := range ops {
				if p.text == op {
					matched = i
					break
				}
			}
		}
		if matched < 0 {
			return left, nil
		}
		p.next()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left, err = oper.Dispatch(oper.Record{Op: codes[matched], V1: left, V2: right})
		if err != nil {
			return nil, err
		}
	}
}

func (p *parser) parseUnary() (value.Obj, error) {
	if p.tok == tokOp && (p.text == "-" || p.text == "+" || p.text == "~" || p.text == "!") {
		op := p.text
		p.next()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		code := map[string]oper.Op{"-": oper.ONeg, "+": oper.OPos, "~": oper.OInv, "!": oper.OLnot}[op]
		return oper.Unary(code, v)
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (value.Obj, error) {
	switch p.tok {
	case tokLParen:
		p.next()
		v, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok != tokRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		p.next()
		return v, nil
	case tokNumber:
		v, err := p.parseLiteral(p.text)
		if err != nil {
			return nil, err
		}
		p.next()
		return v, nil
	case tokIdent:
		name := p.text
		p.next()
		if p.env == nil || p.env.Names == nil {
			return nil, fmt.Errorf("undefined identifier %q", name)
		}
		return p.env.Names.Member(namespace.Ident{Name: name, Reference: true}, p.env.Pass, p.env.None, false)
	default:
		return nil, fmt.Errorf("unexpected token %q", p.text)
	}
}

func (p *parser) parseLiteral(text string) (value.Obj, error) {
	switch text[0] {
	case '$':
		v, _, _ := bitvec.FromHexString([]byte(text[1:]))
		if v == nil {
			return nil, fmt.Errorf("invalid hex literal %q", text)
		}
		return v, nil
	case '%':
		v, _, _ := bitvec.FromBinString([]byte(text[1:]))
		if v == nil {
			return nil, fmt.Errorf("invalid binary literal %q", text)
		}
		return v, nil
	default:
		v, consumed, _ := bignum.FromDecString([]byte(text))
		if v == nil || consumed != len(text) {
			return nil, fmt.Errorf("invalid integer literal %q", text)
		}
		return v, nil
	}
}
