/*
 * asmvalue - Operator dispatch: the binary/unary operator protocol.
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

// Package oper implements the binary/unary operator protocol shared
// by every value type: operator codes, the operator record passed to
// Calc1/Calc2/RCalc2, and the dispatcher that routes a pair of
// operands through left-hand, then right-hand, implementations.
package oper

import "github.com/rcornwell/asmvalue/value"

// Op identifies an operator. Values double as both the binary and
// unary set; which ones a type recognizes is up to its Calc1/Calc2.
type Op int

const (
	OAdd Op = iota
	OSub
	OMul
	ODiv
	OMod
	OPow
	OLshift
	ORshift
	OAnd
	OOr
	OXor
	OConcat
	ORepeat
	OEq
	ONe
	OLt
	OLe
	OGt
	OGe
	OCmp
	OMin
	OMax
	OLand
	OLor
	OMember
	OIn
	// unary
	ONeg
	OPos
	OInv
	OLnot
	OString
	OBank
	OHigher
	OLower
	OHword
	OWord
	OBSWord
)

func (o Op) String() string {
	names := [...]string{
		"+", "-", "*", "/", "%", "**", "<<", ">>", "&", "|", "^", "++", "*",
		"==", "!=", "<", "<=", ">", ">=", "<=>", "min", "max", "&&", "||", ".", "in",
		"u-", "u+", "~", "!", "str", "bank", "^", "<", "hword", "word", "bsword",
	}
	if int(o) < 0 || int(o) >= len(names) {
		return "?"
	}
	return names[o]
}

// Record is the operator record the dispatcher threads through
// Calc1/Calc2/RCalc2: the operator, both operands (V2 nil for unary),
// an in-place optimization hint, and source locations for diagnostics.
type Record struct {
	Op      Op
	V1, V2  value.Obj
	Inplace bool
	Epoint1 int
	Epoint2 int
}

// StrictBool, when true, makes Dispatch emit a diagnostic through
// Diagnostic whenever a non-boolean operand is tested for truth by
// && or ||.
var StrictBool = false

// Diagnostic receives non-fatal diagnostics (strict_bool, deprecated
// shifts, case mismatches). Callers set it to route messages into
// their logger; nil discards them.
var Diagnostic func(kind, msg string)

func diag(kind, msg string) {
	if Diagnostic != nil {
		Diagnostic(kind, msg)
	}
}

// Dispatch implements §4.1's binary operator protocol:
//  1. && / || short-circuit on L's truthiness.
//  2. None/Error operands propagate.
//  3. L.Calc2(op, R); on ErrNotApplicable, R.RCalc2(op, L).
//  4. Neither handles it: a TypeError naming both operand types.
func Dispatch(rec Record) (value.Obj, error) {
	l, r := rec.V1, rec.V2

	if rec.Op == OLand || rec.Op == OLor {
		return shortCircuit(rec)
	}

	if r != nil && (r.Type() == value.TNone || r.Type() == value.TError) {
		return r, nil
	}

	if c2, ok := l.(value.Calc2); ok {
		v, err := c2.Calc2(int(rec.Op), r)
		if err != value.ErrNotApplicable {
			return v, err
		}
	}
	if r != nil {
		if rc2, ok := r.(value.RCalc2); ok {
			v, err := rc2.RCalc2(int(rec.Op), l)
			if err != value.ErrNotApplicable {
				return v, err
			}
		}
	}
	rt := value.TNone
	if r != nil {
		rt = r.Type()
	}
	return nil, &value.TypeError{Op: rec.Op.String(), Left: l.Type(), Right: rt}
}

func shortCircuit(rec Record) (value.Obj, error) {
	lt, err := truthOf(rec.V1)
	if err != nil {
		return nil, err
	}
	if rec.Op == OLand && !lt {
		return rec.V1, nil
	}
	if rec.Op == OLor && lt {
		return rec.V1, nil
	}
	return rec.V2, nil
}

func truthOf(v value.Obj) (bool, error) {
	if StrictBool && v.Type() != value.TBool {
		diag("strict_bool", "operand of && / || is not boolean")
	}
	return v.Truth(value.TruthDefault)
}

// Unary applies a unary operator via Calc1, mirroring Dispatch's
// propagation rule for None/Error operands.
func Unary(op Op, v value.Obj) (value.Obj, error) {
	if v.Type() == value.TNone || v.Type() == value.TError {
		return v, nil
	}
	if c1, ok := v.(value.Calc1); ok {
		r, err := c1.Calc1(int(op))
		if err != value.ErrNotApplicable {
			return r, err
		}
	}
	return nil, &value.TypeError{Op: op.String(), Left: v.Type(), HaveOnly: true}
}
