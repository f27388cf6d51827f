/*
 * asmvalue - Arbitrary-precision sign-magnitude integers.
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

// Package bignum implements the integer engine: sign-magnitude
// arbitrary-precision integers over 32-bit limbs, with small-value
// inline storage, Knuth long division, and two's-complement bitwise
// simulation, per §4.2 of the value-system design.
package bignum

import (
	"github.com/rcornwell/asmvalue/value"
)

// inlineLimbs is the number of limbs (64 bits) kept in the header
// before a value escapes to a heap-allocated slice.
const inlineLimbs = 2

// Int is a sign-magnitude arbitrary-precision integer. Zero is
// uniquely represented by n == 0 (neg is always false in that case);
// the top limb (index n-1) is never zero.
type Int struct {
	neg  bool
	n    int
	inl  [inlineLimbs]uint32
	heap []uint32
}

var (
	zeroInt     = &Int{}
	oneInt      = fromLimbsTrusted(false, []uint32{1})
	minusOneInt = fromLimbsTrusted(true, []uint32{1})
)

// Zero returns the canonical zero value.
func Zero() *Int { return zeroInt }

// One returns the canonical 1 value.
func One() *Int { return oneInt }

// MinusOne returns the canonical -1 value.
func MinusOne() *Int { return minusOneInt }

func (x *Int) limbs() []uint32 {
	if x.n <= inlineLimbs {
		return x.inl[:x.n]
	}
	return x.heap[:x.n]
}

// fromLimbsTrusted builds an Int from a magnitude slice already known
// to have no leading (high) zero limb. Used only for compile-time
// constants above.
func fromLimbsTrusted(neg bool, limbs []uint32) *Int {
	x := &Int{n: len(limbs), neg: neg}
	if x.n <= inlineLimbs {
		copy(x.inl[:], limbs)
	} else {
		x.heap = limbs
	}
	return x
}

// normalize strips high zero limbs and collapses a heap buffer back
// into inline storage when it fits, per invariant 1.
func normalize(neg bool, limbs []uint32) *Int {
	n := len(limbs)
	for n > 0 && limbs[n-1] == 0 {
		n--
	}
	if n == 0 {
		return zeroInt
	}
	x := &Int{n: n, neg: neg}
	if n <= inlineLimbs {
		copy(x.inl[:], limbs[:n])
	} else {
		x.heap = append([]uint32(nil), limbs[:n]...)
	}
	return x
}

// FromInt64 converts a machine int64.
func FromInt64(v int64) *Int {
	if v == 0 {
		return zeroInt
	}
	neg := v < 0
	var u uint64
	if neg {
		u = uint64(-(v + 1)) + 1
	} else {
		u = uint64(v)
	}
	return fromUint64(neg, u)
}

// FromUint64 converts a machine uint64.
func FromUint64(v uint64) *Int { return fromUint64(false, v) }

func fromUint64(neg bool, u uint64) *Int {
	if u == 0 {
		return zeroInt
	}
	lo := uint32(u)
	hi := uint32(u >> 32)
	if hi == 0 {
		return normalize(neg, []uint32{lo})
	}
	return normalize(neg, []uint32{lo, hi})
}

// IsZero reports whether the value is zero.
func (x *Int) IsZero() bool { return x.n == 0 }

// Neg returns -x.
func (x *Int) Neg() *Int {
	if x.n == 0 {
		return x
	}
	return normalize(!x.neg, x.limbs())
}

// Sign returns -1, 0, or 1.
func (x *Int) Sign() int {
	if x.n == 0 {
		return 0
	}
	if x.neg {
		return -1
	}
	return 1
}

// Absolute returns |x|.
func (x *Int) Absolute() *Int {
	if x.n == 0 || !x.neg {
		return x
	}
	return normalize(false, x.limbs())
}

func cmpMag(a, b []uint32) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Cmp returns -1, 0, or 1 for x<y, x==y, x>y.
func (x *Int) Cmp(y *Int) int {
	if x.Sign() != y.Sign() {
		if x.Sign() < y.Sign() {
			return -1
		}
		return 1
	}
	c := cmpMag(x.limbs(), y.limbs())
	if x.neg {
		return -c
	}
	return c
}

// Same implements value.Obj: identical numeric value.
func (x *Int) Same(other value.Obj) bool {
	y, ok := other.(*Int)
	if !ok {
		return false
	}
	return x.Cmp(y) == 0
}

// Type implements value.Obj.
func (x *Int) Type() value.Type { return value.TInt }

// Truth implements value.Obj: an Int is true iff nonzero, in all
// three truth modes (it has no explicit width to distinguish ANY/ALL
// from "nonzero").
func (x *Int) Truth(value.TruthMode) (bool, error) { return x.n != 0, nil }

// Hash implements value.Obj per §4.1: the sum of limbs (sign
// applied), masked to fit a non-negative signed word.
func (x *Int) Hash() uint32 {
	var h uint32
	for _, l := range x.limbs() {
		h += l
	}
	if x.neg {
		h = -h
	}
	return h & 0x7fffffff
}
