/*
 * asmvalue - Arbitrary-width bit-vectors with inverted (one's
 * complement) representation.
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

// Package bitvec implements the bit-vector engine: explicit-width
// values carrying an inversion flag that stands in for an infinite
// run of one-bits above the stored width, per §4.3 of the value-system
// design. It depends on value/bignum (for int_from_bits/bits_from_int
// round-tripping) but bignum does not depend on it back; the
// dependency is one-directional through the bignum.BitsLike interface.
package bitvec

import (
	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
)

const inlineLimbs = 2

// Bits is an explicit-width bit-vector. Width and the inversion flag
// are both carried out of band from the limbs: the stored limbs are
// always the "raw" (pre-complement) bits, and the most significant
// used limb is never 0 (the all-ones high fill lives only in inv, not
// the limbs).
type Bits struct {
	width int
	inv   bool
	n     int
	inl   [inlineLimbs]uint32
	heap  []uint32
}

var (
	nullBits = &Bits{width: 0, inv: false}
	invBits  = &Bits{width: 0, inv: true}

	bitsValue = [2]*Bits{
		{width: 1, n: 0},
		{width: 1, n: 1, inl: [inlineLimbs]uint32{1}},
	}
)

// Empty returns the canonical width-0 singleton for the given
// inversion flag (the "nothing" and "everything" vectors).
func Empty(inv bool) *Bits {
	if inv {
		return invBits
	}
	return nullBits
}

// Bit returns the canonical width-1 singleton for a single 0 or 1 bit.
func Bit(set bool) *Bits {
	if set {
		return bitsValue[1]
	}
	return bitsValue[0]
}

func (b *Bits) limbs() []uint32 {
	if b.n <= inlineLimbs {
		return b.inl[:b.n]
	}
	return b.heap[:b.n]
}

// RawLimbs and Inverted satisfy bignum.BitsLike, letting bignum
// convert FROM a *Bits without importing this package.
func (b *Bits) RawLimbs() []uint32 { return b.limbs() }
func (b *Bits) Inverted() bool     { return b.inv }

// Width reports the explicit bit width.
func (b *Bits) Width() int { return b.width }

func maskTopLimb(limbs []uint32, width int) {
	if width%32 == 0 || len(limbs) == 0 {
		return
	}
	mask := uint32(1)<<uint(width%32) - 1
	limbs[len(limbs)-1] &= mask
}

// normalizeBits builds a canonical Bits for the given explicit width,
// masking off any bits beyond width, stripping high zero limbs, and
// collapsing width-0 values to the two singletons.
func normalizeBits(width int, inv bool, limbs []uint32) *Bits {
	limbCount := (width + 31) / 32
	if limbCount < len(limbs) {
		limbs = limbs[:limbCount]
	}
	maskTopLimb(limbs, width)
	n := len(limbs)
	for n > 0 && limbs[n-1] == 0 {
		n--
	}
	if width == 0 {
		return Empty(inv)
	}
	b := &Bits{width: width, inv: inv, n: n}
	if n <= inlineLimbs {
		copy(b.inl[:], limbs[:n])
	} else {
		b.heap = append([]uint32(nil), limbs[:n]...)
	}
	return b
}

// bitAt reads the materialized bit at position i: the stored raw bit
// if i falls within the explicit width, otherwise the inversion fill.
func bitAt(b *Bits, i int) uint32 {
	if i < b.width {
		lm := b.limbs()
		idx := i / 32
		if idx >= len(lm) {
			return 0
		}
		return (lm[idx] >> uint(i%32)) & 1
	}
	if b.inv {
		return 1
	}
	return 0
}

func setBit(limbs []uint32, i int) {
	limbs[i/32] |= 1 << uint(i%32)
}

// Type, Same, Truth, Hash and Repr implement value.Obj.
func (b *Bits) Type() value.Type { return value.TBits }

func (b *Bits) Same(o value.Obj) bool {
	other, ok := o.(*Bits)
	if !ok || b.width != other.width || b.inv != other.inv || b.n != other.n {
		return false
	}
	bl, ol := b.limbs(), other.limbs()
	for i := range bl {
		if bl[i] != ol[i] {
			return false
		}
	}
	return true
}

func allOnesWithin(b *Bits) bool {
	lm := b.limbs()
	limbCount := (b.width + 31) / 32
	for i := 0; i < limbCount; i++ {
		var want uint32 = 0xffffffff
		if i == limbCount-1 && b.width%32 != 0 {
			want = uint32(1)<<uint(b.width%32) - 1
		}
		var got uint32
		if i < len(lm) {
			got = lm[i]
		}
		if got != want {
			return false
		}
	}
	return true
}

// Truth implements the default (nonzero logical value), ANY (at least
// one materialized bit set) and ALL (every materialized bit within
// width set) truth modes.
func (b *Bits) Truth(mode value.TruthMode) (bool, error) {
	switch mode {
	case value.TruthAny:
		if !b.inv {
			return b.n != 0, nil
		}
		return !allOnesWithin(b), nil
	case value.TruthAll:
		if !b.inv {
			return b.width > 0 && allOnesWithin(b), nil
		}
		return b.n == 0, nil
	default:
		return !b.ToInt().IsZero(), nil
	}
}

// ToInt converts to the logical arbitrary-precision integer value,
// per bignum.FromBits (raw magnitude if not inverted, else -(raw+1)).
func (b *Bits) ToInt() *bignum.Int { return bignum.FromBits(b) }

// Hash coincides with the hash of the logical integer value (Open
// Question c): two values that compare equal across Int/Bits/Bool
// must hash the same, so Bits routes through Int's hash rather than
// hashing its own limbs directly.
func (b *Bits) Hash() uint32 { return b.ToInt().Hash() }

// FromInt implements bits_from_int: truncate the magnitude to the
// minimum width containing the top nonzero bit; a negative Int
// becomes the inverted form of its two's-complement magnitude minus
// one, so int_from_bits(bits_from_int(v)) == v for all v.
func FromInt(v *bignum.Int) *Bits {
	if v.Sign() >= 0 {
		return fromMagnitude(false, v)
	}
	raw := bignum.Sub(v.Absolute(), bignum.One())
	return fromMagnitude(true, raw)
}

func fromMagnitude(inv bool, mag *bignum.Int) *Bits {
	width := mag.BitLen()
	if width == 0 {
		return Empty(inv)
	}
	return normalizeBits(width, inv, mag.Limbs())
}

// FromBytes packs little-endian unsigned bytes into a non-inverted
// vector of width 8*len(b).
func FromBytes(b []byte) *Bits {
	if len(b) == 0 {
		return Empty(false)
	}
	limbs := make([]uint32, (len(b)+3)/4)
	for i, bb := range b {
		limbs[i/4] |= uint32(bb) << uint((i%4)*8)
	}
	return normalizeBits(len(b)*8, false, limbs)
}
