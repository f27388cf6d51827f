package bignum

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rcornwell/asmvalue/value"
)

// BitsLike is the minimal view of a bit-vector FromBits needs. It is
// satisfied structurally by *bitvec.Bits without bignum importing
// bitvec, keeping the dependency one-directional (bitvec depends on
// bignum, not the reverse).
type BitsLike interface {
	RawLimbs() []uint32
	Inverted() bool
}

// FromBits drops the explicit width but honors inversion: a
// non-inverted vector converts to its raw magnitude; an inverted one
// converts to -(raw+1), the two's-complement logical value, per §4.2.
func FromBits(b BitsLike) *Int {
	mag := normalize(false, b.RawLimbs())
	if !b.Inverted() {
		return mag
	}
	return Add(mag, oneInt).Neg()
}

// FromBytes packs little-endian unsigned bytes into limbs.
func FromBytes(b []byte) *Int {
	if len(b) == 0 {
		return zeroInt
	}
	limbs := make([]uint32, (len(b)+3)/4)
	for i, bb := range b {
		limbs[i/4] |= uint32(bb) << uint((i%4)*8)
	}
	return normalize(false, limbs)
}

// Limbs returns a defensive copy of the magnitude's little-endian
// limbs (sign discarded), for packages that build their own
// representation from an Int's magnitude.
func (x *Int) Limbs() []uint32 {
	return append([]uint32(nil), x.limbs()...)
}

// BitLen returns the number of bits needed to hold the magnitude (0
// for zero).
func (x *Int) BitLen() int {
	lm := x.limbs()
	if len(lm) == 0 {
		return 0
	}
	top := lm[len(lm)-1]
	bits := (len(lm)-1)*32 + 32
	for top&0x80000000 == 0 {
		top <<= 1
		bits--
	}
	return bits
}

// ToUint64 returns the low 64 bits of the magnitude, for callers that
// have already bounds-checked via Uval/Ival.
func (x *Int) ToUint64() uint64 {
	lm := x.limbs()
	n := len(lm)
	if n > 2 {
		n = 2
	}
	var v uint64
	for i := n - 1; i >= 0; i-- {
		v = v<<32 | uint64(lm[i])
	}
	return v
}

func (x *Int) fits(bits int) bool {
	lm := x.limbs()
	if len(lm) > 2 {
		return false
	}
	if bits >= 64 {
		return true
	}
	return x.ToUint64() < (uint64(1) << uint(bits))
}

// Uval bounds-extracts an unsigned value of the given bit width.
func (x *Int) Uval(bits int) (uint64, error) {
	if x.neg {
		return 0, &value.ConversionError{Kind: value.ErrConversion, Bits: bits, Value: x.mustRepr()}
	}
	if !x.fits(bits) {
		return 0, &value.ConversionError{Kind: value.ErrConversion, Bits: bits, Value: x.mustRepr()}
	}
	return x.ToUint64(), nil
}

// Ival bounds-extracts a signed value of the given bit width.
func (x *Int) Ival(bits int) (int64, error) {
	if x.n == 0 {
		return 0, nil
	}
	lm := x.limbs()
	if len(lm) > 2 {
		return 0, &value.ConversionError{Kind: value.ErrConversion, Bits: bits, Value: x.mustRepr()}
	}
	v := x.ToUint64()
	limit := uint64(1) << uint(bits-1)
	if x.neg {
		if bits < 64 && v > limit {
			return 0, &value.ConversionError{Kind: value.ErrConversion, Bits: bits, Value: x.mustRepr()}
		}
		return -int64(v), nil
	}
	if bits < 64 && v >= limit {
		return 0, &value.ConversionError{Kind: value.ErrConversion, Bits: bits, Value: x.mustRepr()}
	}
	return int64(v), nil
}

func (x *Int) mustRepr() string {
	s, _ := x.Repr(0)
	return s
}

// FromDecString parses a run of 0-9 digits separated by `_`,
// processing 9 decimal digits per chunk (multiplying the accumulator
// by 10^9 each chunk) per §4.2. Returns the parsed value, the number
// of source bytes consumed (including separators), and the digit
// count.
func FromDecString(s []byte) (val *Int, consumed, digits int) {
	const chunkSize = 9
	acc := zeroInt
	var chunkVal uint64
	chunkLen := 0
	i := 0
	for i < len(s) {
		c := s[i]
		if c == '_' {
			i++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		chunkVal = chunkVal*10 + uint64(c-'0')
		chunkLen++
		digits++
		i++
		if chunkLen == chunkSize {
			acc = Add(Mul(acc, FromUint64(1000000000)), FromUint64(chunkVal))
			chunkVal, chunkLen = 0, 0
		}
	}
	if chunkLen > 0 {
		p := uint64(1)
		for j := 0; j < chunkLen; j++ {
			p *= 10
		}
		acc = Add(Mul(acc, FromUint64(p)), FromUint64(chunkVal))
	}
	return acc, i, digits
}

// Repr renders the value in base 10, chunked by 10^9 per division
// step, negative sign prefixed. maxChars <= 0 means unbounded.
func (x *Int) Repr(maxChars int) (string, error) {
	if x.n == 0 {
		return "0", nil
	}
	billion := FromUint64(1000000000)
	cur := x.Absolute()
	var chunks []uint32
	for !cur.IsZero() {
		q, r, _ := DivMod(cur, billion)
		chunks = append(chunks, uint32(r.ToUint64()))
		cur = q
	}
	var sb strings.Builder
	if x.neg {
		sb.WriteByte('-')
	}
	for i := len(chunks) - 1; i >= 0; i-- {
		if i == len(chunks)-1 {
			sb.WriteString(strconv.FormatUint(uint64(chunks[i]), 10))
		} else {
			fmt.Fprintf(&sb, "%09d", chunks[i])
		}
	}
	out := sb.String()
	if maxChars > 0 && len(out) > maxChars {
		return "", &value.ArithmeticError{Kind: value.ErrBigString}
	}
	return out, nil
}
