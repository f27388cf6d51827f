package bitvec

import (
	"fmt"
	"strings"

	"github.com/rcornwell/asmvalue/value"
)

func hexDigit(c byte) (uint32, bool) {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0'), true
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return uint32(c-'A') + 10, true
	}
	return 0, false
}

// FromHexString parses a run of hex digits (each worth 4 bits of
// width), `_` accepted as a separator, most significant digit first.
// Returns the parsed non-inverted vector, bytes consumed (including
// separators) and digit count.
func FromHexString(s []byte) (val *Bits, consumed, digits int) {
	var nibbles []uint32
	i := 0
	for i < len(s) {
		if s[i] == '_' {
			i++
			continue
		}
		d, ok := hexDigit(s[i])
		if !ok {
			break
		}
		nibbles = append(nibbles, d)
		digits++
		i++
	}
	if digits == 0 {
		return Empty(false), 0, 0
	}
	width := digits * 4
	limbCount := (width + 31) / 32
	limbs := make([]uint32, limbCount)
	// nibbles[0] is the most significant; position from the low end.
	for k, d := range nibbles {
		bitpos := (len(nibbles) - 1 - k) * 4
		limbs[bitpos/32] |= d << uint(bitpos%32)
	}
	return normalizeBits(width, false, limbs), i, digits
}

// FromBinString parses a run of '0'/'1' digits (each worth 1 bit of
// width), `_` accepted as a separator, most significant digit first.
func FromBinString(s []byte) (val *Bits, consumed, digits int) {
	var bits []uint32
	i := 0
	for i < len(s) {
		if s[i] == '_' {
			i++
			continue
		}
		if s[i] != '0' && s[i] != '1' {
			break
		}
		bits = append(bits, uint32(s[i]-'0'))
		digits++
		i++
	}
	if digits == 0 {
		return Empty(false), 0, 0
	}
	width := digits
	limbs := make([]uint32, (width+31)/32)
	for k, d := range bits {
		bitpos := len(bits) - 1 - k
		if d == 1 {
			setBit(limbs, bitpos)
		}
	}
	return normalizeBits(width, false, limbs), i, digits
}

// Repr implements value.Obj, rendering $HEX when the width is a
// multiple of 4 and %BIN otherwise (a `~` prefix marks the inverted
// form), per §4.3, truncating with an error past maxChars the same
// way bignum.Int.Repr does (maxChars <= 0 means unbounded).
func (b *Bits) Repr(maxChars int) (string, error) {
	base := 16
	if b.width%4 != 0 {
		base = 2
	}
	out := b.ReprBase(base)
	if maxChars > 0 && len(out) > maxChars {
		return "", &value.ArithmeticError{Kind: value.ErrBigString}
	}
	return out, nil
}

// ReprBase renders the vector in base 16 ($HEX) or base 2 (%BIN); any
// other base falls back to hex.
func (b *Bits) ReprBase(base int) string {
	var sb strings.Builder
	if b.inv {
		sb.WriteByte('~')
	}
	if base == 16 {
		sb.WriteByte('$')
	} else {
		sb.WriteByte('%')
	}
	if b.width == 0 {
		sb.WriteByte('0')
		return sb.String()
	}
	if base == 16 {
		digits := (b.width + 3) / 4
		lm := b.limbs()
		for d := digits - 1; d >= 0; d-- {
			bitpos := d * 4
			idx := bitpos / 32
			var limb uint32
			if idx < len(lm) {
				limb = lm[idx]
			}
			nibble := (limb >> uint(bitpos%32)) & 0xf
			fmt.Fprintf(&sb, "%x", nibble)
		}
		return sb.String()
	}
	for i := b.width - 1; i >= 0; i-- {
		sb.WriteByte(byte('0' + bitAt(b, i)))
	}
	return sb.String()
}
