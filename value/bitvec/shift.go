package bitvec

// Shl implements a left shift: width grows by s, the low s bits fill
// with the inversion value (0 for a plain vector, 1 for an inverted
// one), and the inversion flag carries through unchanged.
func Shl(x *Bits, s uint) *Bits {
	if s == 0 {
		return x
	}
	rw := x.width + int(s)
	limbs := make([]uint32, (rw+31)/32)
	fill := uint32(0)
	if x.inv {
		fill = 1
	}
	for i := 0; i < int(s); i++ {
		if fill == 1 {
			setBit(limbs, i)
		}
	}
	for i := 0; i < x.width; i++ {
		if bitAt(x, i) == 1 {
			setBit(limbs, i+int(s))
		}
	}
	return normalizeBits(rw, x.inv, limbs)
}

// Shr implements a right shift: width shrinks by s (floored at 0, at
// which point the result collapses to the canonical empty/inverted
// singleton matching the source's own inversion flag), dropping the
// low s bits.
func Shr(x *Bits, s uint) *Bits {
	if int(s) >= x.width {
		return Empty(x.inv)
	}
	rw := x.width - int(s)
	limbs := make([]uint32, (rw+31)/32)
	for i := 0; i < rw; i++ {
		if bitAt(x, i+int(s)) == 1 {
			setBit(limbs, i)
		}
	}
	return normalizeBits(rw, x.inv, limbs)
}

// Repeat splices count concatenated copies of x's bit pattern into a
// single vector of width x.width*count. The result is never inverted:
// unlike shift or concat, repeat fixes a concrete finite width with no
// implied tail, so there is no inversion flag to carry through.
func Repeat(x *Bits, count int) *Bits {
	if count <= 0 || x.width == 0 {
		return Empty(false)
	}
	rw := x.width * count
	limbs := make([]uint32, (rw+31)/32)
	for c := 0; c < count; c++ {
		base := c * x.width
		for i := 0; i < x.width; i++ {
			if bitAt(x, i) == 1 {
				setBit(limbs, base+i)
			}
		}
	}
	return normalizeBits(rw, false, limbs)
}
