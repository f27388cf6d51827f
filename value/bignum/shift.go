package bignum

// Shl returns x<<s, growing the limb count as needed.
func Shl(x *Int, s uint) *Int {
	if x.n == 0 || s == 0 {
		return x
	}
	limbShift, bitShift := s/32, s%32
	mag := shiftLeftMag(x.limbs(), bitShift)
	if limbShift > 0 {
		out := make([]uint32, uint(len(mag))+limbShift)
		copy(out[limbShift:], mag)
		mag = out
	}
	return normalize(x.neg, mag)
}

func shrPositive(x *Int, s uint) *Int {
	limbShift, bitShift := s/32, s%32
	lm := x.limbs()
	if limbShift >= uint(len(lm)) {
		return zeroInt
	}
	return normalize(false, shiftRightMag(lm[limbShift:], bitShift))
}

// Shr returns x>>s. For negative x this realizes the arithmetic
// identity -((-x-1)>>s)-1 so the result sign-extends, per §4.2.
func Shr(x *Int, s uint) *Int {
	if s == 0 || x.n == 0 {
		return x
	}
	if !x.neg {
		return shrPositive(x, s)
	}
	t := Sub(x.Absolute(), oneInt)
	shifted := shrPositive(t, s)
	return Add(shifted, oneInt).Neg()
}
