package bignum

import (
	"math/bits"

	"github.com/rcornwell/asmvalue/value"
)

func addMag(a, b []uint32) []uint32 {
	if len(a) < len(b) {
		a, b = b, a
	}
	out := make([]uint32, len(a)+1)
	var carry uint64
	for i, av := range a {
		s := uint64(av) + carry
		if i < len(b) {
			s += uint64(b[i])
		}
		out[i] = uint32(s)
		carry = s >> 32
	}
	out[len(a)] = uint32(carry)
	return out
}

// subMag computes a-b assuming a >= b in magnitude.
func subMag(a, b []uint32) []uint32 {
	out := make([]uint32, len(a))
	var borrow int64
	for i, av := range a {
		var bv uint32
		if i < len(b) {
			bv = b[i]
		}
		d := int64(av) - int64(bv) - borrow
		if d < 0 {
			d += 1 << 32
			borrow = 1
		} else {
			borrow = 0
		}
		out[i] = uint32(d)
	}
	return out
}

// Add returns x+y.
func Add(x, y *Int) *Int {
	if x.n == 0 {
		return y
	}
	if y.n == 0 {
		return x
	}
	if x.neg == y.neg {
		return normalize(x.neg, addMag(x.limbs(), y.limbs()))
	}
	c := cmpMag(x.limbs(), y.limbs())
	if c == 0 {
		return zeroInt
	}
	if c > 0 {
		return normalize(x.neg, subMag(x.limbs(), y.limbs()))
	}
	return normalize(y.neg, subMag(y.limbs(), x.limbs()))
}

// Sub returns x-y.
func Sub(x, y *Int) *Int { return Add(x, y.Neg()) }

func mulMag(a, b []uint32) []uint32 {
	res := make([]uint64, len(a)+len(b))
	for i, av := range a {
		if av == 0 {
			continue
		}
		var carry uint64
		for j, bv := range b {
			t := uint64(av)*uint64(bv) + res[i+j] + carry
			res[i+j] = t & 0xffffffff
			carry = t >> 32
		}
		k := i + len(b)
		for carry != 0 {
			t := res[k] + carry
			res[k] = t & 0xffffffff
			carry = t >> 32
			k++
		}
	}
	out := make([]uint32, len(res))
	for i, v := range res {
		out[i] = uint32(v)
	}
	return out
}

// Mul returns x*y. Two-limb operands go through the same general
// path; Go's uint64 intermediate already gives the "full 64-bit
// product in one step" fast path the source hand-rolls in C.
func Mul(x, y *Int) *Int {
	if x.n == 0 || y.n == 0 {
		return zeroInt
	}
	return normalize(x.neg != y.neg, mulMag(x.limbs(), y.limbs()))
}

func shiftLeftMag(a []uint32, s uint) []uint32 {
	if s == 0 {
		return append([]uint32(nil), a...)
	}
	out := make([]uint32, len(a)+1)
	var carry uint32
	for i, v := range a {
		out[i] = (v << s) | carry
		carry = v >> (32 - s)
	}
	out[len(a)] = carry
	return out
}

func shiftRightMag(a []uint32, s uint) []uint32 {
	if s == 0 {
		return append([]uint32(nil), a...)
	}
	out := make([]uint32, len(a))
	var carry uint32
	for i := len(a) - 1; i >= 0; i-- {
		out[i] = (a[i] >> s) | carry
		carry = a[i] << (32 - s)
	}
	return out
}

func divModSingle(u []uint32, d uint32) (q []uint32, rem uint32) {
	q = make([]uint32, len(u))
	var r uint64
	for i := len(u) - 1; i >= 0; i-- {
		cur := (r << 32) | uint64(u[i])
		q[i] = uint32(cur / uint64(d))
		r = cur % uint64(d)
	}
	return q, uint32(r)
}

// divModMag implements Knuth's Algorithm D with a normalization
// shift so the divisor's top limb has its high bit set, and a
// single-limb-divisor fast path.
func divModMag(u, v []uint32) (q, r []uint32) {
	n := len(v)
	if n == 1 {
		qq, rr := divModSingle(u, v[0])
		if rr == 0 {
			return qq, nil
		}
		return qq, []uint32{rr}
	}
	m := len(u) - n
	if m < 0 {
		return nil, append([]uint32(nil), u...)
	}

	var shift uint
	top := v[n-1]
	for top&0x80000000 == 0 {
		top <<= 1
		shift++
	}
	un := shiftLeftMag(u, shift)
	if len(un) == len(u) {
		un = append(un, 0)
	}
	vn := shiftLeftMag(v, shift)[:n]

	qq := make([]uint32, m+1)
	for j := m; j >= 0; j-- {
		num := (uint64(un[j+n]) << 32) | uint64(un[j+n-1])
		qhat := num / uint64(vn[n-1])
		rhat := num % uint64(vn[n-1])
		for qhat > 0xffffffff || qhat*uint64(vn[n-2]) > (rhat<<32)|uint64(un[j+n-2]) {
			qhat--
			rhat += uint64(vn[n-1])
			if rhat > 0xffffffff {
				break
			}
		}
		var borrow, carry uint64
		for i := 0; i < n; i++ {
			p := qhat*uint64(vn[i]) + carry
			carry = p >> 32
			d := int64(un[j+i]) - int64(uint32(p)) - int64(borrow)
			if d < 0 {
				d += 1 << 32
				borrow = 1
			} else {
				borrow = 0
			}
			un[j+i] = uint32(d)
		}
		d := int64(un[j+n]) - int64(carry) - int64(borrow)
		if d < 0 {
			d += 1 << 32
			borrow = 1
		} else {
			borrow = 0
		}
		un[j+n] = uint32(d)
		if borrow != 0 {
			qhat--
			var c uint64
			for i := 0; i < n; i++ {
				s := uint64(un[j+i]) + uint64(vn[i]) + c
				un[j+i] = uint32(s)
				c = s >> 32
			}
			un[j+n] += uint32(c)
		}
		qq[j] = uint32(qhat)
	}
	rem := shiftRightMag(un[:n], shift)
	return qq, rem
}

// DivMod returns the floor quotient and matching-sign remainder of
// x/y: q*y + r == x, and sign(r) == sign(y) whenever r != 0.
func DivMod(x, y *Int) (q, r *Int, err error) {
	if y.n == 0 {
		return nil, nil, &value.ArithmeticError{Kind: value.ErrDivisionByZero}
	}
	if x.n == 0 {
		return zeroInt, zeroInt, nil
	}
	qm, rm := divModMag(x.limbs(), y.limbs())
	qi := normalize(x.neg != y.neg, qm)
	ri := normalize(x.neg, rm)
	if !ri.IsZero() && x.neg != y.neg {
		qi = Sub(qi, oneInt)
		ri = Add(ri, y)
	}
	return qi, ri, nil
}

// Pow computes x**n for n >= 0 via left-to-right binary
// exponentiation. Negative n is the caller's responsibility to
// reroute through float power (see Calc2 OPow handling).
func Pow(x *Int, n uint64) *Int {
	result := oneInt
	for bit := 63 - bits.LeadingZeros64(n); bit >= 0; bit-- {
		result = Mul(result, result)
		if (n>>uint(bit))&1 == 1 {
			result = Mul(result, x)
		}
	}
	return result
}
