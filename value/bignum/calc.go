package bignum

import (
	"math"
	"strconv"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/oper"
)

// Float is the minimal standard-double value used only where the
// spec requires promoting to float (negative-exponent power,
// int_from_float/float_from_int); arbitrary-precision floats are an
// explicit non-goal.
type Float float64

func (f Float) Type() value.Type { return value.TFloat }
func (f Float) Same(o value.Obj) bool {
	g, ok := o.(Float)
	return ok && g == f
}
func (f Float) Truth(value.TruthMode) (bool, error) { return f != 0, nil }
func (f Float) Hash() uint32 {
	v := math.Float64bits(float64(f))
	return uint32(v^(v>>32)) & 0x7fffffff
}
func (f Float) Repr(int) (string, error) {
	return strconv.FormatFloat(float64(f), 'g', -1, 64), nil
}

// FromFloat truncates a float64 toward zero into an Int via
// Frexp/Ldexp, mirroring int_from_float.
func FromFloat(f float64) *Int {
	if f == 0 {
		return zeroInt
	}
	neg := f < 0
	if neg {
		f = -f
	}
	mant, exp := math.Frexp(f)
	mantBits := uint64(mant * (1 << 53))
	shift := exp - 53
	v := FromUint64(mantBits)
	if shift >= 0 {
		v = Shl(v, uint(shift))
	} else {
		v = Shr(v, uint(-shift))
	}
	if neg {
		v = v.Neg()
	}
	return v
}

// ToFloat converts via repeated Horner evaluation over the limbs,
// mirroring float_from_int.
func (x *Int) ToFloat() float64 {
	if x.n == 0 {
		return 0
	}
	lm := x.limbs()
	var f float64
	for i := len(lm) - 1; i >= 0; i-- {
		f = f*4294967296.0 + float64(lm[i])
	}
	if x.neg {
		f = -f
	}
	return f
}

// Calc1 implements the unary operator set §4.2 exposes: negate,
// unary plus, bitwise invert, logical not, and the address-byte and
// word extractors.
func (x *Int) Calc1(op int) (value.Obj, error) {
	switch oper.Op(op) {
	case oper.ONeg:
		return x.Neg(), nil
	case oper.OPos:
		return x, nil
	case oper.OInv:
		return Sub(zeroInt, Add(x, oneInt)), nil // ~x == -x-1
	case oper.OLnot:
		return value.Bool(x.n == 0), nil
	case oper.OBank:
		return byteOf(x, 2), nil
	case oper.OHigher:
		return byteOf(x, 1), nil
	case oper.OLower:
		return byteOf(x, 0), nil
	case oper.OHword, oper.OWord:
		return wordOf(x, 0, 16), nil
	case oper.OBSWord:
		w, _ := wordOf(x, 0, 16).(*Int)
		return byteswap16(w), nil
	}
	return nil, value.ErrNotApplicable
}

func byteOf(x *Int, idx uint) value.Obj {
	v, _ := x.Uval(64)
	return FromUint64((v >> (idx * 8)) & 0xff)
}

func wordOf(x *Int, idx, width uint) value.Obj {
	v, _ := x.Uval(64)
	mask := uint64(1)<<width - 1
	return FromUint64((v >> idx) & mask)
}

func byteswap16(x *Int) *Int {
	v, _ := x.Uval(16)
	return FromUint64(((v & 0xff) << 8) | (v >> 8))
}

// Calc2 implements the binary arithmetic/bitwise/comparison operator
// set for Int op Int, plus bool coercion (bool -> int, the first
// rung of the type-coercion lattice in §4.1).
func (x *Int) Calc2(op int, other value.Obj) (value.Obj, error) {
	y, ok := coerceInt(other)
	if !ok {
		return nil, value.ErrNotApplicable
	}
	return intCalc2(oper.Op(op), x, y)
}

// RCalc2 handles bool OP int (bool appearing on the left).
func (x *Int) RCalc2(op int, other value.Obj) (value.Obj, error) {
	y, ok := coerceInt(other)
	if !ok {
		return nil, value.ErrNotApplicable
	}
	return intCalc2(oper.Op(op), y, x)
}

func coerceInt(o value.Obj) (*Int, bool) {
	switch v := o.(type) {
	case *Int:
		return v, true
	case value.Bool:
		if v {
			return oneInt, true
		}
		return zeroInt, true
	}
	return nil, false
}

func intCalc2(op oper.Op, x, y *Int) (value.Obj, error) {
	switch op {
	case oper.OAdd:
		return Add(x, y), nil
	case oper.OSub:
		return Sub(x, y), nil
	case oper.OMul:
		return Mul(x, y), nil
	case oper.ODiv:
		q, _, err := DivMod(x, y)
		return q, err
	case oper.OMod:
		_, r, err := DivMod(x, y)
		return r, err
	case oper.OPow:
		if y.neg {
			return Float(math.Pow(x.ToFloat(), y.ToFloat())), nil
		}
		n, err := y.Uval(64)
		if err != nil {
			return nil, err
		}
		return Pow(x, n), nil
	case oper.OAnd:
		return And(x, y), nil
	case oper.OOr:
		return Or(x, y), nil
	case oper.OXor:
		return Xor(x, y), nil
	case oper.OLshift:
		s, err := y.Ival(64)
		if err != nil {
			return nil, err
		}
		if s < 0 {
			return Shr(x, uint(-s)), nil
		}
		return Shl(x, uint(s)), nil
	case oper.ORshift:
		s, err := y.Ival(64)
		if err != nil {
			return nil, err
		}
		if s < 0 {
			return Shl(x, uint(-s)), nil
		}
		return Shr(x, uint(s)), nil
	case oper.OEq:
		return value.Bool(x.Cmp(y) == 0), nil
	case oper.ONe:
		return value.Bool(x.Cmp(y) != 0), nil
	case oper.OLt:
		return value.Bool(x.Cmp(y) < 0), nil
	case oper.OLe:
		return value.Bool(x.Cmp(y) <= 0), nil
	case oper.OGt:
		return value.Bool(x.Cmp(y) > 0), nil
	case oper.OGe:
		return value.Bool(x.Cmp(y) >= 0), nil
	case oper.OCmp:
		return FromInt64(int64(x.Cmp(y))), nil
	case oper.OMin:
		if x.Cmp(y) <= 0 {
			return x, nil
		}
		return y, nil
	case oper.OMax:
		if x.Cmp(y) >= 0 {
			return x, nil
		}
		return y, nil
	}
	return nil, value.ErrNotApplicable
}
