package bitvec

import (
	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
	"github.com/rcornwell/asmvalue/value/oper"
)

// Calc1 implements the unary operator set: bitwise invert (an O(1)
// metadata flip unless the raw magnitude is 0, in which case the
// result collapses to the opposite canonical singleton) and logical
// not.
func (b *Bits) Calc1(op int) (value.Obj, error) {
	switch oper.Op(op) {
	case oper.OInv:
		if b.n == 0 {
			return Empty(!b.inv), nil
		}
		return &Bits{width: b.width, inv: !b.inv, n: b.n, inl: b.inl, heap: b.heap}, nil
	case oper.OLnot:
		t, _ := b.Truth(value.TruthDefault)
		return value.Bool(!t), nil
	}
	return nil, value.ErrNotApplicable
}

func coerceBits(o value.Obj) (*Bits, bool) {
	switch v := o.(type) {
	case *Bits:
		return v, true
	case value.Bool:
		return Bit(bool(v)), true
	}
	return nil, false
}

// Calc2 implements the binary operator set for Bits op {Bits, Bool}.
// Shift and repeat take a plain integer count rather than a bit-vector
// right-hand side, so they're handled before the Bits/Bool coercion.
func (b *Bits) Calc2(op int, other value.Obj) (value.Obj, error) {
	switch oper.Op(op) {
	case oper.OLshift, oper.ORshift, oper.ORepeat:
		if n, ok := other.(*bignum.Int); ok {
			return bitsShiftOrRepeat(oper.Op(op), b, n)
		}
	}
	y, ok := coerceBits(other)
	if !ok {
		return nil, value.ErrNotApplicable
	}
	return bitsCalc2(oper.Op(op), b, y)
}

// RCalc2 handles bool OP bits (bool on the left).
func (b *Bits) RCalc2(op int, other value.Obj) (value.Obj, error) {
	y, ok := coerceBits(other)
	if !ok {
		return nil, value.ErrNotApplicable
	}
	return bitsCalc2(oper.Op(op), y, b)
}

func bitsShiftOrRepeat(op oper.Op, x *Bits, n *bignum.Int) (value.Obj, error) {
	s, err := n.Ival(64)
	if err != nil {
		return nil, err
	}
	switch op {
	case oper.OLshift:
		if s < 0 {
			return Shr(x, uint(-s)), nil
		}
		return Shl(x, uint(s)), nil
	case oper.ORshift:
		if s < 0 {
			return Shl(x, uint(-s)), nil
		}
		return Shr(x, uint(s)), nil
	case oper.ORepeat:
		return Repeat(x, int(s)), nil
	}
	return nil, value.ErrNotApplicable
}

func bitsCalc2(op oper.Op, x, y *Bits) (value.Obj, error) {
	switch op {
	case oper.OAnd:
		return And(x, y), nil
	case oper.OOr:
		return Or(x, y), nil
	case oper.OXor:
		return Xor(x, y), nil
	case oper.OConcat:
		return Concat(x, y), nil
	case oper.OEq:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) == 0), nil
	case oper.ONe:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) != 0), nil
	case oper.OLt:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) < 0), nil
	case oper.OLe:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) <= 0), nil
	case oper.OGt:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) > 0), nil
	case oper.OGe:
		return value.Bool(x.ToInt().Cmp(y.ToInt()) >= 0), nil
	case oper.OCmp:
		return bignum.FromInt64(int64(x.ToInt().Cmp(y.ToInt()))), nil
	}
	return nil, value.ErrNotApplicable
}
