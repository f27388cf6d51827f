package bitvec

import (
	"testing"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
	"github.com/rcornwell/asmvalue/value/oper"
)

func mustHex(s string) *Bits {
	v, _, _ := FromHexString([]byte(s))
	return v
}

func mustBin(s string) *Bits {
	v, _, _ := FromBinString([]byte(s))
	return v
}

func TestHexBinParse(t *testing.T) {
	v, consumed, digits := FromHexString([]byte("ff"))
	if digits != 2 || consumed != 2 {
		t.Fatalf("digits=%d consumed=%d, want 2,2", digits, consumed)
	}
	if v.width != 8 {
		t.Errorf("width = %d, want 8", v.width)
	}
	if got := v.ReprBase(16); got != "$ff" {
		t.Errorf("repr = %s, want $ff", got)
	}

	b, _, bdigits := FromBinString([]byte("1010"))
	if bdigits != 4 || b.width != 4 {
		t.Fatalf("bin parse: digits=%d width=%d", bdigits, b.width)
	}
	if got := b.ReprBase(2); got != "%1010" {
		t.Errorf("repr = %s, want %%1010", got)
	}
}

// Repr picks $HEX when the width is a multiple of 4 and %BIN
// otherwise, per §4.3 (bitsobj.c's repr() checks len2&3).
func TestReprBaseChoice(t *testing.T) {
	hexWidth := mustHex("a5") // width 8: hex
	got, err := hexWidth.Repr(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "$a5" {
		t.Errorf("Repr(width=8) = %s, want $a5", got)
	}

	five := FromInt(bignum.FromInt64(5)) // width 3: not a multiple of 4
	got, err = five.Repr(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "%101" {
		t.Errorf("Repr(width=3) = %s, want %%101", got)
	}

	inv, err := five.Calc1(int(oper.OInv))
	if err != nil {
		t.Fatal(err)
	}
	got, err = inv.(*Bits).Repr(0)
	if err != nil {
		t.Fatal(err)
	}
	if got != "~%101" {
		t.Errorf("Repr(inverted width=3) = %s, want ~%%101", got)
	}
}

// S3: a width-3 bit-vector's complement, converted back to a logical
// integer, equals -(x+1) for the original magnitude x.
func TestInvertedRoundTrip(t *testing.T) {
	five := FromInt(bignum.FromInt64(5))
	if five.width != 3 {
		t.Fatalf("width of 5 = %d, want 3", five.width)
	}
	inv, err := five.Calc1(int(oper.OInv))
	if err != nil {
		t.Fatal(err)
	}
	got := inv.(*Bits).ToInt()
	if want := bignum.FromInt64(-6); got.Cmp(want) != 0 {
		s, _ := got.Repr(0)
		t.Errorf("~bits_from_int(5) as int = %s, want -6", s)
	}
}

// Invariant 3: bits_from_int/int_from_bits round-trip for both
// signs.
func TestIntRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 5, -6, 255, -256, 1000000} {
		i := bignum.FromInt64(v)
		b := FromInt(i)
		back := b.ToInt()
		if back.Cmp(i) != 0 {
			s, _ := back.Repr(0)
			t.Errorf("round trip %d -> bits -> %s", v, s)
		}
	}
}

// Invariant 6: shift-left then shift-right by the same amount
// round-trips for both inverted and non-inverted vectors.
func TestShiftRoundTrip(t *testing.T) {
	x := mustHex("ff")
	if got := Shr(Shl(x, 4), 4); got.ToInt().Cmp(x.ToInt()) != 0 {
		t.Errorf("shift round trip failed for non-inverted")
	}
	inv, _ := x.Calc1(int(oper.OInv))
	ib := inv.(*Bits)
	if got := Shr(Shl(ib, 4), 4); got.ToInt().Cmp(ib.ToInt()) != 0 {
		t.Errorf("shift round trip failed for inverted")
	}
}

// S6: AND of a width-8 non-inverted vector with the width-0 inverted
// empty singleton keeps width 8 (the shorter, inverted operand lets
// the longer operand's real bits pass through unchanged).
func TestAndWidthPassthrough(t *testing.T) {
	x := mustHex("ff")
	y := Empty(true)
	got := And(x, y)
	if got.width != 8 {
		t.Fatalf("width = %d, want 8", got.width)
	}
	if s := got.ReprBase(16); s != "$ff" {
		t.Errorf("repr = %s, want $ff", s)
	}
}

func TestOrWidthPassthrough(t *testing.T) {
	x := mustHex("0f")
	y := Empty(false)
	got := Or(x, y)
	if got.width != 8 {
		t.Fatalf("width = %d, want 8", got.width)
	}
}

func TestXorAlwaysMax(t *testing.T) {
	x := mustHex("ff")
	y := mustHex("f")
	got := Xor(x, y)
	if got.width != 8 {
		t.Fatalf("width = %d, want 8", got.width)
	}
}

func TestConcat(t *testing.T) {
	hi := mustHex("a")
	lo := mustHex("b")
	got := Concat(hi, lo)
	if got.width != 8 {
		t.Fatalf("width = %d, want 8", got.width)
	}
	if s := got.ReprBase(16); s != "$ab" {
		t.Errorf("repr = %s, want $ab", s)
	}
}

func TestRepeat(t *testing.T) {
	x := mustBin("10")
	got := Repeat(x, 3)
	if got.width != 6 {
		t.Fatalf("width = %d, want 6", got.width)
	}
	if s := got.ReprBase(2); s != "%101010" {
		t.Errorf("repr = %s, want %%101010", s)
	}
}

// Calc2 dispatch for bits << int and bits * int (count operands
// are plain integers, not bit-vectors).
func TestShiftAndRepeatViaCalc2(t *testing.T) {
	x := mustBin("1")
	shifted, err := x.Calc2(int(oper.OLshift), bignum.FromInt64(3))
	if err != nil {
		t.Fatal(err)
	}
	if s := shifted.(*Bits).ReprBase(2); s != "%1000" {
		t.Errorf("1 << 3 = %s, want %%1000", s)
	}

	repeated, err := x.Calc2(int(oper.ORepeat), bignum.FromInt64(4))
	if err != nil {
		t.Fatal(err)
	}
	if s := repeated.(*Bits).ReprBase(2); s != "%1111" {
		t.Errorf("1 repeat 4 = %s, want %%1111", s)
	}
}

func TestSliceSingleIndex(t *testing.T) {
	x := mustBin("1010")
	got, err := x.Slice(bignum.FromInt64(0))
	if err != nil {
		t.Fatal(err)
	}
	if b := got.(*Bits); b.width != 1 || b.n != 0 {
		t.Errorf("bit 0 of 1010 should be 0")
	}
	got, err = x.Slice(bignum.FromInt64(1))
	if err != nil {
		t.Fatal(err)
	}
	if b := got.(*Bits); b.n == 0 {
		t.Errorf("bit 1 of 1010 should be 1")
	}
}

func TestSliceRange(t *testing.T) {
	x := mustBin("11110000")
	start, end := int64(0), int64(4)
	got, err := x.Slice(value.SliceSpec{Start: &start, End: &end})
	if err != nil {
		t.Fatal(err)
	}
	if s := got.(*Bits).ReprBase(2); s != "%0000" {
		t.Errorf("slice [0:4] = %s, want %%0000", s)
	}
}

func TestSliceNegativeStep(t *testing.T) {
	x := mustBin("1100")
	step := int64(-1)
	got, err := x.Slice(value.SliceSpec{Step: &step})
	if err != nil {
		t.Fatal(err)
	}
	if s := got.(*Bits).ReprBase(2); s != "%0011" {
		t.Errorf("reversed slice = %s, want %%0011", s)
	}
}
