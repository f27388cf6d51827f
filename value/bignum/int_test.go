package bignum

import "testing"

func TestAddSub(t *testing.T) {
	a := FromInt64(123456789)
	b := FromInt64(-987654321)
	sum := Add(a, b)
	if got, _ := sum.Repr(0); got != "-864197532" {
		t.Errorf("Add = %s, want -864197532", got)
	}
	if !Sub(a, a).IsZero() {
		t.Errorf("a-a != 0")
	}
}

func TestMul(t *testing.T) {
	a := FromInt64(123456789)
	b := FromInt64(987654321)
	got, _ := Mul(a, b).Repr(0)
	want := "121932631112635269"
	if got != want {
		t.Errorf("Mul = %s, want %s", got, want)
	}
}

func TestDivModFloor(t *testing.T) {
	a := FromInt64(-7)
	b := FromInt64(2)
	q, r, err := DivMod(a, b)
	if err != nil {
		t.Fatal(err)
	}
	// floor(-7/2) = -4, remainder sign matches divisor (+): -7 = -4*2 + 1
	if qs, _ := q.Repr(0); qs != "-4" {
		t.Errorf("q = %s, want -4", qs)
	}
	if rs, _ := r.Repr(0); rs != "1" {
		t.Errorf("r = %s, want 1", rs)
	}
	check := Add(Mul(q, b), r)
	if check.Cmp(a) != 0 {
		t.Errorf("q*b+r != a")
	}
}

func TestDivModByZero(t *testing.T) {
	_, _, err := DivMod(FromInt64(1), Zero())
	if err == nil {
		t.Errorf("expected division by zero error")
	}
}

// S1 from the spec: bignum long division.
func TestBigDivision(t *testing.T) {
	a, _, _ := FromDecString([]byte("123456789012345678901234567890"))
	b, _, _ := FromDecString([]byte("98765432109876543210"))
	q, r, err := DivMod(a, b)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := q.Repr(0); got != "1249999988" {
		t.Errorf("q = %s, want 1249999988", got)
	}
	if got, _ := r.Repr(0); got != "60185185207253086410" {
		t.Errorf("r = %s, want 60185185207253086410", got)
	}
	check := Add(Mul(q, b), r)
	if check.Cmp(a) != 0 {
		t.Errorf("q*b+r != a")
	}
	if r.Sign() < 0 {
		t.Errorf("remainder must be non-negative when divisor positive")
	}
}

func TestShift(t *testing.T) {
	x := FromInt64(12345)
	if Shr(Shl(x, 10), 10).Cmp(x) != 0 {
		t.Errorf("round trip shl/shr failed for positive")
	}
	neg := FromInt64(-12345)
	if Shr(Shl(neg, 10), 10).Cmp(neg) != 0 {
		t.Errorf("round trip shl/shr failed for negative")
	}
}

func TestBitwise(t *testing.T) {
	a := FromInt64(-1)
	b := FromInt64(5)
	if And(a, b).Cmp(b) != 0 {
		t.Errorf("-1 AND 5 should be 5")
	}
	if Or(a, b).Cmp(a) != 0 {
		t.Errorf("-1 OR 5 should be -1")
	}
}

func TestDecStringChunking(t *testing.T) {
	v, consumed, digits := FromDecString([]byte("1_000_000_000"))
	if digits != 10 {
		t.Errorf("digits = %d, want 10", digits)
	}
	if consumed != len("1_000_000_000") {
		t.Errorf("consumed = %d, want %d", consumed, len("1_000_000_000"))
	}
	if got, _ := v.Repr(0); got != "1000000000" {
		t.Errorf("v = %s, want 1000000000", got)
	}
}

func TestUvalIval(t *testing.T) {
	x := FromInt64(255)
	if v, err := x.Uval(8); err != nil || v != 255 {
		t.Errorf("Uval(8) = %d,%v want 255,nil", v, err)
	}
	if _, err := x.Uval(7); err == nil {
		t.Errorf("expected overflow error for Uval(7)")
	}
	neg := FromInt64(-128)
	if v, err := neg.Ival(8); err != nil || v != -128 {
		t.Errorf("Ival(8) = %d,%v want -128,nil", v, err)
	}
}
