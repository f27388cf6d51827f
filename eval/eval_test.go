package eval

import (
	"testing"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/bignum"
	"github.com/rcornwell/asmvalue/value/namespace"
)

func TestEvalArithmetic(t *testing.T) {
	v, err := Eval("1 + 2 * 3", nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	i, ok := v.(*bignum.Int)
	if !ok {
		t.Fatalf("result type = %T, want *bignum.Int", v)
	}
	if i.Cmp(bignum.FromInt64(7)) != 0 {
		repr, _ := i.Repr(0)
		t.Errorf("1 + 2 * 3 = %s, want 7", repr)
	}
}

func TestEvalParens(t *testing.T) {
	v, err := Eval("(1 + 2) * 3", nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	i := v.(*bignum.Int)
	if i.Cmp(bignum.FromInt64(9)) != 0 {
		repr, _ := i.Repr(0)
		t.Errorf("(1 + 2) * 3 = %s, want 9", repr)
	}
}

func TestEvalUnaryMinus(t *testing.T) {
	v, err := Eval("-5 + 2", nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	i := v.(*bignum.Int)
	if i.Cmp(bignum.FromInt64(-3)) != 0 {
		repr, _ := i.Repr(0)
		t.Errorf("-5 + 2 = %s, want -3", repr)
	}
}

func TestEvalIdentifier(t *testing.T) {
	ns := namespace.New()
	ns.Insert(namespace.NewLabel("foo", 0, false, 1, bignum.FromInt64(42)))
	env := &Env{Names: ns, Pass: namespace.PassState{Pass: 1, MaxPass: 20}, None: value.None()}

	v, err := Eval("foo + 1", env)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	i := v.(*bignum.Int)
	if i.Cmp(bignum.FromInt64(43)) != 0 {
		repr, _ := i.Repr(0)
		t.Errorf("foo + 1 = %s, want 43", repr)
	}
}

func TestEvalHexAndBinLiterals(t *testing.T) {
	v, err := Eval("$a5", nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	repr, _ := v.Repr(0)
	if repr != "$a5" {
		t.Errorf("Repr($a5) = %s, want $a5", repr)
	}

	v, err = Eval("%1100", nil)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	repr, _ = v.Repr(0)
	if repr != "$c" {
		t.Errorf("Repr(%%1100) = %s, want $c", repr)
	}
}
