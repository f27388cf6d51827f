package namespace

import (
	"testing"

	"github.com/rcornwell/asmvalue/value"
)

type fakeObj struct{ n int }

func (f fakeObj) Type() value.Type { return value.TInt }
func (f fakeObj) Same(o value.Obj) bool {
	other, ok := o.(fakeObj)
	return ok && other.n == f.n
}
func (f fakeObj) Truth(value.TruthMode) (bool, error) { return f.n != 0, nil }
func (f fakeObj) Hash() uint32                        { return uint32(f.n) }
func (f fakeObj) Repr(int) (string, error)            { return "", nil }

func TestInsertAndLookup(t *testing.T) {
	ns := New()
	ps := PassState{Pass: 1}
	ns.Insert(NewLabel("Foo", 0, false, 1, fakeObj{1}))

	l, ok := ns.Lookup("foo", 0, ps)
	if !ok {
		t.Fatal("expected case-insensitive lookup to find Foo")
	}
	if l.Value.(fakeObj).n != 1 {
		t.Errorf("wrong value bound")
	}
}

// Invariant 8 / S5: a label defined in pass N remains visible in pass
// N+1 (forward reference resolution) but disappears once the
// assembler has reached its fixed point and moved past pass N+1.
func TestMultiPassVisibility(t *testing.T) {
	ns := New()
	ns.Insert(NewLabel("x", 0, true, 1, fakeObj{5}))

	if _, ok := ns.Lookup("x", 0, PassState{Pass: 1}); !ok {
		t.Error("label should be visible in its defining pass")
	}
	if _, ok := ns.Lookup("x", 0, PassState{Pass: 2, FixedDig: false}); !ok {
		t.Error("constant label should still be visible the pass after definition, pre-fixpoint")
	}
	if _, ok := ns.Lookup("x", 0, PassState{Pass: 3, FixedDig: true}); ok {
		t.Error("label should not be visible two passes later at fixed point")
	}
}

func TestRebuildPreservesEntries(t *testing.T) {
	ns := New()
	ps := PassState{Pass: 1}
	for i := 0; i < 100; i++ {
		ns.Insert(NewLabel(anonName(true, i), 0, false, 1, fakeObj{i}))
	}
	for i := 0; i < 100; i++ {
		l, ok := ns.Lookup(anonName(true, i), 0, ps)
		if !ok || l.Value.(fakeObj).n != i {
			t.Fatalf("entry %d lost across rebuild", i)
		}
	}
}

func TestSameMutualSubset(t *testing.T) {
	a := New()
	b := New()
	a.Insert(NewLabel("x", 0, false, 1, fakeObj{1}))
	b.Insert(NewLabel("x", 0, false, 1, fakeObj{1}))
	if !a.Same(b) {
		t.Error("namespaces with identical entries should be Same")
	}
	b.Insert(NewLabel("y", 0, false, 1, fakeObj{2}))
	if a.Same(b) {
		t.Error("namespaces with an extra entry should not be Same")
	}
}

func TestMemberAccess(t *testing.T) {
	ns := New()
	ps := PassState{Pass: 1, MaxPass: 10}
	ns.Insert(NewLabel("label", 0, false, 1, fakeObj{42}))

	v, err := ns.Member(Ident{Name: "label", Reference: true}, ps, value.Bool(false), false)
	if err != nil {
		t.Fatal(err)
	}
	if v.(fakeObj).n != 42 {
		t.Errorf("got %v, want 42", v)
	}

	none := value.Bool(false)
	v, err = ns.Member(Ident{Name: "missing", Reference: false}, ps, none, false)
	if err != nil {
		t.Fatal(err)
	}
	if v != value.Obj(none) {
		t.Errorf("expected none singleton for speculative miss")
	}

	_, err = ns.Member(Ident{Name: "missing", Reference: true}, ps, none, false)
	if err == nil {
		t.Error("expected NotDefinedError for a referencing miss in a resolved pass")
	}
}

func TestAnonLabels(t *testing.T) {
	ns := New()
	ps := PassState{Pass: 1}
	ns.DefineAnon(true, 1, fakeObj{1})
	ns.DefineAnon(true, 1, fakeObj{2})
	ns.DefineAnon(false, 1, fakeObj{3})

	l, ok := ns.FindAnonLabel(1, 0, ps)
	if !ok || l.Value.(fakeObj).n != 1 {
		t.Errorf("first forward anon label mismatch")
	}
	l, ok = ns.FindAnonLabel(2, 0, ps)
	if !ok || l.Value.(fakeObj).n != 2 {
		t.Errorf("second forward anon label mismatch")
	}
	l, ok = ns.FindAnonLabel(-1, 0, ps)
	if !ok || l.Value.(fakeObj).n != 3 {
		t.Errorf("first backward anon label mismatch")
	}
}
