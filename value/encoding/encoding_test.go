package encoding

import "testing"

func TestIdentityRange(t *testing.T) {
	e := New("test")
	e.AddRange(0, 256, 0)
	out, err := e.EncodeAll([]byte("AZ09"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "AZ09" {
		t.Errorf("got %q, want AZ09", out)
	}
}

// An offset range shifts a code point into the target alphabet.
func TestOffsetRange(t *testing.T) {
	e := New("test")
	e.AddRange('a', 'z'+1, 'A')
	out, err := e.EncodeAll([]byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "ABC" {
		t.Errorf("got %q, want ABC", out)
	}
}

func TestAsciiCacheHitAfterFirstLookup(t *testing.T) {
	e := New("test")
	e.AddRange(0, 256, 0)
	st := e.NewStream([]byte("AA"))
	b1, _ := st.Next()
	if _, ok := e.cacheGet('A'); !ok {
		t.Fatalf("expected A cached after first lookup")
	}
	b2, _ := st.Next()
	if b1 != b2 {
		t.Errorf("cached lookup diverged: %d vs %d", b1, b2)
	}
}

func TestEscapeOverridesRange(t *testing.T) {
	e := New("test")
	e.AddRange(0, 256, 0)
	e.AddEscape([]byte("{cr}"), []byte{0x0d})
	out, err := e.EncodeAll([]byte("a{cr}b"))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'a', 0x0d, 'b'}
	if string(out) != string(want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestMultiByteEscape(t *testing.T) {
	e := New("test")
	e.AddRange(0, 256, 0)
	e.AddEscape([]byte("{nul2}"), []byte{0, 0})
	out, err := e.EncodeAll([]byte("x{nul2}y"))
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'x', 0, 0, 'y'}
	if string(out) != string(want) {
		t.Errorf("got %v, want %v", out, want)
	}
}

func TestUnknownCharReportsErrByte(t *testing.T) {
	e := New("test")
	e.AddRange('a', 'z'+1, 0)
	_, err := e.EncodeAll([]byte("az9"))
	if err == nil {
		t.Fatal("expected unknown_char error for '9'")
	}
	if !e.Failed() {
		t.Errorf("expected encoding to be marked failed")
	}
}

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry(true)
	if _, ok := r.Lookup("none"); !ok {
		t.Errorf("expected built-in \"none\" encoding")
	}
	if _, ok := r.Lookup("screen"); !ok {
		t.Errorf("expected built-in \"screen\" encoding")
	}
	none, _ := r.Lookup("none")
	out, err := none.EncodeAll([]byte("Hi!"))
	if err != nil || string(out) != "Hi!" {
		t.Errorf("none encoding should be identity, got %q, err %v", out, err)
	}
}

func TestLongestEscapeMatchWins(t *testing.T) {
	e := New("test")
	e.AddRange(0, 256, 0)
	e.AddEscape([]byte("{a}"), []byte{1})
	e.AddEscape([]byte("{ab}"), []byte{2})
	out, err := e.EncodeAll([]byte("{ab}"))
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0] != 2 {
		t.Errorf("got %v, want longest match {ab} -> [2]", out)
	}
}
