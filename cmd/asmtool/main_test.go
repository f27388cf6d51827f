package main

import "testing"

func TestParseSnapshotLine(t *testing.T) {
	rec, err := parseSnapshotLine("foo\t0\t1\t2\t4")
	if err != nil {
		t.Fatalf("parseSnapshotLine: %v", err)
	}
	if rec.name != "foo" || rec.strength != 0 || !rec.constant || rec.defPass != 2 || rec.repr != "4" {
		t.Errorf("parseSnapshotLine() = %+v", rec)
	}
}

func TestParseSnapshotLineMalformed(t *testing.T) {
	if _, err := parseSnapshotLine("too\tfew\tfields"); err == nil {
		t.Errorf("expected error for malformed line")
	}
}
