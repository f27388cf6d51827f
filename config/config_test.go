package config

import (
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.MaxPass != DefaultMaxPass {
		t.Errorf("MaxPass = %d, want %d", cfg.MaxPass, DefaultMaxPass)
	}
	if len(cfg.NamespaceStrength) != 1 || cfg.NamespaceStrength[0] != 0 {
		t.Errorf("NamespaceStrength = %v, want [0]", cfg.NamespaceStrength)
	}
	if cfg.Ascii {
		t.Errorf("Ascii = true, want false")
	}
}

func TestParseDirectives(t *testing.T) {
	src := `
# sample run configuration
ascii = true
max_pass = 30
strength = 0, 1, 2
encoding = screen
encoding = petscii, petscii.tab
`
	cfg, err := parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Ascii {
		t.Errorf("Ascii = false, want true")
	}
	if cfg.MaxPass != 30 {
		t.Errorf("MaxPass = %d, want 30", cfg.MaxPass)
	}
	want := []int{0, 1, 2}
	if len(cfg.NamespaceStrength) != len(want) {
		t.Fatalf("NamespaceStrength = %v, want %v", cfg.NamespaceStrength, want)
	}
	for i, n := range want {
		if cfg.NamespaceStrength[i] != n {
			t.Errorf("NamespaceStrength[%d] = %d, want %d", i, cfg.NamespaceStrength[i], n)
		}
	}
	if len(cfg.Encodings) != 2 {
		t.Fatalf("len(Encodings) = %d, want 2", len(cfg.Encodings))
	}
	if cfg.Encodings[0].Name != "screen" || cfg.Encodings[0].File != "" {
		t.Errorf("Encodings[0] = %+v, want {screen, \"\"}", cfg.Encodings[0])
	}
	if cfg.Encodings[1].Name != "petscii" || cfg.Encodings[1].File != "petscii.tab" {
		t.Errorf("Encodings[1] = %+v, want {petscii, petscii.tab}", cfg.Encodings[1])
	}
}

func TestParseUnknownDirective(t *testing.T) {
	if _, err := parse(strings.NewReader("bogus = 1\n")); err == nil {
		t.Errorf("expected error for unknown directive")
	}
}

func TestParseMissingEquals(t *testing.T) {
	if _, err := parse(strings.NewReader("ascii true\n")); err == nil {
		t.Errorf("expected error for missing '='")
	}
}
