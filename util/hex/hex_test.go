package hex

import (
	"strings"
	"testing"
)

func TestFormatWord(t *testing.T) {
	var sb strings.Builder
	FormatWord(&sb, []uint32{0x0000a5c, 0x1})
	got := sb.String()
	want := "00000001 00000A5C"
	if got != want {
		t.Errorf("FormatWord() = %q, want %q", got, want)
	}
}

func TestFormatBytes(t *testing.T) {
	var sb strings.Builder
	FormatBytes(&sb, true, []byte{0x93, 0xc1})
	if got, want := sb.String(), "93 C1"; got != want {
		t.Errorf("FormatBytes() = %q, want %q", got, want)
	}

	sb.Reset()
	FormatBytes(&sb, false, []byte{0x93, 0xc1})
	if got, want := sb.String(), "93C1"; got != want {
		t.Errorf("FormatBytes(no space) = %q, want %q", got, want)
	}
}

func TestFormatByte(t *testing.T) {
	var sb strings.Builder
	FormatByte(&sb, 0xff)
	if got, want := sb.String(), "FF"; got != want {
		t.Errorf("FormatByte() = %q, want %q", got, want)
	}
}
