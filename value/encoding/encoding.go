/*
 * asmvalue - Character encoder: range table plus ternary-tree escape
 * matching.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package encoding

import (
	"fmt"
	"sort"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/oper"
)

// ErrByte is the sentinel output value encode_string's callers use to
// recognize an unmapped code point: it is always >= 256 so it can
// never collide with a genuine output byte.
const ErrByte = 256 + '?'

// Range is one entry of the translation table: source code points c
// in [Start, End) map to output byte Offset + (c - Start).
type Range struct {
	Start, End uint32
	Offset     int32
}

// Encoding is a named character encoder: a sorted range table for bulk
// code-point translation plus a ternary search tree for escape
// sequences that override the range lookup for specific byte runs.
type Encoding struct {
	name string

	ranges []Range // kept sorted by Start; binary-searched

	escapes      *ternaryNode
	escapeMinLen int // shortest registered escape key; 0 means none registered

	// asciiTable/asciiUse memoize the range lookup for the 128 ASCII
	// code points, mirroring encoding.c's table/table_use pair.
	asciiTable [128]uint16
	asciiUse   [2]uint64

	failed bool // set once an unmapped character has been emitted
}

// New creates an empty named encoding with no ranges or escapes
// registered.
func New(name string) *Encoding {
	return &Encoding{name: name}
}

// Name returns the encoding's registered name.
func (e *Encoding) Name() string { return e.name }

// Failed reports whether this encoding has ever emitted ErrByte.
func (e *Encoding) Failed() bool { return e.failed }

func (e *Encoding) cacheGet(c uint32) (uint16, bool) {
	if c >= 128 {
		return 0, false
	}
	if e.asciiUse[c/64]&(uint64(1)<<(c%64)) == 0 {
		return 0, false
	}
	return e.asciiTable[c], true
}

func (e *Encoding) cacheSet(c uint32, v uint16) {
	if c >= 128 {
		return
	}
	e.asciiTable[c] = v
	e.asciiUse[c/64] |= uint64(1) << (c % 64)
}

// cacheInvalidate clears any cached ASCII entries a newly added range
// could shadow, the same way add_trans in the source recomputes the
// cache when a new range overlapping the low 128 code points is
// registered (Open Question (b): invalidate rather than merge).
func (e *Encoding) cacheInvalidate(start, end uint32) {
	if start >= 128 {
		return
	}
	if end > 128 {
		end = 128
	}
	for c := start; c < end; c++ {
		e.asciiUse[c/64] &^= uint64(1) << (c % 64)
	}
}

// AddRange registers a translation range covering [start, end) with
// the given additive offset, replacing any existing ranges it fully
// overlaps. Ranges are kept sorted by Start for binary-search lookup.
func (e *Encoding) AddRange(start, end uint32, offset int32) {
	if end <= start {
		return
	}
	r := Range{Start: start, End: end, Offset: offset}
	kept := e.ranges[:0]
	for _, old := range e.ranges {
		if old.Start < start || old.End > end {
			kept = append(kept, old)
		}
	}
	e.ranges = kept
	idx := sort.Search(len(e.ranges), func(i int) bool { return e.ranges[i].Start >= start })
	e.ranges = append(e.ranges, Range{})
	copy(e.ranges[idx+1:], e.ranges[idx:])
	e.ranges[idx] = r
	e.cacheInvalidate(start, end)
}

// lookupRange finds the range covering code point c, if any, via
// binary search over the sorted slice (the "balanced search tree of
// non-overlapping intervals" realized as a sorted slice, matching the
// teacher's preference for simple sorted-slice lookups over
// third-party tree libraries).
func (e *Encoding) lookupRange(c uint32) (Range, bool) {
	n := len(e.ranges)
	i := sort.Search(n, func(i int) bool { return e.ranges[i].End > c })
	if i < n && e.ranges[i].Start <= c {
		return e.ranges[i], true
	}
	return Range{}, false
}

// AddEscape registers a multi-byte source sequence to translate as a
// unit, overriding the range table for exactly that byte run. An
// empty key is rejected silently (mirrors new_escape's refusal of a
// zero-length source).
func (e *Encoding) AddEscape(key, data []byte) {
	if len(key) == 0 {
		return
	}
	val := append([]byte(nil), data...)
	ternaryInsert(&e.escapes, key, val)
	if e.escapeMinLen == 0 || len(key) < e.escapeMinLen {
		e.escapeMinLen = len(key)
	}
}

// Stream pulls translated output bytes from a source string one at a
// time, the Go shape of encode_string_init/encode_string's pull
// iterator: the caller owns it and drives it to exhaustion.
type Stream struct {
	enc *Encoding
	src []byte
	pos int

	pending    []byte
	pendingPos int

	reported bool // unknown_char already reported for this stream
}

// NewStream begins a pull-iteration over src for this encoding.
func (e *Encoding) NewStream(src []byte) *Stream {
	return &Stream{enc: e, src: src}
}

// Next returns the next translated output byte (possibly ErrByte) and
// true, or (0, false) once the source is exhausted.
func (s *Stream) Next() (int, bool) {
	if s.pendingPos < len(s.pending) {
		b := s.pending[s.pendingPos]
		s.pendingPos++
		return int(b), true
	}
	if s.pos >= len(s.src) {
		return 0, false
	}

	e := s.enc
	remaining := s.src[s.pos:]

	if e.escapeMinLen > 0 && len(remaining) >= e.escapeMinLen {
		if data, n, ok := longestMatch(e.escapes, remaining); ok && len(data) > 0 {
			s.pos += n
			if len(data) == 1 {
				return int(data[0]), true
			}
			s.pending = data
			s.pendingPos = 1
			return int(data[0]), true
		}
	}

	c, width := decodeRune(remaining)

	if c < 128 {
		if v, ok := e.cacheGet(c); ok {
			s.pos += width
			return int(v), true
		}
	}

	if r, ok := e.lookupRange(c); ok {
		out := uint16(int32(c) - int32(r.Start) + r.Offset)
		if c < 128 {
			e.cacheSet(c, out)
		}
		s.pos += width
		return int(out), true
	}

	s.pos += width
	e.failed = true
	if !s.reported {
		s.reported = true
		if oper.Diagnostic != nil {
			oper.Diagnostic("unknown_char", fmt.Sprintf("character U+%04X has no mapping in encoding %q", c, e.name))
		}
	}
	return ErrByte, true
}

// decodeRune reads one UTF-8 code point from b, returning its value
// and byte width; invalid leading bytes decode as a single byte with
// their raw value so the stream always makes progress.
func decodeRune(b []byte) (uint32, int) {
	if len(b) == 0 {
		return 0, 0
	}
	c0 := b[0]
	switch {
	case c0 < 0x80:
		return uint32(c0), 1
	case c0&0xe0 == 0xc0 && len(b) >= 2:
		return uint32(c0&0x1f)<<6 | uint32(b[1]&0x3f), 2
	case c0&0xf0 == 0xe0 && len(b) >= 3:
		return uint32(c0&0x0f)<<12 | uint32(b[1]&0x3f)<<6 | uint32(b[2]&0x3f), 3
	case c0&0xf8 == 0xf0 && len(b) >= 4:
		return uint32(c0&0x07)<<18 | uint32(b[1]&0x3f)<<12 | uint32(b[2]&0x3f)<<6 | uint32(b[3]&0x3f), 4
	default:
		return uint32(c0), 1
	}
}

// EncodeAll drains a Stream into a byte slice, returning
// value.ErrEmptyEncoding if the encoding has no ranges or escapes
// registered at all, or value.ErrUnknownChar if any character in src
// had no mapping.
func (e *Encoding) EncodeAll(src []byte) ([]byte, error) {
	if len(e.ranges) == 0 && e.escapes == nil {
		return nil, &value.ArithmeticError{Kind: value.ErrEmptyEncoding}
	}
	st := e.NewStream(src)
	out := make([]byte, 0, len(src))
	unknown := false
	for {
		b, ok := st.Next()
		if !ok {
			break
		}
		if b >= 256 {
			unknown = true
			continue
		}
		out = append(out, byte(b))
	}
	if unknown {
		return out, &value.ArithmeticError{Kind: value.ErrUnknownChar}
	}
	return out, nil
}
