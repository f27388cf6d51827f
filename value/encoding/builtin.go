/*
 * asmvalue - Character encoder: built-in encodings.
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

// Registry holds the named encodings available to a running assembly,
// mirroring init_encoding's pair of always-present built-ins plus
// whatever new_encoding/LoadEncodingFile add during a run.
type Registry struct {
	encodings map[string]*Encoding
}

// NewRegistry builds the registry with the "none" and "screen"
// built-ins already installed, matching init_encoding's unconditional
// pair. toASCII selects between plain identity tables (false, for a
// target that has no notion of a host character set translation) and
// a Latin-1-range passthrough with a shift-to-screen-code offset for
// the upper-case letter block 0x40-0x5F (true), standing in for the PETSCII
// ASCII/screen-code split described in the source without carrying
// forward its Commodore-specific table contents, which are outside
// this repository's scope.
func NewRegistry(toASCII bool) *Registry {
	r := &Registry{encodings: make(map[string]*Encoding)}
	r.encodings["none"] = newNoneEncoding()
	r.encodings["screen"] = newScreenEncoding(toASCII)
	return r
}

// Lookup returns an existing encoding by name.
func (r *Registry) Lookup(name string) (*Encoding, bool) {
	e, ok := r.encodings[name]
	return e, ok
}

// New creates (or returns the existing) named encoding, matching
// new_encoding's find-or-create semantics.
func (r *Registry) New(name string) *Encoding {
	if e, ok := r.encodings[name]; ok {
		return e
	}
	e := New(name)
	r.encodings[name] = e
	return e
}

// Names returns the registered encoding names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.encodings))
	for n := range r.encodings {
		names = append(names, n)
	}
	return names
}

// newNoneEncoding is the identity encoding: every byte value 0-255
// maps to itself, with no escape sequences registered.
func newNoneEncoding() *Encoding {
	e := New("none")
	e.AddRange(0, 256, 0)
	return e
}

// newScreenEncoding models the PETSCII screen-code shift without
// carrying the full Commodore character-set tables forward: bytes
// 0x20-0x3F pass through unshifted (digits, punctuation shared with
// screen codes), 0x40-0x5F (upper-case letters) shift down by 0x40
// into the 0x00-0x1F screen-code range, and everything else passes
// through identity. When toASCII is false the whole range is
// identity, matching init_encoding's no_screen_trans fallback.
func newScreenEncoding(toASCII bool) *Encoding {
	e := New("screen")
	if !toASCII {
		e.AddRange(0, 256, 0)
		return e
	}
	e.AddRange(0x20, 0x40, 0x20)
	e.AddRange(0x40, 0x60, 0)
	e.AddRange(0x60, 0x100, 0x60)
	e.AddRange(0, 0x20, 0)
	return e
}
