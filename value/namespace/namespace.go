/*
 * asmvalue - Label namespace: open-addressed, multi-pass symbol table.
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

// Package namespace implements the multi-pass, hash-addressed label
// table (§4.5): a Namespace maps a canonical-folded name and strength
// tier to a Label bound to a dynamic value, visible or not depending
// on which assembly pass defined it.
package namespace

import "github.com/rcornwell/asmvalue/value"

// PassState is the assembler's current multi-pass position, threaded
// explicitly into every lookup/insert rather than held as package
// global state (the source's `pass`/`fixeddig`/`max_pass` globals),
// so a caller running more than one assembly concurrently does not
// share mutable state between them.
type PassState struct {
	Pass     int  // current pass number, 1-based
	FixedDig bool // true once a fixed point has been reached
	MaxPass  int  // non-convergence bound
}

// Label is one entry bound in a Namespace.
type Label struct {
	Name     string // defining spelling, original case
	CFName   string // canonical-folded (case-insensitive) name, used for lookup
	Hash     uint32
	Strength int // scoping strength tier; 0 is the common case
	DefPass  int // pass in which this binding was (re)defined
	Constant bool
	Used     bool // set by Member on reference, for unused-symbol diagnostics
	Value    value.Obj
}

// foldName canonicalizes a label name for case-insensitive comparison
// (ASCII only, matching the source's `cfname` folding).
func foldName(s string) string {
	b := []byte(s)
	changed := false
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(b)
}

// hashName computes the label hash from its canonical-folded name.
func hashName(cf string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(cf); i++ {
		h ^= uint32(cf[i])
		h *= 16777619
	}
	return h
}

// NewLabel builds a Label bound to value v, ready for insertion.
func NewLabel(name string, strength int, constant bool, defPass int, v value.Obj) *Label {
	cf := foldName(name)
	return &Label{
		Name:     name,
		CFName:   cf,
		Hash:     hashName(cf),
		Strength: strength,
		DefPass:  defPass,
		Constant: constant,
		Value:    v,
	}
}

const minCapacity = 8
const loadFactorNum, loadFactorDen = 3, 4 // rebuild past 0.75 load

// Namespace is an open-addressed hash table of Labels. A nil slot
// means empty; a label's table slot is fixed for its lifetime except
// across a rebuild.
type Namespace struct {
	data []*Label
	mask uint32
	len  int

	forwr int // next unused forward anonymous-label ordinal
	backr int // next unused backward anonymous-label ordinal
}

// New creates an empty namespace; its table is allocated lazily on
// first insert, mirroring new_namespace's data == NULL start state.
func New() *Namespace {
	return &Namespace{}
}

// Len reports the number of live-in-any-pass entries ever inserted
// (an entry is not physically removed when it goes out of scope
// between passes, matching the source's `len` field).
func (ns *Namespace) Len() int { return ns.len }

// live reports whether label l is visible during the given pass:
// defined in the current pass, or a constant defined in the previous
// pass while the fixed point has not yet been reached. A negative
// ps.Pass disables pass filtering entirely (every entry is live),
// used when comparing namespaces outside of an active assembly pass.
func live(l *Label, ps PassState) bool {
	if ps.Pass < 0 {
		return true
	}
	if l.DefPass == ps.Pass {
		return true
	}
	return l.Constant && (!ps.FixedDig || l.DefPass == ps.Pass-1)
}

// Live reports whether l is visible during pass ps, for callers
// outside this package that need to filter Entries() down to what a
// lookup would actually find (e.g. an end-of-run namespace dump).
func Live(l *Label, ps PassState) bool { return live(l, ps) }

// probe starts the open-addressing recurrence at hash&mask and
// advances with the source's own probe sequence
// (hash >>= 5; offs = (5*offs + hash + 1) & mask), not a conventional
// linear/quadratic probe - kept exactly as the source computes it so
// the visitation order over a given table size matches it slot for
// slot.
func probe(hash, mask uint32) (offs, h uint32) {
	return hash & mask, hash
}

func nextProbe(offs, h, mask uint32) (uint32, uint32) {
	h >>= 5
	return (5*offs + h + 1) & mask, h
}

// Lookup finds the live label matching name/strength in the current
// pass, or (nil, false).
func (ns *Namespace) Lookup(name string, strength int, ps PassState) (*Label, bool) {
	if ns.data == nil {
		return nil, false
	}
	cf := foldName(name)
	hash := hashName(cf)
	return ns.lookupFolded(cf, hash, strength, ps)
}

func (ns *Namespace) lookupFolded(cf string, hash uint32, strength int, ps PassState) (*Label, bool) {
	if ns.data == nil {
		return nil, false
	}
	mask := ns.mask
	offs, h := probe(hash, mask)
	for ns.data[offs] != nil {
		d := ns.data[offs]
		if d.Hash == hash && d.Strength == strength && live(d, ps) && d.CFName == cf {
			return d, true
		}
		offs, h = nextProbe(offs, h, mask)
	}
	return nil, false
}

// Insert binds l into the namespace, rebuilding into a doubled table
// first if the load factor would exceed 3/4. A slot occupied by a
// label with an identical hash/strength/cfname key is overwritten in
// place (a redefinition in a later pass), any other slot collision is
// resolved by continuing the probe.
func (ns *Namespace) Insert(l *Label) {
	ns.ensureCapacity()
	if ns.insertInto(ns.data, ns.mask, l) {
		ns.len++
	}
}

func (ns *Namespace) ensureCapacity() {
	if ns.data == nil {
		ns.data = make([]*Label, minCapacity)
		ns.mask = minCapacity - 1
		return
	}
	capacity := ns.mask + 1
	if (uint32(ns.len)+1)*loadFactorDen > capacity*loadFactorNum {
		ns.rebuild(capacity * 2)
	}
}

func (ns *Namespace) rebuild(newCap uint32) {
	old := ns.data
	ns.data = make([]*Label, newCap)
	ns.mask = newCap - 1
	for _, l := range old {
		if l != nil {
			ns.insertInto(ns.data, ns.mask, l)
		}
	}
}

func (ns *Namespace) insertInto(data []*Label, mask uint32, l *Label) bool {
	offs, h := probe(l.Hash, mask)
	for data[offs] != nil {
		d := data[offs]
		if d.Hash == l.Hash && d.Strength == l.Strength && d.CFName == l.CFName {
			data[offs] = l
			return false
		}
		offs, h = nextProbe(offs, h, mask)
	}
	data[offs] = l
	return true
}

// Entries returns every label ever inserted, live or not, for
// diagnostics (e.g. an end-of-pass unused-symbol sweep).
func (ns *Namespace) Entries() []*Label {
	out := make([]*Label, 0, ns.len)
	for _, l := range ns.data {
		if l != nil {
			out = append(out, l)
		}
	}
	return out
}
