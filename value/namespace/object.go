/*
 * asmvalue - Label namespace: value.Obj surface and member access.
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

package namespace

import (
	"fmt"
	"strconv"

	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/oper"
)

func (ns *Namespace) Type() value.Type { return value.TNamespace }

// Same is mutual-subset equality over every entry ever bound
// (value.Obj.Same carries no pass context to filter by liveness; use
// SameAt during assembly itself, when pass-scoped equality matters).
func (ns *Namespace) Same(other value.Obj) bool {
	o, ok := other.(*Namespace)
	if !ok {
		return false
	}
	allPasses := PassState{Pass: -1}
	return ns.issubset(o, allPasses) && o.issubset(ns, allPasses)
}

// SameAt is mutual-subset equality restricted to entries live under
// ps, the form namespace equality needs during an assembly pass.
func (ns *Namespace) SameAt(other *Namespace, ps PassState) bool {
	return ns.issubset(other, ps) && other.issubset(ns, ps)
}

// issubset reports whether every entry of ns live under ps (or, when
// ps.Pass < 0, every entry regardless of pass) has a same-valued live
// entry in other.
func (ns *Namespace) issubset(other *Namespace, ps PassState) bool {
	for _, l := range ns.Entries() {
		if ps.Pass >= 0 && !live(l, ps) {
			continue
		}
		d, ok := other.lookupFolded(l.CFName, l.Hash, l.Strength, ps)
		if !ok {
			return false
		}
		if !l.Value.Same(d.Value) {
			return false
		}
	}
	return true
}

func (ns *Namespace) Truth(value.TruthMode) (bool, error) { return true, nil }

func (ns *Namespace) Hash() uint32 { return uint32(ns.len) * 2654435761 }

func (ns *Namespace) Repr(maxChars int) (string, error) {
	out := "namespace({...})"
	if maxChars > 0 && len(out) > maxChars {
		return "", &value.ArithmeticError{Kind: value.ErrBigString}
	}
	return out, nil
}

// Ident is the member-access key: a bare identifier name plus its
// source location-free reference flag (whether an undefined result
// should be reported as an error at all, vs silently producing None).
type Ident struct {
	Name      string
	Strength  int
	Reference bool // false during speculative/constant-folding lookups
}

// NotDefinedError mirrors ERROR___NOT_DEFINED: reports a missing
// identifier against the namespace it was looked up in.
type NotDefinedError struct {
	Names *Namespace
	Ident string
}

func (e *NotDefinedError) Error() string {
	return "not defined: " + strconv.Quote(e.Ident)
}

// Member implements obj . ident: look up ident by canonical-folded
// name; on hit, mark it used and return its bound value; on miss
// during early/speculative passes return value.None (the caller's
// none singleton, passed in so this package does not need its own);
// on miss in resolved passes return a NotDefinedError.
func (ns *Namespace) Member(id Ident, ps PassState, none value.Obj, constCreated bool) (value.Obj, error) {
	l, ok := ns.Lookup(id.Name, id.Strength, ps)
	if ok {
		l.Used = true
		if l.Name != id.Name && oper.Diagnostic != nil {
			oper.Diagnostic("case_symbol",
				fmt.Sprintf("reference %q differs in case from defining label %q", id.Name, l.Name))
		}
		return l.Value, nil
	}
	if !id.Reference || (constCreated && ps.Pass < ps.MaxPass) {
		return none, nil
	}
	return nil, &NotDefinedError{Names: ns, Ident: id.Name}
}
