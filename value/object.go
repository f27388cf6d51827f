/*
 * asmvalue - Core object runtime: type tags, reference counting, dispatch slots.
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

// Package value defines the polymorphic object model shared by every
// dynamic value in the assembler's expression language: integers,
// bit-vectors, encodings, namespaces and the rest all satisfy Obj.
package value

// Type tags the runtime kind of an Obj. Used for fast switches in
// the dispatcher and for diagnostics; it never participates in
// equality or hashing on its own.
type Type int

const (
	TNone Type = iota
	TBool
	TInt
	TFloat
	TBits
	TStr
	TBytes
	TNamespace
	TError
	TList
	TTuple
)

func (t Type) String() string {
	switch t {
	case TNone:
		return "none"
	case TBool:
		return "bool"
	case TInt:
		return "int"
	case TFloat:
		return "float"
	case TBits:
		return "bits"
	case TStr:
		return "str"
	case TBytes:
		return "bytes"
	case TNamespace:
		return "namespace"
	case TError:
		return "error"
	case TList:
		return "list"
	case TTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// TruthMode selects how Obj.Truth interprets a value as boolean.
type TruthMode int

const (
	// TruthDefault is "value is non-zero".
	TruthDefault TruthMode = iota
	// TruthAny is "any bit is set within the explicit width".
	TruthAny
	// TruthAll is "all bits are set within the explicit width".
	TruthAll
)

// refMSB is the reference-count high bit reserved for the cycle
// collector's mark phase (see package gc).
const refMSB = uint32(1) << 31

// Header is the reference count (with the collector's mark bit) that a
// concrete value embeds to take part in reference counting and cycle
// collection. bignum.Int, bitvec.Bits and namespace.Namespace do not
// embed it and carry no reference count.
type Header struct {
	refcount uint32
}

func loBits(v uint32) uint32 { return v &^ refMSB }

// Ref increments the reference count. Every stored reference to a
// value must have called Ref exactly once.
func (h *Header) Ref() { h.refcount = (h.refcount & refMSB) | (loBits(h.refcount) + 1) }

// Unref decrements the reference count and reports whether it
// reached zero (the caller must then run the owner's destroy logic).
func (h *Header) Unref() bool {
	lo := loBits(h.refcount)
	if lo == 0 {
		return true
	}
	lo--
	h.refcount = (h.refcount & refMSB) | lo
	return lo == 0
}

// Unique reports whether the caller holds the only reference, the
// precondition for in-place mutation.
func (h *Header) Unique() bool { return loBits(h.refcount) <= 1 }

// Count returns the reference count ignoring the mark bit.
func (h *Header) Count() uint32 { return loBits(h.refcount) }

// Marked reports whether the cycle-collector mark bit is set.
func (h *Header) Marked() bool { return h.refcount&refMSB != 0 }

// SetMark sets or clears the mark bit without disturbing the count.
func (h *Header) SetMark(v bool) {
	if v {
		h.refcount |= refMSB
	} else {
		h.refcount &^= refMSB
	}
}

// Obj is the operation vtable every runtime value implements. Optional
// slots (slice, function, getiter, len, iaddress/uaddress, garbage)
// are expressed as narrower interfaces a dispatcher probes with a
// type assertion, the same way the teacher's device package exposes
// capability interfaces beyond the base Device contract.
type Obj interface {
	Type() Type
	Same(other Obj) bool
	Truth(mode TruthMode) (bool, error)
	Hash() uint32
	Repr(maxChars int) (string, error)
}

// Calc1 is implemented by types supporting a unary operator.
type Calc1 interface {
	Calc1(op int) (Obj, error)
}

// Calc2 is implemented by types supporting left-hand binary dispatch.
// ErrNotApplicable signals the dispatcher should try the right-hand
// fallback (RCalc2) of the other operand.
type Calc2 interface {
	Calc2(op int, other Obj) (Obj, error)
}

// RCalc2 is the right-hand fallback counterpart to Calc2.
type RCalc2 interface {
	RCalc2(op int, other Obj) (Obj, error)
}

// Slicer is implemented by sliceable/indexable types (Bits, strings,
// lists).
type Slicer interface {
	Slice(args any) (Obj, error)
}

// Lener is implemented by types with an explicit element count.
type Lener interface {
	Len() (int, error)
}

// Collectable participates in the three-phase cycle collector (see
// package gc). Garbage reports this value's owned references to
// visit, and frees its own backing storage when phase == 0; the
// per-reference action for phase -1 (decrement) and phase 1 (mark)
// is the driver's responsibility, not the implementor's - Garbage's
// only job is traversal structure, not refcount policy.
type Collectable interface {
	Garbage(phase int, visit func(Obj))
}

// ErrNotApplicable is returned by Calc1/Calc2/RCalc2 implementations
// that do not handle the given operator/operand combination, so the
// dispatcher can fall through to the next candidate.
var ErrNotApplicable = newSentinel("operator not applicable to operand")

type sentinelError string

func newSentinel(msg string) error { return sentinelError(msg) }

func (e sentinelError) Error() string { return string(e) }
