/*
 * asmvalue - Cycle collector: three-phase mark/sweep over a root set.
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

// Package gc implements the three-phase mark/sweep cycle collector
// described in §4.6: reference counting alone cannot reclaim cycles
// that arise through namespaces whose bound code objects point back
// to the namespace that defines them, so the registered candidate set
// is periodically walked with the classic trial-deletion technique to
// find and free cycles no longer reachable from outside that set.
package gc

import "github.com/rcornwell/asmvalue/value"

// refHeader is the subset of value.Header's accessors the collector
// needs; any concrete type embedding value.Header satisfies it
// automatically.
type refHeader interface {
	Unref() bool
	Count() uint32
}

// Roots is the registered candidate set: every Collectable value that
// might participate in a reference cycle. A value need only be
// registered once, at construction; Collect figures out on its own
// which registered values are actually still reachable from outside
// the set.
type Roots struct {
	objs []value.Obj
}

// Register adds v to the cycle-collection candidate set.
func (r *Roots) Register(v value.Obj) {
	r.objs = append(r.objs, v)
}

// Unregister removes v from the candidate set (e.g. when the caller
// destroys it directly through ordinary reference counting and no
// longer wants it considered).
func (r *Roots) Unregister(v value.Obj) {
	for i, o := range r.objs {
		if o == v {
			r.objs = append(r.objs[:i], r.objs[i+1:]...)
			return
		}
	}
}

// Collect runs one trial-deletion cycle-collection pass:
//
//  1. Phase -1: for every tracked candidate, decrement a *shadow*
//     copy of each owned candidate's refcount (the true refcounts are
//     left untouched at this stage). A candidate whose shadow count
//     is still positive afterward is referenced from outside the
//     candidate set - by ordinary program state, not by another
//     candidate - and is therefore a root for the next phase.
//  2. Phase 1: mark-and-sweep from those implicit roots, walking the
//     real Garbage graph; every candidate reached this way is live.
//  3. Phase 0: any candidate never reached is part of an unreachable
//     cycle - free its own storage and drop its real references to
//     whatever it owned (cascading further frees if that brings a
//     non-candidate reference-counted value to zero).
func Collect(roots *Roots) {
	shadow := make(map[value.Obj]uint32, len(roots.objs))
	index := make(map[value.Obj]bool, len(roots.objs))
	for _, v := range roots.objs {
		index[v] = true
		if h, ok := v.(refHeader); ok {
			shadow[v] = h.Count()
		}
	}

	for _, v := range roots.objs {
		eachChild(v, func(child value.Obj) {
			if !index[child] {
				return
			}
			if n, ok := shadow[child]; ok && n > 0 {
				shadow[child] = n - 1
			}
		})
	}

	implicitRoots := make([]value.Obj, 0)
	for _, v := range roots.objs {
		if shadow[v] > 0 {
			implicitRoots = append(implicitRoots, v)
		}
	}

	reachable := make(map[value.Obj]bool, len(roots.objs))
	var mark func(value.Obj)
	mark = func(v value.Obj) {
		if reachable[v] {
			return
		}
		reachable[v] = true
		eachChild(v, func(child value.Obj) {
			if index[child] {
				mark(child)
			}
		})
	}
	for _, v := range implicitRoots {
		mark(v)
	}

	garbage := roots.objs[:0:0]
	for _, v := range roots.objs {
		if !reachable[v] {
			garbage = append(garbage, v)
		}
	}
	for _, v := range garbage {
		eachChild(v, func(child value.Obj) {
			if h, ok := child.(refHeader); ok {
				h.Unref()
			}
		})
		if c, ok := v.(value.Collectable); ok {
			c.Garbage(0, func(value.Obj) {})
		}
		roots.Unregister(v)
	}
}

// eachChild reports v's owned references, for Collectable v, through
// the phase -1/1 traversal slot (both report the same children in
// this repository's Collectable implementations).
func eachChild(v value.Obj, f func(value.Obj)) {
	c, ok := v.(value.Collectable)
	if !ok {
		return
	}
	c.Garbage(-1, f)
}
