/*
 * asmvalue - Label namespace: operator dispatch and cycle-collector hook.
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
	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/oper"
)

// Calc2 implements the one binary operator a namespace itself
// recognizes directly: OMember is handled by the caller via Member
// (member access needs the pass state and the none singleton, neither
// of which the Calc2 surface carries), so this only propagates
// None/Error right-hand operands and otherwise declines.
func (ns *Namespace) Calc2(op int, other value.Obj) (value.Obj, error) {
	if oper.Op(op) == oper.OMember {
		return nil, value.ErrNotApplicable
	}
	if other != nil && (other.Type() == value.TNone || other.Type() == value.TError) {
		return other, nil
	}
	return nil, value.ErrNotApplicable
}

// Garbage implements value.Collectable: phases -1 and 1 report every
// bound value to visit for the collector to decrement or mark, phase
// 0 releases the backing table (mirroring namespaceobj.c's garbage(),
// with the refcount/mark bookkeeping itself moved into package gc's
// driver rather than poked directly from here).
func (ns *Namespace) Garbage(phase int, visit func(value.Obj)) {
	if ns.data == nil {
		return
	}
	switch phase {
	case -1, 1:
		for _, l := range ns.data {
			if l != nil {
				visit(l.Value)
			}
		}
	case 0:
		ns.data = nil
	}
}
