/*
 * asmvalue - Label namespace: anonymous label resolution.
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

	"github.com/rcornwell/asmvalue/value"
)

// anonName builds the internal name an anonymous label of the given
// direction and ordinal is stored under: "+" labels count forward
// from forwr, "-" labels count backward from backr, so `++` at the
// third forward definition in this namespace gets a distinct key from
// every other forward definition.
func anonName(forward bool, ordinal int) string {
	if forward {
		return fmt.Sprintf("+%d", ordinal)
	}
	return fmt.Sprintf("-%d", ordinal)
}

// DefineAnon binds the next anonymous label in the given direction
// (forward for `+`-style definitions seen walking down the source,
// backward for `-`-style) and returns it, advancing the namespace's
// counter so the next definition in that direction gets a fresh slot.
func (ns *Namespace) DefineAnon(forward bool, defPass int, v value.Obj) *Label {
	var ordinal int
	if forward {
		ordinal = ns.forwr
		ns.forwr++
	} else {
		ordinal = ns.backr
		ns.backr++
	}
	l := NewLabel(anonName(forward, ordinal), 0, false, defPass, v)
	ns.Insert(l)
	return l
}

// FindAnonLabel resolves `n` repetitions of `+` (n>0, forward) or `-`
// (n<0, backward) counted from the current position: n==1 ("+") finds
// the first not-yet-consumed forward definition, n==2 ("++") the
// second, and so on, mirroring find_anonlabel2(n, ns). at is the
// count of anonymous labels of that direction already passed at the
// point of reference (the source walks this incrementally as it
// scans; callers here supply it directly).
func (ns *Namespace) FindAnonLabel(n int, at int, ps PassState) (*Label, bool) {
	forward := n > 0
	count := n
	if !forward {
		count = -n
	}
	ordinal := at + count - 1
	return ns.Lookup(anonName(forward, ordinal), 0, ps)
}
