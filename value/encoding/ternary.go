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

// Package encoding implements the pluggable character encoder: a
// sorted range table mapping source character ranges to output byte
// offsets, plus a ternary search tree matching multi-character escape
// sequences (`{esc}`-style names) to their output byte strings, per
// §4.4 of the value-system design.
package encoding

// ternaryNode is one node of a ternary search tree keyed by byte,
// mirroring the source's escape-sequence lookup structure
// (encoding.c's `ternary_tree`): low/high are ordinary BST branches on
// this byte, eq descends to the next key byte once this one matches.
type ternaryNode struct {
	ch          byte
	low, eq, hi *ternaryNode
	value       []byte
	terminal    bool
}

func ternaryInsert(root **ternaryNode, key []byte, value []byte) {
	if len(key) == 0 {
		return
	}
	insert(root, key, 0, value)
}

func insert(np **ternaryNode, key []byte, pos int, value []byte) {
	n := *np
	c := key[pos]
	if n == nil {
		n = &ternaryNode{ch: c}
		*np = n
	}
	switch {
	case c < n.ch:
		insert(&n.low, key, pos, value)
	case c > n.ch:
		insert(&n.hi, key, pos, value)
	case pos+1 < len(key):
		insert(&n.eq, key, pos+1, value)
	default:
		n.value = value
		n.terminal = true
	}
}

// longestMatch walks data against the tree, returning the value and
// consumed length of the longest key that is a prefix of data. When no
// key is a prefix of data, ok is false.
func longestMatch(root *ternaryNode, data []byte) (value []byte, consumed int, ok bool) {
	n := root
	pos := 0
	var bestValue []byte
	bestLen := 0
	for n != nil && pos < len(data) {
		c := data[pos]
		switch {
		case c < n.ch:
			n = n.low
		case c > n.ch:
			n = n.hi
		default:
			if n.terminal {
				bestValue = n.value
				bestLen = pos + 1
			}
			pos++
			n = n.eq
		}
	}
	if bestLen == 0 {
		return nil, 0, false
	}
	return bestValue, bestLen, true
}
