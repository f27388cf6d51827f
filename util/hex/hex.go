/*
 * S370 - Convert Hex to strings.
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

// Package hex formats raw limb and byte slices as hex text for the
// batch dump subcommands in cmd/asmtool. It carries forward the
// teacher's own byte/word hex formatting helpers, narrowed to the
// two shapes this repository's value types actually expose:
// little-endian uint32 limb arrays (bignum.Int, bitvec.Bits) and
// plain byte slices (encoder output).
package hex

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord writes each 32-bit limb as 8 hex digits, most
// significant limb first, space-separated.
func FormatWord(str *strings.Builder, word []uint32) {
	for i := len(word) - 1; i >= 0; i-- {
		full := word[i]
		shift := 28
		for range 8 {
			str.WriteByte(hexMap[(full>>shift)&0xf])
			shift -= 4
		}
		if i > 0 {
			str.WriteByte(' ')
		}
	}
}

// FormatBytes writes data as pairs of hex digits, optionally
// space-separated.
func FormatBytes(str *strings.Builder, space bool, data []uint8) {
	for i, by := range data {
		str.WriteByte(hexMap[(by>>4)&0xf])
		str.WriteByte(hexMap[by&0xf])
		if space && i != len(data)-1 {
			str.WriteByte(' ')
		}
	}
}

// FormatByte writes a single byte as two hex digits.
func FormatByte(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[(data>>4)&0xf])
	str.WriteByte(hexMap[data&0xf])
}
