/*
 * asmvalue - Character encoder: translation-table file loader.
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
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

/* Translation table file format, one directive per line:
 *
 * '#' starts a comment, rest of line ignored; blank lines skipped.
 * range <start> <end> <offset>   - AddRange(start, end, offset)
 * escape <quoted-source> <hex-bytes...>  - AddEscape(source, bytes)
 *
 * <start>/<end>/<offset> accept any strconv.ParseInt base prefix
 * (0x.., 0.., or decimal). <quoted-source> is a "..." string with Go
 * escape sequences. <hex-bytes...> is a space-separated list of two
 * hex digit bytes.
 */

// LoadEncodingFile reads a translation/escape table from a
// config-style text file into enc, in the same line-oriented,
// bufio-scanned, #-commented grammar the configuration loader uses
// for the rest of this repository's settings.
func LoadEncodingFile(enc *Encoding, name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseDirective(enc, line); err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNumber, err)
		}
	}
	return scanner.Err()
}

func parseDirective(enc *Encoding, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	switch strings.ToLower(fields[0]) {
	case "range":
		return parseRangeDirective(enc, fields[1:])
	case "escape":
		return parseEscapeDirective(enc, line, fields[1:])
	default:
		return fmt.Errorf("unknown directive %q", fields[0])
	}
}

func parseRangeDirective(enc *Encoding, fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("range requires 3 fields, got %d", len(fields))
	}
	start, err := strconv.ParseInt(fields[0], 0, 64)
	if err != nil {
		return fmt.Errorf("range start: %w", err)
	}
	end, err := strconv.ParseInt(fields[1], 0, 64)
	if err != nil {
		return fmt.Errorf("range end: %w", err)
	}
	offset, err := strconv.ParseInt(fields[2], 0, 64)
	if err != nil {
		return fmt.Errorf("range offset: %w", err)
	}
	enc.AddRange(uint32(start), uint32(end), int32(offset))
	return nil
}

func parseEscapeDirective(enc *Encoding, line string, fields []string) error {
	quoted, rest, err := splitQuoted(line)
	_ = fields
	if err != nil {
		return err
	}
	key, err := strconv.Unquote(quoted)
	if err != nil {
		return fmt.Errorf("escape source: %w", err)
	}
	var data []byte
	for _, tok := range strings.Fields(rest) {
		b, err := strconv.ParseUint(tok, 16, 8)
		if err != nil {
			return fmt.Errorf("escape byte %q: %w", tok, err)
		}
		data = append(data, byte(b))
	}
	if len(data) == 0 {
		return fmt.Errorf("escape %q has no output bytes", key)
	}
	enc.AddEscape([]byte(key), data)
	return nil
}

// splitQuoted finds the first "..." quoted token in line (after the
// leading "escape" keyword) and returns it along with everything
// after its closing quote.
func splitQuoted(line string) (quoted, rest string, err error) {
	start := strings.IndexByte(line, '"')
	if start < 0 {
		return "", "", fmt.Errorf("escape directive missing quoted source string")
	}
	end := start + 1
	for end < len(line) {
		if line[end] == '\\' {
			end += 2
			continue
		}
		if line[end] == '"' {
			break
		}
		end++
	}
	if end >= len(line) {
		return "", "", fmt.Errorf("unterminated quoted source string")
	}
	return line[start : end+1], line[end+1:], nil
}
