/*
 * asmvalue - Run configuration: encoding preloads, namespace strengths, max pass.
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

// Package config reads the run configuration that governs a single
// assembly: which encodings to preload and from which translation
// table file, the initial namespace strength tiers, and the max_pass
// convergence bound. The format is the teacher's own line-oriented
// "key = value" grammar, not a structured format such as JSON or
// YAML, since nothing in the retrieved pack imports a config parsing
// library of any kind.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// EncodingPreload names one encoding to load at startup, and,
// optionally, a translation-table file to populate it from (see
// value/encoding.LoadEncodingFile). An empty File means the encoding
// is one of the two built-ins (none/screen) and needs no file.
type EncodingPreload struct {
	Name string
	File string
}

// Config is the parsed run configuration.
type Config struct {
	Encodings        []EncodingPreload
	NamespaceStrength []int
	MaxPass          int
	Ascii            bool
}

// DefaultMaxPass mirrors the source's default non-convergence bound.
const DefaultMaxPass = 20

// New returns a Config with the teacher-style defaults: no encoding
// preloads beyond the built-ins, a single default namespace strength
// tier, and DefaultMaxPass.
func New() *Config {
	return &Config{
		NamespaceStrength: []int{0},
		MaxPass:           DefaultMaxPass,
	}
}

// Load reads a configuration file in the format:
//
//	# comment
//	ascii = true
//	max_pass = 30
//	strength = 0, 1, 2
//	encoding = screen
//	encoding = petscii, petscii.tab
//
// Blank lines and "#" comments are skipped, mirroring
// config/configparser's own grammar.
func Load(name string) (*Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (*Config, error) {
	cfg := New()
	cfg.NamespaceStrength = nil

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := stripComment(scanner.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := parseDirective(cfg, line); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(cfg.NamespaceStrength) == 0 {
		cfg.NamespaceStrength = []int{0}
	}
	return cfg, nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		return line[:i]
	}
	return line
}

func parseDirective(cfg *Config, line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("missing '=' in directive %q", line)
	}
	key = strings.TrimSpace(strings.ToLower(key))
	value = strings.TrimSpace(value)

	switch key {
	case "ascii":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("ascii: %w", err)
		}
		cfg.Ascii = b
	case "max_pass":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("max_pass: %w", err)
		}
		cfg.MaxPass = n
	case "strength":
		for _, tok := range strings.Split(value, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			n, err := strconv.Atoi(tok)
			if err != nil {
				return fmt.Errorf("strength: %w", err)
			}
			cfg.NamespaceStrength = append(cfg.NamespaceStrength, n)
		}
	case "encoding":
		name, file, _ := strings.Cut(value, ",")
		cfg.Encodings = append(cfg.Encodings, EncodingPreload{
			Name: strings.TrimSpace(name),
			File: strings.TrimSpace(file),
		})
	default:
		return fmt.Errorf("unknown directive %q", key)
	}
	return nil
}
