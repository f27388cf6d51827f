/*
 * asmvalue - Batch command-line tool for the expression value model.
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

// asmtool is the non-interactive counterpart to cmd/asmeval: one
// subcommand per batch operation instead of a REPL loop, built on
// cobra the way the broader pack's Z80 optimizer tool structures its
// CLI surface.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcornwell/asmvalue/eval"
	"github.com/rcornwell/asmvalue/util/hex"
	"github.com/rcornwell/asmvalue/value/bignum"
	"github.com/rcornwell/asmvalue/value/bitvec"
	"github.com/rcornwell/asmvalue/value/encoding"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asmtool",
		Short: "Batch inspection tool for the 6502 assembler value model",
	}

	rootCmd.AddCommand(intCmd(), bitsCmd(), encodeCmd(), nsDumpCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// intCmd parses an expression into an Int and prints its decimal and
// hex-limb representation.
func intCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "int <expr>",
		Short: "Parse and print a decimal/hex dump of an Int expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := eval.Eval(args[0], nil)
			if err != nil {
				return err
			}
			x, ok := v.(*bignum.Int)
			if !ok {
				bl, ok := v.(bignum.BitsLike)
				if !ok {
					return fmt.Errorf("expression %q is not an int or bits value", args[0])
				}
				x = bignum.FromBits(bl)
			}
			repr, err := x.Repr(0)
			if err != nil {
				return err
			}
			fmt.Printf("decimal: %s\n", repr)
			fmt.Printf("sign:    %d\n", x.Sign())
			var sb strings.Builder
			hex.FormatWord(&sb, x.Limbs())
			fmt.Printf("limbs:   %s\n", sb.String())
			return nil
		},
	}
}

// bitsCmd parses an expression into a Bits and prints its width,
// inversion state and hex-limb dump.
func bitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bits <expr>",
		Short: "Parse and print the width, inversion and hex-limb dump of a Bits expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := eval.Eval(args[0], nil)
			if err != nil {
				return err
			}
			b, ok := v.(*bitvec.Bits)
			if !ok {
				i, ok := v.(*bignum.Int)
				if !ok {
					return fmt.Errorf("expression %q is not a bits or int value", args[0])
				}
				b = bitvec.FromInt(i)
			}
			repr, err := b.Repr(0)
			if err != nil {
				return err
			}
			fmt.Printf("repr:     %s\n", repr)
			fmt.Printf("width:    %d\n", b.Width())
			fmt.Printf("inverted: %t\n", b.Inverted())
			var sb strings.Builder
			hex.FormatWord(&sb, b.RawLimbs())
			fmt.Printf("limbs:    %s\n", sb.String())
			return nil
		},
	}
}

// encodeCmd runs the encoder pipeline over a file's bytes and dumps
// the translated target bytes as hex.
func encodeCmd() *cobra.Command {
	var encName string
	var ascii bool

	cmd := &cobra.Command{
		Use:   "encode <file>",
		Short: "Run the encoder pipeline over a file and dump target bytes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			registry := encoding.NewRegistry(ascii)
			enc, ok := registry.Lookup(encName)
			if !ok {
				return fmt.Errorf("unknown encoding %q", encName)
			}
			out, err := enc.EncodeAll(data)
			if err != nil {
				return err
			}
			var sb strings.Builder
			hex.FormatBytes(&sb, true, out)
			fmt.Println(sb.String())
			if enc.Failed() {
				fmt.Fprintln(os.Stderr, "warning: one or more characters had no mapping")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&encName, "enc", "none", "Active character encoding")
	cmd.Flags().BoolVar(&ascii, "ascii", false, "Load PETSCII-shaped tables instead of identity")
	return cmd
}

// nsDumpCmd loads a namespace snapshot produced by the REPL's :save
// command and prints every entry it recorded.
func nsDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ns-dump <dump-file>",
		Short: "Load a namespace snapshot and print every recorded label",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			scanner := bufio.NewScanner(f)
			count := 0
			for scanner.Scan() {
				line := scanner.Text()
				if line == "" {
					continue
				}
				rec, err := parseSnapshotLine(line)
				if err != nil {
					return fmt.Errorf("malformed snapshot line %q: %w", line, err)
				}
				tag := ""
				if rec.constant {
					tag = " const"
				}
				fmt.Printf("%-20s strength=%d pass=%d%s = %s\n",
					rec.name, rec.strength, rec.defPass, tag, rec.repr)
				count++
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			fmt.Printf("%d label(s)\n", count)
			return nil
		},
	}
}

type snapshotRecord struct {
	name     string
	strength int
	constant bool
	defPass  int
	repr     string
}

// parseSnapshotLine parses one tab-separated record written by the
// REPL's :save command (see cmd/asmeval's saveNamespace): name,
// strength, constant flag, defining pass, repr — in that order.
func parseSnapshotLine(line string) (snapshotRecord, error) {
	fields := strings.SplitN(line, "\t", 5)
	if len(fields) != 5 {
		return snapshotRecord{}, fmt.Errorf("expected 5 tab-separated fields, got %d", len(fields))
	}
	strength, err := strconv.Atoi(fields[1])
	if err != nil {
		return snapshotRecord{}, err
	}
	defPass, err := strconv.Atoi(fields[3])
	if err != nil {
		return snapshotRecord{}, err
	}
	return snapshotRecord{
		name:     fields[0],
		strength: strength,
		constant: fields[2] == "1",
		defPass:  defPass,
		repr:     fields[4],
	}, nil
}
