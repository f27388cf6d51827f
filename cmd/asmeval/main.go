/*
 * asmvalue - Interactive expression REPL.
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

package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	getopt "github.com/pborman/getopt/v2"
	"github.com/peterh/liner"

	"github.com/rcornwell/asmvalue/eval"
	"github.com/rcornwell/asmvalue/util/logger"
	"github.com/rcornwell/asmvalue/value"
	"github.com/rcornwell/asmvalue/value/encoding"
	"github.com/rcornwell/asmvalue/value/namespace"
	"github.com/rcornwell/asmvalue/value/oper"
)

var Logger *slog.Logger

func main() {
	optEncoding := getopt.StringLong("encoding", 'e', "none", "Active character encoding")
	optAscii := getopt.BoolLong("ascii", 'a', "Load PETSCII-shaped tables instead of identity")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, new(bool)))
	slog.SetDefault(Logger)
	oper.Diagnostic = logger.EnableDiagnostics(Logger)

	registry := encoding.NewRegistry(*optAscii)
	active, ok := registry.Lookup(*optEncoding)
	if !ok {
		Logger.Error(fmt.Sprintf("unknown encoding %q", *optEncoding))
		os.Exit(1)
	}

	names := namespace.New()
	env := &eval.Env{
		Names: names,
		Pass:  namespace.PassState{Pass: 1, MaxPass: 20},
		None:  value.None(),
	}

	Logger.Info("asmeval started", "encoding", active.Name())
	runRepl(env)
}

func runRepl(env *eval.Env) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	for {
		input, err := line.Prompt("asmeval> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			Logger.Error("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(input)
		if input == "" {
			continue
		}
		if input == ":quit" || input == ":q" {
			return
		}
		if strings.HasPrefix(input, ":") {
			runCommand(input, env)
			continue
		}

		v, err := eval.Eval(input, env)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		repr, err := v.Repr(0)
		if err != nil {
			fmt.Println("error:", err)
			continue
		}
		fmt.Println(repr)
	}
}

// runCommand handles the REPL's meta-commands: ":def name[@strength]
// = expr" binds a label in the active namespace, ":pass n" advances the
// pass counter (and, on reaching max_pass, the fixed-point flag),
// ":save file" writes every live label to a flat snapshot file that
// cmd/asmtool's ns-dump subcommand reads back.
func runCommand(input string, env *eval.Env) {
	fields := strings.SplitN(strings.TrimPrefix(input, ":"), " ", 2)
	switch fields[0] {
	case "def":
		if len(fields) != 2 {
			fmt.Println("usage: :def name[@strength] = expr")
			return
		}
		runDef(fields[1], env)
	case "pass":
		if len(fields) != 2 {
			fmt.Println("usage: :pass n")
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		env.Pass.Pass = n
		env.Pass.FixedDig = n >= env.Pass.MaxPass
		fmt.Printf("pass=%d fixeddig=%t\n", env.Pass.Pass, env.Pass.FixedDig)
	case "save":
		if len(fields) != 2 {
			fmt.Println("usage: :save file")
			return
		}
		if err := saveNamespace(env, strings.TrimSpace(fields[1])); err != nil {
			fmt.Println("error:", err)
		}
	default:
		fmt.Printf("unknown command %q\n", fields[0])
	}
}

func runDef(rest string, env *eval.Env) {
	parts := strings.SplitN(rest, "=", 2)
	if len(parts) != 2 {
		fmt.Println("usage: :def name[@strength] = expr")
		return
	}
	head := strings.TrimSpace(parts[0])
	name, strength := head, 0
	if i := strings.IndexByte(head, '@'); i >= 0 {
		name = strings.TrimSpace(head[:i])
		s, err := strconv.Atoi(strings.TrimSpace(head[i+1:]))
		if err != nil {
			fmt.Println("error: bad strength:", err)
			return
		}
		strength = s
	}

	v, err := eval.Eval(strings.TrimSpace(parts[1]), env)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	label := namespace.NewLabel(name, strength, false, env.Pass.Pass, v)
	env.Names.Insert(label)
	repr, _ := v.Repr(0)
	fmt.Printf("%s = %s\n", name, repr)
}

// saveNamespace writes one tab-separated record per label currently
// live in env's pass to path: name, strength, constant flag (1/0),
// defining pass, repr.
func saveNamespace(env *eval.Env, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	defer w.Flush()

	n := 0
	for _, l := range env.Names.Entries() {
		if !namespace.Live(l, env.Pass) {
			continue
		}
		repr, err := l.Value.Repr(0)
		if err != nil {
			repr = "<error: " + err.Error() + ">"
		}
		constFlag := "0"
		if l.Constant {
			constFlag = "1"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", l.Name, l.Strength, constFlag, l.DefPass, repr)
		n++
	}
	fmt.Printf("saved %d label(s) to %s\n", n, path)
	return nil
}
