/*
 * asmvalue - Non-fatal diagnostic channel wired to the value package.
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

package logger

import "log/slog"

// DiagnosticLogger is the slog.Logger that EnableDiagnostics wires
// non-fatal evaluator warnings (strict_bool, case_symbol, deprecated
// shifts) through. Left nil until EnableDiagnostics is called, so
// packages that never opt in pay nothing.
var DiagnosticLogger *slog.Logger

// EnableDiagnostics installs l as the destination for diagnostic
// reports and returns the reporting function the value/oper and
// namespace packages expect: a (kind, msg string) callback invoked at
// slog.Warn level with a "diagnostic" attribute, the same "log and
// continue" shape the teacher uses for recoverable device errors.
func EnableDiagnostics(l *slog.Logger) func(kind, msg string) {
	DiagnosticLogger = l
	return func(kind, msg string) {
		l.Warn(msg, slog.String("diagnostic", kind))
	}
}
