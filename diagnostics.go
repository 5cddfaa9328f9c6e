// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdf

// DiagnosticHandler receives non-fatal problems encountered while decoding
// a PDF construct that the caller chose to recover from, for example by
// substituting a placeholder shape for a shading with a malformed stream.
// A nil handler is valid and simply discards diagnostics.
type DiagnosticHandler interface {
	Diagnostic(err error)
}

// DiagnosticFunc adapts a plain function to [DiagnosticHandler].
type DiagnosticFunc func(err error)

// Diagnostic implements [DiagnosticHandler].
func (f DiagnosticFunc) Diagnostic(err error) {
	f(err)
}

// Report sends err to h if h is non-nil. It is a convenience for call
// sites that hold a DiagnosticHandler that may be nil.
func Report(h DiagnosticHandler, err error) {
	if h != nil && err != nil {
		h.Diagnostic(err)
	}
}
