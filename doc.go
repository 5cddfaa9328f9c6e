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

// Package pdf provides the minimal PDF object model needed by the
// mesh-shading decode core: the indirect-object resolver, the xref table,
// the document writer, encryption and the file trailer all live outside
// this package's scope. What remains is the part every sub-package here
// actually touches: [Object] values, [Dict] lookups, [Getter] resolution of
// indirect references, and the [Stream] wrapper around a content byte
// source.
//
// Callers that need a full PDF file reader/writer should look to the
// collaborating package that implements [Getter]; this package only
// describes the shapes it expects from that collaborator.
package pdf
