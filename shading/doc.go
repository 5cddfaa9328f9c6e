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

// Package shading decodes PDF shading dictionaries (ShadingType 2-7) into a
// flat, rasterizer-ready intermediate representation. Function-based
// shadings (type 1), like any other unknown type, yield a [Dummy] IR.
//
// Axial and radial shadings (types 2 and 3) are sampled into a fixed number
// of color stops. Mesh shadings (types 4-7) are decoded from their packed
// bitstream into triangle and lattice figures; Coons and tensor-product
// patches (types 6 and 7) are additionally tessellated into lattices before
// the result is packed into contiguous coordinate and color buffers.
//
// Decoding a shading never panics and never returns a partial result: on any
// recoverable failure the whole shading degrades to a [Dummy] IR value, with
// the original cause reported through a [pdf.DiagnosticHandler]. The one
// exception is [pdf.ErrMissingData], which is propagated unchanged so the
// caller can retry once more bytes of the underlying stream are available.
package shading
