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

package colorspace

import "seehuhn.de/go/pdf"

// byteSourceReader adapts a [pdf.ByteSource] to an [io.Reader], for the rare
// cases where a color space needs to read stream data (an Indexed lookup
// table stored as a stream rather than a string).
type byteSourceReader struct {
	src pdf.ByteSource
}

func (r byteSourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	b, err := r.src.ReadByte()
	if err != nil {
		return 0, err
	}
	p[0] = b
	return 1, nil
}
