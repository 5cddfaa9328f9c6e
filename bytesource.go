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

import "io"

// ByteSource is the byte-level collaborator that a streaming decoder such
// as [the shading bit reader] pulls stream contents from. Unlike io.Reader,
// ReadByte is permitted to return [ErrMissingData] instead of io.EOF when
// the stream has more bytes coming but they have not arrived yet (for
// example, while a content stream is still being read off the wire
// incrementally). A finished stream reports io.EOF as usual.
type ByteSource interface {
	ReadByte() (byte, error)
}

// SliceSource adapts an in-memory byte slice to [ByteSource]. It never
// returns [ErrMissingData]; once exhausted it reports io.EOF like a plain
// bytes.Reader. Test code and callers that already have the full stream
// buffered in memory use this rather than writing their own adapter.
type SliceSource struct {
	data []byte
	pos  int
}

// NewSliceSource wraps data as a [ByteSource].
func NewSliceSource(data []byte) *SliceSource {
	return &SliceSource{data: data}
}

// ReadByte implements [ByteSource].
func (s *SliceSource) ReadByte() (byte, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	b := s.data[s.pos]
	s.pos++
	return b, nil
}
