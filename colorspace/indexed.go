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

import (
	"fmt"
	"io"

	"seehuhn.de/go/pdf"
)

// Indexed represents the Indexed color space: a single-component index
// into a fixed-size palette of colors from a base color space.
type Indexed struct {
	Base   Space
	HiVal  int
	Lookup []byte // HiVal+1 entries of Base.Channels() bytes each
}

// Channels always returns 1 for Indexed: the single component is the
// palette index.
func (s *Indexed) Channels() int { return 1 }

// ToRGB looks the index up in the palette and converts the resulting base
// color to RGB. The index is clamped to [0, HiVal].
func (s *Indexed) ToRGB(values []float64) (r, g, b float64) {
	idx := int(values[0] + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx > s.HiVal {
		idx = s.HiVal
	}

	n := s.Base.Channels()
	offset := idx * n
	comps := make([]float64, n)
	for i := 0; i < n; i++ {
		if offset+i < len(s.Lookup) {
			comps[i] = float64(s.Lookup[offset+i]) / 255
		}
	}
	return s.Base.ToRGB(comps)
}

// extractIndexed reads an [/Indexed base hival lookup] array.
func extractIndexed(r pdf.Getter, arr pdf.Array) (*Indexed, error) {
	if len(arr) != 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("Indexed array must have 4 elements, got %d", len(arr))}
	}

	base, err := Extract(r, arr[1])
	if err != nil {
		return nil, fmt.Errorf("Indexed base space: %w", err)
	}

	hiVal, err := pdf.GetInteger(r, arr[2])
	if err != nil {
		return nil, fmt.Errorf("Indexed HiVal: %w", err)
	}
	if hiVal < 0 || hiVal > 255 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("Indexed HiVal out of range: %d", hiVal)}
	}

	lookup, err := readIndexedLookup(r, arr[3])
	if err != nil {
		return nil, fmt.Errorf("Indexed lookup table: %w", err)
	}

	return &Indexed{Base: base, HiVal: int(hiVal), Lookup: lookup}, nil
}

// readIndexedLookup accepts either a PDF string or a stream for the lookup
// table, matching both forms the spec permits.
func readIndexedLookup(r pdf.Getter, obj pdf.Object) ([]byte, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	switch v := resolved.(type) {
	case pdf.String:
		return []byte(v), nil
	case *pdf.Stream:
		if v.R == nil {
			return nil, nil
		}
		return io.ReadAll(byteSourceReader{v.R})
	default:
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("expected string or stream, got %T", resolved)}
	}
}
