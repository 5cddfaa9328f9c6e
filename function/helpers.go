// seehuhn.de/go/pdf - a library for reading and writing PDF files
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
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

package function

import (
	"math"

	"seehuhn.de/go/pdf"
)

func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}

// isPair checks if the given values x and y are finite.
func isPair(x, y float64) bool {
	return !math.IsInf(x, 0) && !math.IsInf(y, 0) && !math.IsNaN(x) && !math.IsNaN(y)
}

// isRange checks if the given values x and y are finite and satisfy x <= y.
func isRange(x, y float64) bool {
	return !math.IsInf(x, 0) && !math.IsInf(y, 0) && x <= y
}

// clip clips a value to the given range [min, max].
func clip(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// interpolate performs linear interpolation.
func interpolate(x, xMin, xMax, yMin, yMax float64) float64 {
	if xMax <= xMin {
		return yMin
	}
	return yMin + (x-xMin)*(yMax-yMin)/(xMax-xMin)
}

// byteSourceReader adapts a [pdf.ByteSource] to io.Reader, one byte at a
// time. Errors from the source (including [pdf.ErrMissingData]) pass
// through unchanged.
type byteSourceReader struct {
	src pdf.ByteSource
}

func (r byteSourceReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for i := range p {
		b, err := r.src.ReadByte()
		if err != nil {
			return i, err
		}
		p[i] = b
	}
	return len(p), nil
}

// floatsFromPDF resolves obj as a PDF array and converts each element to a
// float64, accepting both Integer and Real entries.
func floatsFromPDF(r pdf.Getter, obj pdf.Object) ([]float64, error) {
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	out := make([]float64, len(arr))
	for i, elem := range arr {
		v, err := pdf.GetNumber(r, elem)
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return out, nil
}

// intsFromPDF resolves obj as a PDF array and converts each element to an
// int.
func intsFromPDF(r pdf.Getter, obj pdf.Object) ([]int, error) {
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	out := make([]int, len(arr))
	for i, elem := range arr {
		v, err := pdf.GetInteger(r, elem)
		if err != nil {
			return nil, err
		}
		out[i] = int(v)
	}
	return out, nil
}
