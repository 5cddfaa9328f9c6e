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

package pattern

import (
	"testing"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/shading"
)

func TestExtractTilingPattern(t *testing.T) {
	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"PatternType": pdf.Integer(1),
			"PaintType":   pdf.Integer(1),
			"TilingType":  pdf.Integer(1),
			"BBox":        pdf.Array{pdf.Real(0), pdf.Real(0), pdf.Real(10), pdf.Real(10)},
			"XStep":       pdf.Real(10),
			"YStep":       pdf.Real(10),
			"Matrix":      pdf.Array{pdf.Real(2), pdf.Real(0), pdf.Real(0), pdf.Real(2), pdf.Real(5), pdf.Real(5)},
		},
		R: pdf.NewSliceSource(nil),
	}

	ir, err := Extract(nil, stream, matrix.Identity, nil)
	if err != nil {
		t.Fatal(err)
	}
	tp, ok := ir.(*shading.TilingPattern)
	if !ok {
		t.Fatalf("got %T, want *shading.TilingPattern", ir)
	}
	if tp.XStep != 10 || tp.YStep != 10 {
		t.Errorf("got XStep=%g YStep=%g, want 10, 10", tp.XStep, tp.YStep)
	}
	if tp.Matrix != (matrix.Matrix{2, 0, 0, 2, 5, 5}) {
		t.Errorf("Matrix = %v, want the pattern's own matrix composed with identity", tp.Matrix)
	}
}

func TestExtractTilingPatternRejectsZeroAreaBBox(t *testing.T) {
	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"PatternType": pdf.Integer(1),
			"PaintType":   pdf.Integer(1),
			"TilingType":  pdf.Integer(1),
			"BBox":        pdf.Array{pdf.Real(0), pdf.Real(0), pdf.Real(0), pdf.Real(10)},
			"XStep":       pdf.Real(10),
			"YStep":       pdf.Real(10),
		},
		R: pdf.NewSliceSource(nil),
	}
	if _, err := Extract(nil, stream, matrix.Identity, nil); err == nil {
		t.Error("expected an error for a zero-area tiling BBox")
	}
}

func TestExtractComposesPatternMatrixWithOuterMatrix(t *testing.T) {
	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"PatternType": pdf.Integer(1),
			"PaintType":   pdf.Integer(1),
			"TilingType":  pdf.Integer(1),
			"BBox":        pdf.Array{pdf.Real(0), pdf.Real(0), pdf.Real(10), pdf.Real(10)},
			"XStep":       pdf.Real(10),
			"YStep":       pdf.Real(10),
			"Matrix":      pdf.Array{pdf.Real(1), pdf.Real(0), pdf.Real(0), pdf.Real(1), pdf.Real(3), pdf.Real(4)},
		},
		R: pdf.NewSliceSource(nil),
	}
	outer := matrix.Matrix{1, 0, 0, 1, 10, 20}

	ir, err := Extract(nil, stream, outer, nil)
	if err != nil {
		t.Fatal(err)
	}
	tp := ir.(*shading.TilingPattern)
	want := matrix.Matrix{1, 0, 0, 1, 13, 24}
	if tp.Matrix != want {
		t.Errorf("Matrix = %v, want %v", tp.Matrix, want)
	}
}
