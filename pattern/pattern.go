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

// Package pattern reads PDF pattern dictionaries (/PatternType 1 and 2) and
// hands their content off to [seehuhn.de/go/pdf/shading]. A type 2 pattern
// is a thin wrapper around a shading: this package reads its /Matrix,
// resolves the /Shading entry, and returns the shading's own IR unchanged.
// A type 1 pattern is a tiling pattern; rasterizing its content stream is
// the downstream renderer's job, so this package only carries the
// placement metadata a renderer needs to tile it.
package pattern

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/shading"
)

// Extract reads a pattern dictionary or stream and returns its IR.
//
// Errors in the pattern dictionary itself (a missing /PatternType, a
// malformed /Matrix, an unsupported pattern type, a missing /Shading entry)
// and any error in a tiling pattern are returned to the caller. The shading
// of a shading pattern is read with [shading.Extract], which reports any
// error other than [pdf.ErrMissingData] to diag and returns a
// [shading.Dummy] IR in its place.
func Extract(r pdf.Getter, obj pdf.Object, m matrix.Matrix, diag pdf.DiagnosticHandler) (shading.IR, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	var dict pdf.Dict
	var stream *pdf.Stream
	switch v := resolved.(type) {
	case *pdf.Stream:
		dict, stream = v.Dict, v
	case pdf.Dict:
		dict = v
	default:
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: expected dict or stream, got %T", resolved)}
	}

	ptObj, ok := dict["PatternType"]
	if !ok {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: missing /PatternType")}
	}
	pt, err := pdf.GetInteger(r, ptObj)
	if err != nil {
		return nil, err
	}

	patternMatrix, err := readMatrix(r, dict["Matrix"])
	if err != nil {
		return nil, err
	}
	combined := patternMatrix.Mul(m)

	switch pt {
	case 1:
		return extractTiling(r, dict, stream, combined)
	case 2:
		shadingObj, ok := dict["Shading"]
		if !ok {
			return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: type 2 pattern missing /Shading")}
		}
		return shading.Extract(r, shadingObj, combined, diag)
	default:
		return nil, &pdf.UnsupportedFeatureError{Feature: fmt.Sprintf("pattern type %d", pt)}
	}
}

func extractTiling(r pdf.Getter, dict pdf.Dict, stream *pdf.Stream, m matrix.Matrix) (shading.IR, error) {
	if stream == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: tiling pattern requires a stream")}
	}

	paintType, err := pdf.GetInteger(r, dict["PaintType"])
	if err != nil {
		return nil, err
	}
	tilingType, err := pdf.GetInteger(r, dict["TilingType"])
	if err != nil {
		return nil, err
	}

	bboxArr, err := pdf.GetArray(r, dict["BBox"])
	if err != nil {
		return nil, err
	}
	if len(bboxArr) != 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: /BBox must have 4 entries")}
	}
	var bbox [4]float64
	for i, e := range bboxArr {
		v, err := pdf.GetNumber(r, e)
		if err != nil {
			return nil, err
		}
		bbox[i] = float64(v)
	}
	if bbox[2] == bbox[0] || bbox[3] == bbox[1] {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: zero-area tiling /BBox")}
	}

	xStep, err := pdf.GetNumber(r, dict["XStep"])
	if err != nil {
		return nil, err
	}
	yStep, err := pdf.GetNumber(r, dict["YStep"])
	if err != nil {
		return nil, err
	}

	var color []float64
	if paintType == 2 {
		if colorObj, ok := dict["Color"]; ok {
			arr, err := pdf.GetArray(r, colorObj)
			if err != nil {
				return nil, err
			}
			color = make([]float64, len(arr))
			for i, e := range arr {
				v, err := pdf.GetNumber(r, e)
				if err != nil {
					return nil, err
				}
				color[i] = float64(v)
			}
		}
	}

	return &shading.TilingPattern{
		Color:      color,
		Matrix:     m,
		BBox:       bbox,
		XStep:      float64(xStep),
		YStep:      float64(yStep),
		PaintType:  int(paintType),
		TilingType: int(tilingType),
	}, nil
}

func readMatrix(r pdf.Getter, obj pdf.Object) (matrix.Matrix, error) {
	if obj == nil {
		return matrix.Identity, nil
	}
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return matrix.Identity, err
	}
	if arr == nil {
		return matrix.Identity, nil
	}
	if len(arr) != 6 {
		return matrix.Identity, &pdf.MalformedFileError{Err: fmt.Errorf("pattern: /Matrix must have 6 entries")}
	}
	var m matrix.Matrix
	for i, e := range arr {
		v, err := pdf.GetNumber(r, e)
		if err != nil {
			return matrix.Identity, err
		}
		m[i] = float64(v)
	}
	return m, nil
}
