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

package shading

import (
	"fmt"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/colorspace"
	"seehuhn.de/go/pdf/function"
)

// Extract reads a shading dictionary or stream and returns its IR. obj may
// be a *pdf.Stream (required for shading types 4-7) or a plain pdf.Dict
// (types 1-3 carry no mesh data and so need no stream). matrix is the
// pattern-to-target-space transform in effect where the shading is painted.
//
// Any error other than [pdf.ErrMissingData] is caught: Extract reports it to
// diag (if non-nil) and returns a [Dummy] IR instead of failing outright, so
// one malformed shading in a page's resources does not abort the whole page.
// pdf.ErrMissingData always propagates unchanged, since the caller is
// expected to retry once more bytes have arrived.
func Extract(r pdf.Getter, obj pdf.Object, m matrix.Matrix, diag pdf.DiagnosticHandler) (IR, error) {
	ir, err := parseShading(r, obj, m)
	if err != nil {
		if pdf.IsMissingData(err) {
			return nil, err
		}
		pdf.Report(diag, err)
		return Dummy{}, nil
	}
	return ir, nil
}

func parseShading(r pdf.Getter, obj pdf.Object, m matrix.Matrix) (IR, error) {
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
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: expected dict or stream, got %T", resolved)}
	}

	stObj, ok := dict["ShadingType"]
	if !ok {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: missing /ShadingType")}
	}
	st, err := pdf.GetInteger(r, stObj)
	if err != nil {
		return nil, err
	}

	cs, err := colorspace.Extract(r, dict["ColorSpace"])
	if err != nil {
		return nil, err
	}

	bbox, err := readBBox(r, dict["BBox"])
	if err != nil {
		return nil, err
	}

	background, err := readBackground(r, dict["Background"])
	if err != nil {
		return nil, err
	}

	switch st {
	case 2, 3:
		return parseGradient(r, dict, int(st), cs, bbox, background, m)
	case 4, 5, 6, 7:
		if stream == nil {
			return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: type %d requires a stream", st)}
		}
		return parseMesh(r, dict, stream, int(st), cs, bbox, background, m)
	default:
		return nil, &pdf.UnsupportedFeatureError{Feature: fmt.Sprintf("shading type %d", st)}
	}
}

func readBBox(r pdf.Getter, obj pdf.Object) (*[4]float64, error) {
	if obj == nil {
		return nil, nil
	}
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if arr == nil {
		return nil, nil
	}
	if len(arr) != 4 {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: /BBox must have 4 entries")}
	}
	var out [4]float64
	for i, e := range arr {
		v, err := pdf.GetNumber(r, e)
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return &out, nil
}

func readBackground(r pdf.Getter, obj pdf.Object) ([]float64, error) {
	if obj == nil {
		return nil, nil
	}
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(arr))
	for i, e := range arr {
		v, err := pdf.GetNumber(r, e)
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return out, nil
}

// backgroundRGB converts a shading's raw /Background components (already in
// the shading's own color space) to 8-bit sRGB, for use as a gradient's
// extend-disabled edge color.
func backgroundRGB(cs colorspace.Space, background []float64) *[3]uint8 {
	if background == nil {
		return nil
	}
	r, g, b := cs.ToRGB(background)
	return &[3]uint8{toByte(r), toByte(g), toByte(b)}
}

func readNumberArray(r pdf.Getter, obj pdf.Object, n int) ([]float64, error) {
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return nil, err
	}
	if len(arr) != n {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: expected array of length %d, got %d", n, len(arr))}
	}
	out := make([]float64, n)
	for i, e := range arr {
		v, err := pdf.GetNumber(r, e)
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return out, nil
}

// readFunction reads a shading's /Function entry, which is either a single
// function producing n outputs, or an array of n single-output functions.
func readFunction(r pdf.Getter, obj pdf.Object) (pdf.Function, error) {
	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}
	if arr, ok := resolved.(pdf.Array); ok {
		fns := make([]pdf.Function, len(arr))
		for i, e := range arr {
			f, err := function.Extract(r, e)
			if err != nil {
				return nil, err
			}
			fns[i] = f
		}
		return &stitchedFunctions{fns: fns}, nil
	}
	return function.Extract(r, obj)
}

// stitchedFunctions combines several single-output functions, sharing one
// input, into a single multi-output [pdf.Function] - the shape a shading's
// color space expects.
type stitchedFunctions struct {
	fns []pdf.Function
}

func (s *stitchedFunctions) Shape() (in, out int) { return 1, len(s.fns) }

func (s *stitchedFunctions) Apply(inputs ...float64) []float64 {
	out := make([]float64, len(s.fns))
	for i, f := range s.fns {
		out[i] = f.Apply(inputs...)[0]
	}
	return out
}

func (s *stitchedFunctions) FunctionType() int { return -1 }

func parseGradient(r pdf.Getter, dict pdf.Dict, shadingType int, cs colorspace.Space, bbox *[4]float64, background []float64, m matrix.Matrix) (IR, error) {
	f, err := readFunction(r, dict["Function"])
	if err != nil {
		return nil, err
	}

	domain := [2]float64{0, 1}
	if d, ok := dict["Domain"]; ok {
		vals, err := readNumberArray(r, d, 2)
		if err != nil {
			return nil, err
		}
		domain = [2]float64{vals[0], vals[1]}
	}

	extendStart, extendEnd, err := readExtend(r, dict["Extend"])
	if err != nil {
		return nil, err
	}

	bg := backgroundRGB(cs, background)

	switch shadingType {
	case 2:
		coords, err := readNumberArray(r, dict["Coords"], 4)
		if err != nil {
			return nil, err
		}
		p := AxialParams{X0: coords[0], Y0: coords[1], X1: coords[2], Y1: coords[3]}
		return BuildAxial(f, cs, p, domain, extendStart, extendEnd, bbox, m, bg)

	case 3:
		coords, err := readNumberArray(r, dict["Coords"], 6)
		if err != nil {
			return nil, err
		}
		p := RadialParams{X0: coords[0], Y0: coords[1], R0: coords[2], X1: coords[3], Y1: coords[4], R1: coords[5]}
		return BuildRadial(f, cs, p, domain, extendStart, extendEnd, bbox, m, bg, nil)

	default:
		panic("unreachable")
	}
}

func readExtend(r pdf.Getter, obj pdf.Object) (start, end bool, err error) {
	if obj == nil {
		return false, false, nil
	}
	arr, err := pdf.GetArray(r, obj)
	if err != nil {
		return false, false, err
	}
	if len(arr) != 2 {
		return false, false, &pdf.MalformedFileError{Err: fmt.Errorf("shading: /Extend must have 2 entries")}
	}
	s, err := pdf.GetBoolean(r, arr[0])
	if err != nil {
		return false, false, err
	}
	e, err := pdf.GetBoolean(r, arr[1])
	if err != nil {
		return false, false, err
	}
	return bool(s), bool(e), nil
}

func parseMesh(r pdf.Getter, dict pdf.Dict, stream *pdf.Stream, shadingType int, cs colorspace.Space, bbox *[4]float64, background []float64, m matrix.Matrix) (IR, error) {
	bitsCoord, err := pdf.GetInteger(r, dict["BitsPerCoordinate"])
	if err != nil {
		return nil, err
	}
	bitsComp, err := pdf.GetInteger(r, dict["BitsPerComponent"])
	if err != nil {
		return nil, err
	}

	var f pdf.Function
	if fObj, ok := dict["Function"]; ok {
		f, err = readFunction(r, fObj)
		if err != nil {
			return nil, err
		}
	}

	numComps := cs.Channels()
	if f != nil {
		numComps = 1
	}
	decode, err := readNumberArray(r, dict["Decode"], 4+2*numComps)
	if err != nil {
		return nil, err
	}

	br := NewBitReader(stream.R)
	mb := &meshBuilder{}

	switch shadingType {
	case 4:
		bitsFlag, err := pdf.GetInteger(r, dict["BitsPerFlag"])
		if err != nil {
			return nil, err
		}
		ctx := NewDecodeContext(int(bitsCoord), int(bitsComp), int(bitsFlag), decode, cs, f)
		if err := decodeType4(br, ctx, mb); err != nil {
			return nil, err
		}

	case 5:
		vpr, err := pdf.GetInteger(r, dict["VerticesPerRow"])
		if err != nil {
			return nil, err
		}
		if vpr < 2 {
			return nil, &pdf.MalformedFileError{Err: fmt.Errorf("shading: /VerticesPerRow must be >= 2, got %d", vpr)}
		}
		ctx := NewDecodeContext(int(bitsCoord), int(bitsComp), 0, decode, cs, f)
		if err := decodeType5(br, ctx, int(vpr), mb); err != nil {
			return nil, err
		}

	case 6:
		bitsFlag, err := pdf.GetInteger(r, dict["BitsPerFlag"])
		if err != nil {
			return nil, err
		}
		ctx := NewDecodeContext(int(bitsCoord), int(bitsComp), int(bitsFlag), decode, cs, f)
		if err := decodeType6(br, ctx, mb); err != nil {
			return nil, err
		}
		tessellateMesh(mb)

	case 7:
		bitsFlag, err := pdf.GetInteger(r, dict["BitsPerFlag"])
		if err != nil {
			return nil, err
		}
		ctx := NewDecodeContext(int(bitsCoord), int(bitsComp), int(bitsFlag), decode, cs, f)
		if err := decodeType7(br, ctx, mb); err != nil {
			return nil, err
		}
		tessellateMesh(mb)

	default:
		panic("unreachable")
	}

	mesh, err := mb.pack(shadingType)
	if err != nil {
		return nil, err
	}
	mesh.Matrix = m
	mesh.BBox = bbox
	mesh.Background = background
	return mesh, nil
}
