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

package function

import "seehuhn.de/go/pdf"

// Func is the interface implemented by all four function types in this
// package. It is an alias for [pdf.Function]: the interface itself lives in
// the root package to let shadings and color spaces refer to functions
// without importing this package.
type Func = pdf.Function

// Extract reads a PDF function object, dispatching on its /FunctionType
// entry to the matching decoder. obj may be a direct dictionary/stream
// object or an indirect [pdf.Reference].
func Extract(r pdf.Getter, obj pdf.Object) (Func, error) {
	return extract(r, obj, &pdf.CycleChecker{})
}

// extract is the recursive worker behind Extract; cc detects cycles in
// chains of Type 3 stitching functions.
func extract(r pdf.Getter, obj pdf.Object, cc *pdf.CycleChecker) (Func, error) {
	if ref, ok := obj.(pdf.Reference); ok {
		if err := cc.Check(ref); err != nil {
			return nil, err
		}
	}

	resolved, err := pdf.Resolve(r, obj)
	if err != nil {
		return nil, err
	}

	d, err := pdf.GetDict(r, resolved)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, &pdf.MalformedFileError{Err: errMissingFunctionDict}
	}

	ftObj, ok := d["FunctionType"]
	if !ok {
		return nil, &pdf.MalformedFileError{Err: errMissingFunctionType}
	}
	ft, err := pdf.GetInteger(r, ftObj)
	if err != nil {
		return nil, err
	}

	switch ft {
	case 0:
		stream, err := pdf.GetStream(r, resolved)
		if err != nil {
			return nil, err
		}
		return readType0(r, stream)
	case 2:
		return readType2(r, d)
	case 3:
		return extractType3(r, d, cc)
	case 4:
		stream, err := pdf.GetStream(r, resolved)
		if err != nil {
			return nil, err
		}
		return readType4(r, stream)
	default:
		return nil, &pdf.MalformedFileError{Err: errUnsupportedFunctionType(int(ft))}
	}
}
