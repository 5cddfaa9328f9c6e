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
	"math"
	"testing"

	"seehuhn.de/go/pdf"
)

type mapGetter map[pdf.Reference]pdf.Object

func (g mapGetter) Resolve(obj pdf.Object) (pdf.Object, error) {
	ref, ok := obj.(pdf.Reference)
	if !ok {
		return obj, nil
	}
	v, ok := g[ref]
	if !ok {
		return nil, &pdf.MalformedFileError{Err: pdf.ErrMissingData}
	}
	return v, nil
}

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtractDeviceSpaces(t *testing.T) {
	cases := []struct {
		name     pdf.Name
		wantChan int
	}{
		{FamilyDeviceGray, 1},
		{FamilyDeviceRGB, 3},
		{FamilyDeviceCMYK, 4},
	}

	for _, c := range cases {
		t.Run(string(c.name), func(t *testing.T) {
			space, err := Extract(nil, c.name)
			if err != nil {
				t.Fatal(err)
			}
			if space.Channels() != c.wantChan {
				t.Errorf("Channels() = %d, want %d", space.Channels(), c.wantChan)
			}
		})
	}
}

func TestExtractUnsupportedFamily(t *testing.T) {
	_, err := Extract(nil, pdf.Name("Separation"))
	if err == nil {
		t.Fatal("expected an error for an unsupported family")
	}
	var unsupported *pdf.UnsupportedFeatureError
	if !errorsAs(err, &unsupported) {
		t.Errorf("got %T, want *pdf.UnsupportedFeatureError", err)
	}
}

func errorsAs(err error, target **pdf.UnsupportedFeatureError) bool {
	u, ok := err.(*pdf.UnsupportedFeatureError)
	if !ok {
		return false
	}
	*target = u
	return true
}

func TestDeviceGrayToRGB(t *testing.T) {
	r, g, b := DeviceGray.ToRGB([]float64{0.5})
	if !closeEnough(r, 0.5) || !closeEnough(g, 0.5) || !closeEnough(b, 0.5) {
		t.Errorf("got (%g, %g, %g), want (0.5, 0.5, 0.5)", r, g, b)
	}
}

func TestDeviceCMYKToRGB(t *testing.T) {
	r, g, b := DeviceCMYK.ToRGB([]float64{0, 0, 0, 0})
	if !closeEnough(r, 1) || !closeEnough(g, 1) || !closeEnough(b, 1) {
		t.Errorf("white CMYK got (%g, %g, %g), want (1, 1, 1)", r, g, b)
	}

	r, g, b = DeviceCMYK.ToRGB([]float64{0, 0, 0, 1})
	if !closeEnough(r, 0) || !closeEnough(g, 0) || !closeEnough(b, 0) {
		t.Errorf("black CMYK got (%g, %g, %g), want (0, 0, 0)", r, g, b)
	}
}

func TestExtractIndexed(t *testing.T) {
	arr := pdf.Array{
		FamilyIndexed,
		FamilyDeviceRGB,
		pdf.Integer(1),
		pdf.String([]byte{0, 0, 0, 255, 255, 255}),
	}

	space, err := Extract(nil, arr)
	if err != nil {
		t.Fatal(err)
	}
	if space.Channels() != 1 {
		t.Errorf("Channels() = %d, want 1", space.Channels())
	}

	r, g, b := space.ToRGB([]float64{1})
	if !closeEnough(r, 1) || !closeEnough(g, 1) || !closeEnough(b, 1) {
		t.Errorf("index 1 got (%g, %g, %g), want (1, 1, 1)", r, g, b)
	}

	r, g, b = space.ToRGB([]float64{0})
	if !closeEnough(r, 0) || !closeEnough(g, 0) || !closeEnough(b, 0) {
		t.Errorf("index 0 got (%g, %g, %g), want (0, 0, 0)", r, g, b)
	}
}

func TestIndexedClampsOutOfRange(t *testing.T) {
	idx := &Indexed{
		Base:   DeviceGray,
		HiVal:  2,
		Lookup: []byte{0, 128, 255},
	}

	r, _, _ := idx.ToRGB([]float64{100})
	if !closeEnough(r, 1) {
		t.Errorf("out-of-range index got %g, want 1 (clamped to HiVal)", r)
	}

	r, _, _ = idx.ToRGB([]float64{-5})
	if !closeEnough(r, 0) {
		t.Errorf("negative index got %g, want 0 (clamped to 0)", r)
	}
}

func TestExtractICCBasedFallsBackOnAlternate(t *testing.T) {
	r := mapGetter{}
	stream := &pdf.Stream{
		Dict: pdf.Dict{
			"N":         pdf.Integer(4),
			"Alternate": FamilyDeviceCMYK,
		},
	}

	space, err := extractICCBased(r, stream)
	if err != nil {
		t.Fatal(err)
	}
	if space.Channels() != 4 {
		t.Errorf("Channels() = %d, want 4", space.Channels())
	}
}
