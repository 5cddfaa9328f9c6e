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

	"seehuhn.de/go/pdf"
)

// Space represents a PDF color space, restricted to the read side: given a
// tuple of component values, it can report how many components it expects
// and how to turn such a tuple into a displayable sRGB color.
type Space interface {
	// Channels returns the number of color components this space expects.
	Channels() int

	// ToRGB converts a component tuple (length Channels()) to red, green,
	// and blue values in [0, 1].
	ToRGB(values []float64) (r, g, b float64)
}

// family name constants, as they appear in a PDF /ColorSpace entry.
const (
	FamilyDeviceGray = pdf.Name("DeviceGray")
	FamilyDeviceRGB  = pdf.Name("DeviceRGB")
	FamilyDeviceCMYK = pdf.Name("DeviceCMYK")
	FamilyICCBased   = pdf.Name("ICCBased")
	FamilyIndexed    = pdf.Name("Indexed")
	FamilyCalGray    = pdf.Name("CalGray")
	FamilyCalRGB     = pdf.Name("CalRGB")
	FamilyLab        = pdf.Name("Lab")
)

// Extract resolves a /ColorSpace entry (a name or an array) to a [Space].
// This mirrors the shape of a PDF function or shading extractor: direct
// dispatch on the leading name, recursing into array parameters as needed.
func Extract(r pdf.Getter, desc pdf.Object) (Space, error) {
	desc, err := pdf.Resolve(r, desc)
	if err != nil {
		return nil, err
	}

	switch v := desc.(type) {
	case pdf.Name:
		switch v {
		case FamilyDeviceGray:
			return DeviceGray, nil
		case FamilyDeviceRGB:
			return DeviceRGB, nil
		case FamilyDeviceCMYK:
			return DeviceCMYK, nil
		default:
			return nil, &pdf.UnsupportedFeatureError{Feature: "color space /" + string(v)}
		}

	case pdf.Array:
		if len(v) == 0 {
			return nil, &pdf.MalformedFileError{Err: fmt.Errorf("empty color space array")}
		}
		name, err := pdf.GetName(r, v[0])
		if err != nil {
			return nil, err
		}

		switch name {
		case FamilyICCBased:
			if len(v) < 2 {
				return nil, &pdf.MalformedFileError{Err: fmt.Errorf("ICCBased array too short")}
			}
			stream, err := pdf.GetStream(r, v[1])
			if err != nil {
				return nil, err
			}
			return extractICCBased(r, stream)

		case FamilyIndexed:
			return extractIndexed(r, v)

		case FamilyCalGray:
			// A calibrated gray ramp with no display-referred transform
			// available degrades to plain DeviceGray; this matches how a
			// viewer without color management falls back.
			return DeviceGray, nil

		case FamilyCalRGB, FamilyLab:
			return DeviceRGB, nil

		default:
			return nil, &pdf.UnsupportedFeatureError{Feature: "color space /" + string(name)}
		}
	}

	return nil, &pdf.MalformedFileError{Err: fmt.Errorf("invalid color space descriptor %T", desc)}
}

// clip01 clamps x to [0, 1].
func clip01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
