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

// Package colorspace implements the PDF color spaces that the shading
// decoders need to turn raw component tuples into displayable RGB:
// DeviceGray, DeviceRGB, DeviceCMYK, Indexed, and ICCBased. The CIE-based
// spaces are approximated by device spaces: CalGray by DeviceGray, CalRGB
// and Lab by DeviceRGB. Other families (Separation, DeviceN, ...) are not
// implemented; [Extract] reports them as an
// [seehuhn.de/go/pdf.UnsupportedFeatureError].
package colorspace
