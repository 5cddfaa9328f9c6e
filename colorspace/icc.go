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

	"seehuhn.de/go/icc"
	"seehuhn.de/go/pdf"
)

// ICCBased represents an ICCBased color space. Component count and the
// gray/RGB/CMYK/Lab alternate family come from the embedded profile header;
// full PCS-mediated transformation to sRGB is out of scope, so ToRGB falls
// back to the naive device formula matching the profile's component count
// (see [DeviceGray], [DeviceRGB], [DeviceCMYK]).
type ICCBased struct {
	N int

	alt Space
}

// Channels returns the number of color components described in the ICC
// profile header.
func (s *ICCBased) Channels() int { return s.N }

// ToRGB delegates to the fallback device space matching N.
func (s *ICCBased) ToRGB(values []float64) (r, g, b float64) {
	return s.alt.ToRGB(values)
}

// extractICCBased decodes an ICCBased stream far enough to learn the
// component count, then picks the matching device fallback space.
func extractICCBased(r pdf.Getter, stream *pdf.Stream) (*ICCBased, error) {
	if stream == nil {
		return nil, &pdf.MalformedFileError{Err: fmt.Errorf("ICCBased stream missing")}
	}

	n, err := iccComponentCount(r, stream)
	if err != nil {
		return nil, err
	}

	var alt Space
	switch n {
	case 1:
		alt = DeviceGray
	case 4:
		alt = DeviceCMYK
	default:
		alt = DeviceRGB
		n = 3
	}

	return &ICCBased{N: n, alt: alt}, nil
}

// iccComponentCount determines the component count of an ICCBased stream.
// The profile itself is preferred when it can be decoded; the /N entry (or,
// failing that, /Alternate) serves as a fallback for profiles the decoder
// rejects, matching how a lenient viewer behaves.
func iccComponentCount(r pdf.Getter, stream *pdf.Stream) (int, error) {
	if stream.R != nil {
		data, err := io.ReadAll(byteSourceReader{stream.R})
		if err == nil {
			if profile, err := icc.Decode(data); err == nil {
				return profile.ColorSpace.NumComponents(), nil
			}
		} else if pdf.IsMissingData(err) {
			return 0, err
		}
	}

	if n, ok := stream.Dict["N"]; ok {
		if v, err := pdf.GetInteger(r, n); err == nil {
			return int(v), nil
		}
	}

	if alt, ok := stream.Dict["Alternate"]; ok {
		altSpace, err := Extract(r, alt)
		if err == nil {
			return altSpace.Channels(), nil
		}
	}

	return 0, &pdf.MalformedFileError{Err: fmt.Errorf("ICCBased stream has neither a decodable profile nor /N")}
}
