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
	"math"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/colorspace"
)

// DecodeContext carries the per-shading parameters a BitReader needs to turn
// raw bit fields into coordinates and colors: the declared bit widths, the
// Decode array ranges, and the color machinery (an optional 1->n function
// plus the color space it, or the raw components, feed into).
type DecodeContext struct {
	BitsPerCoordinate int
	BitsPerComponent  int
	BitsPerFlag       int
	Decode            []float64

	ColorSpace colorspace.Space
	F          pdf.Function

	// NumComps is the number of raw components read per vertex: 1 if F is
	// set (the function's single input parameter), else ColorSpace.Channels().
	NumComps int
}

// NewDecodeContext derives NumComps from cs and f.
func NewDecodeContext(bitsCoord, bitsComp, bitsFlag int, decode []float64, cs colorspace.Space, f pdf.Function) *DecodeContext {
	n := cs.Channels()
	if f != nil {
		n = 1
	}
	return &DecodeContext{
		BitsPerCoordinate: bitsCoord,
		BitsPerComponent:  bitsComp,
		BitsPerFlag:       bitsFlag,
		Decode:            decode,
		ColorSpace:        cs,
		F:                 f,
		NumComps:          n,
	}
}

// ReadCoordinatePair reads one (x, y) vertex coordinate.
func (c *DecodeContext) ReadCoordinatePair(b *BitReader) (x, y float64, err error) {
	x, err = b.ReadCoordinate(c.BitsPerCoordinate, c.Decode[0], c.Decode[1])
	if err != nil {
		return 0, 0, err
	}
	y, err = b.ReadCoordinate(c.BitsPerCoordinate, c.Decode[2], c.Decode[3])
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// ReadColor reads one vertex's color components and converts them to 8-bit
// sRGB, routing through F when present.
func (c *DecodeContext) ReadColor(b *BitReader) (r, g, bl uint8, err error) {
	raw := make([]float64, c.NumComps)
	for i := range raw {
		v, err := b.ReadCoordinate(c.BitsPerComponent, c.Decode[4+2*i], c.Decode[4+2*i+1])
		if err != nil {
			return 0, 0, 0, err
		}
		raw[i] = v
	}

	var values []float64
	if c.F != nil {
		values = c.F.Apply(raw...)
	} else {
		values = raw
	}

	rf, gf, bf := c.ColorSpace.ToRGB(values)
	return toByte(rf), toByte(gf), toByte(bf), nil
}

func toByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255))
}
