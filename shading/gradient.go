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
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/colorspace"
)

// gradientSamples is the number of evenly spaced points at which an axial or
// radial shading's color function is sampled to build its [ColorStop] ramp.
const gradientSamples = 10

// gradientEpsilon is the offset inserted just inside an un-extended gradient
// end, so a renderer that linearly interpolates between stops still produces
// a hard edge rather than a visible ramp into the background.
const gradientEpsilon = 1e-6

// AxialParams and RadialParams hold a type 2 or type 3 shading dictionary's
// geometry, already read and range-checked by the caller.
type AxialParams struct {
	X0, Y0, X1, Y1 float64
}

type RadialParams struct {
	X0, Y0, R0 float64
	X1, Y1, R1 float64
}

// SampleGradient evaluates an axial or radial shading's color function at
// gradientSamples+1 points across [t0, t1], producing the IR's color ramp. F
// is the shading's 1-in, n-out function (possibly itself a stitch of
// several); cs converts its output to RGB.
//
// When extendStart or extendEnd is false, an extra stop carrying background
// (or, with no background, the adjacent sample's own color, there being no
// alpha channel in this IR to fall back to transparency) is prepended or
// appended at that end, and the original boundary sample is nudged
// gradientEpsilon toward the interior - so a renderer that linearly
// interpolates between stops still produces a hard edge at the boundary
// rather than a visible ramp into the background.
func SampleGradient(f pdf.Function, cs colorspace.Space, domain [2]float64, extendStart, extendEnd bool, background *[3]uint8) ([]ColorStop, error) {
	t0, t1 := domain[0], domain[1]
	if t1 <= t0 {
		return nil, fmt.Errorf("shading: invalid function domain [%g, %g]", t0, t1)
	}

	sampleAt := func(i int) ColorStop {
		t := t0 + float64(i)/float64(gradientSamples)*(t1-t0)
		out := f.Apply(t)
		r, g, b := cs.ToRGB(out)
		offset := float64(i) / float64(gradientSamples)
		return ColorStop{Offset: offset, R: toByte(r), G: toByte(g), B: toByte(b)}
	}

	samples := make([]ColorStop, gradientSamples+1)
	for i := range samples {
		samples[i] = sampleAt(i)
	}

	stops := make([]ColorStop, 0, gradientSamples+3)

	if !extendStart {
		edge := samples[0]
		if background != nil {
			edge.R, edge.G, edge.B = background[0], background[1], background[2]
		}
		edge.Offset = 0
		stops = append(stops, edge)
		samples[0].Offset = gradientEpsilon
	}
	stops = append(stops, samples...)
	if !extendEnd {
		last := len(stops) - 1
		stops[last].Offset = 1 - gradientEpsilon
		edge := samples[len(samples)-1]
		if background != nil {
			edge.R, edge.G, edge.B = background[0], background[1], background[2]
		}
		edge.Offset = 1
		stops = append(stops, edge)
	}

	return stops, nil
}

// BuildAxial assembles the IR for a type 2 shading.
func BuildAxial(f pdf.Function, cs colorspace.Space, p AxialParams, domain [2]float64, extendStart, extendEnd bool, bbox *[4]float64, m matrix.Matrix, background *[3]uint8) (*RadialAxial, error) {
	stops, err := SampleGradient(f, cs, domain, extendStart, extendEnd, background)
	if err != nil {
		return nil, err
	}
	return &RadialAxial{
		Radial: false,
		BBox:   bbox,
		Stops:  stops,
		P0:     [2]float64{p.X0, p.Y0},
		P1:     [2]float64{p.X1, p.Y1},
		Matrix: m,
	}, nil
}

// BuildRadial assembles the IR for a type 3 shading. diagnose is called (if
// non-nil) when neither circle is wholly contained in the other and
// extendStart/extendEnd are both false - a configuration PDF permits but
// which most renderers render inconsistently at the seam.
func BuildRadial(f pdf.Function, cs colorspace.Space, p RadialParams, domain [2]float64, extendStart, extendEnd bool, bbox *[4]float64, m matrix.Matrix, background *[3]uint8, diagnose func(string)) (*RadialAxial, error) {
	stops, err := SampleGradient(f, cs, domain, extendStart, extendEnd, background)
	if err != nil {
		return nil, err
	}

	nested := circleContains(p.X1, p.Y1, p.R1, p.X0, p.Y0, p.R0) || circleContains(p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1)
	if diagnose != nil && !extendStart && !extendEnd && !nested {
		diagnose("radial shading: neither circle contains the other and neither end is extended; rendering may not match other viewers near the seam")
	}

	return &RadialAxial{
		Radial: true,
		BBox:   bbox,
		Stops:  stops,
		P0:     [2]float64{p.X0, p.Y0},
		P1:     [2]float64{p.X1, p.Y1},
		R0:     p.R0,
		R1:     p.R1,
		Matrix: m,
	}, nil
}

// circleContains reports whether circle (x0, y0, r0) lies entirely within
// circle (x1, y1, r1).
func circleContains(x1, y1, r1, x0, y0, r0 float64) bool {
	if r0 > r1 {
		return false
	}
	d := math.Hypot(x0-x1, y0-y1)
	return d+r0 <= r1
}
