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
	"testing"

	"seehuhn.de/go/geom/matrix"
)

// linearGrayFunc returns its input unchanged, one output.
type linearGrayFunc struct{}

func (linearGrayFunc) Shape() (in, out int) { return 1, 1 }
func (linearGrayFunc) Apply(inputs ...float64) []float64 {
	return []float64{inputs[0]}
}
func (linearGrayFunc) FunctionType() int { return 2 }

func TestSampleGradientBothExtendsOffsets(t *testing.T) {
	stops, err := SampleGradient(linearGrayFunc{}, grayColorSpace{}, [2]float64{0, 1}, false, false, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stops) != gradientSamples+3 {
		t.Fatalf("got %d stops, want %d", len(stops), gradientSamples+3)
	}
	if stops[0].Offset != 0 {
		t.Errorf("stops[0].Offset = %g, want 0", stops[0].Offset)
	}
	if math.Abs(stops[1].Offset-gradientEpsilon) > 1e-12 {
		t.Errorf("stops[1].Offset = %g, want %g", stops[1].Offset, gradientEpsilon)
	}
	last := len(stops) - 1
	if stops[last].Offset != 1 {
		t.Errorf("stops[-1].Offset = %g, want 1", stops[last].Offset)
	}
	if math.Abs(stops[last-1].Offset-(1-gradientEpsilon)) > 1e-12 {
		t.Errorf("stops[-2].Offset = %g, want %g", stops[last-1].Offset, 1-gradientEpsilon)
	}
}

func TestSampleGradientExtendedSkipsEpsilonStops(t *testing.T) {
	stops, err := SampleGradient(linearGrayFunc{}, grayColorSpace{}, [2]float64{0, 1}, true, true, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(stops) != gradientSamples+1 {
		t.Fatalf("got %d stops, want %d", len(stops), gradientSamples+1)
	}
	if stops[0].Offset != 0 || stops[len(stops)-1].Offset != 1 {
		t.Errorf("boundary offsets = %g, %g, want 0, 1", stops[0].Offset, stops[len(stops)-1].Offset)
	}
}

func TestSampleGradientRejectsEmptyDomain(t *testing.T) {
	if _, err := SampleGradient(linearGrayFunc{}, grayColorSpace{}, [2]float64{1, 1}, false, false, nil); err == nil {
		t.Error("expected an error for t0 >= t1")
	}
}

func TestCircleContains(t *testing.T) {
	if !circleContains(0, 0, 10, 0, 0, 5) {
		t.Error("concentric smaller circle should be contained")
	}
	if circleContains(0, 0, 10, 20, 20, 1) {
		t.Error("far-away circle should not be contained")
	}
	// circleContains only checks its second argument against its first;
	// callers that don't know in advance which circle is larger must check
	// both directions.
	if circleContains(0, 0, 1, 0, 0, 100) {
		t.Error("circleContains(small, large) should be false")
	}
	if !circleContains(0, 0, 100, 0, 0, 1) {
		t.Error("circleContains(large, small) should be true")
	}
}

func TestBuildRadialDiagnosesUncontainedCircles(t *testing.T) {
	p := RadialParams{X0: 0, Y0: 0, R0: 5, X1: 100, Y1: 100, R1: 1}
	var messages []string
	_, err := BuildRadial(linearGrayFunc{}, grayColorSpace{}, p, [2]float64{0, 1}, false, false, nil, matrix.Identity, nil,
		func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 1 {
		t.Errorf("got %d diagnostic messages, want 1", len(messages))
	}
}

// TestBuildRadialAcceptsLargerCircleZero checks that BuildRadial doesn't
// mistake a pair where circle 0 is the larger, containing circle for an
// uncontained pair: circleContains must be checked in both directions.
func TestBuildRadialAcceptsLargerCircleZero(t *testing.T) {
	p := RadialParams{X0: 0, Y0: 0, R0: 100, X1: 0, Y1: 0, R1: 1}
	var messages []string
	_, err := BuildRadial(linearGrayFunc{}, grayColorSpace{}, p, [2]float64{0, 1}, false, false, nil, matrix.Identity, nil,
		func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatal(err)
	}
	if len(messages) != 0 {
		t.Errorf("got %d diagnostic messages, want 0 (circle 0 contains circle 1)", len(messages))
	}
}
