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

	"seehuhn.de/go/pdf"
)

func TestBoundaryGridSlotIsAPermutation(t *testing.T) {
	seen := map[int]bool{}
	for _, slot := range boundaryGridSlot {
		if slot < 0 || slot > 15 || seen[slot] {
			t.Fatalf("boundaryGridSlot has a duplicate or out-of-range slot: %v", boundaryGridSlot)
		}
		seen[slot] = true
	}
}

func TestType7StreamToSlotIsAPermutation(t *testing.T) {
	seen := map[int]bool{}
	for _, slot := range type7StreamToSlot {
		if slot < 0 || slot > 15 || seen[slot] {
			t.Fatalf("type7StreamToSlot has a duplicate or out-of-range slot: %v", type7StreamToSlot)
		}
		seen[slot] = true
	}
}

// TestInteriorRulesReproduceLinearGrid checks that the Coons interior
// formula exactly reproduces a regular grid's interior points when the
// boundary already lies on a bilinear (planar) surface - the standard
// sanity check for a Bezier-style blending formula: it must be exact on
// functions of degree <= 1.
func TestInteriorRulesReproduceLinearGrid(t *testing.T) {
	var ps [16][2]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			ps[4*row+col] = [2]float64{float64(col), float64(row)}
		}
	}

	var got [16][2]float64
	for i, rule := range interiorRules {
		// Start from a copy whose interior slots are zeroed, to prove the
		// rule only reads boundary slots.
		work := ps
		for _, r2 := range interiorRules {
			work[r2.slot] = [2]float64{}
		}
		applyInteriorRule(&work, rule)
		got[rule.slot] = work[rule.slot]
		want := ps[rule.slot]
		if math.Abs(got[rule.slot][0]-want[0]) > 1e-9 || math.Abs(got[rule.slot][1]-want[1]) > 1e-9 {
			t.Errorf("rule %d (slot %d): got %v, want %v", i, rule.slot, got[rule.slot], want)
		}
	}
}

func TestBernsteinRowsSumToOne(t *testing.T) {
	for _, n := range []int{minSplit, 7, maxSplit} {
		table := bernstein(n)
		for r, row := range table {
			sum := row[0] + row[1] + row[2] + row[3]
			if math.Abs(sum-1) > 1e-9 {
				t.Errorf("n=%d row=%d sums to %g, want 1", n, r, sum)
			}
		}
	}
}

func TestClampSplit(t *testing.T) {
	if clampSplit(1) != minSplit {
		t.Errorf("clampSplit(1) = %d, want %d", clampSplit(1), minSplit)
	}
	if clampSplit(1000) != maxSplit {
		t.Errorf("clampSplit(1000) = %d, want %d", clampSplit(1000), maxSplit)
	}
	if clampSplit(10) != 10 {
		t.Errorf("clampSplit(10) = %d, want 10", clampSplit(10))
	}
}

// TestDecodeType6NewPatchCorners checks that a flag=0 patch's 4 read colors
// land on the grid corners in c1,c2,c3,c4 boundary order, and that the
// boundary coordinates map to the correct grid slots.
func TestDecodeType6NewPatchCorners(t *testing.T) {
	data := make([]byte, 0, 12*2+4*3+1)
	data = append(data, 0) // flag
	coords := [12][2]byte{
		{0, 0}, {10, 0}, {20, 0}, {30, 0},
		{30, 10}, {30, 20}, {30, 30}, {20, 30},
		{10, 30}, {0, 30}, {0, 20}, {0, 10},
	}
	for _, c := range coords {
		data = append(data, c[0], c[1])
	}
	colors := [4]byte{11, 22, 33, 44}
	for _, c := range colors {
		data = append(data, c) // grayColorSpace has only 1 channel
	}

	br := NewBitReader(pdf.NewSliceSource(data))
	decode := []float64{0, 255, 0, 255, 0, 1}
	ctx := NewDecodeContext(8, 8, 8, decode, grayColorSpace{}, nil)
	mb := &meshBuilder{}

	if err := decodeType6(br, ctx, mb); err != nil {
		t.Fatal(err)
	}
	if len(mb.figures) != 1 || mb.figures[0].kind != bfPatch {
		t.Fatalf("expected a single patch figure, got %+v", mb.figures)
	}
	ps := mb.figures[0].ps

	if ps[0] != [2]float64{0, 0} {
		t.Errorf("ps[0] (p0) = %v, want (0,0)", ps[0])
	}
	if ps[12] != [2]float64{30, 0} {
		t.Errorf("ps[12] (p3) = %v, want (30,0)", ps[12])
	}
	if ps[15] != [2]float64{30, 30} {
		t.Errorf("ps[15] (p6) = %v, want (30,30)", ps[15])
	}
	if ps[3] != [2]float64{0, 30} {
		t.Errorf("ps[3] (p9) = %v, want (0,30)", ps[3])
	}

	cornerRGB := mb.figures[0].cornerRGB
	want := [4]uint8{11, 44, 22, 33}
	for i, c := range cornerRGB {
		if c[0] != want[i] {
			t.Errorf("cornerRGB[%d] = %d, want %d", i, c[0], want[i])
		}
	}
}

func TestDecodeType7FlagInheritsFromPreviousPatch(t *testing.T) {
	data := []byte{0}
	for i := 0; i < 16; i++ {
		data = append(data, byte(i), byte(i))
	}
	for i := 0; i < 4; i++ {
		data = append(data, byte(100+i))
	}
	// Second, connected patch: flag 1 inherits 4 points + 2 colors from the
	// first, then reads 12 more points and 2 more colors.
	data = append(data, 1)
	for i := 0; i < 12; i++ {
		data = append(data, byte(200+i), byte(200+i))
	}
	for i := 0; i < 2; i++ {
		data = append(data, byte(220+i))
	}

	br := NewBitReader(pdf.NewSliceSource(data))
	decode := []float64{0, 255, 0, 255, 0, 255}
	ctx := NewDecodeContext(8, 8, 8, decode, grayColorSpace{}, nil)
	mb := &meshBuilder{}

	if err := decodeType7(br, ctx, mb); err != nil {
		t.Fatal(err)
	}
	if len(mb.figures) != 2 {
		t.Fatalf("got %d figures, want 2", len(mb.figures))
	}

	first := mb.figures[0].ps
	second := mb.figures[1].ps

	conn := type7EdgeConnections[1]
	for i, streamIdx := range conn.implicitStreamIndices {
		slot := type7StreamToSlot[i]
		wantSlot := type7StreamToSlot[streamIdx]
		if second[slot] != first[wantSlot] {
			t.Errorf("inherited point %d: second.ps[%d] = %v, want first.ps[%d] = %v",
				i, slot, second[slot], wantSlot, first[wantSlot])
		}
	}
}

func TestDecodeType6RejectsFlagWithNoPreviousPatch(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource([]byte{1}))
	ctx := NewDecodeContext(8, 8, 8, []float64{0, 1, 0, 1, 0, 1}, grayColorSpace{}, nil)
	mb := &meshBuilder{}
	if err := decodeType6(br, ctx, mb); err == nil {
		t.Error("expected an error for a connected patch with no predecessor")
	}
}

// TestTessellateMeshCornerPreservation checks that tessellation reproduces
// the exact corner control points and colors, without re-interpolation.
func TestTessellateMeshCornerPreservation(t *testing.T) {
	var ps [16][2]float64
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			ps[4*row+col] = [2]float64{float64(col) * 10, float64(row) * 10}
		}
	}
	cornerRGB := [4][3]uint8{{10, 20, 30}, {40, 50, 60}, {70, 80, 90}, {100, 110, 120}}

	mb := &meshBuilder{}
	mb.figures = append(mb.figures, builderFigure{kind: bfPatch, ps: ps, cornerRGB: cornerRGB})
	tessellateMesh(mb)

	if len(mb.figures) != 1 || mb.figures[0].kind != bfLattice {
		t.Fatalf("expected a single lattice figure, got %+v", mb.figures)
	}
	f := mb.figures[0]
	n := f.verticesPerRow

	checks := []struct {
		vertIdx int
		slot    int
		corner  int
	}{
		{0, gridCorners[0], 0},
		{n - 1, gridCorners[1], 1},
		{len(f.verts) - n, gridCorners[2], 2},
		{len(f.verts) - 1, gridCorners[3], 3},
	}
	for _, c := range checks {
		v := f.verts[c.vertIdx]
		if mb.coords[v] != ps[c.slot] {
			t.Errorf("corner vertex %d coords = %v, want %v", c.vertIdx, mb.coords[v], ps[c.slot])
		}
		if mb.colors[v] != cornerRGB[c.corner] {
			t.Errorf("corner vertex %d color = %v, want %v", c.vertIdx, mb.colors[v], cornerRGB[c.corner])
		}
	}
}
