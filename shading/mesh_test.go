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
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/pdf"
)

func byteCtx() *DecodeContext {
	decode := []float64{0, 1, 0, 1, 0, 1}
	return NewDecodeContext(8, 8, 8, decode, grayColorSpace{}, nil)
}

// TestDecodeType4FlagReuse exercises the flag=0/1/2 triangle-strip reuse
// rule: flag 1 keeps the previous triangle's 2nd and 3rd vertex, flag 2
// keeps its 1st and 3rd.
func TestDecodeType4FlagReuse(t *testing.T) {
	data := []byte{
		0, // flag 0
		0, 0, 0, // v0 = (0, 0), color 0
		255, 0, 64, // v1 = (1, 0), color 64
		0, 255, 128, // v2 = (0, 1), color 128
		1, // flag 1: reuse v1, v2
		255, 255, 255, // v3 = (1, 1), color 255
		2, // flag 2: reuse tri[0]=v1, tri[2]=v3
		128, 128, 200, // v4
	}
	br := NewBitReader(pdf.NewSliceSource(data))
	mb := &meshBuilder{}
	if err := decodeType4(br, byteCtx(), mb); err != nil {
		t.Fatal(err)
	}

	if len(mb.figures) != 1 {
		t.Fatalf("got %d figures, want 1", len(mb.figures))
	}
	if len(mb.coords) != 5 {
		t.Fatalf("got %d vertices, want 5", len(mb.coords))
	}

	v0, v1, v2, v3, v4 := 0, 1, 2, 3, 4
	want := []int{
		v0, v1, v2,
		v1, v2, v3,
		v1, v3, v4,
	}
	f := mb.figures[0]
	if f.kind != bfTriangles {
		t.Fatalf("figure kind = %v, want bfTriangles", f.kind)
	}
	if len(f.verts) != len(want) {
		t.Fatalf("figure has %d verts, want %d", len(f.verts), len(want))
	}
	for j, v := range f.verts {
		if v != want[j] {
			t.Errorf("vertex %d = %d, want %d", j, v, want[j])
		}
	}

	if mb.coords[v1][0] != 1 || mb.coords[v1][1] != 0 {
		t.Errorf("v1 coords = %v, want (1, 0)", mb.coords[v1])
	}
}

func TestDecodeType4UnknownFlag(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource([]byte{3}))
	mb := &meshBuilder{}
	if err := decodeType4(br, byteCtx(), mb); err == nil {
		t.Error("expected an error for flag 3")
	}
}

func TestDecodeType5Lattice(t *testing.T) {
	data := []byte{
		0, 0, 0, // (0,0)
		128, 0, 50, // (0.5,0)
		0, 128, 100, // (0,0.5)
		128, 128, 150, // (0.5,0.5)
	}
	br := NewBitReader(pdf.NewSliceSource(data))
	mb := &meshBuilder{}
	if err := decodeType5(br, byteCtx(), 2, mb); err != nil {
		t.Fatal(err)
	}
	if len(mb.figures) != 1 {
		t.Fatalf("got %d figures, want 1", len(mb.figures))
	}
	f := mb.figures[0]
	if f.kind != bfLattice || f.verticesPerRow != 2 {
		t.Errorf("got kind=%v verticesPerRow=%d, want bfLattice/2", f.kind, f.verticesPerRow)
	}
	if len(f.verts) != 4 {
		t.Errorf("got %d verts, want 4", len(f.verts))
	}
}

func TestDecodeType5RejectsNarrowRow(t *testing.T) {
	br := NewBitReader(pdf.NewSliceSource(nil))
	mb := &meshBuilder{}
	if err := decodeType5(br, byteCtx(), 1, mb); err == nil {
		t.Error("expected an error for VerticesPerRow < 2")
	}
}

// TestPackRewritesIndicesToByteOffsets checks the Packer invariant: coord
// offsets are even (stride 2), color offsets are multiples of 3 (stride 3).
func TestPackRewritesIndicesToByteOffsets(t *testing.T) {
	mb := &meshBuilder{}
	a := mb.addVertex(0, 0, 1, 2, 3)
	b := mb.addVertex(1, 1, 4, 5, 6)
	c := mb.addVertex(2, 2, 7, 8, 9)
	mb.figures = append(mb.figures, builderFigure{kind: bfTriangles, verts: []int{a, b, c}})

	mesh, err := mb.pack(4)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Coords) != 6 || len(mesh.Colors) != 9 {
		t.Fatalf("got %d coords / %d colors, want 6 / 9", len(mesh.Coords), len(mesh.Colors))
	}
	f := mesh.Figures[0]
	for i, off := range f.CoordOffsets {
		if off%2 != 0 {
			t.Errorf("coord offset %d = %d, not a multiple of 2", i, off)
		}
	}
	for i, off := range f.ColorOffsets {
		if off%3 != 0 {
			t.Errorf("color offset %d = %d, not a multiple of 3", i, off)
		}
	}
	if f.TriangleCount() != 1 {
		t.Errorf("TriangleCount() = %d, want 1", f.TriangleCount())
	}
}

// TestPackIsDeterministic checks that packing the same builder twice
// produces byte-identical Figures, using cmp.Diff to report any mismatch
// field by field rather than just a pass/fail bool.
func TestPackIsDeterministic(t *testing.T) {
	build := func() *Mesh {
		mb := &meshBuilder{}
		a := mb.addVertex(0, 0, 1, 2, 3)
		b := mb.addVertex(1, 1, 4, 5, 6)
		c := mb.addVertex(2, 2, 7, 8, 9)
		mb.figures = append(mb.figures, builderFigure{kind: bfTriangles, verts: []int{a, b, c}})
		mesh, err := mb.pack(4)
		if err != nil {
			t.Fatal(err)
		}
		return mesh
	}

	m1, m2 := build(), build()
	if diff := cmp.Diff(m1.Figures, m2.Figures); diff != "" {
		t.Errorf("packing is not deterministic (-first +second):\n%s", diff)
	}
}

func TestPackRejectsUnresolvedPatch(t *testing.T) {
	mb := &meshBuilder{}
	mb.figures = append(mb.figures, builderFigure{kind: bfPatch})
	if _, err := mb.pack(6); err == nil {
		t.Error("expected an error for an unresolved patch figure")
	}
}
