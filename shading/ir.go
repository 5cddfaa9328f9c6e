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

import "seehuhn.de/go/geom/matrix"

// IR is the tagged value emitted at the end of a successful (or gracefully
// degraded) shading parse. The concrete type identifies which of the four
// shapes below it carries.
type IR interface {
	irTag() string
}

// ColorStop is one entry of a [RadialAxial] gradient's color ramp.
type ColorStop struct {
	// Offset is the stop's position along the gradient, in [0, 1],
	// non-decreasing across the ramp.
	Offset float64

	// R, G, B are the stop's color, already converted to 8-bit sRGB.
	R, G, B uint8
}

// RadialAxial is the IR for a type 2 (axial) or type 3 (radial) shading.
type RadialAxial struct {
	// Radial is false for an axial shading, true for a radial one.
	Radial bool

	// BBox is the shading's clip rectangle, or nil if it has none.
	BBox *[4]float64

	// Stops is the sampled, extend-adjusted color ramp.
	Stops []ColorStop

	// P0, P1 are the axial endpoints, or radial circle centers.
	P0, P1 [2]float64

	// R0, R1 are the radial circle radii. Both are 0 for an axial shading.
	R0, R1 float64

	// Matrix is the pattern-to-target-space transform.
	Matrix matrix.Matrix
}

func (*RadialAxial) irTag() string { return "RadialAxial" }

// FigureKind distinguishes the two figure shapes that survive into the
// packed mesh IR. A transient "patch" figure is always replaced by a
// "lattice" figure before the mesh is packed; see tessellateMesh.
type FigureKind int

const (
	FigureTriangles FigureKind = iota
	FigureLattice
)

// Figure is one connected piece of a [Mesh]'s geometry, with coordinate and
// color indices already rewritten to byte offsets into the mesh's packed
// buffers (see meshBuilder.pack).
type Figure struct {
	Kind FigureKind

	// CoordOffsets holds, for each vertex in drawing order, the byte offset
	// of its (x, y) pair within Mesh.Coords (stride 2 floats).
	CoordOffsets []int32

	// ColorOffsets holds, for each vertex in drawing order, the byte offset
	// of its (r, g, b) triple within Mesh.Colors (stride 3 bytes).
	ColorOffsets []int32

	// VerticesPerRow is the row width for a FigureLattice figure; it is
	// unused (0) for FigureTriangles.
	VerticesPerRow int
}

// TriangleCount reports how many triangles this figure contributes.
func (f *Figure) TriangleCount() int {
	switch f.Kind {
	case FigureTriangles:
		return len(f.CoordOffsets) / 3
	case FigureLattice:
		if f.VerticesPerRow < 2 {
			return 0
		}
		rows := len(f.CoordOffsets) / f.VerticesPerRow
		return 2 * (rows - 1) * (f.VerticesPerRow - 1)
	default:
		return 0
	}
}

// Mesh is the IR for a type 4-7 shading, after decoding, tessellation, and
// packing are all complete.
type Mesh struct {
	ShadingType int

	// Coords is the packed [x0, y0, x1, y1, ...] buffer, one pair per
	// vertex, in emission order.
	Coords []float32

	// Colors is the packed [r0, g0, b0, r1, g1, b1, ...] buffer, one triple
	// per vertex, in emission order.
	Colors []uint8

	Figures []Figure

	// Bounds is the mesh's axis-aligned bounding box, [xmin, ymin, xmax, ymax].
	Bounds [4]float64

	Matrix     matrix.Matrix
	BBox       *[4]float64
	Background []float64
}

func (*Mesh) irTag() string { return "Mesh" }

// Dummy is the IR produced when a shading fails to parse in a recoverable
// way; the caller paints nothing (or a neutral fallback) for it.
type Dummy struct{}

func (Dummy) irTag() string { return "Dummy" }

// TilingPattern is the IR for a type 1 (tiling) pattern. The core never
// rasterizes a tile's content stream; it only carries the pattern's
// placement metadata through to the downstream renderer.
type TilingPattern struct {
	Color       []float64
	Matrix      matrix.Matrix
	BBox        [4]float64
	XStep       float64
	YStep       float64
	PaintType   int
	TilingType  int
}

func (*TilingPattern) irTag() string { return "TilingPattern" }
