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

import "fmt"

// builderFigureKind distinguishes the three figure shapes a decoder can
// produce. A patch figure is always resolved into a lattice figure by the
// tessellator before packing; it never reaches the final IR.
type builderFigureKind int

const (
	bfTriangles builderFigureKind = iota
	bfLattice
	bfPatch
)

// builderFigure is a figure still under construction: vertex indices refer
// to positions in the owning meshBuilder's coords/colors slices, not yet
// rewritten to packed-buffer offsets.
type builderFigure struct {
	kind           builderFigureKind
	verts          []int
	verticesPerRow int

	// Fields below are only meaningful for kind == bfPatch.
	ps         [16][2]float64
	cornerRGB  [4][3]uint8
}

// meshBuilder accumulates a mesh's vertices and figures while a MeshDecoder
// is running. Every vertex gets one coordinate pair and one color triple,
// sharing a single index into both slices.
type meshBuilder struct {
	coords  [][2]float64
	colors  [][3]uint8
	figures []builderFigure
}

func (m *meshBuilder) addVertex(x, y float64, r, g, b uint8) int {
	idx := len(m.coords)
	m.coords = append(m.coords, [2]float64{x, y})
	m.colors = append(m.colors, [3]uint8{r, g, b})
	return idx
}

// pack implements the Packer: it flattens coords/colors into contiguous
// buffers and rewrites every figure's vertex indices to element offsets
// (stride 2 for coordinates, stride 3 for colors) into those buffers.
func (m *meshBuilder) pack(shadingType int) (*Mesh, error) {
	mesh := &Mesh{ShadingType: shadingType}

	mesh.Coords = make([]float32, 2*len(m.coords))
	for i, c := range m.coords {
		mesh.Coords[2*i] = float32(c[0])
		mesh.Coords[2*i+1] = float32(c[1])
	}

	mesh.Colors = make([]uint8, 3*len(m.colors))
	for i, c := range m.colors {
		mesh.Colors[3*i] = c[0]
		mesh.Colors[3*i+1] = c[1]
		mesh.Colors[3*i+2] = c[2]
	}

	if len(m.coords) > 0 {
		minX, minY := m.coords[0][0], m.coords[0][1]
		maxX, maxY := minX, minY
		for _, c := range m.coords[1:] {
			if c[0] < minX {
				minX = c[0]
			}
			if c[0] > maxX {
				maxX = c[0]
			}
			if c[1] < minY {
				minY = c[1]
			}
			if c[1] > maxY {
				maxY = c[1]
			}
		}
		mesh.Bounds = [4]float64{minX, minY, maxX, maxY}
	}

	mesh.Figures = make([]Figure, 0, len(m.figures))
	for _, bf := range m.figures {
		switch bf.kind {
		case bfTriangles, bfLattice:
			f := Figure{VerticesPerRow: bf.verticesPerRow}
			if bf.kind == bfTriangles {
				f.Kind = FigureTriangles
			} else {
				f.Kind = FigureLattice
			}
			f.CoordOffsets = make([]int32, len(bf.verts))
			f.ColorOffsets = make([]int32, len(bf.verts))
			for i, v := range bf.verts {
				f.CoordOffsets[i] = int32(2 * v)
				f.ColorOffsets[i] = int32(3 * v)
			}
			mesh.Figures = append(mesh.Figures, f)
		case bfPatch:
			return nil, fmt.Errorf("shading: unresolved patch figure reached the packer")
		}
	}

	return mesh, nil
}

// decodeType4 reads a free-form Gouraud-shaded triangle mesh (PDF shading
// type 4) into mb.
func decodeType4(br *BitReader, ctx *DecodeContext, mb *meshBuilder) error {
	readVertex := func() (int, error) {
		x, y, err := ctx.ReadCoordinatePair(br)
		if err != nil {
			return 0, err
		}
		r, g, b, err := ctx.ReadColor(br)
		if err != nil {
			return 0, err
		}
		return mb.addVertex(x, y, r, g, b), nil
	}

	var tri []int   // the 3 vertices of the most recently emitted triangle
	var verts []int // all triangles' vertex indices, 3 per triangle, in stream order

	for {
		has, err := br.HasData()
		if err != nil {
			return err
		}
		if !has {
			break
		}

		flag, err := br.ReadFlag(ctx.BitsPerFlag)
		if err != nil {
			return err
		}

		switch flag {
		case 0:
			v0, err := readVertex()
			if err != nil {
				return err
			}
			br.Align()
			v1, err := readVertex()
			if err != nil {
				return err
			}
			br.Align()
			v2, err := readVertex()
			if err != nil {
				return err
			}
			br.Align()
			tri = []int{v0, v1, v2}

		case 1, 2:
			if tri == nil {
				return fmt.Errorf("shading: type 4 flag %d with no preceding triangle", flag)
			}
			v, err := readVertex()
			if err != nil {
				return err
			}
			br.Align()

			var next []int
			if flag == 1 {
				next = []int{tri[1], tri[2], v}
			} else {
				next = []int{tri[0], tri[2], v}
			}
			tri = next

		default:
			return fmt.Errorf("shading: invalid type 4 edge flag %d", flag)
		}

		verts = append(verts, tri...)
	}

	if len(verts) == 0 {
		return nil
	}

	mb.figures = append(mb.figures, builderFigure{kind: bfTriangles, verts: verts})
	return nil
}

// decodeType5 reads a lattice-form Gouraud-shaded triangle mesh (PDF
// shading type 5) into mb.
func decodeType5(br *BitReader, ctx *DecodeContext, verticesPerRow int, mb *meshBuilder) error {
	if verticesPerRow < 2 {
		return fmt.Errorf("shading: type 5 VerticesPerRow must be >= 2, got %d", verticesPerRow)
	}

	var verts []int
	for {
		has, err := br.HasData()
		if err != nil {
			return err
		}
		if !has {
			break
		}

		x, y, err := ctx.ReadCoordinatePair(br)
		if err != nil {
			return err
		}
		r, g, b, err := ctx.ReadColor(br)
		if err != nil {
			return err
		}
		verts = append(verts, mb.addVertex(x, y, r, g, b))
	}

	if len(verts) == 0 {
		return nil
	}

	mb.figures = append(mb.figures, builderFigure{
		kind:           bfLattice,
		verts:          verts,
		verticesPerRow: verticesPerRow,
	})
	return nil
}
