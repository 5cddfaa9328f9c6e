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
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// boundaryGridSlot maps a Coons patch's 12 stream-order boundary point
// indices (p0..p11, as read off the bitstream or inherited from a
// neighboring patch) to their position in the full 4x4 tensor-product grid
// (row-major, slot = 4*row+col). Traversal starts at the grid's top-left
// corner and runs down the left column, across the bottom row, up the right
// column, and back across the top row.
var boundaryGridSlot = [12]int{0, 4, 8, 12, 13, 14, 15, 11, 7, 3, 2, 1}

// type7StreamToSlot extends boundaryGridSlot with the 4 interior points a
// type 7 patch provides explicitly (no Coons synthesis): they follow the 12
// boundary points in the same rotational order.
var type7StreamToSlot = [16]int{0, 4, 8, 12, 13, 14, 15, 11, 7, 3, 2, 1, 5, 9, 10, 6}

// gridCorners gives the slot of each of a patch's 4 corners, in the order
// [4.4]'s tessellator formulas call c0, c1, c2, c3.
var gridCorners = [4]int{0, 3, 12, 15}

// interiorRule computes one of the 4 synthesized Coons interior points from
// 8 of the patch's 12 boundary points, all identified by their slot in the
// 16-point grid. The formula is the standard Coons-to-Bezier conversion:
//
//	P = (-4*A - B + 6*(E1+E2) - 2*(D1+D2) + 3*(J1+J2)) / 9
//
// applied independently to each of the x and y axes.
type interiorRule struct {
	slot                   int
	cornerA, cornerB       int
	edge1, edge2           int
	diag1, diag2           int
	adj1, adj2             int
}

var interiorRules = [4]interiorRule{
	{slot: 5, cornerA: 0, cornerB: 15, edge1: 1, edge2: 4, diag1: 3, diag2: 12, adj1: 7, adj2: 13},
	{slot: 6, cornerA: 3, cornerB: 12, edge1: 2, edge2: 7, diag1: 0, diag2: 15, adj1: 4, adj2: 14},
	{slot: 9, cornerA: 12, cornerB: 3, edge1: 13, edge2: 8, diag1: 15, diag2: 0, adj1: 11, adj2: 1},
	{slot: 10, cornerA: 15, cornerB: 0, edge1: 14, edge2: 11, diag1: 12, diag2: 3, adj1: 8, adj2: 2},
}

func applyInteriorRule(ps *[16][2]float64, r interiorRule) {
	for axis := 0; axis < 2; axis++ {
		v := -4*ps[r.cornerA][axis] - ps[r.cornerB][axis] +
			6*(ps[r.edge1][axis]+ps[r.edge2][axis]) -
			2*(ps[r.diag1][axis]+ps[r.diag2][axis]) +
			3*(ps[r.adj1][axis]+ps[r.adj2][axis])
		ps[r.slot][axis] = v / 9
	}
}

// edgeConnection describes, for one type 6 edge flag, which of the previous
// patch's 12 boundary points and which 2 of its 4 corner colors the new
// patch inherits.
type edgeConnection struct {
	implicitPoints [4]int
	implicitColors [2]int
}

var edgeConnections = map[uint8]edgeConnection{
	1: {implicitPoints: [4]int{3, 4, 5, 6}, implicitColors: [2]int{1, 2}},
	2: {implicitPoints: [4]int{6, 7, 8, 9}, implicitColors: [2]int{2, 3}},
	3: {implicitPoints: [4]int{9, 10, 11, 0}, implicitColors: [2]int{3, 0}},
}

// type7EdgeConnection is edgeConnection's type 7 counterpart: the previous
// patch's 16 points are stored in full stream order (12 boundary points
// followed by 4 interior points), so the inherited indices reach directly
// into that 16-element array.
type type7EdgeConnection struct {
	implicitStreamIndices [4]int
	implicitColorIndices  [2]int
}

var type7EdgeConnections = map[uint8]type7EdgeConnection{
	1: {implicitStreamIndices: [4]int{9, 8, 7, 6}, implicitColorIndices: [2]int{1, 2}},
	2: {implicitStreamIndices: [4]int{6, 5, 4, 3}, implicitColorIndices: [2]int{2, 3}},
	3: {implicitStreamIndices: [4]int{3, 2, 1, 0}, implicitColorIndices: [2]int{3, 0}},
}

func init() {
	wantFlags := []uint8{1, 2, 3}

	gotFlags := maps.Keys(edgeConnections)
	slices.Sort(gotFlags)
	if !slices.Equal(gotFlags, wantFlags) {
		panic(fmt.Sprintf("shading: edgeConnections covers flags %v, want %v", gotFlags, wantFlags))
	}

	got7Flags := maps.Keys(type7EdgeConnections)
	slices.Sort(got7Flags)
	if !slices.Equal(got7Flags, wantFlags) {
		panic(fmt.Sprintf("shading: type7EdgeConnections covers flags %v, want %v", got7Flags, wantFlags))
	}
}

// decodeType6 reads a Coons patch mesh (PDF shading type 6) into mb.
func decodeType6(br *BitReader, ctx *DecodeContext, mb *meshBuilder) error {
	var prevBoundary [12][2]float64
	var prevColors [4][3]uint8
	havePrev := false

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

		var boundary [12][2]float64
		var colors [4][3]uint8

		if flag == 0 {
			for i := 0; i < 12; i++ {
				x, y, err := ctx.ReadCoordinatePair(br)
				if err != nil {
					return err
				}
				boundary[i] = [2]float64{x, y}
			}
			for i := 0; i < 4; i++ {
				r, g, b, err := ctx.ReadColor(br)
				if err != nil {
					return err
				}
				colors[i] = [3]uint8{r, g, b}
			}
		} else {
			if flag > 3 {
				return fmt.Errorf("shading: invalid type 6 edge flag %d", flag)
			}
			if !havePrev {
				return fmt.Errorf("shading: type 6 connected patch (flag=%d) with no previous patch", flag)
			}
			conn, ok := edgeConnections[flag]
			if !ok {
				return fmt.Errorf("shading: invalid type 6 edge flag %d", flag)
			}
			for i := 0; i < 4; i++ {
				boundary[i] = prevBoundary[conn.implicitPoints[i]]
			}
			colors[0] = prevColors[conn.implicitColors[0]]
			colors[1] = prevColors[conn.implicitColors[1]]

			for i := 4; i < 12; i++ {
				x, y, err := ctx.ReadCoordinatePair(br)
				if err != nil {
					return err
				}
				boundary[i] = [2]float64{x, y}
			}
			for i := 2; i < 4; i++ {
				r, g, b, err := ctx.ReadColor(br)
				if err != nil {
					return err
				}
				colors[i] = [3]uint8{r, g, b}
			}
		}

		var ps [16][2]float64
		for i, p := range boundary {
			ps[boundaryGridSlot[i]] = p
		}
		for _, rule := range interiorRules {
			applyInteriorRule(&ps, rule)
		}

		// Type 6's 4 read colors are c1..c4, at boundary positions
		// p0, p3, p6, p9 - grid slots 0, 12, 15, 3 respectively.
		cornerRGB := [4][3]uint8{colors[0], colors[3], colors[1], colors[2]}

		mb.figures = append(mb.figures, builderFigure{kind: bfPatch, ps: ps, cornerRGB: cornerRGB})

		prevBoundary = boundary
		prevColors = colors
		havePrev = true
	}

	return nil
}

// decodeType7 reads a tensor-product patch mesh (PDF shading type 7) into mb.
func decodeType7(br *BitReader, ctx *DecodeContext, mb *meshBuilder) error {
	var prevStream [16][2]float64
	var prevColors [4][3]uint8
	havePrev := false

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

		var stream [16][2]float64
		var colors [4][3]uint8

		if flag == 0 {
			for i := 0; i < 16; i++ {
				x, y, err := ctx.ReadCoordinatePair(br)
				if err != nil {
					return err
				}
				stream[i] = [2]float64{x, y}
			}
			for i := 0; i < 4; i++ {
				r, g, b, err := ctx.ReadColor(br)
				if err != nil {
					return err
				}
				colors[i] = [3]uint8{r, g, b}
			}
		} else {
			if flag > 3 {
				return fmt.Errorf("shading: invalid type 7 edge flag %d", flag)
			}
			if !havePrev {
				return fmt.Errorf("shading: type 7 connected patch (flag=%d) with no previous patch", flag)
			}
			conn, ok := type7EdgeConnections[flag]
			if !ok {
				return fmt.Errorf("shading: invalid type 7 edge flag %d", flag)
			}
			for i := 0; i < 4; i++ {
				stream[i] = prevStream[conn.implicitStreamIndices[i]]
			}
			colors[0] = prevColors[conn.implicitColorIndices[0]]
			colors[1] = prevColors[conn.implicitColorIndices[1]]

			for i := 4; i < 16; i++ {
				x, y, err := ctx.ReadCoordinatePair(br)
				if err != nil {
					return err
				}
				stream[i] = [2]float64{x, y}
			}
			for i := 2; i < 4; i++ {
				r, g, b, err := ctx.ReadColor(br)
				if err != nil {
					return err
				}
				colors[i] = [3]uint8{r, g, b}
			}
		}

		var ps [16][2]float64
		for i, p := range stream {
			ps[type7StreamToSlot[i]] = p
		}

		// Type 7's 4 read colors are c00, c03, c33, c30, at stream
		// positions p0, p3, p6, p9 as for type 6 - grid slots 0, 12, 15, 3
		// respectively.
		cornerRGB := [4][3]uint8{colors[0], colors[3], colors[1], colors[2]}

		mb.figures = append(mb.figures, builderFigure{kind: bfPatch, ps: ps, cornerRGB: cornerRGB})

		prevStream = stream
		prevColors = colors
		havePrev = true
	}

	return nil
}

// == PatchTessellator ========================================================

const (
	triangleDensity = 20
	minSplit        = 3
	maxSplit        = 20
)

// bernsteinTable holds row (n+1) of cubic Bernstein weights [(1-t)^3,
// 3t(1-t)^2, 3t^2(1-t), t^3] for t = r/n, r = 0..n.
type bernsteinTable [][4]float64

var (
	bernsteinMu    sync.Mutex
	bernsteinCache = map[int]bernsteinTable{}
)

// bernstein returns the cached cubic Bernstein basis table for n subdivisions,
// computing and caching it on first use. The cache is process-wide and never
// evicted, matching the read-mostly, immutable-after-write discipline used
// throughout this package.
func bernstein(n int) bernsteinTable {
	bernsteinMu.Lock()
	defer bernsteinMu.Unlock()

	if t, ok := bernsteinCache[n]; ok {
		return t
	}

	t := make(bernsteinTable, n+1)
	for r := 0; r <= n; r++ {
		u := float64(r) / float64(n)
		v := 1 - u
		t[r] = [4]float64{v * v * v, 3 * u * v * v, 3 * u * u * v, u * u * u}
	}
	bernsteinCache[n] = t
	return t
}

func clampSplit(n int) int {
	if n < minSplit {
		return minSplit
	}
	if n > maxSplit {
		return maxSplit
	}
	return n
}

// tessellatePatch converts one 16-control-point bicubic patch into a
// (splitY+1) x (splitX+1) lattice, per [4.4]. meshBounds is the bounding box
// of the whole mesh's patch corners, used to scale this patch's density
// relative to its neighbors.
func tessellatePatch(mb *meshBuilder, ps [16][2]float64, cornerRGB [4][3]uint8, meshBounds [4]float64) {
	patchMinX, patchMaxX := ps[gridCorners[0]][0], ps[gridCorners[0]][0]
	patchMinY, patchMaxY := ps[gridCorners[0]][1], ps[gridCorners[0]][1]
	for _, slot := range gridCorners[1:] {
		p := ps[slot]
		if p[0] < patchMinX {
			patchMinX = p[0]
		}
		if p[0] > patchMaxX {
			patchMaxX = p[0]
		}
		if p[1] < patchMinY {
			patchMinY = p[1]
		}
		if p[1] > patchMaxY {
			patchMaxY = p[1]
		}
	}

	meshW := meshBounds[2] - meshBounds[0]
	meshH := meshBounds[3] - meshBounds[1]

	splitX := minSplit
	if meshW > 0 {
		splitX = clampSplit(int(math.Ceil(triangleDensity * (patchMaxX - patchMinX) / meshW)))
	}
	splitY := minSplit
	if meshH > 0 {
		splitY = clampSplit(int(math.Ceil(triangleDensity * (patchMaxY - patchMinY) / meshH)))
	}

	bx := bernstein(splitX)
	by := bernstein(splitY)

	c0, c1, c2, c3 := cornerRGB[0], cornerRGB[1], cornerRGB[2], cornerRGB[3]

	verts := make([]int, 0, (splitY+1)*(splitX+1))
	for row := 0; row <= splitY; row++ {
		// Corner colors for this row's left/right ends, truncated toward
		// zero per channel as required by [4.4].
		leftR, leftG, leftB := rowEndColor(c0, c2, row, splitY)
		rightR, rightG, rightB := rowEndColor(c1, c3, row, splitY)

		for col := 0; col <= splitX; col++ {
			var x, y float64
			for i := 0; i < 4; i++ {
				for j := 0; j < 4; j++ {
					w := by[row][i] * bx[col][j]
					p := ps[4*i+j]
					x += w * p[0]
					y += w * p[1]
				}
			}

			var r, g, b uint8
			switch {
			case row == 0 && col == 0:
				r, g, b = c0[0], c0[1], c0[2]
			case row == 0 && col == splitX:
				r, g, b = c1[0], c1[1], c1[2]
			case row == splitY && col == 0:
				r, g, b = c2[0], c2[1], c2[2]
			case row == splitY && col == splitX:
				r, g, b = c3[0], c3[1], c3[2]
			default:
				t := float64(col) / float64(splitX)
				r = lerpTrunc(leftR, rightR, t)
				g = lerpTrunc(leftG, rightG, t)
				b = lerpTrunc(leftB, rightB, t)
			}

			verts = append(verts, mb.addVertex(x, y, r, g, b))
		}
	}

	// Replace the four corner entries with fresh vertices carrying the exact
	// corner control points and colors, so seams between patches share
	// identical coordinates and colors. The interpolated vertices they
	// replace stay in the buffers, unreferenced.
	verts[0] = reuseCorner(mb, ps[gridCorners[0]], c0)
	verts[splitX] = reuseCorner(mb, ps[gridCorners[1]], c1)
	verts[splitY*(splitX+1)] = reuseCorner(mb, ps[gridCorners[2]], c2)
	verts[splitY*(splitX+1)+splitX] = reuseCorner(mb, ps[gridCorners[3]], c3)

	mb.figures = append(mb.figures, builderFigure{
		kind:           bfLattice,
		verts:          verts,
		verticesPerRow: splitX + 1,
	})
}

// reuseCorner adds a fresh vertex for a patch corner. Corners are not
// deduplicated across patches: each patch owns its own copy of its corner
// vertices, matching how the mesh's other vertices are emitted.
func reuseCorner(mb *meshBuilder, p [2]float64, rgb [3]uint8) int {
	return mb.addVertex(p[0], p[1], rgb[0], rgb[1], rgb[2])
}

// rowEndColor linearly interpolates between the two corner colors that
// bound one side of the patch (top-to-bottom), truncating each channel
// toward zero.
func rowEndColor(top, bottom [3]uint8, row, splitY int) (r, g, b uint8) {
	t := float64(row) / float64(splitY)
	return lerpTrunc(top[0], bottom[0], t), lerpTrunc(top[1], bottom[1], t), lerpTrunc(top[2], bottom[2], t)
}

// lerpTrunc linearly interpolates one 8-bit channel and truncates the
// result toward zero, rather than rounding, per [4.4] and the design notes
// on color truncation.
func lerpTrunc(a, b uint8, t float64) uint8 {
	v := float64(a) + t*(float64(b)-float64(a))
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

// tessellateMesh replaces every transient patch figure with a lattice
// figure, using the bounding box of all patches' corners as the shared
// mesh-density reference.
func tessellateMesh(mb *meshBuilder) {
	var minX, minY, maxX, maxY float64
	first := true
	for _, f := range mb.figures {
		if f.kind != bfPatch {
			continue
		}
		for _, slot := range gridCorners {
			p := f.ps[slot]
			if first {
				minX, maxX, minY, maxY = p[0], p[0], p[1], p[1]
				first = false
				continue
			}
			if p[0] < minX {
				minX = p[0]
			}
			if p[0] > maxX {
				maxX = p[0]
			}
			if p[1] < minY {
				minY = p[1]
			}
			if p[1] > maxY {
				maxY = p[1]
			}
		}
	}
	meshBounds := [4]float64{minX, minY, maxX, maxY}

	patches := mb.figures
	mb.figures = make([]builderFigure, 0, len(patches))
	for _, f := range patches {
		if f.kind != bfPatch {
			mb.figures = append(mb.figures, f)
			continue
		}
		tessellatePatch(mb, f.ps, f.cornerRGB, meshBounds)
	}
}
