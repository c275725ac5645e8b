package tessellate

import (
	"github.com/unixpickle/essentials"

	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/numerical"
	"github.com/polyforge/tessellate/topo"
)

// BuildQuads attempts to build a QuadTessellation for a 4-sided Face: a
// structured grid filled by transfinite bilinear blending of its four
// boundary curves, followed by one pass of discrete-Laplacian smoothing of
// the interior UVs solved with numerical.BiCGSTABSolver — the same solver
// machinery the teacher's parameterization.go uses for Floater97, here
// repurposed from a free-form mesh parameterization solve to a structured-
// grid relaxation. Faces whose outer Loop does not have exactly four sides
// (after holes are present, or an irregular edge count) are skipped, not
// an error: quad patches are a bonus overlay, never required to exist.
func BuildQuads(tess *Tessellation, f *topo.Face) error {
	ft, ok := tess.Faces[f]
	if !ok {
		return errkind.New(errkind.NoDataYet, "build_quads", "face has not been tessellated yet")
	}
	if len(f.Inner) != 0 || f.Outer.EdgeCount() != 4 {
		return nil
	}

	sides, err := quadSides(ft, f, tess.Edges)
	if err != nil {
		return errkind.Wrap(err, errkind.TopologyMismatch, "build_quads", "could not extract four matching sides")
	}

	// sides[i] runs corner to corner inclusive (nu+1 / nv+1 vertices), so the
	// segment count along each axis is one less than its vertex count.
	nu := len(sides[0]) - 1
	nv := len(sides[1]) - 1
	if nu < 2 || nv < 2 {
		return errkind.New(errkind.DegenerateEdge, "build_quads", "side sample count too small to grid")
	}

	grid := make([]int, (nu+1)*(nv+1))
	at := func(i, j int) *int { return &grid[j*(nu+1)+i] }

	// Corners and the four boundary rows/columns come straight from the
	// existing boundary vertex indices (already placed by fillLoop).
	for i := 0; i <= nu; i++ {
		*at(i, 0) = sides[0][i]
		*at(i, nv) = sides[2][nu-i]
	}
	for j := 0; j <= nv; j++ {
		*at(0, j) = sides[3][nv-j]
		*at(nu, j) = sides[1][j]
	}

	surf := f.Surface
	for j := 1; j < nv; j++ {
		for i := 1; i < nu; i++ {
			uv := transfiniteBlend(ft, i, j, nu, nv, sides)
			pt, _ := surf.Evaluate(uv[0], uv[1])
			vi := ft.addVertex(uv, [3]float64(pt), vertexTag{Kind: PtypeInterior})
			*at(i, j) = vi
		}
	}

	laplacianSmoothInterior(ft, surf, grid, nu, nv)

	var patches []Patch
	for j := 0; j < nv; j++ {
		for i := 0; i < nu; i++ {
			patches = append(patches, Patch{Corners: [4]int{
				*at(i, j), *at(i+1, j), *at(i+1, j+1), *at(i, j+1),
			}})
		}
	}

	ft.Quads = &QuadTessellation{Face: f, NU: nu, NV: nv, Grid: grid, Patches: patches}
	return nil
}

// quadSides extracts, for each of the Face's four co-edges in order, the
// ordered list of boundary vertex indices running from its start Node to
// its end Node inclusive, requiring the two U-direction sides to carry the
// same sample count and likewise for the two V-direction sides.
//
// Each co-edge only contributed its own n-1 "own" vertices to ft (the final
// endpoint is the next co-edge's start Node, per buildLoopPolygon's
// sample-0..n-2 walk, avoiding duplication around the loop), so the far
// corner of side i is stitched on from side (i+1)%4's own first vertex.
func quadSides(ft *FaceTessellation, f *topo.Face, edges map[*topo.Edge]*EdgeTessellation) ([4][]int, error) {
	var raw [4][]int
	cursor := 1 // boundary vertices were appended to ft in Loop order starting at index 1
	for i := 0; i < 4; i++ {
		e, _, _ := f.Outer.EdgeAt(i)
		et, ok := edges[e]
		if !ok {
			return [4][]int{}, errkind.New(errkind.NoDataYet, "quad_sides", "edge not discretized")
		}
		n := len(et.Params) - 1 // this co-edge's own vertex count in the loop polygon
		var side []int
		for k := 0; k < n; k++ {
			if cursor >= len(ft.Tags) {
				return [4][]int{}, errkind.New(errkind.TopologyMismatch, "quad_sides", "ran out of boundary vertices")
			}
			side = append(side, cursor)
			cursor++
		}
		raw[i] = side
	}

	var sides [4][]int
	for i := 0; i < 4; i++ {
		sides[i] = append(append([]int{}, raw[i]...), raw[(i+1)%4][0])
	}
	if len(sides[0]) != len(sides[2]) || len(sides[1]) != len(sides[3]) {
		return sides, errkind.New(errkind.TopologyMismatch, "quad_sides", "opposite sides have mismatched sample counts")
	}
	return sides, nil
}

func transfiniteBlend(ft *FaceTessellation, i, j, nu, nv int, sides [4][]int) numVec2 {
	s, t := float64(i)/float64(nu), float64(j)/float64(nv)
	bottom := ft.UV[sides[0][minInt(i, len(sides[0])-1)]]
	top := ft.UV[sides[2][minInt(nu-i, len(sides[2])-1)]]
	left := ft.UV[sides[3][minInt(nv-j, len(sides[3])-1)]]
	right := ft.UV[sides[1][minInt(j, len(sides[1])-1)]]
	c00 := ft.UV[sides[0][0]]
	c10 := ft.UV[sides[1][0]]
	c11 := ft.UV[sides[2][0]]
	c01 := ft.UV[sides[3][0]]

	blendU := addUV(scaleUV(left, 1-s), scaleUV(right, s))
	blendV := addUV(scaleUV(bottom, 1-t), scaleUV(top, t))
	bilinear := addUV(addUV(scaleUV(c00, (1-s)*(1-t)), scaleUV(c10, s*(1-t))), addUV(scaleUV(c11, s*t), scaleUV(c01, (1-s)*t)))
	return subUV(addUV(blendU, blendV), bilinear)
}

func scaleUV(v numVec2, s float64) numVec2 { return numVec2{v[0] * s, v[1] * s} }
func addUV(a, b numVec2) numVec2           { return numVec2{a[0] + b[0], a[1] + b[1]} }
func subUV(a, b numVec2) numVec2           { return numVec2{a[0] - b[0], a[1] - b[1]} }

func minInt(a, b int) int { return essentials.MinInt(a, b) }

// laplacianSmoothInterior relaxes every interior grid UV toward the average
// of its four structured neighbors, solved as a sparse linear system with
// numerical.BiCGSTABSolver rather than a fixed number of Jacobi sweeps, so
// the relaxation converges to the same tolerance the rest of the kernel
// uses for iterative solves.
func laplacianSmoothInterior(ft *FaceTessellation, surf geom.Surface, grid []int, nu, nv int) {
	at := func(i, j int) int { return grid[j*(nu+1)+i] }
	var interior [][2]int
	index := map[[2]int]int{}
	for j := 1; j < nv; j++ {
		for i := 1; i < nu; i++ {
			index[[2]int{i, j}] = len(interior)
			interior = append(interior, [2]int{i, j})
		}
	}
	n := len(interior)
	if n == 0 {
		return
	}

	for axis := 0; axis < 2; axis++ {
		m := numerical.NewSparseMatrix(n)
		b := make([]float64, n)
		for row, cell := range interior {
			i, j := cell[0], cell[1]
			m.Set(row, row, -4)
			neighbors := [4][2]int{{i - 1, j}, {i + 1, j}, {i, j - 1}, {i, j + 1}}
			for _, nb := range neighbors {
				if r2, ok := index[nb]; ok {
					m.Add(row, r2, 1)
				} else {
					vi := at(nb[0], nb[1])
					b[row] -= ft.UV[vi][axis]
				}
			}
		}
		init := make([]float64, n)
		for row, cell := range interior {
			init[row] = ft.UV[at(cell[0], cell[1])][axis]
		}
		solver := numerical.DefaultSolver()
		sol := solver.SolveLinearSystem(m.Apply, b, init)
		for row, cell := range interior {
			vi := at(cell[0], cell[1])
			uv := ft.UV[vi]
			uv[axis] = sol[row]
			ft.UV[vi] = uv
		}
	}

	for _, cell := range interior {
		vi := at(cell[0], cell[1])
		pt, _ := surf.Evaluate(ft.UV[vi][0], ft.UV[vi][1])
		ft.Pos[vi] = [3]float64(pt)
	}
}
