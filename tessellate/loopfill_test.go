package tessellate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/topo"
)

// linearUV is a PCurve that walks a straight segment in a Face's UV plane,
// enough to drive the Loop Filler over hand-built square/hole/figure-eight
// fixtures without a real CAD PCurve kernel.
type linearUV struct{ u0, v0, u1, v1 float64 }

func (l *linearUV) EvaluateUV(t float64) (float64, float64) {
	return l.u0 + (l.u1-l.u0)*t, l.v0 + (l.v1-l.v0)*t
}
func (l *linearUV) ParamRange() geom.Range { return geom.Range{Lo: 0, Hi: 1} }

// buildPlanarLoop constructs a closed Loop in the world-space z=0 plane
// directly from a list of (u, v) corners, one straight Edge per side, each
// Edge carrying only its two endpoint samples (no subdivision) so every
// corner becomes exactly one Loop Filler polygon vertex. edges receives the
// per-Edge EdgeTessellation this loop's edges were registered under.
func buildPlanarLoop(bd *topo.Builder, face *topo.Face, outer bool, corners [][2]float64, edges map[*topo.Edge]*EdgeTessellation) *topo.Loop {
	n := len(corners)
	nodes := make([]*topo.Node, n)
	for i, c := range corners {
		nodes[i] = bd.NewNode([3]float64{c[0], c[1], 0})
	}
	var coEdges []topo.CoEdge
	for i := 0; i < n; i++ {
		a, b := i, (i+1)%n
		curve := &geom.Linear{
			From: [3]float64(nodes[a].Point),
			To:   [3]float64(nodes[b].Point),
		}
		e := bd.NewEdge(curve, nodes[a], nodes[b], false)
		edges[e] = &EdgeTessellation{
			Edge:   e,
			Params: []float64{0, 1},
			Points: [][3]float64{nodes[a].Point, nodes[b].Point},
		}
		coEdges = append(coEdges, topo.CoEdge{
			Edge:     e,
			Reversed: false,
			PCurve:   &linearUV{corners[a][0], corners[a][1], corners[b][0], corners[b][1]},
		})
	}
	lp := bd.NewLoop(face, outer, coEdges)
	return lp
}

func TestFillLoopSquareWithHole(t *testing.T) {
	bd := topo.NewBuilder()
	body := bd.NewBody()
	shell := bd.NewShell(body)
	body.Shells = []*topo.Shell{shell}
	face := bd.NewFace(shell, &geom.Plane{Normal: [3]float64{0, 0, 1}, AxisU: [3]float64{1, 0, 0}, AxisV: [3]float64{0, 1, 0}}, 1)

	edges := map[*topo.Edge]*EdgeTessellation{}
	outer := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	hole := [][2]float64{{0.4, 0.4}, {0.6, 0.4}, {0.6, 0.6}, {0.4, 0.6}}
	face.Outer = buildPlanarLoop(bd, face, true, outer, edges)
	face.Inner = []*topo.Loop{buildPlanarLoop(bd, face, false, hole, edges)}
	shell.Faces = []*topo.Face{face}

	ft := NewFaceTessellation(face)
	err := fillLoop(ft, face, edges, DefaultParams(10, 0.1, 15), nil)
	require.NoError(t, err)

	// §8 property 8: N - 2 + 2*holes triangles, N = 8 total boundary verts.
	assert.Equal(t, 8, ft.NumTriangles())
	for tID := 1; tID <= ft.NumTriangles(); tID++ {
		tri := ft.Tris[tID]
		a, b, c := ft.UV[tri[0]], ft.UV[tri[1]], ft.UV[tri[2]]
		area := (b[0]-a[0])*(c[1]-a[1]) - (c[0]-a[0])*(b[1]-a[1])
		assert.Greater(t, area, 0.0, "triangle %d must be CCW in UV", tID)
	}
}

func TestFillLoopDegenerateContourErrors(t *testing.T) {
	bd := topo.NewBuilder()
	body := bd.NewBody()
	shell := bd.NewShell(body)
	body.Shells = []*topo.Shell{shell}
	face := bd.NewFace(shell, &geom.Plane{Normal: [3]float64{0, 0, 1}, AxisU: [3]float64{1, 0, 0}, AxisV: [3]float64{0, 1, 0}}, 1)

	edges := map[*topo.Edge]*EdgeTessellation{}
	// Only two corners: fewer than three boundary points.
	face.Outer = buildPlanarLoop(bd, face, true, [][2]float64{{0, 0}, {1, 0}}, edges)
	shell.Faces = []*topo.Face{face}

	ft := NewFaceTessellation(face)
	err := fillLoop(ft, face, edges, DefaultParams(10, 0.1, 15), nil)
	require.Error(t, err)
}
