package tessellate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/topo"
)

// countLiveTriangles counts non-tombstoned triangles: DeleteEdgeVert and
// InsertEdgeVerts leave a tombstoned {0,0,0} slot behind rather than
// shrinking Tris, so NumTriangles() alone over-counts after an edit.
func countLiveTriangles(ft *FaceTessellation) int {
	n := 0
	for t := 1; t <= ft.NumTriangles(); t++ {
		if ft.Tris[t] != [3]int{0, 0, 0} {
			n++
		}
	}
	return n
}

// TestEdgeEditInsertThenDeleteRoundTrip exercises scenario S4 and §8
// property 5: inserting a sample and then deleting it back onto its former
// neighbor restores both the Edge's sample count and every adjacent Face's
// live triangle count.
func TestEdgeEditInsertThenDeleteRoundTrip(t *testing.T) {
	body := topo.UnitBox()
	p := DefaultParams(0.5, 0.001, 15)
	tess, err := TessellateBody(body, p, nil)
	require.NoError(t, err)

	_, _, edges := topo.BodyTopos(body)
	e := edges[0]
	et := tess.Edges[e]
	beforeSamples := len(et.Params)
	require.GreaterOrEqual(t, beforeSamples, 3)

	faces := facesOnEdge(tess, e)
	require.Len(t, faces, 2)
	beforeLive := map[*topo.Face]int{}
	for _, f := range faces {
		ft, err := ReadFace(tess, f)
		require.NoError(t, err)
		beforeLive[f] = countLiveTriangles(ft)
	}

	mid := (et.Params[1] + et.Params[2]) / 2
	require.NoError(t, InsertEdgeVerts(tess, e, 1, []float64{mid}))
	assert.Equal(t, beforeSamples+1, len(tess.Edges[e].Params))
	for _, f := range faces {
		ft, err := ReadFace(tess, f)
		require.NoError(t, err)
		assert.Equal(t, beforeLive[f]+1, countLiveTriangles(ft),
			"inserting one sample should add one live triangle per adjacent face")
	}

	require.NoError(t, DeleteEdgeVert(tess, e, 2, -1))
	assert.Equal(t, beforeSamples, len(tess.Edges[e].Params),
		"§8 property 5: insert then delete restores the sample count")
	for _, f := range faces {
		ft, err := ReadFace(tess, f)
		require.NoError(t, err)
		assert.Equal(t, beforeLive[f], countLiveTriangles(ft),
			"deleting the inserted sample restores the live triangle count")
	}
}

func TestMoveEdgeVertUpdatesAdjacentFaces(t *testing.T) {
	body := topo.UnitBox()
	p := DefaultParams(0.5, 0.001, 15)
	tess, err := TessellateBody(body, p, nil)
	require.NoError(t, err)

	_, _, edges := topo.BodyTopos(body)
	e := edges[0]
	et := tess.Edges[e]
	require.GreaterOrEqual(t, len(et.Params), 3)
	newT := (et.Params[1] + et.Params[2]) / 2

	require.NoError(t, MoveEdgeVert(tess, e, 2, newT))
	assert.InDelta(t, newT, tess.Edges[e].Params[2], 1e-12)

	for _, f := range facesOnEdge(tess, e) {
		ft, err := ReadFace(tess, f)
		require.NoError(t, err)
		vi := findEdgeVertex(ft, e, 2)
		require.NotZero(t, vi)
		assert.Equal(t, tess.Edges[e].Points[2], ft.Pos[vi])
	}
}

func TestMoveEdgeVertRejectsOutOfRangeParam(t *testing.T) {
	body := topo.UnitBox()
	p := DefaultParams(0.5, 0.001, 15)
	tess, err := TessellateBody(body, p, nil)
	require.NoError(t, err)

	_, _, edges := topo.BodyTopos(body)
	e := edges[0]
	et := tess.Edges[e]
	require.Error(t, MoveEdgeVert(tess, e, 2, et.Params[len(et.Params)-1]+1))
}

func TestInsertEdgeVertsRejectsUnsortedParams(t *testing.T) {
	body := topo.UnitBox()
	p := DefaultParams(0.5, 0.001, 15)
	tess, err := TessellateBody(body, p, nil)
	require.NoError(t, err)

	_, _, edges := topo.BodyTopos(body)
	e := edges[0]
	et := tess.Edges[e]
	mid := (et.Params[0] + et.Params[1]) / 2
	require.Error(t, InsertEdgeVerts(tess, e, 0, []float64{mid, mid}))
}
