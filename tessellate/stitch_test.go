package tessellate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/topo"
)

// TestStitchFacesLinksMatchBySampleIndex exercises the Face Stitching
// invariant directly: every boundary vertex tagged to a shared Edge must
// link to the triangle on the neighbor Face that actually borders the same
// (Edge, sample index) point, not just whichever triangle happened to touch
// the first sample found on that Edge.
func TestStitchFacesLinksMatchBySampleIndex(t *testing.T) {
	body := topo.UnitBox()
	p := DefaultParams(0.5, 0.001, 15)
	tess, err := TessellateBody(body, p, nil)
	require.NoError(t, err)

	faces, _, edges := topo.BodyTopos(body)

	checked := 0
	for _, e := range edges {
		var bordering []*topo.Face
		for _, f := range faces {
			if faceUsesEdge(f, e) {
				bordering = append(bordering, f)
			}
		}
		if len(bordering) != 2 {
			continue
		}
		f1, f2 := bordering[0], bordering[1]
		ft1, err := ReadFace(tess, f1)
		require.NoError(t, err)
		ft2, err := ReadFace(tess, f2)
		require.NoError(t, err)

		ft2BySample := map[int]int{}
		for v := 1; v < len(ft2.Tags); v++ {
			if int(ft2.Tags[v].Kind) == e.ID() {
				ft2BySample[ft2.Tags[v].Index] = v
			}
		}
		if len(ft2BySample) < 2 {
			continue // need at least two interior samples to catch the bug
		}

		seenTris := map[int]bool{}
		for v := 1; v < len(ft1.Tags); v++ {
			if int(ft1.Tags[v].Kind) != e.ID() {
				continue
			}
			lk, ok := ft1.Links[v]
			require.True(t, ok, "edge %d sample vertex %d should have a FaceLink", e.ID(), v)
			assert.Equal(t, f2, lk.NeighborFace)

			tv, ok := ft2BySample[ft1.Tags[v].Index]
			require.True(t, ok, "edge %d sample index %d missing on neighbor face", e.ID(), ft1.Tags[v].Index)
			tri := ft2.Tris[lk.NeighborTri]
			assert.True(t, tri[0] == tv || tri[1] == tv || tri[2] == tv,
				"edge %d sample %d: linked triangle %d on the neighbor face does not contain the matching vertex",
				e.ID(), ft1.Tags[v].Index, lk.NeighborTri)
			seenTris[lk.NeighborTri] = true
		}
		assert.Greater(t, len(seenTris), 1,
			"edge %d has multiple interior samples but every linked triangle on the neighbor face is identical", e.ID())
		checked++
	}
	require.Greater(t, checked, 0, "no shared Edge with multiple interior samples found to exercise")
}
