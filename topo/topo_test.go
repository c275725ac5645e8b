package topo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitBoxTopology(t *testing.T) {
	body := UnitBox()
	faces, _, edges := BodyTopos(body)
	require.Len(t, faces, 6, "a box has six faces")
	require.Len(t, edges, 12, "a box has twelve distinct edges")

	for _, f := range faces {
		assert.Equal(t, 4, f.Outer.EdgeCount(), "every box face is bounded by four edges")
		assert.Empty(t, f.Inner, "a box face has no holes")
	}

	// Every edge must be used by exactly two faces across the whole body.
	uses := map[int]int{}
	for _, f := range faces {
		seen := map[int]bool{}
		for i := 0; i < f.Outer.EdgeCount(); i++ {
			e, _, _ := f.Outer.EdgeAt(i)
			if !seen[e.ID()] {
				seen[e.ID()] = true
				uses[e.ID()]++
			}
		}
	}
	for id, n := range uses {
		assert.Equal(t, 2, n, "edge %d should border exactly two faces", id)
	}
}

func TestIndexInBodyStable(t *testing.T) {
	body := UnitBox()
	faces, _, _ := BodyTopos(body)
	for i, f := range faces {
		assert.Equal(t, i, IndexInBody(f))
	}
}

func TestUVSphereSingleFaceSeamEdge(t *testing.T) {
	body := UVSphere(1)
	faces, _, edges := BodyTopos(body)
	require.Len(t, faces, 1)
	require.Len(t, edges, 1, "the seam edge is shared by both co-edges of the lone face's loop")
	assert.Equal(t, 2, faces[0].Outer.EdgeCount())
}
