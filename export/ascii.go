// Package export writes a Tessellation to disk: an ASCII triangle-soup
// format (the persisted-data format called for by the external interfaces
// section) and an STL writer adapted from the teacher's model3d/export.go
// for visual inspection.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/tessellate"
	"github.com/polyforge/tessellate/topo"
)

// vertexKey is the (ptype, pindex) identity pair used to zipper-merge
// vertices shared between adjacent Faces, the way model3d/export.go's
// coordToIdx deduplicates by coordinate, generalized here from a single
// coordinate key to the (ptype, pindex) pair so two Faces' independently
// indexed copies of the same boundary sample collapse to one output vertex.
type vertexKey struct {
	faceID int
	kind   int
	index  int
}

// mergeTriangles zipper-merges every Face's triangles into one global,
// deduplicated vertex list plus a list of (v0, v1, v2, faceID) triangles
// with 1-based indices into that list, shared by both WriteASCII and
// WriteSTL so the two formats never disagree on vertex identity.
func mergeTriangles(tess *tessellate.Tessellation, faces []*topo.Face) ([][3]float64, [][4]int) {
	keyToIdx := map[vertexKey]int{}
	var vertices [][3]float64
	var triLines [][4]int // v0, v1, v2 (1-based global), faceID

	for _, f := range faces {
		ft, err := tessellate.ReadFace(tess, f)
		if err != nil {
			continue
		}
		local := map[int]int{}
		for v := 1; v < len(ft.Tags); v++ {
			kind := int(ft.Tags[v].Kind)
			var key vertexKey
			switch {
			case kind < 0:
				// Interior vertex: never shared across Faces, key by
				// owning Face + local index.
				key = vertexKey{faceID: topo.IndexInBody(f), kind: kind, index: v}
			case kind == 0:
				// Node vertex: shared by every Face/Edge meeting at that
				// Node, keyed by the Node's own id alone.
				key = vertexKey{faceID: 0, kind: kind, index: ft.Tags[v].Index}
			default:
				// kind > 0 is an Edge id: both Faces bordering that Edge
				// tag their matching sample with the same (kind, index),
				// so they collapse to one output vertex.
				key = vertexKey{faceID: 0, kind: kind, index: ft.Tags[v].Index}
			}
			gi, ok := keyToIdx[key]
			if !ok {
				vertices = append(vertices, ft.Pos[v])
				gi = len(vertices)
				keyToIdx[key] = gi
			}
			local[v] = gi
		}
		for t := 1; t <= ft.NumTriangles(); t++ {
			tri := ft.Tris[t]
			if tri == [3]int{0, 0, 0} {
				continue // tombstoned by DeleteInteriorVertex
			}
			triLines = append(triLines, [4]int{local[tri[0]], local[tri[1]], local[tri[2]], topo.IndexInBody(f)})
		}
	}
	return vertices, triLines
}

// WriteASCII writes every Face's triangles to w as plain text: a header
// line with global vertex/triangle counts, one line per vertex (x y z), and
// one line per triangle (three 1-based vertex indices and the owning
// Face's id as a component tag).
func WriteASCII(w io.Writer, tess *tessellate.Tessellation, faces []*topo.Face) error {
	bw := bufio.NewWriter(w)

	vertices, triLines := mergeTriangles(tess, faces)

	if _, err := fmt.Fprintf(bw, "%d %d\n", len(vertices), len(triLines)); err != nil {
		return errkind.Wrap(err, errkind.AllocationFailure, "write_ascii", "header")
	}
	for _, v := range vertices {
		if _, err := fmt.Fprintf(bw, "%.10g %.10g %.10g\n", v[0], v[1], v[2]); err != nil {
			return errkind.Wrap(err, errkind.AllocationFailure, "write_ascii", "vertex line")
		}
	}
	for _, t := range triLines {
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", t[0], t[1], t[2], t[3]); err != nil {
			return errkind.Wrap(err, errkind.AllocationFailure, "write_ascii", "triangle line")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush ascii export")
	}
	return nil
}
