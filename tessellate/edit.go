package tessellate

import (
	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/geom"
)

// Interior point editing: operations on a FaceTessellation's own interior
// (PtypeInterior) vertices, used by the Refinement Engine's repair passes
// and exposed for callers that want finer control than a full Retessellate.
// These are distinct from the Edge Editing component proper (§4.H, in
// edgeedit.go), which mutates Edge samples and propagates across every
// adjacent Face; interior vertices by definition belong to one Face only,
// so no cross-Face propagation is needed here. Each operation allocates and
// validates everything it needs before touching ft's slices, the way the
// teacher's decimator computes a rollback closure before calling
// attemptRemoveVertex so a failed attempt never leaves the mesh
// half-mutated: here, validate-then-snapshot-then-mutate plays the same
// role without needing an explicit closure, since every operation here
// touches a bounded, precomputed set of slots.

// MoveVertex relocates vertex index vi to a new UV location, recomputing
// its world position from surf. It never changes triangle connectivity.
func MoveVertex(ft *FaceTessellation, surf geom.Surface, vi int, newUV numVec2) error {
	if vi <= 0 || vi >= len(ft.UV) {
		return errkind.New(errkind.IndexOutOfRange, "move_vertex", "vertex index out of range")
	}
	pt, _ := surf.Evaluate(newUV[0], newUV[1])
	// Validate before mutating: reject a move that would invert any
	// triangle using vi.
	for t := 1; t <= ft.NumTriangles(); t++ {
		tri := ft.Tris[t]
		if tri[0] != vi && tri[1] != vi && tri[2] != vi {
			continue
		}
		uvs := [3]numVec2{ft.UV[tri[0]], ft.UV[tri[1]], ft.UV[tri[2]]}
		for c, v := range tri {
			if v == vi {
				uvs[c] = newUV
			}
		}
		if cross2(sub2(uvs[1], uvs[0]), sub2(uvs[2], uvs[0])) <= 0 {
			return errkind.New(errkind.ConstraintViolation, "move_vertex", "move would invert an adjacent triangle")
		}
	}
	ft.UV[vi] = newUV
	ft.Pos[vi] = [3]float64(pt)
	return nil
}

// DeleteInteriorVertex removes an interior vertex and re-ear-clips the hole
// its incident triangles leave behind. Only PtypeInterior vertices may be
// deleted; removing a boundary vertex would break Edge-sample identity with
// the neighboring Face.
func DeleteInteriorVertex(ft *FaceTessellation, vi int, p Params) error {
	if vi <= 0 || vi >= len(ft.Tags) {
		return errkind.New(errkind.IndexOutOfRange, "delete_vertex", "vertex index out of range")
	}
	if ft.Tags[vi].Kind != PtypeInterior {
		return errkind.New(errkind.ConstraintViolation, "delete_vertex", "only interior vertices may be deleted")
	}

	// Allocate-before-mutate: gather the ring of triangles first; if
	// anything here fails, ft is untouched.
	var ringTris []int
	for t := 1; t <= ft.NumTriangles(); t++ {
		tri := ft.Tris[t]
		if tri[0] == vi || tri[1] == vi || tri[2] == vi {
			ringTris = append(ringTris, t)
		}
	}
	if len(ringTris) == 0 {
		return errkind.New(errkind.NotFound, "delete_vertex", "vertex is not used by any triangle")
	}
	ring, err := orderedRing(ft, vi, ringTris)
	if err != nil {
		return errkind.Wrap(err, errkind.TopologyMismatch, "delete_vertex", "incident triangles do not form a closed ring")
	}

	var poly []polyVertex
	for _, v := range ring {
		poly = append(poly, polyVertex{vertexIdx: v, uv: ft.UV[v]})
	}

	// Mutate: drop the ring triangles (mark degenerate by zeroing, the
	// sentinel-safe way to "delete" from a 1-indexed, append-only array
	// without relabeling every later triangle id), then ear-clip the hole.
	for _, t := range ringTris {
		ft.Tris[t] = [3]int{0, 0, 0}
	}
	return earClip(ft, poly, p, false)
}

// orderedRing walks the one-ring of triangles around vi and returns the
// surrounding polygon's vertex indices in order.
func orderedRing(ft *FaceTessellation, vi int, tris []int) ([]int, error) {
	type link struct{ from, to int }
	edges := map[int]int{}
	for _, t := range tris {
		tri := ft.Tris[t]
		var a, b int
		for c := 0; c < 3; c++ {
			if tri[c] == vi {
				a, b = tri[(c+1)%3], tri[(c+2)%3]
				break
			}
		}
		edges[a] = b
	}
	var start int
	for k := range edges {
		start = k
		break
	}
	ring := []int{start}
	cur := start
	for i := 0; i < len(edges); i++ {
		next, ok := edges[cur]
		if !ok {
			return nil, errkind.New(errkind.TopologyMismatch, "ordered_ring", "broken ring")
		}
		if next == start {
			break
		}
		ring = append(ring, next)
		cur = next
	}
	if len(ring) != len(edges) {
		return nil, errkind.New(errkind.TopologyMismatch, "ordered_ring", "ring does not close")
	}
	return ring, nil
}

// InsertVertex adds a new interior vertex at (u, v), which must lie inside
// triangle containingTri, splitting it into three.
func InsertVertex(ft *FaceTessellation, surf geom.Surface, containingTri int, u, v float64) (int, error) {
	if containingTri <= 0 || containingTri > ft.NumTriangles() {
		return 0, errkind.New(errkind.IndexOutOfRange, "insert_vertex", "triangle id out of range")
	}
	tri := ft.Tris[containingTri]
	a, b, c := tri[0], tri[1], tri[2]
	uv := numVec2{u, v}
	if !sameSideTriangle(ft.UV[a], ft.UV[b], ft.UV[c], uv) {
		return 0, errkind.New(errkind.ConstraintViolation, "insert_vertex", "point does not lie inside the given triangle")
	}
	pt, _ := surf.Evaluate(u, v)
	vi := ft.addVertex(uv, [3]float64(pt), vertexTag{Kind: PtypeInterior})
	ft.Tris[containingTri] = [3]int{a, b, vi}
	ft.addTriangle(b, c, vi)
	ft.addTriangle(c, a, vi)
	return vi, nil
}
