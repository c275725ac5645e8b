package tessellate

import (
	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/topo"
)

// Edge Editing (§4.H): move, delete, and insert operations on an Edge's own
// sample list, propagated to every adjacent Face so Edge-sample identity
// (invariant 3 of §3) never drifts out of sync between Faces sharing the
// Edge. Each operation validates fully before mutating any shared state, the
// way the teacher's decimator computes a rollback closure before calling
// attemptRemoveVertex, so a rejected edit never leaves a half-mutated mesh.

// facesOnEdge returns every Face of tess.Body bordering e, in Body traversal
// order, by walking every Face's Loops for a co-edge on e (recomputed on
// each call since edits are rare and the walk is cheap relative to a full
// build).
func facesOnEdge(tess *Tessellation, e *topo.Edge) []*topo.Face {
	var out []*topo.Face
	faces, _, _ := topo.BodyTopos(tess.Body)
	for _, f := range faces {
		for _, lp := range f.Loops() {
			for i := 0; i < lp.EdgeCount(); i++ {
				if ce, _, _ := lp.EdgeAt(i); ce == e {
					out = append(out, f)
					break
				}
			}
		}
	}
	return out
}

// edgeUVOnFace evaluates e's co-edge PCurve on f at the fraction corresponding
// to sample k of e's current discretization (0 at the co-edge's own start, 1
// at its own end; independent of the Edge curve's own orientation).
func edgeUVOnFace(tess *Tessellation, f *topo.Face, e *topo.Edge, k int) (u, v float64, ok bool) {
	et := tess.Edges[e]
	n := len(et.Params)
	for _, lp := range f.Loops() {
		for i := 0; i < lp.EdgeCount(); i++ {
			ce, reversed, pc := lp.EdgeAt(i)
			if ce != e {
				continue
			}
			idx := k
			if reversed {
				idx = n - 1 - k
			}
			frac := float64(idx) / float64(n-1)
			uu, vv := pc.EvaluateUV(frac)
			return uu, vv, true
		}
	}
	return 0, 0, false
}

// MoveEdgeVert relocates Edge e's sample k to parameter new_t, which must lie
// strictly between its current neighbors (§4.H move). Every adjacent Face's
// matching (ptype=e, pindex=k) vertex is updated in place; connectivity is
// untouched. Any quad patch on an affected Face is discarded since its
// structured boundary would no longer track the moved sample.
func MoveEdgeVert(tess *Tessellation, e *topo.Edge, k int, newT float64) error {
	et, ok := tess.Edges[e]
	if !ok {
		return errkind.New(errkind.NotFound, "move_edge_vert", "edge has no tessellation")
	}
	if k <= 0 || k >= len(et.Params)-1 {
		return errkind.New(errkind.IndexOutOfRange, "move_edge_vert", "vertex index must be an interior sample")
	}
	if !(et.Params[k-1] < newT && newT < et.Params[k+1]) {
		return errkind.New(errkind.ParameterOutOfRange, "move_edge_vert", "new_t must lie strictly between its neighbors")
	}

	pt, tan := e.Curve.Evaluate(newT)
	faces := facesOnEdge(tess, e)
	type faceUpdate struct {
		ft *FaceTessellation
		vi int
		uv numVec2
	}
	var updates []faceUpdate
	for _, f := range faces {
		ft, ok := tess.Faces[f]
		if !ok {
			continue
		}
		u, v, ok := edgeUVOnFace(tess, f, e, k)
		if !ok {
			return errkind.New(errkind.TopologyMismatch, "move_edge_vert", "edge not found on its own adjacent face")
		}
		vi := findEdgeVertex(ft, e, k)
		if vi == 0 {
			return errkind.New(errkind.NotFound, "move_edge_vert", "edge sample not present in face vertex array")
		}
		updates = append(updates, faceUpdate{ft: ft, vi: vi, uv: numVec2{u, v}})
	}

	// All lookups succeeded; commit.
	et.Params[k] = newT
	et.Points[k] = [3]float64(pt)
	et.Normals[k] = [3]float64(tan)
	for _, u := range updates {
		u.ft.UV[u.vi] = u.uv
		u.ft.Pos[u.vi] = [3]float64(pt)
		u.ft.Quads = nil
	}
	return nil
}

// findEdgeVertex returns the vertex index in ft tagged (ptype=e.ID(),
// pindex=k), or 0 if absent.
func findEdgeVertex(ft *FaceTessellation, e *topo.Edge, k int) int {
	for v := 1; v < len(ft.Tags); v++ {
		if int(ft.Tags[v].Kind) == e.ID() && ft.Tags[v].Index == k {
			return v
		}
	}
	return 0
}

// DeleteEdgeVert collapses Edge e's sample k onto its neighbor in direction
// dir (-1 or +1), per §4.H delete. On every adjacent Face, the triangle
// bearing both the victim and survivor vertex is found, the victim index is
// substituted by the survivor throughout that Face's triangle list (folding
// the now-degenerate triangle away), and every other vertex tagged to a
// later Edge sample has its pindex decremented so the sample list stays
// contiguous. Quad patches on affected Faces are discarded.
func DeleteEdgeVert(tess *Tessellation, e *topo.Edge, k int, dir int) error {
	et, ok := tess.Edges[e]
	if !ok {
		return errkind.New(errkind.NotFound, "delete_edge_vert", "edge has no tessellation")
	}
	if dir != -1 && dir != 1 {
		return errkind.New(errkind.ConstraintViolation, "delete_edge_vert", "dir must be -1 or +1")
	}
	if k <= 0 || k >= len(et.Params)-1 {
		return errkind.New(errkind.IndexOutOfRange, "delete_edge_vert", "vertex index must be an interior sample")
	}
	survivorK := k + dir
	if survivorK < 0 || survivorK >= len(et.Params) {
		return errkind.New(errkind.IndexOutOfRange, "delete_edge_vert", "no neighbor sample in direction dir")
	}

	faces := facesOnEdge(tess, e)
	type faceUpdate struct {
		ft               *FaceTessellation
		victim, survivor int
	}
	var updates []faceUpdate
	for _, f := range faces {
		ft, ok := tess.Faces[f]
		if !ok {
			continue
		}
		victim := findEdgeVertex(ft, e, k)
		survivor := findEdgeVertex(ft, e, survivorK)
		if victim == 0 || survivor == 0 {
			return errkind.New(errkind.NotFound, "delete_edge_vert", "victim or survivor sample missing from face")
		}
		updates = append(updates, faceUpdate{ft: ft, victim: victim, survivor: survivor})
	}

	// Commit: substitute victim -> survivor in every adjacent Face's
	// triangle list, tombstoning triangles that degenerate to two equal
	// vertices, then shift pindex for every tag above k down by one.
	for _, u := range updates {
		for t := 1; t <= u.ft.NumTriangles(); t++ {
			tri := u.ft.Tris[t]
			changed := false
			for c := range tri {
				if tri[c] == u.victim {
					tri[c] = u.survivor
					changed = true
				}
			}
			if !changed {
				continue
			}
			if tri[0] == tri[1] || tri[1] == tri[2] || tri[0] == tri[2] {
				u.ft.Tris[t] = [3]int{0, 0, 0}
			} else {
				u.ft.Tris[t] = tri
			}
		}
		computeTriNeighbors(u.ft)
		for v := 1; v < len(u.ft.Tags); v++ {
			if int(u.ft.Tags[v].Kind) == e.ID() && u.ft.Tags[v].Index > k {
				u.ft.Tags[v].Index--
			}
		}
		u.ft.Quads = nil
	}

	et.Params = append(et.Params[:k], et.Params[k+1:]...)
	et.Points = append(et.Points[:k], et.Points[k+1:]...)
	et.Normals = append(et.Normals[:k], et.Normals[k+1:]...)
	stitchFaces(tess)
	return nil
}

// InsertEdgeVerts adds len(ts) new samples to Edge e immediately after
// sample index `after`, per §4.H insert. For every adjacent Face, the
// single existing triangle spanning the segment (after, after+1) is
// rewritten into a fan of len(ts)+1 triangles sharing that triangle's
// apex, matching the old triangle's neighbor pointers on its two untouched
// sides. Rejects if either adjacent triangle's opposite vertex is
// degenerate, i.e. collinear with the segment in UV, since a fan from it
// would only produce zero-area triangles.
func InsertEdgeVerts(tess *Tessellation, e *topo.Edge, after int, ts []float64) error {
	et, ok := tess.Edges[e]
	if !ok {
		return errkind.New(errkind.NotFound, "insert_edge_verts", "edge has no tessellation")
	}
	n := len(et.Params)
	if after < 0 || after >= n-1 {
		return errkind.New(errkind.IndexOutOfRange, "insert_edge_verts", "after must address an existing segment")
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return errkind.New(errkind.ParameterOutOfRange, "insert_edge_verts", "ts must be strictly increasing")
		}
	}
	if len(ts) > 0 && (ts[0] <= et.Params[after] || ts[len(ts)-1] >= et.Params[after+1]) {
		return errkind.New(errkind.ParameterOutOfRange, "insert_edge_verts", "ts must lie strictly inside the segment")
	}
	if len(ts) == 0 {
		return nil
	}

	faces := facesOnEdge(tess, e)
	type faceUpdate struct {
		ft         *FaceTessellation
		tri        int
		a, b, apex int // a = vertex at sample `after`, b = vertex at sample after+1, apex = opposite vertex
	}
	var updates []faceUpdate
	for _, f := range faces {
		ft, ok := tess.Faces[f]
		if !ok {
			continue
		}
		a := findEdgeVertex(ft, e, after)
		b := findEdgeVertex(ft, e, after+1)
		if a == 0 || b == 0 {
			return errkind.New(errkind.NotFound, "insert_edge_verts", "segment endpoints missing from face")
		}
		tri, apex, ok := findTriangleOnSegment(ft, a, b)
		if !ok {
			return errkind.New(errkind.TopologyMismatch, "insert_edge_verts", "no triangle spans the given segment")
		}
		if cross2(sub2(ft.UV[b], ft.UV[a]), sub2(ft.UV[apex], ft.UV[a])) == 0 {
			return errkind.New(errkind.ConstraintViolation, "insert_edge_verts", "opposite vertex is collinear with the segment")
		}
		updates = append(updates, faceUpdate{ft: ft, tri: tri, a: a, b: b, apex: apex})
	}

	// Commit: renumber existing tags above `after`, splice new Edge
	// samples, then fan each affected Face's old triangle.
	for _, f := range faces {
		ft, ok := tess.Faces[f]
		if !ok {
			continue
		}
		for v := 1; v < len(ft.Tags); v++ {
			if int(ft.Tags[v].Kind) == e.ID() && ft.Tags[v].Index > after {
				ft.Tags[v].Index += len(ts)
			}
		}
	}

	newParams := append([]float64{}, et.Params[:after+1]...)
	newPoints := append([][3]float64{}, et.Points[:after+1]...)
	newNormals := append([][3]float64{}, et.Normals[:after+1]...)
	for _, t := range ts {
		pt, tan := e.Curve.Evaluate(t)
		newParams = append(newParams, t)
		newPoints = append(newPoints, [3]float64(pt))
		newNormals = append(newNormals, [3]float64(tan))
	}
	newParams = append(newParams, et.Params[after+1:]...)
	newPoints = append(newPoints, et.Points[after+1:]...)
	newNormals = append(newNormals, et.Normals[after+1:]...)
	et.Params, et.Points, et.Normals = newParams, newPoints, newNormals

	for _, u := range updates {
		u.ft.Tris[u.tri] = [3]int{0, 0, 0} // tombstone the old triangle; the fan below replaces it
		prev := u.a
		for i, t := range ts {
			u2, v2, ok := edgeUVOnFace(tess, u.ft.Face, e, after+1+i)
			if !ok {
				return errkind.New(errkind.TopologyMismatch, "insert_edge_verts", "could not evaluate new sample UV on face")
			}
			pt, _ := e.Curve.Evaluate(t)
			vi := u.ft.addVertex(numVec2{u2, v2}, [3]float64(pt), vertexTag{Kind: ptype(e.ID()), Index: after + 1 + i})
			u.ft.addTriangle(prev, vi, u.apex)
			prev = vi
		}
		u.ft.addTriangle(prev, u.b, u.apex)
		computeTriNeighbors(u.ft)
		u.ft.Quads = nil
	}
	stitchFaces(tess)
	return nil
}

// findTriangleOnSegment returns the triangle using both a and b as vertices
// (in either winding) and the id of its third, "apex" vertex.
func findTriangleOnSegment(ft *FaceTessellation, a, b int) (tri, apex int, ok bool) {
	for t := 1; t <= ft.NumTriangles(); t++ {
		tr := ft.Tris[t]
		if tr == [3]int{0, 0, 0} {
			continue
		}
		hasA, hasB := false, false
		var other int
		for _, v := range tr {
			switch v {
			case a:
				hasA = true
			case b:
				hasB = true
			default:
				other = v
			}
		}
		if hasA && hasB {
			return t, other, true
		}
	}
	return 0, 0, false
}
