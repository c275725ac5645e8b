package tessellate

import "github.com/polyforge/tessellate/topo"

// computeTriNeighbors fills in ft.TriNeighbors from ft.Tris: a shared
// triangle edge gets the neighbor's 1-based triangle id on both sides; an
// edge used by only one triangle is a Face-boundary side and is decoded to
// -e, the topo.Edge it lies on, via boundaryEdgeID (or -1 if that fails).
func computeTriNeighbors(ft *FaceTessellation) {
	type use struct{ tri, corner int }
	edgeUses := map[midpointKey][]use{}
	for t := 1; t <= ft.NumTriangles(); t++ {
		tri := ft.Tris[t]
		if tri == [3]int{0, 0, 0} {
			continue
		}
		for c := 0; c < 3; c++ {
			a, b := tri[c], tri[(c+1)%3]
			k := makeMidpointKey(a, b)
			edgeUses[k] = append(edgeUses[k], use{tri: t, corner: c})
		}
	}
	for _, uses := range edgeUses {
		if len(uses) == 2 {
			ft.TriNeighbors[uses[0].tri][uses[0].corner] = uses[1].tri
			ft.TriNeighbors[uses[1].tri][uses[1].corner] = uses[0].tri
		} else {
			for _, u := range uses {
				tri := ft.Tris[u.tri]
				a, b := tri[u.corner], tri[(u.corner+1)%3]
				if id, ok := boundaryEdgeID(ft, a, b); ok {
					ft.TriNeighbors[u.tri][u.corner] = -id
				} else {
					ft.TriNeighbors[u.tri][u.corner] = -1
				}
			}
		}
	}
}

// boundaryEdgeID recovers the topo.Edge a boundary triangle side (a, b) lies
// on from the provenance tags of its two vertices. Either endpoint being an
// Edge-sample vertex (Kind > 0) names the Edge directly; if both ends are
// Node vertices instead (a two-sample Edge leaves no interior sample to tag),
// it falls back to a direct walk of the Face's loops to find the Edge
// bounded by those two Nodes.
func boundaryEdgeID(ft *FaceTessellation, a, b int) (int, bool) {
	ta, tb := ft.Tags[a], ft.Tags[b]
	if ta.Kind > 0 {
		return int(ta.Kind), true
	}
	if tb.Kind > 0 {
		return int(tb.Kind), true
	}
	if ta.Kind == PtypeNode && tb.Kind == PtypeNode {
		if e := edgeBetweenNodes(ft.Face, ta.Index, tb.Index); e != nil {
			return e.ID(), true
		}
	}
	return 0, false
}

// edgeBetweenNodes returns the Edge bounded by Node ids a and b among f's
// loops, in either direction, or nil if none borders both.
func edgeBetweenNodes(f *topo.Face, a, b int) *topo.Edge {
	for _, lp := range f.Loops() {
		for i := 0; i < lp.EdgeCount(); i++ {
			e, _, _ := lp.EdgeAt(i)
			if (e.Start.ID() == a && e.End.ID() == b) || (e.Start.ID() == b && e.End.ID() == a) {
				return e
			}
		}
	}
	return nil
}

// stitchFaces propagates FaceLink information across every Edge shared by
// two Faces, so a reader of one Face's FaceTessellation can find the
// triangle bordering it on the other side of a shared Edge, the invariant
// the spec calls Edge-sample identity across adjacent Faces.
func stitchFaces(tess *Tessellation) {
	edgeFaces := map[*topo.Edge][]*topo.Face{}
	faces, _, _ := topo.BodyTopos(tess.Body)
	for _, f := range faces {
		seen := map[*topo.Edge]bool{}
		for _, lp := range f.Loops() {
			for i := 0; i < lp.EdgeCount(); i++ {
				e, _, _ := lp.EdgeAt(i)
				if !seen[e] {
					seen[e] = true
					edgeFaces[e] = append(edgeFaces[e], f)
				}
			}
		}
	}

	for e, fs := range edgeFaces {
		if len(fs) != 2 {
			continue
		}
		f1, f2 := fs[0], fs[1]
		ft1, ok1 := tess.Faces[f1]
		ft2, ok2 := tess.Faces[f2]
		if !ok1 || !ok2 {
			continue
		}
		link(ft1, ft2, e)
		link(ft2, ft1, e)
	}
}

// link records, in `from`'s Links map, the neighbor Face and the triangle
// in `to` that borders each of `from`'s vertices lying on Edge e. Both
// Faces share the same EdgeTessellation, so two vertices tagged with the
// same (Edge, sample index) pair are the same point; matching on that pair
// (rather than handing every from-vertex the first to-vertex's triangle)
// is what keeps the link correct on an Edge with more than one interior
// sample.
func link(from, to *FaceTessellation, e *topo.Edge) {
	toVertexBySample := map[int]int{}
	for v := 1; v < len(to.Tags); v++ {
		if int(to.Tags[v].Kind) == e.ID() {
			toVertexBySample[to.Tags[v].Index] = v
		}
	}
	triOf := func(v int) int {
		for t := 1; t <= to.NumTriangles(); t++ {
			tri := to.Tris[t]
			if tri[0] == v || tri[1] == v || tri[2] == v {
				return t
			}
		}
		return 0
	}
	for v := 1; v < len(from.Tags); v++ {
		if int(from.Tags[v].Kind) != e.ID() {
			continue
		}
		neighborTri := 0
		if tv, ok := toVertexBySample[from.Tags[v].Index]; ok {
			neighborTri = triOf(tv)
		}
		from.Links[v] = FaceLink{NeighborFace: to.Face, NeighborTri: neighborTri}
	}
}
