package tessellate

import (
	"log"
	"math"

	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/numerical"
)

// refineFace runs up to MaxRefinementPasses swap-then-insert passes over a
// FaceTessellation's working mesh, stopping early once a pass changes
// nothing, driven by the same max_side/chord/angle_deg predicates the Edge
// Discretizer uses, now evaluated against the Face's Surface rather than an
// Edge's Curve.
func refineFace(ft *FaceTessellation, surf geom.Surface, p Params, logger *log.Logger) {
	logger = orDiscard(logger)
	hash := newMidpointHash()

	for pass := 0; pass < p.MaxRefinementPasses; pass++ {
		swapped := swapPhase(ft, surf)
		inserted := insertPhase(ft, surf, p, hash)
		if !swapped && !inserted {
			break
		}
	}
}

// swapPhase tries, for every interior triangle edge, an empty-circumcircle
// (Delaunay-style) swap test in UV space. The in-circle test alone decides
// a swap: surf is not consulted, and no surface-normal or angle_deg check
// is applied.
func swapPhase(ft *FaceTessellation, surf geom.Surface) bool {
	changed := false
	// Build an edge -> (tri, oppositeVertex) adjacency on the fly each pass;
	// simple O(n) rebuild is acceptable since MaxRefinementPasses is small.
	type edgeUse struct {
		tri  int
		opp  int
		a, b int
	}
	edgeMap := map[midpointKey][]edgeUse{}
	for t := 1; t <= ft.NumTriangles(); t++ {
		tri := ft.Tris[t]
		for c := 0; c < 3; c++ {
			a, b, opp := tri[c], tri[(c+1)%3], tri[(c+2)%3]
			k := makeMidpointKey(a, b)
			edgeMap[k] = append(edgeMap[k], edgeUse{tri: t, opp: opp, a: a, b: b})
		}
	}
	for k, uses := range edgeMap {
		if len(uses) != 2 {
			continue // boundary edge or non-manifold; never swapped
		}
		t1, t2 := uses[0], uses[1]
		if ft.Tags[k.a].Kind != PtypeInterior && ft.Tags[k.b].Kind != PtypeInterior {
			// Shared edge lies on the Face boundary (both endpoints tagged
			// Node/Edge); never swap a boundary edge.
			continue
		}
		if !inCircumcircle(ft.UV[t2.opp], ft.UV[k.a], ft.UV[k.b], ft.UV[t1.opp]) {
			continue
		}
		// Swap: replace (a, b) diagonal with (opp1, opp2).
		ft.Tris[t1.tri] = [3]int{t1.opp, k.a, t2.opp}
		ft.Tris[t2.tri] = [3]int{t2.opp, k.b, t1.opp}
		changed = true
	}
	return changed
}

// inCircumcircle reports whether point d lies inside the circumcircle of
// triangle (a, b, c), the standard in-circle predicate Delaunay swap tests
// use.
func inCircumcircle(d, a, b, c numVec2) bool {
	ax, ay := a[0]-d[0], a[1]-d[1]
	bx, by := b[0]-d[0], b[1]-d[1]
	cx, cy := c[0]-d[0], c[1]-d[1]
	det := (ax*ax+ay*ay)*(bx*cy-cx*by) -
		(bx*bx+by*by)*(ax*cy-cx*ay) +
		(cx*cx+cy*cy)*(ax*by-bx*ay)
	return det > 0
}

// insertPhase splits any triangle whose world-space edges or surface
// deviation violate max_side/chord/angle_deg, inserting a new vertex at the
// edge midpoint (evaluated on the surface, not linearly interpolated) and
// retriangulating the two triangles sharing that edge into four.
//
// Close-to-edge triangles are exempted from further splitting by a
// neighbor-graph search (triAdjacency/closeToEdge) rather than a depth
// counter threaded through each insert: CloseToEdgeDepthSplit bounds any
// split at all within that many hops of the Face boundary, while the
// looser CloseToEdgeDepthRefine only exempts the chord/angle deviation
// tests, so a close-to-edge triangle can still be cut down by a genuine
// max_side violation.
func insertPhase(ft *FaceTessellation, surf geom.Surface, p Params, hash *midpointHash) bool {
	changed := false
	angleRad := p.AngleDeg * math.Pi / 180
	adj := triAdjacency(ft)

	numTris := ft.NumTriangles()
	for t := 1; t <= numTris; t++ {
		if t >= len(ft.Tris) {
			break
		}
		tri := ft.Tris[t]
		if tri == [3]int{0, 0, 0} {
			continue
		}
		if closeToEdge(adj, t, p.CloseToEdgeDepthSplit) {
			continue
		}
		deviationBlocked := closeToEdge(adj, t, p.CloseToEdgeDepthRefine)

		var splitEdgeIdx = -1
		var worstLen float64
		for c := 0; c < 3; c++ {
			a, b := tri[c], tri[(c+1)%3]
			if violatesPredicate(ft, surf, a, b, p, angleRad, deviationBlocked) {
				pa, pb := ft.Pos[a], ft.Pos[b]
				l := dist3(pa, pb)
				if l > worstLen {
					worstLen = l
					splitEdgeIdx = c
				}
			}
		}
		if splitEdgeIdx < 0 {
			continue
		}
		a, b, opp := tri[splitEdgeIdx], tri[(splitEdgeIdx+1)%3], tri[(splitEdgeIdx+2)%3]
		m := splitEdge(ft, hash, a, b, surf)
		ft.Tris[t] = [3]int{a, m, opp}
		ft.addTriangle(m, b, opp)
		// Split the neighbor across (b, a) at the same cached midpoint.
		for t2 := 1; t2 < len(ft.Tris); t2++ {
			tri2 := ft.Tris[t2]
			for c := 0; c < 3; c++ {
				if tri2[c] == b && tri2[(c+1)%3] == a {
					opp2 := tri2[(c+2)%3]
					m2 := splitEdge(ft, hash, b, a, surf)
					ft.Tris[t2] = [3]int{b, m2, opp2}
					ft.addTriangle(m2, a, opp2)
				}
			}
		}
		hash.invalidate(a, b)
		changed = true
	}
	return changed
}

// triAdjacency builds each triangle's three neighbor ids (-1 for a boundary
// side), the real per-pass neighbor graph insertPhase's close-to-edge
// search walks — the same edge-use bookkeeping swapPhase already does
// inline for its own circumcircle test, rebuilt here as a standalone
// adjacency table since a triangle's neighbors change between passes as
// insertPhase and swapPhase edit ft.Tris.
func triAdjacency(ft *FaceTessellation) map[int][3]int {
	adj := make(map[int][3]int, ft.NumTriangles())
	for t := 1; t <= ft.NumTriangles(); t++ {
		if ft.Tris[t] == [3]int{0, 0, 0} {
			continue
		}
		adj[t] = [3]int{-1, -1, -1}
	}
	type edgeUse struct{ tri, side int }
	edgeMap := map[midpointKey][]edgeUse{}
	for t := range adj {
		tri := ft.Tris[t]
		for c := 0; c < 3; c++ {
			a, b := tri[c], tri[(c+1)%3]
			k := makeMidpointKey(a, b)
			edgeMap[k] = append(edgeMap[k], edgeUse{t, c})
		}
	}
	for _, uses := range edgeMap {
		if len(uses) != 2 {
			continue // boundary or non-manifold edge: neighbor stays -1
		}
		u0, u1 := uses[0], uses[1]
		n0 := adj[u0.tri]
		n0[u0.side] = u1.tri
		adj[u0.tri] = n0
		n1 := adj[u1.tri]
		n1[u1.side] = u0.tri
		adj[u1.tri] = n1
	}
	return adj
}

// closeToEdge reports whether any triangle within maxDepth hops of start,
// walked through adj, borders the Face boundary (a -1 neighbor entry) —
// the neighbor-graph search the close-to-edge criterion names, replacing a
// generation-counter that only approximated it.
func closeToEdge(adj map[int][3]int, start, maxDepth int) bool {
	if maxDepth <= 0 {
		return false
	}
	visited := map[int]bool{start: true}
	frontier := []int{start}
	for depth := 0; depth < maxDepth; depth++ {
		var next []int
		for _, t := range frontier {
			for _, nb := range adj[t] {
				if nb < 0 {
					return true
				}
				if !visited[nb] {
					visited[nb] = true
					next = append(next, nb)
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			break
		}
	}
	return false
}

func dist3(a, b [3]float64) float64 {
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// violatesPredicate evaluates the same max_side/chord/angle_deg family the
// Edge Discretizer uses (see needsSplit), now probing the Face's own
// Surface rather than an Edge's Curve: a segment is split when it is too
// long, when its midpoint (evaluated on the true surface, not the
// piecewise-linear triangle) sags too far from the literal midpoint of its
// two endpoints, or when the surface normals at its two ends turn by more
// than angle_deg. deviationBlocked skips the chord/angle tests, leaving
// only max_side active, for a triangle the close-to-edge search has
// exempted from further deviation-driven splitting.
func violatesPredicate(ft *FaceTessellation, surf geom.Surface, a, b int, p Params, angleRad float64, deviationBlocked bool) bool {
	pa, pb := ft.Pos[a], ft.Pos[b]
	if dist3(pa, pb) > p.MaxSide {
		return true
	}
	if deviationBlocked {
		return false
	}

	uvMid := numVec2{(ft.UV[a][0] + ft.UV[b][0]) / 2, (ft.UV[a][1] + ft.UV[b][1]) / 2}
	pm, _ := surf.Evaluate(uvMid[0], uvMid[1])
	paVec, pbVec := numerical.Vec3(pa), numerical.Vec3(pb)
	avg := paVec.Add(pbVec).Scale(0.5)
	if pm.Dist(avg) > p.Chord {
		return true
	}

	_, na := surf.Evaluate(ft.UV[a][0], ft.UV[a][1])
	_, nb := surf.Evaluate(ft.UV[b][0], ft.UV[b][1])
	cosAngle := clampf(na.Dot(nb), -1, 1)
	return math.Acos(cosAngle) > angleRad
}

// splitEdge inserts (or reuses, via hash) a midpoint vertex for edge (a, b)
// evaluated on the true surface, never linearly interpolated, so repeated
// refinement converges toward the surface instead of its current
// piecewise-linear approximation.
func splitEdge(ft *FaceTessellation, hash *midpointHash, a, b int, surf geom.Surface) int {
	if v, ok := hash.lookup(a, b); ok {
		return v
	}
	mu := (ft.UV[a][0] + ft.UV[b][0]) / 2
	mv := (ft.UV[a][1] + ft.UV[b][1]) / 2
	pt, _ := surf.Evaluate(mu, mv)
	v := ft.addVertex(numVec2{mu, mv}, [3]float64(pt), vertexTag{Kind: PtypeInterior})
	hash.store(a, b, v)
	return v
}
