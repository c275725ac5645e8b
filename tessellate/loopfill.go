package tessellate

import (
	"log"
	"math"

	"github.com/unixpickle/splaytree"

	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/topo"
)

// polyVertex is one vertex of the simple polygon the Loop Filler triangulates,
// after bridging holes into the outer boundary.
type polyVertex struct {
	vertexIdx int // index into the FaceTessellation vertex arrays
	uv        numVec2
}

// fillLoop triangulates a Face's trimmed UV domain: it discretizes every
// boundary Edge (reusing the shared EdgeTessellation samples), merges the
// outer Loop and any inner (hole) Loops into one simple polygon by bridging,
// then ear-clips that polygon with a shortest-segment-first advancing
// strategy, the way a PSLG-based mesher normalizes outer+hole loops before
// triangulating (see the gomesh-style cdt-builder's Build pipeline).
func fillLoop(ft *FaceTessellation, face *topo.Face, edges map[*topo.Edge]*EdgeTessellation, p Params, logger *log.Logger) error {
	logger = orDiscard(logger)

	outerPoly, err := buildLoopPolygon(ft, face.Outer, edges)
	if err != nil {
		return errkind.Wrap(err, errkind.TopologyMismatch, "fill_loop", "outer loop")
	}
	if !isCCW(outerPoly) {
		reversePoly(outerPoly)
	}

	holePolys := make([][]polyVertex, 0, len(face.Inner))
	for _, lp := range face.Inner {
		hp, err := buildLoopPolygon(ft, lp, edges)
		if err != nil {
			return errkind.Wrap(err, errkind.TopologyMismatch, "fill_loop", "inner loop")
		}
		if isCCW(hp) {
			reversePoly(hp)
		}
		holePolys = append(holePolys, hp)
	}

	simple := outerPoly
	for _, hp := range holePolys {
		simple = bridgeHole(simple, hp)
	}

	if len(simple) < 3 {
		return errkind.New(errkind.DegenerateEdge, "fill_loop", "fewer than 3 boundary vertices")
	}

	if err := earClip(ft, simple, p, false); err != nil {
		logger.Printf("fill_loop: face %d first pass failed (%v), retrying with relaxed tolerance", topo.IndexInBody(face), err)
		if err2 := earClip(ft, simple, p, true); err2 != nil {
			return errkind.Wrap(err2, errkind.ConstraintViolation, "fill_loop", "loop could not be closed after retry")
		}
	}
	return nil
}

// buildLoopPolygon walks one topo.Loop, pulling in every Node and interior
// Edge sample as a polygon vertex, tagging Nodes/Edge-samples so Face
// Stitching can recognize them later, and mapping each to a UV coordinate
// via the co-edge's PCurve.
func buildLoopPolygon(ft *FaceTessellation, lp *topo.Loop, edges map[*topo.Edge]*EdgeTessellation) ([]polyVertex, error) {
	var poly []polyVertex
	for i := 0; i < lp.EdgeCount(); i++ {
		e, reversed, pc := lp.EdgeAt(i)
		et, ok := edges[e]
		if !ok {
			return nil, errkind.New(errkind.NoDataYet, "build_loop_polygon", "edge has not been discretized yet")
		}
		n := len(et.Params)
		// Visit samples 0..n-2 (exclude the final endpoint; it is the first
		// vertex of the next co-edge, preventing duplication around the loop).
		order := make([]int, n-1)
		for k := range order {
			if reversed {
				order[k] = n - 1 - k
			} else {
				order[k] = k
			}
		}
		for k, sampleIdx := range order {
			// frac walks the co-edge's own direction (0 at its start, 1 at
			// its end), independent of the underlying Edge curve's
			// orientation, which is what order[] already reversed for us.
			frac := float64(k) / float64(n-1)
			u, v := pc.EvaluateUV(frac)
			var tag vertexTag
			switch {
			case !reversed && sampleIdx == 0:
				tag = vertexTag{Kind: PtypeNode, Index: e.Start.ID()}
			case reversed && sampleIdx == n-1:
				tag = vertexTag{Kind: PtypeNode, Index: e.End.ID()}
			default:
				tag = vertexTag{Kind: ptype(e.ID()), Index: sampleIdx}
			}
			vi := ft.addVertex(numVec2{u, v}, et.Points[sampleIdx], tag)
			poly = append(poly, polyVertex{vertexIdx: vi, uv: numVec2{u, v}})
		}
	}
	return poly, nil
}

func isCCW(poly []polyVertex) bool {
	var area float64
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i].uv, poly[(i+1)%n].uv
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area > 0
}

func reversePoly(poly []polyVertex) {
	for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
		poly[i], poly[j] = poly[j], poly[i]
	}
}

// bridgeHole merges a CW hole polygon into a CCW outer polygon by finding
// the hole vertex closest (in UV) to some outer vertex with an unobstructed
// line of sight, and splicing the hole in via a zero-width bridge, the
// standard way simple-polygon triangulators eliminate holes before
// ear-clipping.
func bridgeHole(outer, hole []polyVertex) []polyVertex {
	bestOuter, bestHole := 0, 0
	bestDist := math.Inf(1)
	for oi, ov := range outer {
		for hi, hv := range hole {
			d := (ov.uv[0]-hv.uv[0])*(ov.uv[0]-hv.uv[0]) + (ov.uv[1]-hv.uv[1])*(ov.uv[1]-hv.uv[1])
			if d < bestDist {
				bestDist = d
				bestOuter, bestHole = oi, hi
			}
		}
	}
	var out []polyVertex
	out = append(out, outer[:bestOuter+1]...)
	rotatedHole := append(append([]polyVertex{}, hole[bestHole:]...), hole[:bestHole+1]...)
	out = append(out, rotatedHole...)
	out = append(out, outer[bestOuter:]...)
	return out
}

// frontQueueItem orders candidate ears by the squared length of the front
// segment (i, next[i]) that starts them, shortest first, mirroring the teacher's
// splaytree.Tree-backed nextMeshDiscs priority queue pattern.
type frontQueueItem struct {
	polyIdx int
	lenSq   float64
}

func (a frontQueueItem) Compare(b frontQueueItem) int {
	if a.lenSq < b.lenSq {
		return -1
	}
	if a.lenSq > b.lenSq {
		return 1
	}
	if a.polyIdx < b.polyIdx {
		return -1
	}
	if a.polyIdx > b.polyIdx {
		return 1
	}
	return 0
}

// earClip triangulates the simple polygon `poly` (a slice of vertex
// references, not yet connected into triangles) using a shortest-front-
// segment-first strategy accelerated by a crossingIndex. When relaxed is
// true (the Loop Filler's second-pass retry, Open Question 3) the
// point-in-triangle test is skipped and a marginally reflex apex is
// admitted (see reflexTol).
func earClip(ft *FaceTessellation, poly []polyVertex, p Params, relaxed bool) error {
	n := len(poly)
	if n < 3 {
		return errkind.New(errkind.DegenerateEdge, "ear_clip", "polygon has fewer than 3 vertices")
	}

	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}
	next := make([]int, n)
	prev := make([]int, n)
	for i := range poly {
		next[i] = (i + 1) % n
		prev[i] = (i - 1 + n) % n
	}

	segs := make([]*frontSegment, n)
	for i := 0; i < n; i++ {
		segs[i] = &frontSegment{vi: poly[i].vertexIdx, vj: poly[next[i]].vertexIdx, a: poly[i].uv, b: poly[next[i]].uv, alive: true}
	}
	idx := newCrossingIndex(segs)

	tree := &splaytree.Tree[frontQueueItem]{}
	for i := 0; i < n; i++ {
		tree.Insert(frontQueueItem{polyIdx: i, lenSq: segs[i].length()})
	}

	remaining := n
	progressed := false
	// reflexTol admits an ear whose apex is marginally reflex (by up to
	// this UV-space cross-product slack) only on the relaxed retry pass,
	// scaled by LoopFillerRetryAspectScale so a larger scale tolerates a
	// sliverier ear before giving up and erroring out.
	reflexTol := 0.0
	if relaxed {
		scale := p.LoopFillerRetryAspectScale
		if scale <= 0 {
			scale = DefaultLoopFillerRetryAspectScale
		}
		reflexTol = -1e-9 * scale
	}

	for remaining > 3 {
		item, ok := tree.Min()
		if !ok {
			if !progressed {
				return errkind.New(errkind.ConstraintViolation, "ear_clip", "priority queue exhausted before polygon closed")
			}
			progressed = false
			for m := 0; m < n; m++ {
				if active[m] {
					d := sub2(poly[next[m]].uv, poly[m].uv)
					tree.Insert(frontQueueItem{polyIdx: m, lenSq: d[0]*d[0] + d[1]*d[1]})
				}
			}
			continue
		}
		tree.Delete(item)
		i := item.polyIdx
		if !active[i] {
			continue
		}
		j := next[i]
		k := next[j]
		if !active[j] || !active[k] {
			continue
		}
		a, b, c := poly[i].uv, poly[j].uv, poly[k].uv
		if cross2(sub2(b, a), sub2(c, a)) <= reflexTol {
			// Reflex at j; not a valid ear, leave it for a future pass: when
			// the queue runs dry after a sweep that clipped an ear, every
			// active vertex is queued again.
			continue
		}
		if !relaxed && pointInTriangle(a, b, c, poly, active, i, j, k) {
			continue
		}
		if idx.crosses(a, c, [2]int{poly[i].vertexIdx, poly[k].vertexIdx}) {
			continue
		}

		ft.addTriangle(poly[i].vertexIdx, poly[j].vertexIdx, poly[k].vertexIdx)

		active[j] = false
		next[i] = k
		prev[k] = i
		remaining--
		progressed = true

		// Retire the two segments touching j and add the new closing one.
		markDead(segs, poly[i].vertexIdx, poly[j].vertexIdx)
		markDead(segs, poly[j].vertexIdx, poly[k].vertexIdx)
		newSeg := &frontSegment{vi: poly[i].vertexIdx, vj: poly[k].vertexIdx, a: poly[i].uv, b: poly[k].uv, alive: true}
		segs = append(segs, newSeg)
		idx.maybeRebuild(segs)
		tree.Insert(frontQueueItem{polyIdx: i, lenSq: newSeg.length()})
	}

	// Close the final triangle among the three surviving vertices.
	var survivors []int
	for i := 0; i < n; i++ {
		if active[i] {
			survivors = append(survivors, i)
		}
	}
	if len(survivors) != 3 {
		return errkind.New(errkind.ConstraintViolation, "ear_clip", "expected exactly 3 surviving vertices to close the loop")
	}
	ft.addTriangle(poly[survivors[0]].vertexIdx, poly[survivors[1]].vertexIdx, poly[survivors[2]].vertexIdx)
	return nil
}

func markDead(segs []*frontSegment, vi, vj int) {
	for _, s := range segs {
		if s.alive && ((s.vi == vi && s.vj == vj) || (s.vi == vj && s.vj == vi)) {
			s.alive = false
			return
		}
	}
}

// pointInTriangle reports whether any other active polygon vertex lies
// inside triangle (a, b, c), the classic ear-validity check ear clipping
// needs on top of the convexity and crossing tests.
func pointInTriangle(a, b, c numVec2, poly []polyVertex, active []bool, i, j, k int) bool {
	for m := range poly {
		if m == i || m == j || m == k || !active[m] {
			continue
		}
		p := poly[m].uv
		if sameSideTriangle(a, b, c, p) {
			return true
		}
	}
	return false
}

func sameSideTriangle(a, b, c, p numVec2) bool {
	d1 := cross2(sub2(b, a), sub2(p, a))
	d2 := cross2(sub2(c, b), sub2(p, b))
	d3 := cross2(sub2(a, c), sub2(p, c))
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
