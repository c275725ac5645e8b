package tessellate

import (
	"github.com/dhconnelly/rtreego"
)

// frontSegment is one directed edge of the advancing front: UV-space
// boundary still waiting to be covered by triangles. vi/vj are vertex
// indices into the FaceTessellation being built.
type frontSegment struct {
	vi, vj int
	a, b   numVec2
	alive  bool
}

func (s *frontSegment) length() float64 {
	dx, dy := s.b[0]-s.a[0], s.b[1]-s.a[1]
	return dx*dx + dy*dy // squared length; fine for ordering comparisons
}

// segRect implements rtreego.Spatial so a set of frontSegments can be
// indexed by their UV bounding boxes, the way the Loop Filler's
// crossing-index accelerates the "does this candidate diagonal cross any
// live front/boundary segment" test instead of scanning every segment.
type segRect struct {
	seg   *frontSegment
	rect  rtreego.Rect
}

func (r *segRect) Bounds() rtreego.Rect { return r.rect }

func makeSegRect(s *frontSegment) *segRect {
	minX, maxX := s.a[0], s.b[0]
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := s.a[1], s.b[1]
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	const eps = 1e-9
	rect, _ := rtreego.NewRect(
		rtreego.Point{minX - eps, minY - eps},
		[]float64{maxX - minX + 2*eps, maxY - minY + 2*eps},
	)
	return &segRect{seg: s, rect: rect}
}

// crossingIndex wraps an rtreego.Rtree over the live front segments so the
// shortest-segment-advance strategy can reject a candidate ear in roughly
// O(log n) instead of scanning the whole front, rebuilt lazily whenever the
// front has changed by more than a small fraction since the last build.
type crossingIndex struct {
	tree       *rtreego.Rtree
	builtAt    int // len(segments) alive count when last built
	entries    []*segRect
}

func newCrossingIndex(segs []*frontSegment) *crossingIndex {
	ci := &crossingIndex{tree: rtreego.NewTree(2, 25, 50)}
	ci.rebuild(segs)
	return ci
}

func (ci *crossingIndex) rebuild(segs []*frontSegment) {
	ci.tree = rtreego.NewTree(2, 25, 50)
	ci.entries = ci.entries[:0]
	alive := 0
	for _, s := range segs {
		if !s.alive {
			continue
		}
		alive++
		sr := makeSegRect(s)
		ci.entries = append(ci.entries, sr)
		ci.tree.Insert(sr)
	}
	ci.builtAt = alive
}

func (ci *crossingIndex) maybeRebuild(segs []*frontSegment) {
	alive := 0
	for _, s := range segs {
		if s.alive {
			alive++
		}
	}
	if ci.builtAt == 0 || alive == 0 {
		ci.rebuild(segs)
		return
	}
	diff := alive - ci.builtAt
	if diff < 0 {
		diff = -diff
	}
	if float64(diff) > 0.2*float64(ci.builtAt) {
		ci.rebuild(segs)
	}
}

// crosses reports whether the candidate segment (a, b) properly crosses any
// live front segment other than neighbors sharing an endpoint.
func (ci *crossingIndex) crosses(a, b numVec2, excludeVerts [2]int) bool {
	minX, maxX := a[0], b[0]
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a[1], b[1]
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	const eps = 1e-9
	queryRect, _ := rtreego.NewRect(
		rtreego.Point{minX - eps, minY - eps},
		[]float64{maxX - minX + 2*eps, maxY - minY + 2*eps},
	)
	hits := ci.tree.SearchIntersect(queryRect)
	for _, h := range hits {
		sr := h.(*segRect)
		s := sr.seg
		if !s.alive {
			continue
		}
		if s.vi == excludeVerts[0] || s.vi == excludeVerts[1] ||
			s.vj == excludeVerts[0] || s.vj == excludeVerts[1] {
			continue
		}
		if segmentsProperlyIntersect(a, b, s.a, s.b) {
			return true
		}
	}
	return false
}

func segmentsProperlyIntersect(p1, p2, p3, p4 numVec2) bool {
	d1 := cross2(sub2(p4, p3), sub2(p1, p3))
	d2 := cross2(sub2(p4, p3), sub2(p2, p3))
	d3 := cross2(sub2(p2, p1), sub2(p3, p1))
	d4 := cross2(sub2(p2, p1), sub2(p4, p1))
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	return false
}

func sub2(a, b numVec2) numVec2 { return numVec2{a[0] - b[0], a[1] - b[1]} }
func cross2(a, b numVec2) float64 { return a[0]*b[1] - a[1]*b[0] }
