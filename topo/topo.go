// Package topo is the Topology Accessor component: the B-rep adjacency
// graph (Model -> Body -> Shell -> Face -> Loop -> Edge -> Node) the core
// walks to drive tessellation. It is pure data plus adjacency queries, no
// algorithm, the way model2d.Solid/model3d.Solid are pure predicates the
// teacher's algorithms consume rather than active participants themselves.
package topo

import "github.com/polyforge/tessellate/geom"

// Node is a 0-dimensional topology entity: a vertex shared by the Edges
// that meet there.
type Node struct {
	id    int
	Point [3]float64
}

func (n *Node) ID() int { return n.id }

// Edge is a 1-dimensional topology entity carrying a geom.Curve and the two
// Nodes bounding it (equal for a closed Edge, e.g. a full circle).
type Edge struct {
	id      int
	Curve   geom.Curve
	Start   *Node
	End     *Node
	Closed  bool
}

func (e *Edge) ID() int { return e.id }

// CoEdge is an oriented use of an Edge within a Loop.
type CoEdge struct {
	Edge     *Edge
	Reversed bool
	PCurve   geom.PCurve
}

// Loop is an ordered, closed chain of oriented Edge uses bounding a region
// of a Face.
type Loop struct {
	id     int
	Face   *Face
	Edges  []CoEdge
	IsOuter bool
}

func (l *Loop) ID() int { return l.id }

// EdgeCount returns the number of co-edges in the loop.
func (l *Loop) EdgeCount() int { return len(l.Edges) }

// EdgeAt returns the Edge, its reversal sense, and its PCurve for position i.
func (l *Loop) EdgeAt(i int) (*Edge, bool, geom.PCurve) {
	ce := l.Edges[i]
	return ce.Edge, ce.Reversed, ce.PCurve
}

// Face is a 2-dimensional topology entity: a geom.Surface trimmed by an
// outer Loop and zero or more inner (hole) Loops.
type Face struct {
	id        int
	Shell     *Shell
	Surface   geom.Surface
	Outer     *Loop
	Inner     []*Loop
	Orientation int // +1 if Surface normal agrees with Shell outward sense, -1 otherwise
}

func (f *Face) ID() int { return f.id }

// Loops returns the outer loop followed by all inner loops.
func (f *Face) Loops() []*Loop {
	out := make([]*Loop, 0, 1+len(f.Inner))
	out = append(out, f.Outer)
	out = append(out, f.Inner...)
	return out
}

// Shell is a connected set of Faces bounding a region of space (or, for an
// open shell, a sheet of Faces).
type Shell struct {
	id    int
	Body  *Body
	Faces []*Face
}

func (s *Shell) ID() int { return s.id }

// Body is the top-level solid/sheet entity a Tessellation is built from.
// A Body with a non-empty WireEdges and no Shells is a WireBody: a bare
// collection of Edges with no Face, which tessellate_body reduces to a
// 1-D tessellation only (no loop filling, no refinement, no quad patching).
type Body struct {
	id         int
	Shells     []*Shell
	WireEdges  []*Edge
}

func (b *Body) ID() int { return b.id }

// IsWire reports whether b is a WireBody: Edges with no bounding Faces.
func (b *Body) IsWire() bool { return len(b.Shells) == 0 && len(b.WireEdges) > 0 }

// Model is a named collection of Bodies, the root container a driver loads.
type Model struct {
	Bodies []*Body
}

// BodyTopos returns every Face, Loop, and Edge reachable from b, each
// exactly once, in a stable (Shell, Face, Loop, Edge) traversal order.
func BodyTopos(b *Body) (faces []*Face, loops []*Loop, edges []*Edge) {
	seenEdge := map[int]bool{}
	if b.IsWire() {
		for _, e := range b.WireEdges {
			if !seenEdge[e.id] {
				seenEdge[e.id] = true
				edges = append(edges, e)
			}
		}
		return
	}
	for _, sh := range b.Shells {
		for _, f := range sh.Faces {
			faces = append(faces, f)
			for _, lp := range f.Loops() {
				loops = append(loops, lp)
				for i := 0; i < lp.EdgeCount(); i++ {
					e, _, _ := lp.EdgeAt(i)
					if !seenEdge[e.id] {
						seenEdge[e.id] = true
						edges = append(edges, e)
					}
				}
			}
		}
	}
	return
}

// IndexInBody returns the position of f within the stable traversal order
// BodyTopos would produce for its owning Body, or -1 if f is not reachable.
func IndexInBody(f *Face) int {
	b := f.Shell.Body
	faces, _, _ := BodyTopos(b)
	for i, g := range faces {
		if g == f {
			return i
		}
	}
	return -1
}
