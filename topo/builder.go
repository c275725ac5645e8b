package topo

import (
	"math"

	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/numerical"
)

func numVec(p [3]float64) numerical.Vec3 { return numerical.Vec3{p[0], p[1], p[2]} }

// builder hands out sequential ids as it wires up a Body, the way the
// teacher's decimator and subdivider track running indices while mutating a
// Mesh instead of recomputing them.
type builder struct {
	nextID int
}

func (b *builder) id() int {
	b.nextID++
	return b.nextID
}

func (b *builder) node(pt [3]float64) *Node {
	return &Node{id: b.id(), Point: pt}
}

func (b *builder) edge(curve geom.Curve, start, end *Node, closed bool) *Edge {
	return &Edge{id: b.id(), Curve: curve, Start: start, End: end, Closed: closed}
}

func (b *builder) loop(face *Face, outer bool, edges []CoEdge) *Loop {
	return &Loop{id: b.id(), Face: face, Edges: edges, IsOuter: outer}
}

// Builder is the exported counterpart of builder: the same sequential-id
// bookkeeping UnitBox/UVSphere use internally, available to drivers and
// tests that need to assemble a custom B-rep fixture (a Face with holes, a
// figure-eight loop, a four-sided patch candidate) without a real CAD
// geometry kernel behind it.
type Builder struct{ b builder }

// NewBuilder returns a Builder with a fresh id sequence.
func NewBuilder() *Builder { return &Builder{} }

func (bd *Builder) NewNode(pt [3]float64) *Node { return bd.b.node(pt) }

func (bd *Builder) NewEdge(curve geom.Curve, start, end *Node, closed bool) *Edge {
	return bd.b.edge(curve, start, end, closed)
}

func (bd *Builder) NewLoop(face *Face, outer bool, edges []CoEdge) *Loop {
	return bd.b.loop(face, outer, edges)
}

func (bd *Builder) NewFace(shell *Shell, surf geom.Surface, orientation int) *Face {
	return &Face{id: bd.b.id(), Shell: shell, Surface: surf, Orientation: orientation}
}

func (bd *Builder) NewShell(body *Body) *Shell {
	return &Shell{id: bd.b.id(), Body: body}
}

func (bd *Builder) NewBody() *Body {
	return &Body{id: bd.b.id()}
}

// NewWireBody returns a Body with no Shells, carrying only edges: the
// WireBody case tessellate_body reduces to a 1-D tessellation.
func (bd *Builder) NewWireBody(edges []*Edge) *Body {
	return &Body{id: bd.b.id(), WireEdges: edges}
}

// gridPCurve maps a Face-relative linear parameter to a straight segment in
// the Face's (u, v) domain; enough to drive the Loop Filler over the
// axis-aligned box and UV-sphere test fixtures without a real PCurve kernel.
type gridPCurve struct {
	u0, v0, u1, v1 float64
}

func (p *gridPCurve) EvaluateUV(t float64) (float64, float64) {
	return p.u0 + (p.u1-p.u0)*t, p.v0 + (p.v1-p.v0)*t
}
func (p *gridPCurve) ParamRange() geom.Range { return geom.Range{0, 1} }

// WireBody wraps edges (already built, e.g. via Builder) as a Body with no
// Shells: tessellate_body reduces a WireBody to a 1-D tessellation only.
func WireBody(edges []*Edge) *Body {
	bd := &builder{}
	return &Body{id: bd.id(), WireEdges: edges}
}

// UnitBox builds a 2x2x2 cube centered at the origin as a Body with six
// planar Faces, each bounded by a single 4-edge outer Loop, no inner loops.
// It exists purely to exercise the kernel end to end (scenario S1) without a
// real CAD geometry provider.
func UnitBox() *Body {
	bd := &builder{}
	body := &Body{id: bd.id()}
	shell := &Shell{id: bd.id(), Body: body}
	body.Shells = []*Shell{shell}

	corners := [8][3]float64{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	nodes := make([]*Node, 8)
	for i, c := range corners {
		nodes[i] = bd.node(c)
	}

	type faceDef struct {
		corners [4]int
		normal  [3]float64
		axisU   [3]float64
		axisV   [3]float64
	}
	faceDefs := []faceDef{
		{[4]int{0, 1, 2, 3}, [3]float64{0, 0, -1}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}},
		{[4]int{4, 5, 6, 7}, [3]float64{0, 0, 1}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}},
		{[4]int{0, 1, 5, 4}, [3]float64{0, -1, 0}, [3]float64{1, 0, 0}, [3]float64{0, 0, 1}},
		{[4]int{3, 2, 6, 7}, [3]float64{0, 1, 0}, [3]float64{1, 0, 0}, [3]float64{0, 0, 1}},
		{[4]int{0, 3, 7, 4}, [3]float64{-1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1}},
		{[4]int{1, 2, 6, 5}, [3]float64{1, 0, 0}, [3]float64{0, 1, 0}, [3]float64{0, 0, 1}},
	}

	edgeCache := map[[2]int]*Edge{}
	getEdge := func(a, b int) (*Edge, bool) {
		key := [2]int{a, b}
		revKey := [2]int{b, a}
		if e, ok := edgeCache[key]; ok {
			return e, false
		}
		if e, ok := edgeCache[revKey]; ok {
			return e, true
		}
		na, nb := nodes[a], nodes[b]
		curve := &geom.Linear{From: numVec(na.Point), To: numVec(nb.Point)}
		e := bd.edge(curve, na, nb, false)
		edgeCache[key] = e
		return e, false
	}

	for _, fd := range faceDefs {
		surf := &geom.Plane{
			Origin: numVec(corners[fd.corners[0]]),
			AxisU:  numVec(fd.axisU),
			AxisV:  numVec(fd.axisV),
			Normal: numVec(fd.normal),
			URange: geom.Range{0, 2},
			VRange: geom.Range{0, 2},
		}
		face := &Face{id: bd.id(), Shell: shell, Surface: surf, Orientation: 1}
		var coEdges []CoEdge
		uvs := [4][2]float64{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
		for i := 0; i < 4; i++ {
			a, b := fd.corners[i], fd.corners[(i+1)%4]
			e, rev := getEdge(a, b)
			pu0, pv0 := uvs[i][0], uvs[i][1]
			pu1, pv1 := uvs[(i+1)%4][0], uvs[(i+1)%4][1]
			coEdges = append(coEdges, CoEdge{Edge: e, Reversed: rev, PCurve: &gridPCurve{pu0, pv0, pu1, pv1}})
		}
		face.Outer = bd.loop(face, true, coEdges)
		shell.Faces = append(shell.Faces, face)
	}
	return body
}

// UVSphere builds a single-Face Body whose Surface is a geom.Sphere and
// whose outer Loop is a degenerate quad collapsing to the poles, used for
// scenario S2 (curved-surface discretization and refinement).
func UVSphere(radius float64) *Body {
	bd := &builder{}
	body := &Body{id: bd.id()}
	shell := &Shell{id: bd.id(), Body: body}
	body.Shells = []*Shell{shell}

	surf := &geom.Sphere{
		Center: numerical.Vec3{},
		Radius: radius,
		URange: geom.Range{0, 2 * math.Pi},
		VRange: geom.Range{-math.Pi / 2, math.Pi / 2},
	}

	seamPt := func(v float64) [3]float64 {
		pt, _ := surf.Evaluate(0, v)
		return [3]float64(pt)
	}
	south := bd.node(seamPt(-math.Pi / 2))
	north := bd.node(seamPt(math.Pi / 2))

	seamCurve := &geom.Circular{
		Center: numerical.Vec3{},
		AxisU:  numerical.Vec3{1, 0, 0},
		AxisV:  numerical.Vec3{0, 0, 1},
		Radius: radius,
		TRange: geom.Range{-math.Pi / 2, math.Pi / 2},
	}
	seamEdge := bd.edge(seamCurve, south, north, false)

	face := &Face{id: bd.id(), Shell: shell, Surface: surf, Orientation: 1}
	coEdges := []CoEdge{
		{Edge: seamEdge, Reversed: false, PCurve: &gridPCurve{0, -math.Pi / 2, 0, math.Pi / 2}},
		{Edge: seamEdge, Reversed: true, PCurve: &gridPCurve{2 * math.Pi, math.Pi / 2, 2 * math.Pi, -math.Pi / 2}},
	}
	face.Outer = bd.loop(face, true, coEdges)
	shell.Faces = []*Face{face}
	return body
}
