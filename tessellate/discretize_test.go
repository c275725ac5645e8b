package tessellate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/numerical"
	"github.com/polyforge/tessellate/topo"
)

// linePCurve is a minimal geom.PCurve fake: a straight segment in a Face's
// UV plane, enough to exercise discretizeEdge's face-normal predicate
// against a hand-built Face without a real CAD PCurve kernel.
type linePCurve struct{ u0, v0, u1, v1 float64 }

func (l *linePCurve) EvaluateUV(t float64) (float64, float64) {
	return l.u0 + (l.u1-l.u0)*t, l.v0 + (l.v1-l.v0)*t
}
func (l *linePCurve) ParamRange() geom.Range { return geom.Range{Lo: 0, Hi: 1} }

func straightEdge(length float64) *topo.Edge {
	return &topo.Edge{
		Curve: &geom.Linear{From: numerical.Vec3{0, 0, 0}, To: numerical.Vec3{length, 0, 0}},
		Start: &topo.Node{Point: [3]float64{0, 0, 0}},
		End:   &topo.Node{Point: [3]float64{length, 0, 0}},
	}
}

func TestDiscretizeEdgeRespectsMaxSide(t *testing.T) {
	e := straightEdge(2)
	p := DefaultParams(0.25, 0.001, 15)

	et, err := discretizeEdge(e, nil, p, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(et.Params), 2)

	assert.Equal(t, 0.0, et.Params[0])
	assert.Equal(t, 1.0, et.Params[len(et.Params)-1])

	for i := 0; i+1 < len(et.Points); i++ {
		a, b := et.Points[i], et.Points[i+1]
		d := (a[0]-b[0])*(a[0]-b[0]) + (a[1]-b[1])*(a[1]-b[1]) + (a[2]-b[2])*(a[2]-b[2])
		assert.LessOrEqual(t, d, p.MaxSide*p.MaxSide+1e-9,
			"segment %d exceeds max_side", i)
	}
}

func TestDiscretizeEdgeCurvedSagRefines(t *testing.T) {
	e := &topo.Edge{
		Curve: &geom.Circular{AxisU: numerical.Vec3{1, 0, 0}, AxisV: numerical.Vec3{0, 1, 0}, Radius: 1, TRange: geom.Range{Lo: 0, Hi: 3.14159265}},
		Start: &topo.Node{Point: [3]float64{1, 0, 0}},
		End:   &topo.Node{Point: [3]float64{-1, 0, 0}},
	}
	p := DefaultParams(10, 0.01, 10)

	et, err := discretizeEdge(e, nil, p, nil)
	require.NoError(t, err)
	// A half circle bisected by chord/angle criteria alone needs several
	// samples: two endpoints is never enough to stay under a tight sag.
	assert.Greater(t, len(et.Params), 2)
}

func TestDiscretizeEdgeDegenerateRangeErrors(t *testing.T) {
	e := &topo.Edge{Curve: &geom.Circular{TRange: geom.Range{Lo: 1, Hi: 1}}}
	p := DefaultParams(1, 0.1, 10)
	_, err := discretizeEdge(e, nil, p, nil)
	require.Error(t, err)
}

func TestDiscretizeEdgeNilCurveErrors(t *testing.T) {
	e := &topo.Edge{}
	p := DefaultParams(1, 0.1, 10)
	_, err := discretizeEdge(e, nil, p, nil)
	require.Error(t, err)
}

// TestDiscretizeEdgeFaceNormalPredicateSplitsSurfaceGenerator builds a
// straight Edge that runs exactly along a cylinder's axis direction (a
// surface generator line): the Curve itself has zero sag and a constant
// tangent, so the chord/angle/max_side predicates alone never split it. Only
// the face-normal predicate, probing perpendicular into the Face's curved
// hoop direction, should force it to refine.
func TestDiscretizeEdgeFaceNormalPredicateSplitsSurfaceGenerator(t *testing.T) {
	cyl := &geom.Cylinder{
		Axis:   numerical.Vec3{0, 0, 1},
		RefDir: numerical.Vec3{1, 0, 0},
		Radius: 1,
		URange: geom.Range{0, 2 * math.Pi},
		VRange: geom.Range{0, 5},
	}

	bd := topo.NewBuilder()
	n0 := bd.NewNode([3]float64{1, 0, 0})
	n1 := bd.NewNode([3]float64{1, 0, 5})
	e := bd.NewEdge(&geom.Linear{From: numerical.Vec3{1, 0, 0}, To: numerical.Vec3{1, 0, 5}}, n0, n1, false)

	body := bd.NewBody()
	shell := bd.NewShell(body)
	body.Shells = []*topo.Shell{shell}
	face := bd.NewFace(shell, cyl, 1)
	face.Outer = bd.NewLoop(face, true, []topo.CoEdge{
		{Edge: e, Reversed: false, PCurve: &linePCurve{0, 0, 0, 5}},
	})
	shell.Faces = []*topo.Face{face}

	// Generous curve-only tolerances: max_side, chord, and angle_deg would
	// all pass a perfectly straight generator line with just the two
	// endpoints. Only the face-normal predicate can force a split here.
	p := DefaultParams(10, 10, 15)

	et, err := discretizeEdge(e, []*topo.Face{face}, p, nil)
	require.NoError(t, err)
	assert.Greater(t, len(et.Params), 2,
		"a straight generator edge on a curved surface should still be split by the face-normal predicate")

	etNoFace, err := discretizeEdge(e, nil, p, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, len(etNoFace.Params),
		"without adjacent faces the face-normal predicate never triggers, so the straight edge needs no extra samples")
}
