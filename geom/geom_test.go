package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/numerical"
)

func TestPlaneEvaluateInverseRoundTrip(t *testing.T) {
	p := &Plane{
		Origin: numerical.Vec3{1, 2, 3},
		AxisU:  numerical.Vec3{1, 0, 0},
		AxisV:  numerical.Vec3{0, 1, 0},
		Normal: numerical.Vec3{0, 0, 1},
		URange: Range{0, 5},
		VRange: Range{0, 5},
	}
	pt, n := p.Evaluate(2, 3)
	assert.Equal(t, numerical.Vec3{3, 5, 3}, pt)
	assert.Equal(t, numerical.Vec3{0, 0, 1}, n)

	u, v := p.InverseEvaluate(pt)
	assert.InDelta(t, 2, u, 1e-9)
	assert.InDelta(t, 3, v, 1e-9)
	assert.Equal(t, DefaultTolerance, p.Tolerance())
}

func TestLinearEvaluateEndpoints(t *testing.T) {
	l := &Linear{From: numerical.Vec3{0, 0, 0}, To: numerical.Vec3{10, 0, 0}}
	p0, tan := l.Evaluate(0)
	require.Equal(t, numerical.Vec3{0, 0, 0}, p0)
	assert.Equal(t, numerical.Vec3{1, 0, 0}, tan)
	p1, _ := l.Evaluate(1)
	assert.Equal(t, numerical.Vec3{10, 0, 0}, p1)

	assert.InDelta(t, 0.5, l.InverseEvaluate(numerical.Vec3{5, 0, 0}), 1e-9)
}

func TestSphereEvaluateInverseRoundTrip(t *testing.T) {
	s := &Sphere{Radius: 2, URange: Range{0, 2 * math.Pi}, VRange: Range{-math.Pi / 2, math.Pi / 2}}
	u0, v0 := 0.7, 0.3
	pt, normal := s.Evaluate(u0, v0)
	assert.InDelta(t, 2.0, pt.Norm(), 1e-9)
	assert.InDelta(t, 1.0, normal.Norm(), 1e-9)

	u1, v1 := s.InverseEvaluate(pt)
	assert.InDelta(t, u0, u1, 1e-9)
	assert.InDelta(t, v0, v1, 1e-9)

	k1, k2 := s.Curvature(0, 0)
	assert.InDelta(t, 0.5, k1, 1e-9)
	assert.InDelta(t, 0.5, k2, 1e-9)
}

func TestCylinderEvaluateOnAxis(t *testing.T) {
	c := &Cylinder{
		Axis:   numerical.Vec3{0, 0, 1},
		RefDir: numerical.Vec3{1, 0, 0},
		Radius: 3,
		URange: Range{0, 2 * math.Pi},
		VRange: Range{0, 10},
	}
	pt, _ := c.Evaluate(0, 5)
	assert.InDelta(t, 3, pt[0], 1e-9)
	assert.InDelta(t, 0, pt[1], 1e-9)
	assert.InDelta(t, 5, pt[2], 1e-9)

	u, v := c.InverseEvaluate(pt)
	assert.InDelta(t, 0, u, 1e-9)
	assert.InDelta(t, 5, v, 1e-9)

	k1, k2 := c.Curvature(0, 0)
	assert.InDelta(t, 1.0/3.0, k1, 1e-9)
	assert.Equal(t, 0.0, k2)
}

func TestCircularEvaluate(t *testing.T) {
	ci := &Circular{
		AxisU:  numerical.Vec3{1, 0, 0},
		AxisV:  numerical.Vec3{0, 1, 0},
		Radius: 1,
		TRange: Range{0, 2 * math.Pi},
	}
	pt, _ := ci.Evaluate(math.Pi / 2)
	assert.InDelta(t, 0, pt[0], 1e-9)
	assert.InDelta(t, 1, pt[1], 1e-9)

	tt := ci.InverseEvaluate(pt)
	assert.InDelta(t, math.Pi/2, tt, 1e-9)

	assert.True(t, ci.Periodic(), "a full-circle TRange should report periodic")

	arc := &Circular{TRange: Range{0, math.Pi / 2}}
	assert.False(t, arc.Periodic(), "a quarter-circle arc should not report periodic")
}

func TestPeriodicFlags(t *testing.T) {
	var l Linear
	assert.False(t, l.Periodic())

	var p Plane
	assert.False(t, p.PeriodicU())
	assert.False(t, p.PeriodicV())

	var s Sphere
	assert.True(t, s.PeriodicU())
	assert.False(t, s.PeriodicV())

	var c Cylinder
	assert.True(t, c.PeriodicU())
	assert.False(t, c.PeriodicV())
}
