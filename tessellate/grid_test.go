package tessellate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyforge/tessellate/geom"
	"github.com/polyforge/tessellate/numerical"
)

func TestTessellateGeomCurveGrid(t *testing.T) {
	c := &geom.Linear{From: numerical.Vec3{0, 0, 0}, To: numerical.Vec3{4, 0, 0}}
	g, err := TessellateGeom(geom.Curve(c), DefaultParams(0, 0, 15), [2]int{5, 0})
	require.NoError(t, err)
	assert.Equal(t, 5, g.NU)
	assert.Equal(t, 0, g.NV)
	require.Len(t, g.XYZ, 5)
	assert.InDelta(t, 0, g.XYZ[0][0], 1e-9)
	assert.InDelta(t, 4, g.XYZ[4][0], 1e-9)

	reversed, err := TessellateGeom(geom.Curve(c), DefaultParams(0, 0, 15), [2]int{-5, 0})
	require.NoError(t, err)
	assert.InDelta(t, 4, reversed.XYZ[0][0], 1e-9)
	assert.InDelta(t, 0, reversed.XYZ[4][0], 1e-9)
}

func TestTessellateGeomSurfaceGrid(t *testing.T) {
	s := &geom.Plane{
		Origin: numerical.Vec3{},
		AxisU:  numerical.Vec3{1, 0, 0},
		AxisV:  numerical.Vec3{0, 1, 0},
		Normal: numerical.Vec3{0, 0, 1},
		URange: geom.Range{0, 1},
		VRange: geom.Range{0, 1},
	}
	g, err := TessellateGeom(geom.Surface(s), DefaultParams(0, 0, 15), [2]int{3, 4})
	require.NoError(t, err)
	assert.Equal(t, 3, g.NU)
	assert.Equal(t, 4, g.NV)
	require.Len(t, g.XYZ, 12)
	assert.InDelta(t, 0, g.XYZ[0][0], 1e-9)
	assert.InDelta(t, 1, g.XYZ[2*4+3][0], 1e-9)
	assert.InDelta(t, 1, g.XYZ[2*4+3][1], 1e-9)
}

func TestTessellateGeomErrors(t *testing.T) {
	_, err := TessellateGeom(nil, DefaultParams(0, 0, 15), [2]int{5, 0})
	require.Error(t, err)

	_, err = TessellateGeom("not-geometry", DefaultParams(0, 0, 15), [2]int{5, 0})
	require.Error(t, err)

	c := &geom.Linear{From: numerical.Vec3{0, 0, 0}, To: numerical.Vec3{1, 0, 0}}
	_, err = TessellateGeom(geom.Curve(c), DefaultParams(0, 0, 15), [2]int{1, 0})
	require.Error(t, err)
}

func TestTessellateGeomSphereGrid(t *testing.T) {
	s := &geom.Sphere{Center: numerical.Vec3{}, Radius: 2, URange: geom.Range{0, 2 * math.Pi}, VRange: geom.Range{-math.Pi / 2, math.Pi / 2}}
	g, err := TessellateGeom(geom.Surface(s), DefaultParams(0, 0, 15), [2]int{8, 5})
	require.NoError(t, err)
	for _, p := range g.XYZ {
		r := math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
		assert.InDelta(t, 2.0, r, 1e-9)
	}
}
