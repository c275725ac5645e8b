package tessellate

import (
	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/geom"
)

// GridTessellation is the result of tessellate_geom: a regular grid over a
// raw geom.Curve or geom.Surface, with no trimming and no topology behind
// it. For a Curve result NV is 0 and XYZ has NU entries; for a Surface
// result XYZ has NU*NV entries, row-major in u then v.
type GridTessellation struct {
	NU, NV int
	XYZ    [][3]float64
}

// TessellateGeom evaluates geom (a geom.Curve or a geom.Surface) on a
// regular open-form grid, independent of any Body or trimming Loop. sizes
// gives the grid dimensions: sizes[0] (and sizes[1] for a Surface) is the
// sample count along that axis; a negative size reverses that axis's
// traversal direction. params carries MaxSide/Chord/AngleDeg for API
// symmetry with tessellate_body but is otherwise unused here — an open-form
// grid has no size/deviation/angle criteria to satisfy, only a fixed point
// count.
func TessellateGeom(g interface{}, params Params, sizes [2]int) (*GridTessellation, error) {
	switch v := g.(type) {
	case geom.Curve:
		return tessellateCurveGrid(v, sizes[0])
	case geom.Surface:
		return tessellateSurfaceGrid(v, sizes[0], sizes[1])
	case nil:
		return nil, errkind.New(errkind.NullObject, "tessellate_geom", "nil geometry")
	default:
		return nil, errkind.New(errkind.TopologyMismatch, "tessellate_geom", "geometry is neither a Curve nor a Surface")
	}
}

func tessellateCurveGrid(c geom.Curve, size int) (*GridTessellation, error) {
	n := size
	reverse := n < 0
	if reverse {
		n = -n
	}
	if n < 2 {
		return nil, errkind.New(errkind.ParameterOutOfRange, "tessellate_geom", "curve grid size must have |size| >= 2")
	}
	rng := c.ParamRange()
	pts := make([][3]float64, n)
	for i := 0; i < n; i++ {
		frac := float64(i) / float64(n-1)
		if reverse {
			frac = 1 - frac
		}
		t := rng.Lo + frac*(rng.Hi-rng.Lo)
		pt, _ := c.Evaluate(t)
		pts[i] = [3]float64(pt)
	}
	return &GridTessellation{NU: n, XYZ: pts}, nil
}

func tessellateSurfaceGrid(s geom.Surface, sizeU, sizeV int) (*GridTessellation, error) {
	nu, nv := sizeU, sizeV
	revU, revV := nu < 0, nv < 0
	if revU {
		nu = -nu
	}
	if revV {
		nv = -nv
	}
	if nu < 2 || nv < 2 {
		return nil, errkind.New(errkind.ParameterOutOfRange, "tessellate_geom", "surface grid sizes must have |size| >= 2 on each axis")
	}
	rngU, rngV := s.ParamRangeU(), s.ParamRangeV()
	pts := make([][3]float64, nu*nv)
	for i := 0; i < nu; i++ {
		fu := float64(i) / float64(nu-1)
		if revU {
			fu = 1 - fu
		}
		u := rngU.Lo + fu*(rngU.Hi-rngU.Lo)
		for j := 0; j < nv; j++ {
			fv := float64(j) / float64(nv-1)
			if revV {
				fv = 1 - fv
			}
			v := rngV.Lo + fv*(rngV.Hi-rngV.Lo)
			pt, _ := s.Evaluate(u, v)
			pts[i*nv+j] = [3]float64(pt)
		}
	}
	return &GridTessellation{NU: nu, NV: nv, XYZ: pts}, nil
}
