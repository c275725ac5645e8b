package geom

import "math"

import "github.com/polyforge/tessellate/numerical"

// Sphere is a Surface parameterized by longitude u in [0, 2pi) and latitude
// v in [-pi/2, pi/2], the standard UV-sphere parameterization used to build
// the S2 test scenario's curved Body.
type Sphere struct {
	Center numerical.Vec3
	Radius float64
	URange Range
	VRange Range
	Tol    float64
}

func (s *Sphere) Evaluate(u, v float64) (numerical.Vec3, numerical.Vec3) {
	cosV := math.Cos(v)
	dir := numerical.Vec3{cosV * math.Cos(u), cosV * math.Sin(u), math.Sin(v)}
	pt := s.Center.Add(dir.Scale(s.Radius))
	return pt, dir
}

func (s *Sphere) InverseEvaluate(pt numerical.Vec3) (float64, float64) {
	d := pt.Sub(s.Center).Normalize()
	u := math.Atan2(d[1], d[0])
	v := math.Asin(clamp(d[2], -1, 1))
	return u, v
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func (s *Sphere) ParamRangeU() Range { return s.URange }
func (s *Sphere) ParamRangeV() Range { return s.VRange }
func (s *Sphere) Tolerance() float64 {
	if s.Tol == 0 {
		return DefaultTolerance
	}
	return s.Tol
}

// Curvature is 1/R in both principal directions everywhere on a sphere.
func (s *Sphere) Curvature(u, v float64) (float64, float64) {
	if s.Radius == 0 {
		return 0, 0
	}
	return 1 / s.Radius, 1 / s.Radius
}

// PeriodicU is true: longitude always wraps around a sphere regardless of
// how much of it URange actually spans.
func (s *Sphere) PeriodicU() bool { return true }

// PeriodicV is false: latitude runs pole to pole, never wrapping.
func (s *Sphere) PeriodicV() bool { return false }
