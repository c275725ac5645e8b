package geom

import "github.com/polyforge/tessellate/numerical"

// DefaultTolerance is the modeling tolerance new providers use unless the
// caller supplies one, following the teacher's pattern of exporting a
// Default* constant for every tunable instead of hard-coding it inline.
const DefaultTolerance = 1e-6

// Plane is a finite rectangular planar Surface, parameterized directly by
// world-space offsets along two orthonormal in-plane axes.
type Plane struct {
	Origin   numerical.Vec3
	AxisU    numerical.Vec3
	AxisV    numerical.Vec3
	Normal   numerical.Vec3
	URange   Range
	VRange   Range
	Tol      float64
}

func (p *Plane) Evaluate(u, v float64) (numerical.Vec3, numerical.Vec3) {
	pt := p.Origin.Add(p.AxisU.Scale(u)).Add(p.AxisV.Scale(v))
	return pt, p.Normal
}

func (p *Plane) InverseEvaluate(pt numerical.Vec3) (float64, float64) {
	d := pt.Sub(p.Origin)
	return d.Dot(p.AxisU), d.Dot(p.AxisV)
}

func (p *Plane) ParamRangeU() Range { return p.URange }
func (p *Plane) ParamRangeV() Range { return p.VRange }
func (p *Plane) Tolerance() float64 {
	if p.Tol == 0 {
		return DefaultTolerance
	}
	return p.Tol
}

// Curvature is identically zero everywhere on a plane.
func (p *Plane) Curvature(u, v float64) (float64, float64) { return 0, 0 }

// A finite rectangular plane has no wraparound in either parameter.
func (p *Plane) PeriodicU() bool { return false }
func (p *Plane) PeriodicV() bool { return false }

// Linear is a straight-line Curve between two endpoints.
type Linear struct {
	From, To numerical.Vec3
	Tol      float64
}

func (l *Linear) Evaluate(t float64) (numerical.Vec3, numerical.Vec3) {
	dir := l.To.Sub(l.From)
	length := dir.Norm()
	pt := l.From.Add(dir.Scale(t))
	if length == 0 {
		return pt, numerical.Vec3{1, 0, 0}
	}
	return pt, dir.Scale(1 / length)
}

func (l *Linear) InverseEvaluate(pt numerical.Vec3) float64 {
	dir := l.To.Sub(l.From)
	length2 := dir.Dot(dir)
	if length2 == 0 {
		return 0
	}
	return pt.Sub(l.From).Dot(dir) / length2
}

func (l *Linear) ParamRange() Range { return Range{0, 1} }
func (l *Linear) Tolerance() float64 {
	if l.Tol == 0 {
		return DefaultTolerance
	}
	return l.Tol
}

// Periodic is always false for a straight line.
func (l *Linear) Periodic() bool { return false }
