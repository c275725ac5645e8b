// Package geom is the Geometry Interface component: the abstract surface/
// curve provider the tessellation kernel evaluates against, plus a handful
// of concrete providers (plane, cylinder, sphere, line, circle) good enough
// to exercise the kernel without a real CAD geometry library, the way the
// teacher exercises marching-cubes-family algorithms against a Solid
// function instead of real CAD data.
package geom

import "github.com/polyforge/tessellate/numerical"

// Range is an inclusive parameter interval.
type Range struct{ Lo, Hi float64 }

// Curve is a 1-parameter geometric carrier for an Edge.
type Curve interface {
	// Evaluate returns the world-space point and unit tangent at t.
	Evaluate(t float64) (pt numerical.Vec3, tangent numerical.Vec3)
	// InverseEvaluate returns the parameter nearest to pt.
	InverseEvaluate(pt numerical.Vec3) float64
	ParamRange() Range
	// Tolerance is the geometric modeling tolerance carried by this curve.
	Tolerance() float64
	// Periodic reports whether ParamRange spans this curve's full natural
	// period (e.g. a full circle), the param_range "periodic" flag of §4.A.
	Periodic() bool
}

// Surface is a 2-parameter geometric carrier for a Face.
type Surface interface {
	// Evaluate returns the world-space point and unit normal at (u, v).
	Evaluate(u, v float64) (pt numerical.Vec3, normal numerical.Vec3)
	// InverseEvaluate returns the (u, v) nearest to pt.
	InverseEvaluate(pt numerical.Vec3) (u, v float64)
	ParamRangeU() Range
	ParamRangeV() Range
	Tolerance() float64
	// Curvature returns the two principal curvatures at (u, v); used by the
	// curvature-driven discretizer/refinement predicates.
	Curvature(u, v float64) (k1, k2 float64)
	// PeriodicU and PeriodicV report whether the u or v parameter wraps
	// around (e.g. a sphere or cylinder's longitude), the surface half of
	// §4.A's param_range "periodic" flag.
	PeriodicU() bool
	PeriodicV() bool
}

// PCurve is a Curve expressed in a Face's (u, v) domain instead of world
// space; Edge-to-Face parameter correspondence for the Loop Filler.
type PCurve interface {
	EvaluateUV(t float64) (u, v float64)
	ParamRange() Range
}
