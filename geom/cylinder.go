package geom

import "math"

import "github.com/polyforge/tessellate/numerical"

// Cylinder is a circular cylindrical Surface: u is the angle around the
// axis (radians), v is the height along the axis.
type Cylinder struct {
	Origin numerical.Vec3
	Axis   numerical.Vec3 // unit
	RefDir numerical.Vec3 // unit, perpendicular to Axis; u=0 direction
	Radius float64
	URange Range
	VRange Range
	Tol    float64
}

func (c *Cylinder) frame() (x, y numerical.Vec3) {
	x = c.RefDir
	y = c.Axis.Cross(x)
	return
}

func (c *Cylinder) Evaluate(u, v float64) (numerical.Vec3, numerical.Vec3) {
	x, y := c.frame()
	radial := x.Scale(math.Cos(u)).Add(y.Scale(math.Sin(u)))
	pt := c.Origin.Add(radial.Scale(c.Radius)).Add(c.Axis.Scale(v))
	return pt, radial.Normalize()
}

func (c *Cylinder) InverseEvaluate(pt numerical.Vec3) (float64, float64) {
	x, y := c.frame()
	d := pt.Sub(c.Origin)
	v := d.Dot(c.Axis)
	radial := d.Sub(c.Axis.Scale(v))
	u := math.Atan2(radial.Dot(y), radial.Dot(x))
	return u, v
}

func (c *Cylinder) ParamRangeU() Range { return c.URange }
func (c *Cylinder) ParamRangeV() Range { return c.VRange }
func (c *Cylinder) Tolerance() float64 {
	if c.Tol == 0 {
		return DefaultTolerance
	}
	return c.Tol
}

// Curvature returns the principal curvatures of a cylinder: 1/R around the
// hoop direction, 0 along the axis.
func (c *Cylinder) Curvature(u, v float64) (float64, float64) {
	if c.Radius == 0 {
		return 0, 0
	}
	return 1 / c.Radius, 0
}

// PeriodicU is true: the angle around the axis always wraps.
func (c *Cylinder) PeriodicU() bool { return true }

// PeriodicV is false: height along the axis never wraps.
func (c *Cylinder) PeriodicV() bool { return false }

// Circular is a planar circular-arc Curve.
type Circular struct {
	Center numerical.Vec3
	AxisU  numerical.Vec3 // unit, t=0 direction
	AxisV  numerical.Vec3 // unit, perpendicular
	Radius float64
	TRange Range // parameter is the arc angle in radians
	Tol    float64
}

func (ci *Circular) Evaluate(t float64) (numerical.Vec3, numerical.Vec3) {
	radial := ci.AxisU.Scale(math.Cos(t)).Add(ci.AxisV.Scale(math.Sin(t)))
	pt := ci.Center.Add(radial.Scale(ci.Radius))
	tangent := ci.AxisU.Scale(-math.Sin(t)).Add(ci.AxisV.Scale(math.Cos(t))).Normalize()
	return pt, tangent
}

func (ci *Circular) InverseEvaluate(pt numerical.Vec3) float64 {
	d := pt.Sub(ci.Center)
	return math.Atan2(d.Dot(ci.AxisV), d.Dot(ci.AxisU))
}

func (ci *Circular) ParamRange() Range { return ci.TRange }
func (ci *Circular) Tolerance() float64 {
	if ci.Tol == 0 {
		return DefaultTolerance
	}
	return ci.Tol
}

// Periodic is true only when TRange spans the full circle; a partial arc
// (the common case, e.g. a quarter-circle fillet) is not periodic.
func (ci *Circular) Periodic() bool {
	span := ci.TRange.Hi - ci.TRange.Lo
	return span >= 2*math.Pi-1e-9
}
