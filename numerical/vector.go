// Package numerical provides the small linear-algebra and sparse-solver
// machinery the quad patcher leans on for interior smoothing, adapted from
// the teacher's own numerical package (used there to solve Floater97 mesh
// parameterizations).
package numerical

import "math"

// Vec2 is a plain 2-D vector, used for UV-space quantities.
type Vec2 [2]float64

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v[0] + o[0], v[1] + o[1]} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v[0] - o[0], v[1] - o[1]} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v[0] * s, v[1] * s} }
func (v Vec2) Dot(o Vec2) float64   { return v[0]*o[0] + v[1]*o[1] }
func (v Vec2) Norm() float64        { return math.Sqrt(v.Dot(v)) }

// Vec3 is a plain 3-D vector, used for world-space points and normals.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Dot(o Vec3) float64   { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }
func (v Vec3) Normalize() Vec3 {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return Vec3{v[0] / n, v[1] / n, v[2] / n}
}
func (v Vec3) Dist(o Vec3) float64 { return v.Sub(o).Norm() }
