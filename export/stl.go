package export

import (
	"bufio"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/fileformats"

	"github.com/polyforge/tessellate/tessellate"
	"github.com/polyforge/tessellate/topo"
)

// WriteSTL writes every Face's triangles to w in binary STL, using the same
// (ptype, pindex) vertex merge WriteASCII uses, adapted from the teacher's
// model3d/export.go WriteSTL: a facet count header followed by one normal +
// three vertices per triangle, written through fileformats.STLWriter.
func WriteSTL(w io.Writer, tess *tessellate.Tessellation, faces []*topo.Face) error {
	vertices, triLines := mergeTriangles(tess, faces)
	if int(uint32(len(triLines))) != len(triLines) {
		return errors.New("too many triangles for STL format")
	}

	bw := bufio.NewWriter(w)
	sw, err := fileformats.NewSTLWriter(bw, uint32(len(triLines)))
	if err != nil {
		return errors.Wrap(err, "create STL writer")
	}

	for _, t := range triLines {
		a, b, c := vertices[t[0]-1], vertices[t[1]-1], vertices[t[2]-1]
		n := triangleNormal(a, b, c)
		verts := [3][3]float32{castVector32(a), castVector32(b), castVector32(c)}
		if err := sw.WriteTriangle(castVector32(n), verts); err != nil {
			return errors.Wrap(err, "write STL triangle")
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, "flush STL export")
	}
	return nil
}

// triangleNormal returns the unnormalized-then-normalized cross product
// (b-a) x (c-a), the same winding convention the tessellation kernel uses
// for CCW-in-UV triangles mapped to world space.
func triangleNormal(a, b, c [3]float64) [3]float64 {
	ux, uy, uz := b[0]-a[0], b[1]-a[1], b[2]-a[2]
	vx, vy, vz := c[0]-a[0], c[1]-a[1], c[2]-a[2]
	nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	norm := nx*nx + ny*ny + nz*nz
	if norm < 1e-24 {
		return [3]float64{0, 0, 0}
	}
	inv := 1 / math.Sqrt(norm)
	return [3]float64{nx * inv, ny * inv, nz * inv}
}

func castVector32(v [3]float64) [3]float32 {
	return [3]float32{float32(v[0]), float32(v[1]), float32(v[2])}
}
