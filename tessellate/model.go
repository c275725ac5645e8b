package tessellate

import "github.com/polyforge/tessellate/topo"

// ptype classifies a FaceTessellation vertex's provenance, per the (ptype,
// pindex) scheme used throughout this package and by export.WriteASCII.
type ptype int

const (
	// PtypeInterior marks a vertex that only exists inside this Face; it is
	// never shared with an adjacent Face.
	PtypeInterior ptype = -1
	// PtypeNode marks a vertex coincident with a topo.Node; pindex is the
	// Node's own ID().
	PtypeNode ptype = 0
)

// vertexTag is the (ptype, pindex) identity pair attached to every vertex a
// FaceTessellation owns, letting Face Stitching and export.WriteASCII
// recognize vertices shared across Faces without a global coordinate hash.
type vertexTag struct {
	Kind  ptype // PtypeInterior, PtypeNode, or a positive Edge index (k > 0)
	Index int   // meaningless when Kind == PtypeInterior
}

// EdgeTessellation is the ordered list of world-space sample points placed
// along one topo.Edge by the Edge Discretizer, shared verbatim by every
// Face that borders the Edge.
type EdgeTessellation struct {
	Edge    *topo.Edge
	Params  []float64       // curve parameter at each sample, ascending
	Points  [][3]float64    // world-space position at each sample
	Normals [][3]float64    // curve tangent at each sample
}

// NumSamples returns the total number of discretization samples, including
// both Node endpoints.
func (e *EdgeTessellation) NumSamples() int { return len(e.Params) }

// FaceLink records, for one boundary vertex of a FaceTessellation, which
// neighboring Face (if any) shares the opposite side of that boundary
// segment, and the corresponding triangle id on that side — the data Face
// Stitching keeps in sync across the shared invariant.
type FaceLink struct {
	NeighborFace  *topo.Face
	NeighborTri   int // triangle id in the neighbor's FaceTessellation, or 0
}

// FaceTessellation is the triangle mesh covering one topo.Face's trimmed
// domain. Vertex i has UV coordinate UV[i], world point Pos[i], and
// provenance Tags[i]. Tris is a flat triple-of-indices array (1-based to
// match the teacher's triVert/triTri/triSeg convention; index 0 is unused).
type FaceTessellation struct {
	Face *topo.Face

	UV   []numVec2
	Pos  [][3]float64
	Tags []vertexTag

	// Tris holds one int triple per triangle, 1-indexed into UV/Pos/Tags;
	// Tris[0] is a sentinel and never a real triangle.
	Tris [][3]int

	// TriNeighbors holds one triple per triangle in Tris, parallel indexed;
	// a positive entry is a triangle id (1-based). A negative entry -e marks
	// a boundary side lying on the topo.Edge with ID e, decoded from the
	// side's vertex tags by computeTriNeighbors; -1 alone means the owning
	// Edge could not be resolved. 0 means "unassigned".
	TriNeighbors [][3]int

	// Links maps a boundary vertex index to the FaceLink describing the
	// Face across that boundary, when known.
	Links map[int]FaceLink

	Quads *QuadTessellation
}

type numVec2 = [2]float64

// NewFaceTessellation allocates an empty FaceTessellation for f, with the
// 1-indexed sentinel slot already in place.
func NewFaceTessellation(f *topo.Face) *FaceTessellation {
	return &FaceTessellation{
		Face:         f,
		UV:           []numVec2{{0, 0}},
		Pos:          [][3]float64{{0, 0, 0}},
		Tags:         []vertexTag{{}},
		Tris:         [][3]int{{0, 0, 0}},
		TriNeighbors: [][3]int{{0, 0, 0}},
		Links:        map[int]FaceLink{},
	}
}

// addVertex appends a new vertex and returns its 1-based index.
func (ft *FaceTessellation) addVertex(uv numVec2, pos [3]float64, tag vertexTag) int {
	ft.UV = append(ft.UV, uv)
	ft.Pos = append(ft.Pos, pos)
	ft.Tags = append(ft.Tags, tag)
	return len(ft.UV) - 1
}

// addTriangle appends a new triangle and returns its 1-based id.
func (ft *FaceTessellation) addTriangle(a, b, c int) int {
	ft.Tris = append(ft.Tris, [3]int{a, b, c})
	ft.TriNeighbors = append(ft.TriNeighbors, [3]int{0, 0, 0})
	return len(ft.Tris) - 1
}

// NumVertices returns the number of real (non-sentinel) vertices.
func (ft *FaceTessellation) NumVertices() int { return len(ft.UV) - 1 }

// NumTriangles returns the number of real (non-sentinel) triangles.
func (ft *FaceTessellation) NumTriangles() int { return len(ft.Tris) - 1 }

// Patch is one structured quad cell, carrying the four corner vertex
// indices (into the owning FaceTessellation's vertex arrays) in CCW order.
type Patch struct {
	Corners [4]int
}

// QuadTessellation is the optional structured quad overlay the Quad Patcher
// builds for a 4-sided Face, in addition to (not instead of) its triangle
// FaceTessellation.
type QuadTessellation struct {
	Face   *topo.Face
	NU, NV int
	// Grid holds (NU+1)*(NV+1) vertex indices into the owning
	// FaceTessellation's UV/Pos arrays, row-major from one corner.
	Grid []int
	// Patches holds NU*NV rectangular sub-patches, row-major, each naming its
	// four corner vertex indices CCW; a derived view over Grid kept alongside
	// it so a caller wanting the §3 QuadTessellation Patch breakdown
	// (ipts/bounds per cell) does not need to re-walk Grid itself.
	Patches []Patch
}

// Tessellation is the root result of tessellating a topo.Body: one
// EdgeTessellation per Edge, one FaceTessellation per Face.
type Tessellation struct {
	Body   *topo.Body
	Params Params

	Edges map[*topo.Edge]*EdgeTessellation
	Faces map[*topo.Face]*FaceTessellation

	// FaceErrors records Faces that failed to tessellate (per the §7
	// propagation policy: a Face failure is recorded and logged, not fatal).
	FaceErrors map[*topo.Face]error
}

func newTessellation(b *topo.Body, p Params) *Tessellation {
	return &Tessellation{
		Body:       b,
		Params:     p,
		Edges:      map[*topo.Edge]*EdgeTessellation{},
		Faces:      map[*topo.Face]*FaceTessellation{},
		FaceErrors: map[*topo.Face]error{},
	}
}
