package tessellate

import (
	"fmt"
	"log"

	"github.com/polyforge/tessellate/errkind"
	"github.com/polyforge/tessellate/topo"
)

// TessellateEdgePreview discretizes a single Edge in isolation, independent
// of any Body, useful for previewing an Edge's sampling before committing to
// a full Body tessellation.
func TessellateEdgePreview(e *topo.Edge, p Params, logger *log.Logger) (*EdgeTessellation, error) {
	if e == nil {
		return nil, errkind.New(errkind.NullObject, "tessellate_edge_preview", "nil edge")
	}
	return discretizeEdge(e, nil, p, logger)
}

// TessellateBody builds a complete Tessellation for b: every Edge is
// discretized first (an Edge failure aborts the whole build, since later
// Faces depend on shared Edge samples), then every Face is filled,
// refined, and quad-patched where eligible (a Face failure is recorded in
// FaceErrors and logged, but does not abort the build), and finally every
// Face pair sharing an Edge is cross-linked.
func TessellateBody(b *topo.Body, p Params, logger *log.Logger) (*Tessellation, error) {
	logger = orDiscard(logger)
	if b == nil {
		return nil, errkind.New(errkind.NotABody, "tessellate_body", "nil body")
	}
	p.AngleDeg = clampf(p.AngleDeg, 0.5, 30.0)

	tess := newTessellation(b, p)
	faces, _, edges := topo.BodyTopos(b)

	for _, e := range edges {
		et, err := discretizeEdge(e, facesBorderingEdge(faces, e), p, logger)
		if err != nil {
			return nil, errkind.Wrap(err, errkind.DegenerateEdge, "tessellate_body", fmt.Sprintf("edge %d discretization failed", e.ID()))
		}
		tess.Edges[e] = et
	}

	// A WireBody has no Faces: tessellate_body reduces to the 1-D
	// tessellation populated above.
	if b.IsWire() {
		return tess, nil
	}

	for _, f := range faces {
		ft, err := buildFace(f, tess.Edges, p, logger)
		if err != nil {
			logger.Printf("tessellate_body: face %d failed (%v), continuing", topo.IndexInBody(f), err)
			tess.FaceErrors[f] = err
			continue
		}
		tess.Faces[f] = ft
	}

	stitchFaces(tess)

	for _, f := range faces {
		if _, ok := tess.Faces[f]; !ok {
			continue
		}
		if err := BuildQuads(tess, f); err != nil {
			logger.Printf("tessellate_body: quad patch for face %d skipped (%v)", topo.IndexInBody(f), err)
		}
	}

	return tess, nil
}

// buildFace runs the Loop Filler and Refinement Engine for a single Face.
func buildFace(f *topo.Face, edges map[*topo.Edge]*EdgeTessellation, p Params, logger *log.Logger) (*FaceTessellation, error) {
	ft := NewFaceTessellation(f)
	if err := fillLoop(ft, f, edges, p, logger); err != nil {
		return nil, err
	}
	refineFace(ft, f.Surface, p, logger)
	computeTriNeighbors(ft)
	return ft, nil
}

// Retessellate rebuilds exactly the listed Edges and Faces of tess, plus any
// Face adjacent to a listed Edge, preserving every other Edge/Face
// tessellation untouched (the §6 retessellate operation). Either edges or
// faces may be empty. p's AngleDeg is clamped the same way TessellateBody's
// is.
func Retessellate(tess *Tessellation, edges []*topo.Edge, faces []*topo.Face, p Params, logger *log.Logger) error {
	logger = orDiscard(logger)
	p.AngleDeg = clampf(p.AngleDeg, 0.5, 30.0)
	tess.Params = p

	rebuild := map[*topo.Face]bool{}
	for _, f := range faces {
		rebuild[f] = true
	}

	allFaces, _, _ := topo.BodyTopos(tess.Body)
	for _, e := range edges {
		et, err := discretizeEdge(e, facesBorderingEdge(allFaces, e), p, logger)
		if err != nil {
			return errkind.Wrap(err, errkind.DegenerateEdge, "retessellate", fmt.Sprintf("edge %d discretization failed", e.ID()))
		}
		tess.Edges[e] = et
		for _, f := range allFaces {
			if faceUsesEdge(f, e) {
				rebuild[f] = true
			}
		}
	}

	for f := range rebuild {
		ft, err := buildFace(f, tess.Edges, p, logger)
		if err != nil {
			logger.Printf("retessellate: face %d failed (%v), leaving it empty", topo.IndexInBody(f), err)
			delete(tess.Faces, f)
			tess.FaceErrors[f] = err
			continue
		}
		tess.Faces[f] = ft
		delete(tess.FaceErrors, f)
	}

	stitchFaces(tess)

	for f := range rebuild {
		if _, ok := tess.Faces[f]; !ok {
			continue
		}
		if err := BuildQuads(tess, f); err != nil {
			logger.Printf("retessellate: quad patch for face %d skipped (%v)", topo.IndexInBody(f), err)
		}
	}
	return nil
}

// faceUsesEdge reports whether any Loop of f carries e as one of its
// co-edges.
func faceUsesEdge(f *topo.Face, e *topo.Edge) bool {
	for _, lp := range f.Loops() {
		for i := 0; i < lp.EdgeCount(); i++ {
			le, _, _ := lp.EdgeAt(i)
			if le == e {
				return true
			}
		}
	}
	return false
}

// facesBorderingEdge filters faces down to those bordering e, the adjacency
// discretizeEdge's face-normal predicate needs.
func facesBorderingEdge(faces []*topo.Face, e *topo.Edge) []*topo.Face {
	var out []*topo.Face
	for _, f := range faces {
		if faceUsesEdge(f, e) {
			out = append(out, f)
		}
	}
	return out
}

// ReadEdge returns the EdgeTessellation for e, or an error if e has not
// been tessellated (e.g. it belongs to a different Body than tess).
func ReadEdge(tess *Tessellation, e *topo.Edge) (*EdgeTessellation, error) {
	et, ok := tess.Edges[e]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "read_edge", "edge has no tessellation")
	}
	return et, nil
}

// ReadFace returns the FaceTessellation for f, or the recorded FaceErrors
// entry if f failed to tessellate.
func ReadFace(tess *Tessellation, f *topo.Face) (*FaceTessellation, error) {
	if err, failed := tess.FaceErrors[f]; failed {
		return nil, err
	}
	ft, ok := tess.Faces[f]
	if !ok {
		return nil, errkind.New(errkind.NotFound, "read_face", "face has no tessellation")
	}
	return ft, nil
}

// ReadQuads returns the QuadTessellation for f, or an error if f has no
// quad patch (it may be ineligible, or patching may have been skipped).
func ReadQuads(tess *Tessellation, f *topo.Face) (*QuadTessellation, error) {
	ft, err := ReadFace(tess, f)
	if err != nil {
		return nil, err
	}
	if ft.Quads == nil {
		return nil, errkind.New(errkind.NotFound, "read_quads", "face has no quad patch")
	}
	return ft.Quads, nil
}

// ListQuadFaces returns every Face in tess that currently carries a quad
// patch.
func ListQuadFaces(tess *Tessellation) []*topo.Face {
	var out []*topo.Face
	faces, _, _ := topo.BodyTopos(tess.Body)
	for _, f := range faces {
		if ft, ok := tess.Faces[f]; ok && ft.Quads != nil {
			out = append(out, f)
		}
	}
	return out
}
