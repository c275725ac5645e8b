// Package tessellate is the core B-rep tessellation kernel: the edge
// discretizer, loop filler, midpoint hash, refinement engine, face
// stitching, edge editing, and quad patcher components, organized the way
// the teacher organizes one file per algorithm/phase around a shared
// mesh-like core type (model3d/decimate.go, subdivision.go, dc.go).
package tessellate

// Params bundles the three global tessellation controls plus every tunable
// the kernel's phases depend on. Every field except the three globals
// (MaxSide, Chord, AngleDeg) has a named Default constant, the way the teacher exports DefaultDecimatorMinAspectRatio,
// DefaultDualContouringBufferSize, and friends instead of scattering magic
// numbers through the algorithm files.
type Params struct {
	// MaxSide is the maximum allowed triangle edge length in world units.
	MaxSide float64
	// Chord is the maximum allowed sagitta (chordal deviation) between a
	// discretized edge/triangle and the true surface.
	Chord float64
	// AngleDeg is the maximum allowed turning angle, in degrees, between
	// consecutive edge segments or adjacent triangle normals.
	AngleDeg float64

	// MaxEdgeSamples caps the number of samples the Edge Discretizer will
	// place on a single Edge, regardless of how slowly the phased criteria
	// converge.
	MaxEdgeSamples int

	// CloseToEdgeDepthRefine is the neighbor-graph hop depth from the Face
	// boundary within which the insert phase skips the chord/angle tests
	// (max_side still applies), resolving spec Open Question 1.
	CloseToEdgeDepthRefine int
	// CloseToEdgeDepthSplit is the neighbor-graph hop depth from the Face
	// boundary within which the insert phase makes no split at all.
	CloseToEdgeDepthSplit int
	// CurvatureProbeDivisor sets the Edge Discretizer's face-normal probe
	// step as segment UV length / CurvatureProbeDivisor, resolving Open
	// Question 2.
	CurvatureProbeDivisor float64

	// LoopFillerRetryAspectScale scales the reflex tolerance
	// (-1e-9 * scale) the Loop Filler's second pass uses after the first
	// pass fails to close a loop, resolving Open Question 3.
	LoopFillerRetryAspectScale float64

	// MaxRefinementPasses bounds the swap/insert refinement loop so a
	// pathological input cannot spin forever chasing a predicate that never
	// settles.
	MaxRefinementPasses int
}

const (
	DefaultMaxEdgeSamples             = 1024
	DefaultCloseToEdgeDepthRefine      = 6
	DefaultCloseToEdgeDepthSplit       = 4
	DefaultCurvatureProbeDivisor       = 4.0
	DefaultLoopFillerRetryAspectScale  = 1.5
	DefaultMaxRefinementPasses         = 8
)

// DefaultParams returns a Params populated with every exported default
// except the three problem-specific globals (MaxSide, Chord, AngleDeg),
// which the caller must always set explicitly since they have no
// universally sane default.
func DefaultParams(maxSide, chord, angleDeg float64) Params {
	return Params{
		MaxSide:                    maxSide,
		Chord:                      chord,
		AngleDeg:                   angleDeg,
		MaxEdgeSamples:             DefaultMaxEdgeSamples,
		CloseToEdgeDepthRefine:     DefaultCloseToEdgeDepthRefine,
		CloseToEdgeDepthSplit:      DefaultCloseToEdgeDepthSplit,
		CurvatureProbeDivisor:      DefaultCurvatureProbeDivisor,
		LoopFillerRetryAspectScale: DefaultLoopFillerRetryAspectScale,
		MaxRefinementPasses:        DefaultMaxRefinementPasses,
	}
}
