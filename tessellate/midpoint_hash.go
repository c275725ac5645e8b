package tessellate

// midpointKey identifies an undirected pair of vertex indices, the edge a
// candidate split midpoint would sit on.
type midpointKey struct{ a, b int }

func makeMidpointKey(a, b int) midpointKey {
	if a > b {
		a, b = b, a
	}
	return midpointKey{a, b}
}

// midpointHash is a chained hash table caching the vertex index created for
// a given triangle-edge split, so the Refinement Engine's insert phase
// never creates two different new vertices for the same shared edge when it
// is visited from both adjacent triangles.
type midpointHash struct {
	buckets map[midpointKey]int
}

func newMidpointHash() *midpointHash {
	return &midpointHash{buckets: map[midpointKey]int{}}
}

// lookup returns the cached split-vertex index for edge (a, b), if any.
func (h *midpointHash) lookup(a, b int) (int, bool) {
	v, ok := h.buckets[makeMidpointKey(a, b)]
	return v, ok
}

// store records the split-vertex index created for edge (a, b).
func (h *midpointHash) store(a, b, v int) {
	h.buckets[makeMidpointKey(a, b)] = v
}

// invalidate drops the cached entry for edge (a, b), used once both
// triangles sharing it have consumed the cached midpoint and the edge no
// longer exists in its pre-split form.
func (h *midpointHash) invalidate(a, b int) {
	delete(h.buckets, makeMidpointKey(a, b))
}
