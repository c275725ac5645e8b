package numerical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3DotCrossNormalize(t *testing.T) {
	a := Vec3{1, 0, 0}
	b := Vec3{0, 1, 0}
	assert.Equal(t, 0.0, a.Dot(b))
	assert.Equal(t, Vec3{0, 0, 1}, a.Cross(b))

	c := Vec3{3, 4, 0}
	assert.Equal(t, 5.0, c.Norm())
	assert.Equal(t, Vec3{0.6, 0.8, 0}, c.Normalize())
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestSparseMatrixApply(t *testing.T) {
	m := NewSparseMatrix(2)
	m.Set(0, 0, 2)
	m.Set(0, 1, 1)
	m.Add(1, 0, 1)
	m.Add(1, 1, 3)

	y := m.Apply([]float64{1, 1})
	assert.Equal(t, []float64{3, 4}, y)
}

func TestBiCGSTABSolvesDiagonalSystem(t *testing.T) {
	// 3x + 0y = 6, 0x + 2y = 8 -> x=2, y=4
	m := NewSparseMatrix(2)
	m.Set(0, 0, 3)
	m.Set(1, 1, 2)
	b := []float64{6, 8}

	sol := DefaultSolver().SolveLinearSystem(m.Apply, b, nil)
	assert.InDelta(t, 2, sol[0], 1e-6)
	assert.InDelta(t, 4, sol[1], 1e-6)
}

func TestBiCGSTABConvergesOnLaplacianStyleSystem(t *testing.T) {
	// A 3-point discrete Laplacian stencil: -2x0 + x1 = -1, x0 - 2x1 = -1.
	m := NewSparseMatrix(2)
	m.Set(0, 0, -2)
	m.Set(0, 1, 1)
	m.Set(1, 0, 1)
	m.Set(1, 1, -2)
	b := []float64{-1, -1}

	sol := DefaultSolver().SolveLinearSystem(m.Apply, b, make([]float64, 2))
	got := m.Apply(sol)
	assert.InDelta(t, b[0], got[0], 1e-4)
	assert.InDelta(t, b[1], got[1], 1e-4)
}
