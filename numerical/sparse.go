package numerical

// SparseMatrix is a row-major sparse matrix stored as one map per row,
// mirroring the teacher's parameterization.go construction of a sparse
// Floater97 weight matrix before handing it to a LargeLinearSolver.
type SparseMatrix struct {
	N    int
	rows []map[int]float64
}

// NewSparseMatrix allocates an n x n sparse matrix with no entries set.
func NewSparseMatrix(n int) *SparseMatrix {
	rows := make([]map[int]float64, n)
	for i := range rows {
		rows[i] = map[int]float64{}
	}
	return &SparseMatrix{N: n, rows: rows}
}

// Set stores (or overwrites) the entry at (row, col).
func (m *SparseMatrix) Set(row, col int, val float64) {
	m.rows[row][col] = val
}

// Add accumulates val into the entry at (row, col).
func (m *SparseMatrix) Add(row, col int, val float64) {
	m.rows[row][col] += val
}

// Apply computes y = M * x.
func (m *SparseMatrix) Apply(x []float64) []float64 {
	y := make([]float64, m.N)
	for i, row := range m.rows {
		var sum float64
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}
	return y
}

// LargeLinearSolver abstracts an iterative solver for M*x = b given only
// M's Apply (matrix-vector product), so the same interface can front a
// sparse matrix or any other implicit linear operator.
type LargeLinearSolver interface {
	SolveLinearSystem(apply func([]float64) []float64, b, initGuess []float64) []float64
}

// BiCGSTABSolver solves an (possibly non-symmetric) sparse linear system
// with the biconjugate gradient stabilized method, the same solver the
// teacher's BuildAutomaticUVMap uses for Floater97 parameterization, reused
// here to relax interior quad-patch UVs toward a discrete-Laplacian
// equilibrium.
type BiCGSTABSolver struct {
	MaxIters    int
	MSETolerance float64
}

const (
	Floater97DefaultMaxIters  = 1000
	Floater97DefaultMSETol    = 1e-10
)

// DefaultSolver returns a BiCGSTABSolver configured the way the teacher's
// Floater97DefaultSolver configures its parameterization solve.
func DefaultSolver() *BiCGSTABSolver {
	return &BiCGSTABSolver{MaxIters: Floater97DefaultMaxIters, MSETolerance: Floater97DefaultMSETol}
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}

func axpy(alpha float64, x, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = y[i] + alpha*x[i]
	}
	return out
}

func sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

// SolveLinearSystem runs BiCGSTAB starting from initGuess (or the zero
// vector if nil) until the mean squared residual drops below MSETolerance
// or MaxIters is exhausted, whichever comes first.
func (s *BiCGSTABSolver) SolveLinearSystem(apply func([]float64) []float64, b, initGuess []float64) []float64 {
	n := len(b)
	x := make([]float64, n)
	if initGuess != nil {
		copy(x, initGuess)
	}
	r := sub(b, apply(x))
	rHat := append([]float64{}, r...)
	rho, alpha, omega := 1.0, 1.0, 1.0
	v := make([]float64, n)
	p := make([]float64, n)

	maxIters := s.MaxIters
	if maxIters <= 0 {
		maxIters = Floater97DefaultMaxIters
	}
	tol := s.MSETolerance
	if tol <= 0 {
		tol = Floater97DefaultMSETol
	}

	for iter := 0; iter < maxIters; iter++ {
		mse := dot(r, r) / float64(n)
		if mse < tol {
			break
		}
		rhoNew := dot(rHat, r)
		if rhoNew == 0 {
			break
		}
		if iter == 0 {
			p = append([]float64{}, r...)
		} else {
			beta := (rhoNew / rho) * (alpha / omega)
			for i := range p {
				p[i] = r[i] + beta*(p[i]-omega*v[i])
			}
		}
		v = apply(p)
		alphaDenom := dot(rHat, v)
		if alphaDenom == 0 {
			break
		}
		alpha = rhoNew / alphaDenom
		h := axpy(alpha, p, x)
		s2 := sub(r, scaleVec(alpha, v))
		if dot(s2, s2)/float64(n) < tol {
			x = h
			break
		}
		t := apply(s2)
		tDot := dot(t, t)
		if tDot == 0 {
			x = h
			break
		}
		omega = dot(t, s2) / tDot
		x = axpy(omega, s2, h)
		r = sub(s2, scaleVec(omega, t))
		rho = rhoNew
	}
	return x
}

func scaleVec(s float64, v []float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = s * x
	}
	return out
}
