package randmat

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultJitter is added to the diagonal before Cholesky factorization.
// The raw sampler can produce near-singular matrices for small eta.
const DefaultJitter = 1e-8

// Sample draws a k x k correlation matrix from an LKJ distribution with
// concentration eta using the onion construction: the matrix is assembled
// column by column as R = Hᵀ·H where every column of H is a unit vector,
// its squared in-subspace radius Beta-distributed and its direction uniform
// on the sphere of the already-built subspace. Higher eta concentrates mass
// near the identity.
func Sample(k int, eta float64, rng *rand.Rand) (*mat.SymDense, error) {
	if k < 1 {
		return nil, fmt.Errorf("randmat: dimension must be at least 1, got %d", k)
	}
	if eta <= 0 {
		return nil, fmt.Errorf("randmat: concentration eta must be positive, got %g", eta)
	}

	r := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		r.SetSym(i, i, 1)
	}
	if k == 1 {
		return r, nil
	}

	h := mat.NewDense(k, k, nil)
	h.Set(0, 0, 1)

	for j := 1; j < k; j++ {
		// Squared radius of column j inside the built j-dimensional subspace.
		// The shape schedule starts at eta+(k-2)/2 and decays by 1/2 per column.
		radius := distuv.Beta{
			Alpha: float64(j) / 2,
			Beta:  eta + float64(k-1-j)/2,
			Src:   rng,
		}
		y := radius.Rand()

		u := make([]float64, j)
		var norm float64
		for norm == 0 {
			for i := range u {
				u[i] = rng.NormFloat64()
				norm += u[i] * u[i]
			}
		}
		norm = math.Sqrt(norm)

		scale := math.Sqrt(y) / norm
		for i := 0; i < j; i++ {
			h.Set(i, j, scale*u[i])
		}
		h.Set(j, j, math.Sqrt(1-y))
	}

	var prod mat.Dense
	prod.Mul(h.T(), h)
	for i := 0; i < k; i++ {
		for j := 0; j < i; j++ {
			r.SetSym(i, j, prod.At(i, j))
		}
	}
	return r, nil
}

// Factor returns the Cholesky factorization of a after adding jitter to the
// diagonal. Callers correlating Gaussian draws should always factor through
// here rather than factorizing the raw sampler output.
func Factor(a mat.Symmetric, jitter float64) (*mat.Cholesky, error) {
	n := a.SymmetricDim()
	jittered := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		jittered.SetSym(i, i, a.At(i, i)+jitter)
		for j := 0; j < i; j++ {
			jittered.SetSym(i, j, a.At(i, j))
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(jittered); !ok {
		return nil, fmt.Errorf("randmat: matrix is not positive definite with jitter %g", jitter)
	}
	return &chol, nil
}
