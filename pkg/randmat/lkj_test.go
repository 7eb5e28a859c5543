package randmat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestSample_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, k := range []int{1, 2, 3, 5, 8} {
		r, err := Sample(k, 2.0, rng)
		require.NoError(t, err)

		rows, cols := r.Dims()
		require.Equal(t, k, rows)
		require.Equal(t, k, cols)

		for i := 0; i < k; i++ {
			assert.Equal(t, 1.0, r.At(i, i), "diagonal must be exactly one")
			for j := 0; j < i; j++ {
				assert.Equal(t, r.At(i, j), r.At(j, i))
				assert.LessOrEqual(t, r.At(i, j), 1.0)
				assert.GreaterOrEqual(t, r.At(i, j), -1.0)
			}
		}

		var es mat.EigenSym
		require.True(t, es.Factorize(r, false))
		for _, v := range es.Values(nil) {
			assert.GreaterOrEqual(t, v, -1e-12, "eigenvalues must be non-negative")
		}
	}
}

func TestSample_OneDimensional(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	r, err := Sample(1, 5.0, rng)
	require.NoError(t, err)
	assert.Equal(t, 1.0, r.At(0, 0))
}

func TestSample_HighEtaConcentratesNearIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	const runs = 200
	var sum float64
	for i := 0; i < runs; i++ {
		r, err := Sample(2, 200.0, rng)
		require.NoError(t, err)
		off := r.At(0, 1)
		sum += off * off
	}
	assert.Less(t, sum/runs, 0.01, "large eta should shrink off-diagonals")
}

func TestSample_InvalidArguments(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	_, err := Sample(0, 2.0, rng)
	assert.Error(t, err)

	_, err = Sample(3, 0, rng)
	assert.Error(t, err)

	_, err = Sample(3, -1.5, rng)
	assert.Error(t, err)
}

func TestFactor_JitteredCholesky(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	r, err := Sample(4, 1.0, rng)
	require.NoError(t, err)

	chol, err := Factor(r, DefaultJitter)
	require.NoError(t, err)

	l := mat.NewTriDense(4, mat.Lower, nil)
	chol.LTo(l)

	var back mat.Dense
	back.Mul(l, l.T())
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			want := r.At(i, j)
			if i == j {
				want += DefaultJitter
			}
			assert.InDelta(t, want, back.At(i, j), 1e-10)
		}
	}
}

func TestFactor_RejectsIndefinite(t *testing.T) {
	bad := mat.NewSymDense(2, []float64{1, 2, 2, 1})

	_, err := Factor(bad, DefaultJitter)
	assert.Error(t, err)
}
