package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestCycle_Dimensions(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(13))

	out, err := RandomCycle(cfg, rng).Generate(cfg, nil, rng)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, cfg.TotalPeriods(), rows)
	assert.Equal(t, cfg.NumSeries(), cols)
}

func TestCycle_ZeroDampingIsWhiteNoise(t *testing.T) {
	cfg := testConfig()
	k := cfg.NumSeries()

	gen, err := NewCycle(make([]float64, k), make([]float64, k), 1.0)
	require.NoError(t, err)

	const seed = 21
	out, err := gen.Generate(cfg, nil, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	// With rho = 0 the recursion has no memory: the observed state is the
	// raw kappa draw and the conjugate draw is discarded.
	ref := rand.New(rand.NewSource(seed))
	rows, _ := out.Dims()
	for step := 0; step < rows; step++ {
		for i := 0; i < k; i++ {
			kappa := ref.NormFloat64()
			ref.NormFloat64()
			assert.Equal(t, kappa, out.At(step, i))
		}
	}
}

func TestCycle_ImpliedPeriodRange(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(31))

	for i := 0; i < 50; i++ {
		c := RandomCycle(cfg, rng)
		for _, l := range c.lambda {
			period := 2 * 3.141592653589793 / l
			assert.GreaterOrEqual(t, period, float64(minCyclePeriods))
			assert.LessOrEqual(t, period, float64(maxCyclePeriods))
		}
		for _, r := range c.rho {
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 1.0)
		}
	}
}

func TestCycle_InvalidDamping(t *testing.T) {
	_, err := NewCycle([]float64{0.1}, []float64{1.5}, 1.0)
	assert.Error(t, err)

	_, err = NewCycle([]float64{0.1, 0.2}, []float64{0.5}, 1.0)
	assert.Error(t, err)
}
