package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

func TestSum(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{10, 20, 30, 40})

	out, err := Sum(a, b)
	require.NoError(t, err)
	assert.Equal(t, 11.0, out.At(0, 0))
	assert.Equal(t, 44.0, out.At(1, 1))

	// Inputs must not be mutated.
	assert.Equal(t, 1.0, a.At(0, 0))
}

func TestSum_DimMismatch(t *testing.T) {
	a := mat.NewDense(2, 2, nil)
	b := mat.NewDense(3, 2, nil)

	_, err := Sum(a, b)
	assert.ErrorIs(t, err, ErrDimMismatch)

	_, err = Sum()
	assert.ErrorIs(t, err, ErrDimMismatch)
}

func TestCumLogPath_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(19))

	flux := mat.NewDense(40, 3, nil)
	for r := 0; r < 40; r++ {
		for c := 0; c < 3; c++ {
			flux.Set(r, c, rng.NormFloat64()*0.05)
		}
	}
	start := RandomStart(3, rng)

	path, err := CumLogPath(flux, start)
	require.NoError(t, err)

	back, err := Fluctuations(path, start)
	require.NoError(t, err)

	for r := 0; r < 40; r++ {
		for c := 0; c < 3; c++ {
			assert.InDelta(t, flux.At(r, c), back.At(r, c), 1e-9)
		}
	}
}

func TestRandomStart_Positive(t *testing.T) {
	rng := rand.New(rand.NewSource(2))

	for _, v := range RandomStart(10, rng) {
		assert.Greater(t, v, 0.0)
	}
}

func TestSampleObservations(t *testing.T) {
	rng := rand.New(rand.NewSource(29))

	prices := mat.NewDense(20, 2, nil)
	for r := 0; r < 20; r++ {
		for c := 0; c < 2; c++ {
			prices.Set(r, c, 500+rng.Float64()*100)
		}
	}

	obs, err := SampleObservations(prices, 100, DefaultNoiseStd, rng)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(obs), 100)
	assert.NotEmpty(t, obs)

	for _, o := range obs {
		assert.Greater(t, o.Value, 0.0)
		assert.GreaterOrEqual(t, o.Period, 0)
		assert.Less(t, o.Period, 20)
		assert.GreaterOrEqual(t, o.Series, 0)
		assert.Less(t, o.Series, 2)
	}
}

func TestSampleObservations_DropsNonPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(31))

	// Prices deep below zero shifted by noise stay non-positive and must be
	// filtered, shrinking the effective sample silently.
	prices := mat.NewDense(5, 1, []float64{-1e6, -1e6, -1e6, -1e6, -1e6})

	obs, err := SampleObservations(prices, 50, 1.0, rng)
	require.NoError(t, err)
	assert.Empty(t, obs)
}

func TestSampleObservations_EmptyAndInvalid(t *testing.T) {
	rng := rand.New(rand.NewSource(37))
	prices := mat.NewDense(5, 1, []float64{1, 2, 3, 4, 5})

	obs, err := SampleObservations(prices, 0, DefaultNoiseStd, rng)
	require.NoError(t, err)
	assert.Empty(t, obs)

	_, err = SampleObservations(prices, -1, DefaultNoiseStd, rng)
	assert.Error(t, err)

	_, err = SampleObservations(prices, 10, -1, rng)
	assert.Error(t, err)
}
