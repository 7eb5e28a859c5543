package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSeasonal_Dimensions(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(5))

	gen, err := NewSeasonal(cfg.SeasonalityPeriods[0], cfg.PriceMoveScale)
	require.NoError(t, err)

	out, err := gen.Generate(cfg, nil, rng)
	require.NoError(t, err)

	rows, cols := out.Dims()
	assert.Equal(t, cfg.TotalPeriods(), rows, "burn-in rows must be discarded")
	assert.Equal(t, cfg.NumSeries(), cols)
}

func TestSeasonal_WindowSumsToZeroInExpectation(t *testing.T) {
	cfg := testConfig()
	cfg.Periods = 200
	cfg.Horizon = 0
	period := cfg.SeasonalityPeriods[0]

	gen, err := NewSeasonal(period, 1.0)
	require.NoError(t, err)

	// Each full seasonal window sums to a single fresh noise term, so the
	// Monte-Carlo mean of windowed sums must vanish.
	var sum float64
	var count int
	for seed := uint64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		out, err := gen.Generate(cfg, nil, rng)
		require.NoError(t, err)

		rows, cols := out.Dims()
		for start := 0; start+period <= rows; start += period {
			for c := 0; c < cols; c++ {
				var window float64
				for j := 0; j < period; j++ {
					window += out.At(start+j, c)
				}
				sum += window
				count++
			}
		}
	}

	assert.Less(t, math.Abs(sum/float64(count)), 0.1)
}

func TestSeasonal_InvalidPeriod(t *testing.T) {
	_, err := NewSeasonal(1, 1.0)
	assert.Error(t, err)
}
