// Package compose assembles the component sequences into a price path and
// draws the noised observation sample handed to the fitting backend.
package compose

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultNoiseStd is the observation noise used by the reference configuration.
const DefaultNoiseStd = 50.0

var ErrDimMismatch = errors.New("compose: component dimensions do not match")

// Observation is one sampled row of the fit payload. Period and Series are
// zero-based here; the payload builder shifts them to the 1-based indices the
// backend expects.
type Observation struct {
	Period int
	Series int
	Value  float64
}

// Sum returns the elementwise sum of the component sequences, the per-period
// price fluctuations.
func Sum(parts ...*mat.Dense) (*mat.Dense, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no components", ErrDimMismatch)
	}
	rows, cols := parts[0].Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Copy(parts[0])
	for _, p := range parts[1:] {
		r, c := p.Dims()
		if r != rows || c != cols {
			return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrDimMismatch, rows, cols, r, c)
		}
		out.Add(out, p)
	}
	return out, nil
}

// RandomStart draws one positive starting log-price per series.
func RandomStart(k int, rng *rand.Rand) []float64 {
	u := distuv.Uniform{Min: math.Log1p(100), Max: math.Log1p(1000), Src: rng}
	start := make([]float64, k)
	for i := range start {
		start[i] = u.Rand()
	}
	return start
}

// CumLogPath cumulates the fluctuations on top of the starting log-prices and
// maps the result to a price level. The log1p/expm1 convention keeps the path
// finite near zero.
func CumLogPath(flux *mat.Dense, start []float64) (*mat.Dense, error) {
	rows, cols := flux.Dims()
	if len(start) != cols {
		return nil, fmt.Errorf("%w: %d starting prices for %d series", ErrDimMismatch, len(start), cols)
	}
	out := mat.NewDense(rows, cols, nil)
	for c := 0; c < cols; c++ {
		cum := start[c]
		for r := 0; r < rows; r++ {
			cum += flux.At(r, c)
			out.Set(r, c, math.Expm1(cum))
		}
	}
	return out, nil
}

// Fluctuations inverts CumLogPath, recovering the per-period fluctuation sum
// from a price path up to floating-point tolerance.
func Fluctuations(path *mat.Dense, start []float64) (*mat.Dense, error) {
	rows, cols := path.Dims()
	if len(start) != cols {
		return nil, fmt.Errorf("%w: %d starting prices for %d series", ErrDimMismatch, len(start), cols)
	}
	out := mat.NewDense(rows, cols, nil)
	for c := 0; c < cols; c++ {
		prev := start[c]
		for r := 0; r < rows; r++ {
			cur := math.Log1p(path.At(r, c))
			out.Set(r, c, cur-prev)
			prev = cur
		}
	}
	return out, nil
}

// SampleObservations draws n (period, series) pairs with replacement, adds
// Gaussian observation noise and silently drops non-positive results. The
// returned sample can therefore be shorter than n; callers must tolerate the
// shrinkage. n = 0 yields an empty sample without error.
func SampleObservations(prices *mat.Dense, n int, noiseStd float64, rng *rand.Rand) ([]Observation, error) {
	if n < 0 {
		return nil, fmt.Errorf("compose: sample size must not be negative, got %d", n)
	}
	if noiseStd < 0 {
		return nil, fmt.Errorf("compose: noise std must not be negative, got %g", noiseStd)
	}

	rows, cols := prices.Dims()
	obs := make([]Observation, 0, n)
	for i := 0; i < n; i++ {
		t := rng.Intn(rows)
		s := rng.Intn(cols)
		v := prices.At(t, s) + rng.NormFloat64()*noiseStd
		if v <= 0 {
			continue
		}
		obs = append(obs, Observation{Period: t, Series: s, Value: v})
	}
	return obs, nil
}
