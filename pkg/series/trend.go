package series

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/peter-kozarec/mvgarch/pkg/randmat"
)

// maxDamping keeps the lag-1 recursion stationary-ish. Policy choice, not a
// stability proof.
const maxDamping = 0.3

// Trend is a multivariate mean-reverting autoregressive walk driven by
// correlated Gaussian shocks. Coefficients are sized K x AROrder but only the
// lag-1 column enters the recursion; the remaining lags travel with the
// configuration into the fit payload.
type Trend struct {
	coeffs [][]float64
	drift  []float64
	scale  float64
}

func NewTrend(coeffs [][]float64, drift []float64, scale float64) (*Trend, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("series: trend needs at least one coefficient row")
	}
	clipped := make([][]float64, len(coeffs))
	for k, row := range coeffs {
		if len(row) < 1 {
			return nil, fmt.Errorf("series: trend coefficient row %d is empty", k)
		}
		clipped[k] = append([]float64(nil), row...)
		clipped[k][0] = clampMagnitude(row[0], maxDamping)
	}
	if drift == nil {
		drift = make([]float64, len(coeffs))
	}
	if len(drift) != len(coeffs) {
		return nil, fmt.Errorf("series: trend drift length %d does not match %d series", len(drift), len(coeffs))
	}
	return &Trend{coeffs: clipped, drift: drift, scale: scale}, nil
}

// RandomTrend draws a K x AROrder coefficient matrix for the run.
func RandomTrend(cfg Config, rng *rand.Rand) *Trend {
	k := cfg.NumSeries()
	coeffs := make([][]float64, k)
	for i := 0; i < k; i++ {
		coeffs[i] = make([]float64, cfg.AROrder)
		for l := range coeffs[i] {
			coeffs[i][l] = rng.NormFloat64() * 0.15
		}
	}
	t, _ := NewTrend(coeffs, nil, cfg.PriceMoveScale)
	return t
}

func (t *Trend) Name() string { return "trend" }

func (t *Trend) Generate(cfg Config, corr mat.Symmetric, rng *rand.Rand) (*mat.Dense, error) {
	k := cfg.NumSeries()
	if len(t.coeffs) != k {
		return nil, fmt.Errorf("series: trend has %d coefficient rows, config has %d series", len(t.coeffs), k)
	}
	if corr == nil {
		return nil, fmt.Errorf("series: trend requires a correlation matrix")
	}
	chol, err := randmat.Factor(corr, randmat.DefaultJitter)
	if err != nil {
		return nil, err
	}
	l := mat.NewTriDense(k, mat.Lower, nil)
	chol.LTo(l)

	total := cfg.TotalPeriods()
	out := mat.NewDense(total, k, nil)
	sd := math.Sqrt(t.scale)

	z := mat.NewVecDense(k, nil)
	var shock mat.VecDense
	for step := 1; step < total; step++ {
		for i := 0; i < k; i++ {
			z.SetVec(i, rng.NormFloat64()*sd)
		}
		shock.MulVec(l, z)
		for i := 0; i < k; i++ {
			prev := out.At(step-1, i)
			out.Set(step, i, t.drift[i]+t.coeffs[i][0]*prev+shock.AtVec(i))
		}
	}
	return out, nil
}

func clampMagnitude(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
