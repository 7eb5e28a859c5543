package series

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const coeffScale = 0.2

// GARCH simulates one independent GARCH(1,1) innovation sequence per series.
// There is no cross-series correlation in this component; the shared
// correlation structure only enters through the trend shocks.
type GARCH struct {
	omega []float64
	alpha []float64
	beta  []float64
}

func NewGARCH(omega, alpha, beta []float64) (*GARCH, error) {
	if len(omega) == 0 || len(omega) != len(alpha) || len(omega) != len(beta) {
		return nil, fmt.Errorf("series: garch needs matching parameter vectors, got %d/%d/%d",
			len(omega), len(alpha), len(beta))
	}
	for i := range omega {
		if omega[i] < 0 || alpha[i] < 0 || beta[i] < 0 {
			return nil, fmt.Errorf("series: garch parameters for series %d must not be negative", i)
		}
	}
	return &GARCH{omega: omega, alpha: alpha, beta: beta}, nil
}

// RandomGARCH draws per-series parameters: half-normal ARCH and GARCH
// coefficients and a half-Cauchy constant scaled by the price-move scale.
func RandomGARCH(cfg Config, rng *rand.Rand) *GARCH {
	k := cfg.NumSeries()
	cauchy := distuv.Cauchy{Mu: 0, Gamma: cfg.PriceMoveScale, Src: rng}

	omega := make([]float64, k)
	alpha := make([]float64, k)
	beta := make([]float64, k)
	for i := 0; i < k; i++ {
		omega[i] = math.Abs(cauchy.Rand())
		alpha[i] = math.Abs(rng.NormFloat64() * coeffScale)
		beta[i] = math.Abs(rng.NormFloat64() * coeffScale)
	}
	g, _ := NewGARCH(omega, alpha, beta)
	return g
}

func (g *GARCH) Name() string { return "innovation" }

func (g *GARCH) Generate(cfg Config, _ mat.Symmetric, rng *rand.Rand) (*mat.Dense, error) {
	k := cfg.NumSeries()
	if len(g.omega) != k {
		return nil, fmt.Errorf("series: garch has %d parameter sets, config has %d series", len(g.omega), k)
	}

	total := cfg.TotalPeriods()
	out := mat.NewDense(total, k, nil)

	for i := 0; i < k; i++ {
		var prevEps, prevVar float64
		for step := 0; step < total; step++ {
			v := g.omega[i] + g.alpha[i]*prevEps*prevEps + g.beta[i]*prevVar
			eps := math.Sqrt(v) * rng.NormFloat64()

			out.Set(step, i, eps)
			prevEps, prevVar = eps, v
		}
	}
	return out, nil
}
