package series

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Implied cycle length is drawn uniformly from this range of periods.
const (
	minCyclePeriods = 250
	maxCyclePeriods = 1000
)

// Cycle is a damped harmonic state-space recursion. Each component carries a
// pair of coupled latent series rotating at angular frequency lambda and
// shrinking by damping rho; only the first of the pair is observed. Both
// parameters are drawn once per run and held fixed across the recursion.
type Cycle struct {
	lambda []float64
	rho    []float64
	scale  float64
}

func NewCycle(lambda, rho []float64, scale float64) (*Cycle, error) {
	if len(lambda) == 0 || len(lambda) != len(rho) {
		return nil, fmt.Errorf("series: cycle needs matching lambda and rho, got %d and %d", len(lambda), len(rho))
	}
	for i, r := range rho {
		if r < 0 || r > 1 {
			return nil, fmt.Errorf("series: cycle damping %d must lie in [0,1], got %g", i, r)
		}
	}
	return &Cycle{lambda: lambda, rho: rho, scale: scale}, nil
}

// RandomCycle draws per-component frequency and damping for the run.
func RandomCycle(cfg Config, rng *rand.Rand) *Cycle {
	k := cfg.NumSeries()
	periods := distuv.Uniform{Min: minCyclePeriods, Max: maxCyclePeriods, Src: rng}

	lambda := make([]float64, k)
	rho := make([]float64, k)
	for i := 0; i < k; i++ {
		lambda[i] = 2 * math.Pi / periods.Rand()
		rho[i] = rng.Float64()
	}
	c, _ := NewCycle(lambda, rho, cfg.PriceMoveScale)
	return c
}

func (c *Cycle) Name() string { return "cycle" }

func (c *Cycle) Generate(cfg Config, _ mat.Symmetric, rng *rand.Rand) (*mat.Dense, error) {
	k := cfg.NumSeries()
	if len(c.lambda) != k {
		return nil, fmt.Errorf("series: cycle has %d components, config has %d series", len(c.lambda), k)
	}

	total := cfg.TotalPeriods()
	out := mat.NewDense(total, k, nil)

	omega := make([]float64, k)
	conj := make([]float64, k)
	for step := 0; step < total; step++ {
		for i := 0; i < k; i++ {
			kappa := rng.NormFloat64() * c.scale
			kappaConj := rng.NormFloat64() * c.scale

			cos := c.rho[i] * math.Cos(c.lambda[i])
			sin := c.rho[i] * math.Sin(c.lambda[i])

			next := cos*omega[i] + sin*conj[i] + kappa
			conj[i] = -sin*omega[i] + cos*conj[i] + kappaConj
			omega[i] = next

			out.Set(step, i, omega[i])
		}
	}
	return out, nil
}
