package series

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// DefaultBurnIn lets the windowed-sum constraint reach steady state before
// the periods of interest begin.
const DefaultBurnIn = 500

// Seasonal is a dummy-variable seasonal state recursion. Every new value is
// the negated sum of the previous period-1 values plus noise, which enforces
// a zero sum over any full seasonal window by construction.
type Seasonal struct {
	period int
	scale  float64
	burnIn int
}

func NewSeasonal(period int, scale float64) (*Seasonal, error) {
	if period < 2 {
		return nil, fmt.Errorf("series: seasonal period must be at least 2, got %d", period)
	}
	return &Seasonal{period: period, scale: scale, burnIn: DefaultBurnIn}, nil
}

func (s *Seasonal) Name() string { return "seasonal" }

func (s *Seasonal) Generate(cfg Config, _ mat.Symmetric, rng *rand.Rand) (*mat.Dense, error) {
	k := cfg.NumSeries()
	total := cfg.TotalPeriods()
	raw := mat.NewDense(total+s.burnIn, k, nil)

	window := s.period - 1
	for step := 0; step < total+s.burnIn; step++ {
		for i := 0; i < k; i++ {
			w := rng.NormFloat64() * s.scale
			if step == 0 {
				raw.Set(0, i, w)
				continue
			}
			lo := step - window
			if lo < 0 {
				lo = 0
			}
			var sum float64
			for j := lo; j < step; j++ {
				sum += raw.At(j, i)
			}
			raw.Set(step, i, -sum+w)
		}
	}

	return raw.Slice(s.burnIn, total+s.burnIn, 0, k).(*mat.Dense), nil
}
