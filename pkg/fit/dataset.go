// Package fit defines the payload contract with the external Bayesian
// fitting backend. Field names and shapes are binding; the backend rejects
// anything that deviates from this schema.
package fit

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/peter-kozarec/mvgarch/pkg/compose"
	"github.com/peter-kozarec/mvgarch/pkg/series"
)

// Dataset is the denormalized sample handed to the fitter: flat target,
// index and weight lists of length N plus a Periods x Features predictor
// matrix. Period and SeriesIdx are 1-based.
type Dataset struct {
	N        int
	Series   int
	Periods  int
	Features int
	Horizon  int

	AROrder int
	GarchP  int
	GarchQ  int

	SeasonalityCount   int
	SeasonalityPeriods []int

	PriceMoveScale float64
	CyclePrior     float64
	CorrPrior      float64

	Y         []float64
	Period    []int
	SeriesIdx []int
	Weight    []float64

	X *mat.Dense
}

// Build assembles the payload from the sampled observations. Every
// observation weight defaults to 1.0.
func Build(cfg series.Config, obs []compose.Observation, predictors *mat.Dense) Dataset {
	d := Dataset{
		N:        len(obs),
		Series:   cfg.NumSeries(),
		Periods:  cfg.TotalPeriods(),
		Features: cfg.Features,
		Horizon:  cfg.Horizon,

		AROrder: cfg.AROrder,
		GarchP:  cfg.GarchP,
		GarchQ:  cfg.GarchQ,

		SeasonalityCount:   len(cfg.SeasonalityPeriods),
		SeasonalityPeriods: append([]int(nil), cfg.SeasonalityPeriods...),

		PriceMoveScale: cfg.PriceMoveScale,
		CyclePrior:     cfg.CyclePrior,
		CorrPrior:      cfg.CorrPrior,

		Y:         make([]float64, len(obs)),
		Period:    make([]int, len(obs)),
		SeriesIdx: make([]int, len(obs)),
		Weight:    make([]float64, len(obs)),

		X: predictors,
	}
	for i, o := range obs {
		d.Y[i] = o.Value
		d.Period[i] = o.Period + 1
		d.SeriesIdx[i] = o.Series + 1
		d.Weight[i] = 1.0
	}
	return d
}

// RandomPredictors draws the auxiliary periods x features predictor matrix,
// iid standard normal, independent of the price path.
func RandomPredictors(periods, features int, rng *rand.Rand) *mat.Dense {
	x := mat.NewDense(periods, features, nil)
	for r := 0; r < periods; r++ {
		for c := 0; c < features; c++ {
			x.Set(r, c, rng.NormFloat64())
		}
	}
	return x
}

// Validate cross-checks the flat lists against N and the predictor matrix
// against the declared shape.
func (d Dataset) Validate() error {
	if len(d.Y) != d.N || len(d.Period) != d.N || len(d.SeriesIdx) != d.N || len(d.Weight) != d.N {
		return fmt.Errorf("fit: flat lists must all have length %d, got y=%d period=%d series=%d weight=%d",
			d.N, len(d.Y), len(d.Period), len(d.SeriesIdx), len(d.Weight))
	}
	if d.SeasonalityCount != len(d.SeasonalityPeriods) {
		return fmt.Errorf("fit: seasonality count %d does not match %d periods",
			d.SeasonalityCount, len(d.SeasonalityPeriods))
	}
	if d.X == nil {
		return fmt.Errorf("fit: predictor matrix is required")
	}
	rows, cols := d.X.Dims()
	if rows != d.Periods || cols != d.Features {
		return fmt.Errorf("fit: predictor matrix is %dx%d, want %dx%d", rows, cols, d.Periods, d.Features)
	}
	for i := 0; i < d.N; i++ {
		if d.Period[i] < 1 || d.Period[i] > d.Periods {
			return fmt.Errorf("fit: observation %d period index %d out of range [1,%d]", i, d.Period[i], d.Periods)
		}
		if d.SeriesIdx[i] < 1 || d.SeriesIdx[i] > d.Series {
			return fmt.Errorf("fit: observation %d series index %d out of range [1,%d]", i, d.SeriesIdx[i], d.Series)
		}
	}
	return nil
}
