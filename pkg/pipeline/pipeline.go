// Package pipeline runs the generation stages in their one valid order:
// correlation, trend, seasonal, cycle, innovation, compose, sample. Later
// stages consume only the outputs of strictly earlier ones, and every stage
// draws from the single shared random stream, so stage order and draw counts
// are part of the reproducibility contract.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/peter-kozarec/mvgarch/pkg/compose"
	"github.com/peter-kozarec/mvgarch/pkg/fit"
	"github.com/peter-kozarec/mvgarch/pkg/randmat"
	"github.com/peter-kozarec/mvgarch/pkg/series"
)

const DefaultSampleSize = 500

// State accumulates the outputs of completed stages.
type State struct {
	Config series.Config
	RunID  uuid.UUID

	Corr       *mat.SymDense
	Trend      *mat.Dense
	Seasonal   *mat.Dense
	Cycle      *mat.Dense
	Innovation *mat.Dense

	Flux   *mat.Dense
	Start  []float64
	Prices *mat.Dense

	Observations []compose.Observation
	Dataset      fit.Dataset
}

// Stage is one named step of the run.
type Stage struct {
	Name string
	Run  func(*State) error
}

type Option func(*Pipeline)

func WithSampleSize(n int) Option {
	return func(p *Pipeline) {
		p.sampleN = n
	}
}

func WithNoiseStd(std float64) Option {
	return func(p *Pipeline) {
		p.noiseStd = std
	}
}

type Pipeline struct {
	cfg      series.Config
	rng      *rand.Rand
	sampleN  int
	noiseStd float64
	stages   []Stage
}

// New validates the configuration and seeds the shared random stream.
func New(cfg series.Config, seed uint64, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		sampleN:  DefaultSampleSize,
		noiseStd: compose.DefaultNoiseStd,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.stages = p.defaultStages()
	return p, nil
}

func (p *Pipeline) defaultStages() []Stage {
	generate := func(dst **mat.Dense, gen series.Generator, corr mat.Symmetric) func(*State) error {
		return func(s *State) error {
			out, err := gen.Generate(s.Config, corr, p.rng)
			if err != nil {
				return err
			}
			*dst = out
			return nil
		}
	}

	return []Stage{
		{Name: "correlation", Run: func(s *State) error {
			corr, err := randmat.Sample(s.Config.NumSeries(), s.Config.CorrPrior, p.rng)
			if err != nil {
				return err
			}
			s.Corr = corr
			return nil
		}},
		{Name: "trend", Run: func(s *State) error {
			gen := series.RandomTrend(s.Config, p.rng)
			return generate(&s.Trend, gen, s.Corr)(s)
		}},
		{Name: "seasonal", Run: func(s *State) error {
			gen, err := series.NewSeasonal(s.Config.SeasonalityPeriods[0], s.Config.PriceMoveScale)
			if err != nil {
				return err
			}
			return generate(&s.Seasonal, gen, nil)(s)
		}},
		{Name: "cycle", Run: func(s *State) error {
			gen := series.RandomCycle(s.Config, p.rng)
			return generate(&s.Cycle, gen, nil)(s)
		}},
		{Name: "innovation", Run: func(s *State) error {
			gen := series.RandomGARCH(s.Config, p.rng)
			return generate(&s.Innovation, gen, nil)(s)
		}},
		{Name: "compose", Run: func(s *State) error {
			flux, err := compose.Sum(s.Trend, s.Seasonal, s.Cycle, s.Innovation)
			if err != nil {
				return err
			}
			start := compose.RandomStart(s.Config.NumSeries(), p.rng)
			prices, err := compose.CumLogPath(flux, start)
			if err != nil {
				return err
			}
			s.Flux, s.Start, s.Prices = flux, start, prices
			return nil
		}},
		{Name: "sample", Run: func(s *State) error {
			obs, err := compose.SampleObservations(s.Prices, p.sampleN, p.noiseStd, p.rng)
			if err != nil {
				return err
			}
			x := fit.RandomPredictors(s.Config.TotalPeriods(), s.Config.Features, p.rng)
			s.Observations = obs
			s.Dataset = fit.Build(s.Config, obs, x)
			return s.Dataset.Validate()
		}},
	}
}

// Run executes the stages sequentially, stopping on the first error or on
// context cancellation.
func (p *Pipeline) Run(ctx context.Context) (*State, error) {
	s := &State{
		Config: p.cfg,
		RunID:  uuid.Must(uuid.NewV7()),
	}

	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		if err := stage.Run(s); err != nil {
			return nil, fmt.Errorf("pipeline: stage %s: %w", stage.Name, err)
		}
		slog.Debug("stage complete", "stage", stage.Name, "elapsed", time.Since(start))
	}
	return s, nil
}
