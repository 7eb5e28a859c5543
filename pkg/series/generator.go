// Package series implements the four stochastic component generators of the
// structural decomposition: a mean-reverting trend, a dummy-variable seasonal,
// a damped trigonometric cycle and GARCH(1,1) volatility innovations. Each
// generator produces a TotalPeriods x K matrix of component values; the
// composite price path is assembled from their sum in pkg/compose.
package series

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Generator is the contract shared by all components. corr is the shared
// cross-series correlation structure; implementations that model their
// series independently accept nil and ignore it.
type Generator interface {
	Name() string
	Generate(cfg Config, corr mat.Symmetric, rng *rand.Rand) (*mat.Dense, error)
}
