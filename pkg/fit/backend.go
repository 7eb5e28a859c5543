package fit

import "context"

// Posterior holds the named draw vectors returned by the fitting backend.
type Posterior struct {
	Draws map[string][]float64
}

// Backend is the external model fitter. It consumes a fixed-schema Dataset
// and returns posterior draws; the sampling algorithm itself lives outside
// this repository.
type Backend interface {
	Fit(ctx context.Context, d Dataset) (Posterior, error)
}
