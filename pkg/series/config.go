package series

import "fmt"

// Config holds every parameter of one generation run. It is read once at
// start and never mutated; the number of series K is driven by the length
// of the seasonality-period array.
type Config struct {
	Periods            int
	Horizon            int
	SeasonalityPeriods []int
	AROrder            int
	GarchP             int
	GarchQ             int
	Features           int

	CorrPrior        float64
	DegreesOfFreedom float64
	PriceMoveScale   float64
	CyclePrior       float64
}

func (c Config) NumSeries() int {
	return len(c.SeasonalityPeriods)
}

// TotalPeriods covers both the historical window and the forecast horizon.
func (c Config) TotalPeriods() int {
	return c.Periods + c.Horizon
}

// Validate fails fast on the first parameter that violates its precondition,
// naming it, rather than letting a recursion propagate NaNs.
func (c Config) Validate() error {
	if c.Periods < 1 {
		return fmt.Errorf("series: periods must be at least 1, got %d", c.Periods)
	}
	if c.Horizon < 0 {
		return fmt.Errorf("series: horizon must not be negative, got %d", c.Horizon)
	}
	if len(c.SeasonalityPeriods) < 1 {
		return fmt.Errorf("series: seasonality periods must have at least 1 entry")
	}
	for i, s := range c.SeasonalityPeriods {
		if s < 2 {
			return fmt.Errorf("series: seasonality period %d must be at least 2, got %d", i, s)
		}
	}
	if c.AROrder < 1 {
		return fmt.Errorf("series: ar order must be at least 1, got %d", c.AROrder)
	}
	if c.GarchP < 1 {
		return fmt.Errorf("series: garch p must be at least 1, got %d", c.GarchP)
	}
	if c.GarchQ < 1 {
		return fmt.Errorf("series: garch q must be at least 1, got %d", c.GarchQ)
	}
	if c.Features < 1 {
		return fmt.Errorf("series: features must be at least 1, got %d", c.Features)
	}
	if c.CorrPrior <= 0 {
		return fmt.Errorf("series: correlation prior must be positive, got %g", c.CorrPrior)
	}
	if c.DegreesOfFreedom <= 0 {
		return fmt.Errorf("series: degrees of freedom must be positive, got %g", c.DegreesOfFreedom)
	}
	if c.PriceMoveScale <= 0 {
		return fmt.Errorf("series: price move scale must be positive, got %g", c.PriceMoveScale)
	}
	if c.CyclePrior <= 0 {
		return fmt.Errorf("series: cycle prior must be positive, got %g", c.CyclePrior)
	}
	return nil
}
