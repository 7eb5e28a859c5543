package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/peter-kozarec/mvgarch/pkg/compose"
	"github.com/peter-kozarec/mvgarch/pkg/pipeline"
	"github.com/peter-kozarec/mvgarch/pkg/series"
)

type config struct {
	Development bool   `mapstructure:"development"`
	Seed        uint64 `mapstructure:"seed"`

	Periods            int   `mapstructure:"periods"`
	Horizon            int   `mapstructure:"horizon"`
	SeasonalityPeriods []int `mapstructure:"seasonality_periods"`
	AROrder            int   `mapstructure:"ar_order"`
	GarchP             int   `mapstructure:"garch_p"`
	GarchQ             int   `mapstructure:"garch_q"`
	Features           int   `mapstructure:"features"`

	CorrPrior        float64 `mapstructure:"corr_prior"`
	DegreesOfFreedom float64 `mapstructure:"degrees_of_freedom"`
	PriceMoveScale   float64 `mapstructure:"price_move_scale"`
	CyclePrior       float64 `mapstructure:"cycle_prior"`

	SampleSize int     `mapstructure:"sample_size"`
	NoiseStd   float64 `mapstructure:"noise_std"`

	Database string `mapstructure:"database"`
}

func loadConfig() (config, error) {
	v := viper.New()

	v.SetDefault("development", true)
	v.SetDefault("seed", 0)
	v.SetDefault("periods", 500)
	v.SetDefault("horizon", 30)
	v.SetDefault("seasonality_periods", []int{4, 12})
	v.SetDefault("ar_order", 3)
	v.SetDefault("garch_p", 1)
	v.SetDefault("garch_q", 1)
	v.SetDefault("features", 2)
	v.SetDefault("corr_prior", 2.0)
	v.SetDefault("degrees_of_freedom", 4.0)
	v.SetDefault("price_move_scale", 0.01)
	v.SetDefault("cycle_prior", 0.5)
	v.SetDefault("sample_size", pipeline.DefaultSampleSize)
	v.SetDefault("noise_std", compose.DefaultNoiseStd)
	v.SetDefault("database", "")

	v.SetConfigName("simfit")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("SIMFIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if c.Seed == 0 {
		c.Seed = uint64(time.Now().UnixNano())
	}
	return c, nil
}

func (c config) series() series.Config {
	return series.Config{
		Periods:            c.Periods,
		Horizon:            c.Horizon,
		SeasonalityPeriods: c.SeasonalityPeriods,
		AROrder:            c.AROrder,
		GarchP:             c.GarchP,
		GarchQ:             c.GarchQ,
		Features:           c.Features,
		CorrPrior:          c.CorrPrior,
		DegreesOfFreedom:   c.DegreesOfFreedom,
		PriceMoveScale:     c.PriceMoveScale,
		CyclePrior:         c.CyclePrior,
	}
}
