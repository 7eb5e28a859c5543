package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peter-kozarec/mvgarch/internal/dbg"
	"github.com/peter-kozarec/mvgarch/pkg/data/duckdb"
	"github.com/peter-kozarec/mvgarch/pkg/pipeline"
)

func main() {
	conf, err := loadConfig()
	if err != nil {
		panic(err)
	}

	logger := dbg.NewLogger(conf.Development)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	p, err := pipeline.New(conf.series(), conf.Seed,
		pipeline.WithSampleSize(conf.SampleSize),
		pipeline.WithNoiseStd(conf.NoiseStd))
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	state, err := p.Run(ctx)
	if err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}

	retained := 1.0
	if conf.SampleSize > 0 {
		retained = float64(state.Dataset.N) / float64(conf.SampleSize)
	}
	logger.Info("dataset generated",
		zap.Stringer("run_id", state.RunID),
		zap.Uint64("seed", conf.Seed),
		zap.Int("series", state.Dataset.Series),
		zap.Int("periods", state.Dataset.Periods),
		zap.Int("observations", state.Dataset.N),
		zap.Float64("retained", retained),
	)

	if conf.Database == "" {
		return
	}

	store := duckdb.NewStore(conf.Database)
	if err := store.Open(); err != nil {
		logger.Fatal("error opening store", zap.Error(err))
	}
	defer store.Close()

	if err := store.Init(ctx); err != nil {
		logger.Fatal("error initializing store", zap.Error(err))
	}
	if err := store.SaveDataset(ctx, state.RunID, state.Dataset); err != nil {
		logger.Fatal("error saving dataset", zap.Error(err))
	}
	logger.Info("dataset saved", zap.String("database", conf.Database))
}
