// Package duckdb persists generated datasets so a fitting run can be
// replayed without regenerating the sample.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/peter-kozarec/mvgarch/pkg/fit"
)

// Observed values are stored at a fixed scale.
const valueScale = 5

type Store struct {
	dataSourceName string
	db             *sql.DB
}

func NewStore(dataSourceName string) *Store {
	return &Store{
		dataSourceName: dataSourceName,
	}
}

func (s *Store) Open() error {
	db, err := sql.Open("duckdb", s.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() {
	_ = s.db.Close()
}

// Init creates the run and observation tables.
func (s *Store) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
	run_id              VARCHAR PRIMARY KEY,
	n                   INTEGER,
	series              INTEGER,
	periods             INTEGER,
	features            INTEGER,
	horizon             INTEGER,
	ar_order            INTEGER,
	garch_p             INTEGER,
	garch_q             INTEGER,
	seasonality_periods VARCHAR,
	price_move_scale    DOUBLE,
	cycle_prior         DOUBLE,
	corr_prior          DOUBLE
);
CREATE TABLE IF NOT EXISTS observations (
	run_id  VARCHAR,
	period  INTEGER,
	series  INTEGER,
	value   DECIMAL(18,5),
	weight  DOUBLE
);`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("error creating tables: %w", err)
	}
	return nil
}

// SaveDataset writes the run metadata and every observation row in one
// transaction.
func (s *Store) SaveDataset(ctx context.Context, runID uuid.UUID, d fit.Dataset) error {
	if err := d.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	periods := make([]string, len(d.SeasonalityPeriods))
	for i, p := range d.SeasonalityPeriods {
		periods[i] = fmt.Sprintf("%d", p)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID.String(), d.N, d.Series, d.Periods, d.Features, d.Horizon,
		d.AROrder, d.GarchP, d.GarchQ, strings.Join(periods, ","),
		d.PriceMoveScale, d.CyclePrior, d.CorrPrior)
	if err != nil {
		return fmt.Errorf("error inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO observations VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := 0; i < d.N; i++ {
		value, err := decimal.NewFromFloat64(d.Y[i])
		if err != nil {
			return fmt.Errorf("error converting observation %d: %w", i, err)
		}
		_, err = stmt.ExecContext(ctx,
			runID.String(), d.Period[i], d.SeriesIdx[i], value.Round(valueScale).String(), d.Weight[i])
		if err != nil {
			return fmt.Errorf("error inserting observation %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// LoadObservations streams the stored rows of one run back to the handler in
// period order.
func (s *Store) LoadObservations(ctx context.Context, runID uuid.UUID, handler func(period, series int, value, weight float64) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT period, series, value, weight FROM observations WHERE run_id = ? ORDER BY period, series`,
		runID.String())
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var period, series int
		var value, weight float64
		if err := rows.Scan(&period, &series, &value, &weight); err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := handler(period, series, value, weight); err != nil {
			return fmt.Errorf("error processing observation: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}
	return nil
}
