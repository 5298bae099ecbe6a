// Package scheduler keeps a dataset CSV fresh on a cron schedule for watch
// mode: each tick re-collects the configured tickers, reshapes the series and
// rewrites the data file.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"MarketMotion/internal/collector"
	"MarketMotion/internal/dataset"
	"MarketMotion/internal/model"
)

// Refresh describes one scheduled dataset rebuild.
type Refresh struct {
	Collector *collector.Collector
	Field     model.Field
	// InitCash > 0 converts prices to portfolio value before writing.
	InitCash float64
	CSVPath  string
}

// Scheduler manages the cron refresh tasks.
type Scheduler struct {
	Cron *cron.Cron
	Ctx  context.Context
	log  *zap.Logger
}

// New creates a Scheduler. The context is passed to every refresh run.
func New(ctx context.Context, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Ctx:  ctx,
		log:  logger,
	}
}

// Register adds a refresh task on the given cron spec (with seconds).
func (s *Scheduler) Register(spec string, r Refresh) error {
	if r.Collector == nil {
		return fmt.Errorf("refresh needs a collector")
	}
	if r.CSVPath == "" {
		return fmt.Errorf("refresh needs a CSV path")
	}
	if !r.Field.Valid() {
		return fmt.Errorf("invalid field %q", r.Field)
	}
	if _, err := s.Cron.AddFunc(spec, func() { s.runRefresh(r) }); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.log.Info("scheduler stopped")
}

// RunNow executes a refresh immediately (for manual trigger / run-on-start).
func (s *Scheduler) RunNow(r Refresh) error {
	return s.refresh(r)
}

func (s *Scheduler) runRefresh(r Refresh) {
	if err := s.refresh(r); err != nil {
		s.log.Error("refresh failed", zap.String("csv", r.CSVPath), zap.Error(err))
	}
}

func (s *Scheduler) refresh(r Refresh) error {
	series, err := r.Collector.Collect(s.Ctx)
	if err != nil {
		return fmt.Errorf("refresh collect: %w", err)
	}
	t, err := dataset.Flatten(series, r.Field)
	if err != nil {
		return fmt.Errorf("refresh flatten: %w", err)
	}
	t = dataset.DropMissing(t)
	if r.InitCash > 0 {
		if t, err = dataset.PortfolioValue(t, r.InitCash); err != nil {
			return fmt.Errorf("refresh portfolio value: %w", err)
		}
	}
	if err := dataset.WriteFile(r.CSVPath, t); err != nil {
		return fmt.Errorf("refresh write: %w", err)
	}
	s.log.Info("dataset refreshed",
		zap.String("csv", r.CSVPath),
		zap.Int("rows", t.Rows()),
		zap.Int("series", t.Cols()))
	return nil
}
