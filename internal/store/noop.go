package store

import (
	"time"

	"MarketMotion/internal/model"
)

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) LoadBars(_ string, _, _ time.Time) ([]model.OHLCV, error) { return nil, nil }
func (n *NoopStore) SaveBars(_ string, _, _ time.Time, _ []model.OHLCV) error { return nil }
func (n *NoopStore) RecordRender(_ *RenderEvent) error                        { return nil }
func (n *NoopStore) Close() error                                             { return nil }
