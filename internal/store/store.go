package store

import (
	"time"

	"MarketMotion/internal/model"
)

// RenderEvent records one finished render for later inspection.
type RenderEvent struct {
	Scene    string
	Output   string
	Frames   int
	Duration time.Duration
}

// Store caches downloaded bars and persists render history. A cache entry is
// keyed by the exact (symbol, start, end) request; LoadBars returns
// (nil, nil) on a miss.
type Store interface {
	LoadBars(symbol string, start, end time.Time) ([]model.OHLCV, error)
	SaveBars(symbol string, start, end time.Time, bars []model.OHLCV) error
	RecordRender(evt *RenderEvent) error
	Close() error
}
