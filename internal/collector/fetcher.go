package collector

import (
	"context"
	"time"

	"MarketMotion/internal/model"
)

// Fetcher defines the interface for fetching daily market data over a date
// range. Bars are returned time-ascending.
type Fetcher interface {
	FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error)
	Name() string
}
