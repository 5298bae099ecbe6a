package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"MarketMotion/internal/model"
	"MarketMotion/internal/store"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _ string, start, end time.Time) ([]model.OHLCV, error) {
	if m.Bars != nil {
		return m.Bars, nil
	}
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		days = 1
	}
	return generateMockBars(m.Price, start, days), nil
}

func generateMockBars(basePrice float64, start time.Time, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector orchestrates multi-ticker downloads into a wide price table,
// going through the bar cache when one is configured.
type Collector struct {
	Fetcher  Fetcher
	Store    store.Store
	Tickers  []string
	Start    time.Time
	End      time.Time
	Rounding bool
	log      *zap.Logger
}

// New creates a Collector. Tickers must be non-empty and unique, and the
// date range must be ordered.
func New(fetcher Fetcher, st store.Store, tickers []string, start, end time.Time, rounding bool, logger *zap.Logger) (*Collector, error) {
	if len(tickers) == 0 {
		return nil, fmt.Errorf("at least one ticker is required")
	}
	seen := make(map[string]bool, len(tickers))
	for _, tk := range tickers {
		if tk == "" {
			return nil, fmt.Errorf("empty ticker")
		}
		if seen[tk] {
			return nil, fmt.Errorf("duplicate ticker %q", tk)
		}
		seen[tk] = true
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("start date %s is not before end date %s",
			start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if st == nil {
		st = store.NewNoopStore()
	}
	return &Collector{
		Fetcher:  fetcher,
		Store:    st,
		Tickers:  tickers,
		Start:    start,
		End:      end,
		Rounding: rounding,
		log:      logger,
	}, nil
}

// Collect fetches bars for every ticker and assembles the wide series. One
// blocking request per ticker, no retries; any failure aborts the whole
// collection.
func (c *Collector) Collect(ctx context.Context) (*model.PriceSeries, error) {
	series := &model.PriceSeries{
		Tickers:   append([]string(nil), c.Tickers...),
		Bars:      make(map[string][]model.OHLCV, len(c.Tickers)),
		FetchedAt: time.Now(),
	}
	for _, tk := range c.Tickers {
		bars, err := c.Store.LoadBars(tk, c.Start, c.End)
		if err != nil {
			return nil, fmt.Errorf("load cached bars for %s: %w", tk, err)
		}
		if bars == nil {
			bars, err = c.Fetcher.FetchBars(ctx, tk, c.Start, c.End)
			if err != nil {
				return nil, fmt.Errorf("fetch bars for %s: %w", tk, err)
			}
			if err := c.Store.SaveBars(tk, c.Start, c.End, bars); err != nil {
				return nil, fmt.Errorf("cache bars for %s: %w", tk, err)
			}
			c.log.Info("fetched bars",
				zap.String("ticker", tk),
				zap.String("source", c.Fetcher.Name()),
				zap.Int("bars", len(bars)))
		} else {
			c.log.Info("cache hit", zap.String("ticker", tk), zap.Int("bars", len(bars)))
		}
		if c.Rounding {
			bars = roundBars(bars)
		}
		series.Bars[tk] = bars
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("collect: %w", err)
	}
	return series, nil
}

// roundBars rounds all prices to 2 decimal places. Volume is left as is.
func roundBars(bars []model.OHLCV) []model.OHLCV {
	out := make([]model.OHLCV, len(bars))
	for i, b := range bars {
		out[i] = model.OHLCV{
			Time:   b.Time,
			Open:   round2(b.Open),
			High:   round2(b.High),
			Low:    round2(b.Low),
			Close:  round2(b.Close),
			Volume: b.Volume,
		}
	}
	return out
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
