package collector

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"MarketMotion/internal/model"
	"MarketMotion/internal/store"
)

var (
	testStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2020, 1, 11, 0, 0, 0, 0, time.UTC)
)

func TestNew_Validation(t *testing.T) {
	log := zap.NewNop()
	f := &MockFetcher{Price: 100}
	tests := []struct {
		name    string
		tickers []string
		start   time.Time
		end     time.Time
	}{
		{"no tickers", nil, testStart, testEnd},
		{"empty ticker", []string{""}, testStart, testEnd},
		{"duplicate ticker", []string{"AAPL", "AAPL"}, testStart, testEnd},
		{"start after end", []string{"AAPL"}, testEnd, testStart},
		{"start equals end", []string{"AAPL"}, testStart, testStart},
	}
	for _, tt := range tests {
		if _, err := New(f, nil, tt.tickers, tt.start, tt.end, false, log); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	if _, err := New(f, nil, []string{"AAPL"}, testStart, testEnd, false, log); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestCollect_MockBars(t *testing.T) {
	c, err := New(&MockFetcher{Price: 100}, nil, []string{"AAPL", "MSFT"}, testStart, testEnd, false, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	series, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(series.Tickers) != 2 {
		t.Fatalf("tickers = %d, want 2", len(series.Tickers))
	}
	for _, tk := range series.Tickers {
		bars := series.Bars[tk]
		if len(bars) != 10 {
			t.Errorf("%s: %d bars, want 10", tk, len(bars))
		}
		for i := 1; i < len(bars); i++ {
			if bars[i].Time.Before(bars[i-1].Time) {
				t.Fatalf("%s: bars out of order at %d", tk, i)
			}
		}
	}
}

func TestCollect_Rounding(t *testing.T) {
	bars := []model.OHLCV{
		{Time: testStart, Open: 1.2345, High: 2.3456, Low: 0.9876, Close: 1.9999, Volume: 100},
	}
	c, err := New(&MockFetcher{Bars: bars}, nil, []string{"AAPL"}, testStart, testEnd, true, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	series, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	got := series.Bars["AAPL"][0]
	if got.Open != 1.23 || got.High != 2.35 || got.Low != 0.99 || got.Close != 2.00 {
		t.Errorf("rounded bar = %+v", got)
	}
	if got.Volume != 100 {
		t.Errorf("volume changed to %v", got.Volume)
	}
}

// countingFetcher wraps MockFetcher and counts fetches to observe cache hits.
type countingFetcher struct {
	MockFetcher
	calls int
}

func (c *countingFetcher) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	c.calls++
	return c.MockFetcher.FetchBars(ctx, symbol, start, end)
}

// memStore is an in-memory Store for cache behavior tests.
type memStore struct {
	store.NoopStore
	bars map[string][]model.OHLCV
}

func (m *memStore) LoadBars(symbol string, _, _ time.Time) ([]model.OHLCV, error) {
	return m.bars[symbol], nil
}

func (m *memStore) SaveBars(symbol string, _, _ time.Time, bars []model.OHLCV) error {
	if m.bars == nil {
		m.bars = make(map[string][]model.OHLCV)
	}
	m.bars[symbol] = bars
	return nil
}

func TestCollect_UsesCache(t *testing.T) {
	f := &countingFetcher{MockFetcher: MockFetcher{Price: 50}}
	st := &memStore{}
	c, err := New(f, st, []string{"AAPL"}, testStart, testEnd, false, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("first collect: %v", err)
	}
	if _, err := c.Collect(context.Background()); err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if f.calls != 1 {
		t.Errorf("fetch calls = %d, want 1 (second collect should hit the cache)", f.calls)
	}
}
