package model

import (
	"fmt"
	"time"
)

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Field names one value of an OHLCV bar.
type Field string

const (
	FieldOpen   Field = "Open"
	FieldHigh   Field = "High"
	FieldLow    Field = "Low"
	FieldClose  Field = "Close"
	FieldVolume Field = "Volume"
)

// Valid reports whether f names a known bar field.
func (f Field) Valid() bool {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return true
	}
	return false
}

// Value extracts the named field from the bar.
func (b OHLCV) Value(f Field) float64 {
	switch f {
	case FieldOpen:
		return b.Open
	case FieldHigh:
		return b.High
	case FieldLow:
		return b.Low
	case FieldClose:
		return b.Close
	case FieldVolume:
		return b.Volume
	}
	return 0
}

// PriceSeries holds raw bars per ticker, keyed by the order tickers were requested.
type PriceSeries struct {
	Tickers   []string
	Bars      map[string][]OHLCV
	FetchedAt time.Time
}

// Validate checks the wide-table invariants: unique tickers, bars present and
// time-ascending for every ticker.
func (s *PriceSeries) Validate() error {
	if len(s.Tickers) == 0 {
		return fmt.Errorf("price series has no tickers")
	}
	seen := make(map[string]bool, len(s.Tickers))
	for _, tk := range s.Tickers {
		if seen[tk] {
			return fmt.Errorf("duplicate ticker %q", tk)
		}
		seen[tk] = true
		bars, ok := s.Bars[tk]
		if !ok || len(bars) == 0 {
			return fmt.Errorf("no bars for ticker %q", tk)
		}
		for i := 1; i < len(bars); i++ {
			if bars[i].Time.Before(bars[i-1].Time) {
				return fmt.Errorf("bars for %q not time-ordered at index %d", tk, i)
			}
		}
	}
	return nil
}
