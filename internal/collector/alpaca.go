package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketMotion/internal/model"
)

// AlpacaFetcher implements Fetcher using the Alpaca market data API. It is
// selected when API credentials are configured.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates a new Alpaca market data fetcher.
func NewAlpacaFetcher(apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// FetchBars downloads daily bars between start and end. The Alpaca client
// manages its own request lifecycle, so ctx is not threaded through.
func (f *AlpacaFetcher) FetchBars(_ context.Context, symbol string, start, end time.Time) ([]model.OHLCV, error) {
	raw, err := f.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca fetch %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("alpaca: no data returned for %s", symbol)
	}
	bars := make([]model.OHLCV, len(raw))
	for i, b := range raw {
		bars[i] = model.OHLCV{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		}
	}
	return bars, nil
}
