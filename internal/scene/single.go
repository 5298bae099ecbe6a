package scene

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/collector"
	"MarketMotion/internal/dataset"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// Trend colors for the single-ticker scene.
const (
	trendUpColor   = "#1b9e4b"
	trendDownColor = "#ff4124"
)

// SingleStockPrice plots one freshly fetched ticker on fixed axes, coloring
// the line green when the last sample is at or above the first and red
// otherwise.
type SingleStockPrice struct {
	opts   Options
	color  string
	table  *model.PriceTable
	ticker string
	log    *zap.Logger
}

// NewSingleStockPrice fetches the ticker through c, flattens it on field and
// builds the scene. c must be configured with exactly one ticker.
func NewSingleStockPrice(ctx context.Context, c *collector.Collector, field model.Field, opts Options, logger *zap.Logger) (*SingleStockPrice, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(c.Tickers) != 1 {
		return nil, fmt.Errorf("single stock scene needs exactly one ticker, got %d", len(c.Tickers))
	}
	series, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}
	t, err := dataset.Flatten(series, field)
	if err != nil {
		return nil, err
	}
	t = dataset.DropMissing(t)
	if t.Rows() < 2 {
		return nil, fmt.Errorf("ticker %s has fewer than two complete periods", c.Tickers[0])
	}
	t, err = dataset.Sample(t, opts.NumSamples)
	if err != nil {
		return nil, err
	}
	if t.Max() <= 0 {
		return nil, fmt.Errorf("ticker %s has no positive values to plot", c.Tickers[0])
	}

	col := t.Column(0)
	color := trendUpColor
	if col[len(col)-1] < col[0] {
		color = trendDownColor
	}
	return &SingleStockPrice{
		opts:   opts,
		color:  color,
		table:  t,
		ticker: c.Tickers[0],
		log:    logger,
	}, nil
}

func (s *SingleStockPrice) Name() string { return "single-stock-price" }

// Render plays the same three-phase script as Lineplot with the trend color.
func (s *SingleStockPrice) Render(eng engine.Engine) error {
	t := s.table
	st := axis.State{
		XMax:      float64(t.Rows() - 1),
		NumXTicks: s.opts.NumTicks,
		YMax:      t.Max(),
		NumYTicks: s.opts.NumTicks,
	}
	s.log.Info("rendering single stock price",
		zap.String("ticker", s.ticker),
		zap.Int("rows", t.Rows()),
		zap.String("color", s.color))
	return playLineScript(eng, t, []string{s.color}, s.opts, axesSpec(st, t.X, s.opts))
}
