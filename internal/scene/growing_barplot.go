package scene

import (
	"fmt"

	"go.uber.org/zap"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// GrowingBarplot races the bars while the y-axis grows with the data, using
// the same look-ahead rescale rule as the growing line plot.
type GrowingBarplot struct {
	opts      Options
	colors    []string
	table     *model.PriceTable
	lookahead int
	log       *zap.Logger
}

// NewGrowingBarplot loads and validates a growing bar plot scene from a CSV
// data file.
func NewGrowingBarplot(path string, opts Options, logger *zap.Logger) (*GrowingBarplot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	t, err := loadTable(path, opts.NumSamples)
	if err != nil {
		return nil, err
	}
	if len(opts.BarNames) == 0 {
		opts.BarNames = append([]string(nil), t.Names...)
	}
	if err := opts.validateBars(t.Cols()); err != nil {
		return nil, err
	}
	colors, err := opts.colorsFor(t.Cols())
	if err != nil {
		return nil, err
	}
	la := opts.NumSamples / opts.NumTicks
	if la < 1 {
		la = 1
	}
	if t.Max() <= 0 {
		return nil, fmt.Errorf("data file %q has no positive values to plot", path)
	}
	return &GrowingBarplot{opts: opts, colors: colors, table: t, lookahead: la, log: logger}, nil
}

func (s *GrowingBarplot) Name() string { return "growing-barplot" }

// Render precomputes the axis state per sample, then plays the bar script
// with those states. Precomputing keeps the race script itself stateless.
func (s *GrowingBarplot) Render(eng engine.Engine) error {
	t := s.table
	n := t.Rows()
	rowMax := t.RowMaxes()

	st, err := axis.NewBarState(axis.WindowMax(rowMax, 3*s.lookahead))
	if err != nil {
		return fmt.Errorf("initialize axes: %w", err)
	}
	states := make([]axis.State, n)
	states[0] = st
	for i := 1; i < n; i++ {
		if rowMax[i] >= st.YMax {
			st = st.GrowY(axis.WindowMax(rowMax, i+s.lookahead), s.opts.NumTicks)
		}
		states[i] = st
	}

	s.log.Info("rendering growing barplot",
		zap.Int("rows", n),
		zap.Int("series", t.Cols()),
		zap.Int("lookahead", s.lookahead))

	return playBarScript(eng, t, s.colors, s.opts, func(i int) axis.State { return states[i] })
}
