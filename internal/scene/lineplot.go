package scene

import (
	"fmt"

	"go.uber.org/zap"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// Lineplot draws every series on fixed axes sized to the whole table and
// reveals them sample by sample.
type Lineplot struct {
	opts   Options
	colors []string
	table  *model.PriceTable
	log    *zap.Logger
}

// NewLineplot loads and validates a line plot scene from a CSV data file.
func NewLineplot(path string, opts Options, logger *zap.Logger) (*Lineplot, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	t, err := loadTable(path, opts.NumSamples)
	if err != nil {
		return nil, err
	}
	colors, err := opts.colorsFor(t.Cols())
	if err != nil {
		return nil, err
	}
	if t.Max() <= 0 {
		return nil, fmt.Errorf("data file %q has no positive values to plot", path)
	}
	return &Lineplot{opts: opts, colors: colors, table: t, log: logger}, nil
}

func (s *Lineplot) Name() string { return "lineplot" }

// Render plays the three-phase script against eng.
func (s *Lineplot) Render(eng engine.Engine) error {
	t := s.table
	st := axis.State{
		XMax:      float64(t.Rows() - 1),
		NumXTicks: s.opts.NumTicks,
		YMax:      t.Max(),
		NumYTicks: s.opts.NumTicks,
	}
	s.log.Info("rendering lineplot",
		zap.Int("rows", t.Rows()),
		zap.Int("series", t.Cols()))
	return playLineScript(eng, t, s.colors, s.opts, axesSpec(st, t.X, s.opts))
}
