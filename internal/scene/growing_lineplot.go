package scene

import (
	"fmt"

	"go.uber.org/zap"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// GrowingLineplot reveals the series sample by sample while both axes grow
// with the data: whenever a newly revealed point reaches the visible maximum,
// the axis gains a tick (up to the configured ceiling) and its range is
// recomputed over everything visible plus a look-ahead window, so the rescale
// lands before the point would clip.
type GrowingLineplot struct {
	opts      Options
	colors    []string
	table     *model.PriceTable
	lookahead int
	log       *zap.Logger
}

// NewGrowingLineplot loads and validates a growing line plot scene from a CSV
// data file.
func NewGrowingLineplot(path string, opts Options, logger *zap.Logger) (*GrowingLineplot, error) {
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
	la := opts.NumSamples / opts.NumTicks
	if la < 1 {
		la = 1
	}
	if t.Max() <= 0 {
		return nil, fmt.Errorf("data file %q has no positive values to plot", path)
	}
	return &GrowingLineplot{opts: opts, colors: colors, table: t, lookahead: la, log: logger}, nil
}

func (s *GrowingLineplot) Name() string { return "growing-lineplot" }

// Render plays the growing script: background with the look-ahead axes, one
// play per revealed sample with the axes re-materialized from the current
// state, then a fade of the dots.
func (s *GrowingLineplot) Render(eng engine.Engine) error {
	t := s.table
	n := t.Rows()
	rowMax := t.RowMaxes()

	window := 3 * s.lookahead
	xInit := window
	if xInit > n-1 {
		xInit = n - 1
	}
	st, err := axis.NewLineState(float64(xInit), axis.WindowMax(rowMax, window))
	if err != nil {
		return fmt.Errorf("initialize axes: %w", err)
	}

	s.log.Info("rendering growing lineplot",
		zap.Int("rows", n),
		zap.Int("series", t.Cols()),
		zap.Int("lookahead", s.lookahead))

	background := engine.Frame{
		Title: s.opts.Title,
		Axes:  axesSpec(st, t.X, s.opts),
		Lines: linePrefixes(t, s.colors, 0),
		Dots:  revealDots(t, s.colors, 0),
	}
	if err := eng.Play(background, s.opts.BackgroundRunTime); err != nil {
		return err
	}

	step := s.opts.AnimationRunTime / float64(n)
	for i := 1; i < n; i++ {
		if rowMax[i] >= st.YMax {
			st = st.GrowY(axis.WindowMax(rowMax, i+s.lookahead), s.opts.NumTicks)
		}
		if float64(i) >= st.XMax {
			hi := i + s.lookahead
			if hi > n {
				hi = n
			}
			st = st.GrowX(float64(hi-1), s.opts.NumTicks)
		}
		frame := engine.Frame{
			Title: s.opts.Title,
			Axes:  axesSpec(st, t.X, s.opts),
			Lines: linePrefixes(t, s.colors, i),
			Dots:  revealDots(t, s.colors, i),
		}
		if err := eng.Play(frame, step); err != nil {
			return err
		}
	}

	final := engine.Frame{
		Title: s.opts.Title,
		Axes:  axesSpec(st, t.X, s.opts),
		Lines: linePrefixes(t, s.colors, n-1),
	}
	return eng.Play(final, s.opts.WaitRunTime)
}
