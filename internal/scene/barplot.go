package scene

import (
	"fmt"

	"go.uber.org/zap"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// Barplot races one bar per series through the samples on axes sized to the
// whole table up front.
type Barplot struct {
	opts   Options
	colors []string
	table  *model.PriceTable
	log    *zap.Logger
}

// NewBarplot loads and validates a bar plot scene from a CSV data file.
func NewBarplot(path string, opts Options, logger *zap.Logger) (*Barplot, error) {
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
	if t.Max() <= 0 {
		return nil, fmt.Errorf("data file %q has no positive values to plot", path)
	}
	return &Barplot{opts: opts, colors: colors, table: t, log: logger}, nil
}

func (s *Barplot) Name() string { return "barplot" }

// Render plays the fixed-axes bar script.
func (s *Barplot) Render(eng engine.Engine) error {
	st, err := axis.NewBarState(s.table.Max())
	if err != nil {
		return fmt.Errorf("initialize axes: %w", err)
	}
	st.NumYTicks = s.opts.NumTicks
	s.log.Info("rendering barplot",
		zap.Int("rows", s.table.Rows()),
		zap.Int("series", s.table.Cols()))
	return playBarScript(eng, s.table, s.colors, s.opts, func(i int) axis.State { return st })
}

// barFrame builds the bar chart frame for row i under the given axis state.
// Each bar carries a value label above its top unless labels is false.
func barFrame(t *model.PriceTable, colors []string, opts Options, st axis.State, i int, labels bool) engine.Frame {
	f := engine.Frame{
		Title: opts.Title,
		Bars: &engine.BarChart{
			Names:       append([]string(nil), opts.BarNames...),
			Values:      append([]float64(nil), t.Y[i]...),
			Colors:      colors,
			YRange:      st.YRange(),
			YLabels:     toLabels(axis.ValueLabels(st.YMin, st.YMax, st.NumYTicks, opts.RoundYLabels)),
			Width:       opts.BarWidth,
			FillOpacity: opts.BarFillOpacity,
			StrokeWidth: opts.BarStrokeWidth,
		},
	}
	if labels {
		f.Labels = make([]engine.ValueLabel, t.Cols())
		for j := 0; j < t.Cols(); j++ {
			f.Labels[j] = engine.ValueLabel{
				Point: engine.Point{X: float64(j), Y: t.Y[i][j]},
				Text:  fmtValue(t.Y[i][j]),
			}
		}
	}
	return f
}

// playBarScript runs the bar race: write the background at the first row,
// update the bars once per sample with value labels tracking the bar tops,
// then fade the labels on the final hold. stateAt supplies the axis state to
// use for row i, letting growing scenes rescale mid-race.
func playBarScript(eng engine.Engine, t *model.PriceTable, colors []string, opts Options, stateAt func(i int) axis.State) error {
	if err := eng.Play(barFrame(t, colors, opts, stateAt(0), 0, true), opts.BackgroundRunTime); err != nil {
		return err
	}
	n := t.Rows()
	step := opts.AnimationRunTime / float64(n)
	for i := 1; i < n; i++ {
		if err := eng.Play(barFrame(t, colors, opts, stateAt(i), i, true), step); err != nil {
			return err
		}
	}
	return eng.Play(barFrame(t, colors, opts, stateAt(n-1), n-1, false), opts.WaitRunTime)
}
