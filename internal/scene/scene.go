package scene

import (
	"fmt"
	"strconv"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/dataset"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// dotRadius is the glyph radius (display points) for revealed data points.
const dotRadius = 1.5

// Scene is a renderable visualization.
type Scene interface {
	Name() string
	Render(eng engine.Engine) error
}

// loadTable reads a CSV data file, drops incomplete rows and downsamples it.
// Scenes need at least two rows to animate between.
func loadTable(path string, numSamples int) (*model.PriceTable, error) {
	t, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t = dataset.DropMissing(t)
	if t.Rows() < 2 {
		return nil, fmt.Errorf("data file %q has fewer than two complete rows", path)
	}
	return dataset.Sample(t, numSamples)
}

func toLabels(ticks []axis.Tick) []engine.Label {
	labels := make([]engine.Label, len(ticks))
	for i, t := range ticks {
		labels[i] = engine.Label{Pos: t.Pos, Text: t.Label}
	}
	return labels
}

// axesSpec materializes an axis state into the renderable axes description.
// X positions are sample indices labeled with the period values behind them.
func axesSpec(st axis.State, x []int, opts Options) *engine.AxesSpec {
	return &engine.AxesSpec{
		XRange:  st.XRange(),
		YRange:  st.YRange(),
		XLabels: toLabels(axis.IndexLabels(x, st.XMin, st.XMax, st.NumXTicks)),
		YLabels: toLabels(axis.ValueLabels(st.YMin, st.YMax, st.NumYTicks, opts.RoundYLabels)),
		XName:   opts.XLabel,
		YName:   opts.YLabel,
	}
}

func fmtValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// linePrefixes returns each column's polyline up to and including row i.
func linePrefixes(t *model.PriceTable, colors []string, i int) []engine.Line {
	lines := make([]engine.Line, t.Cols())
	for j := range lines {
		pts := make([]engine.Point, i+1)
		for k := 0; k <= i; k++ {
			pts[k] = engine.Point{X: float64(k), Y: t.Y[k][j]}
		}
		lines[j] = engine.Line{Color: colors[j], Points: pts}
	}
	return lines
}

// revealDots returns a dot for every revealed point of every column.
func revealDots(t *model.PriceTable, colors []string, i int) []engine.Dot {
	dots := make([]engine.Dot, 0, (i+1)*t.Cols())
	for j := 0; j < t.Cols(); j++ {
		for k := 0; k <= i; k++ {
			dots = append(dots, engine.Dot{
				Point:  engine.Point{X: float64(k), Y: t.Y[k][j]},
				Color:  colors[j],
				Radius: dotRadius,
			})
		}
	}
	return dots
}

// headDots returns one tracking dot per column at row i.
func headDots(t *model.PriceTable, colors []string, i int) []engine.Dot {
	dots := make([]engine.Dot, t.Cols())
	for j := range dots {
		dots[j] = engine.Dot{
			Point:  engine.Point{X: float64(i), Y: t.Y[i][j]},
			Color:  colors[j],
			Radius: 2 * dotRadius,
		}
	}
	return dots
}

// headLabels returns the tracked value label for every column at row i.
func headLabels(t *model.PriceTable, i int) []engine.ValueLabel {
	labels := make([]engine.ValueLabel, t.Cols())
	for j := range labels {
		labels[j] = engine.ValueLabel{
			Point: engine.Point{X: float64(i), Y: t.Y[i][j]},
			Text:  fmtValue(t.Y[i][j]),
		}
	}
	return labels
}

// playLineScript runs the fixed-axes line script: write the background,
// reveal the lines sample by sample with tracking dots and value labels,
// then fade the trackers out.
func playLineScript(eng engine.Engine, t *model.PriceTable, colors []string, opts Options, ax *engine.AxesSpec) error {
	if err := eng.Play(engine.Frame{Title: opts.Title, Axes: ax}, opts.BackgroundRunTime); err != nil {
		return err
	}
	n := t.Rows()
	step := opts.AnimationRunTime / float64(n)
	for i := 0; i < n; i++ {
		frame := engine.Frame{
			Title:  opts.Title,
			Axes:   ax,
			Lines:  linePrefixes(t, colors, i),
			Dots:   headDots(t, colors, i),
			Labels: headLabels(t, i),
		}
		if err := eng.Play(frame, step); err != nil {
			return err
		}
	}
	final := engine.Frame{
		Title: opts.Title,
		Axes:  ax,
		Lines: linePrefixes(t, colors, n-1),
	}
	return eng.Play(final, opts.WaitRunTime)
}
