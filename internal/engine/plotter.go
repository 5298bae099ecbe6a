package engine

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// barSlotWidth is the display width reserved for one bar category.
const barSlotWidth = 40.0

// Plotter rasterizes plays into numbered PNG frames that ffmpeg can stitch,
// e.g.:
//
//	ffmpeg -framerate 30 -i frames/frame_%05d.png -c:v libx264 -pix_fmt yuv420p out.mp4
//
// A play of runTime seconds becomes round(runTime*fps) copies of the same
// still; pacing between plays is what animates the result.
type Plotter struct {
	outDir string
	fps    float64
	width  vg.Length
	height vg.Length
	frames int
	plays  int
	log    *zap.Logger
}

// NewPlotter creates the output directory and a renderer writing into it.
// The camera scale multiplies the base canvas dimensions.
func NewPlotter(outDir string, width, height int, fps, cameraScale float64, logger *zap.Logger) (*Plotter, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("frame dimensions must be positive, got %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %v", fps)
	}
	if cameraScale <= 0 {
		return nil, fmt.Errorf("camera scale must be positive, got %v", cameraScale)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Plotter{
		outDir: outDir,
		fps:    fps,
		width:  vg.Points(float64(width) * cameraScale),
		height: vg.Points(float64(height) * cameraScale),
		log:    logger,
	}, nil
}

// Play renders f once and writes it out round(runTime*fps) times, at least once.
func (p *Plotter) Play(f Frame, runTime float64) error {
	if runTime <= 0 {
		return fmt.Errorf("play run time must be positive, got %v", runTime)
	}
	plt, err := buildPlot(f)
	if err != nil {
		return err
	}
	wt, err := plt.WriterTo(p.width, p.height, "png")
	if err != nil {
		return fmt.Errorf("render frame: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return fmt.Errorf("render frame: %w", err)
	}

	n := int(math.Round(runTime * p.fps))
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		name := filepath.Join(p.outDir, fmt.Sprintf("frame_%05d.png", p.frames))
		if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write frame %d: %w", p.frames, err)
		}
		p.frames++
	}
	p.plays++
	p.log.Debug("played frame", zap.Int("play", p.plays), zap.Int("copies", n))
	return nil
}

// Frames returns how many PNG files have been written so far.
func (p *Plotter) Frames() int { return p.frames }

// Close writes the render manifest next to the frames.
func (p *Plotter) Close() error {
	m := &Manifest{
		Frames: p.frames,
		Plays:  p.plays,
		FPS:    p.fps,
		Stitch: fmt.Sprintf("ffmpeg -framerate %g -i %s -c:v libx264 -pix_fmt yuv420p out.mp4",
			p.fps, filepath.Join(p.outDir, "frame_%05d.png")),
	}
	if err := m.Save(filepath.Join(p.outDir, "manifest.json")); err != nil {
		return err
	}
	p.log.Info("render finished",
		zap.Int("frames", p.frames),
		zap.Int("plays", p.plays),
		zap.String("dir", p.outDir))
	return nil
}

func buildPlot(f Frame) (*plot.Plot, error) {
	plt := plot.New()
	plt.Title.Text = f.Title
	plt.Title.Padding = vg.Points(10)
	plt.Add(plotter.NewGrid())

	if f.Axes != nil {
		applyAxes(plt, f.Axes)
	}
	for _, line := range f.Lines {
		if len(line.Points) == 0 {
			continue
		}
		l, err := plotter.NewLine(toXYs(line.Points))
		if err != nil {
			return nil, fmt.Errorf("build line: %w", err)
		}
		l.LineStyle.Width = vg.Points(1)
		l.LineStyle.Color = parseHex(line.Color, 1)
		plt.Add(l)
	}
	for _, dot := range f.Dots {
		s, err := plotter.NewScatter(toXYs([]Point{dot.Point}))
		if err != nil {
			return nil, fmt.Errorf("build dot: %w", err)
		}
		s.GlyphStyle.Color = parseHex(dot.Color, 1)
		s.GlyphStyle.Radius = vg.Points(dot.Radius)
		plt.Add(s)
	}
	if len(f.Labels) > 0 {
		xyl := plotter.XYLabels{Labels: make([]string, len(f.Labels))}
		pts := make(plotter.XYs, len(f.Labels))
		for i, vl := range f.Labels {
			pts[i] = plotter.XY{X: vl.Point.X, Y: vl.Point.Y}
			xyl.Labels[i] = vl.Text
		}
		xyl.XYs = pts
		labels, err := plotter.NewLabels(xyl)
		if err != nil {
			return nil, fmt.Errorf("build labels: %w", err)
		}
		plt.Add(labels)
	}
	if f.Bars != nil {
		if err := applyBars(plt, f.Bars); err != nil {
			return nil, err
		}
	}
	return plt, nil
}

func applyAxes(plt *plot.Plot, ax *AxesSpec) {
	plt.X.Min, plt.X.Max = ax.XRange[0], ax.XRange[1]
	plt.Y.Min, plt.Y.Max = ax.YRange[0], ax.YRange[1]
	plt.X.Label.Text = ax.XName
	plt.Y.Label.Text = ax.YName
	plt.X.Tick.Marker = plot.ConstantTicks(toTicks(ax.XLabels))
	plt.Y.Tick.Marker = plot.ConstantTicks(toTicks(ax.YLabels))
}

func applyBars(plt *plot.Plot, bc *BarChart) error {
	width := vg.Points(barSlotWidth * bc.Width)
	for i, v := range bc.Values {
		bar, err := plotter.NewBarChart(plotter.Values{v}, width)
		if err != nil {
			return fmt.Errorf("build bar %d: %w", i, err)
		}
		bar.XMin = float64(i)
		bar.Color = parseHex(bc.Colors[i], bc.FillOpacity)
		bar.LineStyle.Width = vg.Points(bc.StrokeWidth)
		bar.LineStyle.Color = parseHex(bc.Colors[i], 1)
		plt.Add(bar)
	}
	plt.NominalX(bc.Names...)
	plt.Y.Min, plt.Y.Max = bc.YRange[0], bc.YRange[1]
	plt.Y.Tick.Marker = plot.ConstantTicks(toTicks(bc.YLabels))
	return nil
}

func toXYs(pts []Point) plotter.XYs {
	xys := make(plotter.XYs, len(pts))
	for i, pt := range pts {
		xys[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	return xys
}

func toTicks(labels []Label) []plot.Tick {
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i] = plot.Tick{Value: l.Pos, Label: l.Text}
	}
	return ticks
}

// parseHex decodes #rrggbb with an opacity in [0, 1]. Unparseable colors fall
// back to opaque black rather than failing a render mid-sequence.
func parseHex(s string, opacity float64) color.Color {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		r, g, b = 0, 0, 0
	}
	a := uint8(math.Round(opacity * 255))
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
