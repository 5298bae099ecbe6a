package scene

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"MarketMotion/internal/collector"
	"MarketMotion/internal/engine"
	"MarketMotion/internal/model"
)

// writeTestCSV writes a rows x 2 data file with slowly rising prices and
// returns its path.
func writeTestCSV(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("X,AAPL,MSFT\n")
	for i := 0; i < rows; i++ {
		b.WriteString(strconv.Itoa(2000+i) + "," +
			strconv.FormatFloat(10+float64(i), 'f', -1, 64) + "," +
			strconv.FormatFloat(20+float64(i)*2, 'f', -1, 64) + "\n")
	}
	path := filepath.Join(t.TempDir(), "prices.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write test csv: %v", err)
	}
	return path
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.NumSamples = 10
	opts.NumTicks = 5
	return opts
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"zero background run time", func(o *Options) { o.BackgroundRunTime = 0 }},
		{"negative animation run time", func(o *Options) { o.AnimationRunTime = -1 }},
		{"zero wait run time", func(o *Options) { o.WaitRunTime = 0 }},
		{"zero camera scale", func(o *Options) { o.CameraScale = 0 }},
		{"zero ticks", func(o *Options) { o.NumTicks = 0 }},
		{"zero samples", func(o *Options) { o.NumSamples = 0 }},
		{"fewer samples than ticks", func(o *Options) { o.NumSamples = 3; o.NumTicks = 6 }},
	}
	for _, tt := range tests {
		opts := DefaultOptions()
		tt.mutate(&opts)
		if err := opts.validate(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
	opts := DefaultOptions()
	if err := opts.validate(); err != nil {
		t.Errorf("defaults rejected: %v", err)
	}
}

func TestOptions_ValidateBars(t *testing.T) {
	opts := DefaultOptions()
	opts.BarNames = []string{"a", "b"}
	if err := opts.validateBars(2); err != nil {
		t.Errorf("valid bar options rejected: %v", err)
	}
	if err := opts.validateBars(3); err == nil {
		t.Error("expected error for name/column mismatch")
	}
	opts.BarWidth = 1.5
	if err := opts.validateBars(2); err == nil {
		t.Error("expected error for bar width > 1")
	}
}

func TestColorsFor(t *testing.T) {
	opts := DefaultOptions()
	colors, err := opts.colorsFor(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colors) != 2 || colors[0] != defaultPalette[0] {
		t.Errorf("palette fallback = %v", colors)
	}
	if _, err := opts.colorsFor(len(defaultPalette) + 1); err == nil {
		t.Error("expected error when the default palette runs out")
	}
	opts.Colors = []string{"#ffffff"}
	if _, err := opts.colorsFor(2); err == nil {
		t.Error("expected error for too few configured colors")
	}
}

func TestLineplot_ScriptShape(t *testing.T) {
	path := writeTestCSV(t, 50)
	opts := testOptions()
	sc, err := NewLineplot(path, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := engine.NewCapture()
	if err := sc.Render(rec); err != nil {
		t.Fatalf("render: %v", err)
	}

	// Background + one play per sample + final fade.
	want := 1 + opts.NumSamples + 1
	if len(rec.Plays) != want {
		t.Fatalf("plays = %d, want %d", len(rec.Plays), want)
	}
	bg := rec.Plays[0]
	if bg.RunTime != opts.BackgroundRunTime || len(bg.Frame.Lines) != 0 {
		t.Errorf("background play = %+v", bg)
	}
	mid := rec.Plays[3]
	if len(mid.Frame.Lines) != 2 || len(mid.Frame.Dots) != 2 || len(mid.Frame.Labels) != 2 {
		t.Errorf("reveal play missing lines/dots/labels")
	}
	if len(mid.Frame.Lines[0].Points) != 3 {
		t.Errorf("play 3 reveals %d points, want 3", len(mid.Frame.Lines[0].Points))
	}
	last := rec.Plays[len(rec.Plays)-1]
	if len(last.Frame.Dots) != 0 || last.RunTime != opts.WaitRunTime {
		t.Errorf("final play should fade the dots: %+v", last)
	}
}

func TestGrowingLineplot_AxesGrow(t *testing.T) {
	path := writeTestCSV(t, 50)
	opts := testOptions()
	sc, err := NewGrowingLineplot(path, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := engine.NewCapture()
	if err := sc.Render(rec); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := 1 + (opts.NumSamples - 1) + 1
	if len(rec.Plays) != want {
		t.Fatalf("plays = %d, want %d", len(rec.Plays), want)
	}

	prevX, prevY := 0.0, 0.0
	for i, p := range rec.Plays {
		ax := p.Frame.Axes
		if ax == nil {
			t.Fatalf("play %d has no axes", i)
		}
		if ax.XRange[1] < prevX || ax.YRange[1] < prevY {
			t.Fatalf("axes shrank at play %d", i)
		}
		prevX, prevY = ax.XRange[1], ax.YRange[1]
	}
	first, last := rec.Plays[0].Frame.Axes, rec.Plays[want-1].Frame.Axes
	if last.YRange[1] <= first.YRange[1] {
		t.Errorf("y max never grew: %v -> %v", first.YRange[1], last.YRange[1])
	}
}

func TestBarplot_ScriptShape(t *testing.T) {
	path := writeTestCSV(t, 50)
	opts := testOptions()
	sc, err := NewBarplot(path, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := engine.NewCapture()
	if err := sc.Render(rec); err != nil {
		t.Fatalf("render: %v", err)
	}
	want := 1 + (opts.NumSamples - 1) + 1
	if len(rec.Plays) != want {
		t.Fatalf("plays = %d, want %d", len(rec.Plays), want)
	}
	for i, p := range rec.Plays[:want-1] {
		if p.Frame.Bars == nil {
			t.Fatalf("play %d has no bar chart", i)
		}
		if len(p.Frame.Labels) != 2 {
			t.Fatalf("play %d missing value labels", i)
		}
		if p.Frame.Bars.Names[0] != "AAPL" {
			t.Fatalf("bar names should default to column names, got %v", p.Frame.Bars.Names)
		}
	}
	last := rec.Plays[want-1]
	if len(last.Frame.Labels) != 0 {
		t.Error("final play should fade the value labels")
	}
	// Fixed axes: every play shares the full-table y range.
	for i, p := range rec.Plays {
		if p.Frame.Bars.YRange != rec.Plays[0].Frame.Bars.YRange {
			t.Fatalf("y range changed at play %d", i)
		}
	}
}

func TestGrowingBarplot_YAxisGrows(t *testing.T) {
	path := writeTestCSV(t, 50)
	opts := testOptions()
	sc, err := NewGrowingBarplot(path, opts, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec := engine.NewCapture()
	if err := sc.Render(rec); err != nil {
		t.Fatalf("render: %v", err)
	}
	prev := 0.0
	grew := false
	for i, p := range rec.Plays {
		if p.Frame.Bars == nil {
			t.Fatalf("play %d has no bar chart", i)
		}
		yMax := p.Frame.Bars.YRange[1]
		if yMax < prev {
			t.Fatalf("y max shrank at play %d", i)
		}
		if yMax > prev && i > 0 {
			grew = true
		}
		prev = yMax
	}
	if !grew {
		t.Error("y axis never grew on rising data")
	}
}

func TestSingleStockPrice_TrendColor(t *testing.T) {
	start := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := testOptions()

	rising := make([]model.OHLCV, 8)
	falling := make([]model.OHLCV, 8)
	for i := range rising {
		ts := start.AddDate(0, 6*i, 0)
		rising[i] = model.OHLCV{Time: ts, High: 10 + float64(i)}
		falling[i] = model.OHLCV{Time: ts, High: 20 - float64(i)}
	}

	tests := []struct {
		name string
		bars []model.OHLCV
		want string
	}{
		{"rising", rising, trendUpColor},
		{"falling", falling, trendDownColor},
	}
	for _, tt := range tests {
		col, err := collector.New(&collector.MockFetcher{Bars: tt.bars}, nil,
			[]string{"AAPL"}, start, end, false, zap.NewNop())
		if err != nil {
			t.Fatalf("%s: collector: %v", tt.name, err)
		}
		sc, err := NewSingleStockPrice(context.Background(), col, model.FieldHigh, opts, zap.NewNop())
		if err != nil {
			t.Fatalf("%s: scene: %v", tt.name, err)
		}
		rec := engine.NewCapture()
		if err := sc.Render(rec); err != nil {
			t.Fatalf("%s: render: %v", tt.name, err)
		}
		reveal := rec.Plays[1]
		if len(reveal.Frame.Lines) != 1 {
			t.Fatalf("%s: expected one line, got %d", tt.name, len(reveal.Frame.Lines))
		}
		if got := reveal.Frame.Lines[0].Color; got != tt.want {
			t.Errorf("%s: line color = %s, want %s", tt.name, got, tt.want)
		}
	}
}

func TestSingleStockPrice_RejectsMultipleTickers(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	col, err := collector.New(&collector.MockFetcher{Price: 100}, nil,
		[]string{"AAPL", "MSFT"}, start, end, false, zap.NewNop())
	if err != nil {
		t.Fatalf("collector: %v", err)
	}
	if _, err := NewSingleStockPrice(context.Background(), col, model.FieldHigh, testOptions(), zap.NewNop()); err == nil {
		t.Error("expected error for more than one ticker")
	}
}

func TestNewLineplot_Errors(t *testing.T) {
	if _, err := NewLineplot("missing.csv", testOptions(), zap.NewNop()); err == nil {
		t.Error("expected error for missing data file")
	}
	path := writeTestCSV(t, 50)
	bad := testOptions()
	bad.NumSamples = 0
	if _, err := NewLineplot(path, bad, zap.NewNop()); err == nil {
		t.Error("expected error for invalid options")
	}
}
