// Package scene contains the visualization sequencers. Each scene validates
// its configuration eagerly, derives its sampled table, and plays a fixed
// script of frames against an engine.
package scene

import "fmt"

// defaultPalette colors series when none are configured.
var defaultPalette = []string{"#003f5c", "#58508d", "#bc5090", "#ff6361", "#ffa600"}

// Options configures a scene. Zero values are not usable; start from
// DefaultOptions.
type Options struct {
	Title  string
	XLabel string
	YLabel string

	BackgroundRunTime float64 // seconds for the background write phase
	AnimationRunTime  float64 // seconds for the growth phase
	WaitRunTime       float64 // seconds for the final fade/wait phase

	CameraScale float64
	Colors      []string
	NumTicks    int
	NumSamples  int

	// Bar scene options.
	BarNames       []string
	BarWidth       float64
	BarFillOpacity float64
	BarStrokeWidth float64

	// RoundYLabels switches y-axis labels from 2-decimal to integer form.
	RoundYLabels bool
}

// DefaultOptions returns the standard scene configuration.
func DefaultOptions() Options {
	return Options{
		Title:             "Market Price",
		XLabel:            "Year",
		YLabel:            "Price [$]",
		BackgroundRunTime: 10,
		AnimationRunTime:  45,
		WaitRunTime:       5,
		CameraScale:       1.2,
		NumTicks:          6,
		NumSamples:        100,
		BarWidth:          0.6,
		BarFillOpacity:    0.7,
		BarStrokeWidth:    3,
	}
}

// validate checks the options every scene shares.
func (o *Options) validate() error {
	if o.BackgroundRunTime <= 0 {
		return fmt.Errorf("background run time must be greater than 0")
	}
	if o.AnimationRunTime <= 0 {
		return fmt.Errorf("animation run time must be greater than 0")
	}
	if o.WaitRunTime <= 0 {
		return fmt.Errorf("wait run time must be greater than 0")
	}
	if o.CameraScale <= 0 {
		return fmt.Errorf("camera scale must be greater than 0")
	}
	if o.NumTicks <= 0 {
		return fmt.Errorf("tick count must be greater than 0")
	}
	if o.NumSamples <= 0 {
		return fmt.Errorf("sample count must be greater than 0")
	}
	if o.NumSamples < o.NumTicks {
		return fmt.Errorf("sample count must be at least the tick count")
	}
	return nil
}

// validateBars checks the bar-chart options against the column count.
func (o *Options) validateBars(cols int) error {
	if len(o.BarNames) != cols {
		return fmt.Errorf("bar names should have the same length as the number of tickers, got %d for %d", len(o.BarNames), cols)
	}
	if o.BarWidth < 0 || o.BarWidth > 1 {
		return fmt.Errorf("bar width should be in range [0.0, 1.0]")
	}
	if o.BarFillOpacity < 0 || o.BarFillOpacity > 1 {
		return fmt.Errorf("bar fill opacity should be in range [0.0, 1.0]")
	}
	if o.BarStrokeWidth <= 0 {
		return fmt.Errorf("bar stroke width must be greater than 0")
	}
	return nil
}

// colorsFor resolves the series colors for cols columns, falling back to the
// default palette.
func (o *Options) colorsFor(cols int) ([]string, error) {
	colors := o.Colors
	if len(colors) == 0 {
		if cols > len(defaultPalette) {
			return nil, fmt.Errorf("default palette covers %d series, data has %d", len(defaultPalette), cols)
		}
		colors = defaultPalette[:cols]
	}
	if len(colors) < cols {
		return nil, fmt.Errorf("colors should have at least as many colors as tickers, got %d for %d", len(colors), cols)
	}
	return colors[:cols], nil
}
