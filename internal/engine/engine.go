// Package engine is the boundary to the rendering machinery. Scenes describe
// what each animation step should look like as a Frame and play it for some
// amount of wall-clock time; how a frame is rasterized, laid out, and fonted
// belongs entirely to the backend.
package engine

// Label is a positioned tick label on an axis.
type Label struct {
	Pos  float64
	Text string
}

// AxesSpec describes a coordinate system: [min, max, step] per axis plus the
// explicit tick labels to draw.
type AxesSpec struct {
	XRange  [3]float64
	YRange  [3]float64
	XLabels []Label
	YLabels []Label
	XName   string
	YName   string
}

// Point is a data-space coordinate.
type Point struct {
	X float64
	Y float64
}

// Line is one polyline series.
type Line struct {
	Color  string // #rrggbb
	Points []Point
}

// Dot marks a single data point.
type Dot struct {
	Point  Point
	Color  string
	Radius float64 // display points
}

// ValueLabel is free text anchored at a data point, e.g. the tracked price.
type ValueLabel struct {
	Point Point
	Text  string
}

// BarChart describes a category bar chart with an explicit y-axis.
type BarChart struct {
	Names       []string
	Values      []float64
	Colors      []string
	YRange      [3]float64
	YLabels     []Label
	Width       float64 // fraction of the bar slot, (0, 1]
	FillOpacity float64 // [0, 1]
	StrokeWidth float64 // display points
}

// Frame is one renderable still. Exactly one of Axes or Bars is normally set.
type Frame struct {
	Title  string
	Axes   *AxesSpec
	Lines  []Line
	Dots   []Dot
	Labels []ValueLabel
	Bars   *BarChart
}

// Engine consumes a scene's play script. Play holds the frame on screen for
// runTime seconds; Close flushes whatever the backend buffers.
type Engine interface {
	Play(f Frame, runTime float64) error
	Close() error
}
