package axis

import "fmt"

// initialTicks is the tick count each axis starts with before any growth.
const initialTicks = 3

// State tracks the visible range and tick granularity of the axes while a
// time-ordered series is revealed step by step. It has value semantics: the
// Grow methods return modified copies, and the driver loop keeps exactly one
// current State at a time.
type State struct {
	XMin      float64
	XMax      float64
	NumXTicks int
	YMin      float64
	YMax      float64
	NumYTicks int
}

// NewLineState returns the initial state for a two-axis plot. Minima are
// fixed at zero; the maxima come from the look-ahead window of the data about
// to be revealed. Non-positive maxima are rejected here so the tick-size
// divisions below can never divide by zero.
func NewLineState(xMax, yMax float64) (State, error) {
	if xMax <= 0 {
		return State{}, fmt.Errorf("initial x max must be positive, got %v", xMax)
	}
	if yMax <= 0 {
		return State{}, fmt.Errorf("initial y max must be positive, got %v", yMax)
	}
	return State{
		XMax:      xMax,
		NumXTicks: initialTicks,
		YMax:      yMax,
		NumYTicks: initialTicks,
	}, nil
}

// NewBarState returns the initial state for a bar chart, which only rescales
// its y-axis.
func NewBarState(yMax float64) (State, error) {
	if yMax <= 0 {
		return State{}, fmt.Errorf("initial y max must be positive, got %v", yMax)
	}
	return State{YMax: yMax, NumYTicks: initialTicks}, nil
}

// XTickSize is the value between ticks on the x-axis.
func (s State) XTickSize() float64 { return (s.XMax - s.XMin) / float64(s.NumXTicks) }

// YTickSize is the value between ticks on the y-axis.
func (s State) YTickSize() float64 { return (s.YMax - s.YMin) / float64(s.NumYTicks) }

// XRange returns [min, max, step] for the x-axis.
func (s State) XRange() [3]float64 { return [3]float64{s.XMin, s.XMax, s.XTickSize()} }

// YRange returns [min, max, step] for the y-axis.
func (s State) YRange() [3]float64 { return [3]float64{s.YMin, s.YMax, s.YTickSize()} }

// GrowY returns a copy with the y tick count grown by one, saturating at
// maxTicks, and the y max replaced by yMax. Callers trigger this when a newly
// revealed value reaches the current max, passing the max recomputed over the
// visible-plus-look-ahead prefix so the rescale anticipates near-future
// points.
func (s State) GrowY(yMax float64, maxTicks int) State {
	if s.NumYTicks < maxTicks {
		s.NumYTicks++
	}
	s.YMax = yMax
	return s
}

// GrowX is GrowY for the x-axis.
func (s State) GrowX(xMax float64, maxTicks int) State {
	if s.NumXTicks < maxTicks {
		s.NumXTicks++
	}
	s.XMax = xMax
	return s
}
