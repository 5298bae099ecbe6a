// Package axis computes tick positions and labels for chart axes, and holds
// the growing-axis state used by the incremental visualizations.
package axis

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Tick is a labeled position on an axis.
type Tick struct {
	Pos   float64
	Label string
}

// Linspace returns num evenly spaced values from start to stop, inclusive of
// both endpoints. num must be >= 1; for num == 1 only start is returned.
func Linspace(start, stop float64, num int) []float64 {
	if num <= 1 {
		return []float64{start}
	}
	out := make([]float64, num)
	step := (stop - start) / float64(num-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[num-1] = stop
	return out
}

// SampleIndices returns min(num, n) evenly spaced, strictly increasing index
// positions over [0, n-1], inclusive of both endpoints. Positions are
// integer-truncated, so re-sampling with num >= n is the identity.
func SampleIndices(n, num int) []int {
	if num > n {
		num = n
	}
	if num <= 0 {
		return nil
	}
	pos := Linspace(0, float64(n-1), num)
	idx := make([]int, num)
	for i, p := range pos {
		idx[i] = int(p)
	}
	return idx
}

// ValueLabels returns the tick labels of a numeric axis spanning [min, max]
// with numTicks intervals. The label at min is suppressed, so numTicks labels
// are returned for positions 1..numTicks. Values are rounded to two decimals,
// or truncated to integers when round is set.
func ValueLabels(min, max float64, numTicks int, round bool) []Tick {
	pos := Linspace(min, max, numTicks+1)[1:]
	ticks := make([]Tick, len(pos))
	for i, p := range pos {
		var label string
		if round {
			label = strconv.Itoa(int(p))
		} else {
			label = decimal.NewFromFloat(p).Round(2).StringFixed(2)
		}
		ticks[i] = Tick{Pos: p, Label: label}
	}
	return ticks
}

// IndexLabels returns the tick labels of a category axis whose positions are
// index values into x. Positions are evenly spaced over [min, max], truncated
// to integers and clamped to the last index; as with ValueLabels the first
// position is suppressed.
func IndexLabels(x []int, min, max float64, numTicks int) []Tick {
	pos := Linspace(min, max, numTicks+1)[1:]
	ticks := make([]Tick, len(pos))
	for i, p := range pos {
		j := int(p)
		if j > len(x)-1 {
			j = len(x) - 1
		}
		if j < 0 {
			j = 0
		}
		ticks[i] = Tick{Pos: p, Label: strconv.Itoa(x[j])}
	}
	return ticks
}

// WindowMax returns the maximum of vals[:hi], with hi clamped to len(vals).
func WindowMax(vals []float64, hi int) float64 {
	if hi > len(vals) {
		hi = len(vals)
	}
	m := vals[0]
	for _, v := range vals[1:hi] {
		if v > m {
			m = v
		}
	}
	return m
}
