package model

import (
	"fmt"
	"math"
)

// PriceTable is the flat table the renderers consume: one X (period) column
// and one Y column per ticker. Rows are indexed 0..Rows()-1; Y[i][j] is the
// value of column j at row i.
type PriceTable struct {
	Names []string // Y column names, typically ticker symbols
	X     []int
	Y     [][]float64
}

// Rows returns the number of data rows.
func (t *PriceTable) Rows() int { return len(t.X) }

// Cols returns the number of Y columns.
func (t *PriceTable) Cols() int { return len(t.Names) }

// Column returns a copy of the j-th Y column.
func (t *PriceTable) Column(j int) []float64 {
	col := make([]float64, len(t.Y))
	for i, row := range t.Y {
		col[i] = row[j]
	}
	return col
}

// RowMax returns the maximum Y value of row i across all columns.
func (t *PriceTable) RowMax(i int) float64 {
	m := math.Inf(-1)
	for _, v := range t.Y[i] {
		if v > m {
			m = v
		}
	}
	return m
}

// RowMaxes returns RowMax for every row.
func (t *PriceTable) RowMaxes() []float64 {
	maxes := make([]float64, t.Rows())
	for i := range maxes {
		maxes[i] = t.RowMax(i)
	}
	return maxes
}

// Max returns the maximum Y value of the whole table.
func (t *PriceTable) Max() float64 {
	m := math.Inf(-1)
	for i := range t.X {
		if rm := t.RowMax(i); rm > m {
			m = rm
		}
	}
	return m
}

// Validate checks the flat-table invariants: at least one column, unique
// column names, rectangular shape, and a monotonically non-decreasing period
// index.
func (t *PriceTable) Validate() error {
	if len(t.Names) == 0 {
		return fmt.Errorf("table has no value columns")
	}
	seen := make(map[string]bool, len(t.Names))
	for _, name := range t.Names {
		if seen[name] {
			return fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = true
	}
	if len(t.X) != len(t.Y) {
		return fmt.Errorf("X column has %d rows, Y has %d", len(t.X), len(t.Y))
	}
	for i, row := range t.Y {
		if len(row) != len(t.Names) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(t.Names))
		}
	}
	for i := 1; i < len(t.X); i++ {
		if t.X[i] < t.X[i-1] {
			return fmt.Errorf("period index decreases at row %d", i)
		}
	}
	return nil
}
