// Package dataset reshapes downloaded price series into the flat table the
// visualizations consume, and reads/writes that table as CSV.
package dataset

import (
	"fmt"
	"math"
	"sort"
	"time"

	"MarketMotion/internal/model"
)

// Flatten converts a wide per-ticker bar table into the flat {X, Y0..Yn}
// shape, picking one OHLCV field per bar. The period column is the calendar
// year. Periods where any ticker has no bar are dropped; no interpolation is
// performed.
func Flatten(s *model.PriceSeries, field model.Field) (*model.PriceTable, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("unknown bar field %q", field)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("flatten: %w", err)
	}

	// Index every ticker's bars by trading day, then walk the sorted union
	// of days keeping only those covered by every ticker.
	byDay := make([]map[string]float64, 0, len(s.Tickers))
	days := make(map[string]bool)
	for _, tk := range s.Tickers {
		m := make(map[string]float64, len(s.Bars[tk]))
		for _, bar := range s.Bars[tk] {
			day := bar.Time.Format(time.DateOnly)
			m[day] = bar.Value(field)
			days[day] = true
		}
		byDay = append(byDay, m)
	}
	sorted := make([]string, 0, len(days))
	for d := range days {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	t := &model.PriceTable{Names: append([]string(nil), s.Tickers...)}
	for _, day := range sorted {
		row := make([]float64, len(s.Tickers))
		complete := true
		for j := range s.Tickers {
			v, ok := byDay[j][day]
			if !ok {
				complete = false
				break
			}
			row[j] = v
		}
		if !complete {
			continue
		}
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return nil, fmt.Errorf("flatten: parse day %q: %w", day, err)
		}
		t.X = append(t.X, date.Year())
		t.Y = append(t.Y, row)
	}
	if t.Rows() == 0 {
		return nil, fmt.Errorf("flatten: no period is covered by all %d tickers", len(s.Tickers))
	}
	return t, nil
}

// Select returns the sub-table holding only the named columns, in the order
// given. Selecting columns a table already consists of is the identity, so
// applying Select twice with the same names equals applying it once.
func Select(t *model.PriceTable, names ...string) (*model.PriceTable, error) {
	if len(names) == 0 {
		names = t.Names
	}
	idx := make([]int, len(names))
	for i, name := range names {
		j := -1
		for k, have := range t.Names {
			if have == name {
				j = k
				break
			}
		}
		if j < 0 {
			return nil, fmt.Errorf("no column named %q", name)
		}
		idx[i] = j
	}
	out := &model.PriceTable{
		Names: append([]string(nil), names...),
		X:     append([]int(nil), t.X...),
		Y:     make([][]float64, t.Rows()),
	}
	for i, row := range t.Y {
		vals := make([]float64, len(idx))
		for k, j := range idx {
			vals[k] = row[j]
		}
		out.Y[i] = vals
	}
	return out, nil
}

// DropMissing returns a copy of t without the rows that contain a missing
// (NaN) value. Applying it twice is the same as applying it once.
func DropMissing(t *model.PriceTable) *model.PriceTable {
	out := &model.PriceTable{Names: append([]string(nil), t.Names...)}
	for i, row := range t.Y {
		keep := true
		for _, v := range row {
			if math.IsNaN(v) {
				keep = false
				break
			}
		}
		if keep {
			out.X = append(out.X, t.X[i])
			out.Y = append(out.Y, append([]float64(nil), row...))
		}
	}
	return out
}
