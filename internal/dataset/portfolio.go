package dataset

import (
	"fmt"

	"MarketMotion/internal/model"
)

// PortfolioValue converts each price column into the value of a buy-and-hold
// position opened at the first period with initCash: shares = cash/price[0],
// value[t] = shares*price[t]. The first row of every column therefore equals
// initCash exactly.
func PortfolioValue(t *model.PriceTable, initCash float64) (*model.PriceTable, error) {
	if initCash <= 0 {
		return nil, fmt.Errorf("initial cash must be positive, got %v", initCash)
	}
	if t.Rows() == 0 {
		return nil, fmt.Errorf("cannot value an empty table")
	}
	shares := make([]float64, t.Cols())
	for j := range shares {
		first := t.Y[0][j]
		if first <= 0 {
			return nil, fmt.Errorf("column %q starts at non-positive price %v", t.Names[j], first)
		}
		shares[j] = initCash / first
	}
	out := &model.PriceTable{
		Names: append([]string(nil), t.Names...),
		X:     append([]int(nil), t.X...),
		Y:     make([][]float64, t.Rows()),
	}
	for i, row := range t.Y {
		vals := make([]float64, len(row))
		for j, price := range row {
			if i == 0 {
				// shares*price can be off by an ulp here; pin the invariant.
				vals[j] = initCash
				continue
			}
			vals[j] = shares[j] * price
		}
		out.Y[i] = vals
	}
	return out, nil
}
