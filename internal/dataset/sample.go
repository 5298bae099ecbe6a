package dataset

import (
	"fmt"

	"MarketMotion/internal/axis"
	"MarketMotion/internal/model"
)

// Sample reduces t to at most num evenly spaced rows, always keeping the
// first and last row. Relative ordering is preserved and sampling with
// num >= Rows() returns an identical copy.
func Sample(t *model.PriceTable, num int) (*model.PriceTable, error) {
	if num <= 0 {
		return nil, fmt.Errorf("sample count must be positive, got %d", num)
	}
	if t.Rows() == 0 {
		return nil, fmt.Errorf("cannot sample an empty table")
	}
	idx := axis.SampleIndices(t.Rows(), num)
	out := &model.PriceTable{
		Names: append([]string(nil), t.Names...),
		X:     make([]int, len(idx)),
		Y:     make([][]float64, len(idx)),
	}
	for i, j := range idx {
		out.X[i] = t.X[j]
		out.Y[i] = append([]float64(nil), t.Y[j]...)
	}
	return out, nil
}
