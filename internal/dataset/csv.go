package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"MarketMotion/internal/model"
)

// WriteCSV writes t with a "X,name0,name1,..." header. Missing values are
// written as empty cells.
func WriteCSV(w io.Writer, t *model.PriceTable) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	header := append([]string{"X"}, t.Names...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	record := make([]string, len(header))
	for i, row := range t.Y {
		record[0] = strconv.Itoa(t.X[i])
		for j, v := range row {
			if math.IsNaN(v) {
				record[j+1] = ""
			} else {
				record[j+1] = strconv.FormatFloat(v, 'f', -1, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a table written by WriteCSV. Empty cells become NaN; callers
// wanting complete rows only should follow up with DropMissing.
func ReadCSV(r io.Reader) (*model.PriceTable, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv has no data rows")
	}
	header := records[0]
	if len(header) < 2 || header[0] != "X" {
		return nil, fmt.Errorf("csv header must start with X and one value column, got %v", header)
	}
	t := &model.PriceTable{Names: append([]string(nil), header[1:]...)}
	for n, record := range records[1:] {
		x, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("csv row %d: bad period %q: %w", n+1, record[0], err)
		}
		row := make([]float64, len(record)-1)
		for j, cell := range record[1:] {
			if cell == "" {
				row[j] = math.NaN()
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("csv row %d: bad value %q: %w", n+1, cell, err)
			}
			row[j] = v
		}
		t.X = append(t.X, x)
		t.Y = append(t.Y, row)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return t, nil
}

// ReadFile loads a table from a .csv file on disk.
func ReadFile(path string) (*model.PriceTable, error) {
	if filepath.Ext(path) != ".csv" {
		return nil, fmt.Errorf("data file %q must have a .csv extension", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteFile saves a table to a .csv file on disk.
func WriteFile(path string, t *model.PriceTable) error {
	if filepath.Ext(path) != ".csv" {
		return fmt.Errorf("data file %q must have a .csv extension", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create data file: %w", err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
