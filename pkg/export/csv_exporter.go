package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Sheet holds the tabular content of an occupancy or report export.
// Rows are positional and must match the column count.
type Sheet struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// CSVExporter renders sheets as RFC 4180 CSV.
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the sheet columns and rows. The title is not part of
// the CSV body so downstream spreadsheet imports stay clean.
func (e *CSVExporter) Render(sheet Sheet) ([]byte, error) {
	if len(sheet.Columns) == 0 {
		return nil, fmt.Errorf("sheet has no columns")
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(sheet.Columns); err != nil {
		return nil, fmt.Errorf("write columns: %w", err)
	}
	for i, row := range sheet.Rows {
		if len(row) != len(sheet.Columns) {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(sheet.Columns))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
