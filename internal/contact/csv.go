package contact

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// CSVReader reads contacts from comma separated values with a header line.
// Positions are the line numbers the rows start on.
type CSVReader struct{}

func (CSVReader) Read(ctx context.Context, r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var rows []rawRow
	header := true
	for {
		cells, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		if header {
			header = false
			continue
		}

		line, _ := cr.FieldPos(0)
		rows = append(rows, rawRow{cells: cells, position: line})
	}

	return collectRows(ctx, "csv", rows)
}
