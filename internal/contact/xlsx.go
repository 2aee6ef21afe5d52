package contact

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXReader reads contacts from the first sheet of an Excel workbook.
type XLSXReader struct{}

func (XLSXReader) Read(ctx context.Context, r io.Reader) ([]Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	// Raw values keep numeric ids and postal codes free of display formatting.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	data := make([]rawRow, 0, len(rows))
	for k := 1; k < len(rows); k++ {
		data = append(data, rawRow{cells: rows[k], position: k + 1})
	}

	return collectRows(ctx, "xlsx", data)
}
