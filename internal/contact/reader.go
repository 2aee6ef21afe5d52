package contact

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/metrics"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported contact file format")
	ErrNoSheet           = errors.New("workbook has no sheets")
)

// Reader decodes contact records from a tabular stream. The first row is
// always treated as a header.
type Reader interface {
	Read(ctx context.Context, r io.Reader) ([]Record, error)
}

// ReaderFor picks a reader from the file extension of name.
func ReaderFor(name string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return XLSXReader{}, nil
	case ".csv":
		return CSVReader{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// LoadFile reads all contacts from the file at path.
func LoadFile(ctx context.Context, path string) ([]Record, error) {
	reader, err := ReaderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open contact file: %w", err)
	}
	defer f.Close()

	records, err := reader.Read(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	logger.Info().
		Str("path", path).
		Int("contacts", len(records)).
		Msg("contacts loaded")

	return records, nil
}

// FileSource loads contacts from a spreadsheet or CSV file.
type FileSource struct {
	Path string
}

// Load reads the file at s.Path.
func (s FileSource) Load(ctx context.Context) ([]Record, error) {
	return LoadFile(ctx, s.Path)
}

// rawRow is a data row (header excluded) with its 1-based source position.
type rawRow struct {
	cells    []string
	position int
}

// collectRows applies the skip policy to data rows.
func collectRows(ctx context.Context, source string, rows []rawRow) ([]Record, error) {
	records := make([]Record, 0, len(rows))

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if len(row.cells) == 0 {
			continue
		}

		record, ok := ParseRow(row.cells, row.position)
		if !ok {
			metrics.RecordRowSkipped(source)
			logger.Warn().
				Str("source", source).
				Int("row", row.position).
				Msg("skipping blank or incomplete row")
			continue
		}

		logger.Debug().
			Str("source", source).
			Int("id", record.ID).
			Str("name", record.FullName()).
			Str("email", record.Email).
			Str("zip", record.PostalCode).
			Str("address", record.Address).
			Msg("parsed contact")

		records = append(records, record)
	}

	return records, nil
}
