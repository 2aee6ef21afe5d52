package contact

import (
	"context"
	"fmt"

	"contact-dedupe/internal/logger"
	"contact-dedupe/internal/metrics"

	"github.com/jackc/pgx/v5"
)

// DefaultTable is the table PostgresSource reads when none is configured.
const DefaultTable = "contacts"

type rowQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresSource loads contacts from a table with the columns
// id, given_name, surname, email, postal_code, address.
type PostgresSource struct {
	queries rowQuerier
	table   string
}

// NewPostgresSource creates a source over queries, usually a *pgxpool.Pool.
func NewPostgresSource(queries rowQuerier, table string) *PostgresSource {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresSource{queries: queries, table: table}
}

func (s *PostgresSource) query() string {
	return fmt.Sprintf(`SELECT COALESCE(id::text, ''),
       COALESCE(given_name, ''),
       COALESCE(surname, ''),
       COALESCE(email, ''),
       COALESCE(postal_code, ''),
       COALESCE(address, '')
FROM %s
ORDER BY id`, pgx.Identifier{s.table}.Sanitize())
}

// Load returns all contacts ordered by id. Positions are 1-based ordinals in
// that order.
func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.queries.Query(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", err)
	}
	defer rows.Close()

	var records []Record
	position := 0
	for rows.Next() {
		position++
		cells := make([]string, ColumnAddress+1)
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("failed to scan contact row %d: %w", position, err)
		}

		record, ok := ParseRow(cells, position)
		if !ok {
			metrics.RecordRowSkipped("postgres")
			logger.Warn().Int("row", position).Msg("skipping blank or incomplete row")
			continue
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contacts: %w", err)
	}

	logger.Info().
		Str("table", s.table).
		Int("contacts", len(records)).
		Msg("contacts loaded")

	return records, nil
}
