// Package contact defines the contact record consumed by the matching engine
// and the readers that build records from spreadsheets, CSV files and Postgres.
package contact

import (
	"regexp"
	"strconv"
	"strings"
)

// Column positions in a source row.
const (
	ColumnID = iota
	ColumnGivenName
	ColumnSurname
	ColumnEmail
	ColumnPostalCode
	ColumnAddress
)

var numericIDRegex = regexp.MustCompile(`^\d+$`)

// Record is a single contact row. Records are treated as immutable once built.
type Record struct {
	ID             int    `json:"id"`
	GivenName      string `json:"given_name"`
	Surname        string `json:"surname"`
	Email          string `json:"email"`
	PostalCode     string `json:"postal_code"`
	Address        string `json:"address"`
	SourcePosition int    `json:"source_position"`
}

// FullName joins given name and surname with a single space, even when one
// or both are empty.
func (r Record) FullName() string {
	return r.GivenName + " " + r.Surname
}

// ParseRow maps raw cells to a Record. Cells are trimmed; a missing cell reads
// as empty. The id must be all digits, anything else becomes 0.
//
// The second return value is false when the row should be dropped: no id and
// no given name, surname or email.
func ParseRow(cells []string, position int) (Record, bool) {
	rawID := cell(cells, ColumnID)

	record := Record{
		ID:             parseID(rawID),
		GivenName:      cell(cells, ColumnGivenName),
		Surname:        cell(cells, ColumnSurname),
		Email:          cell(cells, ColumnEmail),
		PostalCode:     cell(cells, ColumnPostalCode),
		Address:        cell(cells, ColumnAddress),
		SourcePosition: position,
	}

	if record.ID == 0 && record.GivenName == "" && record.Surname == "" && record.Email == "" {
		return Record{}, false
	}

	return record, true
}

func cell(cells []string, index int) string {
	if index >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[index])
}

// parseID returns 0 for non-numeric ids and for values that overflow int.
func parseID(raw string) int {
	if !numericIDRegex.MatchString(raw) {
		return 0
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return id
}
