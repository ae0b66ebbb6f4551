// Package csvfile loads the local contact CSV into a record set.
package csvfile

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
)

// Required header columns. Rows are keyed by email; a later row with the
// same email replaces the earlier one.
const (
	columnEmail     = "email"
	columnFirstName = "first_name"
	columnLastName  = "last_name"
	columnUpdatedAt = "updated_at"
)

// Load reads the CSV file at path and returns its records keyed by email.
func Load(path string) (records.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()

	set, err := Read(f)
	if err != nil {
		return nil, errors.WrapParse("csv", path, err)
	}
	return set, nil
}

// Read parses CSV content with a header row into a record set.
func Read(r io.Reader) (records.Set, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &errors.MissingKeyError{Source: "csv", Key: columnEmail}
	}
	if err != nil {
		return nil, err
	}

	columns, err := indexColumns(header)
	if err != nil {
		return nil, err
	}

	set := records.Set{}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		set[row[columns[columnEmail]]] = records.Record{
			FirstName: row[columns[columnFirstName]],
			LastName:  row[columns[columnLastName]],
			UpdatedAt: row[columns[columnUpdatedAt]],
		}
	}

	return set, nil
}

// indexColumns maps each required column name to its header position.
func indexColumns(header []string) (map[string]int, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		positions[name] = i
	}

	for _, required := range []string{columnEmail, columnFirstName, columnLastName, columnUpdatedAt} {
		if _, ok := positions[required]; !ok {
			return nil, &errors.MissingKeyError{Source: "csv", Key: required}
		}
	}

	return positions, nil
}
