package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpbowler97/airtable-csv-sync/pkg/errors"
	"github.com/jpbowler97/airtable-csv-sync/pkg/records"
)

func TestRead(t *testing.T) {
	input := strings.Join([]string{
		"email,first_name,last_name,updated_at",
		"a@x.com,Ada,Lovelace,2024-01-01T00:00:00Z",
		"b@x.com,Grace,Hopper,2024-01-02T00:00:00Z",
	}, "\n")

	set, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, records.Set{
		"a@x.com": {FirstName: "Ada", LastName: "Lovelace", UpdatedAt: "2024-01-01T00:00:00Z"},
		"b@x.com": {FirstName: "Grace", LastName: "Hopper", UpdatedAt: "2024-01-02T00:00:00Z"},
	}, set)
}

func TestReadReorderedColumns(t *testing.T) {
	input := strings.Join([]string{
		"updated_at,last_name,email,first_name",
		"2024-01-01T00:00:00Z,Lovelace,a@x.com,Ada",
	}, "\n")

	set, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, records.Record{
		FirstName: "Ada",
		LastName:  "Lovelace",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}, set["a@x.com"])
}

func TestReadDuplicateEmailLastRowWins(t *testing.T) {
	input := strings.Join([]string{
		"email,first_name,last_name,updated_at",
		"a@x.com,Ada,Lovelace,2024-01-01T00:00:00Z",
		"a@x.com,Ada,Byron,2024-01-02T00:00:00Z",
	}, "\n")

	set, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, set, 1)
	assert.Equal(t, "Byron", set["a@x.com"].LastName)
}

func TestReadMissingColumn(t *testing.T) {
	tests := []struct {
		name   string
		header string
		key    string
	}{
		{"no email", "first_name,last_name,updated_at", "email"},
		{"no updated_at", "email,first_name,last_name", "updated_at"},
		{"empty file", "", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.header))
			require.Error(t, err)

			var missing *errors.MissingKeyError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tt.key, missing.Key)
		})
	}
}

func TestReadRaggedRow(t *testing.T) {
	input := strings.Join([]string{
		"email,first_name,last_name,updated_at",
		"a@x.com,Ada",
	}, "\n")

	_, err := Read(strings.NewReader(input))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.csv")
	content := "email,first_name,last_name,updated_at\na@x.com,Ada,Lovelace,2024-01-01T00:00:00Z\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	set, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, set, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)

	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
