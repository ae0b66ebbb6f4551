// Package output renders the sync report in the supported formats.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jpbowler97/airtable-csv-sync/pkg/reconciler"
)

// Report column names, in row order.
var columns = []string{"operation", "target", "email"}

// Format types for report output.
type Format string

const (
	// FormatCSV is the default three-column report.
	FormatCSV Format = "csv"
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
)

// Formatter renders a sequence of sync operations.
type Formatter interface {
	Format(w io.Writer, ops []reconciler.Operation) error
}

// NewFormatter creates the appropriate formatter for a format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable:
		return &TableFormatter{}
	default:
		return &CSVFormatter{}
	}
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatTable, FormatJSON, FormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: csv, table, json, yaml", s)
	}
}

// CSVFormatter writes the header row and one operation,target,email row
// per operation. The target field is empty for NONE operations.
type CSVFormatter struct{}

// Format implements the Formatter interface for CSV output.
func (f *CSVFormatter) Format(w io.Writer, ops []reconciler.Operation) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return err
	}
	for _, op := range ops {
		if err := writer.Write([]string{string(op.Kind), string(op.Target), op.Email}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, ops []reconciler.Operation) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(ops)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format implements the Formatter interface for YAML output.
func (f *YAMLFormatter) Format(w io.Writer, ops []reconciler.Operation) error {
	yamlData, err := yaml.MarshalWithOptions(ops,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs a human-readable table.
type TableFormatter struct{}

// Format implements the Formatter interface for table output.
func (f *TableFormatter) Format(w io.Writer, ops []reconciler.Operation) error {
	table := tablewriter.NewTable(w)

	caser := cases.Title(language.English)
	headers := make([]any, len(columns))
	for i, name := range columns {
		headers[i] = caser.String(name)
	}
	table.Header(headers...)

	for _, op := range ops {
		if err := table.Append(string(op.Kind), string(op.Target), op.Email); err != nil {
			return err
		}
	}

	return table.Render()
}
