package cmd

import (
	"bytes"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jpbowler97/airtable-csv-sync/internal/cmd/output"
	"github.com/jpbowler97/airtable-csv-sync/internal/config"
	"github.com/jpbowler97/airtable-csv-sync/internal/sources/airtable"
	"github.com/jpbowler97/airtable-csv-sync/internal/sources/csvfile"
	"github.com/jpbowler97/airtable-csv-sync/pkg/logging"
	"github.com/jpbowler97/airtable-csv-sync/pkg/reconciler"
)

var (
	compareCSVPath string
	compareBaseID  string
	compareTable   string
	compareAPIKey  string
)

// compareCmd represents the compare command.
var compareCmd = &cobra.Command{
	Use:     "compare",
	GroupID: "core",
	Short:   "Compare CSV contacts with Airtable records",
	Long: `Compare loads the CSV file, fetches every record from the Airtable
table, and prints one report row per email found on either side:

  CREATE  the other side is missing the contact
  UPDATE  the target side holds an older version of the contact
  NONE    both sides agree

The report goes to stdout; logs go to stderr. Nothing is written to the
CSV file or to Airtable.`,
	Example: `  airtable-csv-sync compare --csv contacts.csv --base appXXXX --table Contacts
  airtable-csv-sync compare --csv contacts.csv --base appXXXX --table Contacts -o table`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCompare(cmd, os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareCSVPath, "csv", "", "Path to CSV file (required)")
	compareCmd.Flags().StringVar(&compareBaseID, "base", "", "Airtable base ID (required)")
	compareCmd.Flags().StringVar(&compareTable, "table", "", "Airtable table name (required)")
	compareCmd.Flags().StringVar(&compareAPIKey, "api-key", "",
		"Airtable API key (or set AIRTABLE_API_KEY)")

	_ = compareCmd.MarkFlagRequired("csv")
	_ = compareCmd.MarkFlagRequired("base")
	_ = compareCmd.MarkFlagRequired("table")
}

// runCompare is the full compare flow: resolve config, load both record
// sets, reconcile, render. Any failure aborts before a single report row
// reaches the writer.
func runCompare(cmd *cobra.Command, w io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.UpdateFromFlags(compareCSVPath, compareBaseID, compareTable, compareAPIKey)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.Default()
	ctx := logging.WithLogger(cmd.Context(), logger)

	local, err := csvfile.Load(cfg.CSVPath)
	if err != nil {
		return err
	}
	logger.Debug().Int("records", len(local)).Str("path", cfg.CSVPath).Msg("Loaded CSV records")

	client := airtable.NewClient(cfg.BaseID, cfg.Table, cfg.APIKey)
	if cfg.BaseURL != "" {
		client.BaseURL = cfg.BaseURL
	}
	remote, err := client.ListRecords(ctx)
	if err != nil {
		return err
	}

	result, err := reconciler.Run(local, remote)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(globalFlags.Output)
	if err != nil {
		return err
	}

	// Render to a buffer first so a formatter failure emits no rows.
	var buf bytes.Buffer
	if err := output.NewFormatter(format).Format(&buf, result.Operations); err != nil {
		return err
	}
	if _, err := buf.WriteTo(w); err != nil {
		return err
	}

	logger.Info().
		Int("contacts", result.Metadata.Stats.Total()).
		Dur("duration", result.Metadata.Duration).
		Msg(result.Summary())

	return nil
}
