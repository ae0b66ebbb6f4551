// Package cmd provides the main command structure for the airtable-csv-sync CLI.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jpbowler97/airtable-csv-sync/internal/cmd/globals"
	"github.com/jpbowler97/airtable-csv-sync/pkg/logging"
)

var (
	globalFlags *globals.Flags

	// Version information set by main.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// Date is the build date.
	Date = "unknown"
	// BuiltBy is the build system identifier.
	BuiltBy = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "airtable-csv-sync",
	Short: "Reconcile a contact CSV with an Airtable table",
	Long: `airtable-csv-sync compares the contacts in a local CSV file with the
records in an Airtable table and reports the operations needed to bring
the two into agreement.

The tool only reports; it never writes to either side. Contacts are
matched by email, and when both sides hold the same contact the most
recent updated_at timestamp wins.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupCommand,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute(version, commit, date, builtBy string) {
	Version = version
	Commit = commit
	Date = date
	BuiltBy = builtBy

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Single exit point: helpers return errors, only main terminates.
		logging.Default().Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "Core Commands:",
	})

	globalFlags = globals.AddFlags(rootCmd)
}

// setupCommand applies global flags before any subcommand runs.
func setupCommand(_ *cobra.Command, _ []string) error {
	switch {
	case globalFlags.Verbose:
		logging.SetLevel(zerolog.DebugLevel)
	case globalFlags.Quiet:
		logging.SetLevel(zerolog.ErrorLevel)
	}
	return nil
}
