// Package main provides the entry point for the airtable-csv-sync CLI tool.
package main

import "github.com/jpbowler97/airtable-csv-sync/cmd/airtable-csv-sync/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
