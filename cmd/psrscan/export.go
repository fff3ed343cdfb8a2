package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/reactorwatch/psrscan/internal/config"
	"github.com/reactorwatch/psrscan/internal/database"
	"github.com/reactorwatch/psrscan/internal/report"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored records from the database",
		Long: `Export reads the records persisted by previous scrape runs from the
SQLite database and writes them in pipe-delimited or JSON format.

Records are emitted in ascending date order. This does not touch the
network or the HTML cache; it only reads what scrape already stored.

Examples:
  # Pipe-delimited records to stdout
  psrscan export

  # Pretty-printed JSON to a file
  psrscan export --json --pretty -o records.json`,
		Args: cobra.NoArgs,
		RunE: runExportCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output records as JSON instead of pipe-delimited lines")
	cmd.Flags().Bool("pretty", false,
		"Pretty-print JSON output (implies --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write to specified file path instead of stdout")
	cmd.Flags().String("db-dir", "",
		"Directory of the SQLite database (default: XDG data directory)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, _ []string) error {
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	pretty, err := cmd.Flags().GetBool("pretty")
	if err != nil {
		return err
	}
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	// Export never creates the database: an empty store means no scrape
	// has run yet, which should surface as an error, not an empty file.
	db, err := database.Open(dbDir, database.Options{EnableWAL: true})
	if err != nil {
		return fmt.Errorf("failed to open database (run scrape first?): %w", err)
	}
	defer db.Close()

	records, err := db.ListRecords(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	var output io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := report.CreateOutputFile(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		output = f
	}

	var writer report.Writer
	switch {
	case pretty:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case jsonOut:
		writer = report.NewJSONWriter(output)
	default:
		writer = report.NewPSVWriter(output)
	}

	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d records to %s\n", len(records), outputPath)
	}
	return nil
}
