package main

import (
	"fmt"
	"log/slog"

	"github.com/amctague/lift/internal/cli"
	"github.com/amctague/lift/internal/dataset"
	"github.com/amctague/lift/internal/model"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a retail dataset (CSV or XLSX)",
		Long: `Import retail invoice line-items from a spreadsheet export into the local
database for analysis. Rows with unparseable numeric fields are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("sheet", dataset.DefaultSheet, "worksheet name for XLSX files")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")

	_ = viper.BindPFlag("import.sheet", cmd.Flags().Lookup("sheet"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	slog.Info(cli.FormatTitle("Importing retail dataset"))
	slog.Info("Reading dataset", "path", path)

	reader := dataset.NewReader(path, viper.GetString("import.sheet"))
	records, skipped, err := reader.Read()
	if err != nil {
		return fmt.Errorf("failed to read dataset: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("✓ Parsed %d records", len(records))))
	if skipped > 0 {
		slog.Warn(cli.FormatWarning(fmt.Sprintf("Skipped %d unparseable rows", skipped)))
	}

	if viper.GetBool("import.dry_run") {
		slog.Info(cli.FormatWarning("Dry run mode - not saving to database"))
		displayRecordSummary(records)
		return nil
	}

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	bar := progressbar.Default(int64(len(records)), "Saving records")
	const batchSize = 1000
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := store.SaveRecords(ctx, records[start:end]); err != nil {
			return fmt.Errorf("failed to save records: %w", err)
		}
		_ = bar.Add(end - start)
	}
	_ = bar.Finish()

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Imported %d records", len(records))))
	return nil
}

func displayRecordSummary(records []model.Record) {
	invoices := make(map[string]struct{})
	products := make(map[string]struct{})
	countries := make(map[string]struct{})
	for i := range records {
		invoices[records[i].InvoiceID] = struct{}{}
		products[records[i].StockCode] = struct{}{}
		countries[records[i].Country] = struct{}{}
	}
	slog.Info("Dataset summary",
		"records", len(records),
		"invoices", len(invoices),
		"products", len(products),
		"countries", len(countries))
}
