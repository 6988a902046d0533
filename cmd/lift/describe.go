package main

import (
	"fmt"
	"log/slog"

	"github.com/amctague/lift/internal/cli"
	"github.com/amctague/lift/internal/service"

	"github.com/montanaflynn/stats"
	"github.com/spf13/cobra"
)

func describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Summarize the imported dataset",
		Long: `Print record counts, per-country breakdown, and summary statistics for
the quantity and price columns of the imported dataset.`,
		RunE: runDescribe,
	}
}

func runDescribe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	count, err := store.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}

	slog.Info(cli.FormatTitle("Dataset summary"))
	slog.Info("Records", "count", count)
	if count == 0 {
		slog.Info("Nothing imported yet, run 'lift import' first")
		return nil
	}

	countries, err := store.Countries(ctx)
	if err != nil {
		return fmt.Errorf("failed to list countries: %w", err)
	}
	for i, c := range countries {
		if i >= 10 {
			slog.Info(fmt.Sprintf("... and %d more countries", len(countries)-i))
			break
		}
		slog.Info("Country", "name", c.Country, "records", c.Count)
	}

	records, err := store.ListRecords(ctx, service.RecordFilter{})
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	quantity := make([]float64, len(records))
	price := make([]float64, len(records))
	for i := range records {
		quantity[i] = records[i].Quantity
		price[i] = records[i].Price
	}

	if err := describeColumn("Quantity", quantity); err != nil {
		return err
	}
	return describeColumn("Price", price)
}

func describeColumn(name string, values []float64) error {
	mean, err := stats.Mean(values)
	if err != nil {
		return fmt.Errorf("failed to compute mean for %s: %w", name, err)
	}
	median, err := stats.Median(values)
	if err != nil {
		return fmt.Errorf("failed to compute median for %s: %w", name, err)
	}
	stdDev, err := stats.StandardDeviation(values)
	if err != nil {
		return fmt.Errorf("failed to compute stddev for %s: %w", name, err)
	}
	minVal, err := stats.Min(values)
	if err != nil {
		return fmt.Errorf("failed to compute min for %s: %w", name, err)
	}
	maxVal, err := stats.Max(values)
	if err != nil {
		return fmt.Errorf("failed to compute max for %s: %w", name, err)
	}

	slog.Info(fmt.Sprintf("%s %s column", cli.ChartIcon, name),
		"mean", fmt.Sprintf("%.2f", mean),
		"median", fmt.Sprintf("%.2f", median),
		"stddev", fmt.Sprintf("%.2f", stdDev),
		"min", fmt.Sprintf("%.2f", minVal),
		"max", fmt.Sprintf("%.2f", maxVal))
	return nil
}
