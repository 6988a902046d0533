// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/amctague/lift/internal/model"
)

// RecordFilter defines filtering options for record queries.
type RecordFilter struct {
	Country string
	Limit   int
}

// CountryCount pairs a country with its record count.
type CountryCount struct {
	Country string
	Count   int64
}

// Storage defines the contract for the imported-dataset persistence layer.
// Association rules themselves are never persisted; only raw records are,
// so analysis runs don't re-read the spreadsheet every time.
type Storage interface {
	// Record operations
	SaveRecords(ctx context.Context, records []model.Record) error
	ListRecords(ctx context.Context, filter RecordFilter) ([]model.Record, error)
	CountRecords(ctx context.Context) (int64, error)

	// Catalog operations
	ProductName(ctx context.Context, stockCode string) (string, error)
	Countries(ctx context.Context) ([]CountryCount, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
