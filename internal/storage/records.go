package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
	"github.com/amctague/lift/internal/service"
)

// SaveRecords saves a batch of records to the database in one transaction.
func (s *SQLiteStorage) SaveRecords(ctx context.Context, records []model.Record) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			invoice_id, stock_code, description, quantity, price, country, customer_id, invoice_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range records {
		r := &records[i]
		var invoiceDate any
		if !r.InvoiceDate.IsZero() {
			invoiceDate = r.InvoiceDate
		}
		if _, err := stmt.ExecContext(ctx,
			r.InvoiceID,
			r.StockCode,
			r.Description,
			r.Quantity,
			r.Price,
			r.Country,
			r.CustomerID,
			invoiceDate,
		); err != nil {
			return fmt.Errorf("failed to insert record for invoice %s: %w", r.InvoiceID, err)
		}
	}

	return tx.Commit()
}

// ListRecords returns stored records matching the filter, in insertion order.
func (s *SQLiteStorage) ListRecords(ctx context.Context, filter service.RecordFilter) ([]model.Record, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT invoice_id, stock_code, description, quantity, price, country, customer_id, invoice_date
		FROM records`
	var args []any
	if filter.Country != "" {
		query += " WHERE country = ?"
		args = append(args, filter.Country)
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var customerID sql.NullString
		var invoiceDate sql.NullTime
		if err := rows.Scan(
			&r.InvoiceID,
			&r.StockCode,
			&r.Description,
			&r.Quantity,
			&r.Price,
			&r.Country,
			&customerID,
			&invoiceDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if customerID.Valid {
			r.CustomerID = customerID.String
		}
		if invoiceDate.Valid {
			r.InvoiceDate = invoiceDate.Time.UTC()
		} else {
			r.InvoiceDate = time.Time{}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of stored records.
func (s *SQLiteStorage) CountRecords(ctx context.Context) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return count, nil
}

// ProductName resolves a stock code to its product description. Returns
// ErrNotFound for stock codes absent from the catalog; identifier resolution
// failures never bubble up from the recommendation engine itself.
func (s *SQLiteStorage) ProductName(ctx context.Context, stockCode string) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	var name string
	err := s.db.QueryRowContext(ctx,
		"SELECT description FROM records WHERE stock_code = ? LIMIT 1", stockCode,
	).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("product %s: %w", stockCode, common.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up product %s: %w", stockCode, err)
	}
	return name, nil
}

// Countries returns per-country record counts, most records first.
func (s *SQLiteStorage) Countries(ctx context.Context) ([]service.CountryCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT country, COUNT(*) FROM records GROUP BY country ORDER BY COUNT(*) DESC, country")
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var counts []service.CountryCount
	for rows.Next() {
		var c service.CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan country count: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate countries: %w", err)
	}
	return counts, nil
}
