package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/amctague/lift/internal/common"
	"github.com/amctague/lift/internal/model"
	"github.com/amctague/lift/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "lift.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func sampleRecords() []model.Record {
	return []model.Record{
		{
			InvoiceID:   "536365",
			StockCode:   "85123A",
			Description: "WHITE HANGING HEART T-LIGHT HOLDER",
			Quantity:    6,
			Price:       2.55,
			Country:     "United Kingdom",
			CustomerID:  "17850",
			InvoiceDate: time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC),
		},
		{
			InvoiceID:   "536370",
			StockCode:   "22728",
			Description: "ALARM CLOCK BAKELIKE PINK",
			Quantity:    24,
			Price:       3.75,
			Country:     "Germany",
		},
		{
			InvoiceID:   "536371",
			StockCode:   "22086",
			Description: "PAPER CHAIN KIT 50'S CHRISTMAS",
			Quantity:    80,
			Price:       2.55,
			Country:     "Germany",
		},
	}
}

func TestSaveAndListRecords(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	require.NoError(t, store.SaveRecords(ctx, sampleRecords()))

	records, err := store.ListRecords(ctx, service.RecordFilter{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, "536365", first.InvoiceID)
	assert.Equal(t, "85123A", first.StockCode)
	assert.Equal(t, 6.0, first.Quantity)
	assert.Equal(t, "17850", first.CustomerID)
	assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), first.InvoiceDate)

	// Missing invoice date round-trips as the zero time.
	assert.True(t, records[1].InvoiceDate.IsZero())
}

func TestListRecords_CountryFilter(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	require.NoError(t, store.SaveRecords(ctx, sampleRecords()))

	records, err := store.ListRecords(ctx, service.RecordFilter{Country: "Germany"})
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "Germany", r.Country)
	}

	records, err = store.ListRecords(ctx, service.RecordFilter{Country: "Germany", Limit: 1})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestCountRecords(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	count, err := store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, store.SaveRecords(ctx, sampleRecords()))

	count, err = store.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestProductName(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	require.NoError(t, store.SaveRecords(ctx, sampleRecords()))

	name, err := store.ProductName(ctx, "22728")
	require.NoError(t, err)
	assert.Equal(t, "ALARM CLOCK BAKELIKE PINK", name)

	_, err = store.ProductName(ctx, "99999")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestCountries(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	require.NoError(t, store.SaveRecords(ctx, sampleRecords()))

	counts, err := store.Countries(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, service.CountryCount{Country: "Germany", Count: 2}, counts[0])
	assert.Equal(t, service.CountryCount{Country: "United Kingdom", Count: 1}, counts[1])
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}

func TestSaveRecords_Empty(t *testing.T) {
	ctx := context.Background()
	store := testStorage(t)

	assert.NoError(t, store.SaveRecords(ctx, nil))
}
