package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

type fakeReportsRepo struct {
	items        []StockSnapshotItem
	productCount int
	period       PeriodTotals
	balances     []CustomerBalanceItem
}

func (f *fakeReportsRepo) GetStockSnapshot(_ context.Context) ([]StockSnapshotItem, error) {
	return f.items, nil
}

func (f *fakeReportsRepo) CountProducts(_ context.Context) (int, error) {
	return f.productCount, nil
}

func (f *fakeReportsRepo) GetPeriodTotals(_ context.Context, _, _ time.Time) (PeriodTotals, error) {
	return f.period, nil
}

func (f *fakeReportsRepo) GetCustomerBalances(_ context.Context) ([]CustomerBalanceItem, error) {
	return f.balances, nil
}

func TestGetStockSnapshotTotals(t *testing.T) {
	repo := &fakeReportsRepo{
		items: []StockSnapshotItem{
			{
				ProductID:  id.New(),
				Quantity:   types.NewQuantityFromFloat64(10),
				StockValue: types.MustMoney("450.00"),
			},
			{
				ProductID:  id.New(),
				Quantity:   types.NewQuantityFromFloat64(2),
				StockValue: types.MustMoney("100.00"),
				LowStock:   true,
			},
			{
				ProductID: id.New(),
				// Negative stock contributes nothing to value.
				Quantity:   types.NewQuantityFromFloat64(-1),
				StockValue: types.ZeroMoney(),
				LowStock:   true,
			},
		},
	}
	svc := NewService(repo)

	snapshot, err := svc.GetStockSnapshot(context.Background())
	require.NoError(t, err)

	assert.True(t, snapshot.TotalValue.Equal(types.MustMoney("550.00")),
		"total = %s", snapshot.TotalValue)
	assert.Equal(t, 2, snapshot.LowStockCount)
	assert.Len(t, snapshot.Items, 3)
	assert.False(t, snapshot.AsOf.IsZero())
}

func TestGetSummary(t *testing.T) {
	repo := &fakeReportsRepo{
		items: []StockSnapshotItem{
			{ProductID: id.New(), StockValue: types.MustMoney("1000.00")},
		},
		productCount: 12,
		period: PeriodTotals{
			PurchaseTotal: types.MustMoney("8000.00"),
			SalesTotal:    types.MustMoney("11800.00"),
			TaxCollected:  types.MustMoney("1800.00"),
			InvoiceCount:  7,
		},
	}
	svc := NewService(repo)

	from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	summary, err := svc.GetSummary(context.Background(), from, to)
	require.NoError(t, err)

	assert.Equal(t, 12, summary.ProductCount)
	assert.True(t, summary.InventoryValue.Equal(types.MustMoney("1000.00")))
	assert.Equal(t, 7, summary.Period.InvoiceCount)
	assert.True(t, summary.Period.TaxCollected.Equal(types.MustMoney("1800.00")))
}

func TestGetSummaryDefaultsToCurrentMonth(t *testing.T) {
	svc := NewService(&fakeReportsRepo{})

	summary, err := svc.GetSummary(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)

	now := time.Now().UTC()
	assert.Equal(t, now.Year(), summary.From.Year())
	assert.Equal(t, now.Month(), summary.From.Month())
	assert.Equal(t, 1, summary.From.Day())
}

func TestGetSummaryInvertedRange(t *testing.T) {
	svc := NewService(&fakeReportsRepo{})

	from := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.GetSummary(context.Background(), from, to)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
