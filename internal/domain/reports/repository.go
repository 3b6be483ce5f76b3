package reports

import (
	"context"
	"time"
)

// Repository defines report data access.
type Repository interface {
	// GetStockSnapshot returns the current position for every product.
	GetStockSnapshot(ctx context.Context) ([]StockSnapshotItem, error)

	// CountProducts returns the number of catalog products.
	CountProducts(ctx context.Context) (int, error)

	// GetPeriodTotals returns purchase and sales figures for [from, to].
	GetPeriodTotals(ctx context.Context, from, to time.Time) (PeriodTotals, error)

	// GetCustomerBalances returns the derived balance for every customer.
	GetCustomerBalances(ctx context.Context) ([]CustomerBalanceItem, error)
}
