package reports

import (
	"context"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/types"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStockSnapshot returns the current stock position with totals.
func (s *Service) GetStockSnapshot(ctx context.Context) (*StockSnapshot, error) {
	items, err := s.repo.GetStockSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := &StockSnapshot{
		AsOf:       time.Now().UTC(),
		Items:      items,
		TotalValue: types.ZeroMoney(),
	}
	for _, item := range items {
		snapshot.TotalValue = snapshot.TotalValue.Add(item.StockValue)
		if item.LowStock {
			snapshot.LowStockCount++
		}
	}
	return snapshot, nil
}

// GetSummary returns the dashboard figures for a period.
// A zero from/to defaults to the current month.
func (s *Service) GetSummary(ctx context.Context, from, to time.Time) (*Summary, error) {
	if from.IsZero() || to.IsZero() {
		now := time.Now().UTC()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = now
	}
	if from.After(to) {
		return nil, apperror.NewValidation("from must not be after to").
			WithDetail("from", from).
			WithDetail("to", to)
	}

	snapshot, err := s.GetStockSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	productCount, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	period, err := s.repo.GetPeriodTotals(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &Summary{
		From:           from,
		To:             to,
		ProductCount:   productCount,
		InventoryValue: snapshot.TotalValue,
		LowStockCount:  snapshot.LowStockCount,
		Period:         period,
	}, nil
}

// GetCustomerBalances returns the derived balance for every customer.
func (s *Service) GetCustomerBalances(ctx context.Context) ([]CustomerBalanceItem, error) {
	return s.repo.GetCustomerBalances(ctx)
}
