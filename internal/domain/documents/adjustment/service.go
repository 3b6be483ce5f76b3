package adjustment

import (
	"context"

	"bahikhata/internal/core/id"
	"bahikhata/pkg/logger"
)

// ProductChecker verifies product references before an event is recorded.
type ProductChecker interface {
	ProductExists(ctx context.Context, productID id.ID) error
}

// Service provides business operations for adjustment events.
type Service struct {
	repo     Repository
	products ProductChecker
}

// NewService creates a new adjustment service.
func NewService(repo Repository, products ProductChecker) *Service {
	return &Service{repo: repo, products: products}
}

// Record validates and appends an adjustment event.
// Negative deltas may drive stock below zero; the correction channel is
// deliberately unguarded so the books can be made to match the shelf.
func (s *Service) Record(ctx context.Context, a *Adjustment) error {
	if err := a.Validate(ctx); err != nil {
		return err
	}

	if err := s.products.ProductExists(ctx, a.ProductID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return err
	}

	logger.Info(ctx, "stock adjusted",
		"id", a.ID,
		"product_id", a.ProductID,
		"delta", a.Delta,
		"reason", a.Reason,
	)
	return nil
}

// List retrieves adjustment events with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Adjustment, error) {
	return s.repo.List(ctx, filter)
}
