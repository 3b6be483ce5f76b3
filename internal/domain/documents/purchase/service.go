package purchase

import (
	"context"

	"bahikhata/internal/core/id"
	"bahikhata/pkg/logger"
)

// ProductChecker verifies product references before an event is recorded.
type ProductChecker interface {
	ProductExists(ctx context.Context, productID id.ID) error
}

// Service provides business operations for purchase events.
type Service struct {
	repo     Repository
	products ProductChecker
}

// NewService creates a new purchase service.
func NewService(repo Repository, products ProductChecker) *Service {
	return &Service{repo: repo, products: products}
}

// Record validates and appends a purchase event. Stock on hand for the
// product reflects it on the next read; there is no counter to update.
func (s *Service) Record(ctx context.Context, p *Purchase) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.products.ProductExists(ctx, p.ProductID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "purchase recorded",
		"id", p.ID,
		"product_id", p.ProductID,
		"qty", p.Qty,
	)
	return nil
}

// GetByID retrieves a purchase event.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// List retrieves purchase events with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Purchase, error) {
	return s.repo.List(ctx, filter)
}
