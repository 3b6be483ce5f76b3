package product

import (
	"context"
	"strings"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/pkg/logger"
)

// ReferenceChecker reports whether any purchase, adjustment, or sale event
// references a product. Implemented by the stock register repository.
type ReferenceChecker interface {
	ProductReferenced(ctx context.Context, productID id.ID) (bool, error)
}

// Service provides business logic for the product catalog.
type Service struct {
	repo Repository
	refs ReferenceChecker
}

// NewService creates a new product service.
func NewService(repo Repository, refs ReferenceChecker) *Service {
	return &Service{repo: repo, refs: refs}
}

// Create validates the product and persists it after uniqueness checks on
// name and barcode.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkUnique(ctx, p); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// Update validates and persists changes to descriptive fields.
func (s *Service) Update(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	if err := s.checkUnique(ctx, p); err != nil {
		return err
	}

	p.Touch()
	return s.repo.Update(ctx, p)
}

// Delete removes a product, refusing when any event references it.
// The purchase/sale history behind stock and ledger figures would otherwise
// vanish with the product.
func (s *Service) Delete(ctx context.Context, productID id.ID) error {
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return err
	}

	referenced, err := s.refs.ProductReferenced(ctx, productID)
	if err != nil {
		return err
	}
	if referenced {
		return apperror.NewConflict("product is referenced by recorded transactions and cannot be deleted").
			WithDetail("product_id", productID.String())
	}

	return s.repo.Delete(ctx, productID)
}

// GetByID retrieves a product.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List retrieves products with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Product, error) {
	return s.repo.List(ctx, filter)
}

// checkUnique verifies the name and barcode are not used by another product.
func (s *Service) checkUnique(ctx context.Context, p *Product) error {
	existing, err := s.repo.FindByName(ctx, p.Name)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	if err == nil && existing.ID != p.ID {
		return apperror.NewDuplicate("product", "name", p.Name)
	}

	if p.Barcode != nil && strings.TrimSpace(*p.Barcode) != "" {
		existing, err := s.repo.FindByBarcode(ctx, *p.Barcode)
		if err != nil && !apperror.IsNotFound(err) {
			return err
		}
		if err == nil && existing.ID != p.ID {
			return apperror.NewDuplicate("product", "barcode", *p.Barcode)
		}
	}

	return nil
}
