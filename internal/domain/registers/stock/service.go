package stock

import (
	"context"
	"sort"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Service is the stock engine. All reads re-aggregate the event store, so a
// stock figure can never drift from recorded history.
type Service struct {
	repo Repository
}

// NewService creates a new stock service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStock returns quantity on hand for a product. Pure read, no side
// effects; calling it twice without intervening writes yields the same value.
func (s *Service) GetStock(ctx context.Context, productID id.ID) (types.Quantity, error) {
	return s.repo.GetStock(ctx, productID)
}

// Requirement is one line of a stock availability check.
type Requirement struct {
	ProductID id.ID
	Qty       types.Quantity
}

// CheckAvailability validates that every requirement can be met, locking
// product rows first. Must run inside the invoice transaction: the second of
// two concurrent invoices for the same product blocks on the row lock, then
// re-reads stock that already reflects the first invoice's lines.
//
// The whole check fails on the first short line; the invoice is
// all-or-nothing.
func (s *Service) CheckAvailability(ctx context.Context, requirements []Requirement) error {
	// Lock in a stable order to avoid deadlocks between concurrent invoices.
	sorted := make([]Requirement, len(requirements))
	copy(sorted, requirements)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ProductID.String() < sorted[j].ProductID.String()
	})

	// A product may appear on several cart lines; requirements are summed
	// per product before comparing against stock.
	needed := make(map[id.ID]types.Quantity, len(sorted))
	for _, r := range sorted {
		needed[r.ProductID] += r.Qty
	}

	seen := make(map[id.ID]bool, len(sorted))
	for _, r := range sorted {
		if seen[r.ProductID] {
			continue
		}
		seen[r.ProductID] = true

		available, err := s.repo.GetStockForUpdate(ctx, r.ProductID)
		if err != nil {
			return err
		}

		if available < needed[r.ProductID] {
			return apperror.NewInsufficientStock(
				r.ProductID.String(),
				needed[r.ProductID].Float64(),
				available.Float64(),
			)
		}
	}

	return nil
}

// ProductExists fails with NotFound when the product is unknown.
func (s *Service) ProductExists(ctx context.Context, productID id.ID) error {
	return s.repo.ProductExists(ctx, productID)
}

// ProductReferenced reports whether any event references the product.
// Used by the product catalog to refuse deleting a product whose history
// backs stock and ledger figures.
func (s *Service) ProductReferenced(ctx context.Context, productID id.ID) (bool, error) {
	return s.repo.ProductReferenced(ctx, productID)
}
