package product

import (
	"context"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	Search string // matches name or barcode, case-insensitive
	Limit  int
	Offset int
}

// Repository defines the interface for Product persistence.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, productID id.ID) error

	GetByID(ctx context.Context, productID id.ID) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]*Product, error)
}
