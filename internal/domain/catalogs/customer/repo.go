package customer

import (
	"context"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	Search string // matches name or phone, case-insensitive
	Limit  int
	Offset int
}

// Repository defines the interface for Customer persistence.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error

	GetByID(ctx context.Context, customerID id.ID) (*Customer, error)
	List(ctx context.Context, filter ListFilter) ([]*Customer, error)
}
