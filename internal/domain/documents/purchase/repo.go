package purchase

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results by business date.
type ListFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// Repository defines the interface for Purchase persistence.
// There is no Update or Delete: purchase events are immutable.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)
	List(ctx context.Context, filter ListFilter) ([]*Purchase, error)
}
