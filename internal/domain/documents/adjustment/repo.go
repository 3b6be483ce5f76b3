package adjustment

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	ProductID *id.ID
	DateFrom  *time.Time
	DateTo    *time.Time
	Limit     int
	Offset    int
}

// Repository defines the interface for Adjustment persistence.
// Adjustment events are immutable: no Update, no Delete.
type Repository interface {
	Create(ctx context.Context, a *Adjustment) error
	List(ctx context.Context, filter ListFilter) ([]*Adjustment, error)
}
