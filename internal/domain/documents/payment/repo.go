package payment

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	CustomerID *id.ID
	InvoiceID  *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// Repository defines the interface for Payment persistence.
// Payment events are immutable: no Update, no Delete.
type Repository interface {
	Create(ctx context.Context, p *Payment) error
	GetByID(ctx context.Context, paymentID id.ID) (*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]*Payment, error)
}
