package invoice

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
)

// ListFilter narrows List results.
type ListFilter struct {
	CustomerID *id.ID
	DateFrom   *time.Time
	DateTo     *time.Time
	Limit      int
	Offset     int
}

// Repository defines the interface for invoice persistence.
// Invoices are immutable once committed: no Update, no Delete.
type Repository interface {
	// Create inserts the header and all lines. Must run inside the
	// invoice transaction.
	Create(ctx context.Context, inv *Invoice) error

	// MirrorSales writes one flat sales row per line into the sales
	// register. Must run in the same transaction as Create.
	MirrorSales(ctx context.Context, inv *Invoice) error

	// GetByID loads the invoice with its lines.
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// GetByNumber loads the invoice with its lines by invoice number.
	GetByNumber(ctx context.Context, invoiceNo string) (*Invoice, error)

	// ExistsByNumber reports whether an invoice with the number exists.
	ExistsByNumber(ctx context.Context, invoiceNo string) (bool, error)

	// List returns invoice headers without lines, newest first.
	List(ctx context.Context, filter ListFilter) ([]*Invoice, error)
}
