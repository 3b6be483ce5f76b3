// Package ledger provides the customer ledger: balances derived from the
// opening balance plus billed invoices minus recorded payments.
package ledger

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Repository aggregates ledger amounts from the event store. Balances are
// never stored; every query recomputes them from invoice and payment rows.
type Repository interface {
	// GetOpeningAndLimit returns the customer's opening balance and credit
	// limit. Fails with NotFound when the customer is unknown.
	GetOpeningAndLimit(ctx context.Context, customerID id.ID) (opening, limit types.Money, err error)

	// SumInvoiced returns Σ invoice.total_amount for the customer with
	// invoice date ≤ asOf.
	SumInvoiced(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error)

	// SumPaid returns Σ payment.amount for the customer with payment
	// date ≤ asOf.
	SumPaid(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error)

	// GetInvoiceTotal returns total_amount for the invoice.
	// Fails with NotFound when the invoice is unknown.
	GetInvoiceTotal(ctx context.Context, invoiceID id.ID) (types.Money, error)

	// SumPaymentsForInvoice returns Σ payment.amount referencing the invoice.
	SumPaymentsForInvoice(ctx context.Context, invoiceID id.ID) (types.Money, error)
}
