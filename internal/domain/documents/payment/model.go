// Package payment provides the payment event document.
// Payments are append-only and reduce the customer's derived balance; an
// optional invoice reference is informational, for allocation reporting.
package payment

import (
	"context"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Method is how the payment was received.
type Method string

const (
	MethodCash     Method = "cash"
	MethodUPI      Method = "upi"
	MethodCard     Method = "card"
	MethodBank     Method = "bank"
	MethodCheque   Method = "cheque"
	MethodWriteOff Method = "write_off"
)

// Valid reports whether m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodCash, MethodUPI, MethodCard, MethodBank, MethodCheque, MethodWriteOff:
		return true
	}
	return false
}

// Payment records money received from a customer.
type Payment struct {
	ID id.ID `db:"id" json:"id"`

	CustomerID id.ID  `db:"customer_id" json:"customerId"`
	InvoiceID  *id.ID `db:"invoice_id" json:"invoiceId,omitempty"`

	// Amount is positive; it reduces the customer's outstanding balance.
	Amount types.Money `db:"amount" json:"amount"`

	Method Method  `db:"method" json:"method"`
	Notes  *string `db:"notes" json:"notes,omitempty"`

	PaidAt time.Time `db:"paid_at" json:"paidAt"`
}

// New creates a payment event with generated ID.
func New(customerID id.ID, amount types.Money, method Method, paidAt time.Time) *Payment {
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	return &Payment{
		ID:         id.New(),
		CustomerID: customerID,
		Amount:     amount,
		Method:     method,
		PaidAt:     paidAt,
	}
}

// Validate checks payment invariants.
func (p *Payment) Validate(ctx context.Context) error {
	if id.IsNil(p.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}
	if !p.Amount.IsPositive() {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount")
	}
	if !p.Method.Valid() {
		return apperror.NewValidation("unknown payment method").
			WithDetail("field", "method").
			WithDetail("value", string(p.Method))
	}
	return nil
}
