package dto

import (
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/payment"
)

// RecordPaymentRequest is the payment event payload.
type RecordPaymentRequest struct {
	CustomerID string      `json:"customerId" binding:"required"`
	InvoiceID  *string     `json:"invoiceId,omitempty"`
	Amount     types.Money `json:"amount"`
	Method     string      `json:"method" binding:"required"`
	Notes      *string     `json:"notes,omitempty"`
	PaidAt     *time.Time  `json:"paidAt,omitempty"`
}

// ToEntity converts the request into a payment event.
func (r *RecordPaymentRequest) ToEntity() (*payment.Payment, error) {
	customerID, err := id.Parse(r.CustomerID)
	if err != nil {
		return nil, apperror.NewValidation("invalid customer id").
			WithDetail("field", "customerId")
	}

	paidAt := time.Time{}
	if r.PaidAt != nil {
		paidAt = *r.PaidAt
	}

	p := payment.New(customerID, r.Amount, payment.Method(r.Method), paidAt)
	p.Notes = r.Notes

	if r.InvoiceID != nil && *r.InvoiceID != "" {
		invoiceID, err := id.Parse(*r.InvoiceID)
		if err != nil {
			return nil, apperror.NewValidation("invalid invoice id").
				WithDetail("field", "invoiceId")
		}
		p.InvoiceID = &invoiceID
	}

	return p, nil
}
