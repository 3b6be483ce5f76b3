package dto

import (
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/domain/tax"
)

// InvoiceLineRequest is one cart line of an invoice creation request.
type InvoiceLineRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Qty       types.Quantity `json:"qty" binding:"required"`
	UnitPrice types.Money    `json:"unitPrice"`
	TaxRate   types.Money    `json:"taxRate"`
}

// CreateInvoiceRequest is the invoice creation payload.
type CreateInvoiceRequest struct {
	// InvoiceNo is optional; empty means allocate the next number.
	InvoiceNo  string               `json:"invoiceNo,omitempty"`
	CustomerID *string              `json:"customerId,omitempty"`
	Date       *time.Time           `json:"date,omitempty"`
	SupplyType string               `json:"supplyType" binding:"required"`
	Notes      *string              `json:"notes,omitempty"`
	Lines      []InvoiceLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToDraft converts the request into an invoice draft.
func (r *CreateInvoiceRequest) ToDraft() (invoice.Draft, error) {
	draft := invoice.Draft{
		InvoiceNo:  r.InvoiceNo,
		SupplyType: tax.SupplyType(r.SupplyType),
		Notes:      r.Notes,
		Lines:      make([]invoice.CartLine, 0, len(r.Lines)),
	}

	if r.Date != nil {
		draft.Date = *r.Date
	}

	if r.CustomerID != nil && *r.CustomerID != "" {
		customerID, err := id.Parse(*r.CustomerID)
		if err != nil {
			return invoice.Draft{}, apperror.NewValidation("invalid customer id").
				WithDetail("field", "customerId")
		}
		draft.CustomerID = &customerID
	}

	for i, l := range r.Lines {
		productID, err := id.Parse(l.ProductID)
		if err != nil {
			return invoice.Draft{}, apperror.NewValidation("invalid product id").
				WithDetail("field", "lines").
				WithDetail("line", i+1)
		}
		draft.Lines = append(draft.Lines, invoice.CartLine{
			ProductID: productID,
			Qty:       l.Qty,
			UnitPrice: l.UnitPrice,
			TaxRate:   l.TaxRate,
		})
	}

	return draft, nil
}
