// Package invoice provides the sales invoice document.
//
// An invoice is the only event that decreases stock. It is committed
// atomically with its lines and sales mirror rows: either the whole invoice
// exists or none of it does.
package invoice

import (
	"context"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/tax"
)

// Invoice is a committed sales invoice header with its lines.
type Invoice struct {
	ID id.ID `db:"id" json:"id"`

	// InvoiceNo is unique across all invoices, e.g. INV-202608-0042.
	InvoiceNo string `db:"invoice_no" json:"invoiceNo"`

	// CustomerID is nil for walk-in cash sales.
	CustomerID *id.ID `db:"customer_id" json:"customerId,omitempty"`

	Date       time.Time      `db:"date" json:"date"`
	SupplyType tax.SupplyType `db:"supply_type" json:"supplyType"`

	Subtotal    types.Money `db:"subtotal" json:"subtotal"`
	TotalTax    types.Money `db:"total_tax" json:"totalTax"`
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	Notes *string `db:"notes" json:"notes,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Lines []Line `db:"-" json:"lines"`
}

// Line is one invoice line with all computed amounts stored as billed.
// Amounts are never recomputed from qty and price after commit; the stored
// values are the legal record.
type Line struct {
	ID        id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Qty       types.Quantity `db:"qty" json:"qty"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`
	TaxRate   types.Money    `db:"tax_rate" json:"taxRate"`

	TaxableValue types.Money `db:"taxable_value" json:"taxableValue"`
	TaxAmount    types.Money `db:"tax_amount" json:"taxAmount"`
	CGST         types.Money `db:"cgst" json:"cgst"`
	SGST         types.Money `db:"sgst" json:"sgst"`
	IGST         types.Money `db:"igst" json:"igst"`
	LineTotal    types.Money `db:"line_total" json:"lineTotal"`
}

// CartLine is a draft line before amounts are computed.
type CartLine struct {
	ProductID id.ID          `json:"productId"`
	Qty       types.Quantity `json:"qty"`
	UnitPrice types.Money    `json:"unitPrice"`
	TaxRate   types.Money    `json:"taxRate"`
}

// Draft is the input for creating an invoice.
type Draft struct {
	// InvoiceNo may be supplied for imported or manually numbered invoices;
	// empty means allocate automatically.
	InvoiceNo  string
	CustomerID *id.ID
	Date       time.Time
	SupplyType tax.SupplyType
	Notes      *string
	Lines      []CartLine
}

// Validate checks the draft shape. Per-line amount constraints are enforced
// by the tax computation.
func (d *Draft) Validate(ctx context.Context) error {
	if !d.SupplyType.Valid() {
		return apperror.NewValidation("unknown supply type").
			WithDetail("field", "supplyType").
			WithDetail("value", string(d.SupplyType))
	}
	if len(d.Lines) == 0 {
		return apperror.NewValidation("invoice must have at least one line").
			WithDetail("field", "lines")
	}
	for i, l := range d.Lines {
		if id.IsNil(l.ProductID) {
			return apperror.NewValidation("line product is required").
				WithDetail("field", "lines").
				WithDetail("line", i+1)
		}
	}
	if d.CustomerID != nil && id.IsNil(*d.CustomerID) {
		return apperror.NewValidation("customer id must not be empty when set").
			WithDetail("field", "customerId")
	}
	return nil
}
