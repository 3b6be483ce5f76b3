// Package product provides the product catalog.
package product

import (
	"context"
	"strings"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Product is a sellable item. Name and barcode (when present) are unique.
// Descriptive fields stay editable after the product is referenced by
// purchase or sale events; the identity itself never changes and a referenced
// product cannot be deleted.
type Product struct {
	ID id.ID `db:"id" json:"id"`

	Name     string  `db:"name" json:"name"`
	Category *string `db:"category" json:"category,omitempty"`
	Barcode  *string `db:"barcode" json:"barcode,omitempty"`

	// Unit of measure ("pcs", "kg", "ltr"); quantities may be fractional.
	Unit string `db:"unit" json:"unit"`

	// SellingPrice is the default pre-tax price per unit.
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	// TaxRate is the default GST percent (0, 5, 12, 18, 28).
	TaxRate types.Money `db:"tax_rate" json:"taxRate"`

	// LowStockThreshold flags the product in stock reports when stock on
	// hand falls to or below it. Zero disables the flag.
	LowStockThreshold types.Quantity `db:"low_stock_threshold" json:"lowStockThreshold"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a product with generated ID and timestamps.
func New(name, unit string) *Product {
	now := time.Now().UTC()
	if unit == "" {
		unit = "pcs"
	}
	return &Product{
		ID:           id.New(),
		Name:         strings.TrimSpace(name),
		Unit:         unit,
		SellingPrice: types.ZeroMoney(),
		TaxRate:      types.ZeroMoney(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (p *Product) Touch() {
	p.UpdatedAt = time.Now().UTC()
}

// Validate checks product invariants.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Unit == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if p.SellingPrice.IsNegative() {
		return apperror.NewValidation("selling price must not be negative").
			WithDetail("field", "sellingPrice")
	}
	if p.TaxRate.IsNegative() {
		return apperror.NewValidation("tax rate must not be negative").
			WithDetail("field", "taxRate")
	}
	if p.LowStockThreshold.IsNegative() {
		return apperror.NewValidation("low stock threshold must not be negative").
			WithDetail("field", "lowStockThreshold")
	}
	return nil
}
