// Package purchase provides the purchase event document.
// Purchases are append-only: recorded once, never updated or deleted, and
// increase stock on hand for the product.
package purchase

import (
	"context"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Purchase records incoming goods from a supplier.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Qty       types.Quantity `db:"qty" json:"qty"`
	CostPrice types.Money    `db:"cost_price" json:"costPrice"`

	BillNo   *string `db:"bill_no" json:"billNo,omitempty"`
	Supplier *string `db:"supplier" json:"supplier,omitempty"`
	Notes    *string `db:"notes" json:"notes,omitempty"`

	PurchasedAt time.Time `db:"purchased_at" json:"purchasedAt"`
}

// New creates a purchase event with generated ID.
func New(productID id.ID, qty types.Quantity, costPrice types.Money, purchasedAt time.Time) *Purchase {
	if purchasedAt.IsZero() {
		purchasedAt = time.Now().UTC()
	}
	return &Purchase{
		ID:          id.New(),
		ProductID:   productID,
		Qty:         qty,
		CostPrice:   costPrice,
		PurchasedAt: purchasedAt,
	}
}

// Validate checks purchase invariants.
func (p *Purchase) Validate(ctx context.Context) error {
	if id.IsNil(p.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if !p.Qty.IsPositive() {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}
	if p.CostPrice.IsNegative() {
		return apperror.NewValidation("cost price must not be negative").
			WithDetail("field", "costPrice")
	}
	return nil
}
