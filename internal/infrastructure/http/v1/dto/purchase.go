package dto

import (
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/purchase"
)

// RecordPurchaseRequest is the purchase event payload.
type RecordPurchaseRequest struct {
	ProductID   string         `json:"productId" binding:"required"`
	Qty         types.Quantity `json:"qty" binding:"required"`
	CostPrice   types.Money    `json:"costPrice"`
	BillNo      *string        `json:"billNo,omitempty"`
	Supplier    *string        `json:"supplier,omitempty"`
	Notes       *string        `json:"notes,omitempty"`
	PurchasedAt *time.Time     `json:"purchasedAt,omitempty"`
}

// ToEntity converts the request into a purchase event.
func (r *RecordPurchaseRequest) ToEntity() (*purchase.Purchase, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}

	purchasedAt := time.Time{}
	if r.PurchasedAt != nil {
		purchasedAt = *r.PurchasedAt
	}

	p := purchase.New(productID, r.Qty, r.CostPrice, purchasedAt)
	p.BillNo = r.BillNo
	p.Supplier = r.Supplier
	p.Notes = r.Notes
	return p, nil
}
