package dto

import (
	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/adjustment"
)

// RecordAdjustmentRequest is the stock adjustment payload.
type RecordAdjustmentRequest struct {
	ProductID string         `json:"productId" binding:"required"`
	Delta     types.Quantity `json:"delta" binding:"required"`
	Reason    string         `json:"reason" binding:"required"`
}

// ToEntity converts the request into an adjustment event.
func (r *RecordAdjustmentRequest) ToEntity() (*adjustment.Adjustment, error) {
	productID, err := id.Parse(r.ProductID)
	if err != nil {
		return nil, apperror.NewValidation("invalid product id").
			WithDetail("field", "productId")
	}
	return adjustment.New(productID, r.Delta, r.Reason), nil
}
