// Package adjustment provides the stock adjustment event document.
// Adjustments are the manual correction channel: a signed quantity delta
// with a reason, appended once and never edited.
package adjustment

import (
	"context"
	"strings"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Adjustment records a manual stock correction.
type Adjustment struct {
	ID id.ID `db:"id" json:"id"`

	ProductID id.ID `db:"product_id" json:"productId"`

	// Delta is signed: positive adds stock, negative removes it. Never zero.
	Delta types.Quantity `db:"delta" json:"delta"`

	Reason string `db:"reason" json:"reason"`

	AdjustedAt time.Time `db:"adjusted_at" json:"adjustedAt"`
}

// New creates an adjustment event with generated ID.
func New(productID id.ID, delta types.Quantity, reason string) *Adjustment {
	return &Adjustment{
		ID:         id.New(),
		ProductID:  productID,
		Delta:      delta,
		Reason:     strings.TrimSpace(reason),
		AdjustedAt: time.Now().UTC(),
	}
}

// Validate checks adjustment invariants.
func (a *Adjustment) Validate(ctx context.Context) error {
	if id.IsNil(a.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	if a.Delta.IsZero() {
		return apperror.NewValidation("delta must not be zero").
			WithDetail("field", "delta")
	}
	if a.Reason == "" {
		return apperror.NewValidation("reason is required").
			WithDetail("field", "reason")
	}
	return nil
}
