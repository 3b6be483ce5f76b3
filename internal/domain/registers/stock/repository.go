// Package stock provides the stock register: quantity on hand derived from
// the append-only event history.
package stock

import (
	"context"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// Repository aggregates stock from the event store. There is no stored
// counter to read or write; every query recomputes
//
//	Σ purchase.qty + Σ adjustment.delta − Σ invoice_line.qty
//
// over all events ever recorded for the product.
type Repository interface {
	// GetStock returns quantity on hand for the product.
	// Fails with NotFound when the product does not exist.
	GetStock(ctx context.Context, productID id.ID) (types.Quantity, error)

	// GetStockForUpdate locks the product row, then aggregates. Must be
	// called inside a transaction; the lock serializes concurrent invoice
	// commits touching the same product.
	GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error)

	// ProductExists fails with NotFound when the product is unknown.
	ProductExists(ctx context.Context, productID id.ID) error

	// ProductReferenced reports whether any purchase, adjustment, or sale
	// event references the product.
	ProductReferenced(ctx context.Context, productID id.ID) (bool, error)
}
