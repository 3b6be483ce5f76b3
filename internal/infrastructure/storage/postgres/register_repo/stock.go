// Package register_repo provides PostgreSQL implementations for register
// repositories. Registers are derived views over the event tables; nothing
// here writes.
package register_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// StockRepo implements stock.Repository.
type StockRepo struct {
	txm *postgres.TxManager
}

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{txm: txm}
}

// stockAggregateSQL recomputes quantity on hand from the full event history.
// Quantities are stored as scaled BIGINT, so the sums stay exact.
const stockAggregateSQL = `
	SELECT
		COALESCE((SELECT SUM(qty)   FROM doc_purchases         WHERE product_id = $1), 0)
	  + COALESCE((SELECT SUM(delta) FROM doc_stock_adjustments WHERE product_id = $1), 0)
	  - COALESCE((SELECT SUM(qty)   FROM doc_invoice_lines     WHERE product_id = $1), 0)
`

func (r *StockRepo) aggregate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	var scaled int64
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, stockAggregateSQL, productID).Scan(&scaled)
	if err != nil {
		return 0, fmt.Errorf("aggregate stock: %w", err)
	}
	return types.NewQuantityFromInt64Scaled(scaled), nil
}

// GetStock returns quantity on hand for the product.
func (r *StockRepo) GetStock(ctx context.Context, productID id.ID) (types.Quantity, error) {
	if err := r.ProductExists(ctx, productID); err != nil {
		return 0, err
	}
	return r.aggregate(ctx, productID)
}

// GetStockForUpdate locks the product row, then aggregates. The row lock
// serializes concurrent invoice commits for the same product: the second
// writer blocks here until the first commits, and the aggregate's fresh
// READ COMMITTED snapshot then includes the first writer's lines. Must not
// run under a snapshot isolation level, which would aggregate over the
// pre-lock snapshot.
func (r *StockRepo) GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	var locked id.ID
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT id FROM cat_products WHERE id = $1 FOR UPDATE`, productID,
	).Scan(&locked)
	if err == pgx.ErrNoRows {
		return 0, apperror.NewNotFound("product", productID)
	}
	if err != nil {
		return 0, fmt.Errorf("lock product row: %w", err)
	}

	return r.aggregate(ctx, productID)
}

// ProductExists fails with NotFound when the product is unknown.
func (r *StockRepo) ProductExists(ctx context.Context, productID id.ID) error {
	var one int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT 1 FROM cat_products WHERE id = $1`, productID,
	).Scan(&one)
	if err == pgx.ErrNoRows {
		return apperror.NewNotFound("product", productID)
	}
	if err != nil {
		return fmt.Errorf("product exists: %w", err)
	}
	return nil
}

// ProductReferenced reports whether any event references the product.
func (r *StockRepo) ProductReferenced(ctx context.Context, productID id.ID) (bool, error) {
	const sql = `
		SELECT EXISTS (SELECT 1 FROM doc_purchases         WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM doc_stock_adjustments WHERE product_id = $1)
		    OR EXISTS (SELECT 1 FROM doc_invoice_lines     WHERE product_id = $1)
	`

	var referenced bool
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, productID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("product referenced: %w", err)
	}
	return referenced, nil
}

// Ensure interface compliance.
var _ stock.Repository = (*StockRepo)(nil)
