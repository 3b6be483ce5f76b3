// Package report_repo provides PostgreSQL implementation for report queries.
// Reports aggregate over the event tables directly; no intermediate state.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/reports"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// ReportsRepo implements reports.Repository.
type ReportsRepo struct {
	txm *postgres.TxManager
}

// NewReportsRepo creates a new reports repository.
func NewReportsRepo(txm *postgres.TxManager) *ReportsRepo {
	return &ReportsRepo{txm: txm}
}

// stockSnapshotRow is the raw query row; quantity arrives as scaled BIGINT.
type stockSnapshotRow struct {
	ProductID       id.ID       `db:"product_id"`
	ProductName     string      `db:"product_name"`
	Unit            string      `db:"unit"`
	QtyScaled       int64       `db:"qty_scaled"`
	ThresholdScaled int64       `db:"threshold_scaled"`
	SellingPrice    types.Money `db:"selling_price"`
}

// GetStockSnapshot returns the current position for every product.
func (r *ReportsRepo) GetStockSnapshot(ctx context.Context) ([]reports.StockSnapshotItem, error) {
	const sql = `
		SELECT p.id   AS product_id,
		       p.name AS product_name,
		       p.unit,
		       COALESCE(pur.qty, 0) + COALESCE(adj.delta, 0) - COALESCE(sold.qty, 0) AS qty_scaled,
		       p.low_stock_threshold AS threshold_scaled,
		       p.selling_price
		FROM cat_products p
		LEFT JOIN (SELECT product_id, SUM(qty)   AS qty   FROM doc_purchases         GROUP BY product_id) pur  ON pur.product_id  = p.id
		LEFT JOIN (SELECT product_id, SUM(delta) AS delta FROM doc_stock_adjustments GROUP BY product_id) adj  ON adj.product_id  = p.id
		LEFT JOIN (SELECT product_id, SUM(qty)   AS qty   FROM doc_invoice_lines     GROUP BY product_id) sold ON sold.product_id = p.id
		ORDER BY p.name ASC
	`

	var rows []stockSnapshotRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, sql); err != nil {
		return nil, fmt.Errorf("stock snapshot: %w", err)
	}

	items := make([]reports.StockSnapshotItem, 0, len(rows))
	for _, row := range rows {
		qty := types.NewQuantityFromInt64Scaled(row.QtyScaled)
		threshold := types.NewQuantityFromInt64Scaled(row.ThresholdScaled)

		item := reports.StockSnapshotItem{
			ProductID:         row.ProductID,
			ProductName:       row.ProductName,
			Unit:              row.Unit,
			Quantity:          qty,
			LowStockThreshold: threshold,
			LowStock:          threshold.IsPositive() && qty <= threshold,
			StockValue:        types.ZeroMoney(),
		}
		if qty.IsPositive() {
			qtyDec := types.NewMoney(qty.Float64())
			item.StockValue = types.RoundMoney(qtyDec.Mul(row.SellingPrice))
		}
		items = append(items, item)
	}
	return items, nil
}

// CountProducts returns the number of catalog products.
func (r *ReportsRepo) CountProducts(ctx context.Context) (int, error) {
	var count int
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM cat_products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// GetPeriodTotals returns purchase and sales figures for [from, to].
func (r *ReportsRepo) GetPeriodTotals(ctx context.Context, from, to time.Time) (reports.PeriodTotals, error) {
	totals := reports.PeriodTotals{
		PurchaseTotal: types.ZeroMoney(),
		SalesTotal:    types.ZeroMoney(),
		TaxCollected:  types.ZeroMoney(),
	}

	// qty is a scaled BIGINT; divide out the scale before multiplying by
	// the unit cost.
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM((qty::numeric / 10000) * cost_price), 0)
		FROM doc_purchases
		WHERE purchased_at >= $1 AND purchased_at <= $2
	`, from, to).Scan(&totals.PurchaseTotal)
	if err != nil {
		return totals, fmt.Errorf("purchase totals: %w", err)
	}

	err = r.txm.GetQuerier(ctx).QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0),
		       COALESCE(SUM(total_tax), 0),
		       COUNT(*)
		FROM doc_invoices
		WHERE date >= $1 AND date <= $2
	`, from, to).Scan(&totals.SalesTotal, &totals.TaxCollected, &totals.InvoiceCount)
	if err != nil {
		return totals, fmt.Errorf("sales totals: %w", err)
	}

	return totals, nil
}

// GetCustomerBalances returns the derived balance for every customer.
func (r *ReportsRepo) GetCustomerBalances(ctx context.Context) ([]reports.CustomerBalanceItem, error) {
	const sql = `
		SELECT c.id   AS customer_id,
		       c.name,
		       c.phone,
		       c.opening_balance + COALESCE(inv.total, 0) - COALESCE(pay.total, 0) AS outstanding,
		       c.credit_limit
		FROM cat_customers c
		LEFT JOIN (SELECT customer_id, SUM(total_amount) AS total FROM doc_invoices GROUP BY customer_id) inv ON inv.customer_id = c.id
		LEFT JOIN (SELECT customer_id, SUM(amount)       AS total FROM doc_payments GROUP BY customer_id) pay ON pay.customer_id = c.id
		ORDER BY c.name ASC
	`

	var items []reports.CustomerBalanceItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql); err != nil {
		return nil, fmt.Errorf("customer balances: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ reports.Repository = (*ReportsRepo)(nil)
