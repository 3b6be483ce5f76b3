package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/domain/documents/adjustment"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const adjustmentTable = "doc_stock_adjustments"

var adjustmentColumns = postgres.ExtractDBColumns[adjustment.Adjustment]()

// AdjustmentRepo implements adjustment.Repository.
type AdjustmentRepo struct {
	baseRepo
}

// NewAdjustmentRepo creates a new adjustment repository.
func NewAdjustmentRepo(txm *postgres.TxManager) *AdjustmentRepo {
	return &AdjustmentRepo{baseRepo{txm: txm}}
}

// Create appends an adjustment event.
func (r *AdjustmentRepo) Create(ctx context.Context, a *adjustment.Adjustment) error {
	q := r.builder().
		Insert(adjustmentTable).
		SetMap(map[string]any{
			"id":          a.ID,
			"product_id":  a.ProductID,
			"delta":       a.Delta,
			"reason":      a.Reason,
			"adjusted_at": a.AdjustedAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// List retrieves adjustments, newest first.
func (r *AdjustmentRepo) List(ctx context.Context, filter adjustment.ListFilter) ([]*adjustment.Adjustment, error) {
	q := r.builder().
		Select(adjustmentColumns...).
		From(adjustmentTable).
		OrderBy("adjusted_at DESC", "id DESC")

	if filter.ProductID != nil {
		q = q.Where(squirrel.Eq{"product_id": *filter.ProductID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"adjusted_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"adjusted_at": *filter.DateTo})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*adjustment.Adjustment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ adjustment.Repository = (*AdjustmentRepo)(nil)
