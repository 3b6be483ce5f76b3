package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/documents/purchase"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const purchaseTable = "doc_purchases"

var purchaseColumns = postgres.ExtractDBColumns[purchase.Purchase]()

// PurchaseRepo implements purchase.Repository.
type PurchaseRepo struct {
	baseRepo
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{baseRepo{txm: txm}}
}

// Create appends a purchase event.
func (r *PurchaseRepo) Create(ctx context.Context, p *purchase.Purchase) error {
	q := r.builder().
		Insert(purchaseTable).
		SetMap(map[string]any{
			"id":           p.ID,
			"product_id":   p.ProductID,
			"qty":          p.Qty,
			"cost_price":   p.CostPrice,
			"bill_no":      p.BillNo,
			"supplier":     p.Supplier,
			"notes":        p.Notes,
			"purchased_at": p.PurchasedAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID retrieves a purchase by ID.
func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchase.Purchase, error) {
	q := r.builder().
		Select(purchaseColumns...).
		From(purchaseTable).
		Where(squirrel.Eq{"id": purchaseID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchase.Purchase
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", purchaseID)
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// List retrieves purchases, newest first.
func (r *PurchaseRepo) List(ctx context.Context, filter purchase.ListFilter) ([]*purchase.Purchase, error) {
	q := r.builder().
		Select(purchaseColumns...).
		From(purchaseTable).
		OrderBy("purchased_at DESC", "id DESC")

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"purchased_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"purchased_at": *filter.DateTo})
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

	var items []*purchase.Purchase
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ purchase.Repository = (*PurchaseRepo)(nil)
