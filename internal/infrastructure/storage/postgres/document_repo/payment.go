package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/documents/payment"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const paymentTable = "doc_payments"

var paymentColumns = postgres.ExtractDBColumns[payment.Payment]()

// PaymentRepo implements payment.Repository.
type PaymentRepo struct {
	baseRepo
}

// NewPaymentRepo creates a new payment repository.
func NewPaymentRepo(txm *postgres.TxManager) *PaymentRepo {
	return &PaymentRepo{baseRepo{txm: txm}}
}

// Create appends a payment event.
func (r *PaymentRepo) Create(ctx context.Context, p *payment.Payment) error {
	q := r.builder().
		Insert(paymentTable).
		SetMap(map[string]any{
			"id":          p.ID,
			"customer_id": p.CustomerID,
			"invoice_id":  p.InvoiceID,
			"amount":      p.Amount,
			"method":      p.Method,
			"notes":       p.Notes,
			"paid_at":     p.PaidAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID.
func (r *PaymentRepo) GetByID(ctx context.Context, paymentID id.ID) (*payment.Payment, error) {
	q := r.builder().
		Select(paymentColumns...).
		From(paymentTable).
		Where(squirrel.Eq{"id": paymentID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p payment.Payment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("payment", paymentID)
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &p, nil
}

// List retrieves payments, newest first.
func (r *PaymentRepo) List(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	q := r.builder().
		Select(paymentColumns...).
		From(paymentTable).
		OrderBy("paid_at DESC", "id DESC")

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"paid_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"paid_at": *filter.DateTo})
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

	var items []*payment.Payment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ payment.Repository = (*PaymentRepo)(nil)
