package register_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/registers/ledger"
	"bahikhata/internal/infrastructure/storage/postgres"
)

// LedgerRepo implements ledger.Repository.
type LedgerRepo struct {
	txm *postgres.TxManager
}

// NewLedgerRepo creates a new ledger register repository.
func NewLedgerRepo(txm *postgres.TxManager) *LedgerRepo {
	return &LedgerRepo{txm: txm}
}

// GetOpeningAndLimit returns the customer's opening balance and credit limit.
func (r *LedgerRepo) GetOpeningAndLimit(ctx context.Context, customerID id.ID) (types.Money, types.Money, error) {
	var opening, limit types.Money
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT opening_balance, credit_limit FROM cat_customers WHERE id = $1`,
		customerID,
	).Scan(&opening, &limit)
	if err == pgx.ErrNoRows {
		return types.ZeroMoney(), types.ZeroMoney(), apperror.NewNotFound("customer", customerID)
	}
	if err != nil {
		return types.ZeroMoney(), types.ZeroMoney(), fmt.Errorf("get opening and limit: %w", err)
	}
	return opening, limit, nil
}

// SumInvoiced returns the total billed to the customer up to asOf.
func (r *LedgerRepo) SumInvoiced(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error) {
	var sum types.Money
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)
		 FROM doc_invoices
		 WHERE customer_id = $1 AND date <= $2`,
		customerID, asOf,
	).Scan(&sum)
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum invoiced: %w", err)
	}
	return sum, nil
}

// SumPaid returns the total received from the customer up to asOf.
func (r *LedgerRepo) SumPaid(ctx context.Context, customerID id.ID, asOf time.Time) (types.Money, error) {
	var sum types.Money
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)
		 FROM doc_payments
		 WHERE customer_id = $1 AND paid_at <= $2`,
		customerID, asOf,
	).Scan(&sum)
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum paid: %w", err)
	}
	return sum, nil
}

// GetInvoiceTotal returns total_amount for the invoice.
func (r *LedgerRepo) GetInvoiceTotal(ctx context.Context, invoiceID id.ID) (types.Money, error) {
	var total types.Money
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT total_amount FROM doc_invoices WHERE id = $1`, invoiceID,
	).Scan(&total)
	if err == pgx.ErrNoRows {
		return types.ZeroMoney(), apperror.NewNotFound("invoice", invoiceID)
	}
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("get invoice total: %w", err)
	}
	return total, nil
}

// SumPaymentsForInvoice returns payments allocated to the invoice.
func (r *LedgerRepo) SumPaymentsForInvoice(ctx context.Context, invoiceID id.ID) (types.Money, error) {
	var sum types.Money
	err := r.txm.GetQuerier(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM doc_payments WHERE invoice_id = $1`,
		invoiceID,
	).Scan(&sum)
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum payments for invoice: %w", err)
	}
	return sum, nil
}

// Ensure interface compliance.
var _ ledger.Repository = (*LedgerRepo)(nil)
