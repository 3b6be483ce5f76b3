package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/documents/invoice"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const (
	invoiceTable     = "doc_invoices"
	invoiceLineTable = "doc_invoice_lines"
	salesTable       = "doc_sales"
)

var (
	invoiceColumns     = postgres.ExtractDBColumns[invoice.Invoice]()
	invoiceLineColumns = postgres.ExtractDBColumns[invoice.Line]()
)

// InvoiceRepo implements invoice.Repository.
type InvoiceRepo struct {
	baseRepo
}

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txm *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{baseRepo{txm: txm}}
}

// Create inserts the header and all lines. The unique index on invoice_no is
// the backstop for number collisions that slip past the pre-check.
func (r *InvoiceRepo) Create(ctx context.Context, inv *invoice.Invoice) error {
	q := r.builder().
		Insert(invoiceTable).
		SetMap(map[string]any{
			"id":           inv.ID,
			"invoice_no":   inv.InvoiceNo,
			"customer_id":  inv.CustomerID,
			"date":         inv.Date,
			"supply_type":  inv.SupplyType,
			"subtotal":     inv.Subtotal,
			"total_tax":    inv.TotalTax,
			"total_amount": inv.TotalAmount,
			"notes":        inv.Notes,
			"created_at":   inv.CreatedAt,
		})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("invoice", "invoiceNo", inv.InvoiceNo)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}

	return r.insertLines(ctx, inv)
}

func (r *InvoiceRepo) insertLines(ctx context.Context, inv *invoice.Invoice) error {
	if len(inv.Lines) == 0 {
		return nil
	}

	columns := []string{
		"id", "invoice_id", "line_no", "product_id",
		"qty", "unit_price", "tax_rate",
		"taxable_value", "tax_amount", "cgst", "sgst", "igst", "line_total",
	}

	// Fast path: COPY when inside a transaction, which invoice creation
	// always is.
	if tx := r.txm.GetTx(ctx); tx != nil {
		rows := make([][]any, 0, len(inv.Lines))
		for _, l := range inv.Lines {
			rows = append(rows, []any{
				l.ID, l.InvoiceID, l.LineNo, l.ProductID,
				l.Qty, l.UnitPrice, l.TaxRate,
				l.TaxableValue, l.TaxAmount, l.CGST, l.SGST, l.IGST, l.LineTotal,
			})
		}
		inserter := postgres.NewBatchInserter(r.txm)
		if _, err := inserter.CopyFromSlice(ctx, invoiceLineTable, columns, rows); err != nil {
			return fmt.Errorf("copy invoice lines: %w", err)
		}
		return nil
	}

	q := r.builder().Insert(invoiceLineTable).Columns(columns...)
	for _, l := range inv.Lines {
		q = q.Values(
			l.ID, l.InvoiceID, l.LineNo, l.ProductID,
			l.Qty, l.UnitPrice, l.TaxRate,
			l.TaxableValue, l.TaxAmount, l.CGST, l.SGST, l.IGST, l.LineTotal,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build lines insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert invoice lines: %w", err)
	}
	return nil
}

// MirrorSales writes one flat sales row per line.
func (r *InvoiceRepo) MirrorSales(ctx context.Context, inv *invoice.Invoice) error {
	if len(inv.Lines) == 0 {
		return nil
	}

	columns := []string{
		"id", "product_id", "qty", "unit_price", "tax_rate",
		"tax_amount", "total_amount", "invoice_no", "customer_id", "sold_at",
	}

	if tx := r.txm.GetTx(ctx); tx != nil {
		rows := make([][]any, 0, len(inv.Lines))
		for _, l := range inv.Lines {
			rows = append(rows, []any{
				id.New(), l.ProductID, l.Qty, l.UnitPrice, l.TaxRate,
				l.TaxAmount, l.LineTotal, inv.InvoiceNo, inv.CustomerID, inv.Date,
			})
		}
		inserter := postgres.NewBatchInserter(r.txm)
		if _, err := inserter.CopyFromSlice(ctx, salesTable, columns, rows); err != nil {
			return fmt.Errorf("copy sales rows: %w", err)
		}
		return nil
	}

	q := r.builder().Insert(salesTable).Columns(columns...)
	for _, l := range inv.Lines {
		q = q.Values(
			id.New(), l.ProductID, l.Qty, l.UnitPrice, l.TaxRate,
			l.TaxAmount, l.LineTotal, inv.InvoiceNo, inv.CustomerID, inv.Date,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build sales insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sales rows: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) getOne(ctx context.Context, cond squirrel.Eq, key any) (*invoice.Invoice, error) {
	q := r.builder().
		Select(invoiceColumns...).
		From(invoiceTable).
		Where(cond).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoice.Invoice
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", key)
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	lines, err := r.getLines(ctx, inv.ID)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines
	return &inv, nil
}

func (r *InvoiceRepo) getLines(ctx context.Context, invoiceID id.ID) ([]invoice.Line, error) {
	q := r.builder().
		Select(invoiceLineColumns...).
		From(invoiceLineTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("line_no ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoice.Line
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select invoice lines: %w", err)
	}
	return lines, nil
}

// GetByID loads the invoice with its lines.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoice.Invoice, error) {
	return r.getOne(ctx, squirrel.Eq{"id": invoiceID}, invoiceID)
}

// GetByNumber loads the invoice with its lines by invoice number.
func (r *InvoiceRepo) GetByNumber(ctx context.Context, invoiceNo string) (*invoice.Invoice, error) {
	return r.getOne(ctx, squirrel.Eq{"invoice_no": invoiceNo}, invoiceNo)
}

// ExistsByNumber reports whether an invoice with the number exists.
func (r *InvoiceRepo) ExistsByNumber(ctx context.Context, invoiceNo string) (bool, error) {
	q := r.builder().
		Select("1").
		From(invoiceTable).
		Where(squirrel.Eq{"invoice_no": invoiceNo}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists int
	err = r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&exists)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("exists by number: %w", err)
	}
	return true, nil
}

// List returns invoice headers without lines, newest first.
func (r *InvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) ([]*invoice.Invoice, error) {
	q := r.builder().
		Select(invoiceColumns...).
		From(invoiceTable).
		OrderBy("date DESC", "invoice_no DESC")

	if filter.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
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

	var items []*invoice.Invoice
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ invoice.Repository = (*InvoiceRepo)(nil)
