package invoice

import (
	"context"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/tx"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/registers/ledger"
	"bahikhata/internal/domain/registers/stock"
	"bahikhata/internal/domain/tax"
	"bahikhata/pkg/logger"
)

// NumberSource allocates the next invoice number for a period, atomically
// within the caller's transaction.
type NumberSource interface {
	NextInvoiceNumber(ctx context.Context, period time.Time) (string, error)
}

// StockChecker validates availability with product rows locked.
type StockChecker interface {
	CheckAvailability(ctx context.Context, requirements []stock.Requirement) error
}

// CreditEvaluator checks a prospective charge against a customer's limit.
type CreditEvaluator interface {
	EvaluateCreditLimit(ctx context.Context, customerID id.ID, prospective types.Money) (*ledger.CreditEvaluation, error)
}

// Config holds invoice engine behavior switches.
type Config struct {
	// EnforceCreditLimit makes an exceeded credit limit reject the invoice.
	// When false the invoice commits and the evaluation is returned as a
	// warning for the caller to surface.
	EnforceCreditLimit bool
}

// CreateResult is a committed invoice plus an optional credit warning.
type CreateResult struct {
	Invoice *Invoice `json:"invoice"`

	// CreditWarning is set when the customer exceeded the credit limit but
	// enforcement is off.
	CreditWarning *ledger.CreditEvaluation `json:"creditWarning,omitempty"`
}

// Service is the invoice engine.
type Service struct {
	repo    Repository
	stock   StockChecker
	credit  CreditEvaluator
	numbers NumberSource
	txm     tx.Manager
	cfg     Config
}

// NewService creates a new invoice service.
func NewService(
	repo Repository,
	stockChecker StockChecker,
	credit CreditEvaluator,
	numbers NumberSource,
	txm tx.Manager,
	cfg Config,
) *Service {
	return &Service{
		repo:    repo,
		stock:   stockChecker,
		credit:  credit,
		numbers: numbers,
		txm:     txm,
		cfg:     cfg,
	}
}

// Create validates the draft, computes taxes, and commits the invoice.
//
// Stock is checked inside the transaction with product rows locked, so of two
// concurrent invoices racing for the last unit exactly one commits and the
// other fails with INSUFFICIENT_STOCK. The transaction runs at READ COMMITTED:
// the aggregate after the row lock takes a fresh statement snapshot, so a
// writer that blocked on the lock re-reads stock already reduced by the
// winner's lines. Number allocation, header, lines, and sales mirror all ride
// the same transaction; a failure at any point leaves no trace.
func (s *Service) Create(ctx context.Context, draft Draft) (*CreateResult, error) {
	if err := draft.Validate(ctx); err != nil {
		return nil, err
	}

	date := draft.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	inv, err := buildInvoice(draft, date)
	if err != nil {
		return nil, err
	}

	requirements := make([]stock.Requirement, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		requirements = append(requirements, stock.Requirement{
			ProductID: l.ProductID,
			Qty:       l.Qty,
		})
	}

	result := &CreateResult{Invoice: inv}

	err = s.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.stock.CheckAvailability(ctx, requirements); err != nil {
			return err
		}

		if inv.CustomerID != nil {
			eval, err := s.credit.EvaluateCreditLimit(ctx, *inv.CustomerID, inv.TotalAmount)
			if err != nil {
				return err
			}
			if eval.WouldExceed {
				if s.cfg.EnforceCreditLimit {
					return apperror.NewCreditLimitExceeded(
						inv.CustomerID.String(),
						eval.Outstanding.StringFixed(types.MoneyPlaces),
						eval.Limit.StringFixed(types.MoneyPlaces),
					)
				}
				result.CreditWarning = eval
			}
		}

		if inv.InvoiceNo == "" {
			number, err := s.numbers.NextInvoiceNumber(ctx, inv.Date)
			if err != nil {
				return err
			}
			inv.InvoiceNo = number
		} else {
			exists, err := s.repo.ExistsByNumber(ctx, inv.InvoiceNo)
			if err != nil {
				return err
			}
			if exists {
				return apperror.NewDuplicate("invoice", "invoiceNo", inv.InvoiceNo)
			}
		}
		for i := range inv.Lines {
			inv.Lines[i].InvoiceID = inv.ID
		}

		if err := s.repo.Create(ctx, inv); err != nil {
			return err
		}
		return s.repo.MirrorSales(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "invoice created",
		"invoice_id", inv.ID,
		"invoice_no", inv.InvoiceNo,
		"lines", len(inv.Lines),
		"total_amount", inv.TotalAmount,
	)
	return result, nil
}

// buildInvoice computes line amounts and totals for the draft.
func buildInvoice(draft Draft, date time.Time) (*Invoice, error) {
	inv := &Invoice{
		ID:         id.New(),
		InvoiceNo:  draft.InvoiceNo,
		CustomerID: draft.CustomerID,
		Date:       date,
		SupplyType: draft.SupplyType,
		Notes:      draft.Notes,
		CreatedAt:  time.Now().UTC(),
		Lines:      make([]Line, 0, len(draft.Lines)),
	}

	lineAmounts := make([]tax.LineAmounts, 0, len(draft.Lines))
	for i, cl := range draft.Lines {
		amounts, err := tax.ComputeLine(cl.Qty, cl.UnitPrice, cl.TaxRate, draft.SupplyType)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("line", i+1)
			}
			return nil, err
		}
		lineAmounts = append(lineAmounts, amounts)

		inv.Lines = append(inv.Lines, Line{
			ID:           id.New(),
			InvoiceID:    inv.ID,
			LineNo:       i + 1,
			ProductID:    cl.ProductID,
			Qty:          cl.Qty,
			UnitPrice:    cl.UnitPrice,
			TaxRate:      cl.TaxRate,
			TaxableValue: amounts.TaxableValue,
			TaxAmount:    amounts.TaxAmount,
			CGST:         amounts.CGST,
			SGST:         amounts.SGST,
			IGST:         amounts.IGST,
			LineTotal:    amounts.LineTotal,
		})
	}

	totals := tax.ComputeTotals(lineAmounts)
	inv.Subtotal = totals.Subtotal
	inv.TotalTax = totals.TotalTax
	inv.TotalAmount = totals.TotalAmount

	return inv, nil
}

// GetByID loads an invoice with its lines.
func (s *Service) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	return s.repo.GetByID(ctx, invoiceID)
}

// GetByNumber loads an invoice with its lines by number.
func (s *Service) GetByNumber(ctx context.Context, invoiceNo string) (*Invoice, error) {
	return s.repo.GetByNumber(ctx, invoiceNo)
}

// List returns invoice headers matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Invoice, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	return s.repo.List(ctx, filter)
}
