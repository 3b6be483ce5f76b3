package ledger

import (
	"context"
	"time"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/payment"
	"bahikhata/pkg/logger"
)

// Balance is a customer's position at a point in time.
//
//	Outstanding = Opening + Invoiced − Paid
//
// Positive means the customer owes money.
type Balance struct {
	CustomerID  id.ID       `json:"customerId"`
	AsOf        time.Time   `json:"asOf"`
	Opening     types.Money `json:"opening"`
	Invoiced    types.Money `json:"invoiced"`
	Paid        types.Money `json:"paid"`
	Outstanding types.Money `json:"outstanding"`
}

// InvoiceOutstanding is an invoice total against payments allocated to it.
type InvoiceOutstanding struct {
	InvoiceID   id.ID       `json:"invoiceId"`
	Total       types.Money `json:"total"`
	Paid        types.Money `json:"paid"`
	Outstanding types.Money `json:"outstanding"`
}

// CreditEvaluation is the result of checking a prospective charge against a
// customer's credit limit.
type CreditEvaluation struct {
	CustomerID  id.ID
	Outstanding types.Money
	Prospective types.Money
	Limit       types.Money
	// Unlimited is true when the customer has no credit limit configured.
	Unlimited   bool
	WouldExceed bool
}

// Service is the ledger engine: derived customer balances, payment recording,
// and credit limit evaluation.
type Service struct {
	repo     Repository
	payments payment.Repository
}

// NewService creates a new ledger service.
func NewService(repo Repository, payments payment.Repository) *Service {
	return &Service{repo: repo, payments: payments}
}

// GetBalance computes the customer's balance as of the given time.
// A nil asOf means now.
func (s *Service) GetBalance(ctx context.Context, customerID id.ID, asOf *time.Time) (*Balance, error) {
	at := time.Now().UTC()
	if asOf != nil {
		at = asOf.UTC()
	}

	opening, _, err := s.repo.GetOpeningAndLimit(ctx, customerID)
	if err != nil {
		return nil, err
	}
	invoiced, err := s.repo.SumInvoiced(ctx, customerID, at)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.SumPaid(ctx, customerID, at)
	if err != nil {
		return nil, err
	}

	return &Balance{
		CustomerID:  customerID,
		AsOf:        at,
		Opening:     opening,
		Invoiced:    invoiced,
		Paid:        paid,
		Outstanding: opening.Add(invoiced).Sub(paid),
	}, nil
}

// ApplyPayment validates and appends a payment event. Overpayment is allowed;
// the balance simply goes negative (customer is in credit).
func (s *Service) ApplyPayment(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}

	// Both references must exist before the event is appended; a payment
	// against a deleted or mistyped customer would silently distort balances.
	if _, _, err := s.repo.GetOpeningAndLimit(ctx, p.CustomerID); err != nil {
		return err
	}
	if p.InvoiceID != nil {
		if _, err := s.repo.GetInvoiceTotal(ctx, *p.InvoiceID); err != nil {
			return err
		}
	}

	if err := s.payments.Create(ctx, p); err != nil {
		return err
	}

	logger.Info(ctx, "payment recorded",
		"payment_id", p.ID,
		"customer_id", p.CustomerID,
		"amount", p.Amount,
		"method", p.Method,
	)
	return nil
}

// GetInvoiceOutstanding returns the invoice total less payments allocated to
// it. Payments without an invoice reference do not count here even though
// they reduce the customer balance.
func (s *Service) GetInvoiceOutstanding(ctx context.Context, invoiceID id.ID) (*InvoiceOutstanding, error) {
	total, err := s.repo.GetInvoiceTotal(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.SumPaymentsForInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return &InvoiceOutstanding{
		InvoiceID:   invoiceID,
		Total:       total,
		Paid:        paid,
		Outstanding: total.Sub(paid),
	}, nil
}

// EvaluateCreditLimit checks whether charging prospective on top of the
// current outstanding balance would exceed the customer's credit limit.
// A zero limit means unlimited credit and never exceeds.
func (s *Service) EvaluateCreditLimit(ctx context.Context, customerID id.ID, prospective types.Money) (*CreditEvaluation, error) {
	opening, limit, err := s.repo.GetOpeningAndLimit(ctx, customerID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	invoiced, err := s.repo.SumInvoiced(ctx, customerID, now)
	if err != nil {
		return nil, err
	}
	paid, err := s.repo.SumPaid(ctx, customerID, now)
	if err != nil {
		return nil, err
	}

	outstanding := opening.Add(invoiced).Sub(paid)
	eval := &CreditEvaluation{
		CustomerID:  customerID,
		Outstanding: outstanding,
		Prospective: prospective,
		Limit:       limit,
		Unlimited:   limit.IsZero(),
	}
	if !eval.Unlimited {
		eval.WouldExceed = outstanding.Add(prospective).GreaterThan(limit)
	}
	return eval, nil
}

// ListPayments returns payment events matching the filter.
func (s *Service) ListPayments(ctx context.Context, filter payment.ListFilter) ([]*payment.Payment, error) {
	return s.payments.List(ctx, filter)
}
