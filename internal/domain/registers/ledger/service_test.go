package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/documents/payment"
)

type fakeLedgerRepo struct {
	opening  map[id.ID]types.Money
	limit    map[id.ID]types.Money
	invoiced map[id.ID]types.Money
	paid     map[id.ID]types.Money

	invoiceTotal map[id.ID]types.Money
	invoicePaid  map[id.ID]types.Money
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		opening:      map[id.ID]types.Money{},
		limit:        map[id.ID]types.Money{},
		invoiced:     map[id.ID]types.Money{},
		paid:         map[id.ID]types.Money{},
		invoiceTotal: map[id.ID]types.Money{},
		invoicePaid:  map[id.ID]types.Money{},
	}
}

func (f *fakeLedgerRepo) GetOpeningAndLimit(_ context.Context, customerID id.ID) (types.Money, types.Money, error) {
	if _, ok := f.opening[customerID]; !ok {
		return types.ZeroMoney(), types.ZeroMoney(), apperror.NewNotFound("customer", customerID)
	}
	return f.opening[customerID], f.limit[customerID], nil
}

func (f *fakeLedgerRepo) SumInvoiced(_ context.Context, customerID id.ID, _ time.Time) (types.Money, error) {
	return f.invoiced[customerID], nil
}

func (f *fakeLedgerRepo) SumPaid(_ context.Context, customerID id.ID, _ time.Time) (types.Money, error) {
	return f.paid[customerID], nil
}

func (f *fakeLedgerRepo) GetInvoiceTotal(_ context.Context, invoiceID id.ID) (types.Money, error) {
	total, ok := f.invoiceTotal[invoiceID]
	if !ok {
		return types.ZeroMoney(), apperror.NewNotFound("invoice", invoiceID)
	}
	return total, nil
}

func (f *fakeLedgerRepo) SumPaymentsForInvoice(_ context.Context, invoiceID id.ID) (types.Money, error) {
	return f.invoicePaid[invoiceID], nil
}

type fakePaymentRepo struct {
	created []*payment.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *payment.Payment) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, paymentID id.ID) (*payment.Payment, error) {
	for _, p := range f.created {
		if p.ID == paymentID {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("payment", paymentID)
}

func (f *fakePaymentRepo) List(_ context.Context, _ payment.ListFilter) ([]*payment.Payment, error) {
	return f.created, nil
}

func TestGetBalance(t *testing.T) {
	ctx := context.Background()
	custID := id.New()

	repo := newFakeLedgerRepo()
	repo.opening[custID] = types.MustMoney("500.00")
	repo.invoiced[custID] = types.MustMoney("1180.00")
	repo.paid[custID] = types.MustMoney("700.00")

	svc := NewService(repo, &fakePaymentRepo{})

	bal, err := svc.GetBalance(ctx, custID, nil)
	require.NoError(t, err)

	assert.True(t, bal.Outstanding.Equal(types.MustMoney("980.00")),
		"outstanding = %s", bal.Outstanding)
	assert.True(t, bal.Opening.Equal(types.MustMoney("500.00")))
	assert.True(t, bal.Invoiced.Equal(types.MustMoney("1180.00")))
	assert.True(t, bal.Paid.Equal(types.MustMoney("700.00")))
}

func TestGetBalanceUnknownCustomer(t *testing.T) {
	svc := NewService(newFakeLedgerRepo(), &fakePaymentRepo{})

	_, err := svc.GetBalance(context.Background(), id.New(), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetBalanceOverpaidGoesNegative(t *testing.T) {
	ctx := context.Background()
	custID := id.New()

	repo := newFakeLedgerRepo()
	repo.opening[custID] = types.ZeroMoney()
	repo.invoiced[custID] = types.MustMoney("100.00")
	repo.paid[custID] = types.MustMoney("150.00")

	svc := NewService(repo, &fakePaymentRepo{})

	bal, err := svc.GetBalance(ctx, custID, nil)
	require.NoError(t, err)
	assert.True(t, bal.Outstanding.Equal(types.MustMoney("-50.00")),
		"customer in credit, outstanding = %s", bal.Outstanding)
}

func TestApplyPayment(t *testing.T) {
	ctx := context.Background()
	custID := id.New()

	repo := newFakeLedgerRepo()
	repo.opening[custID] = types.ZeroMoney()
	payments := &fakePaymentRepo{}

	svc := NewService(repo, payments)

	p := payment.New(custID, types.MustMoney("250.00"), payment.MethodUPI, time.Time{})
	require.NoError(t, svc.ApplyPayment(ctx, p))
	require.Len(t, payments.created, 1)
	assert.Equal(t, custID, payments.created[0].CustomerID)
}

func TestApplyPaymentValidation(t *testing.T) {
	ctx := context.Background()
	custID := id.New()

	repo := newFakeLedgerRepo()
	repo.opening[custID] = types.ZeroMoney()
	payments := &fakePaymentRepo{}
	svc := NewService(repo, payments)

	tests := []struct {
		name string
		p    *payment.Payment
	}{
		{
			name: "zero amount",
			p:    payment.New(custID, types.ZeroMoney(), payment.MethodCash, time.Time{}),
		},
		{
			name: "negative amount",
			p:    payment.New(custID, types.MustMoney("-10.00"), payment.MethodCash, time.Time{}),
		},
		{
			name: "bad method",
			p:    payment.New(custID, types.MustMoney("10.00"), payment.Method("barter"), time.Time{}),
		},
		{
			name: "missing customer",
			p:    payment.New(id.Nil(), types.MustMoney("10.00"), payment.MethodCash, time.Time{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ApplyPayment(ctx, tt.p)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
	assert.Empty(t, payments.created)
}

func TestApplyPaymentUnknownInvoice(t *testing.T) {
	ctx := context.Background()
	custID := id.New()

	repo := newFakeLedgerRepo()
	repo.opening[custID] = types.ZeroMoney()
	svc := NewService(repo, &fakePaymentRepo{})

	p := payment.New(custID, types.MustMoney("10.00"), payment.MethodCash, time.Time{})
	badInvoice := id.New()
	p.InvoiceID = &badInvoice

	err := svc.ApplyPayment(ctx, p)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetInvoiceOutstanding(t *testing.T) {
	ctx := context.Background()
	invID := id.New()

	repo := newFakeLedgerRepo()
	repo.invoiceTotal[invID] = types.MustMoney("1180.00")
	repo.invoicePaid[invID] = types.MustMoney("500.00")

	svc := NewService(repo, &fakePaymentRepo{})

	out, err := svc.GetInvoiceOutstanding(ctx, invID)
	require.NoError(t, err)
	assert.True(t, out.Outstanding.Equal(types.MustMoney("680.00")),
		"outstanding = %s", out.Outstanding)
}

func TestEvaluateCreditLimit(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		opening     string
		limit       string
		invoiced    string
		paid        string
		prospective string
		unlimited   bool
		wouldExceed bool
	}{
		{
			name:    "within limit",
			opening: "0", limit: "1000.00",
			invoiced: "400.00", paid: "0",
			prospective: "500.00",
			wouldExceed: false,
		},
		{
			name:    "exactly at limit is allowed",
			opening: "0", limit: "1000.00",
			invoiced: "400.00", paid: "0",
			prospective: "600.00",
			wouldExceed: false,
		},
		{
			name:    "one paisa over",
			opening: "0", limit: "1000.00",
			invoiced: "400.00", paid: "0",
			prospective: "600.01",
			wouldExceed: true,
		},
		{
			name:    "zero limit means unlimited",
			opening: "0", limit: "0",
			invoiced: "99999.00", paid: "0",
			prospective: "99999.00",
			unlimited:   true,
			wouldExceed: false,
		},
		{
			name:    "payments free up headroom",
			opening: "0", limit: "1000.00",
			invoiced: "1000.00", paid: "600.00",
			prospective: "600.00",
			wouldExceed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			custID := id.New()
			repo := newFakeLedgerRepo()
			repo.opening[custID] = types.MustMoney(tt.opening)
			repo.limit[custID] = types.MustMoney(tt.limit)
			repo.invoiced[custID] = types.MustMoney(tt.invoiced)
			repo.paid[custID] = types.MustMoney(tt.paid)

			svc := NewService(repo, &fakePaymentRepo{})

			eval, err := svc.EvaluateCreditLimit(ctx, custID, types.MustMoney(tt.prospective))
			require.NoError(t, err)
			assert.Equal(t, tt.unlimited, eval.Unlimited)
			assert.Equal(t, tt.wouldExceed, eval.WouldExceed)
		})
	}
}
