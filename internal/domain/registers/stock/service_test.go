package stock

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

type fakeStockRepo struct {
	stock map[id.ID]types.Quantity

	// lockOrder records GetStockForUpdate calls.
	lockOrder []id.ID
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{stock: map[id.ID]types.Quantity{}}
}

func (f *fakeStockRepo) GetStock(_ context.Context, productID id.ID) (types.Quantity, error) {
	qty, ok := f.stock[productID]
	if !ok {
		return 0, apperror.NewNotFound("product", productID)
	}
	return qty, nil
}

func (f *fakeStockRepo) GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	f.lockOrder = append(f.lockOrder, productID)
	return f.GetStock(ctx, productID)
}

func (f *fakeStockRepo) ProductExists(_ context.Context, productID id.ID) error {
	if _, ok := f.stock[productID]; !ok {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

func (f *fakeStockRepo) ProductReferenced(_ context.Context, _ id.ID) (bool, error) {
	return false, nil
}

func qty(v float64) types.Quantity {
	return types.NewQuantityFromFloat64(v)
}

func TestCheckAvailability(t *testing.T) {
	ctx := context.Background()
	productID := id.New()

	repo := newFakeStockRepo()
	repo.stock[productID] = qty(10)
	svc := NewService(repo)

	err := svc.CheckAvailability(ctx, []Requirement{{ProductID: productID, Qty: qty(10)}})
	require.NoError(t, err, "requesting exactly the stock on hand must pass")

	err = svc.CheckAvailability(ctx, []Requirement{{ProductID: productID, Qty: qty(10.0001)}})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
}

func TestCheckAvailabilitySumsRepeatedProducts(t *testing.T) {
	ctx := context.Background()
	productID := id.New()

	repo := newFakeStockRepo()
	repo.stock[productID] = qty(5)
	svc := NewService(repo)

	// 3 + 3 on two lines exceeds the 5 on hand even though each line fits.
	err := svc.CheckAvailability(ctx, []Requirement{
		{ProductID: productID, Qty: qty(3)},
		{ProductID: productID, Qty: qty(3)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	// Each product is locked once, not per line.
	assert.Len(t, repo.lockOrder, 1)
}

func TestCheckAvailabilityLockOrder(t *testing.T) {
	ctx := context.Background()

	repo := newFakeStockRepo()
	ids := []id.ID{id.New(), id.New(), id.New()}
	for _, productID := range ids {
		repo.stock[productID] = qty(100)
	}
	svc := NewService(repo)

	// Submit in reverse sorted order; locks must still be taken sorted.
	reqs := make([]Requirement, 0, len(ids))
	sorted := make([]string, 0, len(ids))
	for _, productID := range ids {
		sorted = append(sorted, productID.String())
	}
	sort.Strings(sorted)
	for i := len(sorted) - 1; i >= 0; i-- {
		reqs = append(reqs, Requirement{ProductID: id.MustParse(sorted[i]), Qty: qty(1)})
	}

	require.NoError(t, svc.CheckAvailability(ctx, reqs))

	require.Len(t, repo.lockOrder, len(ids))
	for i, productID := range repo.lockOrder {
		assert.Equal(t, sorted[i], productID.String(), "lock %d out of order", i)
	}
}

func TestCheckAvailabilityUnknownProduct(t *testing.T) {
	svc := NewService(newFakeStockRepo())

	err := svc.CheckAvailability(context.Background(), []Requirement{
		{ProductID: id.New(), Qty: qty(1)},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetStockNegativeAllowed(t *testing.T) {
	ctx := context.Background()
	productID := id.New()

	repo := newFakeStockRepo()
	// Adjustments may drive stock below zero.
	repo.stock[productID] = qty(-2.5)
	svc := NewService(repo)

	got, err := svc.GetStock(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, qty(-2.5), got)
}
