package product

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

type fakeProductRepo struct {
	products map[id.ID]*Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[id.ID]*Product{}}
}

func (f *fakeProductRepo) Create(_ context.Context, p *Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return apperror.NewNotFound("product", p.ID)
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, productID id.ID) error {
	if _, ok := f.products[productID]; !ok {
		return apperror.NewNotFound("product", productID)
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, productID id.ID) (*Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID)
	}
	return p, nil
}

func (f *fakeProductRepo) FindByName(_ context.Context, name string) (*Product, error) {
	for _, p := range f.products {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", name)
}

func (f *fakeProductRepo) FindByBarcode(_ context.Context, barcode string) (*Product, error) {
	for _, p := range f.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			return p, nil
		}
	}
	return nil, apperror.NewNotFound("product", barcode)
}

func (f *fakeProductRepo) List(_ context.Context, _ ListFilter) ([]*Product, error) {
	items := make([]*Product, 0, len(f.products))
	for _, p := range f.products {
		items = append(items, p)
	}
	return items, nil
}

type fakeRefs struct {
	referenced map[id.ID]bool
}

func (f *fakeRefs) ProductReferenced(_ context.Context, productID id.ID) (bool, error) {
	return f.referenced[productID], nil
}

func strPtr(s string) *string { return &s }

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewService(repo, &fakeRefs{})

	p := New("Sugar 1kg", "pcs")
	p.SellingPrice = types.MustMoney("45.00")
	p.TaxRate = types.MustMoney("5")

	require.NoError(t, svc.Create(ctx, p))
	require.Len(t, repo.products, 1)
}

func TestCreateProductDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewService(repo, &fakeRefs{})

	require.NoError(t, svc.Create(ctx, New("Sugar 1kg", "pcs")))

	// Names are unique case-insensitively.
	err := svc.Create(ctx, New("SUGAR 1KG", "pcs"))
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
}

func TestCreateProductDuplicateBarcode(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewService(repo, &fakeRefs{})

	first := New("Sugar 1kg", "pcs")
	first.Barcode = strPtr("8901234567890")
	require.NoError(t, svc.Create(ctx, first))

	second := New("Salt 1kg", "pcs")
	second.Barcode = strPtr("8901234567890")
	err := svc.Create(ctx, second)
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicate(err))
}

func TestUpdateProductKeepsOwnName(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewService(repo, &fakeRefs{})

	p := New("Sugar 1kg", "pcs")
	require.NoError(t, svc.Create(ctx, p))

	// Updating without renaming must not trip the uniqueness check.
	p.SellingPrice = types.MustMoney("48.00")
	require.NoError(t, svc.Update(ctx, p))
}

func TestCreateProductValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeProductRepo(), &fakeRefs{})

	tests := []struct {
		name  string
		build func() *Product
	}{
		{
			name:  "empty name",
			build: func() *Product { return New("   ", "pcs") },
		},
		{
			name: "negative price",
			build: func() *Product {
				p := New("Sugar", "pcs")
				p.SellingPrice = types.MustMoney("-1")
				return p
			},
		},
		{
			name: "negative tax rate",
			build: func() *Product {
				p := New("Sugar", "pcs")
				p.TaxRate = types.MustMoney("-5")
				return p
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Create(ctx, tt.build())
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestDeleteReferencedProductRefused(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	refs := &fakeRefs{referenced: map[id.ID]bool{}}
	svc := NewService(repo, refs)

	p := New("Sugar 1kg", "pcs")
	require.NoError(t, svc.Create(ctx, p))
	refs.referenced[p.ID] = true

	err := svc.Delete(ctx, p.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// Still there.
	_, err = svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
}

func TestDeleteUnreferencedProduct(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProductRepo()
	svc := NewService(repo, &fakeRefs{referenced: map[id.ID]bool{}})

	p := New("Sugar 1kg", "pcs")
	require.NoError(t, svc.Create(ctx, p))
	require.NoError(t, svc.Delete(ctx, p.ID))

	_, err := svc.GetByID(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
