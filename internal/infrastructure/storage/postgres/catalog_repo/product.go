package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/catalogs/product"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const productTable = "cat_products"

var productColumns = postgres.ExtractDBColumns[product.Product]()

// ProductRepo implements product.Repository.
type ProductRepo struct {
	baseRepo
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{baseRepo{txm: txm}}
}

func (r *ProductRepo) values(p *product.Product) map[string]any {
	return map[string]any{
		"id":                  p.ID,
		"name":                p.Name,
		"category":            p.Category,
		"barcode":             p.Barcode,
		"unit":                p.Unit,
		"selling_price":       p.SellingPrice,
		"tax_rate":            p.TaxRate,
		"low_stock_threshold": p.LowStockThreshold,
		"created_at":          p.CreatedAt,
		"updated_at":          p.UpdatedAt,
	}
}

// mapProductError converts constraint violations into business errors.
func (r *ProductRepo) mapProductError(err error, p *product.Product) error {
	switch {
	case isUniqueViolation(err, "cat_products_name_key"):
		return apperror.NewDuplicate("product", "name", p.Name)
	case isUniqueViolation(err, "cat_products_barcode_key"):
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		return apperror.NewDuplicate("product", "barcode", barcode)
	case isUniqueViolation(err, ""):
		return apperror.NewDuplicate("product", "name", p.Name)
	}
	return nil
}

// Create inserts a new product.
func (r *ProductRepo) Create(ctx context.Context, p *product.Product) error {
	q := r.builder().
		Insert(productTable).
		SetMap(r.values(p))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if mapped := r.mapProductError(err, p); mapped != nil {
			return mapped
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update modifies an existing product.
func (r *ProductRepo) Update(ctx context.Context, p *product.Product) error {
	data := r.values(p)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(productTable).
		SetMap(data).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if mapped := r.mapProductError(err, p); mapped != nil {
			return mapped
		}
		return fmt.Errorf("update product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", p.ID)
	}
	return nil
}

// Delete removes the product. The caller checks references first; the
// foreign key constraint is the backstop against a lost race.
func (r *ProductRepo) Delete(ctx context.Context, productID id.ID) error {
	q := r.builder().
		Delete(productTable).
		Where(squirrel.Eq{"id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewConflict("product is referenced by recorded events").
				WithDetail("id", productID.String()).
				WithCause(err)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("product", productID)
	}
	return nil
}

func (r *ProductRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(productColumns...).
		From(productTable)
}

func (r *ProductRepo) findOne(ctx context.Context, q squirrel.SelectBuilder, key any) (*product.Product, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p product.Product
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", key)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByID retrieves a product by ID.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"id": productID}).
		Limit(1)
	return r.findOne(ctx, q, productID)
}

// FindByName retrieves a product by exact name, case-insensitive.
func (r *ProductRepo) FindByName(ctx context.Context, name string) (*product.Product, error) {
	q := r.baseSelect().
		Where("lower(name) = lower(?)", name).
		Limit(1)
	return r.findOne(ctx, q, name)
}

// FindByBarcode retrieves a product by barcode.
func (r *ProductRepo) FindByBarcode(ctx context.Context, barcode string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"barcode": barcode}).
		Limit(1)
	return r.findOne(ctx, q, barcode)
}

// List retrieves products with optional search and pagination.
func (r *ProductRepo) List(ctx context.Context, filter product.ListFilter) ([]*product.Product, error) {
	q := r.baseSelect().OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"barcode": pattern},
		})
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

	var items []*product.Product
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ product.Repository = (*ProductRepo)(nil)
