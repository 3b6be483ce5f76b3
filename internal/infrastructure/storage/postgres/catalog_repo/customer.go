package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/catalogs/customer"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const customerTable = "cat_customers"

var customerColumns = postgres.ExtractDBColumns[customer.Customer]()

// CustomerRepo implements customer.Repository.
type CustomerRepo struct {
	baseRepo
}

// NewCustomerRepo creates a new customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{baseRepo{txm: txm}}
}

func (r *CustomerRepo) values(c *customer.Customer) map[string]any {
	return map[string]any{
		"id":              c.ID,
		"name":            c.Name,
		"phone":           c.Phone,
		"gstin":           c.GSTIN,
		"address":         c.Address,
		"opening_balance": c.OpeningBalance,
		"credit_limit":    c.CreditLimit,
		"created_at":      c.CreatedAt,
		"updated_at":      c.UpdatedAt,
	}
}

// Create inserts a new customer.
func (r *CustomerRepo) Create(ctx context.Context, c *customer.Customer) error {
	q := r.builder().
		Insert(customerTable).
		SetMap(r.values(c))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err, "") {
			return apperror.NewDuplicate("customer", "name", c.Name)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// Update modifies an existing customer.
func (r *CustomerRepo) Update(ctx context.Context, c *customer.Customer) error {
	data := r.values(c)
	delete(data, "id")
	delete(data, "created_at")

	q := r.builder().
		Update(customerTable).
		SetMap(data).
		Where(squirrel.Eq{"id": c.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err, "") {
			return apperror.NewDuplicate("customer", "name", c.Name)
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("customer", c.ID)
	}
	return nil
}

// GetByID retrieves a customer by ID.
func (r *CustomerRepo) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	q := r.builder().
		Select(customerColumns...).
		From(customerTable).
		Where(squirrel.Eq{"id": customerID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var c customer.Customer
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &c, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("customer", customerID)
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

// List retrieves customers with optional search and pagination.
func (r *CustomerRepo) List(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	q := r.builder().
		Select(customerColumns...).
		From(customerTable).
		OrderBy("name ASC")

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"phone": pattern},
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

	var items []*customer.Customer
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return items, nil
}

// Ensure interface compliance.
var _ customer.Repository = (*CustomerRepo)(nil)
