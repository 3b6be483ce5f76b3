// Package customer provides the customer catalog.
package customer

import (
	"context"
	"regexp"
	"strings"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// GSTIN format: 2-digit state code, 10-char PAN, entity digit, 'Z', checksum.
var gstinRE = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z]\d[A-Z]Z[0-9A-Z]$`)

// Customer is a buyer. The outstanding balance is never stored on the
// record; it is always derived from the opening balance plus billed invoices
// minus recorded payments.
type Customer struct {
	ID id.ID `db:"id" json:"id"`

	Name    string  `db:"name" json:"name"`
	Phone   *string `db:"phone" json:"phone,omitempty"`
	GSTIN   *string `db:"gstin" json:"gstin,omitempty"`
	Address *string `db:"address" json:"address,omitempty"`

	// OpeningBalance is signed; positive means the customer owed money when
	// the books were opened.
	OpeningBalance types.Money `db:"opening_balance" json:"openingBalance"`

	// CreditLimit caps the outstanding balance. Zero means unlimited.
	CreditLimit types.Money `db:"credit_limit" json:"creditLimit"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// New creates a customer with generated ID and timestamps.
func New(name string) *Customer {
	now := time.Now().UTC()
	return &Customer{
		ID:             id.New(),
		Name:           strings.TrimSpace(name),
		OpeningBalance: types.ZeroMoney(),
		CreditLimit:    types.ZeroMoney(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Touch updates the UpdatedAt timestamp.
func (c *Customer) Touch() {
	c.UpdatedAt = time.Now().UTC()
}

// HasCreditLimit reports whether a limit is configured (zero = unlimited).
func (c *Customer) HasCreditLimit() bool {
	return c.CreditLimit.IsPositive()
}

// Validate checks customer invariants.
func (c *Customer) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.CreditLimit.IsNegative() {
		return apperror.NewValidation("credit limit must not be negative").
			WithDetail("field", "creditLimit")
	}
	if c.GSTIN != nil && *c.GSTIN != "" && !gstinRE.MatchString(*c.GSTIN) {
		return apperror.NewValidation("invalid GSTIN format").
			WithDetail("field", "gstin")
	}
	return nil
}
