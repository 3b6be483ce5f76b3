package dto

import (
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/catalogs/customer"
)

// CreateCustomerRequest is the customer creation payload.
type CreateCustomerRequest struct {
	Name           string      `json:"name" binding:"required"`
	Phone          *string     `json:"phone,omitempty"`
	GSTIN          *string     `json:"gstin,omitempty"`
	Address        *string     `json:"address,omitempty"`
	OpeningBalance types.Money `json:"openingBalance"`
	CreditLimit    types.Money `json:"creditLimit"`
}

// ToEntity converts the request into a new customer.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.New(r.Name)
	c.Phone = r.Phone
	c.GSTIN = r.GSTIN
	c.Address = r.Address
	c.OpeningBalance = r.OpeningBalance
	c.CreditLimit = r.CreditLimit
	return c
}

// UpdateCustomerRequest is the partial customer update payload.
// OpeningBalance is deliberately absent: it is fixed when the books open and
// corrections go through payment events.
type UpdateCustomerRequest struct {
	Name        *string      `json:"name,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	GSTIN       *string      `json:"gstin,omitempty"`
	Address     *string      `json:"address,omitempty"`
	CreditLimit *types.Money `json:"creditLimit,omitempty"`
}

// ApplyTo applies set fields onto an existing customer.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.GSTIN != nil {
		c.GSTIN = r.GSTIN
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.CreditLimit != nil {
		c.CreditLimit = *r.CreditLimit
	}
}
