package dto

import (
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/catalogs/product"
)

// CreateProductRequest is the product creation payload.
type CreateProductRequest struct {
	Name              string         `json:"name" binding:"required"`
	Category          *string        `json:"category,omitempty"`
	Barcode           *string        `json:"barcode,omitempty"`
	Unit              string         `json:"unit,omitempty"`
	SellingPrice      types.Money    `json:"sellingPrice"`
	TaxRate           types.Money    `json:"taxRate"`
	LowStockThreshold types.Quantity `json:"lowStockThreshold,omitempty"`
}

// ToEntity converts the request into a new product.
func (r *CreateProductRequest) ToEntity() *product.Product {
	p := product.New(r.Name, r.Unit)
	p.Category = r.Category
	p.Barcode = r.Barcode
	p.SellingPrice = r.SellingPrice
	p.TaxRate = r.TaxRate
	p.LowStockThreshold = r.LowStockThreshold
	return p
}

// UpdateProductRequest is the partial product update payload.
type UpdateProductRequest struct {
	Name              *string         `json:"name,omitempty"`
	Category          *string         `json:"category,omitempty"`
	Barcode           *string         `json:"barcode,omitempty"`
	Unit              *string         `json:"unit,omitempty"`
	SellingPrice      *types.Money    `json:"sellingPrice,omitempty"`
	TaxRate           *types.Money    `json:"taxRate,omitempty"`
	LowStockThreshold *types.Quantity `json:"lowStockThreshold,omitempty"`
}

// ApplyTo applies set fields onto an existing product.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Category != nil {
		p.Category = r.Category
	}
	if r.Barcode != nil {
		p.Barcode = r.Barcode
	}
	if r.Unit != nil {
		p.Unit = *r.Unit
	}
	if r.SellingPrice != nil {
		p.SellingPrice = *r.SellingPrice
	}
	if r.TaxRate != nil {
		p.TaxRate = *r.TaxRate
	}
	if r.LowStockThreshold != nil {
		p.LowStockThreshold = *r.LowStockThreshold
	}
}
