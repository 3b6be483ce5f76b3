// Package reports provides derived read models: stock snapshot, business
// summary, and customer balances. Everything here recomputes from the event
// tables; there are no cached figures to invalidate.
package reports

import (
	"time"

	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// --- Stock snapshot ---

// StockSnapshotItem is one product's position: quantity on hand and its
// value at the current selling price.
type StockSnapshotItem struct {
	ProductID         id.ID          `json:"productId"`
	ProductName       string         `json:"productName"`
	Unit              string         `json:"unit"`
	Quantity          types.Quantity `json:"quantity"`
	LowStockThreshold types.Quantity `json:"lowStockThreshold"`
	LowStock          bool           `json:"lowStock"`
	StockValue        types.Money    `json:"stockValue"`
}

// StockSnapshot is the full stock position at a point in time.
type StockSnapshot struct {
	AsOf          time.Time           `json:"asOf"`
	Items         []StockSnapshotItem `json:"items"`
	TotalValue    types.Money         `json:"totalValue"`
	LowStockCount int                 `json:"lowStockCount"`
}

// --- Business summary ---

// PeriodTotals are purchase and sales figures for a date range.
type PeriodTotals struct {
	PurchaseTotal types.Money `json:"purchaseTotal"`
	SalesTotal    types.Money `json:"salesTotal"`
	TaxCollected  types.Money `json:"taxCollected"`
	InvoiceCount  int         `json:"invoiceCount"`
}

// Summary is the dashboard read model.
type Summary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`

	ProductCount   int         `json:"productCount"`
	InventoryValue types.Money `json:"inventoryValue"`
	LowStockCount  int         `json:"lowStockCount"`

	Period PeriodTotals `json:"period"`
}

// --- Customer balances ---

// CustomerBalanceItem is one customer's derived outstanding balance.
type CustomerBalanceItem struct {
	CustomerID  id.ID       `db:"customer_id" json:"customerId"`
	Name        string      `db:"name" json:"name"`
	Phone       *string     `db:"phone" json:"phone,omitempty"`
	Outstanding types.Money `db:"outstanding" json:"outstanding"`
	CreditLimit types.Money `db:"credit_limit" json:"creditLimit"`
}
