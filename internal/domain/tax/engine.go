// Package tax computes GST amounts for invoice lines.
//
// Amounts are rounded to 2 decimal places at every computation step, not only
// at the end. Invoice totals are sums of already-rounded line values, so the
// stored total always equals the sum of the printed line amounts.
package tax

import (
	"github.com/shopspring/decimal"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/types"
)

// SupplyType determines how the GST amount is split.
type SupplyType string

const (
	// SupplyIntra is an intra-state supply: tax splits into equal CGST and
	// SGST halves. An odd paisa goes to SGST so the halves always sum back
	// to the tax amount.
	SupplyIntra SupplyType = "INTRA"

	// SupplyInter is an inter-state supply: the whole tax amount is IGST.
	SupplyInter SupplyType = "INTER"
)

// Valid reports whether s is a known supply type.
func (s SupplyType) Valid() bool {
	return s == SupplyIntra || s == SupplyInter
}

// LineAmounts holds the computed monetary values for a single invoice line.
type LineAmounts struct {
	TaxableValue types.Money // qty × unit price, pre-tax
	TaxAmount    types.Money // taxable × rate / 100
	CGST         types.Money
	SGST         types.Money
	IGST         types.Money
	LineTotal    types.Money // taxable + tax
}

// InvoiceTotals holds invoice-level sums of already-rounded line amounts.
type InvoiceTotals struct {
	Subtotal    types.Money
	TotalTax    types.Money
	TotalAmount types.Money
}

var hundred = decimal.NewFromInt(100)

// ComputeLine computes the amounts for one cart line.
// qty must be positive; unitPrice and ratePercent must not be negative.
func ComputeLine(qty types.Quantity, unitPrice, ratePercent types.Money, supply SupplyType) (LineAmounts, error) {
	if !qty.IsPositive() {
		return LineAmounts{}, apperror.NewValidation("quantity must be positive").
			WithDetail("field", "qty")
	}
	if unitPrice.IsNegative() {
		return LineAmounts{}, apperror.NewValidation("unit price must not be negative").
			WithDetail("field", "unitPrice")
	}
	if ratePercent.IsNegative() {
		return LineAmounts{}, apperror.NewValidation("tax rate must not be negative").
			WithDetail("field", "taxRate")
	}
	if !supply.Valid() {
		return LineAmounts{}, apperror.NewValidation("unknown supply type").
			WithDetail("field", "supplyType").
			WithDetail("value", string(supply))
	}

	qtyDec := decimal.New(qty.Int64Scaled(), -4)

	taxable := types.RoundMoney(qtyDec.Mul(unitPrice))
	taxAmount := types.RoundMoney(taxable.Mul(ratePercent).Div(hundred))

	amounts := LineAmounts{
		TaxableValue: taxable,
		TaxAmount:    taxAmount,
		CGST:         types.ZeroMoney(),
		SGST:         types.ZeroMoney(),
		IGST:         types.ZeroMoney(),
		LineTotal:    types.RoundMoney(taxable.Add(taxAmount)),
	}

	switch supply {
	case SupplyIntra:
		half := types.RoundMoney(taxAmount.Div(decimal.NewFromInt(2)))
		amounts.CGST = half
		// SGST absorbs the rounding remainder: CGST + SGST == TaxAmount exactly.
		amounts.SGST = taxAmount.Sub(half)
	case SupplyInter:
		amounts.IGST = taxAmount
	}

	return amounts, nil
}

// ComputeTotals sums the already-rounded per-line values. It never re-derives
// from raw quantities.
func ComputeTotals(lines []LineAmounts) InvoiceTotals {
	totals := InvoiceTotals{
		Subtotal:    types.ZeroMoney(),
		TotalTax:    types.ZeroMoney(),
		TotalAmount: types.ZeroMoney(),
	}

	for _, l := range lines {
		totals.Subtotal = totals.Subtotal.Add(l.TaxableValue)
		totals.TotalTax = totals.TotalTax.Add(l.TaxAmount)
	}
	totals.TotalAmount = types.RoundMoney(totals.Subtotal.Add(totals.TotalTax))

	return totals
}
