package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahikhata/internal/core/types"
)

func qty(f float64) types.Quantity { return types.NewQuantityFromFloat64(f) }

func TestComputeLine_IntraState(t *testing.T) {
	// Price 100, rate 18%, qty 2 → taxable 200.00, tax 36.00, split 18/18
	amounts, err := ComputeLine(qty(2), types.MustMoney("100"), types.MustMoney("18"), SupplyIntra)
	require.NoError(t, err)

	assert.Equal(t, "200.00", amounts.TaxableValue.StringFixed(2))
	assert.Equal(t, "36.00", amounts.TaxAmount.StringFixed(2))
	assert.Equal(t, "18.00", amounts.CGST.StringFixed(2))
	assert.Equal(t, "18.00", amounts.SGST.StringFixed(2))
	assert.True(t, amounts.IGST.IsZero())
	assert.Equal(t, "236.00", amounts.LineTotal.StringFixed(2))
}

func TestComputeLine_InterState(t *testing.T) {
	// Price 100, rate 18%, qty 3 → taxable 300.00, igst 54.00
	amounts, err := ComputeLine(qty(3), types.MustMoney("100"), types.MustMoney("18"), SupplyInter)
	require.NoError(t, err)

	assert.Equal(t, "300.00", amounts.TaxableValue.StringFixed(2))
	assert.Equal(t, "54.00", amounts.TaxAmount.StringFixed(2))
	assert.Equal(t, "54.00", amounts.IGST.StringFixed(2))
	assert.True(t, amounts.CGST.IsZero())
	assert.True(t, amounts.SGST.IsZero())
	assert.Equal(t, "354.00", amounts.LineTotal.StringFixed(2))
}

func TestComputeLine_OddPaisaGoesToSGST(t *testing.T) {
	// taxable 10.30, 5% → tax 0.52 (0.515 rounds up), cgst 0.26, sgst 0.26
	// taxable 1.10, 5% → tax 0.06 (0.055 rounds up), cgst 0.03, sgst 0.03
	// taxable 0.50, 5% → tax 0.03 (0.025 rounds up), cgst 0.02 (0.015 up), sgst 0.01
	amounts, err := ComputeLine(qty(1), types.MustMoney("0.50"), types.MustMoney("5"), SupplyIntra)
	require.NoError(t, err)

	assert.Equal(t, "0.03", amounts.TaxAmount.StringFixed(2))
	assert.Equal(t, "0.02", amounts.CGST.StringFixed(2))
	assert.Equal(t, "0.01", amounts.SGST.StringFixed(2))
	assert.True(t, amounts.CGST.Add(amounts.SGST).Equal(amounts.TaxAmount))
}

func TestComputeLine_SplitAlwaysSumsExactly(t *testing.T) {
	prices := []string{"0.01", "0.33", "1.11", "9.99", "33.33", "123.45", "999.99"}
	rates := []string{"0", "5", "12", "18", "28"}

	for _, p := range prices {
		for _, r := range rates {
			amounts, err := ComputeLine(qty(1.5), types.MustMoney(p), types.MustMoney(r), SupplyIntra)
			require.NoError(t, err)

			sum := amounts.CGST.Add(amounts.SGST)
			assert.Truef(t, sum.Equal(amounts.TaxAmount),
				"price %s rate %s: cgst %s + sgst %s != tax %s",
				p, r, amounts.CGST, amounts.SGST, amounts.TaxAmount)
		}
	}
}

func TestComputeLine_FractionalQuantity(t *testing.T) {
	// 2.5 kg at 40.10/kg → taxable 100.25; 12% → 12.03
	amounts, err := ComputeLine(qty(2.5), types.MustMoney("40.10"), types.MustMoney("12"), SupplyInter)
	require.NoError(t, err)

	assert.Equal(t, "100.25", amounts.TaxableValue.StringFixed(2))
	assert.Equal(t, "12.03", amounts.TaxAmount.StringFixed(2))
	assert.Equal(t, "112.28", amounts.LineTotal.StringFixed(2))
}

func TestComputeLine_ZeroRate(t *testing.T) {
	amounts, err := ComputeLine(qty(4), types.MustMoney("25"), types.ZeroMoney(), SupplyIntra)
	require.NoError(t, err)

	assert.Equal(t, "100.00", amounts.TaxableValue.StringFixed(2))
	assert.True(t, amounts.TaxAmount.IsZero())
	assert.Equal(t, "100.00", amounts.LineTotal.StringFixed(2))
}

func TestComputeLine_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		qty    types.Quantity
		price  string
		rate   string
		supply SupplyType
	}{
		{"zero quantity", qty(0), "100", "18", SupplyIntra},
		{"negative quantity", qty(-1), "100", "18", SupplyIntra},
		{"negative price", qty(1), "-5", "18", SupplyIntra},
		{"negative rate", qty(1), "100", "-18", SupplyIntra},
		{"unknown supply type", qty(1), "100", "18", SupplyType("ABROAD")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLine(tt.qty, types.MustMoney(tt.price), types.MustMoney(tt.rate), tt.supply)
			assert.Error(t, err)
		})
	}
}

func TestComputeTotals_SumsRoundedLineValues(t *testing.T) {
	var lines []LineAmounts
	for i := 0; i < 3; i++ {
		amounts, err := ComputeLine(qty(1), types.MustMoney("33.33"), types.MustMoney("18"), SupplyIntra)
		require.NoError(t, err)
		lines = append(lines, amounts)
	}

	totals := ComputeTotals(lines)

	// 33.33 × 18% = 5.9994 → 6.00 per line; the invoice carries 3 × 6.00.
	assert.Equal(t, "99.99", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "18.00", totals.TotalTax.StringFixed(2))
	assert.Equal(t, "117.99", totals.TotalAmount.StringFixed(2))

	var lineSum types.Money = types.ZeroMoney()
	for _, l := range lines {
		lineSum = lineSum.Add(l.LineTotal)
	}
	assert.True(t, lineSum.Equal(totals.TotalAmount))
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalTax.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}
