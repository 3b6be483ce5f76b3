// Package types provides common domain value types.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors in tax and
// balance arithmetic.
type Money = decimal.Decimal

// MoneyPlaces is the scale every stored monetary amount is rounded to.
const MoneyPlaces = 2

// NewMoney creates a Money value from a float.
// WARNING: Use MoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// MoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func MoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// RoundMoney rounds to 2 decimal places, half up.
// Every intermediate amount (line tax, CGST half, line total) is rounded
// with this function so that stored values always equal their printed form.
func RoundMoney(m Money) Money {
	return m.Round(MoneyPlaces)
}
