package kernel

import (
	"errors"

	"labflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of fractional digits kept for monetary amounts.
const MoneyScale = 2

// MaxMoney is the largest amount a single value may carry. It matches the
// numeric(12,2) column services are stored in.
var MaxMoney = decimal.RequireFromString("9999999999.99")

var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or MoneyFromString")

// Money is a non-negative monetary amount backed by shopspring/decimal.
// Amounts are rounded half-away-from-zero to MoneyScale digits on construction.
//
// Example:
//
//	panel, _ := kernel.MoneyFromString("120.00")
//	swab, _ := kernel.MoneyFromString("15.50")
//	total := panel.Add(swab) // 135.50
type Money struct {
	amount        decimal.Decimal
	isConstructed bool
}

// ZeroMoney returns a constructed zero amount, the neutral element for Add.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, isConstructed: true}
}

// NewMoney validates amount and returns it as Money.
// Amounts that are negative or above MaxMoney after rounding are rejected with
// errs.ErrValueIsOutOfRange.
func NewMoney(amount decimal.Decimal) (Money, error) {
	rounded := amount.Round(MoneyScale)
	if amount.IsNegative() || rounded.GreaterThan(MaxMoney) {
		return Money{}, errs.NewValueIsOutOfRangeError("value", amount.String(), 0, MaxMoney.StringFixed(MoneyScale))
	}

	return Money{amount: rounded, isConstructed: true}, nil
}

// MoneyFromString parses a decimal literal such as "120.00".
func MoneyFromString(s string) (Money, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("value", err)
	}

	return NewMoney(amount)
}

// Validate fails for the zero value of Money.
func (m Money) Validate() error {
	if !m.isConstructed {
		return ErrMoneyIsNotConstructed
	}
	return nil
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), isConstructed: true}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsEqual compares amounts numerically, so 1.5 equals 1.50.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the amount for persistence and transport.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String formats the amount with exactly MoneyScale fractional digits.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
