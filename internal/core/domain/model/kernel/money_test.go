package kernel_test

import (
	"testing"

	"labflow/internal/core/domain/model/kernel"
	"labflow/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		want    string
		wantErr error
	}{
		{name: "positive amount", amount: decimal.RequireFromString("120"), want: "120.00"},
		{name: "zero is allowed", amount: decimal.Zero, want: "0.00"},
		{name: "rounded to cents", amount: decimal.RequireFromString("10.005"), want: "10.01"},
		{name: "negative amount", amount: decimal.RequireFromString("-0.01"), wantErr: errs.ErrValueIsOutOfRange},
		{name: "largest storable amount", amount: decimal.RequireFromString("9999999999.99"), want: "9999999999.99"},
		{name: "above storable range", amount: decimal.RequireFromString("10000000000"), wantErr: errs.ErrValueIsOutOfRange},
		{name: "rounds up past storable range", amount: decimal.RequireFromString("9999999999.995"), wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := kernel.NewMoney(tt.amount)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, m.Validate())
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestMoneyFromString(t *testing.T) {
	t.Run("parses decimal literal", func(t *testing.T) {
		m, err := kernel.MoneyFromString("15.5")

		require.NoError(t, err)
		assert.Equal(t, "15.50", m.String())
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("fifteen")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Add(t *testing.T) {
	// Given
	a, _ := kernel.MoneyFromString("0.10")
	b, _ := kernel.MoneyFromString("0.20")

	// When
	sum := kernel.ZeroMoney().Add(a).Add(b)

	// Then
	expected, _ := kernel.MoneyFromString("0.30")
	assert.True(t, sum.IsEqual(expected))
	assert.True(t, sum.IsPositive())
	assert.False(t, kernel.ZeroMoney().IsPositive())
}

func TestMoney_ZeroValueIsInvalid(t *testing.T) {
	var m kernel.Money
	assert.ErrorIs(t, m.Validate(), kernel.ErrMoneyIsNotConstructed)
}
