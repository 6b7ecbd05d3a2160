package dex

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"liquidityDesk/internal/model"
)

// ToProtocolUnits converts a human token amount into the integer protocol
// units the contract expects (amount * 10^decimals, truncated).
func ToProtocolUnits(amount decimal.Decimal, decimals uint8) (*big.Int, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount %s is negative", model.ErrInvalidInput, amount)
	}
	return amount.Shift(int32(decimals)).Truncate(0).BigInt(), nil
}

// FromProtocolUnits converts integer protocol units back into a human
// amount.
func FromProtocolUnits(raw *big.Int, decimals uint8) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -int32(decimals))
}

// ParseAmount parses a human amount string.
func ParseAmount(input string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", model.ErrInvalidInput, input, err)
	}
	return amount, nil
}
