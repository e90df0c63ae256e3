package api

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Validation constants
const (
	MaxAmountLength  = 78 // digits of the largest 256-bit integer
	MaxAddressLength = 100
	MaxDenomLength   = 128
)

// ValidateAddress parses a bech32 account address
func ValidateAddress(address string) (sdk.AccAddress, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	if len(address) > MaxAddressLength {
		return nil, fmt.Errorf("address too long")
	}

	addr, err := sdk.AccAddressFromBech32(address)
	if err != nil {
		return nil, fmt.Errorf("invalid address: %w", err)
	}
	return addr, nil
}

// ValidateAmount parses a non-negative integer amount
func ValidateAmount(amount string) (math.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return math.Int{}, fmt.Errorf("amount is required")
	}
	if len(amount) > MaxAmountLength {
		return math.Int{}, fmt.Errorf("amount too long")
	}

	v, ok := math.NewIntFromString(amount)
	if !ok || v.IsNegative() {
		return math.Int{}, fmt.Errorf("amount must be a non-negative integer")
	}
	return v, nil
}

// ValidateDenom validates token denomination
func ValidateDenom(denom string) error {
	denom = strings.TrimSpace(denom)
	if denom == "" {
		return fmt.Errorf("denom is required")
	}
	if len(denom) > MaxDenomLength {
		return fmt.Errorf("denom too long")
	}
	return sdk.ValidateDenom(denom)
}
