package types

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgAddLiquidity deposits both assets and mints shares to Recipient.
type MsgAddLiquidity struct {
	Sender         string    `json:"sender"`
	DenomA         string    `json:"denom_a"`
	DenomB         string    `json:"denom_b"`
	AmountADesired math.Int  `json:"amount_a_desired"`
	AmountBDesired math.Int  `json:"amount_b_desired"`
	AmountAMin     math.Int  `json:"amount_a_min"`
	AmountBMin     math.Int  `json:"amount_b_min"`
	Recipient      string    `json:"recipient"`
	Deadline       time.Time `json:"deadline"`
}

// MsgRemoveLiquidity burns Sender's shares and pays both assets to Recipient.
type MsgRemoveLiquidity struct {
	Sender     string    `json:"sender"`
	DenomA     string    `json:"denom_a"`
	DenomB     string    `json:"denom_b"`
	Liquidity  math.Int  `json:"liquidity"`
	AmountAMin math.Int  `json:"amount_a_min"`
	AmountBMin math.Int  `json:"amount_b_min"`
	Recipient  string    `json:"recipient"`
	Deadline   time.Time `json:"deadline"`
}

// MsgSwapExactTokensForTokens sells exactly AmountIn of Path[0] for Path[1].
type MsgSwapExactTokensForTokens struct {
	Sender       string    `json:"sender"`
	AmountIn     math.Int  `json:"amount_in"`
	AmountOutMin math.Int  `json:"amount_out_min"`
	Path         []string  `json:"path"`
	Recipient    string    `json:"recipient"`
	Deadline     time.Time `json:"deadline"`
}

// MsgSync resynchronizes the reserves with the custodied balances.
type MsgSync struct {
	Sender string `json:"sender"`
}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return ErrInvalidAddress.Wrapf("%s: %v", field, err)
	}
	return nil
}

func validateNonNegative(field string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("%s must be non-negative", field)
	}
	return nil
}

// ValidateBasic performs stateless validation
func (m MsgAddLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", m.Recipient); err != nil {
		return err
	}
	if _, err := NewAssetPair(m.DenomA, m.DenomB); err != nil {
		return err
	}
	if err := validateNonNegative("amount_a_desired", m.AmountADesired); err != nil {
		return err
	}
	if err := validateNonNegative("amount_b_desired", m.AmountBDesired); err != nil {
		return err
	}
	if err := validateNonNegative("amount_a_min", m.AmountAMin); err != nil {
		return err
	}
	if err := validateNonNegative("amount_b_min", m.AmountBMin); err != nil {
		return err
	}
	if m.Deadline.IsZero() {
		return ErrExpired.Wrap("deadline must be set")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (m MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", m.Recipient); err != nil {
		return err
	}
	if _, err := NewAssetPair(m.DenomA, m.DenomB); err != nil {
		return err
	}
	if err := validateNonNegative("liquidity", m.Liquidity); err != nil {
		return err
	}
	if err := validateNonNegative("amount_a_min", m.AmountAMin); err != nil {
		return err
	}
	if err := validateNonNegative("amount_b_min", m.AmountBMin); err != nil {
		return err
	}
	if m.Deadline.IsZero() {
		return ErrExpired.Wrap("deadline must be set")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (m MsgSwapExactTokensForTokens) ValidateBasic() error {
	if err := validateAddress("sender", m.Sender); err != nil {
		return err
	}
	if err := validateAddress("recipient", m.Recipient); err != nil {
		return err
	}
	if len(m.Path) != 2 || m.Path[0] == m.Path[1] {
		return ErrInvalidPath.Wrapf("path %v", m.Path)
	}
	if err := validateNonNegative("amount_in", m.AmountIn); err != nil {
		return err
	}
	if err := validateNonNegative("amount_out_min", m.AmountOutMin); err != nil {
		return err
	}
	if m.Deadline.IsZero() {
		return ErrExpired.Wrap("deadline must be set")
	}
	return nil
}

// ValidateBasic performs stateless validation
func (m MsgSync) ValidateBasic() error {
	return validateAddress("sender", m.Sender)
}

// MsgAddLiquidityResponse reports the accepted deposit and minted shares.
type MsgAddLiquidityResponse struct {
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
	Liquidity math.Int `json:"liquidity"`
}

// MsgRemoveLiquidityResponse reports the redeemed amounts.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgSwapExactTokensForTokensResponse reports the amounts of both legs.
type MsgSwapExactTokensForTokensResponse struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}

// MsgSyncResponse reports the reserves after synchronization.
type MsgSyncResponse struct {
	Reserves Reserves `json:"reserves"`
}

// MsgServer is the transaction surface of the pool module.
type MsgServer interface {
	AddLiquidity(context.Context, *MsgAddLiquidity) (*MsgAddLiquidityResponse, error)
	RemoveLiquidity(context.Context, *MsgRemoveLiquidity) (*MsgRemoveLiquidityResponse, error)
	SwapExactTokensForTokens(context.Context, *MsgSwapExactTokensForTokens) (*MsgSwapExactTokensForTokensResponse, error)
	Sync(context.Context, *MsgSync) (*MsgSyncResponse, error)
}
