package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is a single account holding in genesis.
type Balance struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// Allowance is a spender grant in genesis.
type Allowance struct {
	Owner   string   `json:"owner"`
	Spender string   `json:"spender"`
	Amount  math.Int `json:"amount"`
}

// GenesisState holds the ledger of a single denom. Supply is not stored; it is
// recomputed from balances on import.
type GenesisState struct {
	Denom      string      `json:"denom"`
	Balances   []Balance   `json:"balances"`
	Allowances []Allowance `json:"allowances,omitempty"`
}

// DefaultGenesis returns an empty ledger for denom.
func DefaultGenesis(denom string) *GenesisState {
	return &GenesisState{Denom: denom, Balances: []Balance{}}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := sdk.ValidateDenom(gs.Denom); err != nil {
		return ErrInvalidDenom.Wrap(err.Error())
	}

	seen := make(map[string]struct{}, len(gs.Balances))
	for i, b := range gs.Balances {
		if _, err := sdk.AccAddressFromBech32(b.Address); err != nil {
			return ErrInvalidGenesis.Wrapf("balance %d: %v", i, err)
		}
		if b.Amount.IsNil() || b.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("balance %d: amount must be non-negative", i)
		}
		if _, dup := seen[b.Address]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate balance for %s", b.Address)
		}
		seen[b.Address] = struct{}{}
	}

	for i, a := range gs.Allowances {
		if _, err := sdk.AccAddressFromBech32(a.Owner); err != nil {
			return ErrInvalidGenesis.Wrapf("allowance %d owner: %v", i, err)
		}
		if _, err := sdk.AccAddressFromBech32(a.Spender); err != nil {
			return ErrInvalidGenesis.Wrapf("allowance %d spender: %v", i, err)
		}
		if a.Amount.IsNil() || a.Amount.IsNegative() {
			return ErrInvalidGenesis.Wrapf("allowance %d: amount must be non-negative", i)
		}
	}
	return nil
}
