package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetLedger is a fungible asset the pool custodies. The pool always acts as
// spender in TransferFrom and as sender in Transfer.
type AssetLedger interface {
	Denom() string
	TransferFrom(ctx context.Context, spender, owner, recipient sdk.AccAddress, amount math.Int) error
	Transfer(ctx context.Context, sender, recipient sdk.AccAddress, amount math.Int) error
	BalanceOf(ctx context.Context, addr sdk.AccAddress) math.Int
	Allowance(ctx context.Context, owner, spender sdk.AccAddress) math.Int
}

// ShareLedger is the pool's own ownership token.
type ShareLedger interface {
	Denom() string
	BalanceOf(ctx context.Context, addr sdk.AccAddress) math.Int
	TotalSupply(ctx context.Context) math.Int
	Mint(ctx context.Context, to sdk.AccAddress, amount math.Int) error
	Burn(ctx context.Context, from sdk.AccAddress, amount math.Int) error
	IterateBalances(ctx context.Context, cb func(addr sdk.AccAddress, balance math.Int) (stop bool)) error
}
