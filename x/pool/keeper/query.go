package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// GetReserves returns the committed reserves in the order the caller names the pair.
func (k Keeper) GetReserves(ctx context.Context, denomA, denomB string) (math.Int, math.Int, error) {
	reversed, err := k.pair.Orient(denomA, denomB)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.mu.RLock()
	defer k.mu.RUnlock()

	reserves, err := k.GetStoredReserves(ctx)
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	reserveA, reserveB := reserves.Oriented(reversed)
	return reserveA, reserveB, nil
}

// GetPrice returns units of denomB per unit of denomA scaled by 1e18.
func (k Keeper) GetPrice(ctx context.Context, denomA, denomB string) (math.Int, error) {
	reserveA, reserveB, err := k.GetReserves(ctx, denomA, denomB)
	if err != nil {
		return math.ZeroInt(), err
	}
	return types.SpotPrice(reserveA, reserveB)
}

// GetAmountOut quotes a trade against arbitrary reserves without touching state.
func (k Keeper) GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	return types.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// Quote returns the amount of the second asset matching amountA at the given
// reserve ratio.
func (k Keeper) Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	return types.Quote(amountA, reserveA, reserveB)
}

// PoolInfo returns a consistent snapshot of the pool.
func (k Keeper) PoolInfo(ctx context.Context) (types.PoolInfo, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	reserves, err := k.GetStoredReserves(ctx)
	if err != nil {
		return types.PoolInfo{}, err
	}
	return types.PoolInfo{
		Pair:        k.pair,
		Address:     k.address,
		ShareDenom:  k.shares.Denom(),
		Reserves:    reserves,
		TotalShares: k.shares.TotalSupply(ctx),
	}, nil
}

// ShareBalance returns the shares held by addr.
func (k Keeper) ShareBalance(ctx context.Context, addr sdk.AccAddress) math.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()

	return k.shares.BalanceOf(ctx, addr)
}
