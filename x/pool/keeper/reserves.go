package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// GetStoredReserves returns the reserves recorded by the last synchronization.
func (k Keeper) GetStoredReserves(ctx context.Context) (types.Reserves, error) {
	store := k.getStore(ctx)

	reserveA, err := readInt(store.Get(types.ReserveAKey))
	if err != nil {
		return types.Reserves{}, fmt.Errorf("GetStoredReserves: reserve a: %w", err)
	}
	reserveB, err := readInt(store.Get(types.ReserveBKey))
	if err != nil {
		return types.Reserves{}, fmt.Errorf("GetStoredReserves: reserve b: %w", err)
	}
	return types.Reserves{ReserveA: reserveA, ReserveB: reserveB}, nil
}

func (k Keeper) setReserves(ctx context.Context, reserves types.Reserves) error {
	store := k.getStore(ctx)

	bzA, err := reserves.ReserveA.Marshal()
	if err != nil {
		return fmt.Errorf("setReserves: reserve a: %w", err)
	}
	bzB, err := reserves.ReserveB.Marshal()
	if err != nil {
		return fmt.Errorf("setReserves: reserve b: %w", err)
	}
	store.Set(types.ReserveAKey, bzA)
	store.Set(types.ReserveBKey, bzB)
	return nil
}

// Synchronize overwrites the stored reserves with the balances the pool
// actually custodies. Every mutating operation ends with it, which absorbs
// out-of-band transfers and keeps reserves from drifting.
func (k Keeper) Synchronize(ctx context.Context) (types.Reserves, error) {
	reserves := types.Reserves{
		ReserveA: k.assetA.BalanceOf(ctx, k.address),
		ReserveB: k.assetB.BalanceOf(ctx, k.address),
	}
	if err := k.setReserves(ctx, reserves); err != nil {
		return types.Reserves{}, err
	}
	return reserves, nil
}

// Sync resynchronizes the reserves on behalf of sender without moving funds.
func (k Keeper) Sync(goCtx context.Context, sender sdk.AccAddress) (types.Reserves, error) {
	var reserves types.Reserves
	err := k.runAtomic(goCtx, "sync", func(ctx sdk.Context) error {
		var err error
		reserves, err = k.Synchronize(ctx)
		return err
	})
	if err != nil {
		return types.Reserves{}, err
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSync,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyReserveA, reserves.ReserveA.String()),
			sdk.NewAttribute(types.AttributeKeyReserveB, reserves.ReserveB.String()),
		),
	)
	k.Logger(ctx).Info("reserves synchronized", "reserves", reserves.String())

	return reserves, nil
}

func readInt(bz []byte) (math.Int, error) {
	if bz == nil {
		return math.ZeroInt(), nil
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return v, nil
}
