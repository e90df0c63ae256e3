package keeper

import (
	"context"
	"fmt"

	"github.com/sugawarayuuta/sonnet"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// InitGenesis records the pair and synchronizes reserves with whatever the
// custody account already holds. Re-running it against an existing store only
// succeeds for the same pair.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if gs.Pair != k.pair {
		return types.ErrInvalidGenesis.Wrapf("genesis pair %s does not match keeper pair %s", gs.Pair, k.pair)
	}

	stored, found, err := k.GetStoredPair(ctx)
	if err != nil {
		return err
	}
	if found && stored != k.pair {
		return types.ErrInvalidGenesis.Wrapf("store already holds pair %s", stored)
	}

	bz, err := sonnet.Marshal(k.pair)
	if err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	k.getStore(ctx).Set(types.PairKey, bz)

	if _, err := k.Synchronize(ctx); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}
	return nil
}

// ExportGenesis returns the pool's genesis state.
func (k Keeper) ExportGenesis(ctx context.Context) *types.GenesisState {
	return types.NewGenesisState(k.pair)
}

// GetStoredPair returns the pair recorded by InitGenesis.
func (k Keeper) GetStoredPair(ctx context.Context) (types.AssetPair, bool, error) {
	bz := k.getStore(ctx).Get(types.PairKey)
	if bz == nil {
		return types.AssetPair{}, false, nil
	}

	var pair types.AssetPair
	if err := sonnet.Unmarshal(bz, &pair); err != nil {
		return types.AssetPair{}, false, fmt.Errorf("GetStoredPair: %w", err)
	}
	return pair, true, nil
}

// VerifyStoredPair fails when the store was initialized for another pair or
// not initialized at all.
func (k Keeper) VerifyStoredPair(ctx context.Context) error {
	stored, found, err := k.GetStoredPair(ctx)
	if err != nil {
		return err
	}
	if !found {
		return types.ErrInvalidGenesis.Wrap("pool not initialized")
	}
	if stored != k.pair {
		return types.ErrInvalidGenesis.Wrapf("store holds pair %s, keeper trades %s", stored, k.pair)
	}
	return nil
}
