package keeper

import (
	"context"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/token/types"
)

// Keeper is a fungible ledger for a single denom. Several keepers can share one
// store key; each keeps its state under its own denom namespace.
type Keeper struct {
	storeKey storetypes.StoreKey
	denom    string
}

// NewKeeper creates a ledger for denom. It panics on an invalid denom since a
// misconfigured ledger cannot be recovered from at runtime.
func NewKeeper(storeKey storetypes.StoreKey, denom string) Keeper {
	if err := sdk.ValidateDenom(denom); err != nil {
		panic(types.ErrInvalidDenom.Wrapf("%s: %v", denom, err))
	}
	return Keeper{
		storeKey: storeKey,
		denom:    denom,
	}
}

// Denom returns the denom this ledger accounts for.
func (k Keeper) Denom() string {
	return k.denom
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName, "denom", k.denom)
}

// getStore returns the denom namespace of the token store
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return prefix.NewStore(sdkCtx.KVStore(k.storeKey), types.DenomPrefix(k.denom))
}

func getInt(store storetypes.KVStore, key []byte) (math.Int, error) {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt(), nil
	}

	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		return math.ZeroInt(), err
	}
	return v, nil
}

func setInt(store storetypes.KVStore, key []byte, v math.Int) error {
	if v.IsZero() {
		store.Delete(key)
		return nil
	}

	bz, err := v.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("amount must be non-negative, got %s", amount)
	}
	return nil
}
