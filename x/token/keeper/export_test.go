package keeper

import storetypes "cosmossdk.io/store/types"

// StoreKeyOf exposes the store key so tests can bind further denoms to the same store.
func StoreKeyOf(k Keeper) storetypes.StoreKey {
	return k.storeKey
}
