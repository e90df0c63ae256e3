package keeper

import (
	"context"
	"fmt"
	"sort"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/token/types"
)

// InitGenesis loads balances and allowances. Supply is the sum of balances.
func (k Keeper) InitGenesis(ctx context.Context, gs types.GenesisState) error {
	if gs.Denom != k.denom {
		return types.ErrInvalidGenesis.Wrapf("genesis denom %s does not match ledger %s", gs.Denom, k.denom)
	}
	if err := gs.Validate(); err != nil {
		return err
	}

	store := k.getStore(ctx)
	supply := math.ZeroInt()
	for _, b := range gs.Balances {
		addr, err := sdk.AccAddressFromBech32(b.Address)
		if err != nil {
			return err
		}
		if supply, err = supply.SafeAdd(b.Amount); err != nil {
			return types.ErrInvalidGenesis.Wrapf("supply overflow at %s", b.Address)
		}
		if err := setInt(store, types.BalanceKey(addr), b.Amount); err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
	}
	if err := setInt(store, types.SupplyKey, supply); err != nil {
		return fmt.Errorf("InitGenesis: %w", err)
	}

	for _, a := range gs.Allowances {
		owner, err := sdk.AccAddressFromBech32(a.Owner)
		if err != nil {
			return err
		}
		spender, err := sdk.AccAddressFromBech32(a.Spender)
		if err != nil {
			return err
		}
		if err := setInt(store, types.AllowanceKey(owner, spender), a.Amount); err != nil {
			return fmt.Errorf("InitGenesis: %w", err)
		}
	}
	return nil
}

// ExportGenesis returns the ledger state sorted by address.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	gs := types.DefaultGenesis(k.denom)
	err := k.IterateBalances(ctx, func(addr sdk.AccAddress, balance math.Int) bool {
		gs.Balances = append(gs.Balances, types.Balance{Address: addr.String(), Amount: balance})
		return false
	})
	if err != nil {
		return nil, err
	}

	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.AllowanceKeyPrefix)
	defer iterator.Close()
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(types.AllowanceKeyPrefix):]
		ownerLen := int(key[0])
		owner := sdk.AccAddress(key[1 : 1+ownerLen])
		spender := sdk.AccAddress(key[1+ownerLen:])

		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return nil, fmt.Errorf("ExportGenesis: %w", err)
		}
		gs.Allowances = append(gs.Allowances, types.Allowance{
			Owner:   owner.String(),
			Spender: spender.String(),
			Amount:  amount,
		})
	}

	sort.Slice(gs.Balances, func(i, j int) bool { return gs.Balances[i].Address < gs.Balances[j].Address })
	return gs, nil
}
