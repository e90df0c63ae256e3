package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/token/types"
)

// RegisterInvariants registers the ledger invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "supply/"+k.denom, SupplyInvariant(k))
}

// SupplyInvariant checks that the sum of all balances equals the total supply
func SupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sum := math.ZeroInt()
		holders := 0
		err := k.IterateBalances(ctx, func(_ sdk.AccAddress, balance math.Int) bool {
			sum = sum.Add(balance)
			holders++
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "supply", fmt.Sprintf("%s: %v", k.denom, err)), true
		}

		supply := k.TotalSupply(ctx)
		broken := !sum.Equal(supply)
		return sdk.FormatInvariant(
			types.ModuleName, "supply",
			fmt.Sprintf("%s: sum of %d balances %s, total supply %s\n", k.denom, holders, sum, supply),
		), broken
	}
}
