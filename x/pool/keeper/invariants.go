package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// RegisterInvariants registers all pool invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "reserves-backed", ReservesBackedInvariant(k))
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "positive-reserves", PositiveReservesInvariant(k))
}

// AllInvariants runs all invariants of the pool module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := ReservesBackedInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = ShareSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return PositiveReservesInvariant(k)(ctx)
	}
}

// ReservesBackedInvariant checks the custodied balances cover the stored
// reserves. Balances may exceed reserves after a donation until the next sync.
func ReservesBackedInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		reserves, err := k.GetStoredReserves(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "reserves-backed", err.Error()), true
		}

		var msg string
		balanceA := k.assetA.BalanceOf(ctx, k.address)
		balanceB := k.assetB.BalanceOf(ctx, k.address)
		if balanceA.LT(reserves.ReserveA) {
			msg += fmt.Sprintf("balance of %s (%s) < reserve (%s)\n", k.pair.DenomA, balanceA, reserves.ReserveA)
		}
		if balanceB.LT(reserves.ReserveB) {
			msg += fmt.Sprintf("balance of %s (%s) < reserve (%s)\n", k.pair.DenomB, balanceB, reserves.ReserveB)
		}

		broken := msg != ""
		return sdk.FormatInvariant(types.ModuleName, "reserves-backed", msg), broken
	}
}

// ShareSupplyInvariant checks the sum of holder shares equals the share supply.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		sum := math.ZeroInt()
		err := k.shares.IterateBalances(ctx, func(_ sdk.AccAddress, balance math.Int) bool {
			sum = sum.Add(balance)
			return false
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "share-supply", err.Error()), true
		}

		supply := k.shares.TotalSupply(ctx)
		broken := !sum.Equal(supply)
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("sum of holder balances %s, total supply %s", sum, supply),
		), broken
	}
}

// PositiveReservesInvariant checks outstanding shares are backed by both assets.
func PositiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		reserves, err := k.GetStoredReserves(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "positive-reserves", err.Error()), true
		}

		supply := k.shares.TotalSupply(ctx)
		broken := supply.IsPositive() && (!reserves.ReserveA.IsPositive() || !reserves.ReserveB.IsPositive())
		return sdk.FormatInvariant(
			types.ModuleName, "positive-reserves",
			fmt.Sprintf("supply %s, reserves %s", supply, reserves),
		), broken
	}
}
