package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/pool/keeper"
)

type invariantRegistry struct {
	routes []string
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, _ sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
}

func TestRegisterInvariants(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	ir := &invariantRegistry{}

	keeper.RegisterInvariants(ir, f.Keeper)
	require.ElementsMatch(t, []string{"pool/reserves-backed", "pool/share-supply", "pool/positive-reserves"}, ir.routes)
}

func TestInvariants_HoldAcrossOperations(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	requireInvariantsHold(t, f)

	f.Provide(t, provider, math.NewInt(1000), math.NewInt(4000))
	requireInvariantsHold(t, f)

	f.Fund(t, denomB, trader, math.NewInt(500))
	_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(500), math.ZeroInt(),
		[]string{denomB, denomA}, trader, f.Deadline())
	require.NoError(t, err)
	requireInvariantsHold(t, f)

	// a donation leaves the reserves backed until the next sync
	require.NoError(t, f.AssetA.Mint(f.Ctx, f.Keeper.Address(), math.NewInt(7)))
	requireInvariantsHold(t, f)

	_, err = f.Keeper.RemoveLiquidity(f.Ctx, provider, denomA, denomB,
		f.Keeper.ShareBalance(f.Ctx, provider), math.ZeroInt(), math.ZeroInt(), provider, f.Deadline())
	require.NoError(t, err)
	requireInvariantsHold(t, f)
}

func TestReservesBackedInvariant_DetectsShortfall(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	f.Provide(t, provider, math.NewInt(100), math.NewInt(100))

	// funds leaving custody behind the pool's back
	require.NoError(t, f.AssetA.Burn(f.Ctx, f.Keeper.Address(), math.NewInt(1)))

	msg, broken := keeper.ReservesBackedInvariant(f.Keeper)(f.Ctx)
	require.True(t, broken, msg)
}

func TestShareSupplyInvariant_Holds(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	f.Provide(t, provider, math.NewInt(100), math.NewInt(100))
	f.Provide(t, trader, math.NewInt(30), math.NewInt(30))
	require.NoError(t, f.Shares.Transfer(f.Ctx, trader, receiver, math.NewInt(10)))

	msg, broken := keeper.ShareSupplyInvariant(f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}

func requireInvariantsHold(t *testing.T, f *keepertest.PoolFixture) {
	t.Helper()
	msg, broken := keeper.AllInvariants(f.Keeper)(f.Ctx)
	require.False(t, broken, msg)
}
