package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/pool/types"
)

func TestGenesis_StoresPair(t *testing.T) {
	f := keepertest.PoolKeeper(t)

	pair, found, err := f.Keeper.GetStoredPair(f.Ctx)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, f.Keeper.Pair(), pair)
	require.NoError(t, f.Keeper.VerifyStoredPair(f.Ctx))

	require.Equal(t, types.NewGenesisState(pair), f.Keeper.ExportGenesis(f.Ctx))
}

func TestGenesis_RejectsOtherPair(t *testing.T) {
	f := keepertest.PoolKeeper(t)

	err := f.Keeper.InitGenesis(f.Ctx, types.GenesisState{Pair: types.AssetPair{DenomA: denomB, DenomB: denomA}})
	require.ErrorIs(t, err, types.ErrInvalidGenesis)

	err = f.Keeper.InitGenesis(f.Ctx, types.GenesisState{Pair: types.AssetPair{DenomA: denomA, DenomB: denomA}})
	require.ErrorIs(t, err, types.ErrInvalidGenesis)
}

func TestGenesis_IsIdempotentAndSyncsBalances(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	require.NoError(t, f.AssetA.Mint(f.Ctx, f.Keeper.Address(), math.NewInt(5)))
	require.NoError(t, f.AssetB.Mint(f.Ctx, f.Keeper.Address(), math.NewInt(8)))

	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, *f.Keeper.ExportGenesis(f.Ctx)))
	reserves, err := f.Keeper.GetStoredReserves(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, "5/8", reserves.String())
}

func TestPoolAddress_Deterministic(t *testing.T) {
	pair := types.AssetPair{DenomA: denomA, DenomB: denomB}
	require.Equal(t, types.PoolAddress(pair), types.PoolAddress(pair))
	require.Len(t, types.PoolAddress(pair), 20)
	require.NotEqual(t, types.PoolAddress(pair), types.PoolAddress(types.AssetPair{DenomA: denomB, DenomB: denomA}))
}
