package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/pool/keeper"
	"github.com/paw-chain/cpamm/x/pool/types"
)

func TestMsgServer_FullLifecycle(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)
	f.Fund(t, denomA, provider, math.NewInt(100))
	f.Fund(t, denomB, provider, math.NewInt(200))
	f.Fund(t, denomA, trader, math.NewInt(10))

	addRes, err := ms.AddLiquidity(f.Ctx, &types.MsgAddLiquidity{
		Sender:         provider.String(),
		DenomA:         denomA,
		DenomB:         denomB,
		AmountADesired: math.NewInt(100),
		AmountBDesired: math.NewInt(200),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		Recipient:      provider.String(),
		Deadline:       f.Deadline(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(141), addRes.Liquidity.Int64())

	swapRes, err := ms.SwapExactTokensForTokens(f.Ctx, &types.MsgSwapExactTokensForTokens{
		Sender:       trader.String(),
		AmountIn:     math.NewInt(10),
		AmountOutMin: math.NewInt(1),
		Path:         []string{denomA, denomB},
		Recipient:    trader.String(),
		Deadline:     f.Deadline(),
	})
	require.NoError(t, err)
	// floor(10*200/110)
	require.Equal(t, int64(18), swapRes.AmountOut.Int64())

	removeRes, err := ms.RemoveLiquidity(f.Ctx, &types.MsgRemoveLiquidity{
		Sender:     provider.String(),
		DenomA:     denomA,
		DenomB:     denomB,
		Liquidity:  addRes.Liquidity,
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		Recipient:  provider.String(),
		Deadline:   f.Deadline(),
	})
	require.NoError(t, err)
	require.Equal(t, int64(110), removeRes.AmountA.Int64())
	require.Equal(t, int64(182), removeRes.AmountB.Int64())

	syncRes, err := ms.Sync(f.Ctx, &types.MsgSync{Sender: trader.String()})
	require.NoError(t, err)
	require.True(t, syncRes.Reserves.IsEmpty())
}

func TestMsgServer_ValidateBasic(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)

	_, err := ms.AddLiquidity(f.Ctx, &types.MsgAddLiquidity{
		Sender:         "not-an-address",
		DenomA:         denomA,
		DenomB:         denomB,
		AmountADesired: math.NewInt(1),
		AmountBDesired: math.NewInt(1),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		Recipient:      provider.String(),
		Deadline:       f.Deadline(),
	})
	require.ErrorIs(t, err, types.ErrInvalidAddress)

	_, err = ms.SwapExactTokensForTokens(f.Ctx, &types.MsgSwapExactTokensForTokens{
		Sender:       trader.String(),
		AmountIn:     math.NewInt(10),
		AmountOutMin: math.ZeroInt(),
		Path:         []string{denomA, denomB},
		Recipient:    trader.String(),
	})
	require.ErrorIs(t, err, types.ErrExpired)

	_, err = ms.Sync(f.Ctx, &types.MsgSync{})
	require.ErrorIs(t, err, types.ErrInvalidAddress)
}

func TestMsgServer_PropagatesKeeperErrors(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)

	_, err := ms.RemoveLiquidity(f.Ctx, &types.MsgRemoveLiquidity{
		Sender:     provider.String(),
		DenomA:     denomA,
		DenomB:     denomB,
		Liquidity:  math.NewInt(1),
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		Recipient:  provider.String(),
		Deadline:   f.Deadline(),
	})
	require.ErrorIs(t, err, types.ErrInsufficientLiquidity)
}

func TestMsgServer_ExpiredWinsOverInvalidFields(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	ms := keeper.NewMsgServerImpl(f.Keeper)
	expired := f.Ctx.BlockTime().Add(-time.Nanosecond)
	before := f.Snapshot(t, provider, trader)

	_, err := ms.AddLiquidity(f.Ctx, &types.MsgAddLiquidity{
		Sender:         provider.String(),
		DenomA:         denomA,
		DenomB:         denomA,
		AmountADesired: math.NewInt(1),
		AmountBDesired: math.NewInt(1),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		Recipient:      provider.String(),
		Deadline:       expired,
	})
	require.ErrorIs(t, err, types.ErrExpired)

	_, err = ms.RemoveLiquidity(f.Ctx, &types.MsgRemoveLiquidity{
		Sender:     "not-an-address",
		DenomA:     denomA,
		DenomB:     "ujuno",
		Liquidity:  math.NewInt(-1),
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		Recipient:  provider.String(),
		Deadline:   expired,
	})
	require.ErrorIs(t, err, types.ErrExpired)

	_, err = ms.SwapExactTokensForTokens(f.Ctx, &types.MsgSwapExactTokensForTokens{
		Sender:       trader.String(),
		AmountIn:     math.NewInt(10),
		AmountOutMin: math.ZeroInt(),
		Path:         []string{denomA, denomA},
		Recipient:    trader.String(),
		Deadline:     expired,
	})
	require.ErrorIs(t, err, types.ErrExpired)
	require.NotErrorIs(t, err, types.ErrInvalidPath)

	require.Equal(t, before, f.Snapshot(t, provider, trader))
}
