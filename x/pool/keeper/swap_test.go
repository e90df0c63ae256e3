package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/paw-chain/cpamm/testutil/keeper"
	"github.com/paw-chain/cpamm/x/pool/types"
)

func setupPoolForSwaps(t *testing.T, reserveA, reserveB int64) *keepertest.PoolFixture {
	f := keepertest.PoolKeeper(t)
	f.Provide(t, provider, math.NewInt(reserveA), math.NewInt(reserveB))
	return f
}

func TestSwap_Valid(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))

	res, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.NewInt(9),
		[]string{denomA, denomB}, receiver, f.Deadline())
	require.NoError(t, err)
	require.Equal(t, int64(10), res.AmountIn.Int64())
	// floor(10*100/110)
	require.Equal(t, int64(9), res.AmountOut.Int64())

	require.True(t, f.AssetA.BalanceOf(f.Ctx, trader).IsZero())
	require.Equal(t, int64(9), f.AssetB.BalanceOf(f.Ctx, receiver).Int64())

	reserveA, reserveB, err := f.Keeper.GetReserves(f.Ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, int64(110), reserveA.Int64())
	require.Equal(t, int64(91), reserveB.Int64())
	f.RequireReservesSynced(t)
}

func TestSwap_ReverseDirection(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 200)
	f.Fund(t, denomB, trader, math.NewInt(50))

	res, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(50), math.ZeroInt(),
		[]string{denomB, denomA}, trader, f.Deadline())
	require.NoError(t, err)
	// floor(50*100/250)
	require.Equal(t, int64(20), res.AmountOut.Int64())

	reserveA, reserveB, err := f.Keeper.GetReserves(f.Ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, int64(80), reserveA.Int64())
	require.Equal(t, int64(250), reserveB.Int64())
}

func TestSwap_PriceImpact(t *testing.T) {
	f := setupPoolForSwaps(t, 1_000_000, 1_000_000)
	f.Fund(t, denomA, trader, math.NewInt(100_000))

	res, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(100_000), math.ZeroInt(),
		[]string{denomA, denomB}, trader, f.Deadline())
	require.NoError(t, err)
	// strictly below the linear extrapolation of the spot price
	require.True(t, res.AmountOut.LT(math.NewInt(100_000)))
	require.Equal(t, int64(90909), res.AmountOut.Int64())
}

func TestSwap_SlippageExceeded(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))
	before := f.Snapshot(t, trader, receiver)

	_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.NewInt(10),
		[]string{denomA, denomB}, receiver, f.Deadline())
	require.ErrorIs(t, err, types.ErrInsufficientOutputAmount)
	require.Equal(t, before, f.Snapshot(t, trader, receiver))
}

func TestSwap_Failures(t *testing.T) {
	tests := []struct {
		name     string
		path     []string
		amountIn int64
		err      error
	}{
		{"foreign input", []string{"ctoken", denomB}, 10, types.ErrInvalidInputAsset},
		{"foreign output", []string{denomA, "ctoken"}, 10, types.ErrInvalidOutputAsset},
		{"identical assets", []string{denomA, denomA}, 10, types.ErrInvalidPath},
		{"multi-hop", []string{denomA, denomB, denomA}, 10, types.ErrInvalidPath},
		{"single element", []string{denomA}, 10, types.ErrInvalidPath},
		{"zero input", []string{denomA, denomB}, 0, types.ErrZeroInput},
		{"negative input", []string{denomA, denomB}, -5, types.ErrInvalidAmount},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := setupPoolForSwaps(t, 100, 100)
			f.Fund(t, denomA, trader, math.NewInt(10))
			before := f.Snapshot(t, trader)

			_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(tc.amountIn), math.ZeroInt(),
				tc.path, trader, f.Deadline())
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, before, f.Snapshot(t, trader))
		})
	}
}

func TestSwap_EmptyPool(t *testing.T) {
	f := keepertest.PoolKeeper(t)
	f.Fund(t, denomA, trader, math.NewInt(10))

	_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.ZeroInt(),
		[]string{denomA, denomB}, trader, f.Deadline())
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}

func TestSwap_RollsBackFailedPayout(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))
	before := f.Snapshot(t, trader)

	// the input has been taken when the payout fails
	f.FailingB.FailTransfer = true
	_, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.ZeroInt(),
		[]string{denomA, denomB}, trader, f.Deadline())
	require.ErrorIs(t, err, keepertest.ErrInjected)
	require.Equal(t, before, f.Snapshot(t, trader))
}

func TestSwap_AbsorbsDonation(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	require.NoError(t, f.AssetB.Mint(f.Ctx, f.Keeper.Address(), math.NewInt(10)))
	f.Fund(t, denomA, trader, math.NewInt(10))

	// priced on the stored reserves, the donation is only picked up by the resync
	res, err := f.Keeper.SwapExactTokensForTokens(f.Ctx, trader, math.NewInt(10), math.ZeroInt(),
		[]string{denomA, denomB}, trader, f.Deadline())
	require.NoError(t, err)
	require.Equal(t, int64(9), res.AmountOut.Int64())

	reserveA, reserveB, err := f.Keeper.GetReserves(f.Ctx, denomA, denomB)
	require.NoError(t, err)
	require.Equal(t, int64(110), reserveA.Int64())
	require.Equal(t, int64(101), reserveB.Int64())
	f.RequireReservesSynced(t)
}

func TestSwap_EmitsEvent(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())

	_, err := f.Keeper.SwapExactTokensForTokens(ctx, trader, math.NewInt(10), math.ZeroInt(),
		[]string{denomA, denomB}, receiver, f.Deadline())
	require.NoError(t, err)

	var found bool
	for _, ev := range ctx.EventManager().Events() {
		if ev.Type != types.EventTypeSwap {
			continue
		}
		found = true
		attrs := make(map[string]string)
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		require.Equal(t, trader.String(), attrs[types.AttributeKeySender])
		require.Equal(t, receiver.String(), attrs[types.AttributeKeyRecipient])
		require.Equal(t, "10", attrs[types.AttributeKeyAmountIn])
		require.Equal(t, "9", attrs[types.AttributeKeyAmountOut])
	}
	require.True(t, found)
}

func TestSwap_FailureEmitsNoEvent(t *testing.T) {
	f := setupPoolForSwaps(t, 100, 100)
	f.Fund(t, denomA, trader, math.NewInt(10))
	ctx := f.Ctx.WithEventManager(sdk.NewEventManager())

	_, err := f.Keeper.SwapExactTokensForTokens(ctx, trader, math.NewInt(10), math.NewInt(100),
		[]string{denomA, denomB}, receiver, f.Deadline())
	require.Error(t, err)
	require.Empty(t, ctx.EventManager().Events())
}
