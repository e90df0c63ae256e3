package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// AddLiquidity deposits up to the desired amounts of denomA and denomB from
// sender at the current reserve ratio and mints shares to recipient. The pair
// may be named in either order; amounts and the result follow the caller's order.
func (k Keeper) AddLiquidity(
	goCtx context.Context,
	sender sdk.AccAddress,
	denomA, denomB string,
	amountADesired, amountBDesired, amountAMin, amountBMin math.Int,
	recipient sdk.AccAddress,
	deadline time.Time,
) (types.AddLiquidityResult, error) {
	var res types.AddLiquidityResult
	err := k.runAtomic(goCtx, "add_liquidity", func(ctx sdk.Context) error {
		if err := k.ensureNotExpired(ctx, deadline); err != nil {
			return err
		}
		ledgerA, ledgerB, reversed, err := k.orient(denomA, denomB)
		if err != nil {
			return err
		}
		if err := requireNonNegative(amountADesired, amountBDesired, amountAMin, amountBMin); err != nil {
			return err
		}

		// single read of reserves and supply
		stored, err := k.GetStoredReserves(ctx)
		if err != nil {
			return err
		}
		reserveA, reserveB := stored.Oriented(reversed)
		totalShares := k.shares.TotalSupply(ctx)

		amountA, amountB, err := computeDepositAmounts(reserveA, reserveB, amountADesired, amountBDesired, amountAMin, amountBMin)
		if err != nil {
			return err
		}
		liquidity, err := computeMintedShares(amountA, amountB, reserveA, reserveB, totalShares)
		if err != nil {
			return err
		}
		if !liquidity.IsPositive() {
			return types.ErrMintedZero.Wrapf("deposit %s/%s against reserves %s/%s and supply %s",
				amountA, amountB, reserveA, reserveB, totalShares)
		}

		if err := ledgerA.TransferFrom(ctx, k.address, sender, k.address, amountA); err != nil {
			return err
		}
		if err := ledgerB.TransferFrom(ctx, k.address, sender, k.address, amountB); err != nil {
			return err
		}
		if err := k.shares.Mint(ctx, recipient, liquidity); err != nil {
			return err
		}
		if _, err := k.Synchronize(ctx); err != nil {
			return err
		}

		res = types.AddLiquidityResult{AmountA: amountA, AmountB: amountB, Liquidity: liquidity}
		return nil
	})
	if err != nil {
		return types.AddLiquidityResult{}, err
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAddLiquidity,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyDenomA, denomA),
			sdk.NewAttribute(types.AttributeKeyDenomB, denomB),
			sdk.NewAttribute(types.AttributeKeyAmountA, res.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, res.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidity, res.Liquidity.String()),
		),
	)
	k.metrics.LiquidityAdded.WithLabelValues(denomA).Add(toFloat(res.AmountA))
	k.metrics.LiquidityAdded.WithLabelValues(denomB).Add(toFloat(res.AmountB))
	k.Logger(ctx).Info("liquidity added",
		"sender", sender.String(),
		"amount_a", res.AmountA.String(),
		"amount_b", res.AmountB.String(),
		"liquidity", res.Liquidity.String(),
	)

	return res, nil
}

// RemoveLiquidity burns liquidity shares of sender and pays the proportional
// reserves to recipient. Amounts and the result follow the caller's order.
func (k Keeper) RemoveLiquidity(
	goCtx context.Context,
	sender sdk.AccAddress,
	denomA, denomB string,
	liquidity, amountAMin, amountBMin math.Int,
	recipient sdk.AccAddress,
	deadline time.Time,
) (types.RemoveLiquidityResult, error) {
	var res types.RemoveLiquidityResult
	err := k.runAtomic(goCtx, "remove_liquidity", func(ctx sdk.Context) error {
		if err := k.ensureNotExpired(ctx, deadline); err != nil {
			return err
		}
		ledgerA, ledgerB, reversed, err := k.orient(denomA, denomB)
		if err != nil {
			return err
		}
		if err := requireNonNegative(liquidity, amountAMin, amountBMin); err != nil {
			return err
		}

		if balance := k.shares.BalanceOf(ctx, sender); balance.LT(liquidity) {
			return types.ErrInsufficientLiquidity.Wrapf("have %s, need %s", balance, liquidity)
		}

		stored, err := k.GetStoredReserves(ctx)
		if err != nil {
			return err
		}
		reserveA, reserveB := stored.Oriented(reversed)
		totalShares := k.shares.TotalSupply(ctx)
		if totalShares.IsZero() {
			return types.ErrNoLiquidity.Wrap("no shares outstanding")
		}

		// truncation rounds every redemption in the pool's favor
		amountA, err := types.MulDiv(liquidity, reserveA, totalShares)
		if err != nil {
			return err
		}
		amountB, err := types.MulDiv(liquidity, reserveB, totalShares)
		if err != nil {
			return err
		}
		if amountA.LT(amountAMin) {
			return types.ErrInsufficientAAmount.Wrapf("%s below minimum %s", amountA, amountAMin)
		}
		if amountB.LT(amountBMin) {
			return types.ErrInsufficientBAmount.Wrapf("%s below minimum %s", amountB, amountBMin)
		}

		if err := k.shares.Burn(ctx, sender, liquidity); err != nil {
			return err
		}
		if err := ledgerA.Transfer(ctx, k.address, recipient, amountA); err != nil {
			return err
		}
		if err := ledgerB.Transfer(ctx, k.address, recipient, amountB); err != nil {
			return err
		}
		if _, err := k.Synchronize(ctx); err != nil {
			return err
		}

		res = types.RemoveLiquidityResult{AmountA: amountA, AmountB: amountB}
		return nil
	})
	if err != nil {
		return types.RemoveLiquidityResult{}, err
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeRemoveLiquidity,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyDenomA, denomA),
			sdk.NewAttribute(types.AttributeKeyDenomB, denomB),
			sdk.NewAttribute(types.AttributeKeyAmountA, res.AmountA.String()),
			sdk.NewAttribute(types.AttributeKeyAmountB, res.AmountB.String()),
			sdk.NewAttribute(types.AttributeKeyLiquidity, liquidity.String()),
		),
	)
	k.metrics.LiquidityRemoved.WithLabelValues(denomA).Add(toFloat(res.AmountA))
	k.metrics.LiquidityRemoved.WithLabelValues(denomB).Add(toFloat(res.AmountB))
	k.Logger(ctx).Info("liquidity removed",
		"sender", sender.String(),
		"amount_a", res.AmountA.String(),
		"amount_b", res.AmountB.String(),
		"liquidity", liquidity.String(),
	)

	return res, nil
}

// computeDepositAmounts picks the accepted deposit. An empty pool takes the
// desired amounts as-is; otherwise the deposit is fitted to the reserve ratio.
// Against one-sided reserves the ratio accepts nothing of the empty side, so
// such a deposit mints zero shares until the other asset is donated and synced.
// The minimums are checked on the final amounts whichever branch was taken.
func computeDepositAmounts(reserveA, reserveB, desiredA, desiredB, minA, minB math.Int) (math.Int, math.Int, error) {
	var amountA, amountB math.Int

	switch {
	case reserveA.IsZero() && reserveB.IsZero():
		amountA, amountB = desiredA, desiredB

	case reserveB.IsZero():
		amountA, amountB = desiredA, math.ZeroInt()

	case reserveA.IsZero():
		amountA, amountB = math.ZeroInt(), desiredB

	default:
		optimalB, err := types.Quote(desiredA, reserveA, reserveB)
		if err != nil {
			return math.ZeroInt(), math.ZeroInt(), err
		}
		if optimalB.LTE(desiredB) {
			amountA, amountB = desiredA, optimalB
		} else {
			optimalA, err := types.Quote(desiredB, reserveB, reserveA)
			if err != nil {
				return math.ZeroInt(), math.ZeroInt(), err
			}
			if optimalA.LT(minA) {
				return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientAAmount.Wrapf("optimal %s below minimum %s", optimalA, minA)
			}
			amountA, amountB = optimalA, desiredB
		}
	}

	if amountA.LT(minA) || amountB.LT(minB) {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInsufficientLiquidityAdded.Wrapf(
			"accepted %s/%s, minimum %s/%s", amountA, amountB, minA, minB)
	}
	return amountA, amountB, nil
}

// computeMintedShares returns the geometric mean for the first deposit and the
// smaller proportional contribution afterwards, so a skewed deposit never mints
// more than its scarcer side is worth.
func computeMintedShares(amountA, amountB, reserveA, reserveB, totalShares math.Int) (math.Int, error) {
	if totalShares.IsZero() {
		product, err := amountA.SafeMul(amountB)
		if err != nil {
			return math.ZeroInt(), types.ErrOverflow.Wrapf("%s * %s: %v", amountA, amountB, err)
		}
		return IntSqrt(product), nil
	}

	if reserveA.IsZero() || reserveB.IsZero() {
		return math.ZeroInt(), types.ErrNoLiquidity.Wrapf(
			"supply %s backed by one-sided reserves %s/%s, donate the other asset and sync", totalShares, reserveA, reserveB)
	}
	byA, err := types.MulDiv(amountA, totalShares, reserveA)
	if err != nil {
		return math.ZeroInt(), err
	}
	byB, err := types.MulDiv(amountB, totalShares, reserveB)
	if err != nil {
		return math.ZeroInt(), err
	}
	return math.MinInt(byA, byB), nil
}

func requireNonNegative(amounts ...math.Int) error {
	for _, amount := range amounts {
		if amount.IsNil() || amount.IsNegative() {
			return types.ErrInvalidAmount.Wrapf("amounts must be non-negative, got %s", amount)
		}
	}
	return nil
}
