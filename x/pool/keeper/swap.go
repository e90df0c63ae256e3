package keeper

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// SwapExactTokensForTokens sells exactly amountIn of path[0] for path[1] and
// pays the output to recipient. It fails if the output would be below
// amountOutMin.
func (k Keeper) SwapExactTokensForTokens(
	goCtx context.Context,
	sender sdk.AccAddress,
	amountIn, amountOutMin math.Int,
	path []string,
	recipient sdk.AccAddress,
	deadline time.Time,
) (types.SwapResult, error) {
	var res types.SwapResult
	err := k.runAtomic(goCtx, "swap", func(ctx sdk.Context) error {
		if err := k.ensureNotExpired(ctx, deadline); err != nil {
			return err
		}
		if err := types.ValidateSwapPath(k.pair, path); err != nil {
			return err
		}
		if err := requireNonNegative(amountIn, amountOutMin); err != nil {
			return err
		}

		stored, err := k.GetStoredReserves(ctx)
		if err != nil {
			return err
		}
		reserveIn, reserveOut := stored.Oriented(path[0] != k.pair.DenomA)

		amountOut, err := types.GetAmountOut(amountIn, reserveIn, reserveOut)
		if err != nil {
			return err
		}
		if amountOut.LT(amountOutMin) {
			return types.ErrInsufficientOutputAmount.Wrapf("%s below minimum %s", amountOut, amountOutMin)
		}

		if err := k.ledger(path[0]).TransferFrom(ctx, k.address, sender, k.address, amountIn); err != nil {
			return err
		}
		if err := k.ledger(path[1]).Transfer(ctx, k.address, recipient, amountOut); err != nil {
			return err
		}
		if _, err := k.Synchronize(ctx); err != nil {
			return err
		}

		res = types.SwapResult{AmountIn: amountIn, AmountOut: amountOut}
		return nil
	})
	if err != nil {
		return types.SwapResult{}, err
	}

	ctx := sdk.UnwrapSDKContext(goCtx)
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSwap,
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyTokenIn, path[0]),
			sdk.NewAttribute(types.AttributeKeyTokenOut, path[1]),
			sdk.NewAttribute(types.AttributeKeyAmountIn, res.AmountIn.String()),
			sdk.NewAttribute(types.AttributeKeyAmountOut, res.AmountOut.String()),
		),
	)
	k.metrics.SwapVolume.WithLabelValues(path[0], "in").Add(toFloat(res.AmountIn))
	k.metrics.SwapVolume.WithLabelValues(path[1], "out").Add(toFloat(res.AmountOut))
	k.Logger(ctx).Info("swap executed",
		"sender", sender.String(),
		"token_in", path[0],
		"token_out", path[1],
		"amount_in", res.AmountIn.String(),
		"amount_out", res.AmountOut.String(),
	)

	return res, nil
}
