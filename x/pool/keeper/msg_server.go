package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// msgServer checks the deadline before any other field of a message, so an
// expired message fails with ErrExpired whatever else is wrong with it.
type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the pool MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// AddLiquidity handles a deposit into the pool
func (ms msgServer) AddLiquidity(goCtx context.Context, msg *types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	if err := ms.ensureNotExpired(sdk.UnwrapSDKContext(goCtx), msg.Deadline); err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("AddLiquidity: validate: %w", err)
	}
	sender, recipient, err := parseParticipants(msg.Sender, msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	res, err := ms.Keeper.AddLiquidity(goCtx, sender, msg.DenomA, msg.DenomB,
		msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin, recipient, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("AddLiquidity: %w", err)
	}

	return &types.MsgAddLiquidityResponse{
		AmountA:   res.AmountA,
		AmountB:   res.AmountB,
		Liquidity: res.Liquidity,
	}, nil
}

// RemoveLiquidity handles a redemption of shares
func (ms msgServer) RemoveLiquidity(goCtx context.Context, msg *types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	if err := ms.ensureNotExpired(sdk.UnwrapSDKContext(goCtx), msg.Deadline); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: validate: %w", err)
	}
	sender, recipient, err := parseParticipants(msg.Sender, msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	res, err := ms.Keeper.RemoveLiquidity(goCtx, sender, msg.DenomA, msg.DenomB,
		msg.Liquidity, msg.AmountAMin, msg.AmountBMin, recipient, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("RemoveLiquidity: %w", err)
	}

	return &types.MsgRemoveLiquidityResponse{
		AmountA: res.AmountA,
		AmountB: res.AmountB,
	}, nil
}

// SwapExactTokensForTokens handles an exact-input swap
func (ms msgServer) SwapExactTokensForTokens(goCtx context.Context, msg *types.MsgSwapExactTokensForTokens) (*types.MsgSwapExactTokensForTokensResponse, error) {
	if err := ms.ensureNotExpired(sdk.UnwrapSDKContext(goCtx), msg.Deadline); err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: %w", err)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: validate: %w", err)
	}
	sender, recipient, err := parseParticipants(msg.Sender, msg.Recipient)
	if err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: %w", err)
	}

	res, err := ms.Keeper.SwapExactTokensForTokens(goCtx, sender, msg.AmountIn, msg.AmountOutMin, msg.Path, recipient, msg.Deadline)
	if err != nil {
		return nil, fmt.Errorf("SwapExactTokensForTokens: %w", err)
	}

	return &types.MsgSwapExactTokensForTokensResponse{
		AmountIn:  res.AmountIn,
		AmountOut: res.AmountOut,
	}, nil
}

// Sync handles a reserve resynchronization
func (ms msgServer) Sync(goCtx context.Context, msg *types.MsgSync) (*types.MsgSyncResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("Sync: validate: %w", err)
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, fmt.Errorf("Sync: invalid sender address: %w", err)
	}

	reserves, err := ms.Keeper.Sync(goCtx, sender)
	if err != nil {
		return nil, fmt.Errorf("Sync: %w", err)
	}
	return &types.MsgSyncResponse{Reserves: reserves}, nil
}

func parseParticipants(senderStr, recipientStr string) (sdk.AccAddress, sdk.AccAddress, error) {
	sender, err := sdk.AccAddressFromBech32(senderStr)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("sender: %v", err)
	}
	recipient, err := sdk.AccAddressFromBech32(recipientStr)
	if err != nil {
		return nil, nil, types.ErrInvalidAddress.Wrapf("recipient: %v", err)
	}
	return sender, recipient, nil
}
