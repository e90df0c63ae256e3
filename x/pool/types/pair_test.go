package types_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/x/pool/types"
)

func TestAssetPair(t *testing.T) {
	pair, err := types.NewAssetPair("atoken", "btoken")
	require.NoError(t, err)

	require.True(t, pair.Contains("atoken"))
	require.False(t, pair.Contains("ctoken"))
	require.True(t, pair.Matches("btoken", "atoken"))
	require.False(t, pair.Matches("atoken", "atoken"))

	reversed, err := pair.Orient("btoken", "atoken")
	require.NoError(t, err)
	require.True(t, reversed)

	_, err = pair.Orient("atoken", "ctoken")
	require.ErrorIs(t, err, types.ErrInvalidAssetPair)

	_, err = types.NewAssetPair("atoken", "atoken")
	require.ErrorIs(t, err, types.ErrInvalidAssetPair)
	_, err = types.NewAssetPair("", "btoken")
	require.ErrorIs(t, err, types.ErrInvalidAssetPair)
}

func TestValidateSwapPath(t *testing.T) {
	pair := types.AssetPair{DenomA: "atoken", DenomB: "btoken"}

	require.NoError(t, types.ValidateSwapPath(pair, []string{"btoken", "atoken"}))
	require.ErrorIs(t, types.ValidateSwapPath(pair, nil), types.ErrInvalidPath)
	require.ErrorIs(t, types.ValidateSwapPath(pair, []string{"atoken", "atoken"}), types.ErrInvalidPath)
	require.ErrorIs(t, types.ValidateSwapPath(pair, []string{"ctoken", "atoken"}), types.ErrInvalidInputAsset)
	require.ErrorIs(t, types.ValidateSwapPath(pair, []string{"atoken", "ctoken"}), types.ErrInvalidOutputAsset)
}

func TestShareDenom(t *testing.T) {
	pair := types.AssetPair{DenomA: "atoken", DenomB: "btoken"}
	require.Equal(t, "lp/atoken/btoken", types.ShareDenom(pair))
	require.NoError(t, sdk.ValidateDenom(types.ShareDenom(pair)))
}

func TestMsgValidateBasic(t *testing.T) {
	addr := sdk.AccAddress([]byte("addr________________")).String()
	deadline := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	add := types.MsgAddLiquidity{
		Sender: addr, Recipient: addr, DenomA: "atoken", DenomB: "btoken",
		AmountADesired: math.NewInt(1), AmountBDesired: math.NewInt(1),
		AmountAMin: math.ZeroInt(), AmountBMin: math.ZeroInt(), Deadline: deadline,
	}
	require.NoError(t, add.ValidateBasic())

	bad := add
	bad.AmountBMin = math.NewInt(-1)
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAmount)
	bad = add
	bad.DenomB = "atoken"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAssetPair)
	bad = add
	bad.Recipient = "nope"
	require.ErrorIs(t, bad.ValidateBasic(), types.ErrInvalidAddress)

	remove := types.MsgRemoveLiquidity{
		Sender: addr, Recipient: addr, DenomA: "atoken", DenomB: "btoken",
		Liquidity: math.NewInt(1), AmountAMin: math.ZeroInt(), AmountBMin: math.ZeroInt(),
	}
	require.ErrorIs(t, remove.ValidateBasic(), types.ErrExpired)
	remove.Deadline = deadline
	require.NoError(t, remove.ValidateBasic())

	swap := types.MsgSwapExactTokensForTokens{
		Sender: addr, Recipient: addr, AmountIn: math.NewInt(1), AmountOutMin: math.ZeroInt(),
		Path: []string{"atoken"}, Deadline: deadline,
	}
	require.ErrorIs(t, swap.ValidateBasic(), types.ErrInvalidPath)
	swap.Path = []string{"atoken", "btoken"}
	require.NoError(t, swap.ValidateBasic())

	require.NoError(t, types.MsgSync{Sender: addr}.ValidateBasic())
}

func TestGenesisValidate(t *testing.T) {
	require.NoError(t, types.NewGenesisState(types.AssetPair{DenomA: "atoken", DenomB: "btoken"}).Validate())
	require.ErrorIs(t, types.GenesisState{}.Validate(), types.ErrInvalidGenesis)
}
