package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/x/pool/types"
)

func TestGetAmountOut(t *testing.T) {
	tests := []struct {
		name       string
		in         int64
		reserveIn  int64
		reserveOut int64
		want       int64
		err        error
	}{
		{"symmetric pool", 10, 100, 100, 9, nil},
		{"skewed pool", 50, 200, 100, 20, nil},
		{"dust rounds to zero", 1, 1_000, 100, 0, nil},
		{"zero input", 0, 100, 100, 0, types.ErrZeroInput},
		{"negative input", -1, 100, 100, 0, types.ErrInvalidAmount},
		{"empty input side", 10, 0, 100, 0, types.ErrNoLiquidity},
		{"empty output side", 10, 100, 0, 0, types.ErrNoLiquidity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := types.GetAmountOut(math.NewInt(tc.in), math.NewInt(tc.reserveIn), math.NewInt(tc.reserveOut))
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, out.Int64())
		})
	}
}

func TestGetAmountOut_Overflow(t *testing.T) {
	huge := math.NewIntWithDecimal(1, 76)
	_, err := types.GetAmountOut(huge, math.NewInt(1), huge)
	require.ErrorIs(t, err, types.ErrOverflow)
}

func TestQuote(t *testing.T) {
	out, err := types.Quote(math.NewInt(7), math.NewInt(3), math.NewInt(10))
	require.NoError(t, err)
	// floor(70/3)
	require.Equal(t, int64(23), out.Int64())

	_, err = types.Quote(math.NewInt(7), math.NewInt(3), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}

func TestSpotPrice(t *testing.T) {
	price, err := types.SpotPrice(math.NewInt(3), math.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, "333333333333333333", price.String())

	_, err = types.SpotPrice(math.ZeroInt(), math.NewInt(1))
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}

func TestMulDiv(t *testing.T) {
	out, err := types.MulDiv(math.NewInt(10), math.NewInt(10), math.NewInt(3))
	require.NoError(t, err)
	require.Equal(t, int64(33), out.Int64())

	_, err = types.MulDiv(math.NewInt(1), math.NewInt(1), math.ZeroInt())
	require.ErrorIs(t, err, types.ErrNoLiquidity)
}
