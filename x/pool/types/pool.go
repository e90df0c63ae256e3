package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Reserves are the synchronized custodied balances, in pair order.
type Reserves struct {
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

// ZeroReserves returns the reserves of an empty pool.
func ZeroReserves() Reserves {
	return Reserves{ReserveA: math.ZeroInt(), ReserveB: math.ZeroInt()}
}

// IsEmpty reports whether both reserves are zero.
func (r Reserves) IsEmpty() bool {
	return r.ReserveA.IsZero() && r.ReserveB.IsZero()
}

// Oriented returns the reserves in the caller's order.
func (r Reserves) Oriented(reversed bool) (math.Int, math.Int) {
	if reversed {
		return r.ReserveB, r.ReserveA
	}
	return r.ReserveA, r.ReserveB
}

func (r Reserves) String() string {
	return fmt.Sprintf("%s/%s", r.ReserveA, r.ReserveB)
}

// PoolInfo summarizes the pool for queries.
type PoolInfo struct {
	Pair        AssetPair      `json:"pair"`
	Address     sdk.AccAddress `json:"address"`
	ShareDenom  string         `json:"share_denom"`
	Reserves    Reserves       `json:"reserves"`
	TotalShares math.Int       `json:"total_shares"`
}

// AddLiquidityResult reports the accepted deposit in the caller's order.
type AddLiquidityResult struct {
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
	Liquidity math.Int `json:"liquidity"`
}

// RemoveLiquidityResult reports the redeemed amounts in the caller's order.
type RemoveLiquidityResult struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// SwapResult reports both legs of a swap.
type SwapResult struct {
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
}

// ValidateSwapPath checks a single-hop path against the pair.
func ValidateSwapPath(pair AssetPair, path []string) error {
	if len(path) != 2 {
		return ErrInvalidPath.Wrapf("path must have 2 elements, got %d", len(path))
	}
	if path[0] == path[1] {
		return ErrInvalidPath.Wrapf("identical path elements %s", path[0])
	}
	if !pair.Contains(path[0]) {
		return ErrInvalidInputAsset.Wrapf("%s is not in pair %s", path[0], pair)
	}
	if !pair.Contains(path[1]) {
		return ErrInvalidOutputAsset.Wrapf("%s is not in pair %s", path[1], pair)
	}
	return nil
}
