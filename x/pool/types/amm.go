package types

import (
	"cosmossdk.io/math"
)

// PriceScale is the fixed-point scale of spot prices (1e18).
var PriceScale = math.NewIntWithDecimal(1, 18)

// MulDiv returns a * b / c truncated toward zero. Products beyond 256 bits fail
// with ErrOverflow; c must be non-zero.
func MulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.ZeroInt(), ErrNoLiquidity.Wrap("division by zero")
	}
	product, err := a.SafeMul(b)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s * %s: %v", a, b, err)
	}
	return product.Quo(c), nil
}

// GetAmountOut computes the zero-fee constant-product output of a trade:
//
//	amountOut = amountIn * reserveOut / (reserveIn + amountIn)
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	if amountIn.IsNil() || amountIn.IsNegative() {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("amount in must be non-negative, got %s", amountIn)
	}
	if amountIn.IsZero() {
		return math.ZeroInt(), ErrZeroInput
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), ErrNoLiquidity.Wrapf("reserves %s/%s", reserveIn, reserveOut)
	}

	denominator, err := reserveIn.SafeAdd(amountIn)
	if err != nil {
		return math.ZeroInt(), ErrOverflow.Wrapf("%s + %s: %v", reserveIn, amountIn, err)
	}
	return MulDiv(amountIn, reserveOut, denominator)
}

// Quote returns the amount of B equivalent to amountA at the reserve ratio.
func Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	if amountA.IsNil() || amountA.IsNegative() {
		return math.ZeroInt(), ErrInvalidAmount.Wrapf("amount must be non-negative, got %s", amountA)
	}
	if reserveA.IsNil() || reserveB.IsNil() || !reserveA.IsPositive() || !reserveB.IsPositive() {
		return math.ZeroInt(), ErrNoLiquidity.Wrapf("reserves %s/%s", reserveA, reserveB)
	}
	return MulDiv(amountA, reserveB, reserveA)
}

// SpotPrice returns reserveB * 1e18 / reserveA.
func SpotPrice(reserveA, reserveB math.Int) (math.Int, error) {
	if reserveA.IsNil() || reserveB.IsNil() || reserveA.IsZero() || reserveB.IsZero() {
		return math.ZeroInt(), ErrNoLiquidity.Wrapf("reserves %s/%s", reserveA, reserveB)
	}
	return MulDiv(reserveB, PriceScale, reserveA)
}
