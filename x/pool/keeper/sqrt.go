package keeper

import (
	"cosmossdk.io/math"
)

var three = math.NewInt(3)

// IntSqrt returns floor(sqrt(y)) using the Babylonian method seeded at y/2+1.
// The genesis share count depends on this exact iteration.
func IntSqrt(y math.Int) math.Int {
	if y.IsNil() || !y.IsPositive() {
		return math.ZeroInt()
	}
	if y.LTE(three) {
		return math.OneInt()
	}

	z := y
	x := y.QuoRaw(2).AddRaw(1)
	for x.LT(z) {
		z = x
		x = y.Quo(x).Add(x).QuoRaw(2)
	}
	return z
}
