package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/zeebo/blake3"
)

const (
	// ModuleName defines the module name
	ModuleName = "pool"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// ShareDenomPrefix prefixes the denom of the pool's ownership shares
	ShareDenomPrefix = "lp"
)

// Store keys
var (
	PairKey     = []byte{0x01} // the immutable asset pair
	ReserveAKey = []byte{0x02} // synchronized reserve of DenomA
	ReserveBKey = []byte{0x03} // synchronized reserve of DenomB
)

// PoolAddress derives the custody account of a pair. The address depends only
// on the pair, so a restarted node finds the same balances.
func PoolAddress(pair AssetPair) sdk.AccAddress {
	h := blake3.New()
	_, _ = h.Write([]byte(ModuleName))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(pair.DenomA))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(pair.DenomB))
	sum := h.Sum(nil)
	return sdk.AccAddress(sum[:20])
}

// ShareDenom returns the denom of the ownership shares of a pair.
func ShareDenom(pair AssetPair) string {
	return fmt.Sprintf("%s/%s/%s", ShareDenomPrefix, pair.DenomA, pair.DenomB)
}
