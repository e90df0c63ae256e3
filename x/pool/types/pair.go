package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetPair is the immutable pair of denoms a pool trades.
type AssetPair struct {
	DenomA string `json:"denom_a"`
	DenomB string `json:"denom_b"`
}

// NewAssetPair returns a validated pair.
func NewAssetPair(denomA, denomB string) (AssetPair, error) {
	p := AssetPair{DenomA: denomA, DenomB: denomB}
	if err := p.Validate(); err != nil {
		return AssetPair{}, err
	}
	return p, nil
}

// Validate checks both denoms are well formed and distinct.
func (p AssetPair) Validate() error {
	if err := sdk.ValidateDenom(p.DenomA); err != nil {
		return ErrInvalidAssetPair.Wrapf("denom a: %v", err)
	}
	if err := sdk.ValidateDenom(p.DenomB); err != nil {
		return ErrInvalidAssetPair.Wrapf("denom b: %v", err)
	}
	if p.DenomA == p.DenomB {
		return ErrInvalidAssetPair.Wrapf("identical denoms %s", p.DenomA)
	}
	return nil
}

// Contains reports whether denom is one of the pair.
func (p AssetPair) Contains(denom string) bool {
	return denom == p.DenomA || denom == p.DenomB
}

// Matches reports whether x and y name this pair in either order.
func (p AssetPair) Matches(x, y string) bool {
	return (x == p.DenomA && y == p.DenomB) || (x == p.DenomB && y == p.DenomA)
}

// Orient checks x and y name the pair and reports whether they are given in
// reverse order.
func (p AssetPair) Orient(x, y string) (reversed bool, err error) {
	if !p.Matches(x, y) {
		return false, ErrInvalidAssetPair.Wrapf("expected %s, got %s/%s", p, x, y)
	}
	return x == p.DenomB, nil
}

func (p AssetPair) String() string {
	return fmt.Sprintf("%s/%s", p.DenomA, p.DenomB)
}
