package keeper

import (
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/cpamm/x/pool/types"
)

// ensureNotExpired fails with ErrExpired once the block time is past deadline.
// It reads no state and must run before anything else in a mutating operation.
func (k Keeper) ensureNotExpired(ctx sdk.Context, deadline time.Time) error {
	now := ctx.BlockTime()
	if now.After(deadline) {
		return types.ErrExpired.Wrapf("deadline %s passed at %s",
			deadline.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339))
	}
	return nil
}
