package keeper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/cpamm/x/pool/types"
)

var tracer = otel.Tracer("github.com/paw-chain/cpamm/x/pool")

// Keeper of a single constant-product pool. Copies of a Keeper share the same
// lock, so any copy is a handle to the same pool.
type Keeper struct {
	storeKey storetypes.StoreKey
	pair     types.AssetPair
	address  sdk.AccAddress
	assetA   types.AssetLedger
	assetB   types.AssetLedger
	shares   types.ShareLedger
	metrics  *PoolMetrics

	// mu serializes mutating operations; readers take the read lock so they
	// only ever observe committed state
	mu *sync.RWMutex
}

// NewKeeper creates a pool keeper trading assetA against assetB. The pair is
// fixed for the lifetime of the keeper.
func NewKeeper(
	key storetypes.StoreKey,
	assetA types.AssetLedger,
	assetB types.AssetLedger,
	shares types.ShareLedger,
) Keeper {
	pair, err := types.NewAssetPair(assetA.Denom(), assetB.Denom())
	if err != nil {
		panic(fmt.Errorf("NewKeeper: %w", err))
	}
	if shares.Denom() == pair.DenomA || shares.Denom() == pair.DenomB {
		panic(fmt.Errorf("NewKeeper: share denom %s collides with pair %s", shares.Denom(), pair))
	}

	return Keeper{
		storeKey: key,
		pair:     pair,
		address:  types.PoolAddress(pair),
		assetA:   assetA,
		assetB:   assetB,
		shares:   shares,
		metrics:  NewPoolMetrics(),
		mu:       &sync.RWMutex{},
	}
}

// Pair returns the immutable asset pair.
func (k Keeper) Pair() types.AssetPair {
	return k.pair
}

// Address returns the custody account of the pool.
func (k Keeper) Address() sdk.AccAddress {
	return k.address
}

// ShareDenom returns the denom of the pool's ownership shares.
func (k Keeper) ShareDenom() string {
	return k.shares.Denom()
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName, "pair", k.pair.String())
}

// getStore returns the KVStore for the pool module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// orient returns the ledgers in the caller's order after checking that the
// denoms name the pair.
func (k Keeper) orient(denomA, denomB string) (types.AssetLedger, types.AssetLedger, bool, error) {
	reversed, err := k.pair.Orient(denomA, denomB)
	if err != nil {
		return nil, nil, false, err
	}
	if reversed {
		return k.assetB, k.assetA, true, nil
	}
	return k.assetA, k.assetB, false, nil
}

// ledger returns the custodied asset with the given denom.
func (k Keeper) ledger(denom string) types.AssetLedger {
	if denom == k.pair.DenomA {
		return k.assetA
	}
	return k.assetB
}

// runAtomic executes fn under the pool write lock inside a branched context.
// The branch is committed only when fn succeeds, so a failure at any step
// leaves pool, share and asset state untouched. fn runs under the operation
// span, so spans started by the ledgers become its children.
func (k Keeper) runAtomic(goCtx context.Context, op string, fn func(ctx sdk.Context) error) (err error) {
	spanCtx, span := tracer.Start(goCtx, "pool."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("pool.pair", k.pair.String())),
	)
	start := time.Now()

	k.mu.Lock()
	defer func() {
		k.mu.Unlock()
		k.metrics.recordOperation(op, start, err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, writeCache := ctx.WithContext(spanCtx).CacheContext()
	if err = fn(cacheCtx); err != nil {
		k.Logger(ctx).Debug("pool operation rejected", "operation", op, "error", err)
		return err
	}
	writeCache()
	return nil
}
