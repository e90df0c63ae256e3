package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	poolkeeper "github.com/paw-chain/cpamm/x/pool/keeper"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokenkeeper "github.com/paw-chain/cpamm/x/token/keeper"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

const (
	DenomA = "atoken"
	DenomB = "btoken"
)

// GenesisTime is the block time of every fixture context.
var GenesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// ErrInjected is returned by a FailingLedger when a failure is switched on.
var ErrInjected = errors.New("injected ledger failure")

// PoolFixture bundles a pool keeper with the ledgers it runs on.
type PoolFixture struct {
	Ctx    sdk.Context
	Keeper poolkeeper.Keeper
	AssetA tokenkeeper.Keeper
	AssetB tokenkeeper.Keeper
	Shares tokenkeeper.Keeper

	// FailingB wraps AssetB as seen by the pool
	FailingB *FailingLedger
}

// TokenKeeper creates a single-denom ledger on a fresh in-memory store.
func TokenKeeper(t require.TestingT, denom string) (tokenkeeper.Keeper, sdk.Context) {
	storeKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	ctx := newContext(t, storeKey)
	return tokenkeeper.NewKeeper(storeKey, denom), ctx
}

// PoolKeeper creates an initialized pool trading DenomA against DenomB. Both
// ledgers and the share ledger live in one multistore so a pool operation
// commits or rolls back all of them together.
func PoolKeeper(t require.TestingT) *PoolFixture {
	tokenKey := storetypes.NewKVStoreKey(tokentypes.StoreKey)
	poolKey := storetypes.NewKVStoreKey(pooltypes.StoreKey)
	ctx := newContext(t, tokenKey, poolKey)

	pair := pooltypes.AssetPair{DenomA: DenomA, DenomB: DenomB}
	assetA := tokenkeeper.NewKeeper(tokenKey, DenomA)
	assetB := tokenkeeper.NewKeeper(tokenKey, DenomB)
	shares := tokenkeeper.NewKeeper(tokenKey, pooltypes.ShareDenom(pair))
	failingB := &FailingLedger{AssetLedger: assetB}

	k := poolkeeper.NewKeeper(poolKey, assetA, failingB, shares)
	require.NoError(t, k.InitGenesis(ctx, *pooltypes.NewGenesisState(pair)))

	return &PoolFixture{
		Ctx:      ctx,
		Keeper:   k,
		AssetA:   assetA,
		AssetB:   assetB,
		Shares:   shares,
		FailingB: failingB,
	}
}

func newContext(t require.TestingT, keys ...storetypes.StoreKey) sdk.Context {
	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	for _, key := range keys {
		stateStore.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	}
	require.NoError(t, stateStore.LoadLatestVersion())

	return sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())
}

// Deadline returns a deadline one hour after the fixture block time.
func (f *PoolFixture) Deadline() time.Time {
	return f.Ctx.BlockTime().Add(time.Hour)
}

// Ledger returns the fixture ledger of denom.
func (f *PoolFixture) Ledger(denom string) tokenkeeper.Keeper {
	switch denom {
	case DenomA:
		return f.AssetA
	case DenomB:
		return f.AssetB
	default:
		return f.Shares
	}
}

// Fund mints amount of denom to addr and raises the pool's allowance by the same amount.
func (f *PoolFixture) Fund(t require.TestingT, denom string, addr sdk.AccAddress, amount math.Int) {
	ledger := f.Ledger(denom)
	require.NoError(t, ledger.Mint(f.Ctx, addr, amount))

	pool := f.Keeper.Address()
	allowance := ledger.Allowance(f.Ctx, addr, pool)
	require.NoError(t, ledger.Approve(f.Ctx, addr, pool, allowance.Add(amount)))
}

// Provide funds addr and deposits the amounts as liquidity.
func (f *PoolFixture) Provide(t require.TestingT, addr sdk.AccAddress, amountA, amountB math.Int) pooltypes.AddLiquidityResult {
	f.Fund(t, DenomA, addr, amountA)
	f.Fund(t, DenomB, addr, amountB)

	res, err := f.Keeper.AddLiquidity(f.Ctx, addr, DenomA, DenomB, amountA, amountB,
		math.ZeroInt(), math.ZeroInt(), addr, f.Deadline())
	require.NoError(t, err)
	return res
}

// Snapshot captures every balance a pool operation can touch, rendered as
// strings so snapshots compare by value.
type Snapshot struct {
	Reserves    string
	TotalShares string
	Balances    map[string]string
}

// Snapshot records reserves, share supply and the balances of addrs in every ledger.
func (f *PoolFixture) Snapshot(t require.TestingT, addrs ...sdk.AccAddress) Snapshot {
	reserves, err := f.Keeper.GetStoredReserves(f.Ctx)
	require.NoError(t, err)

	s := Snapshot{
		Reserves:    reserves.String(),
		TotalShares: f.Shares.TotalSupply(f.Ctx).String(),
		Balances:    make(map[string]string),
	}
	addrs = append(addrs, f.Keeper.Address())
	for _, ledger := range []tokenkeeper.Keeper{f.AssetA, f.AssetB, f.Shares} {
		for _, addr := range addrs {
			s.Balances[ledger.Denom()+"/"+addr.String()] = ledger.BalanceOf(f.Ctx, addr).String()
			s.Balances[ledger.Denom()+"/allowance/"+addr.String()] = ledger.Allowance(f.Ctx, addr, f.Keeper.Address()).String()
		}
	}
	return s
}

// RequireReservesSynced asserts the stored reserves equal the custodied balances.
func (f *PoolFixture) RequireReservesSynced(t require.TestingT) {
	reserves, err := f.Keeper.GetStoredReserves(f.Ctx)
	require.NoError(t, err)
	require.Equal(t, f.AssetA.BalanceOf(f.Ctx, f.Keeper.Address()).String(), reserves.ReserveA.String())
	require.Equal(t, f.AssetB.BalanceOf(f.Ctx, f.Keeper.Address()).String(), reserves.ReserveB.String())
}

// TestAddr returns a deterministic 20-byte address derived from name.
func TestAddr(name string) sdk.AccAddress {
	bz := make([]byte, 20)
	copy(bz, name)
	return sdk.AccAddress(bz)
}

// FailingLedger wraps an asset ledger and fails chosen calls after the real
// ledger has already applied earlier ones, for exercising rollback.
type FailingLedger struct {
	pooltypes.AssetLedger

	FailTransfer     bool
	FailTransferFrom bool

	// Observe, when set, sees the context of every transfer
	Observe func(ctx context.Context)
}

var _ pooltypes.AssetLedger = (*FailingLedger)(nil)

func (l *FailingLedger) Transfer(ctx context.Context, sender, recipient sdk.AccAddress, amount math.Int) error {
	if l.Observe != nil {
		l.Observe(ctx)
	}
	if l.FailTransfer {
		return ErrInjected
	}
	return l.AssetLedger.Transfer(ctx, sender, recipient, amount)
}

func (l *FailingLedger) TransferFrom(ctx context.Context, spender, owner, recipient sdk.AccAddress, amount math.Int) error {
	if l.Observe != nil {
		l.Observe(ctx)
	}
	if l.FailTransferFrom {
		return ErrInjected
	}
	return l.AssetLedger.TransferFrom(ctx, spender, owner, recipient, amount)
}
