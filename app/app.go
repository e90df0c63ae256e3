package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"

	poolkeeper "github.com/paw-chain/cpamm/x/pool/keeper"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokenkeeper "github.com/paw-chain/cpamm/x/token/keeper"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

// ErrAlreadyInitialized is returned by InitChain on a store with committed state.
var ErrAlreadyInitialized = errors.New("state already initialized")

var _ sdk.InvariantRegistry = (*invariantRegistry)(nil)

// App wires the asset ledgers, the share ledger and the pool onto one
// committed multistore. Deliver serializes state transitions; View gives
// readers a branch of the latest working state.
type App struct {
	logger log.Logger
	db     dbm.DB
	cms    storetypes.CommitMultiStore

	// keys to access the substores
	keys map[string]*storetypes.KVStoreKey

	AssetAKeeper tokenkeeper.Keeper
	AssetBKeeper tokenkeeper.Keeper
	ShareKeeper  tokenkeeper.Keeper
	PoolKeeper   poolkeeper.Keeper

	msgServer  pooltypes.MsgServer
	invariants *invariantRegistry
	recorder   *TxRecorder

	mu            sync.RWMutex
	lastBlockTime time.Time
}

// Option configures an App.
type Option func(*App)

// WithTxRecorder records delivered transactions and commits on r.
func WithTxRecorder(r *TxRecorder) Option {
	return func(app *App) { app.recorder = r }
}

// New returns an App trading pair on db, loaded at the latest committed version.
func New(logger log.Logger, db dbm.DB, pair pooltypes.AssetPair, opts ...Option) (*App, error) {
	if err := pair.Validate(); err != nil {
		return nil, err
	}

	keys := map[string]*storetypes.KVStoreKey{
		tokentypes.StoreKey: storetypes.NewKVStoreKey(tokentypes.StoreKey),
		pooltypes.StoreKey:  storetypes.NewKVStoreKey(pooltypes.StoreKey),
	}

	cms := store.NewCommitMultiStore(db, logger, metrics.NewNoOpMetrics())
	for _, key := range keys {
		cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, nil)
	}
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, fmt.Errorf("load latest version: %w", err)
	}

	tokenKey := keys[tokentypes.StoreKey]
	app := &App{
		logger:       logger.With("module", "app"),
		db:           db,
		cms:          cms,
		keys:         keys,
		AssetAKeeper: tokenkeeper.NewKeeper(tokenKey, pair.DenomA),
		AssetBKeeper: tokenkeeper.NewKeeper(tokenKey, pair.DenomB),
		ShareKeeper:  tokenkeeper.NewKeeper(tokenKey, pooltypes.ShareDenom(pair)),
		invariants:   &invariantRegistry{},
	}
	app.PoolKeeper = poolkeeper.NewKeeper(keys[pooltypes.StoreKey], app.AssetAKeeper, app.AssetBKeeper, app.ShareKeeper)
	app.msgServer = poolkeeper.NewMsgServerImpl(app.PoolKeeper)

	for _, k := range []tokenkeeper.Keeper{app.AssetAKeeper, app.AssetBKeeper, app.ShareKeeper} {
		tokenkeeper.RegisterInvariants(app.invariants, k)
	}
	poolkeeper.RegisterInvariants(app.invariants, app.PoolKeeper)

	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}

// Logger returns the application logger.
func (app *App) Logger() log.Logger { return app.logger }

// Pair returns the traded pair.
func (app *App) Pair() pooltypes.AssetPair { return app.PoolKeeper.Pair() }

// MsgServer returns the pool message handler.
func (app *App) MsgServer() pooltypes.MsgServer { return app.msgServer }

// GetKey returns the KVStoreKey for the provided store key.
func (app *App) GetKey(storeKey string) *storetypes.KVStoreKey { return app.keys[storeKey] }

// LastBlockHeight returns the latest committed version.
func (app *App) LastBlockHeight() int64 { return app.cms.LastCommitID().Version }

// Ledger returns the ledger of denom, which must be one of the pair denoms or
// the share denom.
func (app *App) Ledger(denom string) (tokenkeeper.Keeper, error) {
	for _, k := range []tokenkeeper.Keeper{app.AssetAKeeper, app.AssetBKeeper, app.ShareKeeper} {
		if k.Denom() == denom {
			return k, nil
		}
	}
	return tokenkeeper.Keeper{}, tokentypes.ErrInvalidDenom.Wrapf("no ledger for %s", denom)
}

func (app *App) newContext(ms storetypes.MultiStore, blockTime time.Time) sdk.Context {
	header := cmtproto.Header{
		ChainID: Name,
		Height:  app.cms.LastCommitID().Version + 1,
		Time:    blockTime.UTC(),
	}
	return sdk.NewContext(ms, header, false, app.logger).
		WithEventManager(sdk.NewEventManager()).
		WithGasMeter(storetypes.NewInfiniteGasMeter())
}

// InitChain imports gs into an empty store, checks every invariant and
// commits the first version.
func (app *App) InitChain(gs GenesisState, genesisTime time.Time) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if gs.Pool.Pair != app.Pair() {
		return pooltypes.ErrInvalidGenesis.Wrapf("genesis pair %s does not match node pair %s", gs.Pool.Pair, app.Pair())
	}

	_, err := app.Deliver(context.Background(), "init_chain", genesisTime, func(ctx sdk.Context) error {
		if app.LastBlockHeight() > 0 {
			return ErrAlreadyInitialized
		}
		for _, token := range gs.Tokens {
			ledger, err := app.Ledger(token.Denom)
			if err != nil {
				return err
			}
			if err := ledger.InitGenesis(ctx, token); err != nil {
				return fmt.Errorf("init %s ledger: %w", token.Denom, err)
			}
		}
		return app.PoolKeeper.InitGenesis(ctx, gs.Pool)
	})
	return err
}

// ExportGenesis exports the latest working state.
func (app *App) ExportGenesis() (GenesisState, error) {
	var gs GenesisState
	err := app.View(time.Now(), func(ctx sdk.Context) error {
		gs.Pool = *app.PoolKeeper.ExportGenesis(ctx)
		for _, k := range []tokenkeeper.Keeper{app.AssetAKeeper, app.AssetBKeeper, app.ShareKeeper} {
			token, err := k.ExportGenesis(ctx)
			if err != nil {
				return err
			}
			gs.Tokens = append(gs.Tokens, *token)
		}
		return nil
	})
	return gs, err
}

// Deliver runs fn as one state transition at blockTime. Its writes, and the
// events it emitted, are committed as a new version only if fn succeeds and
// every registered invariant still holds afterwards.
func (app *App) Deliver(goCtx context.Context, txType string, blockTime time.Time, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	app.mu.Lock()
	defer app.mu.Unlock()

	start := time.Now()
	events, err := app.deliver(blockTime, fn)
	if app.recorder != nil {
		app.recorder.RecordTransaction(goCtx, txType, time.Since(start), err == nil)
		if err == nil {
			app.recorder.RecordBlockHeight(goCtx, app.LastBlockHeight())
		}
	}
	if err != nil {
		app.logger.Debug("transaction rejected", "type", txType, "error", err)
		return nil, err
	}
	return events, nil
}

func (app *App) deliver(blockTime time.Time, fn func(ctx sdk.Context) error) (sdk.Events, error) {
	if blockTime.Before(app.lastBlockTime) {
		blockTime = app.lastBlockTime
	}

	ctx := app.newContext(app.cms, blockTime)
	cacheCtx, writeCache := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return nil, err
	}
	if err := app.invariants.assert(cacheCtx); err != nil {
		return nil, err
	}
	writeCache()

	commitID := app.cms.Commit()
	app.lastBlockTime = blockTime
	app.PoolKeeper.RefreshMetrics(app.newContext(app.cms, blockTime))
	app.logger.Info("committed state", "height", commitID.Version, "hash", fmt.Sprintf("%X", commitID.Hash))
	return ctx.EventManager().Events(), nil
}

// View runs fn against a read-only branch of the latest working state.
func (app *App) View(blockTime time.Time, fn func(ctx sdk.Context) error) error {
	app.mu.RLock()
	defer app.mu.RUnlock()

	return fn(app.newContext(app.cms.CacheMultiStore(), blockTime))
}

// CheckInvariants runs every registered invariant against the latest state.
func (app *App) CheckInvariants() error {
	return app.View(time.Now(), app.invariants.assert)
}

// InvariantRoutes returns the names of the registered invariants.
func (app *App) InvariantRoutes() []string {
	return app.invariants.names()
}

// Close closes the underlying database.
func (app *App) Close() error {
	return app.db.Close()
}

type invariantRoute struct {
	module string
	route  string
	check  sdk.Invariant
}

// invariantRegistry collects module invariants and asserts them after every
// state transition.
type invariantRegistry struct {
	routes []invariantRoute
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, check: invar})
}

func (r *invariantRegistry) assert(ctx sdk.Context) error {
	for _, ir := range r.routes {
		if msg, broken := ir.check(ctx); broken {
			return errorsmod.Wrapf(pooltypes.ErrInvariantViolation, "%s/%s: %s", ir.module, ir.route, msg)
		}
	}
	return nil
}

func (r *invariantRegistry) names() []string {
	names := make([]string, 0, len(r.routes))
	for _, ir := range r.routes {
		names = append(names, ir.module+"/"+ir.route)
	}
	sort.Strings(names)
	return names
}

// PoolStatus is the pool state together with the balances its custody
// account actually holds.
type PoolStatus struct {
	Info     pooltypes.PoolInfo `json:"info"`
	BalanceA math.Int           `json:"balance_a"`
	BalanceB math.Int           `json:"balance_b"`
}

// PoolStatus reads the latest pool state.
func (app *App) PoolStatus() (PoolStatus, error) {
	var status PoolStatus
	err := app.View(time.Now(), func(ctx sdk.Context) error {
		info, err := app.PoolKeeper.PoolInfo(ctx)
		if err != nil {
			return err
		}
		status = PoolStatus{
			Info:     info,
			BalanceA: app.AssetAKeeper.BalanceOf(ctx, info.Address),
			BalanceB: app.AssetBKeeper.BalanceOf(ctx, info.Address),
		}
		return nil
	})
	return status, err
}
