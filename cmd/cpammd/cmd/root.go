package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/crypto/keyring"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
	poolcli "github.com/paw-chain/cpamm/x/pool/client/cli"
)

const flagLogLevel = "log-level"

// NewRootCmd creates a new root command for cpammd. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	// Ensure SDK bech32 prefixes are configured prior to CLI usage.
	app.SetConfig()

	rootCmd := &cobra.Command{
		Use:   "cpammd",
		Short: "Constant-product pool daemon",
		Long: `cpammd runs a single constant-product liquidity pool over two fungible
token ledgers, with a share ledger for liquidity providers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().String(flags.FlagHome, app.DefaultNodeHome, "directory for config and data")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level (debug|info|warn|error), overrides log.level")
	rootCmd.PersistentFlags().String(flags.FlagKeyringBackend, keyring.BackendOS, "Select keyring backend (os|file|test)")

	env := poolcli.Env{
		OpenNode:       openNode,
		ResolveAddress: resolveAddress,
	}

	rootCmd.AddCommand(
		InitCmd(),
		AddGenesisBalanceCmd(),
		StartCmd(),
		ExportCmd(),
		KeysCmd(),
		poolcli.GetTxCmd(env),
		poolcli.GetQueryCmd(env),
	)

	return rootCmd
}

func homeDir(cmd *cobra.Command) string {
	home, _ := cmd.Flags().GetString(flags.FlagHome)
	return home
}

// loadConfig resolves the node configuration of the --home directory.
func loadConfig(cmd *cobra.Command) (app.Config, error) {
	home := homeDir(cmd)
	v := app.NewViper(home)
	if f := cmd.Flags().Lookup(flagLogLevel); f != nil && f.Changed {
		v.Set("log.level", f.Value.String())
	}
	return app.LoadConfig(v, home)
}

func newLogger(w io.Writer, level string) (log.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewLogger(w, log.LevelOption(lvl)), nil
}

// openDB opens the state database of cfg.
func openDB(cfg app.Config) (dbm.DB, error) {
	if err := os.MkdirAll(app.DataPath(cfg.Home), 0o750); err != nil {
		return nil, err
	}
	db, err := dbm.NewDB(app.Name, dbm.BackendType(cfg.DBBackend), app.DataPath(cfg.Home))
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBBackend, err)
	}
	return db, nil
}

// openNode opens the node of the --home directory for a single command. The
// database lock is held until the node is closed, so it fails while start
// is running against the same home.
func openNode(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return newNode(cfg, logger)
}

// newNode opens the database of cfg and imports genesis.json if nothing was
// committed yet. The stored pair must match the configured one.
func newNode(cfg app.Config, logger log.Logger, opts ...app.Option) (*app.App, error) {
	node, err := loadNode(cfg, logger, opts...)
	if err != nil {
		return nil, err
	}

	if node.LastBlockHeight() == 0 {
		err = importGenesis(node, cfg)
	} else {
		err = node.View(time.Now(), func(ctx sdk.Context) error {
			return node.PoolKeeper.VerifyStoredPair(ctx)
		})
	}
	if err != nil {
		_ = node.Close()
		return nil, err
	}
	return node, nil
}

func importGenesis(node *app.App, cfg app.Config) error {
	gs, err := app.ReadGenesisFile(app.GenesisPath(cfg.Home))
	if err != nil {
		return fmt.Errorf("load genesis: %w", err)
	}
	if err := node.InitChain(gs, time.Now()); err != nil {
		return fmt.Errorf("init chain: %w", err)
	}
	node.Logger().Info("imported genesis", "pair", node.Pair().String())
	return nil
}

func loadNode(cfg app.Config, logger log.Logger, opts ...app.Option) (*app.App, error) {
	pair, err := cfg.Pair()
	if err != nil {
		return nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	node, err := app.New(logger, db, pair, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return node, nil
}

// resolveAddress accepts a bech32 address or the name of a keyring key.
func resolveAddress(cmd *cobra.Command, nameOrAddress string) (sdk.AccAddress, error) {
	if addr, err := sdk.AccAddressFromBech32(nameOrAddress); err == nil {
		return addr, nil
	}

	kr, err := openKeyring(cmd)
	if err != nil {
		return nil, err
	}
	record, err := kr.Key(nameOrAddress)
	if err != nil {
		return nil, fmt.Errorf("%q is neither an address nor a known key: %w", nameOrAddress, err)
	}
	return record.GetAddress()
}
