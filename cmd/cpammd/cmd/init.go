package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
)

const (
	flagOverwrite = "overwrite"
	flagDenomA    = "denom-a"
	flagDenomB    = "denom-b"
)

// InitCmd returns a command that writes the node configuration and an empty
// genesis for the configured pair.
func InitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the node configuration and genesis files",
		Long: `Write <home>/config/cpamm.toml and a genesis with empty ledgers for both
assets and the pool shares.

Example:
  cpammd init --denom-a uatom --denom-b uosmo --home ~/.cpamm
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home := homeDir(cmd)
			genFile := app.GenesisPath(home)

			overwrite, _ := cmd.Flags().GetBool(flagOverwrite)
			if !overwrite && fileExists(genFile) {
				return fmt.Errorf("genesis.json file already exists: %v", genFile)
			}

			cfg := app.DefaultConfig(home)
			cfg.DenomA, _ = cmd.Flags().GetString(flagDenomA)
			cfg.DenomB, _ = cmd.Flags().GetString(flagDenomB)
			if err := cfg.Validate(); err != nil {
				return err
			}
			pair, err := cfg.Pair()
			if err != nil {
				return err
			}

			if err := app.WriteConfigFile(cfg); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			if err := app.WriteGenesisFile(genFile, app.NewDefaultGenesisState(pair)); err != nil {
				return fmt.Errorf("failed to write genesis: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized pool %s in %s\n", pair, home)
			return nil
		},
	}

	def := app.DefaultConfig("")
	cmd.Flags().Bool(flagOverwrite, false, "overwrite the genesis.json file")
	cmd.Flags().String(flagDenomA, def.DenomA, "first asset of the pool")
	cmd.Flags().String(flagDenomB, def.DenomB, "second asset of the pool")

	return cmd
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
