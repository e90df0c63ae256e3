package cmd

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"

	"github.com/paw-chain/cpamm/app"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

const flagApprovePool = "approve-pool"

// AddGenesisBalanceCmd returns a command that credits an account in genesis.
func AddGenesisBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-genesis-balance [address_or_key_name] [coin]",
		Short: "Add a balance of one of the pool assets to genesis.json",
		Long: `Credit an account with a balance of one of the pool assets. The amount is
added to any balance already present. With --approve-pool the account also
grants the pool an allowance of the same amount.

Example:
  cpammd add-genesis-balance alice 1000000uatom --approve-pool`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := resolveAddress(cmd, args[0])
			if err != nil {
				return err
			}
			coin, err := sdk.ParseCoinNormalized(args[1])
			if err != nil {
				return fmt.Errorf("failed to parse coin: %w", err)
			}

			genFile := app.GenesisPath(homeDir(cmd))
			gs, err := app.ReadGenesisFile(genFile)
			if err != nil {
				return err
			}
			if !gs.Pool.Pair.Contains(coin.Denom) {
				return pooltypes.ErrInvalidAssetPair.Wrapf("%s is not an asset of %s", coin.Denom, gs.Pool.Pair)
			}
			token, err := gs.Token(coin.Denom)
			if err != nil {
				return err
			}

			credit(token, addr, coin)
			if approve, _ := cmd.Flags().GetBool(flagApprovePool); approve {
				token.Allowances = append(token.Allowances, tokentypes.Allowance{
					Owner:   addr.String(),
					Spender: pooltypes.PoolAddress(gs.Pool.Pair).String(),
					Amount:  coin.Amount,
				})
			}

			return app.WriteGenesisFile(genFile, gs)
		},
	}

	cmd.Flags().Bool(flagApprovePool, false, "also approve the pool to spend the credited amount")
	return cmd
}

func credit(token *tokentypes.GenesisState, addr sdk.AccAddress, coin sdk.Coin) {
	for i, b := range token.Balances {
		if b.Address == addr.String() {
			token.Balances[i].Amount = b.Amount.Add(coin.Amount)
			return
		}
	}
	token.Balances = append(token.Balances, tokentypes.Balance{Address: addr.String(), Amount: coin.Amount})
}

// ExportCmd returns a command that prints the latest state as a genesis document.
func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Export the latest state as genesis JSON",
		Long: `Export the ledgers and the pool pair at the latest committed height. The
output can be used as the genesis of a new node.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			node, err := openNode(cmd)
			if err != nil {
				return err
			}
			defer node.Close()

			gs, err := node.ExportGenesis()
			if err != nil {
				return err
			}
			if err := gs.Validate(); err != nil {
				return err
			}

			bz, err := sonnet.MarshalIndent(gs, "", "  ")
			if err != nil {
				return err
			}
			node.Logger().Info("exported state", "height", node.LastBlockHeight(), "time", time.Now().UTC())
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
}
