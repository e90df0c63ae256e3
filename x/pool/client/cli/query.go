package cli

import (
	"fmt"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"

	"github.com/paw-chain/cpamm/app"
	"github.com/paw-chain/cpamm/x/pool/types"
)

// GetQueryCmd returns the cli query commands for the pool
func GetQueryCmd(env Env) *cobra.Command {
	queryCmd := &cobra.Command{
		Use:                        "query",
		Aliases:                    []string{"q"},
		Short:                      "Querying commands for the pool and its ledgers",
		SuggestionsMinimumDistance: 2,
	}

	queryCmd.AddCommand(
		CmdQueryPool(env),
		CmdQueryReserves(env),
		CmdQueryPrice(env),
		CmdQueryAmountOut(env),
		CmdQueryQuote(env),
		CmdQueryBalance(env),
	)

	return queryCmd
}

type reservesResult struct {
	DenomA   string   `json:"denom_a"`
	DenomB   string   `json:"denom_b"`
	ReserveA math.Int `json:"reserve_a"`
	ReserveB math.Int `json:"reserve_b"`
}

type priceResult struct {
	DenomA string   `json:"denom_a"`
	DenomB string   `json:"denom_b"`
	Price  math.Int `json:"price"`
	Scale  math.Int `json:"scale"`
}

type amountResult struct {
	Denom  string   `json:"denom"`
	Amount math.Int `json:"amount"`
}

type balanceResult struct {
	Address   string   `json:"address"`
	Denom     string   `json:"denom"`
	Balance   math.Int `json:"balance"`
	Allowance math.Int `json:"pool_allowance"`
}

// CmdQueryPool returns a CLI command handler for querying the pool state
func CmdQueryPool(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "Query the pool pair, address, reserves and share supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				return node.PoolKeeper.PoolInfo(ctx)
			})
		},
	}
}

// CmdQueryReserves returns a CLI command handler for querying the reserves in caller order
func CmdQueryReserves(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "reserves [denom-a] [denom-b]",
		Short: "Query the reserves, ordered as the denoms are given",
		Example: `  $ cpammd query reserves uatom uosmo
  $ cpammd query reserves uosmo uatom`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				reserveA, reserveB, err := node.PoolKeeper.GetReserves(ctx, args[0], args[1])
				if err != nil {
					return nil, err
				}
				return reservesResult{DenomA: args[0], DenomB: args[1], ReserveA: reserveA, ReserveB: reserveB}, nil
			})
		},
	}
}

// CmdQueryPrice returns a CLI command handler for querying the spot price
func CmdQueryPrice(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "price [denom-a] [denom-b]",
		Short: "Query the price of denom-a in denom-b, scaled by 1e18",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				price, err := node.PoolKeeper.GetPrice(ctx, args[0], args[1])
				if err != nil {
					return nil, err
				}
				return priceResult{DenomA: args[0], DenomB: args[1], Price: price, Scale: types.PriceScale}, nil
			})
		},
	}
}

// CmdQueryAmountOut returns a CLI command handler for pricing a swap
func CmdQueryAmountOut(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "amount-out [amount-in] [token-in] [token-out]",
		Short: "Query what a swap of amount-in would pay at the current reserves",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				reserveIn, reserveOut, err := node.PoolKeeper.GetReserves(ctx, args[1], args[2])
				if err != nil {
					return nil, err
				}
				out, err := node.PoolKeeper.GetAmountOut(amountIn, reserveIn, reserveOut)
				if err != nil {
					return nil, err
				}
				return amountResult{Denom: args[2], Amount: out}, nil
			})
		},
	}
}

// CmdQueryQuote returns a CLI command handler for the proportional counter-amount
func CmdQueryQuote(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "quote [amount-a] [denom-a] [denom-b]",
		Short: "Query the amount of denom-b matching amount-a at the current ratio",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountA, err := parseAmount("amount-a", args[0])
			if err != nil {
				return err
			}
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				reserveA, reserveB, err := node.PoolKeeper.GetReserves(ctx, args[1], args[2])
				if err != nil {
					return nil, err
				}
				amountB, err := node.PoolKeeper.Quote(amountA, reserveA, reserveB)
				if err != nil {
					return nil, err
				}
				return amountResult{Denom: args[2], Amount: amountB}, nil
			})
		},
	}
}

// CmdQueryBalance returns a CLI command handler for a holder's balance
func CmdQueryBalance(env Env) *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address] [denom]",
		Short: "Query a holder's balance of an asset or of pool shares",
		Example: `  $ cpammd query balance alice uatom
  $ cpammd query balance cpamm1... lp/uatom/uosmo`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := env.ResolveAddress(cmd, args[0])
			if err != nil {
				return fmt.Errorf("address: %w", err)
			}
			return env.view(cmd, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				ledger, err := node.Ledger(args[1])
				if err != nil {
					return nil, err
				}
				return balanceResult{
					Address:   addr.String(),
					Denom:     ledger.Denom(),
					Balance:   ledger.BalanceOf(ctx, addr),
					Allowance: ledger.Allowance(ctx, addr, node.PoolKeeper.Address()),
				}, nil
			})
		},
	}
}

// view opens the node, runs fn on the latest state and prints its result.
func (e Env) view(cmd *cobra.Command, fn func(node *app.App, ctx sdk.Context) (interface{}, error)) error {
	node, err := e.OpenNode(cmd)
	if err != nil {
		return err
	}
	defer node.Close()

	var result interface{}
	err = node.View(time.Now(), func(ctx sdk.Context) error {
		var err error
		result, err = fn(node, ctx)
		return err
	})
	if err != nil {
		return err
	}
	return printOutput(cmd, result)
}
