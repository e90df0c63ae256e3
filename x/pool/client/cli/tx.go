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

// GetTxCmd returns the state-changing pool and ledger commands.
func GetTxCmd(env Env) *cobra.Command {
	txCmd := &cobra.Command{
		Use:                        "tx",
		Short:                      "Pool transaction subcommands",
		SuggestionsMinimumDistance: 2,
	}

	txCmd.AddCommand(
		CmdAddLiquidity(env),
		CmdRemoveLiquidity(env),
		CmdSwap(env),
		CmdSync(env),
		CmdApprove(env),
		CmdTransfer(env),
	)

	return txCmd
}

// CmdAddLiquidity returns a CLI command handler for depositing into the pool
func CmdAddLiquidity(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add-liquidity [denom-a] [amount-a] [denom-b] [amount-b]",
		Short: "Deposit both assets and receive pool shares",
		Long: `Deposit up to the desired amounts of both assets. On a funded pool the
deposit is scaled to the current ratio; the sender must have approved the
pool for both assets beforehand.

Example:
  $ cpammd tx add-liquidity uatom 1000000 uosmo 4000000 --from alice
  $ cpammd tx add-liquidity uatom 1000000 uosmo 4000000 --amount-a-min 990000 --from alice`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountA, err := parseAmount("amount-a", args[1])
			if err != nil {
				return err
			}
			amountB, err := parseAmount("amount-b", args[3])
			if err != nil {
				return err
			}
			minA, minB, err := minAmountsFromFlags(cmd)
			if err != nil {
				return err
			}
			sender, recipient, err := env.senderAndRecipient(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			deadline, err := deadlineFromFlags(cmd, now)
			if err != nil {
				return err
			}

			msg := &types.MsgAddLiquidity{
				Sender:         sender.String(),
				DenomA:         args[0],
				DenomB:         args[2],
				AmountADesired: amountA,
				AmountBDesired: amountB,
				AmountAMin:     minA,
				AmountBMin:     minB,
				Recipient:      recipient.String(),
				Deadline:       deadline,
			}
			return env.deliver(cmd, "add_liquidity", now, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				return node.MsgServer().AddLiquidity(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	addDeadlineFlags(cmd)
	cmd.Flags().String(FlagAmountAMin, "0", "Minimum accepted deposit of denom-a")
	cmd.Flags().String(FlagAmountBMin, "0", "Minimum accepted deposit of denom-b")
	return cmd
}

// CmdRemoveLiquidity returns a CLI command handler for redeeming shares
func CmdRemoveLiquidity(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove-liquidity [liquidity] [denom-a] [denom-b]",
		Short: "Burn pool shares and withdraw both assets",
		Long: `Burn the given amount of pool shares and receive the pro-rata share of
both reserves.

Example:
  $ cpammd tx remove-liquidity 2000 uatom uosmo --from alice
  $ cpammd tx remove-liquidity 2000 uatom uosmo --amount-a-min 900 --amount-b-min 3600 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			liquidity, err := parseAmount("liquidity", args[0])
			if err != nil {
				return err
			}
			minA, minB, err := minAmountsFromFlags(cmd)
			if err != nil {
				return err
			}
			sender, recipient, err := env.senderAndRecipient(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			deadline, err := deadlineFromFlags(cmd, now)
			if err != nil {
				return err
			}

			msg := &types.MsgRemoveLiquidity{
				Sender:     sender.String(),
				DenomA:     args[1],
				DenomB:     args[2],
				Liquidity:  liquidity,
				AmountAMin: minA,
				AmountBMin: minB,
				Recipient:  recipient.String(),
				Deadline:   deadline,
			}
			return env.deliver(cmd, "remove_liquidity", now, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				return node.MsgServer().RemoveLiquidity(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	addDeadlineFlags(cmd)
	cmd.Flags().String(FlagAmountAMin, "0", "Minimum amount of denom-a to receive")
	cmd.Flags().String(FlagAmountBMin, "0", "Minimum amount of denom-b to receive")
	return cmd
}

// CmdSwap returns a CLI command handler for selling an exact input amount
func CmdSwap(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [amount-in] [token-in] [token-out]",
		Short: "Sell an exact amount of one asset for the other",
		Long: `Sell exactly amount-in of token-in for token-out at the constant-product
price. The sender must have approved the pool for token-in.

Example:
  $ cpammd tx swap 1000 uatom uosmo --min-amount-out 3600 --from alice
  $ cpammd tx swap 1000 uatom uosmo --to bob --deadline 5m --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amountIn, err := parseAmount("amount-in", args[0])
			if err != nil {
				return err
			}
			rawMin, _ := cmd.Flags().GetString(FlagMinAmountOut)
			minOut, err := parseAmount(FlagMinAmountOut, rawMin)
			if err != nil {
				return err
			}
			sender, recipient, err := env.senderAndRecipient(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			deadline, err := deadlineFromFlags(cmd, now)
			if err != nil {
				return err
			}

			msg := &types.MsgSwapExactTokensForTokens{
				Sender:       sender.String(),
				AmountIn:     amountIn,
				AmountOutMin: minOut,
				Path:         []string{args[1], args[2]},
				Recipient:    recipient.String(),
				Deadline:     deadline,
			}
			return env.deliver(cmd, "swap", now, func(node *app.App, ctx sdk.Context) (interface{}, error) {
				return node.MsgServer().SwapExactTokensForTokens(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	addDeadlineFlags(cmd)
	cmd.Flags().String(FlagMinAmountOut, "0", "Minimum amount of token-out to receive")
	return cmd
}

// CmdSync returns a CLI command handler for resynchronizing the reserves
func CmdSync(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Set the reserves to the balances the pool actually holds",
		Long: `Absorb tokens sent to the pool address outside of a pool operation into
the reserves.

Example:
  $ cpammd tx sync --from alice`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, _ := cmd.Flags().GetString(FlagFrom)
			sender, err := env.ResolveAddress(cmd, from)
			if err != nil {
				return fmt.Errorf("--%s: %w", FlagFrom, err)
			}

			msg := &types.MsgSync{Sender: sender.String()}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return env.deliver(cmd, "sync", time.Now(), func(node *app.App, ctx sdk.Context) (interface{}, error) {
				return node.MsgServer().Sync(ctx, msg)
			})
		},
	}

	addFromFlag(cmd)
	return cmd
}

// CmdApprove returns a CLI command handler for granting an allowance
func CmdApprove(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [denom] [amount]",
		Short: "Allow a spender, by default the pool, to move the sender's tokens",
		Long: `Set the allowance of the spender on the sender's balance of denom. The
allowance is replaced, not increased.

Example:
  $ cpammd tx approve uatom 1000000 --from alice
  $ cpammd tx approve uosmo 500 --spender bob --from alice`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[1])
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetString(FlagFrom)
			owner, err := env.ResolveAddress(cmd, from)
			if err != nil {
				return fmt.Errorf("--%s: %w", FlagFrom, err)
			}
			spenderArg, _ := cmd.Flags().GetString(FlagSpender)

			return env.deliver(cmd, "approve", time.Now(), func(node *app.App, ctx sdk.Context) (interface{}, error) {
				ledger, err := node.Ledger(args[0])
				if err != nil {
					return nil, err
				}
				spender := node.PoolKeeper.Address()
				if spenderArg != "" {
					if spender, err = env.ResolveAddress(cmd, spenderArg); err != nil {
						return nil, fmt.Errorf("--%s: %w", FlagSpender, err)
					}
				}
				if err := ledger.Approve(ctx, owner, spender, amount); err != nil {
					return nil, err
				}
				return allowanceResult{
					Denom:     ledger.Denom(),
					Owner:     owner.String(),
					Spender:   spender.String(),
					Allowance: ledger.Allowance(ctx, owner, spender),
				}, nil
			})
		},
	}

	addFromFlag(cmd)
	cmd.Flags().String(FlagSpender, "", "Spender key name or address (defaults to the pool)")
	return cmd
}

// CmdTransfer returns a CLI command handler for moving tokens between holders
func CmdTransfer(env Env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer [denom] [to] [amount]",
		Short: "Move tokens of any ledger, including pool shares",
		Long: `Move amount of denom from the sender to another holder. Sending an asset
to the pool address donates it to the pool until the next sync.

Example:
  $ cpammd tx transfer uatom bob 1000 --from alice
  $ cpammd tx transfer lp/uatom/uosmo bob 10 --from alice`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount("amount", args[2])
			if err != nil {
				return err
			}
			from, _ := cmd.Flags().GetString(FlagFrom)
			sender, err := env.ResolveAddress(cmd, from)
			if err != nil {
				return fmt.Errorf("--%s: %w", FlagFrom, err)
			}
			recipient, err := env.ResolveAddress(cmd, args[1])
			if err != nil {
				return fmt.Errorf("recipient: %w", err)
			}

			return env.deliver(cmd, "transfer", time.Now(), func(node *app.App, ctx sdk.Context) (interface{}, error) {
				ledger, err := node.Ledger(args[0])
				if err != nil {
					return nil, err
				}
				if err := ledger.Transfer(ctx, sender, recipient, amount); err != nil {
					return nil, err
				}
				return transferResult{
					Denom:     ledger.Denom(),
					Sender:    sender.String(),
					Recipient: recipient.String(),
					Amount:    amount,
				}, nil
			})
		},
	}

	addFromFlag(cmd)
	return cmd
}

type allowanceResult struct {
	Denom     string   `json:"denom"`
	Owner     string   `json:"owner"`
	Spender   string   `json:"spender"`
	Allowance math.Int `json:"allowance"`
}

type transferResult struct {
	Denom     string   `json:"denom"`
	Sender    string   `json:"sender"`
	Recipient string   `json:"recipient"`
	Amount    math.Int `json:"amount"`
}

// deliver opens the node, commits fn as one state transition and prints the
// result with the emitted events.
func (e Env) deliver(cmd *cobra.Command, txType string, blockTime time.Time, fn func(node *app.App, ctx sdk.Context) (interface{}, error)) error {
	node, err := e.OpenNode(cmd)
	if err != nil {
		return err
	}
	defer node.Close()

	var result interface{}
	events, err := node.Deliver(cmd.Context(), txType, blockTime, func(ctx sdk.Context) error {
		var err error
		result, err = fn(node, ctx)
		return err
	})
	if err != nil {
		return err
	}

	return printOutput(cmd, newTxOutput(node.LastBlockHeight(), result, events))
}

func parseAmount(name, raw string) (math.Int, error) {
	amount, ok := math.NewIntFromString(raw)
	if !ok {
		return math.Int{}, fmt.Errorf("invalid %s: %s (must be integer)", name, raw)
	}
	if amount.IsNegative() {
		return math.Int{}, fmt.Errorf("%s must not be negative", name)
	}
	return amount, nil
}

func minAmountsFromFlags(cmd *cobra.Command) (math.Int, math.Int, error) {
	rawA, _ := cmd.Flags().GetString(FlagAmountAMin)
	minA, err := parseAmount(FlagAmountAMin, rawA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	rawB, _ := cmd.Flags().GetString(FlagAmountBMin)
	minB, err := parseAmount(FlagAmountBMin, rawB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return minA, minB, nil
}
