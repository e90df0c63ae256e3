package cli

import (
	"fmt"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/paw-chain/cpamm/app"
)

// Flag constants for pool CLI commands
const (
	FlagFrom      = "from"
	FlagRecipient = "to"
	FlagSpender   = "spender"

	// Liquidity flags
	FlagAmountAMin = "amount-a-min"
	FlagAmountBMin = "amount-b-min"

	// Swap flags
	FlagMinAmountOut = "min-amount-out"
	FlagDeadline     = "deadline"
)

// DefaultDeadline is how long a submitted operation stays valid.
const DefaultDeadline = 20 * time.Minute

// Env is what the pool commands need from the daemon.
type Env struct {
	// OpenNode opens the local node for the duration of one command.
	OpenNode func(cmd *cobra.Command) (*app.App, error)

	// ResolveAddress accepts a bech32 address or a keyring key name.
	ResolveAddress func(cmd *cobra.Command, nameOrAddress string) (sdk.AccAddress, error)
}

// FlagSetFrom returns the sender flag shared by every tx command.
func FlagSetFrom() *pflag.FlagSet {
	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.String(FlagFrom, "", "Key name or address of the sender")
	return fs
}

// FlagSetRecipientDeadline returns the flags of the deadline-bound pool operations.
func FlagSetRecipientDeadline() *pflag.FlagSet {
	fs := pflag.NewFlagSet("", pflag.ContinueOnError)
	fs.String(FlagRecipient, "", "Recipient key name or address (defaults to the sender)")
	fs.Duration(FlagDeadline, DefaultDeadline, "Time from now after which the operation is rejected")
	return fs
}

func addFromFlag(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(FlagSetFrom())
	_ = cmd.MarkFlagRequired(FlagFrom)
}

func addDeadlineFlags(cmd *cobra.Command) {
	cmd.Flags().AddFlagSet(FlagSetRecipientDeadline())
}

// senderAndRecipient resolves --from and --to.
func (e Env) senderAndRecipient(cmd *cobra.Command) (sdk.AccAddress, sdk.AccAddress, error) {
	from, _ := cmd.Flags().GetString(FlagFrom)
	sender, err := e.ResolveAddress(cmd, from)
	if err != nil {
		return nil, nil, fmt.Errorf("--%s: %w", FlagFrom, err)
	}

	to, _ := cmd.Flags().GetString(FlagRecipient)
	if to == "" {
		return sender, sender, nil
	}
	recipient, err := e.ResolveAddress(cmd, to)
	if err != nil {
		return nil, nil, fmt.Errorf("--%s: %w", FlagRecipient, err)
	}
	return sender, recipient, nil
}

func deadlineFromFlags(cmd *cobra.Command, now time.Time) (time.Time, error) {
	d, err := cmd.Flags().GetDuration(FlagDeadline)
	if err != nil {
		return time.Time{}, err
	}
	if d <= 0 {
		return time.Time{}, fmt.Errorf("--%s must be positive", FlagDeadline)
	}
	return now.Add(d), nil
}
