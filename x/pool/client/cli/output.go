package cli

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/sugawarayuuta/sonnet"
)

// EventOutput is the printed form of an emitted event.
type EventOutput struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

// TxOutput is printed after a successful state transition.
type TxOutput struct {
	Height int64         `json:"height"`
	Result interface{}   `json:"result"`
	Events []EventOutput `json:"events"`
}

func newTxOutput(height int64, result interface{}, events sdk.Events) TxOutput {
	out := TxOutput{Height: height, Result: result, Events: make([]EventOutput, 0, len(events))}
	for _, ev := range events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, attr := range ev.Attributes {
			attrs[attr.Key] = attr.Value
		}
		out.Events = append(out.Events, EventOutput{Type: ev.Type, Attributes: attrs})
	}
	return out
}

func printOutput(cmd *cobra.Command, v interface{}) error {
	bz, err := sonnet.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	return err
}
