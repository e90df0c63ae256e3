package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sugawarayuuta/sonnet"

	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

// GenesisState is the genesis document of a cpamm node: the pool pair and one
// ledger per denom (both assets and the share denom).
type GenesisState struct {
	Pool   pooltypes.GenesisState    `json:"pool"`
	Tokens []tokentypes.GenesisState `json:"tokens"`
}

// NewDefaultGenesisState returns an empty pool over pair.
func NewDefaultGenesisState(pair pooltypes.AssetPair) GenesisState {
	return GenesisState{
		Pool: *pooltypes.NewGenesisState(pair),
		Tokens: []tokentypes.GenesisState{
			*tokentypes.DefaultGenesis(pair.DenomA),
			*tokentypes.DefaultGenesis(pair.DenomB),
			*tokentypes.DefaultGenesis(pooltypes.ShareDenom(pair)),
		},
	}
}

// Validate checks the pool genesis and that exactly the pair's ledgers are present.
func (gs GenesisState) Validate() error {
	if err := gs.Pool.Validate(); err != nil {
		return err
	}

	want := map[string]bool{
		gs.Pool.Pair.DenomA:               false,
		gs.Pool.Pair.DenomB:               false,
		pooltypes.ShareDenom(gs.Pool.Pair): false,
	}
	for _, token := range gs.Tokens {
		seen, ok := want[token.Denom]
		if !ok {
			return fmt.Errorf("unexpected ledger %s for pair %s", token.Denom, gs.Pool.Pair)
		}
		if seen {
			return fmt.Errorf("duplicate ledger %s", token.Denom)
		}
		if err := token.Validate(); err != nil {
			return fmt.Errorf("ledger %s: %w", token.Denom, err)
		}
		want[token.Denom] = true
	}
	for denom, seen := range want {
		if !seen {
			return fmt.Errorf("missing ledger %s", denom)
		}
	}
	return nil
}

// Token returns the ledger genesis of denom.
func (gs *GenesisState) Token(denom string) (*tokentypes.GenesisState, error) {
	for i := range gs.Tokens {
		if gs.Tokens[i].Denom == denom {
			return &gs.Tokens[i], nil
		}
	}
	return nil, fmt.Errorf("no ledger for %s", denom)
}

// ReadGenesisFile decodes and validates a genesis document.
func ReadGenesisFile(path string) (GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return GenesisState{}, err
	}

	var gs GenesisState
	if err := sonnet.Unmarshal(bz, &gs); err != nil {
		return GenesisState{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := gs.Validate(); err != nil {
		return GenesisState{}, fmt.Errorf("validate %s: %w", path, err)
	}
	return gs, nil
}

// WriteGenesisFile validates gs and writes it as indented JSON.
func WriteGenesisFile(path string, gs GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	bz, err := sonnet.MarshalIndent(gs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o600)
}
