package app_test

import (
	"path/filepath"
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/cpamm/app"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

func TestGenesisFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "genesis.json")
	gs := fundedGenesis(t)

	require.NoError(t, app.WriteGenesisFile(path, gs))
	read, err := app.ReadGenesisFile(path)
	require.NoError(t, err)
	require.Equal(t, gs.Pool, read.Pool)

	token, err := read.Token(testPair.DenomA)
	require.NoError(t, err)
	require.Len(t, token.Balances, 1)
	require.Equal(t, "1000", token.Balances[0].Amount.String())
}

func TestGenesis_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gs *app.GenesisState)
	}{
		{"missing ledger", func(gs *app.GenesisState) { gs.Tokens = gs.Tokens[:2] }},
		{"duplicate ledger", func(gs *app.GenesisState) { gs.Tokens[2] = gs.Tokens[0] }},
		{"foreign ledger", func(gs *app.GenesisState) { gs.Tokens[2] = *tokentypes.DefaultGenesis("ujuno") }},
		{"invalid pair", func(gs *app.GenesisState) { gs.Pool.Pair = pooltypes.AssetPair{DenomA: "uatom", DenomB: "uatom"} }},
		{"negative balance", func(gs *app.GenesisState) {
			gs.Tokens[0].Balances = []tokentypes.Balance{{Address: alice.String(), Amount: math.NewInt(-1)}}
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gs := app.NewDefaultGenesisState(testPair)
			require.NoError(t, gs.Validate())
			tc.mutate(&gs)
			require.Error(t, gs.Validate())
		})
	}
}

func TestReadGenesisFile_Missing(t *testing.T) {
	_, err := app.ReadGenesisFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
