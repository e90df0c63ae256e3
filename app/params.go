package app

import (
	"sync"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// Name is the application name used in logs and telemetry.
	Name = "cpamm"

	// Bech32PrefixAccAddr defines the Bech32 prefix of an account's address
	Bech32PrefixAccAddr = "cpamm"
	// Bech32PrefixAccPub defines the Bech32 prefix of an account's public key
	Bech32PrefixAccPub = "cpammpub"

	// CoinType is the SLIP44 coin type used for key derivation.
	CoinType = 118
)

var configOnce sync.Once

// SetConfig installs the cpamm address prefixes and seals the sdk config. It
// is safe to call more than once.
func SetConfig() {
	configOnce.Do(func() {
		config := sdk.GetConfig()
		config.SetBech32PrefixForAccount(Bech32PrefixAccAddr, Bech32PrefixAccPub)
		config.SetCoinType(CoinType)
		config.Seal()
	})
}
