package types

import (
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes inside a denom namespace
var (
	BalanceKeyPrefix   = []byte{0x01}
	SupplyKey          = []byte{0x02}
	AllowanceKeyPrefix = []byte{0x03}
)

// DenomPrefix returns the namespace every key of a denom lives under.
func DenomPrefix(denom string) []byte {
	return address.MustLengthPrefix([]byte(denom))
}

// BalanceKey returns the key of an account balance within a denom namespace.
func BalanceKey(addr []byte) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), addr...)
}

// AllowanceKey returns the key of a spender allowance within a denom namespace.
func AllowanceKey(owner, spender []byte) []byte {
	key := append([]byte{}, AllowanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, spender...)
}

// AllowanceKeyOwnerPrefix returns the prefix of every allowance granted by owner.
func AllowanceKeyOwnerPrefix(owner []byte) []byte {
	key := append([]byte{}, AllowanceKeyPrefix...)
	return append(key, address.MustLengthPrefix(owner)...)
}
