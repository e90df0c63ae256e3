package types

import (
	"cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrInsufficientBalance   = errors.Register(ModuleName, 1, "insufficient balance")
	ErrInsufficientAllowance = errors.Register(ModuleName, 2, "insufficient allowance")
	ErrInvalidAmount         = errors.Register(ModuleName, 3, "invalid amount")
	ErrInvalidDenom          = errors.Register(ModuleName, 4, "invalid denomination")
	ErrInvalidAddress        = errors.Register(ModuleName, 5, "invalid address")
	ErrInvalidGenesis        = errors.Register(ModuleName, 6, "invalid genesis state")
)
