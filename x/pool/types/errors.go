package types

import (
	"cosmossdk.io/errors"
)

// Pool module sentinel errors
var (
	ErrExpired                    = errors.Register(ModuleName, 1, "deadline expired")
	ErrInvalidAssetPair           = errors.Register(ModuleName, 2, "invalid asset pair")
	ErrInvalidInputAsset          = errors.Register(ModuleName, 3, "invalid input asset")
	ErrInvalidOutputAsset         = errors.Register(ModuleName, 4, "invalid output asset")
	ErrInvalidPath                = errors.Register(ModuleName, 5, "invalid swap path")
	ErrInsufficientAAmount        = errors.Register(ModuleName, 6, "insufficient A amount")
	ErrInsufficientBAmount        = errors.Register(ModuleName, 7, "insufficient B amount")
	ErrInsufficientLiquidityAdded = errors.Register(ModuleName, 8, "insufficient liquidity added")
	ErrInsufficientLiquidity      = errors.Register(ModuleName, 9, "insufficient liquidity")
	ErrInsufficientOutputAmount   = errors.Register(ModuleName, 10, "insufficient output amount")
	ErrMintedZero                 = errors.Register(ModuleName, 11, "minted zero liquidity")
	ErrNoLiquidity                = errors.Register(ModuleName, 12, "no liquidity")
	ErrZeroInput                  = errors.Register(ModuleName, 13, "zero input amount")
	ErrInvalidAmount              = errors.Register(ModuleName, 14, "invalid amount")
	ErrInvalidAddress             = errors.Register(ModuleName, 15, "invalid address")
	ErrOverflow                   = errors.Register(ModuleName, 16, "arithmetic overflow")
	ErrInvariantViolation         = errors.Register(ModuleName, 17, "invariant violation")
	ErrInvalidGenesis             = errors.Register(ModuleName, 18, "invalid genesis state")
)
