package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Vault module sentinel errors
var (
	// Input validation errors
	ErrZeroDeposit = sdkerrors.Register(ModuleName, 2, "deposit amount cannot be zero")
	ErrZeroAmount  = sdkerrors.Register(ModuleName, 3, "amount cannot be zero")

	// Capacity errors
	ErrCapExceeded          = sdkerrors.Register(ModuleName, 4, "withdrawal cap exceeded")
	ErrDepositCapReached    = sdkerrors.Register(ModuleName, 5, "deposit count cap reached")
	ErrAggregateCapExceeded = sdkerrors.Register(ModuleName, 6, "aggregate valuation cap exceeded")

	// Balance errors
	ErrInsufficientBalance   = sdkerrors.Register(ModuleName, 7, "insufficient balance")
	ErrInsufficientLiquidity = sdkerrors.Register(ModuleName, 8, "insufficient liquidity in pool")

	// Oracle errors
	ErrInvalidPrice = sdkerrors.Register(ModuleName, 9, "invalid oracle price")

	// Transfer errors
	ErrTransferFailed = sdkerrors.Register(ModuleName, 10, "asset transfer failed")

	// Concurrency errors
	ErrReentrancy = sdkerrors.Register(ModuleName, 11, "reentrant call")

	// Authorization errors
	ErrUnauthorized = sdkerrors.Register(ModuleName, 12, "caller is not the owner")
	ErrPaused       = sdkerrors.Register(ModuleName, 13, "vault operations are paused")

	// Parameter errors
	ErrInvalidParams = sdkerrors.Register(ModuleName, 14, "invalid vault parameters")
)
