package types

import (
	"cosmossdk.io/math"
)

// TokenClient is the designated fungible token consumed by the vault. The
// vault never assumes a transfer succeeded beyond the returned error.
type TokenClient interface {
	// BalanceOf returns the holder's token balance in smallest units.
	BalanceOf(holder string) math.Int

	// Transfer moves tokens from the caller's own account.
	Transfer(from, to string, amount math.Int) error

	// TransferFrom moves tokens on behalf of another account, consuming
	// the spender's allowance.
	TransferFrom(spender, from, to string, amount math.Int) error

	// Allowance returns the amount spender may move from owner's account.
	Allowance(owner, spender string) math.Int
}

// PriceFeed is a single external price feed. Each reading is validated by
// the vault before use; the feed itself makes no freshness guarantees.
type PriceFeed interface {
	LatestReading() (OracleReading, error)
}

// NativeClient performs outbound transfers of the native settlement asset.
// Inbound native value is push-based: it arrives as an argument on payable
// vault operations.
type NativeClient interface {
	Send(to string, amount math.Int) error
}
