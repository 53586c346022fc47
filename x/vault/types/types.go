package types

import (
	"time"

	"cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "vault"

	// ValuationDecimals is the fixed-point precision of oracle prices and
	// of the common valuation unit (USD in production deployments).
	ValuationDecimals = 8
)

// OracleReading is a single price observation returned by a feed.
// Readings are validated on every use and never persisted.
type OracleReading struct {
	// Price is the asset price in the valuation unit, 8-decimal fixed point.
	Price math.Int

	// UpdatedAt is the feed's last update time.
	UpdatedAt time.Time

	// RoundID and AnsweredInRound are the feed's round markers. A reading
	// with AnsweredInRound < RoundID carries data from an incomplete round
	// and must be rejected.
	RoundID         uint64
	AnsweredInRound uint64
}

// BankStats reports the global operation counters.
type BankStats struct {
	DepositCount    uint64
	WithdrawalCount uint64
}
