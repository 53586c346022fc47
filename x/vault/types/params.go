package types

import (
	"time"

	"cosmossdk.io/math"
)

// DefaultMaxOracleDelay is the staleness window applied to oracle readings
// unless the owner adjusts it.
const DefaultMaxOracleDelay = time.Hour

// Params holds the vault configuration fixed at initialization. Caps are
// immutable for the lifetime of the ledger; only MaxOracleDelay may be
// adjusted afterwards, by the owner.
type Params struct {
	// Owner is the single identity authorized for pause, unpause and
	// oracle-delay adjustment.
	Owner string

	// NativeWithdrawCap is the per-withdrawal limit for the native asset,
	// in smallest units. Mandatory, must be positive.
	NativeWithdrawCap math.Int

	// DepositCountCap limits the global number of successful deposits
	// across both asset kinds. Mandatory, must be positive.
	DepositCountCap uint64

	// TokenWithdrawCap is the per-withdrawal limit for the token.
	// Zero disables the cap.
	TokenWithdrawCap math.Int

	// AggregateValuationCap limits the running valuation of all
	// outstanding native balances, in valuation units. Zero disables it.
	AggregateValuationCap math.Int

	// MaxOracleDelay is the maximum tolerated age of a price reading.
	MaxOracleDelay time.Duration

	// NativeUnitScale is the number of smallest native units per whole
	// native asset (1e18 for an 18-decimal asset). Divides the valuation
	// formula so that amount*price/scale lands in 8-decimal valuation
	// units.
	NativeUnitScale math.Int

	// TokenUnitScale converts a native-scaled value into token smallest
	// units in the swap formula: 10^(tokenDecimals-nativeDecimals),
	// minimum 1.
	TokenUnitScale math.Int
}

// DefaultParams returns vault parameters for an 18-decimal native asset and
// an 18-decimal token, with optional caps disabled.
func DefaultParams() Params {
	return Params{
		NativeWithdrawCap:     math.NewIntWithDecimal(100, 18), // 100 whole native units
		DepositCountCap:       1_000_000,
		TokenWithdrawCap:      math.ZeroInt(),
		AggregateValuationCap: math.ZeroInt(),
		MaxOracleDelay:        DefaultMaxOracleDelay,
		NativeUnitScale:       math.NewIntWithDecimal(1, 18),
		TokenUnitScale:        math.OneInt(),
	}
}

// Validate checks the parameter set.
func (p Params) Validate() error {
	if p.Owner == "" {
		return ErrInvalidParams.Wrap("owner identity cannot be empty")
	}
	if p.NativeWithdrawCap.IsNil() || !p.NativeWithdrawCap.IsPositive() {
		return ErrInvalidParams.Wrap("native withdraw cap must be positive")
	}
	if p.DepositCountCap == 0 {
		return ErrInvalidParams.Wrap("deposit count cap must be positive")
	}
	if p.TokenWithdrawCap.IsNil() || p.TokenWithdrawCap.IsNegative() {
		return ErrInvalidParams.Wrap("token withdraw cap cannot be negative")
	}
	if p.AggregateValuationCap.IsNil() || p.AggregateValuationCap.IsNegative() {
		return ErrInvalidParams.Wrap("aggregate valuation cap cannot be negative")
	}
	if p.MaxOracleDelay <= 0 {
		return ErrInvalidParams.Wrap("max oracle delay must be positive")
	}
	if p.NativeUnitScale.IsNil() || !p.NativeUnitScale.IsPositive() {
		return ErrInvalidParams.Wrap("native unit scale must be positive")
	}
	if p.TokenUnitScale.IsNil() || !p.TokenUnitScale.IsPositive() {
		return ErrInvalidParams.Wrap("token unit scale must be positive")
	}
	return nil
}
