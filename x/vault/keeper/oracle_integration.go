package keeper

import (
	"cosmossdk.io/math"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// Feed names used in errors, logs and metrics.
const (
	FeedNative = "native"
	FeedToken  = "token"
)

// readPrice pulls a fresh reading from a feed and validates it. No reading
// is ever cached or substituted: a positive price, a consistent round
// marker and an age within the staleness window are required on every call.
func (k *Keeper) readPrice(feed types.PriceFeed, name string) (math.Int, error) {
	reading, err := feed.LatestReading()
	if err != nil {
		k.countOracleReading(name, "error")
		return math.ZeroInt(), types.ErrInvalidPrice.Wrapf("%s feed unavailable: %v", name, err)
	}

	if reading.Price.IsNil() || !reading.Price.IsPositive() {
		k.countOracleReading(name, "non_positive")
		return math.ZeroInt(), types.ErrInvalidPrice.Wrapf("%s feed reported non-positive price %s", name, reading.Price)
	}

	if reading.AnsweredInRound < reading.RoundID {
		k.countOracleReading(name, "stale_round")
		return math.ZeroInt(), types.ErrInvalidPrice.Wrapf(
			"%s feed round is incomplete: answered_in_round %d < round_id %d",
			name, reading.AnsweredInRound, reading.RoundID,
		)
	}

	if age := k.nowFn().Sub(reading.UpdatedAt); age > k.maxOracleDelay {
		k.countOracleReading(name, "stale")
		return math.ZeroInt(), types.ErrInvalidPrice.Wrapf(
			"%s feed reading is %s old, staleness window is %s",
			name, age, k.maxOracleDelay,
		)
	}

	k.countOracleReading(name, "ok")
	return reading.Price, nil
}

// NativePrice returns the validated native-asset price in valuation units.
func (k *Keeper) NativePrice() (math.Int, error) {
	return k.readPrice(k.nativeFeed, FeedNative)
}

// TokenPrice returns the validated token price in valuation units.
func (k *Keeper) TokenPrice() (math.Int, error) {
	return k.readPrice(k.tokenFeed, FeedToken)
}

func (k *Keeper) countOracleReading(feed, status string) {
	if k.metrics != nil {
		k.metrics.OracleReadings.WithLabelValues(feed, status).Inc()
	}
}
