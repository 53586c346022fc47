package oraclesim

import (
	"time"

	"cosmossdk.io/math"

	vaulttypes "github.com/kgld-labs/goldbank/x/vault/types"
)

// Feed is a scripted price feed implementing the vault's PriceFeed
// interface. Tests and the demo daemon drive it directly: set a price,
// age the reading, desynchronize the round markers, or script an outage.
type Feed struct {
	price           math.Int
	updatedAt       time.Time
	roundID         uint64
	answeredInRound uint64
	err             error
}

// NewFeed creates a feed with the given 8-decimal price, updated now.
func NewFeed(price math.Int) *Feed {
	return &Feed{
		price:           price,
		updatedAt:       time.Now(),
		roundID:         1,
		answeredInRound: 1,
	}
}

// LatestReading returns the current scripted reading.
func (f *Feed) LatestReading() (vaulttypes.OracleReading, error) {
	if f.err != nil {
		return vaulttypes.OracleReading{}, f.err
	}
	return vaulttypes.OracleReading{
		Price:           f.price,
		UpdatedAt:       f.updatedAt,
		RoundID:         f.roundID,
		AnsweredInRound: f.answeredInRound,
	}, nil
}

// SetPrice updates the price and refreshes the timestamp and round.
func (f *Feed) SetPrice(price math.Int) {
	f.price = price
	f.updatedAt = time.Now()
	f.roundID++
	f.answeredInRound = f.roundID
}

// SetUpdatedAt backdates or postdates the reading.
func (f *Feed) SetUpdatedAt(t time.Time) {
	f.updatedAt = t
}

// SetRound sets the round markers independently, allowing inconsistent
// (answeredInRound < roundID) readings.
func (f *Feed) SetRound(roundID, answeredInRound uint64) {
	f.roundID = roundID
	f.answeredInRound = answeredInRound
}

// Fail scripts a feed outage; pass nil to clear it.
func (f *Feed) Fail(err error) {
	f.err = err
}
