package keeper

import (
	"cosmossdk.io/math"
)

// NativeToValuation converts a native amount in smallest units to the
// 8-decimal valuation unit using a fresh oracle price. The division
// truncates toward zero; cap-boundary behavior depends on that direction.
func (k *Keeper) NativeToValuation(amount math.Int) (math.Int, error) {
	price, err := k.readPrice(k.nativeFeed, FeedNative)
	if err != nil {
		return math.ZeroInt(), err
	}
	return amount.Mul(price).Quo(k.params.NativeUnitScale), nil
}

// increaseLiability adds a valuation delta to the aggregate liability.
func (k *Keeper) increaseLiability(delta math.Int) {
	k.aggregateLiability = k.aggregateLiability.Add(delta)
	k.gaugeLiability()
}

// decreaseLiability subtracts a valuation delta, flooring at zero. Price
// movement between a deposit and its withdrawal can make the delta exceed
// the tracked liability; the liability never goes negative.
func (k *Keeper) decreaseLiability(delta math.Int) {
	if delta.GT(k.aggregateLiability) {
		k.aggregateLiability = math.ZeroInt()
	} else {
		k.aggregateLiability = k.aggregateLiability.Sub(delta)
	}
	k.gaugeLiability()
}

func (k *Keeper) gaugeLiability() {
	if k.metrics != nil {
		f, err := k.aggregateLiability.ToLegacyDec().Float64()
		if err == nil {
			k.metrics.AggregateLiability.Set(f)
		}
	}
}
