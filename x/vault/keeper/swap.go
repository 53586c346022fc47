package keeper

import (
	"time"

	"cosmossdk.io/math"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// Swap direction labels used in metrics.
const (
	SwapNativeToToken = "native_to_token"
	SwapTokenToNative = "token_to_native"
)

// SwapNativeForToken exchanges incoming native value for tokens at oracle
// prices. The two feeds are read independently on every call; the legs may
// carry different timestamps within the staleness window. The native input
// joins the shared pool with no ledger credit, and the token output is
// funded from the vault's total token holdings.
//
//	tokenOut = nativeIn * nativePrice * tokenUnitScale / tokenPrice
func (k *Keeper) SwapNativeForToken(trader string, nativeIn math.Int) (math.Int, error) {
	tokenOut := math.ZeroInt()
	err := k.guarded("swap_native_for_token", trader, func(opID string) error {
		start := time.Now()
		defer k.observeSwapLatency(start)

		if nativeIn.IsNil() || !nativeIn.IsPositive() {
			k.countSwap(SwapNativeToToken, "rejected")
			return types.ErrZeroAmount.Wrapf("trader %s", trader)
		}

		nativePrice, err := k.readPrice(k.nativeFeed, FeedNative)
		if err != nil {
			k.countSwap(SwapNativeToToken, "oracle_failed")
			return err
		}
		tokenPrice, err := k.readPrice(k.tokenFeed, FeedToken)
		if err != nil {
			k.countSwap(SwapNativeToToken, "oracle_failed")
			return err
		}

		out := nativeIn.Mul(nativePrice).Mul(k.params.TokenUnitScale).Quo(tokenPrice)
		holdings := k.token.BalanceOf(k.address)
		if out.GT(holdings) {
			k.countSwap(SwapNativeToToken, "rejected")
			return types.ErrInsufficientLiquidity.Wrapf(
				"need %s tokens, vault holds %s", out, holdings,
			)
		}

		prevPool := k.nativePool
		k.nativePool = k.nativePool.Add(nativeIn)

		if err := k.token.Transfer(k.address, trader, out); err != nil {
			k.nativePool = prevPool
			k.countSwap(SwapNativeToToken, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("token send to %s: %v", trader, err)
		}

		tokenOut = out
		k.countSwap(SwapNativeToToken, "ok")
		k.gaugePool()
		k.emit(types.NewEvent(types.EventTypeSwapNativeToToken,
			types.NewAttribute(types.AttributeKeyActor, trader),
			types.NewAttribute(types.AttributeKeyAmountIn, nativeIn.String()),
			types.NewAttribute(types.AttributeKeyAmountOut, out.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
	return tokenOut, err
}

// SwapTokenForNative exchanges tokens for native value from the shared
// pool. Token custody precedes the native payout (pull-based staging);
// if the payout fails, the pulled tokens are returned and the pool state
// restored so the operation has no effect.
//
//	nativeOut = tokenIn * tokenPrice / (nativePrice * tokenUnitScale)
func (k *Keeper) SwapTokenForNative(trader string, tokenIn math.Int) (math.Int, error) {
	nativeOut := math.ZeroInt()
	err := k.guarded("swap_token_for_native", trader, func(opID string) error {
		start := time.Now()
		defer k.observeSwapLatency(start)

		if tokenIn.IsNil() || !tokenIn.IsPositive() {
			k.countSwap(SwapTokenToNative, "rejected")
			return types.ErrZeroAmount.Wrapf("trader %s", trader)
		}

		nativePrice, err := k.readPrice(k.nativeFeed, FeedNative)
		if err != nil {
			k.countSwap(SwapTokenToNative, "oracle_failed")
			return err
		}
		tokenPrice, err := k.readPrice(k.tokenFeed, FeedToken)
		if err != nil {
			k.countSwap(SwapTokenToNative, "oracle_failed")
			return err
		}

		out := tokenIn.Mul(tokenPrice).Quo(nativePrice.Mul(k.params.TokenUnitScale))
		if out.GT(k.nativePool) {
			k.countSwap(SwapTokenToNative, "rejected")
			return types.ErrInsufficientLiquidity.Wrapf(
				"need %s native, pool holds %s", out, k.nativePool,
			)
		}

		if err := k.token.TransferFrom(k.address, trader, k.address, tokenIn); err != nil {
			k.countSwap(SwapTokenToNative, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("token pull from %s: %v", trader, err)
		}

		prevPool := k.nativePool
		k.nativePool = k.nativePool.Sub(out)

		if err := k.native.Send(trader, out); err != nil {
			k.nativePool = prevPool
			if refundErr := k.token.Transfer(k.address, trader, tokenIn); refundErr != nil {
				k.logger.Error("token refund failed after native send failure",
					"trader", trader,
					"amount", tokenIn,
					"op_id", opID,
					"error", refundErr,
				)
			}
			k.countSwap(SwapTokenToNative, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("native send to %s: %v", trader, err)
		}

		nativeOut = out
		k.countSwap(SwapTokenToNative, "ok")
		k.gaugePool()
		k.emit(types.NewEvent(types.EventTypeSwapTokenToNative,
			types.NewAttribute(types.AttributeKeyActor, trader),
			types.NewAttribute(types.AttributeKeyAmountIn, tokenIn.String()),
			types.NewAttribute(types.AttributeKeyAmountOut, out.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
	return nativeOut, err
}

// FundNativePool adds unsolicited native value to the shared pool with no
// ledger credit and no counter change. Swap liquidity and deposit-backing
// liquidity are deliberately commingled; this is how operators replenish
// swap liquidity.
func (k *Keeper) FundNativePool(funder string, amount math.Int) error {
	return k.guarded("fund_native_pool", funder, func(opID string) error {
		if amount.IsNil() || !amount.IsPositive() {
			return types.ErrZeroAmount.Wrapf("funder %s", funder)
		}

		k.nativePool = k.nativePool.Add(amount)
		k.gaugePool()
		k.emit(types.NewEvent(types.EventTypePoolFunded,
			types.NewAttribute(types.AttributeKeyActor, funder),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
}

func (k *Keeper) countSwap(direction, status string) {
	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(direction, status).Inc()
	}
}

func (k *Keeper) observeSwapLatency(start time.Time) {
	if k.metrics != nil {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
	}
}
