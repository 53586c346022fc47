package keeper

import (
	"cosmossdk.io/math"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// DepositNative credits the depositor's native balance. The native value is
// push-based: amount arrives with the call and joins the shared pool. All
// checks, including the fresh valuation of the deposit, run before any
// state changes.
func (k *Keeper) DepositNative(depositor string, amount math.Int) error {
	return k.guarded("deposit_native", depositor, func(opID string) error {
		if amount.IsNil() || !amount.IsPositive() {
			k.countDeposit(AssetNative, "rejected")
			return types.ErrZeroDeposit.Wrapf("depositor %s", depositor)
		}
		if k.depositCount+1 > k.params.DepositCountCap {
			k.countDeposit(AssetNative, "rejected")
			return types.ErrDepositCapReached.Wrapf(
				"deposit count %d has reached cap %d", k.depositCount, k.params.DepositCountCap,
			)
		}

		delta, err := k.NativeToValuation(amount)
		if err != nil {
			k.countDeposit(AssetNative, "oracle_failed")
			return err
		}
		if !k.params.AggregateValuationCap.IsZero() {
			projected := k.aggregateLiability.Add(delta)
			if projected.GT(k.params.AggregateValuationCap) {
				k.countDeposit(AssetNative, "rejected")
				return types.ErrAggregateCapExceeded.Wrapf(
					"liability %s plus delta %s exceeds cap %s",
					k.aggregateLiability, delta, k.params.AggregateValuationCap,
				)
			}
		}

		k.increaseLiability(delta)
		k.nativeBalances[depositor] = k.NativeBalanceOf(depositor).Add(amount)
		k.nativePool = k.nativePool.Add(amount)
		k.depositCount++

		k.countDeposit(AssetNative, "ok")
		k.gaugePool()
		k.emit(types.NewEvent(types.EventTypeDepositCompleted,
			types.NewAttribute(types.AttributeKeyActor, depositor),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
}

// WithdrawNative debits the withdrawer's native balance and pushes the
// amount out through the native client. The debit, the liability decrease
// and the pool debit all precede the outbound transfer; a failed transfer
// reverts them so the whole operation takes effect as one unit.
func (k *Keeper) WithdrawNative(withdrawer string, amount math.Int) error {
	return k.guarded("withdraw_native", withdrawer, func(opID string) error {
		if amount.IsNil() || !amount.IsPositive() {
			k.countWithdrawal(AssetNative, "rejected")
			return types.ErrZeroAmount.Wrapf("withdrawer %s", withdrawer)
		}
		if amount.GT(k.params.NativeWithdrawCap) {
			k.countWithdrawal(AssetNative, "rejected")
			return types.ErrCapExceeded.Wrapf(
				"requested %s exceeds cap %s", amount, k.params.NativeWithdrawCap,
			)
		}
		balance := k.NativeBalanceOf(withdrawer)
		if amount.GT(balance) {
			k.countWithdrawal(AssetNative, "rejected")
			return types.ErrInsufficientBalance.Wrapf("have %s, need %s", balance, amount)
		}

		delta, err := k.NativeToValuation(amount)
		if err != nil {
			k.countWithdrawal(AssetNative, "oracle_failed")
			return err
		}

		prevLiability := k.aggregateLiability
		prevPool := k.nativePool
		k.nativeBalances[withdrawer] = balance.Sub(amount)
		k.decreaseLiability(delta)
		k.nativePool = k.nativePool.Sub(amount)

		if k.nativePool.IsNegative() {
			k.revertNativeWithdrawal(withdrawer, balance, prevLiability, prevPool)
			k.countWithdrawal(AssetNative, "transfer_failed")
			return types.ErrTransferFailed.Wrapf(
				"native pool holds %s, need %s", prevPool, amount,
			)
		}
		if err := k.native.Send(withdrawer, amount); err != nil {
			k.revertNativeWithdrawal(withdrawer, balance, prevLiability, prevPool)
			k.countWithdrawal(AssetNative, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("native send to %s: %v", withdrawer, err)
		}

		k.withdrawalCount++
		k.countWithdrawal(AssetNative, "ok")
		k.gaugePool()
		k.emit(types.NewEvent(types.EventTypeWithdrawalCompleted,
			types.NewAttribute(types.AttributeKeyActor, withdrawer),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
}

func (k *Keeper) revertNativeWithdrawal(withdrawer string, balance, liability, pool math.Int) {
	k.nativeBalances[withdrawer] = balance
	k.aggregateLiability = liability
	k.nativePool = pool
	k.gaugeLiability()
}

func (k *Keeper) countDeposit(asset, status string) {
	if k.metrics != nil {
		k.metrics.DepositsTotal.WithLabelValues(asset, status).Inc()
	}
}

func (k *Keeper) countWithdrawal(asset, status string) {
	if k.metrics != nil {
		k.metrics.WithdrawalsTotal.WithLabelValues(asset, status).Inc()
	}
}

func (k *Keeper) gaugePool() {
	if k.metrics != nil {
		f, err := k.nativePool.ToLegacyDec().Float64()
		if err == nil {
			k.metrics.NativePool.Set(f)
		}
	}
}
