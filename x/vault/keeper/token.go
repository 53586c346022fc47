package keeper

import (
	"cosmossdk.io/math"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// Asset labels used in metrics.
const (
	AssetNative = "native"
	AssetToken  = "token"
)

// DepositToken credits the depositor's token balance. Token transfers are
// pull-based, so custody precedes the credit: the vault pulls the amount
// via the token's transfer-from capability before touching the ledger,
// the inverse of the native-asset ordering.
func (k *Keeper) DepositToken(depositor string, amount math.Int) error {
	return k.guarded("deposit_token", depositor, func(opID string) error {
		if amount.IsNil() || !amount.IsPositive() {
			k.countDeposit(AssetToken, "rejected")
			return types.ErrZeroDeposit.Wrapf("depositor %s", depositor)
		}
		if k.depositCount+1 > k.params.DepositCountCap {
			k.countDeposit(AssetToken, "rejected")
			return types.ErrDepositCapReached.Wrapf(
				"deposit count %d has reached cap %d", k.depositCount, k.params.DepositCountCap,
			)
		}

		if err := k.token.TransferFrom(k.address, depositor, k.address, amount); err != nil {
			k.countDeposit(AssetToken, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("token pull from %s: %v", depositor, err)
		}

		k.tokenBalances[depositor] = k.TokenBalanceOf(depositor).Add(amount)
		k.depositCount++

		k.countDeposit(AssetToken, "ok")
		k.emit(types.NewEvent(types.EventTypeTokenDepositCompleted,
			types.NewAttribute(types.AttributeKeyActor, depositor),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
}

// WithdrawToken debits the withdrawer's token balance and transfers the
// amount out. A zero TokenWithdrawCap disables the cap check. The debit
// precedes the outbound transfer and is reverted if the transfer fails.
func (k *Keeper) WithdrawToken(withdrawer string, amount math.Int) error {
	return k.guarded("withdraw_token", withdrawer, func(opID string) error {
		if amount.IsNil() || !amount.IsPositive() {
			k.countWithdrawal(AssetToken, "rejected")
			return types.ErrZeroAmount.Wrapf("withdrawer %s", withdrawer)
		}
		if !k.params.TokenWithdrawCap.IsZero() && amount.GT(k.params.TokenWithdrawCap) {
			k.countWithdrawal(AssetToken, "rejected")
			return types.ErrCapExceeded.Wrapf(
				"requested %s exceeds cap %s", amount, k.params.TokenWithdrawCap,
			)
		}
		balance := k.TokenBalanceOf(withdrawer)
		if amount.GT(balance) {
			k.countWithdrawal(AssetToken, "rejected")
			return types.ErrInsufficientBalance.Wrapf("have %s, need %s", balance, amount)
		}

		k.tokenBalances[withdrawer] = balance.Sub(amount)

		if err := k.token.Transfer(k.address, withdrawer, amount); err != nil {
			k.tokenBalances[withdrawer] = balance
			k.countWithdrawal(AssetToken, "transfer_failed")
			return types.ErrTransferFailed.Wrapf("token send to %s: %v", withdrawer, err)
		}

		k.withdrawalCount++
		k.countWithdrawal(AssetToken, "ok")
		k.emit(types.NewEvent(types.EventTypeTokenWithdrawCompleted,
			types.NewAttribute(types.AttributeKeyActor, withdrawer),
			types.NewAttribute(types.AttributeKeyAmount, amount.String()),
			types.NewAttribute(types.AttributeKeyOpID, opID),
		))
		return nil
	})
}
