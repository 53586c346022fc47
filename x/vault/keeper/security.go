package keeper

import (
	"github.com/google/uuid"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// guarded wraps a state-mutating operation with the pause gate and the
// single-operation mutual-exclusion lock. The lock is released on every
// exit path, including panics, so a failed operation leaves the vault
// re-enterable. Reading prices, computing effects and mutating state all
// happen inside fn; the external transfer must be fn's last action.
func (k *Keeper) guarded(operation, actor string, fn func(opID string) error) error {
	if k.paused {
		return types.ErrPaused.Wrapf("operation %s rejected", operation)
	}
	if k.locked {
		if k.metrics != nil {
			k.metrics.ReentrancyBlocks.Inc()
		}
		return types.ErrReentrancy.Wrapf("operation %s attempted while %s is in flight", operation, k.lockedBy)
	}

	k.locked = true
	k.lockedBy = operation
	defer func() {
		k.locked = false
		k.lockedBy = ""
	}()

	opID := uuid.NewString()
	if err := fn(opID); err != nil {
		k.logger.Error("vault operation failed",
			"operation", operation,
			"actor", actor,
			"op_id", opID,
			"error", err,
		)
		return err
	}

	k.logger.Info("vault operation completed",
		"operation", operation,
		"actor", actor,
		"op_id", opID,
	)
	return nil
}

// Locked reports whether a guarded operation is currently in flight.
func (k *Keeper) Locked() bool {
	return k.locked
}
