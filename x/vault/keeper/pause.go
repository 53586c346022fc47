package keeper

import (
	"time"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// IsPaused reports whether state-mutating operations are currently gated.
func (k *Keeper) IsPaused() bool {
	return k.paused
}

// Pause halts all state-mutating vault operations (owner only).
func (k *Keeper) Pause(caller string) error {
	if err := k.requireOwner(caller); err != nil {
		return err
	}
	if k.paused {
		return types.ErrPaused.Wrap("vault is already paused")
	}

	k.paused = true
	if k.metrics != nil {
		k.metrics.Paused.Set(1)
	}
	k.logger.Info("vault paused", "owner", caller)
	k.emit(types.NewEvent(types.EventTypeVaultPaused,
		types.NewAttribute(types.AttributeKeyActor, caller),
	))
	return nil
}

// Unpause resumes vault operations (owner only).
func (k *Keeper) Unpause(caller string) error {
	if err := k.requireOwner(caller); err != nil {
		return err
	}
	if !k.paused {
		return types.ErrInvalidParams.Wrap("vault is not paused")
	}

	k.paused = false
	if k.metrics != nil {
		k.metrics.Paused.Set(0)
	}
	k.logger.Info("vault unpaused", "owner", caller)
	k.emit(types.NewEvent(types.EventTypeVaultUnpaused,
		types.NewAttribute(types.AttributeKeyActor, caller),
	))
	return nil
}

// MaxOracleDelay returns the current staleness window for oracle readings.
func (k *Keeper) MaxOracleDelay() time.Duration {
	return k.maxOracleDelay
}

// SetMaxOracleDelay adjusts the oracle staleness window (owner only).
func (k *Keeper) SetMaxOracleDelay(caller string, delay time.Duration) error {
	if err := k.requireOwner(caller); err != nil {
		return err
	}
	if delay <= 0 {
		return types.ErrInvalidParams.Wrapf("max oracle delay must be positive, got %s", delay)
	}

	k.maxOracleDelay = delay
	k.logger.Info("oracle delay updated", "owner", caller, "delay", delay)
	k.emit(types.NewEvent(types.EventTypeOracleDelayUpdated,
		types.NewAttribute(types.AttributeKeyActor, caller),
		types.NewAttribute(types.AttributeKeyDelay, delay.String()),
	))
	return nil
}

func (k *Keeper) requireOwner(caller string) error {
	if caller != k.params.Owner {
		return types.ErrUnauthorized.Wrapf("caller %s is not the vault owner", caller)
	}
	return nil
}
