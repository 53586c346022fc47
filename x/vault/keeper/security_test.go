package keeper_test

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/kgld-labs/goldbank/testutil/keeper"
	"github.com/kgld-labs/goldbank/x/oraclesim"
	"github.com/kgld-labs/goldbank/x/token"
	"github.com/kgld-labs/goldbank/x/vault/keeper"
	"github.com/kgld-labs/goldbank/x/vault/types"
)

// reentrantNative attempts another guarded operation from inside the
// in-flight outbound transfer, the way a transfer callback would.
type reentrantNative struct {
	k       *keeper.Keeper
	attempt func(k *keeper.Keeper) error
	result  error
}

func (n *reentrantNative) Send(to string, amount math.Int) error {
	n.result = n.attempt(n.k)
	return nil
}

// TestReentrancy_BlockedDuringTransfer tests that a guarded operation
// invoked from an in-flight transfer fails with the reentrancy error and
// that the lock is free again afterwards
func TestReentrancy_BlockedDuringTransfer(t *testing.T) {
	native := &reentrantNative{
		attempt: func(k *keeper.Keeper) error {
			return k.DepositNative("attacker", math.NewInt(1))
		},
	}
	k := newKeeperWithNative(t, native)
	native.k = k

	require.NoError(t, k.DepositNative(alice, math.NewInt(10_000)))
	require.NoError(t, k.WithdrawNative(alice, math.NewInt(100)))

	require.ErrorIs(t, native.result, types.ErrReentrancy)
	require.False(t, k.Locked())

	// the nested call took no effect
	require.True(t, k.NativeBalanceOf("attacker").IsZero())

	// a fresh operation succeeds once the outer one returned
	require.NoError(t, k.WithdrawNative(alice, math.NewInt(100)))
}

// TestReentrancy_BlocksAllGuardedOperations tests that every guarded entry
// point is rejected while another is in flight
func TestReentrancy_BlocksAllGuardedOperations(t *testing.T) {
	attempts := map[string]func(k *keeper.Keeper) error{
		"deposit_native": func(k *keeper.Keeper) error {
			return k.DepositNative("attacker", math.NewInt(1))
		},
		"withdraw_native": func(k *keeper.Keeper) error {
			return k.WithdrawNative("attacker", math.NewInt(1))
		},
		"deposit_token": func(k *keeper.Keeper) error {
			return k.DepositToken("attacker", math.NewInt(1))
		},
		"withdraw_token": func(k *keeper.Keeper) error {
			return k.WithdrawToken("attacker", math.NewInt(1))
		},
		"swap_native_for_token": func(k *keeper.Keeper) error {
			_, err := k.SwapNativeForToken("attacker", math.NewInt(1))
			return err
		},
		"swap_token_for_native": func(k *keeper.Keeper) error {
			_, err := k.SwapTokenForNative("attacker", math.NewInt(1))
			return err
		},
		"fund_native_pool": func(k *keeper.Keeper) error {
			return k.FundNativePool("attacker", math.NewInt(1))
		},
	}

	for name, attempt := range attempts {
		t.Run(name, func(t *testing.T) {
			native := &reentrantNative{attempt: attempt}
			k := newKeeperWithNative(t, native)
			native.k = k

			require.NoError(t, k.DepositNative(alice, math.NewInt(10_000)))
			require.NoError(t, k.WithdrawNative(alice, math.NewInt(100)))
			require.ErrorIs(t, native.result, types.ErrReentrancy)
			require.False(t, k.Locked())
		})
	}
}

// TestPause_GatesMutations tests that paused vaults reject every
// state-mutating operation and resume after unpause
func TestPause_GatesMutations(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(1_000)))

	require.NoError(t, f.Keeper.Pause(keepertest.Owner))
	require.True(t, f.Keeper.IsPaused())

	require.ErrorIs(t, f.Keeper.DepositNative(alice, math.NewInt(1)), types.ErrPaused)
	require.ErrorIs(t, f.Keeper.WithdrawNative(alice, math.NewInt(1)), types.ErrPaused)
	require.ErrorIs(t, f.Keeper.DepositToken(alice, math.NewInt(1)), types.ErrPaused)
	require.ErrorIs(t, f.Keeper.WithdrawToken(alice, math.NewInt(1)), types.ErrPaused)
	_, err := f.Keeper.SwapNativeForToken(alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrPaused)
	_, err = f.Keeper.SwapTokenForNative(alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrPaused)
	require.ErrorIs(t, f.Keeper.FundNativePool(alice, math.NewInt(1)), types.ErrPaused)

	require.NoError(t, f.Keeper.Unpause(keepertest.Owner))
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(1)))
}

// TestPause_OwnerOnly tests owner gating of pause, unpause and delay changes
func TestPause_OwnerOnly(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())

	require.ErrorIs(t, f.Keeper.Pause("mallory"), types.ErrUnauthorized)
	require.NoError(t, f.Keeper.Pause(keepertest.Owner))
	require.ErrorIs(t, f.Keeper.Unpause("mallory"), types.ErrUnauthorized)
	require.NoError(t, f.Keeper.Unpause(keepertest.Owner))

	require.ErrorIs(t, f.Keeper.SetMaxOracleDelay("mallory", 1), types.ErrUnauthorized)
}

// TestPause_DoubleToggle tests the already-paused and not-paused errors
func TestPause_DoubleToggle(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())

	require.Error(t, f.Keeper.Unpause(keepertest.Owner))
	require.NoError(t, f.Keeper.Pause(keepertest.Owner))
	require.ErrorIs(t, f.Keeper.Pause(keepertest.Owner), types.ErrPaused)
}

// newKeeperWithNative builds a keeper around a custom native client.
func newKeeperWithNative(t *testing.T, native types.NativeClient) *keeper.Keeper {
	t.Helper()

	tok := token.New("KGLD", 8, keepertest.TokenIssuer)
	require.NoError(t, tok.Mint(keepertest.TokenIssuer, keepertest.VaultAddr, math.NewInt(1_000_000)))

	k, err := keeper.NewKeeper(
		log.NewNopLogger(),
		keepertest.VaultAddr,
		keepertest.TestParams(),
		tok,
		native,
		oraclesim.NewFeed(keepertest.Price8(2000)),
		oraclesim.NewFeed(keepertest.Price8(100)),
	)
	require.NoError(t, err)
	return k
}
