package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/kgld-labs/goldbank/testutil/keeper"
	"github.com/kgld-labs/goldbank/x/vault/types"
)

const alice = "alice"

// TestDepositNative_Valid tests a successful native deposit
func TestDepositNative_Valid(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())

	err := f.Keeper.DepositNative(alice, math.NewInt(10_000))
	require.NoError(t, err)

	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(10_000)))
	require.Equal(t, uint64(1), f.Keeper.BankStats().DepositCount)
	require.True(t, f.Keeper.NativePool().Equal(math.NewInt(10_000)))

	// 10000 units at a price of 2000 per whole unit
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(20_000_000)))

	last := f.Events.Last()
	require.Equal(t, types.EventTypeDepositCompleted, last.Type)
}

// TestDepositNative_Zero tests rejection of a zero deposit
func TestDepositNative_Zero(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())

	err := f.Keeper.DepositNative(alice, math.ZeroInt())
	require.ErrorIs(t, err, types.ErrZeroDeposit)
	require.Equal(t, uint64(0), f.Keeper.BankStats().DepositCount)
}

// TestDepositNative_CountCap tests the global deposit count cap
func TestDepositNative_CountCap(t *testing.T) {
	params := keepertest.TestParams()
	params.DepositCountCap = 3
	f := keepertest.VaultKeeper(t, params)

	for i := 0; i < 3; i++ {
		require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(100)))
	}
	require.Equal(t, uint64(3), f.Keeper.BankStats().DepositCount)

	err := f.Keeper.DepositNative(alice, math.NewInt(100))
	require.ErrorIs(t, err, types.ErrDepositCapReached)
	require.Equal(t, uint64(3), f.Keeper.BankStats().DepositCount)
	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(300)))
}

// TestDepositNative_AggregateCap tests the aggregate valuation cap
func TestDepositNative_AggregateCap(t *testing.T) {
	params := keepertest.TestParams()
	params.AggregateValuationCap = math.NewInt(1_000_000)
	f := keepertest.VaultKeeper(t, params)

	// 400 units * 2000 = 800,000 valuation units, under the cap
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(400)))
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(800_000)))

	// 101 more units would reach 1,002,000 and breach the cap
	err := f.Keeper.DepositNative(alice, math.NewInt(101))
	require.ErrorIs(t, err, types.ErrAggregateCapExceeded)
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(800_000)))
	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(400)))
	require.Equal(t, uint64(1), f.Keeper.BankStats().DepositCount)

	// exactly reaching the cap is allowed
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(100)))
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(1_000_000)))
}

// TestWithdrawNative_Valid tests a successful native withdrawal
func TestWithdrawNative_Valid(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(10_000)))

	err := f.Keeper.WithdrawNative(alice, math.NewInt(5_000))
	require.NoError(t, err)

	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(5_000)))
	require.Equal(t, uint64(1), f.Keeper.BankStats().WithdrawalCount)
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(10_000_000)))
	require.True(t, f.Keeper.NativePool().Equal(math.NewInt(5_000)))

	require.Len(t, f.Native.Sends, 1)
	require.Equal(t, alice, f.Native.Sends[0].To)
	require.True(t, f.Native.Sends[0].Amount.Equal(math.NewInt(5_000)))
}

// TestWithdrawNative_CapExceeded tests the per-withdrawal cap, which applies
// regardless of balance sufficiency
func TestWithdrawNative_CapExceeded(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(10_000)))

	err := f.Keeper.WithdrawNative(alice, math.NewInt(60_000))
	require.ErrorIs(t, err, types.ErrCapExceeded)
	require.Contains(t, err.Error(), "60000")
	require.Contains(t, err.Error(), "50000")
	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(10_000)))
	require.Equal(t, uint64(0), f.Keeper.BankStats().WithdrawalCount)
}

// TestWithdrawNative_InsufficientBalance tests balance enforcement under the cap
func TestWithdrawNative_InsufficientBalance(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(1_000)))

	err := f.Keeper.WithdrawNative(alice, math.NewInt(2_000))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(1_000)))
	require.Empty(t, f.Native.Sends)
}

// TestWithdrawNative_TransferFailure tests that a failed outbound send
// reverts the balance, the liability and the pool
func TestWithdrawNative_TransferFailure(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(10_000)))
	liability := f.Keeper.AggregateLiability()

	f.Native.FailNextSend()
	err := f.Keeper.WithdrawNative(alice, math.NewInt(5_000))
	require.ErrorIs(t, err, types.ErrTransferFailed)

	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(10_000)))
	require.True(t, f.Keeper.AggregateLiability().Equal(liability))
	require.True(t, f.Keeper.NativePool().Equal(math.NewInt(10_000)))
	require.Equal(t, uint64(0), f.Keeper.BankStats().WithdrawalCount)
	require.False(t, f.Keeper.Locked())
}

// TestWithdrawNative_PoolDrained tests that a withdrawal the pool cannot
// fund fails as a transfer failure without state changes
func TestWithdrawNative_PoolDrained(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(10_000)))

	// drain the shared pool below alice's ledger balance via a swap
	f.FundUserTokens(t, "bob", math.NewInt(500))
	_, err := f.Keeper.SwapTokenForNative("bob", math.NewInt(190_000))
	require.Error(t, err) // bob holds too few tokens for this
	out, err := f.Keeper.SwapTokenForNative("bob", math.NewInt(400))
	require.NoError(t, err)
	require.True(t, out.Equal(math.NewInt(20))) // 400 * 100 / 2000

	drainedPool := f.Keeper.NativePool()
	require.True(t, drainedPool.LT(math.NewInt(10_000)))

	err = f.Keeper.WithdrawNative(alice, math.NewInt(10_000))
	require.ErrorIs(t, err, types.ErrTransferFailed)
	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(10_000)))
	require.True(t, f.Keeper.NativePool().Equal(drainedPool))
}

// TestLedger_BalanceConservation tests that the tracked balance is the sum
// of successful deposits minus successful withdrawals, never negative
func TestLedger_BalanceConservation(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())

	deposits := []int64{100, 2_500, 42}
	withdrawals := []int64{50, 1_000}
	for _, d := range deposits {
		require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(d)))
	}
	for _, w := range withdrawals {
		require.NoError(t, f.Keeper.WithdrawNative(alice, math.NewInt(w)))
	}

	require.True(t, f.Keeper.NativeBalanceOf(alice).Equal(math.NewInt(100+2_500+42-50-1_000)))

	// draining to zero works, one unit past it does not
	require.NoError(t, f.Keeper.WithdrawNative(alice, f.Keeper.NativeBalanceOf(alice)))
	require.True(t, f.Keeper.NativeBalanceOf(alice).IsZero())
	err := f.Keeper.WithdrawNative(alice, math.NewInt(1))
	require.ErrorIs(t, err, types.ErrInsufficientBalance)
}

// TestLedger_LiabilityFloorsAtZero tests that a price rise between deposit
// and withdrawal cannot push the liability negative
func TestLedger_LiabilityFloorsAtZero(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(1_000)))
	require.True(t, f.Keeper.AggregateLiability().Equal(math.NewInt(2_000_000)))

	// the withdrawal is valued at a much higher price than the deposit was
	f.NativeFeed.SetPrice(keepertest.Price8(5000))
	require.NoError(t, f.Keeper.WithdrawNative(alice, math.NewInt(1_000)))
	require.True(t, f.Keeper.AggregateLiability().IsZero())
}

// TestBankStats_CountersAreGlobal tests that counters span users and assets
func TestBankStats_CountersAreGlobal(t *testing.T) {
	f := keepertest.VaultKeeper(t, keepertest.TestParams())
	f.FundUserTokens(t, "bob", math.NewInt(1_000))

	require.NoError(t, f.Keeper.DepositNative(alice, math.NewInt(100)))
	require.NoError(t, f.Keeper.DepositToken("bob", math.NewInt(500)))
	require.NoError(t, f.Keeper.WithdrawNative(alice, math.NewInt(40)))
	require.NoError(t, f.Keeper.WithdrawToken("bob", math.NewInt(200)))

	stats := f.Keeper.BankStats()
	require.Equal(t, uint64(2), stats.DepositCount)
	require.Equal(t, uint64(2), stats.WithdrawalCount)
}
