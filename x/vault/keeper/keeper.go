package keeper

import (
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/kgld-labs/goldbank/x/vault/types"
)

// Keeper owns all mutable vault state: per-user balances for both asset
// kinds, the global counters, the aggregate liability, the shared native
// pool, and the pause/operation-lock flags. All mutations happen on a
// single logical thread; the operation lock exists to reject re-entry
// during in-flight external transfers, not to serialize concurrent callers.
type Keeper struct {
	logger  log.Logger
	params  types.Params
	address string

	token      types.TokenClient
	native     types.NativeClient
	nativeFeed types.PriceFeed
	tokenFeed  types.PriceFeed

	emitter types.Emitter
	metrics *VaultMetrics
	nowFn   func() time.Time

	// maxOracleDelay is the only owner-adjustable parameter.
	maxOracleDelay time.Duration

	nativeBalances map[string]math.Int
	tokenBalances  map[string]math.Int

	depositCount    uint64
	withdrawalCount uint64

	// aggregateLiability tracks the valuation of all outstanding native
	// balances, floored at zero.
	aggregateLiability math.Int

	// nativePool is the total native custody backing withdrawals and
	// swaps. Deposits, swap inflows and unsolicited funding commingle
	// here; it is distinct from the sum of ledger-tracked balances.
	nativePool math.Int

	paused   bool
	locked   bool
	lockedBy string
}

// Option configures optional keeper collaborators.
type Option func(*Keeper)

// WithEmitter wires a notification sink.
func WithEmitter(emitter types.Emitter) Option {
	return func(k *Keeper) { k.emitter = emitter }
}

// WithMetrics wires Prometheus metrics.
func WithMetrics(m *VaultMetrics) Option {
	return func(k *Keeper) { k.metrics = m }
}

// WithClock overrides the time source used for oracle staleness checks.
func WithClock(now func() time.Time) Option {
	return func(k *Keeper) { k.nowFn = now }
}

// NewKeeper creates a vault keeper. address is the custody account identity
// used with the token collaborator. Params are validated and immutable
// afterwards, except for the oracle delay.
func NewKeeper(
	logger log.Logger,
	address string,
	params types.Params,
	token types.TokenClient,
	native types.NativeClient,
	nativeFeed types.PriceFeed,
	tokenFeed types.PriceFeed,
	opts ...Option,
) (*Keeper, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if address == "" {
		return nil, types.ErrInvalidParams.Wrap("custody address cannot be empty")
	}
	if token == nil || native == nil || nativeFeed == nil || tokenFeed == nil {
		return nil, types.ErrInvalidParams.Wrap("all collaborators must be wired")
	}

	k := &Keeper{
		logger:             logger.With("module", types.ModuleName),
		params:             params,
		address:            address,
		token:              token,
		native:             native,
		nativeFeed:         nativeFeed,
		tokenFeed:          tokenFeed,
		nowFn:              time.Now,
		maxOracleDelay:     params.MaxOracleDelay,
		nativeBalances:     make(map[string]math.Int),
		tokenBalances:      make(map[string]math.Int),
		aggregateLiability: math.ZeroInt(),
		nativePool:         math.ZeroInt(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Logger returns the module logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// Address returns the vault's custody account identity.
func (k *Keeper) Address() string {
	return k.address
}

// Params returns the vault configuration.
func (k *Keeper) Params() types.Params {
	return k.params
}

// NativeBalanceOf returns a user's ledger-tracked native balance.
func (k *Keeper) NativeBalanceOf(user string) math.Int {
	if bal, ok := k.nativeBalances[user]; ok {
		return bal
	}
	return math.ZeroInt()
}

// TokenBalanceOf returns a user's ledger-tracked token balance.
func (k *Keeper) TokenBalanceOf(user string) math.Int {
	if bal, ok := k.tokenBalances[user]; ok {
		return bal
	}
	return math.ZeroInt()
}

// BankStats returns the global deposit and withdrawal counters.
func (k *Keeper) BankStats() types.BankStats {
	return types.BankStats{
		DepositCount:    k.depositCount,
		WithdrawalCount: k.withdrawalCount,
	}
}

// AggregateLiability returns the tracked valuation of outstanding native
// balances, in valuation units.
func (k *Keeper) AggregateLiability() math.Int {
	return k.aggregateLiability
}

// NativePool returns the shared native pool balance.
func (k *Keeper) NativePool() math.Int {
	return k.nativePool
}

// TokenPool returns the vault's current total token holdings.
func (k *Keeper) TokenPool() math.Int {
	return k.token.BalanceOf(k.address)
}

func (k *Keeper) emit(event types.Event) {
	if k.emitter != nil {
		k.emitter.Emit(event)
	}
}
