package keeper

import (
	"errors"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/kgld-labs/goldbank/x/oraclesim"
	"github.com/kgld-labs/goldbank/x/token"
	"github.com/kgld-labs/goldbank/x/vault/keeper"
	"github.com/kgld-labs/goldbank/x/vault/types"
)

// Well-known test identities.
const (
	Owner       = "owner"
	VaultAddr   = "goldbank-vault"
	TokenIssuer = "mint"
)

// Send records one outbound native transfer.
type Send struct {
	To     string
	Amount math.Int
}

// NativeRecorder implements the native client; it records sends and can be
// scripted to fail.
type NativeRecorder struct {
	Sends    []Send
	failNext bool
}

// Send records the transfer, or fails once if scripted to.
func (n *NativeRecorder) Send(to string, amount math.Int) error {
	if n.failNext {
		n.failNext = false
		return errors.New("native send rejected by failure injection")
	}
	n.Sends = append(n.Sends, Send{To: to, Amount: amount})
	return nil
}

// FailNextSend makes the next Send fail.
func (n *NativeRecorder) FailNextSend() {
	n.failNext = true
}

// EventRecorder collects emitted vault notifications.
type EventRecorder struct {
	Events []types.Event
}

// Emit implements types.Emitter.
func (r *EventRecorder) Emit(event types.Event) {
	r.Events = append(r.Events, event)
}

// Last returns the most recent event, or a zero event when none exist.
func (r *EventRecorder) Last() types.Event {
	if len(r.Events) == 0 {
		return types.Event{}
	}
	return r.Events[len(r.Events)-1]
}

// Fixture wires a vault keeper with scripted collaborators.
type Fixture struct {
	Keeper     *keeper.Keeper
	Token      *token.Token
	Native     *NativeRecorder
	NativeFeed *oraclesim.Feed
	TokenFeed  *oraclesim.Feed
	Events     *EventRecorder
}

// TestParams returns the cap configuration used across keeper tests:
// amounts in 8-decimal smallest units, optional caps disabled.
func TestParams() types.Params {
	return types.Params{
		Owner:                 Owner,
		NativeWithdrawCap:     math.NewInt(50_000),
		DepositCountCap:       20,
		TokenWithdrawCap:      math.ZeroInt(),
		AggregateValuationCap: math.ZeroInt(),
		MaxOracleDelay:        time.Hour,
		NativeUnitScale:       math.NewInt(100_000_000),
		TokenUnitScale:        math.OneInt(),
	}
}

// Price8 returns a whole-number price in 8-decimal fixed point.
func Price8(whole int64) math.Int {
	return math.NewInt(whole).Mul(math.NewInt(100_000_000))
}

// VaultKeeper creates a test vault with a native price of 2000 and a token
// price of 100 (so one native unit is worth 20 token units), and mints the
// vault a working token float for swaps.
func VaultKeeper(t testing.TB, params types.Params) *Fixture {
	t.Helper()

	tok := token.New("KGLD", 8, TokenIssuer)
	native := &NativeRecorder{}
	nativeFeed := oraclesim.NewFeed(Price8(2000))
	tokenFeed := oraclesim.NewFeed(Price8(100))
	events := &EventRecorder{}

	k, err := keeper.NewKeeper(
		log.NewNopLogger(),
		VaultAddr,
		params,
		tok,
		native,
		nativeFeed,
		tokenFeed,
		keeper.WithEmitter(events),
	)
	require.NoError(t, err)

	require.NoError(t, tok.Mint(TokenIssuer, VaultAddr, math.NewInt(1_000_000)))

	return &Fixture{
		Keeper:     k,
		Token:      tok,
		Native:     native,
		NativeFeed: nativeFeed,
		TokenFeed:  tokenFeed,
		Events:     events,
	}
}

// FundUserTokens mints tokens to a user and approves the vault to pull them.
func (f *Fixture) FundUserTokens(t testing.TB, user string, amount math.Int) {
	t.Helper()
	require.NoError(t, f.Token.Mint(TokenIssuer, user, amount))
	require.NoError(t, f.Token.Approve(user, VaultAddr, amount))
}
