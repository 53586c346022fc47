package types

// Event types for the vault module
const (
	EventTypeDepositCompleted       = "deposit_completed"
	EventTypeWithdrawalCompleted    = "withdrawal_completed"
	EventTypeTokenDepositCompleted  = "token_deposit_completed"
	EventTypeTokenWithdrawCompleted = "token_withdrawal_completed"
	EventTypeSwapNativeToToken      = "swap_native_to_token"
	EventTypeSwapTokenToNative      = "swap_token_to_native"
	EventTypeOracleDelayUpdated     = "oracle_delay_updated"
	EventTypePoolFunded             = "pool_funded"
	EventTypeVaultPaused            = "vault_paused"
	EventTypeVaultUnpaused          = "vault_unpaused"
)

// Event attribute keys
const (
	AttributeKeyActor     = "actor"
	AttributeKeyAmount    = "amount"
	AttributeKeyAmountIn  = "amount_in"
	AttributeKeyAmountOut = "amount_out"
	AttributeKeyDelay     = "delay"
	AttributeKeyOpID      = "op_id"
)

// Attribute is a single key/value pair on an emitted event.
type Attribute struct {
	Key   string
	Value string
}

// Event is a notification produced by a completed vault operation.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewEvent constructs an event with the given attributes.
func NewEvent(eventType string, attrs ...Attribute) Event {
	return Event{Type: eventType, Attributes: attrs}
}

// NewAttribute constructs a single event attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Emitter consumes vault notifications. Implementations must not call back
// into the vault from Emit; events are delivered while the operation lock
// is still held.
type Emitter interface {
	Emit(event Event)
}
