package token

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// ModuleName defines the module name
const ModuleName = "token"

// Token module sentinel errors
var (
	ErrUnauthorized          = sdkerrors.Register(ModuleName, 2, "caller is not the issuer")
	ErrInsufficientBalance   = sdkerrors.Register(ModuleName, 3, "insufficient token balance")
	ErrInsufficientAllowance = sdkerrors.Register(ModuleName, 4, "insufficient allowance")
	ErrInvalidAmount         = sdkerrors.Register(ModuleName, 5, "invalid token amount")
	ErrTransferDisabled      = sdkerrors.Register(ModuleName, 6, "transfer disabled")
)

type allowanceKey struct {
	owner   string
	spender string
}

// Token is an in-memory fungible token with issuer-controlled supply and
// standard transfer/allowance semantics. It implements the vault's
// TokenClient interface and stands in for the external token contract.
type Token struct {
	symbol   string
	decimals uint8
	issuer   string

	balances    map[string]math.Int
	allowances  map[allowanceKey]math.Int
	totalSupply math.Int

	// failNextTransfer makes the next outbound movement fail; vault tests
	// use it to exercise rollback paths.
	failNextTransfer bool
}

// New creates a token with zero supply.
func New(symbol string, decimals uint8, issuer string) *Token {
	return &Token{
		symbol:      symbol,
		decimals:    decimals,
		issuer:      issuer,
		balances:    make(map[string]math.Int),
		allowances:  make(map[allowanceKey]math.Int),
		totalSupply: math.ZeroInt(),
	}
}

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.symbol }

// Decimals returns the token's decimal places.
func (t *Token) Decimals() uint8 { return t.decimals }

// TotalSupply returns the minted supply.
func (t *Token) TotalSupply() math.Int { return t.totalSupply }

// BalanceOf returns the holder's balance in smallest units.
func (t *Token) BalanceOf(holder string) math.Int {
	if bal, ok := t.balances[holder]; ok {
		return bal
	}
	return math.ZeroInt()
}

// Allowance returns the amount spender may move from owner's account.
func (t *Token) Allowance(owner, spender string) math.Int {
	if a, ok := t.allowances[allowanceKey{owner, spender}]; ok {
		return a
	}
	return math.ZeroInt()
}

// Mint creates new supply for a recipient (issuer only).
func (t *Token) Mint(caller, to string, amount math.Int) error {
	if caller != t.issuer {
		return ErrUnauthorized.Wrapf("caller %s", caller)
	}
	if err := validAmount(amount); err != nil {
		return err
	}
	t.balances[to] = t.BalanceOf(to).Add(amount)
	t.totalSupply = t.totalSupply.Add(amount)
	return nil
}

// Approve sets spender's allowance over the caller's account.
func (t *Token) Approve(owner, spender string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("allowance %s", amount)
	}
	t.allowances[allowanceKey{owner, spender}] = amount
	return nil
}

// Transfer moves tokens from the caller's own account.
func (t *Token) Transfer(from, to string, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	return t.move(from, to, amount)
}

// TransferFrom moves tokens on behalf of another account, consuming the
// spender's allowance.
func (t *Token) TransferFrom(spender, from, to string, amount math.Int) error {
	if err := validAmount(amount); err != nil {
		return err
	}
	allowance := t.Allowance(from, spender)
	if amount.GT(allowance) {
		return ErrInsufficientAllowance.Wrapf("allowance %s, need %s", allowance, amount)
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	t.allowances[allowanceKey{from, spender}] = allowance.Sub(amount)
	return nil
}

// FailNextTransfer makes the next Transfer or TransferFrom fail. Used by
// tests to exercise rollback behavior in callers.
func (t *Token) FailNextTransfer() {
	t.failNextTransfer = true
}

func (t *Token) move(from, to string, amount math.Int) error {
	if t.failNextTransfer {
		t.failNextTransfer = false
		return ErrTransferDisabled.Wrap("transfer rejected by failure injection")
	}
	balance := t.BalanceOf(from)
	if amount.GT(balance) {
		return ErrInsufficientBalance.Wrapf("have %s, need %s", balance, amount)
	}
	t.balances[from] = balance.Sub(amount)
	t.balances[to] = t.BalanceOf(to).Add(amount)
	return nil
}

func validAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAmount.Wrapf("amount %s", amount)
	}
	return nil
}
