package types

import (
	"errors"
	"testing"

	sdkerrors "cosmossdk.io/errors"
)

func TestErrorDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode uint32
	}{
		{"ErrZeroDeposit", ErrZeroDeposit, 2},
		{"ErrZeroAmount", ErrZeroAmount, 3},
		{"ErrCapExceeded", ErrCapExceeded, 4},
		{"ErrDepositCapReached", ErrDepositCapReached, 5},
		{"ErrAggregateCapExceeded", ErrAggregateCapExceeded, 6},
		{"ErrInsufficientBalance", ErrInsufficientBalance, 7},
		{"ErrInsufficientLiquidity", ErrInsufficientLiquidity, 8},
		{"ErrInvalidPrice", ErrInvalidPrice, 9},
		{"ErrTransferFailed", ErrTransferFailed, 10},
		{"ErrReentrancy", ErrReentrancy, 11},
		{"ErrUnauthorized", ErrUnauthorized, 12},
		{"ErrPaused", ErrPaused, 13},
		{"ErrInvalidParams", ErrInvalidParams, 14},
	}

	seen := make(map[uint32]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sdkErr, ok := tt.err.(*sdkerrors.Error)
			if !ok {
				t.Fatalf("%s is not a registered sdk error", tt.name)
			}
			if sdkErr.ABCICode() != tt.wantCode {
				t.Errorf("Expected code %d, got %d", tt.wantCode, sdkErr.ABCICode())
			}
			if sdkErr.Codespace() != ModuleName {
				t.Errorf("Expected codespace %s, got %s", ModuleName, sdkErr.Codespace())
			}
			if prev, dup := seen[sdkErr.ABCICode()]; dup {
				t.Errorf("Code %d reused by %s and %s", sdkErr.ABCICode(), prev, tt.name)
			}
			seen[sdkErr.ABCICode()] = tt.name
		})
	}
}

func TestErrorWrappingPreservesIdentity(t *testing.T) {
	wrapped := ErrCapExceeded.Wrapf("requested %d, cap %d", 60_000, 50_000)

	if !errors.Is(wrapped, ErrCapExceeded) {
		t.Error("Wrapped error lost its sentinel identity")
	}
	if errors.Is(wrapped, ErrInsufficientBalance) {
		t.Error("Wrapped error matched an unrelated sentinel")
	}
}
