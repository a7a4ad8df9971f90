package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrSelfTransfer occurs when source and destination are the same wallet.
	ErrSelfTransfer = errors.New("source and destination wallets are the same")

	// ErrInvalidAmount occurs when the requested amount is not strictly positive.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrCurrencyMismatch occurs when the two wallets hold different currencies.
	ErrCurrencyMismatch = errors.New("wallets have different currencies")

	// ErrInsufficientFunds occurs when the source wallet cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrConflict indicates the retry budget was exhausted by concurrent
	// modifications; the caller may retry the whole transfer.
	ErrConflict = errors.New("transfer conflict")
)

// WalletNotFoundError identifies which referenced wallet does not exist.
type WalletNotFoundError struct {
	WalletID int64
}

func (e WalletNotFoundError) Error() string {
	return fmt.Sprintf("wallet %d not found", e.WalletID)
}
