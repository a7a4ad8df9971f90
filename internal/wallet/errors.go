package wallet

import "errors"

var (
	// ErrInvalidCurrency occurs when a currency code is outside the supported set.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrInvalidBalance occurs when a wallet would be created with a negative balance.
	ErrInvalidBalance = errors.New("invalid balance")

	// ErrNotFound indicates the referenced wallet does not exist.
	ErrNotFound = errors.New("wallet not found")

	// ErrVersionConflict indicates a conditional save lost against a concurrent write.
	ErrVersionConflict = errors.New("wallet version conflict")
)
