package wallet

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency is one of the closed set of currencies a wallet can hold.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyARS Currency = "ARS"
)

// ParseCurrency validates a currency code against the supported set.
func ParseCurrency(code string) (Currency, error) {
	switch Currency(code) {
	case CurrencyUSD, CurrencyEUR, CurrencyARS:
		return Currency(code), nil
	default:
		return "", ErrInvalidCurrency
	}
}

// Wallet is an account holding a non-negative balance in one fixed currency.
// Version is the optimistic-concurrency token; every persisted save bumps it.
type Wallet struct {
	ID           int64
	Balance      decimal.Decimal
	Currency     Currency
	UserDocument string
	UserName     string
	Version      uint64
	CreatedAt    time.Time
}
