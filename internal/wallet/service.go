package wallet

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Service is the wallet registry: it owns creation-time invariants and typed lookups.
type Service struct {
	repo Repository
}

// NewService builds a wallet registry instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to create a wallet.
type CreateInput struct {
	Balance      decimal.Decimal
	Currency     string
	UserDocument string
	UserName     string
}

// Create provisions a wallet with a validated currency and initial balance.
func (s *Service) Create(ctx context.Context, input CreateInput) (Wallet, error) {
	currency, err := ParseCurrency(input.Currency)
	if err != nil {
		return Wallet{}, err
	}
	if input.Balance.IsNegative() {
		return Wallet{}, ErrInvalidBalance
	}

	w := Wallet{
		Balance:      input.Balance,
		Currency:     currency,
		UserDocument: input.UserDocument,
		UserName:     input.UserName,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, w)
}

// Get retrieves a wallet by id. A missing wallet is reported via the bool,
// never as an error.
func (s *Service) Get(ctx context.Context, id int64) (Wallet, bool, error) {
	return s.repo.Get(ctx, id)
}

// List returns wallets matching the filter; order is unspecified.
func (s *Service) List(ctx context.Context, f Filter) ([]Wallet, error) {
	return s.repo.List(ctx, f)
}

// Update persists the full state of an existing wallet. It never creates:
// an unknown id fails with ErrNotFound. The same creation-time invariants apply.
func (s *Service) Update(ctx context.Context, w Wallet) error {
	if _, err := ParseCurrency(string(w.Currency)); err != nil {
		return err
	}
	if w.Balance.IsNegative() {
		return ErrInvalidBalance
	}
	return s.repo.Update(ctx, w)
}
