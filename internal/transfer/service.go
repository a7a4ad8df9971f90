package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/notification"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

const defaultMaxRetries = 3

// Service is the transfer engine: it validates preconditions, serializes
// access to the two involved wallets, and applies the balance delta together
// with the ledger record as one atomic unit.
type Service struct {
	store      Store
	locks      *lockTable
	notifier   notification.Notifier
	maxRetries int
}

// NewService constructs a transfer engine.
func NewService(store Store, notifier notification.Notifier) *Service {
	return &Service{
		store:      store,
		locks:      newLockTable(),
		notifier:   notifier,
		maxRetries: defaultMaxRetries,
	}
}

// WithMaxRetries overrides the version-conflict retry budget.
func (s *Service) WithMaxRetries(n int) *Service {
	if n > 0 {
		s.maxRetries = n
	}
	return s
}

// Input captures the data needed to move funds between wallets.
type Input struct {
	SourceID      int64
	DestinationID int64
	Amount        decimal.Decimal
	Description   string
}

// Transfer moves Amount from the source wallet to the destination wallet and
// appends the ledger record. Either all three effects persist or none do.
//
// Wallet state is validated only after exclusive access to both wallets is
// held, so two concurrent transfers can never jointly overdraw a source
// against stale reads.
func (s *Service) Transfer(ctx context.Context, in Input) (ledger.Record, error) {
	if in.SourceID == in.DestinationID {
		return ledger.Record{}, ErrSelfTransfer
	}
	if !in.Amount.IsPositive() {
		return ledger.Record{}, ErrInvalidAmount
	}

	unlock := s.locks.LockPair(in.SourceID, in.DestinationID)
	defer unlock()

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		rec, err := s.apply(ctx, in)
		if errors.Is(err, wallet.ErrVersionConflict) {
			continue
		}
		if err != nil {
			return ledger.Record{}, err
		}

		if s.notifier != nil {
			_ = s.notifier.Send(ctx, notification.Message{
				Kind:     notification.KindTransferReceived,
				WalletID: in.DestinationID,
				Body:     fmt.Sprintf("wallet %d received %s from wallet %d", in.DestinationID, in.Amount.String(), in.SourceID),
			})
		}
		return rec, nil
	}
	return ledger.Record{}, ErrConflict
}

// apply runs one read-validate-apply-commit cycle under the held locks.
func (s *Service) apply(ctx context.Context, in Input) (ledger.Record, error) {
	source, ok, err := s.store.GetWalletForUpdate(ctx, in.SourceID)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("read source wallet: %w", err)
	}
	if !ok {
		return ledger.Record{}, WalletNotFoundError{WalletID: in.SourceID}
	}

	destination, ok, err := s.store.GetWalletForUpdate(ctx, in.DestinationID)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("read destination wallet: %w", err)
	}
	if !ok {
		return ledger.Record{}, WalletNotFoundError{WalletID: in.DestinationID}
	}

	if source.Currency != destination.Currency {
		return ledger.Record{}, ErrCurrencyMismatch
	}
	if source.Balance.LessThan(in.Amount) {
		return ledger.Record{}, ErrInsufficientFunds
	}

	source.Balance = source.Balance.Sub(in.Amount)
	destination.Balance = destination.Balance.Add(in.Amount)

	record := ledger.Record{
		SourceWalletID:      in.SourceID,
		DestinationWalletID: in.DestinationID,
		Amount:              in.Amount,
		Description:         in.Description,
		Timestamp:           time.Now().UTC(),
	}

	// The operation is abortable up to, but not after, the commit point.
	if err := ctx.Err(); err != nil {
		return ledger.Record{}, err
	}

	rec, err := s.store.Commit(ctx, source, destination, record)
	if err != nil {
		if errors.Is(err, wallet.ErrVersionConflict) {
			return ledger.Record{}, err
		}
		return ledger.Record{}, fmt.Errorf("commit transfer: %w", err)
	}
	return rec, nil
}
