package transfer

import (
	"context"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

// Store is the persistence contract the engine requires: versioned wallet
// reads plus an all-or-nothing commit of two wallet saves and one record insert.
type Store interface {
	// GetWalletForUpdate reads current wallet state; the engine calls it only
	// while holding the serialization for that wallet.
	GetWalletForUpdate(ctx context.Context, id int64) (wallet.Wallet, bool, error)

	// Commit persists both wallet states, each conditioned on the Version the
	// engine read, and appends the record, as one atomic unit. A concurrent
	// write on either wallet fails the whole commit with wallet.ErrVersionConflict
	// and no partial effect.
	Commit(ctx context.Context, source, destination wallet.Wallet, record ledger.Record) (ledger.Record, error)
}
