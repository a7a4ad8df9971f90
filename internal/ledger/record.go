package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Record is the persisted, immutable representation of a completed transfer.
// Records are only ever appended, inside the same atomic unit as the balance
// mutations they describe.
type Record struct {
	ID                  int64
	SourceWalletID      int64
	DestinationWalletID int64
	Amount              decimal.Decimal
	Description         string
	Timestamp           time.Time
}

// Store is append-only storage for completed transfer records.
type Store interface {
	Insert(ctx context.Context, r Record) (Record, error)
	ListByWallet(ctx context.Context, walletID int64) ([]Record, error)
}
