package ledger

import "context"

// Reader is a read-only projection over the record store for a given wallet.
// It never mutates state and does not participate in the engine's locking.
type Reader struct {
	store Store
}

// NewReader builds a transfer log reader.
func NewReader(store Store) *Reader {
	return &Reader{store: store}
}

// ListByWallet returns the wallet's incoming and outgoing records,
// ordered by timestamp descending.
func (r *Reader) ListByWallet(ctx context.Context, walletID int64) ([]Record, error) {
	return r.store.ListByWallet(ctx, walletID)
}
