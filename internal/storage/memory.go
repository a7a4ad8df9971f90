package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

// Memory is a concurrency-safe in-memory store implementing the wallet
// repository, the record store, and the transfer store over one state,
// used by tests and the dev fallback. A single mutex makes the transfer
// commit trivially atomic.
type Memory struct {
	mu           sync.RWMutex
	wallets      map[int64]wallet.Wallet
	records      []ledger.Record
	nextWalletID int64
	nextRecordID int64

	// FailCommit, when set, rejects the next transfer commit. Test hook for
	// simulating storage failure at the commit point.
	FailCommit error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		wallets:      make(map[int64]wallet.Wallet),
		nextWalletID: 1,
		nextRecordID: 1,
	}
}

// Create inserts a wallet and assigns the next id.
func (m *Memory) Create(_ context.Context, w wallet.Wallet) (wallet.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w.ID = m.nextWalletID
	m.nextWalletID++
	w.Version = 1
	m.wallets[w.ID] = w
	return w, nil
}

// Get fetches a wallet by id.
func (m *Memory) Get(_ context.Context, id int64) (wallet.Wallet, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.wallets[id]
	return w, ok, nil
}

// List returns wallets matching the filter.
func (m *Memory) List(_ context.Context, f wallet.Filter) ([]wallet.Wallet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []wallet.Wallet
	for _, w := range m.wallets {
		if f.Currency != "" && w.Currency != f.Currency {
			continue
		}
		if f.UserDocument != "" && w.UserDocument != f.UserDocument {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// Update persists the full state of an existing wallet.
func (m *Memory) Update(_ context.Context, w wallet.Wallet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.wallets[w.ID]
	if !ok {
		return wallet.ErrNotFound
	}
	w.Version = current.Version + 1
	w.CreatedAt = current.CreatedAt
	m.wallets[w.ID] = w
	return nil
}

// GetWalletForUpdate reads current wallet state for the transfer engine.
func (m *Memory) GetWalletForUpdate(ctx context.Context, id int64) (wallet.Wallet, bool, error) {
	return m.Get(ctx, id)
}

// Commit applies both wallet saves and the record append as one unit. Each
// save is conditioned on the version the engine read; either check failing,
// or an injected commit failure, leaves no partial effect.
func (m *Memory) Commit(_ context.Context, source, destination wallet.Wallet, record ledger.Record) (ledger.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCommit != nil {
		err := m.FailCommit
		m.FailCommit = nil
		return ledger.Record{}, err
	}

	for _, w := range []wallet.Wallet{source, destination} {
		current, ok := m.wallets[w.ID]
		if !ok || current.Version != w.Version {
			return ledger.Record{}, wallet.ErrVersionConflict
		}
	}

	source.Version++
	destination.Version++
	m.wallets[source.ID] = source
	m.wallets[destination.ID] = destination

	record.ID = m.nextRecordID
	m.nextRecordID++
	m.records = append(m.records, record)
	return record, nil
}

// Insert appends a transfer record outside of a transfer commit.
func (m *Memory) Insert(_ context.Context, r ledger.Record) (ledger.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r.ID = m.nextRecordID
	m.nextRecordID++
	m.records = append(m.records, r)
	return r, nil
}

// ListByWallet returns records touching the wallet, timestamp descending,
// ties broken by id ascending.
func (m *Memory) ListByWallet(_ context.Context, walletID int64) ([]ledger.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ledger.Record
	for _, r := range m.records {
		if r.SourceWalletID == walletID || r.DestinationWalletID == walletID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
