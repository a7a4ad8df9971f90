package storage

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

func TestMemoryCommitVersionConflict(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.Create(ctx, wallet.Wallet{Balance: decimal.NewFromInt(100), Currency: wallet.CurrencyUSD})
	b, _ := m.Create(ctx, wallet.Wallet{Balance: decimal.NewFromInt(50), Currency: wallet.CurrencyUSD})

	// A concurrent writer bumps the source version between read and commit.
	stale := a
	a.Balance = decimal.NewFromInt(90)
	if err := m.Update(ctx, a); err != nil {
		t.Fatalf("interleaved update: %v", err)
	}

	stale.Balance = decimal.NewFromInt(80)
	b.Balance = decimal.NewFromInt(70)
	_, err := m.Commit(ctx, stale, b, ledger.Record{SourceWalletID: stale.ID, DestinationWalletID: b.ID, Amount: decimal.NewFromInt(20), Timestamp: time.Now().UTC()})
	if err != wallet.ErrVersionConflict {
		t.Fatalf("expected version conflict, got %v", err)
	}

	// No partial effect: destination untouched, no record appended.
	got, _, _ := m.Get(ctx, b.ID)
	if !got.Balance.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("destination changed on conflicted commit: %s", got.Balance)
	}
	records, _ := m.ListByWallet(ctx, stale.ID)
	if len(records) != 0 {
		t.Fatalf("record appended on conflicted commit")
	}
}

func TestMemoryCommitBumpsVersions(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	a, _ := m.Create(ctx, wallet.Wallet{Balance: decimal.NewFromInt(100), Currency: wallet.CurrencyUSD})
	b, _ := m.Create(ctx, wallet.Wallet{Balance: decimal.Zero, Currency: wallet.CurrencyUSD})

	a.Balance = decimal.NewFromInt(75)
	b.Balance = decimal.NewFromInt(25)
	rec, err := m.Commit(ctx, a, b, ledger.Record{SourceWalletID: a.ID, DestinationWalletID: b.ID, Amount: decimal.NewFromInt(25), Timestamp: time.Now().UTC()})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected an assigned record id")
	}

	gotA, _, _ := m.Get(ctx, a.ID)
	gotB, _, _ := m.Get(ctx, b.ID)
	if gotA.Version != a.Version+1 || gotB.Version != b.Version+1 {
		t.Fatalf("versions not bumped: %d %d", gotA.Version, gotB.Version)
	}
}

func TestMemoryRecordIDsMonotonic(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		r, err := m.Insert(ctx, ledger.Record{SourceWalletID: 1, DestinationWalletID: 2, Amount: decimal.NewFromInt(1), Timestamp: time.Now().UTC()})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		if r.ID <= last {
			t.Fatalf("record ids not monotonic: %d after %d", r.ID, last)
		}
		last = r.ID
	}
}
