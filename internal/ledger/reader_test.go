package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/storage"
)

func seedRecord(t *testing.T, store *storage.Memory, src, dst int64, amount int64, at time.Time) ledger.Record {
	t.Helper()
	r, err := store.Insert(context.Background(), ledger.Record{
		SourceWalletID:      src,
		DestinationWalletID: dst,
		Amount:              decimal.NewFromInt(amount),
		Timestamp:           at,
	})
	if err != nil {
		t.Fatalf("insert record: %v", err)
	}
	return r
}

func TestReaderListByWalletOrdering(t *testing.T) {
	store := storage.NewMemory()
	reader := ledger.NewReader(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedRecord(t, store, 1, 2, 10, base)                // oldest
	seedRecord(t, store, 2, 1, 20, base.Add(time.Hour)) // newest
	tieA := seedRecord(t, store, 1, 3, 30, base.Add(30*time.Minute))
	tieB := seedRecord(t, store, 3, 1, 40, base.Add(30*time.Minute))
	seedRecord(t, store, 2, 3, 99, base) // does not touch wallet 1

	records, err := reader.ListByWallet(ctx, 1)
	if err != nil {
		t.Fatalf("list by wallet: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	if !records[0].Amount.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("expected most recent record first, got amount %s", records[0].Amount)
	}
	// Equal timestamps fall back to insertion order (id ascending).
	if records[1].ID != tieA.ID || records[2].ID != tieB.ID {
		t.Fatalf("tie not broken by id ascending: got %d then %d", records[1].ID, records[2].ID)
	}
	if !records[3].Amount.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected oldest record last, got amount %s", records[3].Amount)
	}
}

func TestReaderIdempotentRead(t *testing.T) {
	store := storage.NewMemory()
	reader := ledger.NewReader(store)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedRecord(t, store, 1, 2, 10, base)
	seedRecord(t, store, 2, 1, 20, base.Add(time.Minute))

	first, err := reader.ListByWallet(ctx, 1)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := reader.ListByWallet(ctx, 1)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("read not idempotent: %d vs %d records", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("read not idempotent at index %d: %d vs %d", i, first[i].ID, second[i].ID)
		}
	}
}

func TestReaderEmptyWallet(t *testing.T) {
	reader := ledger.NewReader(storage.NewMemory())
	records, err := reader.ListByWallet(context.Background(), 7)
	if err != nil {
		t.Fatalf("list by wallet: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
