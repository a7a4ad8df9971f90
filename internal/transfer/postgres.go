package transfer

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wallet-ledger/wallet_ledger/internal/ledger"
	"github.com/wallet-ledger/wallet_ledger/internal/wallet"
)

// PostgresStore commits transfers against PostgreSQL in a single transaction.
type PostgresStore struct {
	db      *pgxpool.Pool
	wallets *wallet.PostgresRepository
}

// NewPostgresStore constructs a Postgres-backed transfer store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db, wallets: wallet.NewPostgresRepository(db)}
}

// GetWalletForUpdate reads current wallet state.
func (s *PostgresStore) GetWalletForUpdate(ctx context.Context, id int64) (wallet.Wallet, bool, error) {
	return s.wallets.Get(ctx, id)
}

// Commit applies both wallet saves and the record insert in one transaction.
// Rows are locked in ascending id order; each save is conditioned on the
// version the engine read, so a concurrent writer fails the whole commit.
func (s *PostgresStore) Commit(ctx context.Context, source, destination wallet.Wallet, record ledger.Record) (ledger.Record, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return ledger.Record{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	first, second := source, destination
	if second.ID < first.ID {
		first, second = second, first
	}
	for _, w := range []wallet.Wallet{first, second} {
		var current uint64
		err := tx.QueryRow(ctx, `SELECT version FROM wallets WHERE id = $1 FOR UPDATE`, w.ID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ledger.Record{}, fmt.Errorf("wallet %d disappeared during commit", w.ID)
			}
			return ledger.Record{}, err
		}
		if current != w.Version {
			return ledger.Record{}, wallet.ErrVersionConflict
		}
	}

	const save = `UPDATE wallets SET balance = $2, version = version + 1 WHERE id = $1 AND version = $3`
	for _, w := range []wallet.Wallet{source, destination} {
		tag, err := tx.Exec(ctx, save, w.ID, w.Balance.String(), w.Version)
		if err != nil {
			return ledger.Record{}, err
		}
		if tag.RowsAffected() == 0 {
			return ledger.Record{}, wallet.ErrVersionConflict
		}
	}

	row := tx.QueryRow(ctx, `INSERT INTO transfers (source_wallet_id, destination_wallet_id, amount, description, created_at)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		record.SourceWalletID, record.DestinationWalletID, record.Amount.String(), record.Description, record.Timestamp.UTC())
	if err := row.Scan(&record.ID); err != nil {
		return ledger.Record{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ledger.Record{}, err
	}
	return record, nil
}
